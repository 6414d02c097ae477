package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/nav"
	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
)

func newClinicCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clinic",
		Short: "Clinic section",
	}

	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Postings and applicant totals",
		Args:  cobra.NoArgs,
		RunE: rt.guarded(nav.PathClinicDashboard, func(cmd *cobra.Command, _ []string) error {
			return rt.clinicDashboard(cmd)
		}),
	}

	applicants := &cobra.Command{
		Use:   "applicants JOB_ID",
		Short: "List applicants for one of your jobs",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded("/clinic/applicants", func(cmd *cobra.Command, args []string) error {
			apps, err := rt.app.Clinic.Applicants(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderApplicants(cmd.OutOrStdout(), apps)
			return nil
		}),
	}

	var notes string
	status := &cobra.Command{
		Use:   "status APPLICATION_ID STATUS",
		Short: "Move an application to applied, shortlisted, rejected or hired",
		Args:  cobra.ExactArgs(2),
		RunE: rt.guarded("/clinic/applicants", func(cmd *cobra.Command, args []string) error {
			app, err := rt.app.Clinic.UpdateStatus(cmd.Context(), args[0], args[1], notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Application %s is now %s.\n", app.ID, statusLabel(app.Status))
			return nil
		}),
	}
	status.Flags().StringVar(&notes, "notes", "", "internal notes, not shown to the doctor")

	cmd.AddCommand(dashboard, newClinicJobsCommand(rt), applicants, status, newClinicProfileCommand(rt))
	return cmd
}

func (rt *runtime) clinicDashboard(cmd *cobra.Command) error {
	d, err := rt.app.Clinic.Dashboard(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	s := d.Stats
	fmt.Fprintf(out, "Jobs: %d  Applications: %d  Applied: %d  Shortlisted: %d\n",
		s.TotalJobs, s.TotalApplications, s.Applied, s.Shortlisted)
	if len(d.SkippedJobs) > 0 {
		fmt.Fprintf(out, "(applications unavailable for %d job(s))\n", len(d.SkippedJobs))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent jobs")
	renderJobs(out, d.RecentJobs)
	return nil
}

func newClinicJobsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Manage your job postings",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your postings",
		Args:  cobra.NoArgs,
		RunE: rt.guarded("/clinic/jobs", func(cmd *cobra.Command, _ []string) error {
			jobs, err := rt.app.Clinic.Jobs(cmd.Context())
			if err != nil {
				return err
			}
			renderJobs(cmd.OutOrStdout(), jobs)
			return nil
		}),
	}

	var p recruitsdk.JobPosting
	create := &cobra.Command{
		Use:   "new",
		Short: "Post a new job",
		Args:  cobra.NoArgs,
		RunE: rt.guarded("/clinic/jobs/new", func(cmd *cobra.Command, _ []string) error {
			job, err := rt.app.Clinic.CreateJob(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Posted job %s.\n", job.ID)
			return nil
		}),
	}
	f := create.Flags()
	f.StringVar(&p.Title, "title", "", "job title")
	f.StringVar(&p.QualificationRequired, "qualification", "Any", "Any, BDS or MDS")
	f.StringVar(&p.SpecializationRequired, "specialization", "", "required specialization")
	f.StringVar(&p.JobType, "type", recruitsdk.JobTypeFullTime, "full-time, part-time, locum or consultant")
	f.IntVar(&p.MinExperienceYears, "min-experience", 0, "minimum years of experience")
	f.IntVar(&p.SalaryRange.Min, "salary-min", 0, "monthly salary, lower bound")
	f.IntVar(&p.SalaryRange.Max, "salary-max", 0, "monthly salary, upper bound")
	f.StringVar(&p.City, "city", "", "city")
	f.StringVar(&p.State, "state", "", "state")
	f.StringVar(&p.Description, "description", "", "job description")
	f.StringVar(&p.Shifts, "shifts", "", "e.g. morning, evening")
	f.StringVar(&p.WorkingDays, "working-days", "", "e.g. Mon-Sat")

	toggle := &cobra.Command{
		Use:   "toggle JOB_ID",
		Short: "Activate or deactivate a posting",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded("/clinic/jobs", func(cmd *cobra.Command, args []string) error {
			job, err := rt.app.Clinic.ToggleJob(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Job %s is now %s.\n", job.ID, active(job.IsActive))
			return nil
		}),
	}

	del := &cobra.Command{
		Use:   "delete JOB_ID",
		Short: "Delete a posting",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded("/clinic/jobs", func(cmd *cobra.Command, args []string) error {
			if err := rt.app.Clinic.DeleteJob(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Job %s deleted.\n", args[0])
			return nil
		}),
	}

	cmd.AddCommand(list, create, toggle, del)
	return cmd
}

func newClinicProfileCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View or edit your clinic profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show your clinic profile",
		Args:  cobra.NoArgs,
		RunE: rt.guarded(nav.PathClinicProfile, func(cmd *cobra.Command, _ []string) error {
			p, err := rt.app.Clinic.Profile(cmd.Context())
			if err != nil {
				return err
			}
			renderClinicProfile(cmd.OutOrStdout(), p)
			return nil
		}),
	}

	var (
		name, kind, address, city, state, pincode string
		contactName, contactNumber, email, site   string
		description                               string
		specializations                           []string
		chairs                                    int
	)
	update := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields; unset flags keep their value",
		Args:  cobra.NoArgs,
		RunE: rt.guarded(nav.PathClinicProfile, func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			p, err := rt.app.Clinic.UpdateProfile(cmd.Context(), func(p *recruitsdk.ClinicProfile) {
				setString(flags.Changed("clinic-name"), &p.ClinicName, name)
				setString(flags.Changed("type"), &p.Type, kind)
				setString(flags.Changed("address"), &p.Address, address)
				setString(flags.Changed("city"), &p.City, city)
				setString(flags.Changed("state"), &p.State, state)
				setString(flags.Changed("pincode"), &p.Pincode, pincode)
				setString(flags.Changed("contact-name"), &p.ContactPersonName, contactName)
				setString(flags.Changed("contact-number"), &p.ContactNumber, contactNumber)
				setString(flags.Changed("email"), &p.Email, email)
				setString(flags.Changed("website"), &p.Website, site)
				setString(flags.Changed("description"), &p.Description, description)
				setInt(flags.Changed("chairs"), &p.NumberOfChairsOrBeds, chairs)
				if flags.Changed("specializations") {
					p.Specializations = specializations
				}
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile saved.")
			renderClinicProfile(cmd.OutOrStdout(), p)
			return nil
		}),
	}
	f := update.Flags()
	f.StringVar(&name, "clinic-name", "", "clinic or hospital name")
	f.StringVar(&kind, "type", "", "clinic or hospital")
	f.StringVar(&address, "address", "", "street address")
	f.StringVar(&city, "city", "", "city")
	f.StringVar(&state, "state", "", "state")
	f.StringVar(&pincode, "pincode", "", "postal code")
	f.StringVar(&contactName, "contact-name", "", "contact person")
	f.StringVar(&contactNumber, "contact-number", "", "contact phone number")
	f.StringVar(&email, "email", "", "contact email")
	f.StringVar(&site, "website", "", "website")
	f.StringVar(&description, "description", "", "about the clinic")
	f.StringSliceVar(&specializations, "specializations", nil, "specializations, comma separated")
	f.IntVar(&chairs, "chairs", 0, "number of chairs or beds")

	cmd.AddCommand(show, update)
	return cmd
}
