package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/nav"
	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
)

func newDoctorCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Doctor section",
	}

	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Your applications at a glance",
		Args:  cobra.NoArgs,
		RunE: rt.guarded(nav.PathDoctorDashboard, func(cmd *cobra.Command, _ []string) error {
			return rt.doctorDashboard(cmd)
		}),
	}

	applications := &cobra.Command{
		Use:   "applications",
		Short: "List the jobs you applied to",
		Args:  cobra.NoArgs,
		RunE: rt.guarded("/doctor/applications", func(cmd *cobra.Command, _ []string) error {
			apps, err := rt.app.Doctor.Applications(cmd.Context())
			if err != nil {
				return err
			}
			renderMyApplications(cmd.OutOrStdout(), apps)
			return nil
		}),
	}

	cmd.AddCommand(dashboard, applications, newDoctorProfileCommand(rt))
	return cmd
}

func (rt *runtime) doctorDashboard(cmd *cobra.Command) error {
	d, err := rt.app.Doctor.Dashboard(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	c := d.Counts
	fmt.Fprintf(out, "Applied: %d  Shortlisted: %d  Rejected: %d  Hired: %d\n\n",
		c.Applied, c.Shortlisted, c.Rejected, c.Hired)
	renderMyApplications(out, d.Applications)
	return nil
}

func newDoctorProfileCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View or edit your profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: rt.guarded(nav.PathDoctorProfile, func(cmd *cobra.Command, _ []string) error {
			p, err := rt.app.Doctor.Profile(cmd.Context())
			if err != nil {
				return err
			}
			renderDoctorProfile(cmd.OutOrStdout(), p)
			return nil
		}),
	}

	var (
		fullName, qualification, specialization string
		city, state, registration, cvURL        string
		preferred                               []string
		experience, salaryMin, salaryMax        int
		relocate                                bool
	)
	update := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields; unset flags keep their value",
		Args:  cobra.NoArgs,
		RunE: rt.guarded(nav.PathDoctorProfile, func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			p, err := rt.app.Doctor.UpdateProfile(cmd.Context(), func(p *recruitsdk.DoctorProfile) {
				setString(flags.Changed("full-name"), &p.FullName, fullName)
				setString(flags.Changed("qualification"), &p.Qualification, qualification)
				setString(flags.Changed("specialization"), &p.Specialization, specialization)
				setString(flags.Changed("city"), &p.CurrentLocation.City, city)
				setString(flags.Changed("state"), &p.CurrentLocation.State, state)
				setString(flags.Changed("registration"), &p.RegistrationNumber, registration)
				setString(flags.Changed("cv-url"), &p.CVURL, cvURL)
				if flags.Changed("preferred") {
					p.PreferredLocations = preferred
				}
				setInt(flags.Changed("experience"), &p.ExperienceYears, experience)
				setInt(flags.Changed("salary-min"), &p.ExpectedSalaryMin, salaryMin)
				setInt(flags.Changed("salary-max"), &p.ExpectedSalaryMax, salaryMax)
				if flags.Changed("relocate") {
					p.IsOpenToRelocate = relocate
				}
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile saved.")
			renderDoctorProfile(cmd.OutOrStdout(), p)
			return nil
		}),
	}
	f := update.Flags()
	f.StringVar(&fullName, "full-name", "", "full name")
	f.StringVar(&qualification, "qualification", "", "BDS, MDS or Other")
	f.StringVar(&specialization, "specialization", "", "specialization")
	f.StringVar(&city, "city", "", "current city")
	f.StringVar(&state, "state", "", "current state")
	f.StringVar(&registration, "registration", "", "dental council registration number")
	f.StringVar(&cvURL, "cv-url", "", "link to your CV")
	f.StringSliceVar(&preferred, "preferred", nil, "preferred locations, comma separated")
	f.IntVar(&experience, "experience", 0, "years of experience")
	f.IntVar(&salaryMin, "salary-min", 0, "expected monthly salary, lower bound")
	f.IntVar(&salaryMax, "salary-max", 0, "expected monthly salary, upper bound")
	f.BoolVar(&relocate, "relocate", false, "open to relocation")

	cmd.AddCommand(show, update)
	return cmd
}

func setString(changed bool, dst *string, v string) {
	if changed {
		*dst = v
	}
}

func setInt(changed bool, dst *int, v int) {
	if changed {
		*dst = v
	}
}
