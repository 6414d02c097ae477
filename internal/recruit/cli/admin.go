package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/nav"
	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
	"github.com/aussiebroadwan/dentalrecruit/pkg/slogx"
)

func newAdminCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Superadmin back office",
	}

	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Platform totals",
		Args:  cobra.NoArgs,
		RunE: rt.guarded(nav.PathAdminDashboard, func(cmd *cobra.Command, _ []string) error {
			return rt.adminDashboard(cmd)
		}),
	}

	doctors := &cobra.Command{
		Use:   "doctors",
		Short: "List doctor accounts",
		Args:  cobra.NoArgs,
		RunE: rt.guarded("/admin/doctors", func(cmd *cobra.Command, _ []string) error {
			rows, err := rt.app.Admin.Doctors(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "EMAIL", "QUALIFICATION", "EXPERIENCE", "CITY", "JOINED")
			for _, r := range rows {
				qual, exp, city := "-", "-", "-"
				if p := r.Profile; p != nil {
					qual = orDash(p.Qualification)
					exp = fmt.Sprintf("%d yrs", p.ExperienceYears)
					city = orDash(p.CurrentLocation.City)
				}
				row(tw, r.User.ID, r.User.Name, r.User.Email, qual, exp, city, date(r.User.CreatedAt))
			}
			return tw.Flush()
		}),
	}

	clinics := &cobra.Command{
		Use:   "clinics",
		Short: "List clinic accounts",
		Args:  cobra.NoArgs,
		RunE: rt.guarded("/admin/clinics", func(cmd *cobra.Command, _ []string) error {
			rows, err := rt.app.Admin.Clinics(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "EMAIL", "CLINIC", "TYPE", "CITY", "JOINED")
			for _, r := range rows {
				clinic, kind, city := "-", "-", "-"
				if p := r.Profile; p != nil {
					clinic, kind, city = orDash(p.ClinicName), orDash(p.Type), orDash(p.City)
				}
				row(tw, r.User.ID, r.User.Name, r.User.Email, clinic, kind, city, date(r.User.CreatedAt))
			}
			return tw.Flush()
		}),
	}

	jobs := &cobra.Command{
		Use:   "jobs",
		Short: "List every job posting",
		Args:  cobra.NoArgs,
		RunE: rt.guarded("/admin/jobs", func(cmd *cobra.Command, _ []string) error {
			rows, err := rt.app.Admin.Jobs(cmd.Context())
			if err != nil {
				return err
			}
			renderJobs(cmd.OutOrStdout(), rows)
			return nil
		}),
	}

	applications := &cobra.Command{
		Use:   "applications",
		Short: "List every application",
		Args:  cobra.NoArgs,
		RunE: rt.guarded("/admin/applications", func(cmd *cobra.Command, _ []string) error {
			rows, err := rt.app.Admin.Applications(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout(), "ID", "DOCTOR", "JOB", "STATUS", "APPLIED")
			for _, a := range rows {
				row(tw, a.ID, refName(a.Doctor), refName(a.Job), statusLabel(a.Status), date(a.CreatedAt))
			}
			return tw.Flush()
		}),
	}

	var dir string
	export := &cobra.Command{
		Use:       "export users|jobs|applications",
		Short:     "Download a CSV export into <kind>.csv",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(recruitsdk.ExportUsers), string(recruitsdk.ExportJobs), string(recruitsdk.ExportApplications)},
		RunE: rt.guarded("/admin/export", func(cmd *cobra.Command, args []string) error {
			kind := recruitsdk.ExportKind(args[0])
			path, err := rt.app.Admin.Export(cmd.Context(), kind, dir)
			if recruitsdk.IsAuthExpired(err) {
				return err
			}
			if err != nil {
				// Nothing was written; back to idle.
				slogx.FromContext(cmd.Context()).Warn("export failed",
					"kind", kind,
					"error", recruitsdk.Message(err),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "Export %s\n", exportLabel(kind))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		}),
	}
	export.Flags().StringVar(&dir, "dir", ".", "directory to save into")

	cmd.AddCommand(dashboard, doctors, clinics, jobs, applications, export)
	return cmd
}

func (rt *runtime) adminDashboard(cmd *cobra.Command) error {
	d, err := rt.app.Admin.Dashboard(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	o := d.Overview
	fmt.Fprintf(out, "Doctors: %d  Clinics: %d  Jobs: %d  Applications: %d\n\n",
		o.TotalDoctors, o.TotalClinics, o.TotalJobs, o.TotalApplications)
	renderBuckets(out, "Jobs by city", d.JobsByCity)
	fmt.Fprintln(out)
	renderBuckets(out, "Applications by status", d.ApplicationsByStatus)
	return nil
}

func exportLabel(k recruitsdk.ExportKind) string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
