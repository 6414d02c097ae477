package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/domain"
	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/nav"
	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
	"github.com/aussiebroadwan/dentalrecruit/pkg/tokenx"
)

func newLoginCommand(rt *runtime) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and open your dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.app.Sessions.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			return rt.landed(cmd, nav.PathDashboard)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt.app.Sessions.Logout(cmd.Context())
			rt.app.History.Navigate(nav.PathHome)
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			fmt.Fprintln(cmd.OutOrStdout(), "-> "+rt.app.History.Location())
			return nil
		},
	}
}

func newWhoamiCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			cur := rt.app.Sessions.CurrentUser()
			if cur == nil {
				fmt.Fprintln(out, "Not signed in.")
				return nil
			}
			fmt.Fprintf(out, "%s <%s>\n", cur.DisplayName, cur.Email)
			fmt.Fprintf(out, "role: %s\n", cur.Role)
			if claims, err := tokenx.Inspect(cur.Token); err == nil {
				if left, ok := claims.ExpiresIn(time.Now()); ok {
					fmt.Fprintf(out, "token expires in %s\n", left.Round(time.Minute))
				}
			}
			return nil
		},
	}
}

type registerFlags struct {
	email, password, confirm, name string
}

func (f *registerFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.email, "email", "", "account email")
	cmd.Flags().StringVar(&f.password, "password", "", "account password")
	cmd.Flags().StringVar(&f.confirm, "confirm-password", "", "repeat the password")
	cmd.Flags().StringVar(&f.name, "name", "", "account holder name")
}

// check runs the form-level checks that happen before anything is sent.
func (f *registerFlags) check() error {
	if f.password != f.confirm {
		return &recruitsdk.ClientError{Message: "Passwords do not match"}
	}
	return nil
}

func newRegisterCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a doctor or clinic account",
	}

	var doc registerFlags
	var fullName, qualification string
	doctor := &cobra.Command{
		Use:   "doctor",
		Short: "Register as a doctor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := doc.check(); err != nil {
				return err
			}
			err := rt.app.Sessions.RegisterDoctor(cmd.Context(), recruitsdk.RegisterDoctorRequest{
				Email:         doc.email,
				Password:      doc.password,
				Name:          doc.name,
				FullName:      fullName,
				Qualification: qualification,
			})
			if err != nil {
				return err
			}
			return rt.landed(cmd, nav.PathDoctorProfile)
		},
	}
	doc.bind(doctor)
	doctor.Flags().StringVar(&fullName, "full-name", "", "full name as registered")
	doctor.Flags().StringVar(&qualification, "qualification", "BDS", "BDS, MDS or Other")

	var cl registerFlags
	var clinicName, clinicType string
	clinic := &cobra.Command{
		Use:   "clinic",
		Short: "Register a clinic or hospital",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cl.check(); err != nil {
				return err
			}
			err := rt.app.Sessions.RegisterClinic(cmd.Context(), recruitsdk.RegisterClinicRequest{
				Email:      cl.email,
				Password:   cl.password,
				Name:       cl.name,
				ClinicName: clinicName,
				Type:       clinicType,
			})
			if err != nil {
				return err
			}
			return rt.landed(cmd, nav.PathClinicProfile)
		},
	}
	cl.bind(clinic)
	clinic.Flags().StringVar(&clinicName, "clinic-name", "", "clinic or hospital name")
	clinic.Flags().StringVar(&clinicType, "type", recruitsdk.ClinicTypeClinic, "clinic or hospital")

	cmd.AddCommand(doctor, clinic)
	return cmd
}

// newDashboardCommand is the generic dashboard: it dispatches by role and
// renders that section's landing page.
func newDashboardCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the dashboard for your role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := rt.app.Router.Enter(nav.PathDashboard)
			if d.Kind != nav.Redirecting {
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "-> "+d.Target)
			return rt.renderLanding(cmd, d.Target)
		},
	}
}

// landed reports a successful sign-in and shows where it leads.
func (rt *runtime) landed(cmd *cobra.Command, path string) error {
	cur := rt.app.Sessions.CurrentUser()
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s).\n", cur.DisplayName, cur.Role)

	d := rt.app.Router.Enter(path)
	target := path
	if d.Kind == nav.Redirecting {
		target = d.Target
	}
	fmt.Fprintln(cmd.OutOrStdout(), "-> "+target)
	return nil
}

func (rt *runtime) renderLanding(cmd *cobra.Command, path string) error {
	cur := rt.app.Sessions.CurrentUser()
	if cur == nil {
		return nil
	}
	switch {
	case cur.Role == domain.RoleDoctor && path == nav.PathDoctorDashboard:
		return rt.doctorDashboard(cmd)
	case cur.Role == domain.RoleClinic && path == nav.PathClinicDashboard:
		return rt.clinicDashboard(cmd)
	case cur.Role == domain.RoleSuperadmin && path == nav.PathAdminDashboard:
		return rt.adminDashboard(cmd)
	}
	return nil
}
