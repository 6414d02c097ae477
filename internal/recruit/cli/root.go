// Package cli is the terminal front end: one cobra command per page.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/app"
	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/nav"
	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
	"github.com/aussiebroadwan/dentalrecruit/pkg/slogx"
)

// runtime is shared by every command of one invocation.
type runtime struct {
	cfg app.Config
	app *app.Application
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, cfg app.Config, args []string, stdout, stderr io.Writer) int {
	rt := &runtime{cfg: cfg}
	defer func() {
		if rt.app != nil {
			_ = rt.app.Shutdown()
		}
	}()

	root := newRootCommand(rt)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error: "+recruitsdk.Message(err))
		if rt.app != nil && recruitsdk.IsAuthExpired(err) && rt.app.History.Location() == nav.PathLogin {
			fmt.Fprintln(stdout, "-> "+nav.PathLogin)
		}
		return 1
	}
	return 0
}

func newRootCommand(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:           "recruit",
		Short:         "Dental Recruit: jobs for dentists, applicants for clinics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.start(cmd.Context()); err != nil {
				return err
			}
			logger := rt.app.Logger().With("command", cmd.CommandPath())
			cmd.SetContext(slogx.WithContext(cmd.Context(), logger))
			return nil
		},
	}

	root.AddCommand(
		newLoginCommand(rt),
		newLogoutCommand(rt),
		newWhoamiCommand(rt),
		newRegisterCommand(rt),
		newDashboardCommand(rt),
		newJobsCommand(rt),
		newDoctorCommand(rt),
		newClinicCommand(rt),
		newAdminCommand(rt),
	)
	return root
}

func (rt *runtime) start(ctx context.Context) error {
	if rt.app != nil {
		return nil
	}
	a, err := app.New(rt.cfg)
	if err != nil {
		return err
	}
	rt.app = a
	return a.Start(ctx)
}

// guarded enters path through the router and runs fn only if the user is
// allowed to be there.
func (rt *runtime) guarded(path string, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		d := rt.app.Router.Enter(path)
		switch d.Kind {
		case nav.Checking:
			fmt.Fprintln(cmd.OutOrStdout(), "checking session...")
			return nil
		case nav.Redirecting:
			fmt.Fprintln(cmd.OutOrStdout(), "-> "+d.Target)
			return nil
		}
		return fn(cmd, args)
	}
}
