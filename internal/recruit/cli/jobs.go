package cli

import (
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/nav"
	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
)

func newJobsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Browse the public job board",
	}

	var filter recruitsdk.JobFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List active jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt.app.Router.Enter(nav.PathJobs)
			jobs, err := rt.app.Jobs.Browse(cmd.Context(), filter)
			if err != nil {
				return err
			}
			renderJobs(cmd.OutOrStdout(), jobs)
			return nil
		},
	}
	list.Flags().StringVar(&filter.City, "city", "", "only jobs in this city")
	list.Flags().StringVar(&filter.JobType, "type", "", "full-time, part-time, locum or consultant")
	list.Flags().StringVar(&filter.QualificationRequired, "qualification", "", "Any, BDS or MDS")

	show := &cobra.Command{
		Use:   "show JOB_ID",
		Short: "Show one job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt.app.Router.Enter(nav.PathJobs + "/" + args[0])
			job, err := rt.app.Jobs.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderJob(cmd.OutOrStdout(), job)
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
