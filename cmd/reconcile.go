package cmd

import (
	"fmt"

	"campy/database"
	"campy/metrics"
	"campy/services"

	"github.com/spf13/cobra"
)

func newReconcileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute course enrollment counters from progress records",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap()
			if err != nil {
				return err
			}
			defer rt.close()

			if err := database.Migrate(rt.db, rt.log); err != nil {
				return err
			}

			reconciler := services.NewReconciler(rt.db, rt.log, metrics.Get())
			fixed, err := reconciler.ReconcileEnrollmentCounts(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d course counter(s) corrected\n", fixed)
			return nil
		},
	}
}
