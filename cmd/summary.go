package cmd

import (
	"encoding/json"

	"provisionhub/core"

	"github.com/spf13/cobra"
)

var (
	summaryDataset string
	summaryCluster int64
	summaryJSON    bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Shows the metric cards for a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, records, _, err := loadTable(summaryDataset, summaryCluster)
		if err != nil {
			return err
		}
		s := core.Summarize(spec.Name, records, spec.MarkerField)
		if summaryJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		}
		renderSummary(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryDataset, "dataset", "d", core.DatasetServices, "Dataset to summarise")
	summaryCmd.Flags().Int64Var(&summaryCluster, "cluster", 0, "Cluster ID for cluster-members (defaults to the current cluster)")
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "Print JSON instead of a table")
	rootCmd.AddCommand(summaryCmd)
}
