package cmd

import (
	"fmt"

	"provisionhub/database"
	"provisionhub/logger"
	"provisionhub/tui"

	"github.com/spf13/cobra"
)

var browseCluster int64

var browseCmd = &cobra.Command{
	Use:   "browse <dataset>",
	Short: "Opens a table in the interactive terminal browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, records, clusterID, err := loadTable(args[0], browseCluster)
		if err != nil {
			return err
		}
		title := spec.Title
		if clusterID != 0 {
			title = fmt.Sprintf("%s (cluster %d)", spec.Title, clusterID)
		}
		layout, err := database.GetTableLayout(spec.Name)
		if err != nil {
			return err
		}
		logger.Info("browse: opening %s with %d records", spec.Name, len(records))
		return tui.Run(title, newConfiguredTable(spec, records), layout)
	},
}

func init() {
	browseCmd.Flags().Int64Var(&browseCluster, "cluster", 0, "Cluster ID for cluster-members (defaults to the current cluster)")
	rootCmd.AddCommand(browseCmd)
}
