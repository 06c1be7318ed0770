package cmd

import (
	"fmt"

	"provisionhub/database"
	"provisionhub/logger"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Loads the demo record sets into the database",
	Long:  `Inserts a fixed set of service groups, services, clusters and ABCD sets. Running it again changes nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.SeedFixtures(); err != nil {
			logger.Error("seed: %v", err)
			return err
		}
		services, err := database.GetServices()
		if err != nil {
			return err
		}
		clusters, err := database.GetClusters()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database seeded: %d services in %d clusters.\n", len(services), len(clusters))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
