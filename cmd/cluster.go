package cmd

import (
	"fmt"
	"strconv"

	"provisionhub/core"
	"provisionhub/database"
	"provisionhub/models"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Manages the current cluster whose members are browsed",
}

var clusterListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists clusters, marking the current one",
	RunE: func(cmd *cobra.Command, args []string) error {
		clusters, err := database.GetClusters()
		if err != nil {
			return err
		}
		current, err := database.GetCurrentClusterID()
		if err != nil {
			return err
		}
		spec, _ := core.LookupSpec(core.DatasetClusters)
		cohesion, _ := spec.Column("cohesion")

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"", "ID", "Code", "Name", "Region", "Members", "Cohesion"})
		for _, c := range clusters {
			mark := ""
			if c.ID == current {
				mark = "*"
			}
			t.AppendRow(table.Row{mark, c.ID, c.Code, c.Name, c.Region, c.MemberCount, cohesion.Cell(c.ToRecord())})
		}
		t.Render()
		return nil
	},
}

var clusterUseCmd = &cobra.Command{
	Use:   "use <cluster-id>",
	Short: "Selects the cluster used by cluster-members views",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid cluster id %q", args[0])
		}
		if err := database.SetCurrentClusterID(id); err != nil {
			return err
		}
		c, err := database.GetClusterByID(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Current cluster set to %d (%s).\n", c.ID, c.Name)
		return nil
	},
}

var clusterCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Shows the current cluster",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := database.GetCurrentClusterID()
		if err != nil {
			return err
		}
		if id == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No current cluster selected.")
			return nil
		}
		c, err := database.GetClusterByID(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d %s %s (%s)\n", c.ID, c.Code, c.Name, describeCluster(c))
		return nil
	},
}

var clusterClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clears the current cluster selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.SetCurrentClusterID(0)
	},
}

func describeCluster(c models.Cluster) string {
	return fmt.Sprintf("%s, %d members", c.Region, c.MemberCount)
}

func init() {
	clusterCmd.AddCommand(clusterListCmd, clusterUseCmd, clusterCurrentCmd, clusterClearCmd)
	rootCmd.AddCommand(clusterCmd)
}
