package cmd

import (
	"fmt"
	"strings"

	"provisionhub/config"
	"provisionhub/core"
	"provisionhub/database"
	"provisionhub/logger"
	"provisionhub/models"

	"github.com/spf13/cobra"
)

var (
	tableSearch  string
	tableSortBy  string
	tableOrder   string
	tableFilter  string
	tableCluster int64
	tableFormat  string
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Lists the browsable tables",
	Run: func(cmd *cobra.Command, args []string) {
		renderCatalog(cmd.OutOrStdout(), core.Catalog(), config.SortCycle())
	},
}

var tableCmd = &cobra.Command{
	Use:   "table <dataset>",
	Short: "Prints the derived view of one table",
	Long: `Loads a table and prints its rows after applying the search term, approval filter and sort.
Datasets: services, service-groups, clusters, cluster-members, abcd-sets.
cluster-members uses --cluster or the current cluster (see 'cluster use').`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(tableFormat); err != nil {
			return err
		}
		spec, records, _, err := loadTable(args[0], tableCluster)
		if err != nil {
			return err
		}
		tbl := newConfiguredTable(spec, records)
		if err := applyFlags(tbl, spec, tableSearch, tableSortBy, tableOrder, tableFilter); err != nil {
			return err
		}
		return renderView(cmd.OutOrStdout(), spec.Name, tbl, tableFormat)
	},
}

// loadTable resolves dataset and its record set. cluster-members falls back to the current cluster.
func loadTable(dataset string, clusterID int64) (core.TableSpec, []models.Record, int64, error) {
	spec, ok := core.LookupSpec(dataset)
	if !ok {
		names := make([]string, 0)
		for _, s := range core.Catalog() {
			names = append(names, s.Name)
		}
		return spec, nil, 0, fmt.Errorf("%w: %q (want one of %s)", database.ErrUnknownDataset, dataset, strings.Join(names, ", "))
	}
	if spec.Name == core.DatasetClusterMembers && clusterID == 0 {
		current, err := database.GetCurrentClusterID()
		if err != nil {
			return spec, nil, 0, err
		}
		if current == 0 {
			return spec, nil, 0, fmt.Errorf("%w: pass --cluster or run 'cluster use <id>'", database.ErrClusterNotFound)
		}
		clusterID = current
	}
	records, err := database.LoadDataset(spec.Name, clusterID)
	if err != nil {
		return spec, nil, 0, err
	}
	logger.Debug("loadTable: %d %s records (cluster %d)", len(records), spec.Name, clusterID)
	return spec, records, clusterID, nil
}

// applyFlags drives tbl the way the dashboard controls would. Unlike the HTTP query, an unsortable
// --sort is an error here since the user typed it.
func applyFlags(tbl *core.Table, spec core.TableSpec, search, sortBy, order, filter string) error {
	category, err := models.ParseFilterCategory(filter)
	if err != nil {
		return err
	}
	if category != models.CategoryAll && !spec.HasCategories() {
		return fmt.Errorf("%s has no approval filters", spec.Name)
	}
	tbl.SetFilterCategory(category)
	tbl.SetSearchTerm(search)

	if sortBy == "" {
		return nil
	}
	if col, ok := spec.Column(sortBy); !ok || !col.Sortable {
		return fmt.Errorf("column %q of %s is not sortable", sortBy, spec.Name)
	}
	// An empty --order means the flag default; "none" would silently drop the requested sort.
	if strings.TrimSpace(order) == "" {
		order = string(models.SortAsc)
	}
	dir, err := models.ParseSortDirection(order)
	if err != nil {
		return err
	}
	if dir == models.SortNone {
		return fmt.Errorf("--order must be asc or desc when --sort is set")
	}
	tbl.SetSortField(sortBy, dir)
	return nil
}

func init() {
	tableCmd.Flags().StringVarP(&tableSearch, "search", "s", "", "Case-insensitive search over the searchable columns")
	tableCmd.Flags().StringVar(&tableSortBy, "sort", "", "Sortable column key to sort by")
	tableCmd.Flags().StringVar(&tableOrder, "order", "asc", "Sort order: asc or desc")
	tableCmd.Flags().StringVarP(&tableFilter, "filter", "f", "all", "Approval filter: all, with-approvals, pending-approvals, no-approvals")
	tableCmd.Flags().Int64Var(&tableCluster, "cluster", 0, "Cluster ID for cluster-members (defaults to the current cluster)")
	tableCmd.Flags().StringVarP(&tableFormat, "format", "o", "table", "Output format: table, json, csv, md")

	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(tableCmd)
}
