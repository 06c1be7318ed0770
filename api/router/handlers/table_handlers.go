package handlers

import (
	"net/http"
	"strings"

	"provisionhub/config"
	"provisionhub/core"
	"provisionhub/database"
	"provisionhub/logger"
	"provisionhub/models"

	"github.com/go-chi/chi/v5"
)

// GetTablesHandler lists every browsable table.
// @Summary List tables
// @Tags Tables
// @Produce json
// @Success 200 {array} models.TableInfo
// @Router /tables [get]
func GetTablesHandler(w http.ResponseWriter, r *http.Request) {
	cycle := config.SortCycle()
	infos := []models.TableInfo{}
	for _, spec := range core.Catalog() {
		info := spec.Info(cycle)
		if p := config.AppConfig.Table.SearchPlaceholder; p != "" {
			info.SearchPlaceholder = p
		}
		if m := config.AppConfig.Table.EmptyMessage; m != "" {
			info.EmptyMessage = m
		}
		infos = append(infos, info)
	}
	writeJSON(w, http.StatusOK, infos)
}

// applyQuery reads search, sort_by, sort_order and filter into tbl. Without sort_by the table keeps
// its default sort; an unknown sort_by is ignored rather than rejected, an unknown sort_order means asc.
func applyQuery(tbl *core.Table, spec core.TableSpec, r *http.Request) error {
	q := r.URL.Query()
	category, err := models.ParseFilterCategory(q.Get("filter"))
	if err != nil {
		return err
	}
	if err := checkCategory(spec, category); err != nil {
		return err
	}
	tbl.SetFilterCategory(category)
	tbl.SetSearchTerm(q.Get("search"))

	sortBy := strings.TrimSpace(q.Get("sort_by"))
	if sortBy == "" {
		return nil
	}
	if err := checkSortable(spec, sortBy); err != nil {
		logger.Warn("applyQuery: ignoring sort_by %q for %s", sortBy, spec.Name)
		return nil
	}
	dir := models.SortAsc
	if raw := q.Get("sort_order"); raw != "" {
		if d, err := models.ParseSortDirection(raw); err == nil {
			dir = d
		}
	}
	tbl.SetSortField(sortBy, dir)
	return nil
}

// GetTableViewHandler returns the derived view of one table for the state given in the query string.
// @Summary Derived table view
// @Tags Tables
// @Produce json
// @Param dataset path string true "Dataset name"
// @Param search query string false "Case-insensitive search over searchable columns"
// @Param sort_by query string false "Sortable column key"
// @Param sort_order query string false "asc, desc or none" default(asc)
// @Param filter query string false "all, with-approvals, pending-approvals, no-approvals" default(all)
// @Param cluster_id query int false "Cluster for cluster-members (defaults to the current cluster)"
// @Success 200 {object} models.TableViewResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /tables/{dataset} [get]
func GetTableViewHandler(w http.ResponseWriter, r *http.Request) {
	dataset := chi.URLParam(r, "dataset")
	spec, err := lookupSpec(dataset)
	if err != nil {
		writeErrorFor(w, "GetTableViewHandler", err)
		return
	}
	clusterID, err := parseClusterID(r.URL.Query().Get("cluster_id"))
	if err != nil {
		writeErrorFor(w, "GetTableViewHandler", err)
		return
	}
	if clusterID, err = resolveClusterID(dataset, clusterID); err != nil {
		writeErrorFor(w, "GetTableViewHandler", err)
		return
	}
	records, err := database.LoadDataset(dataset, clusterID)
	if err != nil {
		writeErrorFor(w, "GetTableViewHandler", err)
		return
	}

	tbl := newTable(spec, records)
	if err := applyQuery(tbl, spec, r); err != nil {
		writeErrorFor(w, "GetTableViewHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, tbl.Response(dataset))
}

// GetSummaryHandler returns the metric card counts for a dataset (services by default).
// @Summary Metric cards
// @Tags Tables
// @Produce json
// @Param dataset query string false "Dataset name" default(services)
// @Success 200 {object} models.Summary
// @Router /summary [get]
func GetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	dataset := r.URL.Query().Get("dataset")
	if dataset == "" {
		dataset = core.DatasetServices
	}
	spec, err := lookupSpec(dataset)
	if err != nil {
		writeErrorFor(w, "GetSummaryHandler", err)
		return
	}
	clusterID, err := parseClusterID(r.URL.Query().Get("cluster_id"))
	if err != nil {
		writeErrorFor(w, "GetSummaryHandler", err)
		return
	}
	if clusterID, err = resolveClusterID(dataset, clusterID); err != nil {
		writeErrorFor(w, "GetSummaryHandler", err)
		return
	}
	records, err := database.LoadDataset(dataset, clusterID)
	if err != nil {
		writeErrorFor(w, "GetSummaryHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, core.Summarize(dataset, records, spec.MarkerField))
}
