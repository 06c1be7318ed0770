package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"provisionhub/config"
	"provisionhub/core"
	"provisionhub/database"
	"provisionhub/logger"
	"provisionhub/models"
)

// errBadRequest marks client mistakes that are not covered by a package sentinel.
var errBadRequest = errors.New("bad request")

func badRequest(format string, v ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, v...))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("writeJSON: error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Message: msg})
}

// writeErrorFor maps package sentinels to HTTP status codes.
func writeErrorFor(w http.ResponseWriter, where string, err error) {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, models.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrViewNotFound),
		errors.Is(err, database.ErrUnknownDataset),
		errors.Is(err, database.ErrClusterNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("%s: %v", where, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func lookupSpec(dataset string) (core.TableSpec, error) {
	spec, ok := core.LookupSpec(dataset)
	if !ok {
		return spec, fmt.Errorf("%w: %q", database.ErrUnknownDataset, dataset)
	}
	return spec, nil
}

// newTable mounts an engine for spec using the project-wide table settings.
func newTable(spec core.TableSpec, records []models.Record) *core.Table {
	return spec.NewTable(records, core.WithSettings(
		config.SortCycle(), config.AppConfig.Table.SearchPlaceholder, config.AppConfig.Table.EmptyMessage))
}

// resolveClusterID falls back to the stored current cluster when the caller did not pick one.
func resolveClusterID(dataset string, clusterID int64) (int64, error) {
	if dataset != core.DatasetClusterMembers || clusterID != 0 {
		return clusterID, nil
	}
	return database.GetCurrentClusterID()
}

func parseClusterID(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, badRequest("invalid cluster_id %q", raw)
	}
	return id, nil
}

func checkCategory(spec core.TableSpec, category models.FilterCategory) error {
	if category != models.CategoryAll && !spec.HasCategories() {
		return badRequest("%s has no approval filters", spec.Name)
	}
	return nil
}

func checkSortable(spec core.TableSpec, field string) error {
	if col, ok := spec.Column(field); ok && col.Sortable {
		return nil
	}
	return badRequest("column %q of %s is not sortable", field, spec.Name)
}
