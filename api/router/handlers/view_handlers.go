package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"provisionhub/core"
	"provisionhub/database"
	"provisionhub/logger"
	"provisionhub/models"

	"github.com/go-chi/chi/v5"
)

// Views holds the table instances opened through the API. The server sweeps idle ones.
var Views = core.NewViewStore()

type createViewRequest struct {
	Dataset   string `json:"dataset"`
	ClusterID int64  `json:"cluster_id,omitempty"`
}

type searchRequest struct {
	Term string `json:"term"`
}

type sortRequest struct {
	Field     string `json:"field"`
	Direction string `json:"direction,omitempty"` // empty means toggle, as a header click does
}

type filterRequest struct {
	Category string `json:"category"`
}

type recordsRequest struct {
	ClusterID int64 `json:"cluster_id"`
}

func sessionResponse(vs *core.ViewSession) models.ViewSessionResponse {
	return models.ViewSessionResponse{
		ViewID:    vs.ID,
		ClusterID: vs.ClusterID,
		View:      vs.Table.Response(vs.Dataset),
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("invalid request payload: %v", err)
	}
	return nil
}

// mutateView applies fn to the session named in the path and answers with the new derived view.
func mutateView(w http.ResponseWriter, r *http.Request, where string, fn func(vs *core.ViewSession) error) {
	id := chi.URLParam(r, "view_id")
	var resp models.ViewSessionResponse
	err := Views.Update(id, func(vs *core.ViewSession) error {
		if err := fn(vs); err != nil {
			return err
		}
		resp = sessionResponse(vs)
		return nil
	})
	if err != nil {
		writeErrorFor(w, where, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateViewHandler mounts a new table instance for a dataset.
// @Summary Open a table view
// @Tags Views
// @Accept json
// @Produce json
// @Param view_request body createViewRequest true "Dataset and optional cluster"
// @Success 201 {object} models.ViewSessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /views [post]
func CreateViewHandler(w http.ResponseWriter, r *http.Request) {
	var req createViewRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorFor(w, "CreateViewHandler", err)
		return
	}
	spec, err := lookupSpec(strings.TrimSpace(req.Dataset))
	if err != nil {
		writeErrorFor(w, "CreateViewHandler", err)
		return
	}
	clusterID, err := resolveClusterID(spec.Name, req.ClusterID)
	if err != nil {
		writeErrorFor(w, "CreateViewHandler", err)
		return
	}
	records, err := database.LoadDataset(spec.Name, clusterID)
	if err != nil {
		writeErrorFor(w, "CreateViewHandler", err)
		return
	}
	vs := Views.Create(spec.Name, clusterID, newTable(spec, records))
	logger.Debug("CreateViewHandler: opened view %s on %s (%d records)", vs.ID, spec.Name, len(records))
	writeJSON(w, http.StatusCreated, sessionResponse(&vs))
}

// GetViewHandler returns the current derived view of a session.
// @Summary Get a table view
// @Tags Views
// @Produce json
// @Param view_id path string true "View ID"
// @Success 200 {object} models.ViewSessionResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /views/{view_id} [get]
func GetViewHandler(w http.ResponseWriter, r *http.Request) {
	mutateView(w, r, "GetViewHandler", func(*core.ViewSession) error { return nil })
}

// SetViewSearchHandler replaces the search term.
// @Router /views/{view_id}/search [put]
func SetViewSearchHandler(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorFor(w, "SetViewSearchHandler", err)
		return
	}
	mutateView(w, r, "SetViewSearchHandler", func(vs *core.ViewSession) error {
		vs.Table.SetSearchTerm(req.Term)
		return nil
	})
}

// SortViewHandler toggles the sort on a column, or sets it outright when a direction is given.
// @Router /views/{view_id}/sort [post]
func SortViewHandler(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorFor(w, "SortViewHandler", err)
		return
	}
	mutateView(w, r, "SortViewHandler", func(vs *core.ViewSession) error {
		if req.Direction == "" {
			if !vs.Table.ToggleSort(req.Field) {
				return badRequest("column %q of %s is not sortable", req.Field, vs.Dataset)
			}
			return nil
		}
		dir, err := models.ParseSortDirection(req.Direction)
		if err != nil {
			return badRequest("%v", err)
		}
		if req.Field != "" && dir != models.SortNone {
			spec, err := lookupSpec(vs.Dataset)
			if err != nil {
				return err
			}
			if err := checkSortable(spec, req.Field); err != nil {
				return err
			}
		}
		vs.Table.SetSortField(req.Field, dir)
		return nil
	})
}

// SetViewFilterHandler replaces the approval filter category.
// @Router /views/{view_id}/filter [put]
func SetViewFilterHandler(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorFor(w, "SetViewFilterHandler", err)
		return
	}
	category, err := models.ParseFilterCategory(req.Category)
	if err != nil {
		writeErrorFor(w, "SetViewFilterHandler", err)
		return
	}
	mutateView(w, r, "SetViewFilterHandler", func(vs *core.ViewSession) error {
		spec, err := lookupSpec(vs.Dataset)
		if err != nil {
			return err
		}
		if err := checkCategory(spec, category); err != nil {
			return err
		}
		vs.Table.SetFilterCategory(category)
		return nil
	})
}

// ResetViewHandler restores every view state field to its default.
// @Router /views/{view_id}/reset [post]
func ResetViewHandler(w http.ResponseWriter, r *http.Request) {
	mutateView(w, r, "ResetViewHandler", func(vs *core.ViewSession) error {
		vs.Table.Reset()
		return nil
	})
}

// SwitchViewRecordsHandler points a cluster-members view at another cluster. The view state starts over.
// @Router /views/{view_id}/records [put]
func SwitchViewRecordsHandler(w http.ResponseWriter, r *http.Request) {
	var req recordsRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrorFor(w, "SwitchViewRecordsHandler", err)
		return
	}
	// The dataset of a view never changes, so records load outside the store lock.
	var dataset string
	err := Views.Update(chi.URLParam(r, "view_id"), func(vs *core.ViewSession) error {
		dataset = vs.Dataset
		return nil
	})
	if err == nil && dataset != core.DatasetClusterMembers {
		err = badRequest("%s views have a single record set", dataset)
	}
	var records []models.Record
	if err == nil {
		records, err = database.LoadDataset(dataset, req.ClusterID)
	}
	if err != nil {
		writeErrorFor(w, "SwitchViewRecordsHandler", err)
		return
	}
	mutateView(w, r, "SwitchViewRecordsHandler", func(vs *core.ViewSession) error {
		vs.ClusterID = req.ClusterID
		vs.Table.SetRecords(records)
		return nil
	})
}

// DeleteViewHandler unmounts a table instance.
// @Router /views/{view_id} [delete]
func DeleteViewHandler(w http.ResponseWriter, r *http.Request) {
	if err := Views.Delete(chi.URLParam(r, "view_id")); err != nil {
		writeErrorFor(w, "DeleteViewHandler", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
