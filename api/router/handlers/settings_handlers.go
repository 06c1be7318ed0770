package handlers

import (
	"net/http"

	"provisionhub/database"
	"provisionhub/logger"
	"provisionhub/models"
)

type currentClusterPayload struct {
	ClusterID *int64 `json:"cluster_id"` // null clears the selection
}

// GetCurrentClusterSettingHandler retrieves the currently selected cluster ID.
func GetCurrentClusterSettingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := database.GetCurrentClusterID()
	if err != nil {
		writeErrorFor(w, "GetCurrentClusterSettingHandler", err)
		return
	}
	var resp currentClusterPayload
	if id != 0 {
		resp.ClusterID = &id
	}
	writeJSON(w, http.StatusOK, resp)
}

// SetCurrentClusterSettingHandler selects the cluster whose members the dashboard shows.
func SetCurrentClusterSettingHandler(w http.ResponseWriter, r *http.Request) {
	var req currentClusterPayload
	if err := decodeBody(r, &req); err != nil {
		writeErrorFor(w, "SetCurrentClusterSettingHandler", err)
		return
	}
	var id int64
	if req.ClusterID != nil {
		id = *req.ClusterID
	}
	if err := database.SetCurrentClusterID(id); err != nil {
		writeErrorFor(w, "SetCurrentClusterSettingHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// checkLayouts rejects layouts for unknown datasets or columns.
func checkLayouts(layouts models.AllTableLayouts) error {
	for dataset, layout := range layouts {
		spec, err := lookupSpec(dataset)
		if err != nil {
			return badRequest("%v", err)
		}
		for key, col := range layout.Columns {
			if _, ok := spec.Column(key); !ok {
				return badRequest("%s has no column %q", dataset, key)
			}
			if col.Width < 0 {
				return badRequest("%s.%s: width must not be negative", dataset, key)
			}
		}
		if layout.PageSize < 0 {
			return badRequest("%s: pageSize must not be negative", dataset)
		}
	}
	return nil
}

// GetTableLayoutsHandler retrieves the column layouts of every table.
func GetTableLayoutsHandler(w http.ResponseWriter, r *http.Request) {
	layouts, err := database.GetTableLayouts()
	if err != nil {
		writeErrorFor(w, "GetTableLayoutsHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, layouts)
}

// SetTableLayoutsHandler saves the column layouts of every table.
func SetTableLayoutsHandler(w http.ResponseWriter, r *http.Request) {
	var payload models.AllTableLayouts
	if err := decodeBody(r, &payload); err != nil {
		writeErrorFor(w, "SetTableLayoutsHandler", err)
		return
	}
	if err := checkLayouts(payload); err != nil {
		writeErrorFor(w, "SetTableLayoutsHandler", err)
		return
	}
	if err := database.SetTableLayouts(payload); err != nil {
		writeErrorFor(w, "SetTableLayoutsHandler", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Table layouts saved successfully."})
}

// ResetTableLayoutsHandler drops every stored layout.
func ResetTableLayoutsHandler(w http.ResponseWriter, r *http.Request) {
	if err := database.SetTableLayouts(nil); err != nil {
		writeErrorFor(w, "ResetTableLayoutsHandler", err)
		return
	}
	logger.Info("All table layouts have been reset in database.")
	writeJSON(w, http.StatusOK, map[string]string{"message": "All table layouts have been reset."})
}
