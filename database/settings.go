package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"provisionhub/logger"
	"provisionhub/models"
)

// GetSetting retrieves a specific setting value from the app_settings table.
func GetSetting(key string) (string, error) {
	var value string
	err := DB.QueryRow("SELECT value FROM app_settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil // Return empty string if not found, not an error
		}
		return "", fmt.Errorf("failed to get setting '%s': %w", key, err)
	}
	return value, nil
}

// SetSetting saves or updates a specific setting value in the app_settings table.
func SetSetting(key, value string) error {
	stmt, err := DB.Prepare("INSERT OR REPLACE INTO app_settings (key, value) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare set setting statement for key '%s': %w", key, err)
	}
	defer stmt.Close()

	if _, err = stmt.Exec(key, value); err != nil {
		return fmt.Errorf("failed to execute set setting for key '%s': %w", key, err)
	}
	return nil
}

// GetCurrentClusterID returns the selected cluster, or 0 when none is selected.
func GetCurrentClusterID() (int64, error) {
	raw, err := GetSetting(models.CurrentClusterIDKey)
	if err != nil || raw == "" {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stored current cluster id %q is invalid: %w", raw, err)
	}
	return id, nil
}

// SetCurrentClusterID selects the cluster whose members are browsed. 0 clears the selection.
func SetCurrentClusterID(clusterID int64) error {
	if clusterID == 0 {
		return SetSetting(models.CurrentClusterIDKey, "")
	}
	if _, err := GetClusterByID(clusterID); err != nil {
		return err
	}
	return SetSetting(models.CurrentClusterIDKey, strconv.FormatInt(clusterID, 10))
}

// GetTableLayouts returns the stored column layouts. A missing or corrupt setting yields an empty map.
func GetTableLayouts() (models.AllTableLayouts, error) {
	raw, err := GetSetting(models.TableLayoutsKey)
	if err != nil {
		return nil, err
	}
	layouts := make(models.AllTableLayouts)
	if raw == "" {
		return layouts, nil
	}
	if err := json.Unmarshal([]byte(raw), &layouts); err != nil {
		logger.Error("GetTableLayouts: Error unmarshalling layouts JSON: %v. Stored value: %s", err, raw)
		return make(models.AllTableLayouts), nil
	}
	return layouts, nil
}

// GetTableLayout returns the layout of one dataset.
func GetTableLayout(dataset string) (models.TableLayout, error) {
	layouts, err := GetTableLayouts()
	if err != nil {
		return models.TableLayout{}, err
	}
	return layouts[dataset], nil
}

// SetTableLayouts replaces every stored layout. Passing nil resets them all.
func SetTableLayouts(layouts models.AllTableLayouts) error {
	if layouts == nil {
		layouts = make(models.AllTableLayouts)
	}
	b, err := json.Marshal(layouts)
	if err != nil {
		return fmt.Errorf("encoding table layouts: %w", err)
	}
	return SetSetting(models.TableLayoutsKey, string(b))
}
