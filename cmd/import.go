package cmd

import (
	"fmt"
	"os"
	"strings"

	"provisionhub/config"
	"provisionhub/database"
	"provisionhub/logger"
	"provisionhub/models"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var importPath string

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Imports services from a JSON document",
	Long: `Reads the array of services found at --path (a gjson path, default from import.records_path)
and upserts them by code. Each element needs code and name; group_id or group_name, category,
provision_count, unit_cost and approvals are optional. approvals may be an array of markers
or a marker string such as "✓✗-".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		path := importPath
		if !cmd.Flags().Changed("path") {
			path = config.AppConfig.Import.RecordsPath
		}
		services, err := parseServices(data, path)
		if err != nil {
			return err
		}
		n, err := database.ImportServices(services)
		if err != nil {
			return err
		}
		logger.Info("import: %d of %d services written from %s", n, len(services), args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d services.\n", n, len(services))
		return nil
	},
}

// parseServices extracts services from the array at path. When path does not select an array
// but the document root is one, the root is used.
func parseServices(data []byte, path string) ([]models.Service, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("import: document is not valid JSON")
	}
	if path == "" {
		path = "@this"
	}
	result := gjson.GetBytes(data, path)
	if !result.IsArray() {
		root := gjson.ParseBytes(data)
		if !root.IsArray() {
			return nil, fmt.Errorf("import: expected an array at path '%s', got %s", path, result.Type.String())
		}
		logger.Info("import: nothing at '%s', falling back to the root array", path)
		result = root
	}

	services := []models.Service{}
	result.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			logger.Warn("import: skipping non-object element %s", item.Raw)
			return true
		}
		services = append(services, models.Service{
			Code:           item.Get("code").String(),
			Name:           item.Get("name").String(),
			GroupID:        item.Get("group_id").Int(),
			GroupName:      item.Get("group_name").String(),
			Category:       item.Get("category").String(),
			ProvisionCount: int(item.Get("provision_count").Int()),
			UnitCost:       item.Get("unit_cost").Float(),
			Approvals:      parseMarkers(item.Get("approvals")),
		})
		return true
	})
	return services, nil
}

func parseMarkers(v gjson.Result) []string {
	markers := []string{}
	switch {
	case v.IsArray():
		for _, m := range v.Array() {
			markers = append(markers, strings.TrimSpace(m.String()))
		}
	case v.Type == gjson.String:
		for _, r := range v.String() {
			switch s := string(r); s {
			case models.MarkerApproved, models.MarkerRejected, models.MarkerPending:
				markers = append(markers, s)
			}
		}
	}
	return markers
}

func init() {
	importCmd.Flags().StringVar(&importPath, "path", "services", "gjson path of the services array (overrides import.records_path)")
	rootCmd.AddCommand(importCmd)
}
