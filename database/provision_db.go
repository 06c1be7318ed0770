package database

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"provisionhub/core"
	"provisionhub/logger"
	"provisionhub/models"
)

var (
	ErrUnknownDataset  = errors.New("unknown dataset")
	ErrClusterNotFound = errors.New("cluster not found")
)

// GetServiceGroups returns all groups in id order with their service counts.
func GetServiceGroups() ([]models.ServiceGroup, error) {
	rows, err := DB.Query(`SELECT g.id, g.code, g.name, COALESCE(g.description, ''), g.approvals,
              (SELECT COUNT(*) FROM services s WHERE s.group_id = g.id)
              FROM service_groups g ORDER BY g.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying service groups: %w", err)
	}
	defer rows.Close()

	groups := []models.ServiceGroup{}
	for rows.Next() {
		var g models.ServiceGroup
		var approvals string
		if err := rows.Scan(&g.ID, &g.Code, &g.Name, &g.Description, &approvals, &g.ServiceCount); err != nil {
			return nil, fmt.Errorf("scanning service group row: %w", err)
		}
		g.Approvals = decodeApprovals(approvals)
		groups = append(groups, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating service group rows: %w", err)
	}
	return groups, nil
}

// GetServices returns all services in id order, joined with their group name.
func GetServices() ([]models.Service, error) {
	rows, err := DB.Query(`SELECT s.id, s.code, s.name, COALESCE(s.group_id, 0), COALESCE(g.name, ''),
              s.category, s.provision_count, s.unit_cost, s.approvals
              FROM services s LEFT JOIN service_groups g ON g.id = s.group_id
              ORDER BY s.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying services: %w", err)
	}
	defer rows.Close()

	services := []models.Service{}
	for rows.Next() {
		var s models.Service
		var approvals string
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.GroupID, &s.GroupName, &s.Category, &s.ProvisionCount, &s.UnitCost, &approvals); err != nil {
			return nil, fmt.Errorf("scanning service row: %w", err)
		}
		s.Approvals = decodeApprovals(approvals)
		services = append(services, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating service rows: %w", err)
	}
	return services, nil
}

const clusterSelect = `SELECT c.id, c.code, c.name, c.region, c.cohesion,
              (SELECT COUNT(*) FROM cluster_members m WHERE m.cluster_id = c.id)
              FROM clusters c`

func scanCluster(row interface{ Scan(...any) error }) (models.Cluster, error) {
	var c models.Cluster
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Region, &c.Cohesion, &c.MemberCount)
	return c, err
}

// GetClusters returns all clusters in id order with member counts.
func GetClusters() ([]models.Cluster, error) {
	rows, err := DB.Query(clusterSelect + " ORDER BY c.id ASC")
	if err != nil {
		return nil, fmt.Errorf("querying clusters: %w", err)
	}
	defer rows.Close()

	clusters := []models.Cluster{}
	for rows.Next() {
		c, err := scanCluster(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning cluster row: %w", err)
		}
		clusters = append(clusters, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cluster rows: %w", err)
	}
	return clusters, nil
}

// GetClusterByID retrieves a single cluster. Unknown IDs yield ErrClusterNotFound.
func GetClusterByID(clusterID int64) (models.Cluster, error) {
	c, err := scanCluster(DB.QueryRow(clusterSelect+" WHERE c.id = ?", clusterID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, fmt.Errorf("%w: id %d", ErrClusterNotFound, clusterID)
		}
		return c, fmt.Errorf("querying cluster ID %d: %w", clusterID, err)
	}
	return c, nil
}

// GetClusterMembers returns the members of one cluster in id order.
func GetClusterMembers(clusterID int64) ([]models.ClusterMember, error) {
	if _, err := GetClusterByID(clusterID); err != nil {
		return nil, err
	}
	rows, err := DB.Query(`SELECT m.id, m.cluster_id, m.service_id, s.code, s.name, m.similarity, m.approvals
              FROM cluster_members m JOIN services s ON s.id = m.service_id
              WHERE m.cluster_id = ? ORDER BY m.id ASC`, clusterID)
	if err != nil {
		return nil, fmt.Errorf("querying members of cluster %d: %w", clusterID, err)
	}
	defer rows.Close()

	members := []models.ClusterMember{}
	for rows.Next() {
		var m models.ClusterMember
		var approvals string
		if err := rows.Scan(&m.ID, &m.ClusterID, &m.ServiceID, &m.ServiceCode, &m.ServiceName, &m.Similarity, &approvals); err != nil {
			return nil, fmt.Errorf("scanning member row for cluster %d: %w", clusterID, err)
		}
		m.Approvals = decodeApprovals(approvals)
		members = append(members, m)
	}
	return members, rows.Err()
}

// GetAbcdSets returns all classification sets in id order.
func GetAbcdSets() ([]models.AbcdSet, error) {
	rows, err := DB.Query(`SELECT id, code, name, class, service_count, active, approvals FROM abcd_sets ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying abcd sets: %w", err)
	}
	defer rows.Close()

	sets := []models.AbcdSet{}
	for rows.Next() {
		var a models.AbcdSet
		var approvals string
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Class, &a.ServiceCount, &a.Active, &approvals); err != nil {
			return nil, fmt.Errorf("scanning abcd set row: %w", err)
		}
		a.Approvals = decodeApprovals(approvals)
		sets = append(sets, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating abcd set rows: %w", err)
	}
	return sets, nil
}

// LoadDataset returns the records behind one catalog table in storage order.
// clusterID is only used by the cluster-members dataset.
func LoadDataset(name string, clusterID int64) ([]models.Record, error) {
	switch name {
	case core.DatasetServices:
		rows, err := GetServices()
		return toRecords(rows, err)
	case core.DatasetServiceGroups:
		rows, err := GetServiceGroups()
		return toRecords(rows, err)
	case core.DatasetClusters:
		rows, err := GetClusters()
		return toRecords(rows, err)
	case core.DatasetClusterMembers:
		if clusterID == 0 {
			return nil, fmt.Errorf("%w: no cluster selected", ErrClusterNotFound)
		}
		rows, err := GetClusterMembers(clusterID)
		return toRecords(rows, err)
	case core.DatasetAbcdSets:
		rows, err := GetAbcdSets()
		return toRecords(rows, err)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
}

func toRecords[T interface{ ToRecord() models.Record }](rows []T, err error) ([]models.Record, error) {
	if err != nil {
		return nil, err
	}
	out := make([]models.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToRecord())
	}
	return out, nil
}

var nonAlnum = regexp.MustCompile("[^A-Z0-9]+")

func groupCode(name string) string {
	code := strings.Trim(nonAlnum.ReplaceAllString(strings.ToUpper(name), "-"), "-")
	if code == "" {
		code = "UNNAMED"
	}
	return "GRP-" + code
}

// ImportServices upserts services by code. Groups are resolved by GroupID, or by GroupName
// (created on demand) when GroupID is zero. It returns the number of rows written.
func ImportServices(services []models.Service) (int, error) {
	tx, err := DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO services (code, name, group_id, category, provision_count, unit_cost, approvals)
              VALUES (?, ?, ?, ?, ?, ?, ?)
              ON CONFLICT(code) DO UPDATE SET name = excluded.name, group_id = excluded.group_id,
              category = excluded.category, provision_count = excluded.provision_count,
              unit_cost = excluded.unit_cost, approvals = excluded.approvals`)
	if err != nil {
		return 0, fmt.Errorf("preparing service upsert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, s := range services {
		s.Code = strings.TrimSpace(s.Code)
		if s.Code == "" || strings.TrimSpace(s.Name) == "" {
			logger.Warn("ImportServices: skipping service without code or name: %+v", s)
			continue
		}
		groupID := sql.NullInt64{Int64: s.GroupID, Valid: s.GroupID != 0}
		if !groupID.Valid && strings.TrimSpace(s.GroupName) != "" {
			id, err := ensureGroup(tx, strings.TrimSpace(s.GroupName))
			if err != nil {
				return written, err
			}
			groupID = sql.NullInt64{Int64: id, Valid: true}
		}
		approvals, err := encodeApprovals(s.Approvals)
		if err != nil {
			return written, err
		}
		if _, err := stmt.Exec(s.Code, s.Name, groupID, s.Category, s.ProvisionCount, s.UnitCost, approvals); err != nil {
			return written, fmt.Errorf("upserting service %s: %w", s.Code, err)
		}
		written++
	}
	if err := tx.Commit(); err != nil {
		return written, fmt.Errorf("committing import: %w", err)
	}
	return written, nil
}

func ensureGroup(tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRow("SELECT id FROM service_groups WHERE LOWER(name) = LOWER(?)", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("looking up group '%s': %w", name, err)
	}
	res, err := tx.Exec("INSERT INTO service_groups (code, name, approvals) VALUES (?, ?, '[]')", groupCode(name), name)
	if err != nil {
		return 0, fmt.Errorf("creating group '%s': %w", name, err)
	}
	return res.LastInsertId()
}
