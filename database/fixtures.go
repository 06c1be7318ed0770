package database

import (
	"fmt"

	"provisionhub/logger"
	"provisionhub/models"
)

// fixtureMarkers builds a deterministic approval array for row i of a table.
// The same (table, i) always yields the same markers, so filters and tests are reproducible.
func fixtureMarkers(table string, i int) []string {
	seed := 0
	for _, r := range table {
		seed = seed*31 + int(r)
	}
	out := make([]string, models.ApprovalSlots)
	for j := range out {
		h := (seed + i*37 + j*11 + i*j*7) % 9
		if h < 0 {
			h = -h
		}
		switch {
		case h < 2:
			out[j] = models.MarkerApproved
		case h == 2:
			out[j] = models.MarkerRejected
		default:
			out[j] = models.MarkerPending
		}
	}
	return out
}

var fixtureGroups = []struct {
	Name        string
	Description string
	Category    string
	Services    []string
}{
	{"Cardiology", "Heart and circulatory services", "Specialist", []string{"Echocardiogram", "Cardiac Rehabilitation", "Angioplasty", "Holter Monitoring", "Heart Failure Clinic"}},
	{"Oncology", "Cancer diagnosis and treatment", "Specialist", []string{"Chemotherapy Day Unit", "Radiotherapy", "Breast Screening", "Palliative Care", "Tumour Board Review"}},
	{"Orthopaedics", "Musculoskeletal services", "Surgical", []string{"Hip Replacement", "Knee Arthroscopy", "Fracture Clinic", "Spinal Surgery", "Physiotherapy"}},
	{"Mental Health", "Adult and child mental health", "Community", []string{"Crisis Resolution", "Talking Therapies", "Memory Assessment", "Eating Disorders Service", "Early Intervention in Psychosis"}},
	{"Maternity", "Antenatal, birth and postnatal care", "Acute", []string{"Antenatal Clinic", "Midwife-led Birth Unit", "Neonatal Intensive Care", "Postnatal Visits", "Fetal Medicine"}},
	{"Diagnostics", "Imaging and pathology", "Diagnostics", []string{"MRI Scan", "CT Scan", "Ultrasound", "Blood Sciences", "Endoscopy"}},
}

var fixtureClusters = []struct {
	Name   string
	Region string
}{
	{"High-volume elective", "North"},
	{"Urgent and emergency", "South"},
	{"Long-term conditions", "East"},
	{"Community outreach", "West"},
}

var fixtureSets = []struct {
	Name  string
	Class string
}{
	{"Core acute provision", "A"},
	{"Regional specialist provision", "A"},
	{"Planned care pathways", "B"},
	{"Diagnostic network", "B"},
	{"Community step-down", "C"},
	{"Outreach clinics", "C"},
	{"Legacy contracts", "D"},
	{"Pilot services", "D"},
}

// SeedFixtures loads the deterministic demo record sets. Running it twice leaves the data unchanged.
func SeedFixtures() error {
	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	serviceIdx := 0
	var serviceCodes []string
	for gi, g := range fixtureGroups {
		groupCode := fmt.Sprintf("GRP-%02d", gi+1)
		approvals, err := encodeApprovals(fixtureMarkers("service_groups", gi))
		if err != nil {
			return err
		}
		if _, err := tx.Exec("INSERT OR IGNORE INTO service_groups (code, name, description, approvals) VALUES (?, ?, ?, ?)",
			groupCode, g.Name, models.NullString(g.Description), approvals); err != nil {
			return fmt.Errorf("seeding group '%s': %w", g.Name, err)
		}
		var groupID int64
		if err := tx.QueryRow("SELECT id FROM service_groups WHERE code = ?", groupCode).Scan(&groupID); err != nil {
			return fmt.Errorf("resolving seeded group '%s': %w", g.Name, err)
		}

		for _, name := range g.Services {
			serviceIdx++
			code := fmt.Sprintf("SVC-%04d", serviceIdx)
			approvals, err := encodeApprovals(fixtureMarkers("services", serviceIdx))
			if err != nil {
				return err
			}
			provisions := 5 + (serviceIdx*53)%240
			cost := float64(120+(serviceIdx*97)%4800) + 0.5*float64(serviceIdx%2)
			if _, err := tx.Exec(`INSERT OR IGNORE INTO services (code, name, group_id, category, provision_count, unit_cost, approvals)
				VALUES (?, ?, ?, ?, ?, ?, ?)`, code, name, groupID, g.Category, provisions, cost, approvals); err != nil {
				return fmt.Errorf("seeding service '%s': %w", name, err)
			}
			serviceCodes = append(serviceCodes, code)
		}
	}

	for ci, c := range fixtureClusters {
		code := fmt.Sprintf("CL-%03d", ci+1)
		cohesion := 0.55 + float64((ci*13)%40)/100
		if _, err := tx.Exec("INSERT OR IGNORE INTO clusters (code, name, region, cohesion) VALUES (?, ?, ?, ?)",
			code, c.Name, c.Region, cohesion); err != nil {
			return fmt.Errorf("seeding cluster '%s': %w", c.Name, err)
		}
		var clusterID int64
		if err := tx.QueryRow("SELECT id FROM clusters WHERE code = ?", code).Scan(&clusterID); err != nil {
			return fmt.Errorf("resolving seeded cluster '%s': %w", c.Name, err)
		}
		for si, svcCode := range serviceCodes {
			if si%len(fixtureClusters) != ci {
				continue
			}
			approvals, err := encodeApprovals(fixtureMarkers("cluster_members", si))
			if err != nil {
				return err
			}
			similarity := 0.4 + float64((si*29)%60)/100
			if _, err := tx.Exec(`INSERT OR IGNORE INTO cluster_members (cluster_id, service_id, similarity, approvals)
				SELECT ?, id, ?, ? FROM services WHERE code = ?`, clusterID, similarity, approvals, svcCode); err != nil {
				return fmt.Errorf("seeding member %s of cluster '%s': %w", svcCode, c.Name, err)
			}
		}
	}

	for si, s := range fixtureSets {
		code := fmt.Sprintf("SET-%s-%02d", s.Class, si+1)
		approvals, err := encodeApprovals(fixtureMarkers("abcd_sets", si))
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT OR IGNORE INTO abcd_sets (code, name, class, service_count, active, approvals)
			VALUES (?, ?, ?, ?, ?, ?)`, code, s.Name, s.Class, 3+(si*7)%12, si%4 != 3, approvals); err != nil {
			return fmt.Errorf("seeding abcd set '%s': %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}
	logger.Info("Seeded fixtures: %d groups, %d services, %d clusters, %d abcd sets",
		len(fixtureGroups), len(serviceCodes), len(fixtureClusters), len(fixtureSets))
	return nil
}
