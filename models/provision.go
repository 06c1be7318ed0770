package models

// ServiceGroup is a named grouping of services (e.g. "Cardiology").
type ServiceGroup struct {
	ID           int64    `json:"id" example:"1" readOnly:"true"`
	Code         string   `json:"code" example:"GRP-01"`
	Name         string   `json:"name" example:"Cardiology"`
	Description  string   `json:"description,omitempty"`
	ServiceCount int      `json:"service_count" readOnly:"true"`
	Approvals    []string `json:"approvals"`
}

// Service is a single healthcare provision offering.
type Service struct {
	ID             int64    `json:"id" example:"1" readOnly:"true"`
	Code           string   `json:"code" example:"SVC-0001"`
	Name           string   `json:"name" example:"Echocardiogram"`
	GroupID        int64    `json:"group_id"`
	GroupName      string   `json:"group_name,omitempty" readOnly:"true"`
	Category       string   `json:"category" example:"Diagnostics"`
	ProvisionCount int      `json:"provision_count"`
	UnitCost       float64  `json:"unit_cost"`
	Approvals      []string `json:"approvals"`
}

// Cluster is a set of services grouped by similarity analysis.
type Cluster struct {
	ID          int64   `json:"id" example:"1" readOnly:"true"`
	Code        string  `json:"code" example:"CL-001"`
	Name        string  `json:"name"`
	Region      string  `json:"region"`
	MemberCount int     `json:"member_count" readOnly:"true"`
	Cohesion    float64 `json:"cohesion"`
}

// ClusterMember links a service into a cluster.
type ClusterMember struct {
	ID          int64    `json:"id" readOnly:"true"`
	ClusterID   int64    `json:"cluster_id"`
	ServiceID   int64    `json:"service_id"`
	ServiceCode string   `json:"service_code" readOnly:"true"`
	ServiceName string   `json:"service_name" readOnly:"true"`
	Similarity  float64  `json:"similarity"`
	Approvals   []string `json:"approvals"`
}

// AbcdSet is a classification set, Class is one of A, B, C or D.
type AbcdSet struct {
	ID           int64    `json:"id" readOnly:"true"`
	Code         string   `json:"code" example:"SET-A-01"`
	Name         string   `json:"name"`
	Class        string   `json:"class" example:"A"`
	ServiceCount int      `json:"service_count"`
	Active       bool     `json:"active"`
	Approvals    []string `json:"approvals"`
}

func (g ServiceGroup) ToRecord() Record {
	return Record{
		"id":            g.ID,
		"code":          g.Code,
		"name":          g.Name,
		"description":   g.Description,
		"service_count": g.ServiceCount,
		"approvals":     g.Approvals,
	}
}

func (s Service) ToRecord() Record {
	return Record{
		"id":              s.ID,
		"code":            s.Code,
		"name":            s.Name,
		"group_id":        s.GroupID,
		"group_name":      s.GroupName,
		"category":        s.Category,
		"provision_count": s.ProvisionCount,
		"unit_cost":       s.UnitCost,
		"approvals":       s.Approvals,
	}
}

func (c Cluster) ToRecord() Record {
	return Record{
		"id":           c.ID,
		"code":         c.Code,
		"name":         c.Name,
		"region":       c.Region,
		"member_count": c.MemberCount,
		"cohesion":     c.Cohesion,
	}
}

func (m ClusterMember) ToRecord() Record {
	return Record{
		"id":           m.ID,
		"cluster_id":   m.ClusterID,
		"service_id":   m.ServiceID,
		"service_code": m.ServiceCode,
		"service_name": m.ServiceName,
		"similarity":   m.Similarity,
		"approvals":    m.Approvals,
	}
}

func (a AbcdSet) ToRecord() Record {
	return Record{
		"id":            a.ID,
		"code":          a.Code,
		"name":          a.Name,
		"class":         a.Class,
		"service_count": a.ServiceCount,
		"active":        a.Active,
		"approvals":     a.Approvals,
	}
}
