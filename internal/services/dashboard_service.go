package services

import (
	"context"
	"sort"

	"imobcrm/internal/domain"
)

// DashboardStats is the chart-ready aggregate returned to the frontend.
type DashboardStats struct {
	TotalLeads       int                       `json:"total_leads"`
	LeadsByStatus    map[domain.LeadStatus]int `json:"leads_by_status"`
	LeadsBySource    map[domain.LeadSource]int `json:"leads_by_source"`
	TotalProperties  int                       `json:"total_properties"`
	PropertiesByStatus map[domain.PropertyStatus]int `json:"properties_by_status"`
	LatestLeads      []domain.Lead             `json:"latest_leads"`
	LatestProperties []domain.Property         `json:"latest_properties"`
}

// DashboardService aggregates lead and property figures for the signed-in
// user's dashboard.
type DashboardService struct {
	leads      *LeadService
	properties *PropertyService
}

func NewDashboardService(leads *LeadService, properties *PropertyService) *DashboardService {
	return &DashboardService{leads: leads, properties: properties}
}

const latestCount = 3

// Stats computes the dashboard aggregates over everything the actor can see.
func (s *DashboardService) Stats(ctx context.Context, actor Actor) (*DashboardStats, error) {
	leads, err := s.leads.List(ctx, actor, "")
	if err != nil {
		return nil, err
	}
	properties, err := s.properties.List(ctx, actor, "")
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalLeads: len(leads),
		LeadsByStatus: map[domain.LeadStatus]int{
			domain.LeadCold: 0,
			domain.LeadWarm: 0,
			domain.LeadHot:  0,
		},
		LeadsBySource:   map[domain.LeadSource]int{},
		TotalProperties: len(properties),
		PropertiesByStatus: map[domain.PropertyStatus]int{
			domain.PropertyAvailable: 0,
			domain.PropertyReserved:  0,
			domain.PropertySold:      0,
		},
	}

	for _, lead := range leads {
		stats.LeadsByStatus[lead.Status]++
		stats.LeadsBySource[lead.Source]++
	}
	for _, property := range properties {
		stats.PropertiesByStatus[property.Status]++
	}

	sort.Slice(leads, func(i, j int) bool { return leads[i].CreatedAt.After(leads[j].CreatedAt) })
	sort.Slice(properties, func(i, j int) bool { return properties[i].CreatedAt.After(properties[j].CreatedAt) })

	stats.LatestLeads = leads[:min(latestCount, len(leads))]
	stats.LatestProperties = properties[:min(latestCount, len(properties))]

	return stats, nil
}
