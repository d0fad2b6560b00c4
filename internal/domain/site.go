package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// SiteStatus is the lifecycle state of a site.
type SiteStatus string

const (
	SiteActive   SiteStatus = "active"
	SiteArchived SiteStatus = "archived"
)

// Site is a project location that surveys are attached to.
type Site struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"` // client name
	Location         string     `json:"location"`
	City             string     `json:"city"`
	ProjectNumber    string     `json:"project_number"`
	ProjectManager   string     `json:"project_manager"`
	EngineerInCharge string     `json:"engineer_in_charge"` // field operator
	DrillingCompany  string     `json:"drilling_company"`
	Coordinates      *orb.Point `json:"coordinates,omitempty"` // [lon, lat]
	Status           SiteStatus `json:"status"`
	UserID           uuid.UUID  `json:"user_id"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Address joins the street address and city the way reports print them.
func (s Site) Address() string {
	switch {
	case s.Location == "":
		return s.City
	case s.City == "":
		return s.Location
	default:
		return s.Location + ", " + s.City
	}
}

// Archived reports whether the site reached its terminal state.
func (s Site) Archived() bool {
	return s.Status == SiteArchived
}
