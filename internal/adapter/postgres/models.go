package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"gorm.io/datatypes"
)

type siteRecord struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"not null"`
	Location         string
	City             string
	ProjectNumber    string `gorm:"index"`
	ProjectManager   string
	EngineerInCharge string
	DrillingCompany  string
	Longitude        *float64
	Latitude         *float64
	Status           string    `gorm:"not null;default:active"`
	UserID           uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt        time.Time
}

func (siteRecord) TableName() string { return "sites" }

type surveyRecord struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SiteID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_surveys_site_created,priority:1"`
	Type         string         `gorm:"not null"`
	CreatedAt    time.Time      `gorm:"index:idx_surveys_site_created,priority:2,sort:desc"`
	CreatedBy    uuid.UUID      `gorm:"type:uuid"`
	CommonData   datatypes.JSON `gorm:"type:jsonb;not null"`
	SpecificData datatypes.JSON `gorm:"type:jsonb;not null"`
}

func (surveyRecord) TableName() string { return "surveys" }

func siteToRecord(s domain.Site) siteRecord {
	r := siteRecord{
		ID:               s.ID,
		Name:             s.Name,
		Location:         s.Location,
		City:             s.City,
		ProjectNumber:    s.ProjectNumber,
		ProjectManager:   s.ProjectManager,
		EngineerInCharge: s.EngineerInCharge,
		DrillingCompany:  s.DrillingCompany,
		Status:           string(s.Status),
		UserID:           s.UserID,
		CreatedAt:        s.CreatedAt,
	}
	if s.Coordinates != nil {
		lon, lat := s.Coordinates.Lon(), s.Coordinates.Lat()
		r.Longitude, r.Latitude = &lon, &lat
	}
	return r
}

func (r siteRecord) toDomain() domain.Site {
	s := domain.Site{
		ID:               r.ID,
		Name:             r.Name,
		Location:         r.Location,
		City:             r.City,
		ProjectNumber:    r.ProjectNumber,
		ProjectManager:   r.ProjectManager,
		EngineerInCharge: r.EngineerInCharge,
		DrillingCompany:  r.DrillingCompany,
		Status:           domain.SiteStatus(r.Status),
		UserID:           r.UserID,
		CreatedAt:        r.CreatedAt,
	}
	if r.Longitude != nil && r.Latitude != nil {
		s.Coordinates = &orb.Point{*r.Longitude, *r.Latitude}
	}
	return s
}

func surveyToRecord(s domain.Survey) (surveyRecord, error) {
	common, err := json.Marshal(s.Common)
	if err != nil {
		return surveyRecord{}, fmt.Errorf("encode common data: %w", err)
	}
	specific, err := json.Marshal(s.Specific)
	if err != nil {
		return surveyRecord{}, fmt.Errorf("encode specific data: %w", err)
	}
	return surveyRecord{
		ID:           s.ID,
		SiteID:       s.SiteID,
		Type:         string(s.Type),
		CreatedAt:    s.CreatedAt,
		CreatedBy:    s.CreatedBy,
		CommonData:   datatypes.JSON(common),
		SpecificData: datatypes.JSON(specific),
	}, nil
}

func (r surveyRecord) toDomain() (domain.Survey, error) {
	t, err := domain.ParseSurveyType(r.Type)
	if err != nil {
		return domain.Survey{}, fmt.Errorf("survey %s: %w", r.ID, err)
	}
	var common domain.CommonData
	if len(r.CommonData) > 0 {
		if err := json.Unmarshal(r.CommonData, &common); err != nil {
			return domain.Survey{}, fmt.Errorf("survey %s: decode common data: %w", r.ID, err)
		}
	}
	specific, err := domain.DecodeSpecific(t, json.RawMessage(r.SpecificData))
	if err != nil {
		return domain.Survey{}, fmt.Errorf("survey %s: %w", r.ID, err)
	}
	return domain.Survey{
		ID:        r.ID,
		SiteID:    r.SiteID,
		Type:      t,
		CreatedAt: r.CreatedAt,
		CreatedBy: r.CreatedBy,
		Common:    common,
		Specific:  specific,
	}, nil
}
