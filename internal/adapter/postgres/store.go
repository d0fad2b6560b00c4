// Package postgres stores sites and surveys with gorm. Survey payload
// buckets are JSONB columns decoded through the domain tagged union.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
	"github.com/google/uuid"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to PostgreSQL.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Store is the site and survey record store.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on an open database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetSurvey returns the full survey record.
func (s *Store) GetSurvey(ctx context.Context, id uuid.UUID) (domain.Survey, error) {
	var r surveyRecord
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return domain.Survey{}, notFound(err, "get survey %s", id)
	}
	return r.toDomain()
}

// ListSurveysBySite returns the surveys of a site, newest first.
func (s *Store) ListSurveysBySite(ctx context.Context, siteID uuid.UUID) ([]domain.Survey, error) {
	var records []surveyRecord
	err := s.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list surveys of site %s: %w", siteID, err)
	}
	out := make([]domain.Survey, 0, len(records))
	for _, r := range records {
		sv, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, sv)
	}
	return out, nil
}

// GetSite returns a site.
func (s *Store) GetSite(ctx context.Context, id uuid.UUID) (domain.Site, error) {
	var r siteRecord
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return domain.Site{}, notFound(err, "get site %s", id)
	}
	return r.toDomain(), nil
}

// CreateSite inserts a site. A nil ID, empty status or zero creation time
// are filled in.
func (s *Store) CreateSite(ctx context.Context, site domain.Site) (domain.Site, error) {
	if site.ID == uuid.Nil {
		site.ID = uuid.New()
	}
	if site.Status == "" {
		site.Status = domain.SiteActive
	}
	if site.CreatedAt.IsZero() {
		site.CreatedAt = domain.Now().UTC()
	}
	r := siteToRecord(site)
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return domain.Site{}, fmt.Errorf("create site: %w", err)
	}
	return r.toDomain(), nil
}

// ArchiveSite moves a site to its terminal archived state.
func (s *Store) ArchiveSite(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&siteRecord{}).
		Where("id = ?", id).
		Update("status", string(domain.SiteArchived))
	if res.Error != nil {
		return fmt.Errorf("archive site %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("archive site %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteSite removes a site and its surveys.
func (s *Store) DeleteSite(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("site_id = ?", id).Delete(&surveyRecord{}).Error; err != nil {
			return fmt.Errorf("delete surveys of site %s: %w", id, err)
		}
		res := tx.Delete(&siteRecord{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete site %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("delete site %s: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

// CreateSurvey inserts a survey after checking its payload matches its type.
func (s *Store) CreateSurvey(ctx context.Context, survey domain.Survey) (domain.Survey, error) {
	if err := survey.Validate(); err != nil {
		return domain.Survey{}, fmt.Errorf("create survey: %w", err)
	}
	if survey.ID == uuid.Nil {
		survey.ID = uuid.New()
	}
	if survey.CreatedAt.IsZero() {
		survey.CreatedAt = domain.Now().UTC()
	}
	if _, err := s.GetSite(ctx, survey.SiteID); err != nil {
		return domain.Survey{}, fmt.Errorf("create survey: %w", err)
	}
	r, err := surveyToRecord(survey)
	if err != nil {
		return domain.Survey{}, fmt.Errorf("create survey: %w", err)
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return domain.Survey{}, fmt.Errorf("create survey: %w", err)
	}
	return r.toDomain()
}

// UpdateSurveyData replaces the common and specific data of a survey. The
// type tag cannot change.
func (s *Store) UpdateSurveyData(ctx context.Context, id uuid.UUID, next domain.Survey) (domain.Survey, error) {
	var updated domain.Survey
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r surveyRecord
		if err := tx.First(&r, "id = ?", id).Error; err != nil {
			return notFound(err, "update survey %s", id)
		}
		current, err := r.toDomain()
		if err != nil {
			return err
		}
		updated, err = current.ApplyUpdate(next)
		if err != nil {
			return fmt.Errorf("update survey %s: %w", id, err)
		}
		rec, err := surveyToRecord(updated)
		if err != nil {
			return err
		}
		return tx.Model(&surveyRecord{}).Where("id = ?", id).Updates(map[string]any{
			"common_data":   rec.CommonData,
			"specific_data": rec.SpecificData,
		}).Error
	})
	if err != nil {
		return domain.Survey{}, err
	}
	// Stored payloads come back with derived values recomputed.
	return s.GetSurvey(ctx, id)
}

// CheckReadiness pings the database.
func (s *Store) CheckReadiness(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = domain.ErrNotFound
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
