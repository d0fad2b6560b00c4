package postgres

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// Migrate brings the schema to the latest version.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20240501_create_sites_surveys",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&siteRecord{}, &surveyRecord{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("surveys", "sites")
			},
		},
		{
			ID: "20240612_add_site_coordinates",
			Migrate: func(tx *gorm.DB) error {
				for _, col := range []string{"Longitude", "Latitude"} {
					if tx.Migrator().HasColumn(&siteRecord{}, col) {
						continue
					}
					if err := tx.Migrator().AddColumn(&siteRecord{}, col); err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				if err := tx.Migrator().DropColumn(&siteRecord{}, "Latitude"); err != nil {
					return err
				}
				return tx.Migrator().DropColumn(&siteRecord{}, "Longitude")
			},
		},
	})
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
