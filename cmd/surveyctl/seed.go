package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/field-survey-reports/internal/adapter/postgres"
	"github.com/couchcryptid/field-survey-reports/internal/domain"
	"github.com/spf13/cobra"
)

// fixtures is the seed file format.
type fixtures struct {
	Sites   []domain.Site   `json:"sites"`
	Surveys []domain.Survey `json:"surveys"`
}

// seeder is the part of the record store seeding writes through.
type seeder interface {
	CreateSite(ctx context.Context, site domain.Site) (domain.Site, error)
	CreateSurvey(ctx context.Context, survey domain.Survey) (domain.Survey, error)
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixtures.json>",
		Short: "Load sites and surveys from a JSON fixture file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := postgres.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if cfg.DBAutoMigrate {
				if err := postgres.Migrate(db); err != nil {
					return err
				}
			}
			return seed(cmd.Context(), postgres.NewStore(db), f, cmd.OutOrStdout())
		},
	}
}

// seed creates every site, then every survey. Surveys may reference sites
// created earlier in the same file.
func seed(ctx context.Context, store seeder, r io.Reader, out io.Writer) error {
	var fx fixtures
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fx); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	for i, site := range fx.Sites {
		created, err := store.CreateSite(ctx, site)
		if err != nil {
			return fmt.Errorf("site %d (%s): %w", i, site.Name, err)
		}
		fmt.Fprintf(out, "site    %s  %s\n", created.ID, created.Name)
	}
	for i, survey := range fx.Surveys {
		created, err := store.CreateSurvey(ctx, survey)
		if err != nil {
			return fmt.Errorf("survey %d (%s): %w", i, survey.DisplayName(), err)
		}
		fmt.Fprintf(out, "survey  %s  %s  %s\n", created.ID, created.Type, created.DisplayName())
	}
	fmt.Fprintf(out, "seeded %d sites, %d surveys\n", len(fx.Sites), len(fx.Surveys))
	return nil
}
