// Command surveyctl is the operator CLI of the report service: it runs
// exports outside the HTTP API, prints survey schemas, seeds fixtures, and
// applies database migrations.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/couchcryptid/field-survey-reports/internal/config"
	"github.com/couchcryptid/field-survey-reports/internal/observability"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "surveyctl",
		Short:         "Operate the field survey report service",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("read %s: %w", envFile, err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before configuration")

	root.AddCommand(
		newExportCmd(),
		newSchemaCmd(),
		newSeedCmd(),
		newMigrateCmd(),
	)
	return root
}

// loadConfig reads the environment. The CLI serves no /metrics endpoint, so
// its collectors stay unregistered.
func loadConfig() (*config.Config, *observability.Metrics, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, observability.NewMetricsForTesting(), nil
}
