package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/couchcryptid/field-survey-reports/internal/app"
	"github.com/couchcryptid/field-survey-reports/internal/observability"
	"github.com/couchcryptid/field-survey-reports/internal/pipeline"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a survey report or a site's survey list",
	}
	cmd.AddCommand(
		newExportTargetCmd("survey", "Export the report of one survey", (*pipeline.Exporter).ExportSurvey),
		newExportTargetCmd("site", "Export the survey list of a site", (*pipeline.Exporter).ExportSurveyList),
	)
	return cmd
}

type exportFunc = func(*pipeline.Exporter, context.Context, uuid.UUID) (pipeline.Result, error)

func newExportTargetCmd(use, short string, run exportFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid %s id %q: %w", use, args[0], err)
			}
			cfg, metrics, err := loadConfig()
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg)

			a, err := app.New(cmd.Context(), cfg, logger, metrics)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := run(a.Exporter, cmd.Context(), id)
			if err != nil {
				var exportErr *pipeline.ExportError
				if errors.As(err, &exportErr) {
					fmt.Fprintln(cmd.ErrOrStderr(), exportErr.Message)
				}
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res.Output)
		},
	}
}
