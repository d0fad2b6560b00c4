package main

import (
	"fmt"
	"io"

	"github.com/couchcryptid/field-survey-reports/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type schemaDoc struct {
	Type   domain.SurveyType `yaml:"type"`
	Label  string            `yaml:"label"`
	Fields []domain.Field    `yaml:"fields"`
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [type]",
		Short: "Print survey field descriptors as YAML",
		Long: `Print the field descriptors of one survey type, or of the common fields
and every type when no type is given.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: surveyTypeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeSchema(cmd.OutOrStdout(), args)
		},
	}
}

func writeSchema(w io.Writer, args []string) error {
	types := domain.SurveyTypes
	if len(args) == 1 {
		t, err := domain.ParseSurveyType(args[0])
		if err != nil {
			return err
		}
		types = []domain.SurveyType{t}
	}

	var docs []schemaDoc
	if len(args) == 0 {
		docs = append(docs, schemaDoc{Type: "common", Label: "Champs communs", Fields: domain.CommonSchema()})
	}
	for _, t := range types {
		fields, err := domain.Schema(t)
		if err != nil {
			return err
		}
		docs = append(docs, schemaDoc{Type: t, Label: t.Label(), Fields: fields})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, d := range docs {
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode %s schema: %w", d.Type, err)
		}
	}
	return enc.Close()
}

func surveyTypeNames() []string {
	names := make([]string, len(domain.SurveyTypes))
	for i, t := range domain.SurveyTypes {
		names[i] = string(t)
	}
	return names
}
