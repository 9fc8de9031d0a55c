package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

var schemaOutput string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schema for the VDA 5050 order and instant-action wire shapes",
	Long: `Generate a JSON schema describing the Order and Action payloads this
runtime accepts.

The schema can be used for:
  - IDE autocompletion when authoring test fixtures
  - Validating a master-control payload before it is sent over MQTT
  - Documentation generation

Examples:
  # Print schema to stdout
  vda5050pp schema

  # Save schema to file
  vda5050pp schema --output order.schema.json`,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "Output file (default: stdout)")
}

// wireShapes is a throwaway container so one Reflect call produces
// definitions for both types the transport accepts.
type wireShapes struct {
	Order  vdamodel.Order  `json:"order"`
	Action vdamodel.Action `json:"action"`
}

func runSchema(cmd *cobra.Command, args []string) error {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := reflector.Reflect(&wireShapes{})
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = "VDA 5050 order and action wire shapes"
	schema.Description = "Schema for the Order and Action payloads vda5050pp's Logic façade accepts"

	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if schemaOutput != "" {
		if err := os.WriteFile(schemaOutput, schemaJSON, 0644); err != nil {
			return fmt.Errorf("failed to write schema file: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "JSON schema written to %s\n", schemaOutput)
		return nil
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(schemaJSON))
	return nil
}
