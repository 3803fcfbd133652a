package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/schemaio"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

var saveName string

var saveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Validate a schema file and save it to the store",
	Long: `Validate a schema file and save it to the configured store.

The file may be JSON or YAML and may contain one schema or several. Each
schema is checked before saving: it must have at least one field, every
field needs a label, and choice fields need options. Duplicate form names
are rejected.

Example:
  formbuilder save contact.json
  formbuilder save survey.yaml --name "Customer survey"`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func init() {
	saveCmd.Flags().StringVar(&saveName, "name", "", "override the form name (single-schema files only)")
}

func runSave(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	schemas, err := schemaio.LoadFile(args[0])
	if err != nil {
		return err
	}
	if len(schemas) == 0 {
		return fmt.Errorf("no schemas found in %s", args[0])
	}
	if saveName != "" && len(schemas) > 1 {
		return fmt.Errorf("--name applies to single-schema files, %s has %d", args[0], len(schemas))
	}

	gateway, cleanup, err := openGateway(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, schema := range schemas {
		if err := validation.ValidateForSave(schema.Fields); err != nil {
			return fmt.Errorf("schema %q: %w", schema.Name, err)
		}

		name := schema.Name
		if saveName != "" {
			name = saveName
		}

		saved, err := gateway.AddSchema(name, schema.Fields)
		if err != nil {
			return fmt.Errorf("save %q: %w", name, err)
		}
		printInfo("Saved %q (%s) with %d fields", saved.Name, saved.ID, len(saved.Fields))
	}
	return nil
}
