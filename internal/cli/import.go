package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/schemaio"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

var importSkipInvalid bool

var importCmd = &cobra.Command{
	Use:   "import <glob>",
	Short: "Import every schema file matching a glob pattern",
	Long: `Import every schema file matching a doublestar glob pattern. Schemas
failing validation or colliding with an existing form name abort the import
unless --skip-invalid is set.

Example:
  formbuilder import "forms/*.json"
  formbuilder import "forms/**/*.yaml" --skip-invalid`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importSkipInvalid, "skip-invalid", false, "skip schemas that fail validation or duplicate a name")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	schemas, err := schemaio.LoadGlob(args[0])
	if err != nil {
		return err
	}
	if len(schemas) == 0 {
		return fmt.Errorf("no schema files match %q", args[0])
	}

	gateway, cleanup, err := openGateway(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	imported := 0
	for _, schema := range schemas {
		if err := validation.ValidateForSave(schema.Fields); err != nil {
			if importSkipInvalid {
				printInfo("Skipping %q: %v", schema.Name, err)
				continue
			}
			return fmt.Errorf("schema %q: %w", schema.Name, err)
		}

		saved, err := gateway.AddSchema(schema.Name, schema.Fields)
		if err != nil {
			if importSkipInvalid && (errors.Is(err, storage.ErrDuplicateName) || errors.Is(err, storage.ErrEmptyName)) {
				printInfo("Skipping %q: %v", schema.Name, err)
				continue
			}
			return fmt.Errorf("import %q: %w", schema.Name, err)
		}
		printVerbose("Imported %q as %s", saved.Name, saved.ID)
		imported++
	}

	printInfo("Imported %d of %d forms", imported, len(schemas))
	return nil
}
