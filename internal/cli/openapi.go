package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

var openapiFormName string

var openapiCmd = &cobra.Command{
	Use:   "openapi <spec-file> [operation-id]",
	Short: "Create a form from an OpenAPI operation's request body",
	Long: `Create a form from an OpenAPI 3 document. Without an operation id the
available operations are listed. With one, the request body schema is
converted into form fields and saved to the store.

Example:
  formbuilder openapi api.yaml                          # List operations
  formbuilder openapi api.yaml createUser               # Import createUser
  formbuilder openapi api.yaml createUser --name Signup # Custom form name`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runOpenAPI,
}

func init() {
	openapiCmd.Flags().StringVar(&openapiFormName, "name", "", "form name (default: the operation id)")
}

func runOpenAPI(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	importer := openapi.New()

	if len(args) == 1 {
		ops, err := importer.Operations(cmd.Context(), data)
		if err != nil {
			return err
		}
		printInfo("Operations in %s:", args[0])
		for _, op := range ops {
			cmd.Printf("  %s\n", op)
		}
		return nil
	}

	opID := args[1]
	fields, err := importer.ImportOperation(cmd.Context(), data, opID)
	if err != nil {
		return err
	}
	if err := validation.ValidateForSave(fields); err != nil {
		return fmt.Errorf("imported fields: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gateway, cleanup, err := openGateway(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	name := openapiFormName
	if name == "" {
		name = opID
	}
	saved, err := gateway.AddSchema(name, fields)
	if err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	printInfo("Created %q (%s) with %d fields", saved.Name, saved.ID, len(saved.Fields))
	return nil
}
