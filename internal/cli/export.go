package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/schemaio"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export every saved schema to a JSON or YAML file",
	Long: `Export every saved schema to one file. The format is picked from the
file extension: .yaml/.yml writes YAML, anything else writes JSON.

Example:
  formbuilder export backup.json
  formbuilder export forms.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gateway, cleanup, err := openGateway(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	schemas := gateway.LoadAll()
	if err := schemaio.WriteFile(args[0], schemas); err != nil {
		return err
	}
	printInfo("Exported %d forms to %s", len(schemas), args[0])
	return nil
}
