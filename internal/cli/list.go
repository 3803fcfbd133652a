package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved form schemas",
	Long: `List every form schema in the configured store with its id, name,
field count, and creation time.

Example:
  formbuilder list
  formbuilder list -c custom-config.yaml`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
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
	if len(schemas) == 0 {
		printInfo("No saved forms")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tFIELDS\tCREATED")
	for _, schema := range schemas {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			schema.ID, schema.Name, len(schema.Fields), schema.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
