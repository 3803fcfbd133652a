package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <form-id>",
	Short: "Delete a saved form schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gateway, cleanup, err := openGateway(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	id := args[0]
	if _, ok := gateway.Schema(id); !ok {
		return fmt.Errorf("form %q not found", id)
	}
	if err := gateway.DeleteSchema(id); err != nil {
		return fmt.Errorf("delete %q: %w", id, err)
	}
	printInfo("Deleted %s", id)
	return nil
}
