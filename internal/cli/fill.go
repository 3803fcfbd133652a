package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
)

var fillOutput string

var fillCmd = &cobra.Command{
	Use:   "fill <form-id>",
	Short: "Fill a saved form interactively in the terminal",
	Long: `Fill a saved form interactively. Each field is prompted in order and
re-asked until the value passes its validation rules. Derived fields are
computed from their parents and shown once collected.

The filled values are printed as JSON, or written to a file with -o.

Example:
  formbuilder fill 4f7c...                 # Prompt and print JSON
  formbuilder fill 4f7c... -o values.json  # Write values to a file`,
	Args: cobra.ExactArgs(1),
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringVarP(&fillOutput, "output", "o", "", "write filled values to a file instead of stdout")
}

func runFill(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gateway, cleanup, err := openGateway(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	schema, ok := gateway.Schema(args[0])
	if !ok {
		return fmt.Errorf("form %q not found", args[0])
	}

	format := tui.OutputFormatJSON
	if cfg.Output.Format == "pretty" {
		format = tui.OutputFormatPrettyText
	}

	renderer, err := tui.New(tui.WithOutputFormat(format))
	if err != nil {
		return fmt.Errorf("configure terminal renderer: %w", err)
	}

	printInfo("Filling %q (%d fields)", schema.Name, len(schema.Fields))
	out, err := renderer.Render(cmd.Context(), schema, render.RenderOptions{})
	if err != nil {
		return err
	}

	if fillOutput != "" {
		if err := os.WriteFile(fillOutput, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", fillOutput, err)
		}
		printInfo("Wrote %s", fillOutput)
		return nil
	}

	cmd.Println(string(out))
	return nil
}
