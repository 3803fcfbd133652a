package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/html"
)

var (
	renderOutput       string
	renderTemplatesDir string
)

var renderCmd = &cobra.Command{
	Use:   "render <form-id>",
	Short: "Render a saved form as an HTML preview",
	Long: `Render a saved form as HTML using the built-in templates, or a custom
template directory with --templates.

Example:
  formbuilder render 4f7c...                     # Print HTML to stdout
  formbuilder render 4f7c... -o form.html        # Write HTML to a file
  formbuilder render 4f7c... --templates ./tmpl  # Use custom templates`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write HTML to a file instead of stdout")
	renderCmd.Flags().StringVar(&renderTemplatesDir, "templates", "", "custom template directory")
}

func runRender(cmd *cobra.Command, args []string) error {
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

	var options []html.Option
	if renderTemplatesDir != "" {
		options = append(options, html.WithTemplatesDir(renderTemplatesDir))
	}

	renderer, err := html.New(options...)
	if err != nil {
		return fmt.Errorf("configure html renderer: %w", err)
	}

	out, err := renderer.Render(cmd.Context(), schema, render.RenderOptions{})
	if err != nil {
		return err
	}

	if renderOutput != "" {
		if err := os.WriteFile(renderOutput, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", renderOutput, err)
		}
		printInfo("Wrote %s", renderOutput)
		return nil
	}

	cmd.Print(string(out))
	return nil
}
