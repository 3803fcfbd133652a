package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/schemaio"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

var watchDebounce int

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a schema file and keep the store in sync",
	Long: `Watch a schema file for changes and re-save it to the store on every
write. Schemas are matched to existing forms by name, so edits update in
place; new names create new forms. Invalid saves are reported and skipped.

Example:
  formbuilder watch contact.json
  formbuilder watch survey.yaml --debounce 1000`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 500, "debounce duration in milliseconds")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gateway, cleanup, err := openGateway(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	path := args[0]
	if err := syncFile(gateway, path); err != nil {
		printError("%v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// watch the directory, not the file: editors typically replace the file
	// on save, which drops a direct file watch
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	debounce := time.Duration(watchDebounce) * time.Millisecond
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	printInfo("Watching %s", path)
	printInfo("Press Ctrl+C to stop")

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			changed, _ := filepath.Abs(event.Name)
			if changed != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			if err := syncFile(gateway, path); err != nil {
				printError("%v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError("watch: %v", err)
		}
	}
}

// syncFile validates the schemas in path and saves them, updating existing
// forms matched by name.
func syncFile(gateway *storage.Gateway, path string) error {
	schemas, err := schemaio.LoadFile(path)
	if err != nil {
		return err
	}

	existing := gateway.LoadAll()
	byName := make(map[string]string, len(existing))
	for _, schema := range existing {
		byName[strings.ToLower(schema.Name)] = schema.ID
	}

	for _, schema := range schemas {
		if err := validation.ValidateForSave(schema.Fields); err != nil {
			return fmt.Errorf("schema %q: %w", schema.Name, err)
		}

		if id, ok := byName[strings.ToLower(schema.Name)]; ok {
			current, found := gateway.Schema(id)
			if !found {
				continue
			}
			current.Fields = schema.Fields
			if err := gateway.UpdateSchema(current); err != nil {
				return fmt.Errorf("update %q: %w", schema.Name, err)
			}
			printInfo("Updated %q (%s)", schema.Name, id)
			continue
		}

		saved, err := gateway.AddSchema(schema.Name, schema.Fields)
		if err != nil {
			return fmt.Errorf("save %q: %w", schema.Name, err)
		}
		printInfo("Saved %q (%s)", saved.Name, saved.ID)
	}
	return nil
}
