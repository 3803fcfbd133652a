// Package schemaio reads and writes saved form schemas as JSON or YAML files,
// for export, import, and fixture loading.
package schemaio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Format identifies a serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks a format from a file extension. Unknown extensions
// default to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// document is the on-disk envelope. Export always writes this shape; Decode
// also accepts a bare schema object or a bare list for hand-written files.
type document struct {
	Forms []model.FormSchema `json:"forms"`
}

// Encode serializes schemas in the requested format.
func Encode(schemas []model.FormSchema, format Format) ([]byte, error) {
	doc := document{Forms: schemas}
	if doc.Forms == nil {
		doc.Forms = []model.FormSchema{}
	}

	switch format {
	case FormatYAML:
		// round-trip through JSON so the schema types keep a single
		// serialization shape
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("schemaio: encode: %w", err)
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return nil, fmt.Errorf("schemaio: encode: %w", err)
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("schemaio: encode yaml: %w", err)
		}
		return out, nil
	default:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("schemaio: encode json: %w", err)
		}
		return append(out, '\n'), nil
	}
}

// Decode parses schemas from data. The payload may be a {"forms": [...]}
// envelope, a bare list, or a single schema object.
func Decode(data []byte, format Format) ([]model.FormSchema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("schemaio: empty document")
	}

	if format == FormatYAML {
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("schemaio: parse yaml: %w", err)
		}
		raw, err := json.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("schemaio: parse yaml: %w", err)
		}
		data = raw
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err == nil && doc.Forms != nil {
		return doc.Forms, nil
	}

	var list []model.FormSchema
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var single model.FormSchema
	if err := json.Unmarshal(data, &single); err == nil && len(single.Fields) > 0 {
		return []model.FormSchema{single}, nil
	}

	return nil, fmt.Errorf("schemaio: document is not a schema, list, or forms envelope")
}

// LoadFile reads and decodes one schema file, picking the format from the
// extension.
func LoadFile(path string) ([]model.FormSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemaio: read %s: %w", path, err)
	}
	schemas, err := Decode(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("schemaio: %s: %w", path, err)
	}
	return schemas, nil
}

// LoadGlob loads every schema file matching a doublestar pattern, e.g.
// "forms/**/*.yaml". Matches are processed in sorted order so results are
// deterministic.
func LoadGlob(pattern string) ([]model.FormSchema, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("schemaio: glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	var out []model.FormSchema
	for _, path := range matches {
		schemas, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, schemas...)
	}
	return out, nil
}

// WriteFile encodes schemas and writes them to path, picking the format from
// the extension.
func WriteFile(path string, schemas []model.FormSchema) error {
	data, err := Encode(schemas, FormatForPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("schemaio: write %s: %w", path, err)
	}
	return nil
}
