package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// DefaultKey is the store key holding the serialized schema collection.
const DefaultKey = "forms"

var (
	// ErrDuplicateName signals that a schema with the same name (compared
	// case-insensitively after trimming) already exists. Nothing is written.
	ErrDuplicateName = errors.New("storage: a form with this name already exists")
	// ErrEmptyName signals a blank schema name.
	ErrEmptyName = errors.New("storage: form name must not be empty")
)

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithStorageKey overrides the collection key.
func WithStorageKey(key string) GatewayOption {
	return func(g *Gateway) {
		if strings.TrimSpace(key) != "" {
			g.key = key
		}
	}
}

// WithClock injects the timestamp source used for CreatedAt.
func WithClock(now func() time.Time) GatewayOption {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

// WithIDFunc injects the schema id generator.
func WithIDFunc(fn func() string) GatewayOption {
	return func(g *Gateway) {
		if fn != nil {
			g.idFunc = fn
		}
	}
}

// WithLogger routes corruption reports to the given logger.
func WithLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Gateway owns the serialized schema collection inside a KV. Reads and writes
// are whole-collection: the store is assumed single-writer and local, so no
// locking or merge logic is attempted.
type Gateway struct {
	kv     KV
	key    string
	logger *slog.Logger
	now    func() time.Time
	idFunc func() string
}

// NewGateway constructs a gateway over the given store.
func NewGateway(kv KV, options ...GatewayOption) *Gateway {
	g := &Gateway{
		kv:     kv,
		key:    DefaultKey,
		logger: slog.Default(),
		now:    time.Now,
		idFunc: uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

// LoadAll reads the stored collection. An absent key yields an empty list;
// malformed content is logged and likewise treated as empty so a corrupted
// store never takes the application down.
func (g *Gateway) LoadAll() []model.FormSchema {
	raw, ok, err := g.kv.Get(g.key)
	if err != nil {
		g.logger.Warn("formbuilder: load schema collection", "key", g.key, "error", err)
		return nil
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}

	var schemas []model.FormSchema
	if err := json.Unmarshal([]byte(raw), &schemas); err != nil {
		g.logger.Warn("formbuilder: stored schema collection is malformed", "key", g.key, "error", err)
		return nil
	}
	return schemas
}

// SaveAll serializes and writes the full collection, replacing any prior
// value.
func (g *Gateway) SaveAll(schemas []model.FormSchema) error {
	if schemas == nil {
		schemas = []model.FormSchema{}
	}
	data, err := json.Marshal(schemas)
	if err != nil {
		return fmt.Errorf("storage: encode schema collection: %w", err)
	}
	if err := g.kv.Set(g.key, string(data)); err != nil {
		return fmt.Errorf("storage: persist schema collection: %w", err)
	}
	return nil
}

// AddSchema snapshots the fields into a new named schema and appends it to
// the collection. Names are trimmed and must be unique case-insensitively; on
// ErrEmptyName or ErrDuplicateName nothing is written.
func (g *Gateway) AddSchema(name string, fields []model.FormField) (model.FormSchema, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return model.FormSchema{}, ErrEmptyName
	}

	schemas := g.LoadAll()
	for _, existing := range schemas {
		if strings.EqualFold(strings.TrimSpace(existing.Name), trimmed) {
			return model.FormSchema{}, ErrDuplicateName
		}
	}

	schema := model.FormSchema{
		ID:        g.idFunc(),
		Name:      trimmed,
		CreatedAt: g.now().UTC(),
		Fields:    model.CloneFields(fields),
	}
	if err := g.SaveAll(append(schemas, schema)); err != nil {
		return model.FormSchema{}, err
	}
	return schema, nil
}

// UpdateSchema replaces the stored schema with the same id. Unknown ids are a
// no-op; the builder UI does not expose this yet but the model supports it.
func (g *Gateway) UpdateSchema(schema model.FormSchema) error {
	schemas := g.LoadAll()
	for i, existing := range schemas {
		if existing.ID == schema.ID {
			schemas[i] = schema.Clone()
			return g.SaveAll(schemas)
		}
	}
	return nil
}

// DeleteSchema removes the schema with the given id and persists the rest.
// An absent id is a no-op, not an error.
func (g *Gateway) DeleteSchema(id string) error {
	schemas := g.LoadAll()
	kept := schemas[:0]
	removed := false
	for _, schema := range schemas {
		if schema.ID == id {
			removed = true
			continue
		}
		kept = append(kept, schema)
	}
	if !removed {
		return nil
	}
	return g.SaveAll(kept)
}

// Schema looks up one stored schema by id, for the preview surface. The
// second return distinguishes "not found" so callers can render a terminal
// notice instead of a partial form.
func (g *Gateway) Schema(id string) (model.FormSchema, bool) {
	for _, schema := range g.LoadAll() {
		if schema.ID == id {
			return schema, true
		}
	}
	return model.FormSchema{}, false
}
