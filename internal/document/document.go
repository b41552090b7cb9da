// Package document loads filter documents: declarative descriptions of a
// crnk query (filter specs, combinator, prior fragment, include, sort)
// stored as TOML, JSON or MessagePack.
//
// A TOML document looks like:
//
//	combinator = "OR"
//	include = ["user"]
//
//	[[filter]]
//	path = "client.id"
//	value = 16512
//
//	[[filter]]
//	path = "client.name"
//	operator = "LIKE"
//	value = "Jag"
//
//	[prior]
//	[[prior.filter]]
//	path = "user.number"
//	operator = "GE"
//	value = "30000"
//
//	[[sort]]
//	path = "client.name"
//	direction = "DESC"
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hugr-lab/crnk-filtering"
	"github.com/hugr-lab/crnk-filtering/filter"
	"github.com/hugr-lab/crnk-filtering/internal/msgpack"
	"github.com/hugr-lab/crnk-filtering/internal/recovery"
)

// Format is a document serialization format.
type Format string

const (
	FormatTOML    Format = "toml"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// Filter modes.
const (
	ModeNested = "nested"
	ModeBasic  = "basic"
)

var (
	// ErrInvalidDocument indicates a document that cannot be built.
	ErrInvalidDocument = errors.New("invalid filter document")

	// ErrUnsupportedFormat indicates an unknown file extension or format.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// Document describes one query.
type Document struct {
	// Mode is "nested" (default) or "basic".
	Mode string `toml:"mode,omitempty" json:"mode,omitempty"`

	// Combinator groups the filters, AND if empty.
	Combinator string `toml:"combinator,omitempty" json:"combinator,omitempty"`

	Filters []SpecDef `toml:"filter,omitempty" json:"filter,omitempty"`

	// Prior is built first and spliced in as the prior fragment.
	// Its include and sort entries are ignored.
	Prior *Document `toml:"prior,omitempty" json:"prior,omitempty"`

	Include []string  `toml:"include,omitempty" json:"include,omitempty"`
	Sort    []SortDef `toml:"sort,omitempty" json:"sort,omitempty"`
}

// SpecDef is the serialized form of a filter.Spec.
type SpecDef struct {
	Path     string `toml:"path" json:"path"`
	Operator string `toml:"operator,omitempty" json:"operator,omitempty"`
	Value    any    `toml:"value,omitempty" json:"value,omitempty"`
}

// SortDef is the serialized form of a crnk.SortSpec.
type SortDef struct {
	Path      string `toml:"path" json:"path"`
	Direction string `toml:"direction,omitempty" json:"direction,omitempty"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	return Decode(data, format)
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document

	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.Decode(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return &doc, nil
}

// Encode serializes doc in the given format.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode TOML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatMsgpack:
		return msgpack.Encode(doc)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Specs converts the filter definitions to specs.
// Invalid paths and operators are reported as ErrInvalidDocument.
func (d *Document) Specs(logger *slog.Logger) ([]filter.Spec, error) {
	specs := make([]filter.Spec, 0, len(d.Filters))
	for i, def := range d.Filters {
		op, err := filter.ParseOperator(def.Operator)
		if err != nil {
			return nil, fmt.Errorf("%w: filter %d (%s): %v", ErrInvalidDocument, i, def.Path, err)
		}

		spec, err := recovery.RecoverToValue(logger, "NewSpec", func() (filter.Spec, error) {
			return filter.NewSpec(def.Path, def.Value, op), nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: filter %d (%q): %v", ErrInvalidDocument, i, def.Path, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Build compiles the document's filter. A prior document is compiled
// first and used as the prior fragment.
func (d *Document) Build(logger *slog.Logger) (crnk.Filter, error) {
	switch strings.ToLower(strings.TrimSpace(d.Mode)) {
	case "", ModeNested:
		return d.Nested(logger)
	case ModeBasic:
		if d.Prior != nil {
			return nil, fmt.Errorf("%w: basic filters cannot have a prior", ErrInvalidDocument)
		}
		specs, err := d.Specs(logger)
		if err != nil {
			return nil, err
		}
		return filter.NewBasic(specs, &filter.BasicOptions{Logger: logger}), nil
	}
	return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidDocument, d.Mode)
}

// Nested compiles the document as a nested filter, ignoring Mode.
func (d *Document) Nested(logger *slog.Logger) (*filter.Nested, error) {
	combinator, err := filter.ParseCombinator(d.Combinator)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var prior filter.Expression
	if d.Prior != nil {
		pf, err := d.Prior.Nested(logger)
		if err != nil {
			return nil, fmt.Errorf("prior: %w", err)
		}
		prior = pf.Expression()
	}

	specs, err := d.Specs(logger)
	if err != nil {
		return nil, err
	}

	return filter.NewNested(specs, &filter.NestedOptions{
		Combinator: combinator,
		Prior:      prior,
		Logger:     logger,
	}), nil
}

// SortSpecs converts the sort definitions.
func (d *Document) SortSpecs() ([]crnk.SortSpec, error) {
	specs := make([]crnk.SortSpec, 0, len(d.Sort))
	for _, s := range d.Sort {
		dir, err := crnk.ParseDirection(s.Direction)
		if err != nil {
			return nil, fmt.Errorf("%w: sort %q: %v", ErrInvalidDocument, s.Path, err)
		}
		specs = append(specs, crnk.SortSpec{Path: s.Path, Direction: dir})
	}
	return specs, nil
}

// Query builds the complete query described by the document.
func (d *Document) Query(cfg *crnk.Config) (*crnk.Query, error) {
	logger := crnk.NewLogger(cfg)

	f, err := d.Build(logger)
	if err != nil {
		return nil, err
	}

	sorts, err := d.SortSpecs()
	if err != nil {
		return nil, err
	}

	return crnk.NewQuery(f, &crnk.Config{Logger: logger}).
		Include(d.Include...).
		SortBy(sorts...), nil
}
