package tuning

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/codeready-toolchain/warehousecfg/pkg/period"
)

const typeProperty = "type"

// propertyOrder fixes the decode order so the first reported error is stable.
var propertyOrder = PropertyNames()

// Decode parses a JSON tuning document and builds its config.
// Every error is a *ParseError naming the offending property.
func Decode(data []byte) (*SupervisorTuningConfig, error) {
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	return doc.Config(), nil
}

// DecodeYAML is Decode for YAML documents.
func DecodeYAML(data []byte) (*SupervisorTuningConfig, error) {
	doc, err := DecodeYAMLDocument(data)
	if err != nil {
		return nil, err
	}
	return doc.Config(), nil
}

// DecodeDocument parses a JSON tuning document without resolving defaults.
func DecodeDocument(data []byte) (*Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, NewParseError("", fmt.Errorf("%w: %v", ErrInvalidDocument, err))
	}
	if raw == nil {
		return nil, NewParseError("", fmt.Errorf("%w: document is null", ErrInvalidDocument))
	}

	typeRaw, ok := raw[typeProperty]
	if !ok {
		return nil, NewParseError(typeProperty, ErrMissingType)
	}
	var typ *string
	if err := json.Unmarshal(typeRaw, &typ); err != nil {
		return nil, NewParseError(typeProperty, err)
	}

	doc := &Document{}
	if err := checkType(doc, typ); err != nil {
		return nil, err
	}

	logUnknown(raw)
	for _, name := range propertyOrder {
		value, ok := raw[name]
		if !ok {
			continue
		}
		if err := bindProperty(doc, name, func(target any) error {
			return json.Unmarshal(value, target)
		}); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// DecodeYAMLDocument parses a YAML tuning document without resolving defaults.
func DecodeYAMLDocument(data []byte) (*Document, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, NewParseError("", fmt.Errorf("%w: %v", ErrInvalidDocument, err))
	}
	if raw == nil {
		return nil, NewParseError("", fmt.Errorf("%w: document is empty", ErrInvalidDocument))
	}

	typeNode, ok := raw[typeProperty]
	if !ok {
		return nil, NewParseError(typeProperty, ErrMissingType)
	}
	var typ *string
	if err := typeNode.Decode(&typ); err != nil {
		return nil, NewParseError(typeProperty, err)
	}

	doc := &Document{}
	if err := checkType(doc, typ); err != nil {
		return nil, err
	}

	logUnknown(raw)
	for _, name := range propertyOrder {
		node, ok := raw[name]
		if !ok {
			continue
		}
		if err := bindProperty(doc, name, node.Decode); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// bindProperty decodes one property into its Document field.
func bindProperty(doc *Document, name string, decode func(target any) error) error {
	target := bindings[name](doc)
	err := decode(target)
	if err == nil {
		return nil
	}
	if p, ok := target.(**period.Period); ok && neverOnOverflow[name] && errors.Is(err, period.ErrOverflow) {
		// The decoder allocates before the period rejects the literal.
		*p = nil
		slog.Debug("Treating overflowing tuning period as unset", "property", name)
		return nil
	}
	return NewParseError(name, err)
}

// logUnknown reports properties that no table binds. They are ignored so
// that documents written for newer runtimes still load.
func logUnknown[V any](raw map[string]V) {
	for name := range raw {
		if _, ok := bindings[name]; !ok && name != typeProperty {
			slog.Debug("Ignoring unknown tuning property", "property", name)
		}
	}
}

func checkType(doc *Document, typ *string) error {
	if typ == nil || *typ == "" {
		return NewParseError(typeProperty, ErrMissingType)
	}
	if *typ != SupervisorType {
		return NewParseError(typeProperty, fmt.Errorf("%w: %q (want %q)", ErrUnsupportedType, *typ, SupervisorType))
	}
	doc.Type = *typ
	return nil
}

// LoadFile reads a tuning document from disk. Files ending in .yaml or .yml
// are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*SupervisorTuningConfig, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.Config(), nil
}

// LoadFiles loads the given documents in order and merges them: a property
// present in a later file replaces the one from earlier files.
func LoadFiles(paths ...string) (*SupervisorTuningConfig, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no files to load", ErrInvalidDocument)
	}

	merged := &Document{}
	for _, path := range paths {
		doc, err := loadDocument(path)
		if err != nil {
			return nil, err
		}
		// WithoutDereference keeps pointer semantics: an explicit zero in a
		// later file still overrides.
		if err := mergo.Merge(merged, doc, mergo.WithOverride, mergo.WithoutDereference); err != nil {
			return nil, fmt.Errorf("failed to merge %s: %w", path, err)
		}
	}

	slog.Info("Loaded supervisor tuning config", "files", len(paths))
	return merged.Config(), nil
}

func loadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	var doc *Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err = DecodeYAMLDocument(data)
	default:
		doc, err = DecodeDocument(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return doc, nil
}
