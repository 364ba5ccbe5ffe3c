// Package explain renders descriptors into the structured form shown by
// EXPLAIN. Descriptors declare their display metadata as a table of fields;
// Render walks that table for a requested level.
package explain

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Level selects how much detail an explain output carries.
type Level string

const (
	// LevelUser is the output of EXPLAIN for end users
	LevelUser Level = "user"
	// LevelDefault is the output of plain EXPLAIN
	LevelDefault Level = "default"
	// LevelExtended is the output of EXPLAIN EXTENDED
	LevelExtended Level = "extended"
)

// AllLevels lists every level, for fields visible everywhere.
var AllLevels = []Level{LevelUser, LevelDefault, LevelExtended}

// ErrUnknownLevel indicates an unrecognized level name
var ErrUnknownLevel = errors.New("unknown explain level")

// IsValid checks if the level is known
func (l Level) IsValid() bool {
	switch l {
	case LevelUser, LevelDefault, LevelExtended:
		return true
	default:
		return false
	}
}

// ParseLevel parses a level name case-insensitively. An empty name is LevelDefault.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return LevelDefault, nil
	}
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return l, nil
}

// Field is the display metadata of one descriptor property.
type Field struct {
	Label  string
	Levels []Level

	// DisplayOnlyOnTrue hides a boolean field whose value is false.
	DisplayOnlyOnTrue bool

	// Value returns the property value. An unset optional or a nil value
	// is not displayed.
	Value func() any
}

// Describer is implemented by anything that can appear in explain output.
type Describer interface {
	ExplainName() string
	ExplainLevels() []Level
	ExplainFields() []Field
}

// Node is one rendered explain entry.
type Node struct {
	Label    string `json:"label"`
	Value    string `json:"value,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Render builds the explain tree of d at level. It returns false when d is
// not visible at that level.
func Render(level Level, d Describer) (Node, bool) {
	if !visible(level, d.ExplainLevels()) {
		return Node{}, false
	}

	root := Node{Label: d.ExplainName()}
	for _, f := range d.ExplainFields() {
		if !visible(level, f.Levels) {
			continue
		}
		value, ok := display(f)
		if !ok {
			continue
		}
		root.Children = append(root.Children, Node{Label: f.Label, Value: value})
	}
	return root, true
}

func visible(level Level, levels []Level) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}

func display(f Field) (string, bool) {
	v := f.Value()
	if v == nil {
		return "", false
	}
	if o, ok := v.(interface{ IsSet() bool }); ok && !o.IsSet() {
		return "", false
	}
	if b, ok := v.(bool); ok && f.DisplayOnlyOnTrue && !b {
		return "", false
	}
	return fmt.Sprint(v), true
}

// WriteTo prints the tree as indented "Label: value" lines.
func (n Node) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	n.write(&b, 0)
	written, err := io.WriteString(w, b.String())
	return int64(written), err
}

// String returns the text WriteTo prints.
func (n Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n Node) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Label)
	if n.Value != "" {
		b.WriteString(": ")
		b.WriteString(n.Value)
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.write(b, depth+1)
	}
}
