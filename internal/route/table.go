package route

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// ErrInvalidTable is returned when a routes section is not a mapping.
var ErrInvalidTable = errors.New("routes must be a mapping of path prefixes")

// Table is an ordered routing table. The zero value is an absent table,
// which is different from a declared table with no entries.
type Table struct {
	entries []Entry
	present bool
}

// NewTable returns a declared table holding the given entries in order.
// A repeated prefix replaces the earlier target but keeps its position.
func NewTable(entries ...Entry) Table {
	t := Table{present: true}
	for _, e := range entries {
		t.Set(e.Prefix, e.Target)
	}
	return t
}

// Set adds or replaces the target for prefix.
func (t *Table) Set(prefix string, target Target) {
	t.present = true
	for i := range t.entries {
		if t.entries[i].Prefix == prefix {
			entries := make([]Entry, len(t.entries))
			copy(entries, t.entries)
			entries[i].Target = target
			t.entries = entries
			return
		}
	}

	entries := make([]Entry, len(t.entries), len(t.entries)+1)
	copy(entries, t.entries)
	t.entries = append(entries, Entry{Prefix: prefix, Target: target})
}

// Get returns the target registered for prefix.
func (t Table) Get(prefix string) (Target, bool) {
	for _, e := range t.entries {
		if e.Prefix == prefix {
			return e.Target, true
		}
	}
	return nil, false
}

// Entries returns a copy of the entries in declaration order.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t Table) Len() int {
	return len(t.entries)
}

// Present reports whether the table was declared at all.
func (t Table) Present() bool {
	return t.present
}

// UnmarshalYAML decodes a mapping node, keeping key order. Mapping and
// sequence values become WebRoutes, everything else a DiskRoute.
func (t *Table) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)

	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*t = Table{}
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d", ErrInvalidTable, node.Line)
	}

	table := NewTable()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := resolveAlias(node.Content[i])
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("%w: line %d: prefix must be a string", ErrInvalidTable, key.Line)
		}
		table.Set(key.Value, decodeTarget(node.Content[i+1]))
	}

	*t = table
	return nil
}

// MarshalJSON encodes the table as a JSON object in declaration order.
func (t Table) MarshalJSON() ([]byte, error) {
	if !t.present {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Prefix)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Target)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order. Objects and arrays
// become WebRoutes, everything else a DiskRoute.
func (t *Table) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*t = Table{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrInvalidTable
	}

	table := NewTable()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		table.Set(key, decodeJSONTarget(raw))
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*t = table
	return nil
}

func decodeJSONTarget(raw json.RawMessage) Target {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return DiskRoute("")
	}

	switch raw[0] {
	case '{':
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return WebRoute{}
		}
		return WebRoute{
			Host:  scalarString(fields["host"]),
			Watch: scalarString(fields["watch"]),
		}
	case '[':
		return WebRoute{}
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return DiskRoute("")
		}
		return DiskRoute(s)
	case 'n':
		return DiskRoute("")
	default:
		return DiskRoute(string(raw))
	}
}

func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64, bool:
		return fmt.Sprint(val)
	default:
		return ""
	}
}

func decodeTarget(node *yaml.Node) Target {
	node = resolveAlias(node)

	switch node.Kind {
	case yaml.MappingNode:
		var web WebRoute
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := resolveAlias(node.Content[i])
			val := resolveAlias(node.Content[i+1])
			if val.Kind != yaml.ScalarNode || val.Tag == "!!null" {
				continue
			}
			switch key.Value {
			case "host":
				web.Host = val.Value
			case "watch":
				web.Watch = val.Value
			}
		}
		return web
	case yaml.SequenceNode:
		return WebRoute{}
	default:
		if node.Tag == "!!null" {
			return DiskRoute("")
		}
		return DiskRoute(node.Value)
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
