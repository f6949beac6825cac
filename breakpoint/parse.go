package breakpoint

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brokenalarms/astro-masonry/types"
)

// Parse reads a breakpoint table from JSON or YAML text.
//
// The input must be a mapping whose keys are numeric width thresholds plus the
// reserved key "default":
//
//	{"default": 3, "600": 1, "900": 2}
//
// or, equivalently, in YAML:
//
//	default: 3
//	600: 1
//	900: 2
//
// Column counts may be written as numbers or numeric strings. Parse does not
// validate the values; call Validate (or use ParseOrFallback) for that.
//
// Returns:
//   - Table: Decoded table
//   - error: ErrMalformedBreakpoints if the input is not a readable table
func Parse(data []byte) (Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Table{}, fmt.Errorf("%w: empty input", types.ErrMalformedBreakpoints)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Table{}, fmt.Errorf("%w: %w", types.ErrMalformedBreakpoints, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Table{}, fmt.Errorf("%w: empty document", types.ErrMalformedBreakpoints)
	}

	return decodeNode(doc.Content[0])
}

// ParseOrFallback reads a breakpoint table, recovering from malformed input.
//
// Malformed input never fails: the fallback table {default: 2} is returned, the
// problem is logged at warn level, and the returned table's Malformed method
// reports the cause. A readable table that violates the invariants (for example a
// non-positive default) is rejected with ErrInvalidBreakpoints.
//
// Parameters:
//   - data: JSON or YAML text
//   - logger: Receives the malformed-input diagnostic (may be nil)
//
// Returns:
//   - Table: Decoded table, or the fallback table
//   - error: ErrInvalidBreakpoints if a readable table is invalid
func ParseOrFallback(data []byte, logger types.Logger) (Table, error) {
	table, err := Parse(data)
	if err != nil {
		fallback := Fallback()
		fallback.malformed = err
		if logger != nil {
			logger.Warn("malformed breakpoint table, using fallback",
				"error", err,
				"fallback", fallback.String(),
			)
		}

		return fallback, nil
	}

	if err := table.Validate(); err != nil {
		return Table{}, err
	}

	return table, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
//
// Decoding a configuration file never fails because of the breakpoint section:
// malformed content is replaced by the fallback table and recorded for
// Malformed. Validation is left to the configuration loader.
func (t *Table) UnmarshalYAML(value *yaml.Node) error {
	decoded, err := decodeNode(value)
	if err != nil {
		decoded = Fallback()
		decoded.malformed = err
	}
	*t = decoded

	return nil
}

// MarshalYAML implements yaml.Marshaler, emitting thresholds in ascending order
// followed by the default.
func (t Table) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, threshold := range t.sortedThresholds() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: strconv.FormatFloat(threshold, 'f', -1, 64)},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(t.Thresholds[threshold])},
		)
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: DefaultKey},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(t.Default)},
	)

	return node, nil
}

// UnmarshalTOML implements toml.Unmarshaler for github.com/BurntSushi/toml.
//
// TOML keys are always strings, so thresholds are written quoted:
//
//	[breakpoints]
//	default = 3
//	"600" = 1
//
// Malformed content is handled like UnmarshalYAML.
func (t *Table) UnmarshalTOML(data any) error {
	decoded, err := decodeMap(data)
	if err != nil {
		decoded = Fallback()
		decoded.malformed = err
	}
	*t = decoded

	return nil
}

// decodeNode reads a table from a YAML mapping node.
func decodeNode(node *yaml.Node) (Table, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return Table{}, fmt.Errorf("%w: expected a mapping, got %s", types.ErrMalformedBreakpoints, kindName(node.Kind))
	}

	t := Table{Thresholds: make(map[float64]int, len(node.Content)/2)}
	hasDefault := false

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return Table{}, fmt.Errorf("%w: value for %q is not a scalar", types.ErrMalformedBreakpoints, key.Value)
		}

		cols, err := parseColumns(key.Value, val.Value)
		if err != nil {
			return Table{}, err
		}

		if strings.TrimSpace(key.Value) == DefaultKey {
			t.Default = cols
			hasDefault = true

			continue
		}

		threshold, err := parseThreshold(key.Value)
		if err != nil {
			return Table{}, err
		}
		t.Thresholds[threshold] = cols
	}

	if !hasDefault {
		return Table{}, fmt.Errorf("%w: missing %q entry", types.ErrMalformedBreakpoints, DefaultKey)
	}

	return t, nil
}

// decodeMap reads a table from a generic decoded map (TOML).
func decodeMap(data any) (Table, error) {
	m, ok := data.(map[string]any)
	if !ok {
		return Table{}, fmt.Errorf("%w: expected a table, got %T", types.ErrMalformedBreakpoints, data)
	}

	// Sorted for deterministic error reporting.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	t := Table{Thresholds: make(map[float64]int, len(m))}
	hasDefault := false

	for _, key := range keys {
		var raw string
		switch v := m[key].(type) {
		case int64:
			raw = strconv.FormatInt(v, 10)
		case float64:
			raw = strconv.FormatFloat(v, 'f', -1, 64)
		case string:
			raw = v
		default:
			return Table{}, fmt.Errorf("%w: value for %q has unsupported type %T", types.ErrMalformedBreakpoints, key, v)
		}

		cols, err := parseColumns(key, raw)
		if err != nil {
			return Table{}, err
		}

		if strings.TrimSpace(key) == DefaultKey {
			t.Default = cols
			hasDefault = true

			continue
		}

		threshold, err := parseThreshold(key)
		if err != nil {
			return Table{}, err
		}
		t.Thresholds[threshold] = cols
	}

	if !hasDefault {
		return Table{}, fmt.Errorf("%w: missing %q entry", types.ErrMalformedBreakpoints, DefaultKey)
	}

	return t, nil
}

func parseThreshold(key string) (float64, error) {
	threshold, err := strconv.ParseFloat(strings.TrimSpace(key), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: threshold %q is not a number", types.ErrMalformedBreakpoints, key)
	}

	return threshold, nil
}

func parseColumns(key, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if cols, err := strconv.Atoi(raw); err == nil {
		return cols, nil
	}

	// Whole floats such as 2.0 are accepted; fractional column counts are not.
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: column count for %q must be an integer, got %q",
			types.ErrMalformedBreakpoints, key, raw)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%w: column count for %q out of range", types.ErrMalformedBreakpoints, key)
	}

	return int(f), nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
