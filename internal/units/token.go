package units

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Token is either a bare number already in base units or a string of the
// form <number><suffix>. The zero Token is the number 0.
type Token struct {
	text    string
	num     float64
	textual bool
}

// Number returns a numeric token.
func Number(f float64) Token {
	return Token{num: f}
}

// String returns a textual token, parsed lazily.
func String(s string) Token {
	return Token{text: s, textual: true}
}

// Of builds a token from a Go number or string. Any other value becomes a
// textual token that fails to parse.
func Of(v any) Token {
	switch x := v.(type) {
	case Token:
		return x
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case string:
		return String(x)
	default:
		return String(fmt.Sprint(v))
	}
}

// Tokens is shorthand for building a slice of tokens.
func Tokens(vs ...any) []Token {
	out := make([]Token, len(vs))
	for i, v := range vs {
		out[i] = Of(v)
	}
	return out
}

// Float returns the magnitude in base units.
func (t Token) Float() (float64, error) {
	if !t.textual {
		return t.num, nil
	}
	return Parse(t.text)
}

// IsNumeric reports whether the token was given as a bare number.
func (t Token) IsNumeric() bool {
	return !t.textual
}

func (t Token) String() string {
	if t.textual {
		return t.text
	}
	return strconv.FormatFloat(t.num, 'g', -1, 64)
}

// UnmarshalYAML keeps YAML numbers numeric and everything else textual.
func (t *Token) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("units: expected scalar token at line %d", node.Line)
	}
	switch node.Tag {
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		*t = Number(f)
	default:
		*t = String(node.Value)
	}
	return nil
}

// MarshalYAML writes numbers as numbers and text verbatim.
func (t Token) MarshalYAML() (any, error) {
	if t.textual {
		return t.text, nil
	}
	return t.num, nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (t *Token) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case int64, float64, string:
		*t = Of(x)
		return nil
	default:
		return fmt.Errorf("units: unsupported TOML token %T", v)
	}
}

// MarshalJSON writes numbers as numbers and text as strings.
func (t Token) MarshalJSON() ([]byte, error) {
	if t.textual {
		return json.Marshal(t.text)
	}
	return json.Marshal(t.num)
}

// UnmarshalJSON accepts a JSON number or string.
func (t *Token) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = String(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("units: token must be a number or string: %w", err)
	}
	*t = Number(f)
	return nil
}
