package layoutfile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dim is one dimension of a node: a pixel count or "stretch". The zero value
// stretches.
type Dim struct {
	px    int
	fixed bool
}

// Fixed returns a dimension of n pixels.
func Fixed(n int) Dim { return Dim{px: n, fixed: true} }

// Stretch returns a stretching dimension.
func Stretch() Dim { return Dim{} }

// IsStretch reports whether d stretches.
func (d Dim) IsStretch() bool { return !d.fixed }

// Pixels returns the pixel count of a fixed dimension.
func (d Dim) Pixels() int { return d.px }

// IsZero reports whether d is the default stretch, so that encoders can omit
// it.
func (d Dim) IsZero() bool { return !d.fixed }

func (d Dim) String() string {
	if !d.fixed {
		return "stretch"
	}
	return strconv.Itoa(d.px)
}

// ParseDim parses "stretch", "*", "" or a pixel count with an optional "px"
// suffix.
func ParseDim(s string) (Dim, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "*", "stretch", "fill":
		return Stretch(), nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "px"))
	if err != nil {
		return Dim{}, fmt.Errorf("invalid dimension %q", s)
	}
	if n < 0 {
		return Dim{}, fmt.Errorf("negative dimension %d", n)
	}
	return Fixed(n), nil
}

func fixedOf(n int64) (Dim, error) {
	if n < 0 {
		return Dim{}, fmt.Errorf("negative dimension %d", n)
	}
	return Fixed(int(n)), nil
}

// MarshalJSON encodes fixed dimensions as numbers and stretch as a string.
func (d Dim) MarshalJSON() ([]byte, error) {
	if d.fixed {
		return []byte(strconv.Itoa(d.px)), nil
	}
	return []byte(`"stretch"`), nil
}

// UnmarshalJSON accepts a number, a string or null.
func (d *Dim) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Stretch()
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseDim(s)
		if err != nil {
			return err
		}
		*d = v
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid dimension %s", data)
	}
	v, err := fixedOf(n)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalTOML implements toml.Marshaler.
func (d Dim) MarshalTOML() ([]byte, error) {
	return d.MarshalJSON()
}

// UnmarshalTOML implements toml.Unmarshaler.
func (d *Dim) UnmarshalTOML(v any) error {
	var (
		out Dim
		err error
	)
	switch t := v.(type) {
	case int64:
		out, err = fixedOf(t)
	case string:
		out, err = ParseDim(t)
	default:
		err = fmt.Errorf("invalid dimension %v", v)
	}
	if err != nil {
		return err
	}
	*d = out
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Dim) MarshalYAML() (any, error) {
	if d.fixed {
		return d.px, nil
	}
	return "stretch", nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Dim) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: dimension must be a scalar", value.Line)
	}
	var (
		out Dim
		err error
	)
	switch value.Tag {
	case "!!null":
		*d = Stretch()
		return nil
	case "!!int":
		var n int64
		if err = value.Decode(&n); err == nil {
			out, err = fixedOf(n)
		}
	default:
		out, err = ParseDim(value.Value)
	}
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = out
	return nil
}
