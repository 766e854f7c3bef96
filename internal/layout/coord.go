package layout

import (
	"bytes"
	"encoding/json"
	"math"
)

// Coord is a persisted window coordinate. NaN means unset; it is stored as
// JSON null because JSON has no NaN.
type Coord float64

// Unset returns the NaN sentinel
func Unset() Coord {
	return Coord(math.NaN())
}

// IsSet reports whether the coordinate holds a real value
func (c Coord) IsSet() bool {
	return !math.IsNaN(float64(c))
}

// MarshalJSON encodes unset coordinates as null
func (c Coord) MarshalJSON() ([]byte, error) {
	if !c.IsSet() || math.IsInf(float64(c), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(c))
}

// UnmarshalJSON decodes null (and the legacy "NaN" string) as unset
func (c *Coord) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`"NaN"`)) {
		*c = Unset()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Coord(v)
	return nil
}

// MarshalYAML shows unset coordinates as null in exported YAML
func (c Coord) MarshalYAML() (interface{}, error) {
	if !c.IsSet() || math.IsInf(float64(c), 0) {
		return nil, nil
	}
	return float64(c), nil
}
