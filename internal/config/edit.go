package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Get returns the JSON encoding of a single key of the current configuration
func (m *Manager) Get(key string) (string, error) {
	data, err := json.Marshal(m.Load())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	v := gjson.GetBytes(data, key)
	if !v.Exists() {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return v.Raw, nil
}

// Set changes one key and saves. value is taken as JSON when it parses as
// JSON (numbers, booleans, null, quoted strings) and as a plain string
// otherwise, so `set text_color #FF0000` works without quoting.
func (m *Manager) Set(key, value string) error {
	if !knownKey(key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil || !gjson.ValidBytes(data) {
		if data, err = json.Marshal(m.Load()); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}

	if gjson.Valid(value) {
		data, err = sjson.SetRawBytes(data, key, []byte(value))
	} else {
		data, err = sjson.SetBytes(data, key, value)
	}
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return m.Save(config)
}

// Keys lists the configuration's JSON keys in declaration order
func Keys() []string {
	data, _ := json.Marshal(DefaultConfig())

	var keys []string
	gjson.ParseBytes(data).ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	return keys
}

func knownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}
