package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToMap renders the settings as yaml key to value strings for logging the
// effective configuration. Credentials are never included.
func (c *Config) ToMap() map[string]string {
	data, err := yaml.Marshal(c.Settings)
	if err != nil {
		return map[string]string{}
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return map[string]string{}
	}

	result := make(map[string]string, len(raw))
	for k, v := range raw {
		result[k] = fmt.Sprint(v)
	}
	return result
}
