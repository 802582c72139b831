package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version string       `yaml:"version" json:"version"`
	Server  ServerConfig `yaml:"server" json:"server"`
	UI      UIConfig     `yaml:"ui" json:"ui"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr" json:"addr"`
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

type UIConfig struct {
	BoardTitle   string `yaml:"board_title" json:"board_title"`
	WorkloadUnit string `yaml:"workload_unit" json:"workload_unit"`
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.DataDir == "" {
		c.Server.DataDir = "data"
	}
	if c.UI.BoardTitle == "" {
		c.UI.BoardTitle = "Sprint Board"
	}
	if c.UI.WorkloadUnit == "" {
		c.UI.WorkloadUnit = "hours"
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}

// LoadOrDefault reads the config file when it exists and falls back to the
// built-in defaults when it does not.
func LoadOrDefault(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			var def Config
			def.ApplyDefaults()
			return &def, nil
		}
		return nil, err
	}
	return c, nil
}
