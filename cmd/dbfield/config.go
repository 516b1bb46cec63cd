package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/softilium/dbfield"
	"gopkg.in/yaml.v3"
)

// Config is the dbfield.yaml layout.
type Config struct {
	Driver       string             `yaml:"driver"`
	DSN          string             `yaml:"dsn"`
	Listen       string             `yaml:"listen"`
	PageSize     int                `yaml:"pageSize"`
	WidgetPolicy string             `yaml:"widgetPolicy"`
	Tables       []dbfield.TableDef `yaml:"tables"`
}

const defaultListen = ":8080"

// loadConfig reads path. DBFIELD_DRIVER and DBFIELD_DSN override the file.
func loadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loadConfig: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("loadConfig: failed to parse %s: %w", path, err)
	}
	if v := os.Getenv("DBFIELD_DRIVER"); v != "" {
		cfg.Driver = v
	}
	if v := os.Getenv("DBFIELD_DSN"); v != "" {
		cfg.DSN = v
	}
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if _, err := cfg.BuildTables(); err != nil {
		return nil, fmt.Errorf("loadConfig: %w", err)
	}
	return &cfg, nil
}

// BuildTables builds fresh tables from the declarations.
func (c *Config) BuildTables() ([]*dbfield.Table, error) {
	res := make([]*dbfield.Table, 0, len(c.Tables))
	seen := make(map[string]bool, len(c.Tables))
	for _, td := range c.Tables {
		key := strings.ToLower(td.Name)
		if seen[key] {
			return nil, fmt.Errorf("table %s declared twice", td.Name)
		}
		seen[key] = true
		t, err := td.Build()
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, nil
}

// TableDef finds a declared table by name.
func (c *Config) TableDef(name string) (dbfield.TableDef, bool) {
	for _, td := range c.Tables {
		if strings.EqualFold(td.Name, name) {
			return td, true
		}
	}
	return dbfield.TableDef{}, false
}
