package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// DefaultPort is the port the dashboard listens on when none is configured.
const DefaultPort = 3000

type Config struct {
	Server struct {
		Host           string `yaml:"host"`
		Port           int    `yaml:"port"`
		RequestLogging bool   `yaml:"requestLogging"`
	} `yaml:"server"`
	Dashboard struct {
		Title      string   `yaml:"title"`
		OutputDirs []string `yaml:"outputDirs"`
		PublicDir  string   `yaml:"publicDir"`
	} `yaml:"dashboard"`
	Log struct {
		Dir   string `yaml:"dir"`
		Debug bool   `yaml:"debug"`
	} `yaml:"log"`
}

// DefaultConfig returns the configuration used when no config file exists:
// port 3000 and the scraper output folders next to the program directory.
func DefaultConfig() *Config {
	config := &Config{}
	config.Server.Port = DefaultPort
	config.Dashboard.Title = "Myntra Scraper Dashboard"
	config.Dashboard.OutputDirs = []string{
		filepath.Join("..", "outputs"),
		filepath.Join("..", "outputs_selenium"),
	}
	return config
}

// LoadConfig reads the YAML file at path on top of DefaultConfig. A missing
// file is not an error. Relative directories are resolved against baseDir.
func LoadConfig(path, baseDir string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	config.resolve(baseDir)
	return config, nil
}

func (c *Config) resolve(baseDir string) {
	for i, dir := range c.Dashboard.OutputDirs {
		c.Dashboard.OutputDirs[i] = resolvePath(baseDir, dir)
	}
	if c.Dashboard.PublicDir != "" {
		c.Dashboard.PublicDir = resolvePath(baseDir, c.Dashboard.PublicDir)
	}
	if c.Log.Dir != "" {
		c.Log.Dir = resolvePath(baseDir, c.Log.Dir)
	}
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}

// Validate checks the values the server cannot run without.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if len(c.Dashboard.OutputDirs) == 0 {
		return fmt.Errorf("no output directories configured")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
