package sheetlite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config controls where the batch driver and watcher read workbooks and
// write databases and reports.
type Config struct {
	// InputDir is scanned, non-recursively, for workbook files.
	InputDir string `yaml:"input_dir" toml:"input_dir"`
	// OutputDir receives database and report files.
	OutputDir string `yaml:"output_dir" toml:"output_dir"`
	// SampleRows is how many sample rows each report shows per table.
	SampleRows int `yaml:"sample_rows" toml:"sample_rows"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		InputDir:   "input",
		OutputDir:  DefaultOutputDir,
		SampleRows: DefaultSampleRows,
	}
}

// LoadConfig loads configuration starting from DefaultConfig.
//
// With a non-empty path only that file is read; it must exist. With an empty
// path ~/.config/sheetlite/config.yml and then ./sheetlite.yml are merged
// over the defaults, each overriding what came before; missing files are
// skipped. YAML is assumed unless the file name ends in .toml. Finally the
// environment variables SHEETLITE_INPUT_DIR, SHEETLITE_OUTPUT_DIR, and
// SHEETLITE_SAMPLE_ROWS override everything.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return Config{}, err
		}
	} else {
		for _, candidate := range configPaths() {
			if err := loadConfigFile(candidate, &cfg); err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return Config{}, err
			}
		}
	}

	loadConfigEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// configPaths returns the default config file locations in merge order;
// later entries override earlier ones.
func configPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "sheetlite", "config.yml"))
	}
	paths = append(paths, "sheetlite.yml")
	return paths
}

// loadConfigFile decodes one config file over cfg; non-zero values win.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path) //nolint:gosec // config path comes from the user
	if err != nil {
		return err
	}

	var partial Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &partial); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &partial); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.merge(partial)
	return nil
}

// merge overwrites cfg with the non-zero fields of src.
func (c *Config) merge(src Config) {
	if src.InputDir != "" {
		c.InputDir = src.InputDir
	}
	if src.OutputDir != "" {
		c.OutputDir = src.OutputDir
	}
	if src.SampleRows != 0 {
		c.SampleRows = src.SampleRows
	}
}

// loadConfigEnv applies environment variable overrides to cfg.
func loadConfigEnv(c *Config) {
	if v := os.Getenv("SHEETLITE_INPUT_DIR"); v != "" {
		c.InputDir = v
	}
	if v := os.Getenv("SHEETLITE_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("SHEETLITE_SAMPLE_ROWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SampleRows = n
		}
	}
}

// validate checks the configuration and fills a zero SampleRows with the
// default.
func (c *Config) validate() error {
	if strings.TrimSpace(c.InputDir) == "" {
		return errors.New("sheetlite: input directory cannot be empty")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("sheetlite: output directory cannot be empty")
	}
	if c.SampleRows < 0 {
		return fmt.Errorf("sheetlite: sample rows cannot be negative: %d", c.SampleRows)
	}
	if c.SampleRows == 0 {
		c.SampleRows = DefaultSampleRows
	}
	return nil
}
