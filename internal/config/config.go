package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the optional project-level configuration, usually loaded from
// .commentary.yaml in the project root. Every field has a working default;
// a missing config file is not an error.
type Config struct {
	Project struct {
		Root   string `yaml:"root"`
		Source string `yaml:"source"`
	} `yaml:"project"`
	Target struct {
		// File is the persisted target-file preference. Resolution treats
		// it as advisory: a value that exists nowhere on disk falls
		// through to later strategies.
		File      string   `yaml:"file"`
		Dirs      []string `yaml:"dirs"`
		Extension string   `yaml:"extension"`
	} `yaml:"target"`
	Format struct {
		CommentaryMarker string `yaml:"commentary_marker"`
		CodeMarker       string `yaml:"code_marker"`
		CommentPrefix    string `yaml:"comment_prefix"`
		FillColumn       int    `yaml:"fill_column"`
	} `yaml:"format"`
}

// Default returns the Emacs Lisp conventions the tool ships with.
func Default() *Config {
	var cfg Config
	cfg.Project.Source = "README.md"
	cfg.Target.Dirs = []string{"", "lisp", "src"}
	cfg.Target.Extension = ".el"
	cfg.Format.CommentaryMarker = ";;; Commentary:"
	cfg.Format.CodeMarker = ";;; Code:"
	cfg.Format.CommentPrefix = ";;"
	cfg.Format.FillColumn = 75
	return &cfg
}

// LoadConfig reads path on top of the defaults and applies environment
// overrides. A nonexistent file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config over the defaults
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if root := os.Getenv("COMMENTARY_ROOT"); root != "" {
		cfg.Project.Root = root
	}
	if source := os.Getenv("COMMENTARY_SOURCE"); source != "" {
		cfg.Project.Source = source
	}
	if target := os.Getenv("COMMENTARY_TARGET_FILE"); target != "" {
		cfg.Target.File = target
	}
	if col := os.Getenv("COMMENTARY_FILL_COLUMN"); col != "" {
		n, err := strconv.Atoi(col)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid COMMENTARY_FILL_COLUMN %q", col)
		}
		cfg.Format.FillColumn = n
	}

	return cfg, nil
}
