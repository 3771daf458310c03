// Package config loads scan defaults from YAML files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DirName  = ".rscanner"
	FileName = "config.yaml"
)

// Config mirrors the scan flags. Zero values mean "not set". ExcludeDirs
// are excluded in addition to target and dot directories; a relative
// PatternsFile is resolved against the directory of the file that sets it.
type Config struct {
	Platform       string   `yaml:"platform,omitempty"`
	Detailed       *bool    `yaml:"detailed,omitempty"`
	Format         string   `yaml:"format,omitempty"`
	Jobs           *int     `yaml:"jobs,omitempty"`
	KeepGoing      *bool    `yaml:"keep_going,omitempty"`
	Extensions     []string `yaml:"extensions,omitempty"`
	ExcludeDirs    []string `yaml:"exclude_dirs,omitempty"`
	PatternsFile   string   `yaml:"patterns_file,omitempty"`
	NoColor        *bool    `yaml:"no_color,omitempty"`
	StrictPlatform *bool    `yaml:"strict_platform,omitempty"`
}

// Load reads config from layered sources, later ones winning:
//  1. ~/.rscanner/config.yaml
//  2. ./.rscanner/config.yaml
//  3. explicit, when not empty
//
// The first two are optional; an explicit file must exist.
func Load(explicit string) (Config, error) {
	home, _ := os.UserHomeDir()
	cwd, _ := os.Getwd()
	return LoadFrom(home, cwd, explicit)
}

// LoadFrom is Load with the home and working directories given.
func LoadFrom(home, cwd, explicit string) (Config, error) {
	var merged Config
	for _, dir := range []string{home, cwd} {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, DirName, FileName)
		cfg, err := loadFile(path, true)
		if err != nil {
			return Config{}, errors.Wrapf(err, "load config %s", path)
		}
		merged = merge(merged, cfg)
	}
	if explicit != "" {
		cfg, err := loadFile(explicit, false)
		if err != nil {
			return Config{}, errors.Wrapf(err, "load config %s", explicit)
		}
		merged = merge(merged, cfg)
	}
	return merged, nil
}

func loadFile(path string, optional bool) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	log.Debugf("using config file %s", path)
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return Config{}, nil
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "Unmarshal")
	}
	// relative paths are relative to the file that names them
	if cfg.PatternsFile != "" && !filepath.IsAbs(cfg.PatternsFile) {
		cfg.PatternsFile = filepath.Join(filepath.Dir(path), cfg.PatternsFile)
	}
	return cfg, nil
}

// merge applies overrides from b onto a. Non-zero fields in b win.
func merge(a, b Config) Config {
	if b.Platform != "" {
		a.Platform = b.Platform
	}
	if b.Detailed != nil {
		a.Detailed = b.Detailed
	}
	if b.Format != "" {
		a.Format = b.Format
	}
	if b.Jobs != nil {
		a.Jobs = b.Jobs
	}
	if b.KeepGoing != nil {
		a.KeepGoing = b.KeepGoing
	}
	if len(b.Extensions) > 0 {
		a.Extensions = b.Extensions
	}
	if len(b.ExcludeDirs) > 0 {
		a.ExcludeDirs = b.ExcludeDirs
	}
	if b.PatternsFile != "" {
		a.PatternsFile = b.PatternsFile
	}
	if b.NoColor != nil {
		a.NoColor = b.NoColor
	}
	if b.StrictPlatform != nil {
		a.StrictPlatform = b.StrictPlatform
	}
	return a
}

// Bool returns *p, or def when unset.
func Bool(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Int returns *p, or def when unset.
func Int(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// NormalizeExtensions adds the leading dot where missing.
func NormalizeExtensions(exts []string) []string {
	var result []string
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		result = append(result, ext)
	}
	return result
}
