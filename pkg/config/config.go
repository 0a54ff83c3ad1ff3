// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the optional patchrc configuration file, which
// carries defaults for the apply and snapshot commands.
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the file-supplied defaults for a run. Command-line
// flags override any value set here.
type Config struct {
	Root                string   `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	BackupDir           string   `json:"backup_dir,omitempty" yaml:"backup_dir,omitempty" hcl:"backup_dir,optional"`
	DryRun              bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
	SimilarityThreshold float64  `json:"similarity_threshold,omitempty" yaml:"similarity_threshold,omitempty" hcl:"similarity_threshold,optional"`
	ReportFile          string   `json:"report_file,omitempty" yaml:"report_file,omitempty" hcl:"report_file,optional"`
	ShowDiff            bool     `json:"show_diff,omitempty" yaml:"show_diff,omitempty" hcl:"show_diff,optional"`
	Excludes            []string `json:"excludes,omitempty" yaml:"excludes,omitempty" hcl:"excludes,optional"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.SimilarityThreshold < 0 || cfg.SimilarityThreshold > 1 {
		return errors.Errorf("similarity_threshold must be within 0.0-1.0, got %v", cfg.SimilarityThreshold)
	}

	// Clean up paths
	if cfg.Root != "" {
		cfg.Root = filepath.Clean(cfg.Root)
	}
	if cfg.BackupDir != "" {
		cfg.BackupDir = filepath.Clean(cfg.BackupDir)
	}

	return nil
}

// candidateNames are the config files probed when none is named explicitly
var candidateNames = []string{".patchrc.yaml", ".patchrc.yml", ".patchrc.hcl", ".patchrc.json"}

// 🔎 Discover finds a config file in dir, returning "" when none exists
func Discover(dir string) string {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// helper shared by the parsers
func hasSuffixFold(name, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), suffix)
}
