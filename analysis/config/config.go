// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/awslabs/go-purity/internal/funcutil"
	"gopkg.in/yaml.v3"
)

// Config contains the options of the purity analysis and the lists of code identifiers that classify external
// routines.
// To add elements to a config file, add fields to this struct.
// If some field is not defined in the config file, it will be empty/zero in the struct.
// private fields are not populated from a yaml file, but computed after initialization
type Config struct {
	Options `yaml:"options"`

	sourceFile string

	// if the PkgFilter is specified
	pkgFilterRegex *regexp.Regexp

	// Purity lists the effect classification lists of the analysis
	Purity PuritySpec `yaml:"purity"`
}

// PuritySpec contains the code identifiers that fix the classification of routines that have no body in the
// analyzed program.
type PuritySpec struct {
	// Blacklist is the list of routines known to be impure, in addition to the default blacklist when
	// UseDefaultBlacklist is set.
	Blacklist []CodeIdentifier `yaml:"blacklist"`

	// KnownPure is the list of external routines that are treated as pure leaves instead of unknown ones.
	KnownPure []CodeIdentifier `yaml:"known-pure"`

	// UseDefaultBlacklist adds the names in DefaultBlacklist to the blacklist. Defaults to true.
	UseDefaultBlacklist bool `yaml:"use-default-blacklist"`

	// UseDefaultKnownPure adds the identifiers in DefaultKnownPure to the known-pure list. Defaults to true.
	UseDefaultKnownPure bool `yaml:"use-default-known-pure"`
}

// Options are the top-level options of the analysis.
type Options struct {
	// PkgFilter restricts the routines that are declared in the analysis to the ones whose package matches the
	// filter. Routines of other packages become unresolved leaves.
	PkgFilter string `yaml:"pkg-filter"`

	// CallgraphMode is the algorithm used to resolve dynamic calls. One of "static" (dynamic calls are never
	// resolved), "cha" or "vta".
	CallgraphMode CallgraphMode `yaml:"callgraph-mode"`

	// NumWorkers is the number of goroutines used to collect call sites. Values <= 0 mean a single worker.
	NumWorkers int `yaml:"num-workers"`

	// ReportDependencies specifies whether the residual dependency sets should be printed with the results.
	ReportDependencies bool `yaml:"report-dependencies"`

	// IncludeTests loads the test files of the packages when analyzing packages.
	IncludeTests bool `yaml:"include-tests"`

	// Loglevel controls the verbosity of the tool
	LogLevel int `yaml:"log-level"`
}

// NewDefault returns an empty default config.
func NewDefault() *Config {
	return &Config{
		sourceFile: "",
		Purity: PuritySpec{
			Blacklist:           nil,
			KnownPure:           nil,
			UseDefaultBlacklist: true,
			UseDefaultKnownPure: true,
		},
		Options: Options{
			PkgFilter:          "",
			CallgraphMode:      StaticMode,
			NumWorkers:         DefaultNumWorkers,
			ReportDependencies: false,
			IncludeTests:       false,
			LogLevel:           int(InfoLevel),
		},
	}
}

// Load reads a configuration from a file
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, err
	}
	cfg.sourceFile = filename
	return cfg, nil
}

// Parse reads a configuration from the yaml contents b. Fields absent from b keep their default value.
func Parse(b []byte) (*Config, error) {
	cfg := NewDefault()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file: %w", err)
	}

	// If logLevel has not been specified (i.e. it is 0) set the default to Info
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}

	if cfg.CallgraphMode == "" {
		cfg.CallgraphMode = StaticMode
	}
	if !cfg.CallgraphMode.IsValid() {
		return nil, fmt.Errorf("invalid callgraph-mode %q, expected one of %v", cfg.CallgraphMode, CallgraphModes)
	}

	if cfg.PkgFilter != "" {
		r, err := regexp.Compile(cfg.PkgFilter)
		if err == nil {
			cfg.pkgFilterRegex = r
		}
	}

	funcutil.MapInPlace(cfg.Purity.Blacklist, compileRegexes)
	funcutil.MapInPlace(cfg.Purity.KnownPure, compileRegexes)

	return cfg, nil
}

// RelPath returns filename path relative to the config source file
func (c Config) RelPath(filename string) string {
	return path.Join(path.Dir(c.sourceFile), filename)
}

// MatchPkgFilter returns true if the package name pkgname matches the package filter set in the config file. If no
// package filter has been set in the config file, the regex will match anything and return true. This function safely
// considers the case where a filter has been specified by the user, but it could not be compiled to a regex. The safe
// case is to check whether the package filter string is a prefix of the pkgname
func (c Config) MatchPkgFilter(pkgname string) bool {
	if c.pkgFilterRegex != nil {
		return c.pkgFilterRegex.MatchString(pkgname)
	} else if c.PkgFilter != "" {
		return strings.HasPrefix(pkgname, c.PkgFilter)
	} else {
		return true
	}
}

// IsBlacklisted returns true if the code identifier matches a blacklist entry of the config.
// The default blacklist is matched on the fully qualified name only, see DefaultBlacklist.
func (c Config) IsBlacklisted(qualifiedName string, cid CodeIdentifier) bool {
	if c.Purity.UseDefaultBlacklist && defaultBlacklistSet[qualifiedName] {
		return true
	}
	return ExistsCid(c.Purity.Blacklist, cid.equalOnNonEmptyFields)
}

// IsKnownPure returns true if the code identifier matches a known-pure entry of the config.
func (c Config) IsKnownPure(cid CodeIdentifier) bool {
	if c.Purity.UseDefaultKnownPure && ExistsCid(defaultKnownPure, cid.equalOnNonEmptyFields) {
		return true
	}
	return ExistsCid(c.Purity.KnownPure, cid.equalOnNonEmptyFields)
}

// Workers returns the number of workers to use, which is always at least one.
func (c Config) Workers() int {
	if c.NumWorkers <= 0 {
		return 1
	}
	return c.NumWorkers
}
