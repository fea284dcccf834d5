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

// Package tools contains utility functions for the purity command line frontend.
package tools

import (
	"flag"
	"fmt"
	"go/build"
	"regexp"

	"github.com/awslabs/go-purity/analysis/config"
	"golang.org/x/tools/go/buildutil"
)

// Captures errors happening before any analysis starts (packages could not load)
var regexCouldNotLoad = regexp.MustCompile("failed to load packages|errors found, exiting|no packages")

// Captures type checking errors of the analyzed sources
var typeCheckingFailed = regexp.MustCompile("type checking failed")

// Captures sources given with --files or --string that do not belong to one package
var differentPackages = regexp.MustCompile("sources belong to different packages")

// Captures connection errors to the graph database
var neo4jConnection = regexp.MustCompile("could not connect to neo4j")

// HintForErrorMessage looks for specific error message and returns some other message that might help the user
// resolve the problem.
func HintForErrorMessage(errMsg string) string {
	if regexCouldNotLoad.MatchString(errMsg) {
		return "make sure the package patterns can be loaded with `go list` from the current directory"
	}
	if typeCheckingFailed.MatchString(errMsg) {
		return "the sources must be a well-typed Go package whose imports can be loaded with `go list` from " +
			"the directory of the sources"
	}
	if differentPackages.MatchString(errMsg) {
		return "files given together are analyzed as a single package"
	}
	if neo4jConnection.MatchString(errMsg) {
		return "check the --neo4j-uri, --neo4j-user and --neo4j-pass flags"
	}
	return ""
}

// BuildTagsFlagSet returns a standard flag set with the -build-tags flag, which sets the build tags used when
// loading packages.
func BuildTagsFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Var((*buildutil.TagsFlag)(&build.Default.BuildTags), "build-tags", buildutil.TagsFlagDoc)
	return fs
}

// LoadConfig loads the config file from configPath, or returns the default configuration if configPath is empty.
func LoadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		return config.NewDefault(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	return cfg, nil
}
