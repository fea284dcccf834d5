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

// purity: infers which functions of a Go program are pure.
//
// The purity of every function declared in the analyzed sources is printed, one per line, in the form
// "<name>:\t<PURITY>", where PURITY is Impure, Unknown or Pure.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/awslabs/go-purity/cmd/purity/tools"
	"github.com/awslabs/go-purity/internal/formatutil"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command with args and returns the exit code: 0 on success, 2 on usage errors and 1 when the
// analysis fails.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := executeContext(cmd)
	if err == nil {
		return 0
	}
	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "%s: %s\n", formatutil.Red("error"), uerr.msg)
		fmt.Fprint(stderr, cmd.UsageString())
		return 2
	}
	return errExit(stderr, err)
}

// errExit prints err and a hint to resolve it, and returns the exit code of an analysis error
func errExit(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "%s: %v\n", formatutil.Red("error"), err)
	if hint := tools.HintForErrorMessage(err.Error()); hint != "" {
		fmt.Fprintf(stderr, "%s: %s\n", formatutil.Yellow("hint"), hint)
	}
	return 1
}

// usageError is an error in the command line arguments
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}
