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

package resolver

import (
	"fmt"
	"go/types"

	"github.com/awslabs/go-purity/analysis/purity"
	"golang.org/x/tools/go/ssa"
)

// qualifierOf returns the qualifier of a function, matched against the code identifiers of the configuration.
func qualifierOf(fn *ssa.Function) purity.Qualifier {
	q := purity.Qualifier{Name: fn.Name()}
	var pkg *types.Package
	if obj := fn.Object(); obj != nil {
		pkg = obj.Pkg()
	} else if fn.Pkg != nil {
		pkg = fn.Pkg.Pkg
	}
	if pkg != nil {
		q.Package = pkg.Path()
	}
	if recv := fn.Signature.Recv(); recv != nil {
		q.Receiver = types.TypeString(recv.Type(), types.RelativeTo(pkg))
	}
	return q
}

// unresolvedFunction returns the identifier of a function without body. The name is the same as the one printed
// by the ssa package, e.g. "time.Now" or "(*os.File).Close".
func unresolvedFunction(fn *ssa.Function) purity.RoutineID {
	return purity.NewUnresolved(fn.String(), qualifierOf(fn))
}

// unresolvedBuiltin returns the identifier of a builtin function
func unresolvedBuiltin(b *ssa.Builtin) purity.RoutineID {
	return purity.NewUnresolved(b.Name(), purity.Qualifier{Name: b.Name()})
}

// unresolvedDynamic returns the identifier of a dynamic call that the call graph could not resolve. Interface
// method calls are named after the interface and the method, e.g. "(io.Writer).Write". Calls of function values
// are named after the type of the function.
func unresolvedDynamic(c *ssa.CallCommon) purity.RoutineID {
	if c.IsInvoke() {
		q := purity.Qualifier{Name: c.Method.Name()}
		var pkg *types.Package
		if named, ok := c.Value.Type().(*types.Named); ok && named.Obj().Pkg() != nil {
			pkg = named.Obj().Pkg()
			q.Package = pkg.Path()
		}
		q.Receiver = types.TypeString(c.Value.Type(), types.RelativeTo(pkg))
		return purity.NewUnresolved(fmt.Sprintf("(%s).%s", c.Value.Type(), c.Method.Name()), q)
	}
	name := fmt.Sprintf("(%s)", types.TypeString(c.Value.Type(), nil))
	return purity.NewUnresolved(name, purity.Qualifier{})
}

// isReportedBuiltin returns true for the builtins that have an effect. Other builtins are language primitives.
func isReportedBuiltin(b *ssa.Builtin) bool {
	switch b.Name() {
	case "print", "println":
		return true
	}
	return false
}
