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

// Package export loads the results of the purity analysis into a Neo4j graph database.
//
// Every routine of the analysis becomes a (:Routine) node with its label, key, package, purity and position. The
// direct calls of the declared routines become [:CALLS] relationships, and members of a recursive group share a
// group property.
package export

import (
	"context"
	"fmt"

	"github.com/awslabs/go-purity/analysis"
	"github.com/awslabs/go-purity/analysis/config"
	"github.com/awslabs/go-purity/analysis/purity"
	"github.com/awslabs/go-purity/internal/funcutil"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// DefaultBatchSize is the number of rows sent in a single UNWIND query
const DefaultBatchSize = 500

// Row is a row of the $batch parameter of an UNWIND query
type Row = map[string]any

// runner runs a single Cypher statement
type runner interface {
	run(ctx context.Context, cypher string, params map[string]any) error
}

// Neo4jExporter writes analysis results to Neo4j using batch UNWIND queries.
type Neo4jExporter struct {
	driver    neo4j.DriverWithContext
	runner    runner
	logger    *config.LogGroup
	database  string
	BatchSize int
}

// NewNeo4jExporter connects to the Neo4j instance at uri and returns an exporter. An empty database selects the
// default database of the instance.
func NewNeo4jExporter(ctx context.Context, uri, user, password, database string,
	logger *config.LogGroup) (*Neo4jExporter, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if logger == nil {
		logger = config.NewDiscardLogGroup()
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = closeDriver(ctx, driver, logger)
		return nil, fmt.Errorf("could not connect to neo4j at %s: %w", uri, err)
	}
	e := &Neo4jExporter{driver: driver, logger: logger, database: database, BatchSize: DefaultBatchSize}
	e.runner = e
	return e, nil
}

// Close releases the resources of the driver. A failure to close is logged as a warning and returned.
func (e *Neo4jExporter) Close(ctx context.Context) error {
	if e.driver == nil {
		return nil
	}
	return closeDriver(ctx, e.driver, e.logger)
}

func closeDriver(ctx context.Context, driver neo4j.DriverWithContext, logger *config.LogGroup) error {
	err := driver.Close(ctx)
	if err != nil {
		logger.Warnf("failed to close neo4j driver: %v", err)
	}
	return err
}

func (e *Neo4jExporter) run(ctx context.Context, cypher string, params map[string]any) error {
	var opts []neo4j.ExecuteQueryConfigurationOption
	if e.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(e.database))
	}
	_, err := neo4j.ExecuteQuery(ctx, e.driver, cypher, params, neo4j.EagerResultTransformer, opts...)
	return err
}

const (
	cleanQuery = "MATCH (n:Routine) DETACH DELETE n"
	indexQuery = "CREATE INDEX routine_key IF NOT EXISTS FOR (n:Routine) ON (n.key)"

	routinesQuery = `UNWIND $batch AS row
MERGE (n:Routine {key: row.key})
SET n.label = row.label, n.package = row.package, n.purity = row.purity,
    n.declared = row.declared, n.file = row.file, n.line = row.line`

	callsQuery = `UNWIND $batch AS row
MATCH (caller:Routine {key: row.caller})
MATCH (callee:Routine {key: row.callee})
MERGE (caller)-[:CALLS]->(callee)`

	groupsQuery = `UNWIND $batch AS row
MATCH (n:Routine {key: row.key})
SET n.group = row.group`
)

// Export replaces the routines stored in the database by the routines of the analysis
func (e *Neo4jExporter) Export(ctx context.Context, a *analysis.Analysis) error {
	for _, q := range []string{cleanQuery, indexQuery} {
		if err := e.runner.run(ctx, q, nil); err != nil {
			return fmt.Errorf("failed to prepare database: %w", err)
		}
	}
	steps := []struct {
		name  string
		query string
		rows  []Row
	}{
		{"routines", routinesQuery, RoutineRows(a)},
		{"calls", callsQuery, CallRows(a)},
		{"groups", groupsQuery, GroupRows(a)},
	}
	for _, step := range steps {
		e.logger.Infof("Exporting %d %s...", len(step.rows), step.name)
		for _, batch := range Batches(step.rows, e.BatchSize) {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.runner.run(ctx, step.query, map[string]any{"batch": batch}); err != nil {
				return fmt.Errorf("failed to export %s: %w", step.name, err)
			}
		}
	}
	return nil
}

// RoutineRows returns one row per routine of the analysis, declared routines first
func RoutineRows(a *analysis.Analysis) []Row {
	res := a.Result
	rows := make([]Row, 0, len(res.Purities))
	for _, id := range routinesOf(res) {
		row := Row{
			"key":      id.Key(),
			"label":    id.Label(),
			"package":  id.Qualifier().Package,
			"purity":   res.Purities[id].String(),
			"declared": id.HasKnownDeclaration(),
			"file":     "",
			"line":     0,
		}
		if a.Resolver != nil {
			if pos := a.Resolver.Position(id); pos.IsValid() {
				row["file"] = pos.Filename
				row["line"] = pos.Line
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// CallRows returns one row per direct call between routines
func CallRows(a *analysis.Analysis) []Row {
	var rows []Row
	for _, id := range a.Result.Declared {
		for _, callee := range a.Result.Calls[id] {
			rows = append(rows, Row{"caller": id.Key(), "callee": callee.Key()})
		}
	}
	return rows
}

// GroupRows returns one row per member of a recursive group; the group number is its index in the result
func GroupRows(a *analysis.Analysis) []Row {
	var rows []Row
	for i, group := range a.Result.Groups {
		for _, id := range group {
			rows = append(rows, Row{"key": id.Key(), "group": i})
		}
	}
	return rows
}

// Batches splits rows in consecutive batches of at most size rows
func Batches(rows []Row, size int) [][]Row {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var batches [][]Row
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		batches = append(batches, rows[start:end])
	}
	return batches
}

// routinesOf returns the declared routines in program order followed by the other routines of the result, sorted
func routinesOf(res *purity.Result) []purity.RoutineID {
	ids := append([]purity.RoutineID(nil), res.Declared...)
	declared := map[purity.RoutineID]bool{}
	for _, id := range ids {
		declared[id] = true
	}
	others := funcutil.Filter(funcutil.SortedKeys(res.Purities, purity.Less), func(id purity.RoutineID) bool {
		return !declared[id]
	})
	return append(ids, others...)
}
