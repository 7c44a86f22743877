package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"

	"github.com/relgo/relgo/common"
	"github.com/relgo/relgo/execution"
	"github.com/relgo/relgo/storage"
)

// Database is a named catalog of relations. Reads and registrations go
// through a concurrent map, so concurrent queries against a database that is
// being extended with derived tables are safe. Derived-table creation never
// mutates the receiver: With returns a new Database sharing the existing
// relations.
type Database struct {
	name      string
	relations *xsync.MapOf[string, *storage.Relation]
	logger    *zap.Logger
}

// Option configures a Database.
type Option func(*Database)

// WithLogger sets the logger used for query tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(db *Database) {
		db.logger = logger
	}
}

// NewDatabase creates an empty database with the given name.
func NewDatabase(name string, opts ...Option) *Database {
	db := &Database{
		name:      name,
		relations: xsync.NewMapOf[string, *storage.Relation](),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Name returns the database's name.
func (db *Database) Name() string {
	return db.name
}

// CreateTable registers an empty relation under the given name and returns
// its schema for the caller to populate with attributes and a primary key.
// Attribute additions are legal until the first insert.
func (db *Database) CreateTable(name string) *storage.Schema {
	schema := storage.NewSchema()
	db.relations.Store(name, storage.NewRelation(schema))
	db.logger.Debug("table created", zap.String("table", name))
	return schema
}

// Relation looks up a relation by table name.
func (db *Database) Relation(name string) (*storage.Relation, error) {
	r, ok := db.relations.Load(name)
	if !ok {
		return nil, common.NewError(common.NoSuchRelation, "no relation named %q", name)
	}
	return r, nil
}

// Insert adds a tuple built from the given values to the named table.
func (db *Database) Insert(table string, values ...common.Value) (*storage.Tuple, error) {
	r, err := db.Relation(table)
	if err != nil {
		return nil, err
	}
	return r.Insert(values...)
}

// Compile translates a request into an operator tree without running it.
// The tree is built bottom-up: a scan of the first table, a natural join
// per further table, a selection when a predicate is given, and finally
// grouped aggregation, global aggregation, a projection, or nothing at all,
// depending on the grouping and attribute lists. The returned operator is
// un-initialized.
func (db *Database) Compile(r Request) (execution.Operator, error) {
	tables := r.tableNames()
	if len(tables) == 0 {
		return nil, common.NewError(common.ParsingError, "query names no tables")
	}

	first, err := db.Relation(tables[0])
	if err != nil {
		return nil, err
	}
	var op execution.Operator = execution.NewScan(first)
	for _, name := range tables[1:] {
		rel, err := db.Relation(name)
		if err != nil {
			return nil, err
		}
		op = execution.NewNaturalJoin(op, rel)
	}

	if r.Predicate != "" {
		op, err = execution.NewSelection(op, r.Predicate)
		if err != nil {
			return nil, err
		}
	}

	defs := r.attributeDefinitions()
	switch {
	case r.GroupBy != "":
		return execution.NewAggregate(op, r.groupingAttributes(), defs)
	case execution.HasAggregateFunctions(defs):
		// Aggregates without grouping attributes fold the whole input
		// into a single group.
		return execution.NewAggregate(op, nil, defs)
	case r.isWildcard():
		return op, nil
	default:
		return execution.NewProjection(op, defs)
	}
}

// Query compiles and runs a request, returning all result tuples.
func (db *Database) Query(r Request) ([]*storage.Tuple, error) {
	tuples, _, err := db.run(r)
	return tuples, err
}

// run compiles and drains a request under a uuid-tagged trace, returning
// the result tuples and their schema.
func (db *Database) run(r Request) ([]*storage.Tuple, *storage.Schema, error) {
	queryID := uuid.NewString()
	db.logger.Debug("query start",
		zap.String("queryID", queryID),
		zap.String("attributes", r.Attributes),
		zap.String("tables", r.Tables),
		zap.String("predicate", r.Predicate),
		zap.String("groupBy", r.GroupBy))

	op, err := db.Compile(r)
	if err != nil {
		return nil, nil, err
	}
	tuples, err := drain(op)
	if err != nil {
		db.logger.Debug("query failed", zap.String("queryID", queryID), zap.Error(err))
		return nil, nil, err
	}
	db.logger.Debug("query done", zap.String("queryID", queryID), zap.Int("rows", len(tuples)))
	return tuples, op.OutputSchema(), nil
}

// Select runs a projection query over the given tables.
func (db *Database) Select(attributes, tables string) ([]*storage.Tuple, error) {
	return db.Query(Request{Attributes: attributes, Tables: tables})
}

// SelectWhere runs a query with a selection predicate.
func (db *Database) SelectWhere(attributes, tables, predicate string) ([]*storage.Tuple, error) {
	return db.Query(Request{Attributes: attributes, Tables: tables, Predicate: predicate})
}

// SelectGroupBy runs a grouped aggregation query.
func (db *Database) SelectGroupBy(attributes, tables, predicate, groupBy string) ([]*storage.Tuple, error) {
	return db.Query(Request{Attributes: attributes, Tables: tables, Predicate: predicate, GroupBy: groupBy})
}

// With materializes a request's result as a new table and returns a new
// Database containing it. The receiver is unchanged: the new catalog shares
// the existing relations, so the two databases diverge only in the derived
// table. The derived relation has no primary key, making it a set of rows:
// duplicate result rows collapse into one.
func (db *Database) With(table string, r Request) (*Database, error) {
	tuples, schema, err := db.run(r)
	if err != nil {
		return nil, err
	}
	derived := storage.NewRelation(schema)
	for _, t := range tuples {
		if _, err := derived.Insert(t.AllValues()...); err != nil {
			if common.IsCode(err, common.DuplicateKey) {
				continue
			}
			return nil, err
		}
	}

	next := &Database{
		name:      db.name,
		relations: xsync.NewMapOf[string, *storage.Relation](),
		logger:    db.logger,
	}
	db.relations.Range(func(name string, rel *storage.Relation) bool {
		next.relations.Store(name, rel)
		return true
	})
	next.relations.Store(table, derived)
	db.logger.Debug("derived table materialized",
		zap.String("table", table), zap.Int("rows", derived.Len()))
	return next, nil
}

// String renders the database as "name{table=relation, ...}" with tables in
// name order.
func (db *Database) String() string {
	names := make([]string, 0, db.relations.Size())
	db.relations.Range(func(name string, _ *storage.Relation) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		rel, _ := db.relations.Load(name)
		parts[i] = fmt.Sprintf("%s=%s", name, rel)
	}
	return fmt.Sprintf("%s{%s}", db.name, strings.Join(parts, ", "))
}

// drain initializes op, pulls it to exhaustion, and closes it.
func drain(op execution.Operator) ([]*storage.Tuple, error) {
	if err := op.Init(); err != nil {
		return nil, err
	}
	defer op.Close()

	var out []*storage.Tuple
	for op.Next() {
		out = append(out, op.Current())
	}
	if err := op.Error(); err != nil {
		return nil, err
	}
	return out, nil
}
