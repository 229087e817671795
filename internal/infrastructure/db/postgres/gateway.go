package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
)

const uniqueViolation = "23505"

// Fields maps column names to values.
type Fields map[string]any

// Predicate is a set of column equality conditions joined with AND. A nil
// value matches NULL.
type Predicate map[string]any

// Row is one result row keyed by column name.
type Row map[string]any

// Gateway is the generic CRUD layer. Identifiers are quoted and every value
// is sent as a bind parameter; no caller input is ever spliced into SQL.
type Gateway struct {
	db DB
}

func NewGateway(db DB) *Gateway {
	return &Gateway{db: db}
}

// Insert adds a row and returns its id.
func (g *Gateway) Insert(ctx context.Context, table string, fields Fields) (int64, error) {
	if len(fields) == 0 {
		return 0, fmt.Errorf("insert %s: no fields", table)
	}

	cols := sortedKeys(fields)
	quoted := make([]string, len(cols))
	holders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		quoted[i] = ident(c)
		holders[i] = "$" + strconv.Itoa(i+1)
		args[i] = fields[c]
	}

	sql := "INSERT INTO " + ident(table) +
		" (" + strings.Join(quoted, ", ") + ") VALUES (" + strings.Join(holders, ", ") + ") RETURNING " + ident("id")

	var id int64
	if err := g.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, wrap("insert", table, err)
	}
	return id, nil
}

// Find returns every row matching where, ordered by id. An empty predicate
// returns the whole table.
func (g *Gateway) Find(ctx context.Context, table string, where Predicate) ([]Row, error) {
	clause, args := whereClause(where, 1)
	sql := "SELECT * FROM " + ident(table) + clause + " ORDER BY " + ident("id")
	rows, err := g.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap("find", table, err)
	}
	return rows, nil
}

// FindOne returns the first row matching where or domain.ErrNotFound.
func (g *Gateway) FindOne(ctx context.Context, table string, where Predicate) (Row, error) {
	rows, err := g.Find(ctx, table, where)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return rows[0], nil
}

// Update sets fields on every row matching where and returns the number of
// rows changed.
func (g *Gateway) Update(ctx context.Context, table string, fields Fields, where Predicate) (int64, error) {
	if len(fields) == 0 {
		return 0, fmt.Errorf("update %s: no fields", table)
	}
	if len(where) == 0 {
		return 0, fmt.Errorf("update %s: %w", table, domain.ErrUnboundedWrite)
	}

	cols := sortedKeys(fields)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+len(where))
	for i, c := range cols {
		sets[i] = ident(c) + " = $" + strconv.Itoa(i+1)
		args = append(args, fields[c])
	}
	clause, whereArgs := whereClause(where, len(cols)+1)
	args = append(args, whereArgs...)

	sql := "UPDATE " + ident(table) + " SET " + strings.Join(sets, ", ") + clause
	tag, err := g.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, wrap("update", table, err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes every row matching where and returns the number removed.
func (g *Gateway) Delete(ctx context.Context, table string, where Predicate) (int64, error) {
	if len(where) == 0 {
		return 0, fmt.Errorf("delete %s: %w", table, domain.ErrUnboundedWrite)
	}

	clause, args := whereClause(where, 1)
	tag, err := g.db.Exec(ctx, "DELETE FROM "+ident(table)+clause, args...)
	if err != nil {
		return 0, wrap("delete", table, err)
	}
	return tag.RowsAffected(), nil
}

// Query runs a parameterized statement and collects the result rows.
func (g *Gateway) Query(ctx context.Context, sql string, args ...any) ([]Row, error) {
	rows, err := g.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(Row, len(fields))
		for i, f := range fields {
			row[f.Name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DB exposes the underlying connection, e.g. for readiness probes.
func (g *Gateway) DB() DB { return g.db }

func whereClause(where Predicate, start int) (string, []any) {
	if len(where) == 0 {
		return "", nil
	}
	cols := sortedKeys(where)
	conds := make([]string, len(cols))
	args := make([]any, 0, len(cols))
	n := start
	for i, c := range cols {
		if where[c] == nil {
			conds[i] = ident(c) + " IS NULL"
			continue
		}
		conds[i] = ident(c) + " = $" + strconv.Itoa(n)
		args = append(args, where[c])
		n++
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func sortedKeys[M ~map[string]any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// wrap tags driver failures with domain.ErrPersistence and keeps the cause.
// Unique violations on email surface as domain.ErrDuplicateEmail.
func wrap(op, table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && strings.Contains(pgErr.ConstraintName, "email") {
		return fmt.Errorf("%s %s: %w", op, table, domain.ErrDuplicateEmail)
	}
	return fmt.Errorf("%s %s: %w: %w", op, table, domain.ErrPersistence, err)
}

// Row accessors tolerate the integer widths pgx decodes and NULL.

func (r Row) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int16:
		return int64(v)
	case int:
		return int64(v)
	}
	return 0
}

func (r Row) Int(col string) int { return int(r.Int64(col)) }

func (r Row) String(col string) string {
	if v, ok := r[col].(string); ok {
		return v
	}
	return ""
}

func (r Row) Time(col string) time.Time {
	if v, ok := r[col].(time.Time); ok {
		return v
	}
	return time.Time{}
}
