package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRows serves a fixed result set through the pgx.Rows interface.
type fakeRows struct {
	cols   []string
	values [][]any
	pos    int
	err    error
	closed bool
}

func newFakeRows(cols []string, values ...[]any) *fakeRows {
	return &fakeRows{cols: cols, values: values}
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) RawValues() [][]byte           { return nil }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fields := make([]pgconn.FieldDescription, len(r.cols))
	for i, c := range r.cols {
		fields[i] = pgconn.FieldDescription{Name: c}
	}
	return fields
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(...any) error { return errors.New("not supported") }

func (r *fakeRows) Values() ([]any, error) {
	return r.values[r.pos-1], nil
}

// idRow answers the RETURNING "id" scan of an insert.
type idRow struct {
	id  int64
	err error
}

func (r idRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = r.id
	return nil
}

// recorder captures the statements sent to a FakeDB.
type recorder struct {
	sql  []string
	args [][]any
}

func (rec *recorder) add(sql string, args []any) {
	rec.sql = append(rec.sql, sql)
	rec.args = append(rec.args, args)
}

func (rec *recorder) db(rows func() pgx.Rows, nextID func() int64, tag string) *FakeDB {
	return &FakeDB{
		QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			rec.add(sql, args)
			return rows(), nil
		},
		QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			rec.add(sql, args)
			return idRow{id: nextID()}
		},
		ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			rec.add(sql, args)
			return pgconn.NewCommandTag(tag), nil
		},
	}
}
