package repo

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"clearcause/internal/infra"
)

// stubDB answers statements by their sqlinline constant.
type stubDB struct {
	execTags map[string]string
	rows     map[string][]any
	rowErrs  map[string]error
	sets     map[string][][]any

	execs []execCall
	txs   int
}

type execCall struct {
	query string
	args  []any
}

func newStubDB() *stubDB {
	return &stubDB{
		execTags: map[string]string{},
		rows:     map[string][]any{},
		rowErrs:  map[string]error{},
		sets:     map[string][][]any{},
	}
}

func (s *stubDB) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.execs = append(s.execs, execCall{query: query, args: args})
	tag, ok := s.execTags[query]
	if !ok {
		tag = "UPDATE 1"
	}
	return pgconn.NewCommandTag(tag), nil
}

func (s *stubDB) QueryRow(_ context.Context, query string, _ ...any) pgx.Row {
	if err, ok := s.rowErrs[query]; ok {
		return stubRow{err: err}
	}
	vals, ok := s.rows[query]
	if !ok {
		return stubRow{err: pgx.ErrNoRows}
	}
	return stubRow{vals: vals}
}

func (s *stubDB) Query(_ context.Context, query string, _ ...any) (pgx.Rows, error) {
	return &stubRows{data: s.sets[query]}, nil
}

func (s *stubDB) InTx(_ context.Context, fn func(infra.SQLExecutor) error) error {
	s.txs++
	return fn(s)
}

func (s *stubDB) executed(query string) []execCall {
	var out []execCall
	for _, c := range s.execs {
		if c.query == query {
			out = append(out, c)
		}
	}
	return out
}

type stubRow struct {
	vals []any
	err  error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.vals)
}

type stubRows struct {
	data [][]any
	idx  int
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, fmt.Errorf("not supported") }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	return assign(dest, r.data[r.idx-1])
}

// assign copies vals into dest pointers, converting between named and
// underlying types the way pgx does.
func assign(dest []any, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(vals))
	}
	for i, v := range vals {
		target := reflect.ValueOf(dest[i]).Elem()
		if v == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		src := reflect.ValueOf(v)
		if target.Kind() == reflect.Pointer && src.Kind() != reflect.Pointer {
			ptr := reflect.New(target.Type().Elem())
			ptr.Elem().Set(src.Convert(target.Type().Elem()))
			target.Set(ptr)
			continue
		}
		target.Set(src.Convert(target.Type()))
	}
	return nil
}
