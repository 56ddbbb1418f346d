package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// tables lists every table the portal may touch and the columns it may
// read or write. Anything else is rejected before SQL is built.
var tables = map[string][]string{
	"organizations":       {"id", "name", "email", "created_at"},
	"interviewers":        {"id", "name", "email", "organization_id", "created_at"},
	"interviewees":        {"id", "name", "email", "organization_id", "created_at"},
	"organization_admins": {"id", "name", "email", "organization_id", "created_at"},
	"interviews": {
		"id", "organization_id", "candidate_name", "interviewee_id", "interviewer_id",
		"job_role", "scheduled_at", "duration", "format", "status", "notes",
		"feedback_submitted", "question_bank", "resume_url", "created_at", "updated_at",
	},
}

type cond struct {
	col string
	val any
}

type order struct {
	col  string
	desc bool
}

// Query is a single-table statement under construction. Builder methods
// never fail; the first bad identifier is remembered and reported when the
// statement is built.
type Query struct {
	s     *Store
	table string
	cols  []string
	where []cond
	order []order
	limit int
	err   error
}

// From starts a query on table.
func (s *Store) From(table string) *Query {
	q := &Query{s: s, table: table}
	if _, ok := tables[table]; !ok {
		q.err = fmt.Errorf("store: unknown table %q", table)
	}
	return q
}

func (q *Query) known(col string) bool {
	for _, c := range tables[q.table] {
		if c == col {
			return true
		}
	}
	return false
}

func (q *Query) check(col string) {
	if q.err == nil && !q.known(col) {
		q.err = fmt.Errorf("store: unknown column %s.%s", q.table, col)
	}
}

// Select narrows the returned columns. Without it every column of the table
// is selected. Rows decode by name, so fields of T outside the selection are
// left zero.
func (q *Query) Select(cols ...string) *Query {
	for _, c := range cols {
		q.check(c)
	}
	q.cols = append(q.cols, cols...)
	return q
}

// Eq adds "col = v". Multiple calls are ANDed.
func (q *Query) Eq(col string, v any) *Query {
	q.check(col)
	q.where = append(q.where, cond{col: col, val: v})
	return q
}

func (q *Query) Order(col string) *Query {
	q.check(col)
	q.order = append(q.order, order{col: col})
	return q
}

func (q *Query) OrderDesc(col string) *Query {
	q.check(col)
	q.order = append(q.order, order{col: col, desc: true})
	return q
}

func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

func ident(parts ...string) string {
	return pgx.Identifier(parts).Sanitize()
}

func (q *Query) columns() []string {
	if len(q.cols) > 0 {
		return q.cols
	}
	return tables[q.table]
}

func columnList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = ident(c)
	}
	return strings.Join(quoted, ", ")
}

// whereClause renders the Eq conditions with placeholders starting at $next.
func (q *Query) whereClause(args []any) (string, []any) {
	if len(q.where) == 0 {
		return "", args
	}
	parts := make([]string, len(q.where))
	for i, w := range q.where {
		args = append(args, w.val)
		parts[i] = ident(w.col) + " = $" + strconv.Itoa(len(args))
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

func (q *Query) selectSQL() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(columnList(q.columns()))
	b.WriteString(" FROM ")
	b.WriteString(ident(q.table))
	where, args := q.whereClause(nil)
	b.WriteString(where)
	if len(q.order) > 0 {
		parts := make([]string, len(q.order))
		for i, o := range q.order {
			parts[i] = ident(o.col)
			if o.desc {
				parts[i] += " DESC"
			}
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(parts, ", "))
	}
	if q.limit > 0 {
		b.WriteString(" LIMIT " + strconv.Itoa(q.limit))
	}
	return b.String(), args, nil
}

// sortedKeys keeps generated SQL stable for a given values map.
func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (q *Query) insertSQL(values map[string]any) (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	if len(values) == 0 {
		return "", nil, fmt.Errorf("store: insert into %s: no values", q.table)
	}
	keys := sortedKeys(values)
	args := make([]any, len(keys))
	ph := make([]string, len(keys))
	for i, k := range keys {
		if !q.known(k) {
			return "", nil, fmt.Errorf("store: unknown column %s.%s", q.table, k)
		}
		args[i] = values[k]
		ph[i] = "$" + strconv.Itoa(i+1)
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		ident(q.table), columnList(keys), strings.Join(ph, ", "), columnList(q.columns()))
	return sql, args, nil
}

func (q *Query) updateSQL(values map[string]any) (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	if len(values) == 0 {
		return "", nil, fmt.Errorf("store: update %s: no values", q.table)
	}
	if len(q.where) == 0 {
		return "", nil, fmt.Errorf("store: update %s without a filter", q.table)
	}
	keys := sortedKeys(values)
	args := make([]any, 0, len(keys)+len(q.where))
	set := make([]string, len(keys))
	for i, k := range keys {
		if !q.known(k) {
			return "", nil, fmt.Errorf("store: unknown column %s.%s", q.table, k)
		}
		args = append(args, values[k])
		set[i] = ident(k) + " = $" + strconv.Itoa(len(args))
	}
	where, args := q.whereClause(args)
	sql := fmt.Sprintf("UPDATE %s SET %s%s RETURNING %s",
		ident(q.table), strings.Join(set, ", "), where, columnList(q.columns()))
	return sql, args, nil
}

func (q *Query) deleteSQL() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	if len(q.where) == 0 {
		return "", nil, fmt.Errorf("store: delete from %s without a filter", q.table)
	}
	where, args := q.whereClause(nil)
	return "DELETE FROM " + ident(q.table) + where, args, nil
}
