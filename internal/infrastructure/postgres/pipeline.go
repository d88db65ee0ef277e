package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// DBTX abstracts pgxpool.Pool and pgx.Tx for testability.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pipeline is a pure description of a read query: base table, projected
// columns, join stages, filter conditions and sort stages. Builders
// compose pipelines and never touch the database; Paginate executes them
// with count-then-page semantics. Conditions use ? placeholders, rewritten
// to positional arguments when the SQL is rendered.
type Pipeline struct {
	table   string
	selects []string
	joins   []string
	wheres  []string
	args    []any
	orderBy []string
}

// NewPipeline starts a pipeline over the given base table (aliases
// allowed, e.g. "videos v").
func NewPipeline(table string) *Pipeline {
	return &Pipeline{table: table}
}

// Select appends projected column expressions.
func (p *Pipeline) Select(exprs ...string) *Pipeline {
	p.selects = append(p.selects, exprs...)
	return p
}

// Join appends a join stage, e.g. "JOIN users u ON u.id = v.owner_id".
func (p *Pipeline) Join(clause string) *Pipeline {
	p.joins = append(p.joins, clause)
	return p
}

// Where appends a filter condition. Conditions are AND-ed.
func (p *Pipeline) Where(cond string, args ...any) *Pipeline {
	p.wheres = append(p.wheres, cond)
	p.args = append(p.args, args...)
	return p
}

// OrderBy appends sort expressions. Sort stages always render before
// LIMIT/OFFSET, which is what makes page boundaries deterministic.
func (p *Pipeline) OrderBy(exprs ...string) *Pipeline {
	p.orderBy = append(p.orderBy, exprs...)
	return p
}

// SQL renders the full, unpaged query.
func (p *Pipeline) SQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(p.selects, ", "))
	p.writeFromWhere(&b)
	p.writeOrderBy(&b)
	return rebind(b.String()), p.args
}

// pageSQL renders the query with LIMIT/OFFSET applied after the sort.
func (p *Pipeline) pageSQL(limit, offset int) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(p.selects, ", "))
	p.writeFromWhere(&b)
	p.writeOrderBy(&b)
	b.WriteString(" LIMIT ? OFFSET ?")
	args := append(append([]any{}, p.args...), limit, offset)
	return rebind(b.String()), args
}

// countSQL renders the count query over the same filtered, pre-skip set.
func (p *Pipeline) countSQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT count(*)")
	p.writeFromWhere(&b)
	return rebind(b.String()), p.args
}

func (p *Pipeline) writeFromWhere(b *strings.Builder) {
	b.WriteString(" FROM ")
	b.WriteString(p.table)
	for _, j := range p.joins {
		b.WriteString(" ")
		b.WriteString(j)
	}
	if len(p.wheres) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(p.wheres, " AND "))
	}
}

func (p *Pipeline) writeOrderBy(b *strings.Builder) {
	if len(p.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(p.orderBy, ", "))
	}
}

// rebind rewrites ? placeholders to $1..$n positional arguments.
func rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Paginate executes a pipeline with uniform page semantics: the total is
// counted over the filtered set before skip/limit, the page query applies
// the pipeline's sort before LIMIT/OFFSET, and a page past the end yields
// empty Docs rather than an error.
func Paginate[T any](ctx context.Context, db DBTX, p *Pipeline, page repository.PageRequest, scan func(rows pgx.Rows) (T, error)) (*repository.Page[T], error) {
	countQuery, countArgs := p.countSQL()

	var total int
	if err := db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}

	pageQuery, pageArgs := p.pageSQL(page.Limit, page.Offset())

	rows, err := db.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query page: %w", err)
	}
	defer rows.Close()

	docs := []T{}
	for rows.Next() {
		doc, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating page: %w", err)
	}

	return repository.NewPage(docs, page, total), nil
}
