package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Page bounds a list query.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) bounds() (int, int) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Repositories groups the repositories that take part in multi-step writes.
type Repositories struct {
	Users     UserRepository
	Employees EmployeeRepository
	Payrolls  PayrollRepository
}

// NewRepositories binds the transactional repositories to db.
func NewRepositories(db DBTX) Repositories {
	return Repositories{
		Users:     NewUserRepository(db),
		Employees: NewEmployeeRepository(db),
		Payrolls:  NewPayrollRepository(db),
	}
}

// TxRunner executes fn inside a single database transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(repos Repositories) error) error
}

type pgTxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner returns a TxRunner backed by pool.
func NewTxRunner(pool *pgxpool.Pool) TxRunner {
	return &pgTxRunner{pool: pool}
}

func (r *pgTxRunner) RunInTx(ctx context.Context, fn func(repos Repositories) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// whereBuilder accumulates numbered placeholders for dynamic filters.
type whereBuilder struct {
	clauses []string
	args    []any
}

// add appends a clause; format receives the placeholder index as %[1]d.
func (w *whereBuilder) add(format string, value any) {
	w.args = append(w.args, value)
	w.clauses = append(w.clauses, fmt.Sprintf(format, len(w.args)))
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// paged renders a list query and its matching count query.
func (w *whereBuilder) paged(selectSQL, countSQL, orderBy string, page Page) (string, string) {
	limit, offset := page.bounds()
	where := w.sql()
	list := fmt.Sprintf("%s%s ORDER BY %s LIMIT %d OFFSET %d", selectSQL, where, orderBy, limit, offset)
	return list, countSQL + where
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-folded substring pattern for LIKE ... ESCAPE '\'.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

// ErrStaleStatus is returned by status-guarded writes when the row no longer has the expected status.
var ErrStaleStatus = errors.New("record status changed")

func staleOnNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrStaleStatus
	}
	return err
}

func affectedOrNoRows(cmd pgconn.CommandTag, err error) error {
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func count(ctx context.Context, db DBTX, query string, args []any) (int, error) {
	var total int
	if err := db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
