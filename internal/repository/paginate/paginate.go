// Package paginate turns an ordered base query into a bounded page plus the number of pages the
// unbounded query spans.
//
// The common case costs a single statement: the page rows carry a COUNT(*) OVER () column. When the
// requested window is past the last row no row carries that column, so a plain COUNT(*) over the
// base query is issued. Both statements run inside one read-only snapshot obtained from the Executor.
package paginate

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"
)

// ErrInvalidPageSize is returned by LoadPage for a page size below one, before any statement is issued.
var ErrInvalidPageSize = errors.New("paginate: page size must be >= 1")

// Row is a single-row result.
type Row interface {
	Scan(dest ...any) error
}

// Rows is a forward-only result set. pgx.Rows satisfies it as is.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Conn issues statements on a connection borrowed for one LoadPage call.
type Conn interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Executor runs fn inside a read-only transaction in which every statement observes the same
// snapshot. It must return the error of fn unchanged and roll back on any error or cancellation.
// When ctx already carries a transaction, implementations join it only if it is itself a snapshot
// and fail otherwise.
type Executor interface {
	Snapshot(ctx context.Context, fn func(ctx context.Context, conn Conn) error) error
}

// Dest returns the scan destinations of one base query row, in SELECT list order.
type Dest[T any] func(item *T) []any

// Page is one bounded window of records and the page count of the unbounded query.
type Page[T any] struct {
	Records    []T
	TotalPages int64
}

// Observer is notified once per load. fallback reports whether the COUNT(*) statement was needed.
type Observer interface {
	ObservePage(fallback bool, err error)
}

type nopObserver struct{}

func (nopObserver) ObservePage(bool, error) {}

// collectFunc drains the windowed result set and reports how many rows it saw and the total column.
type collectFunc func(rows Rows) (n int, total int64, err error)

type loadFunc func(ctx context.Context, q Paginated, exec Executor, collect collectFunc) (int64, error)

// Paginator executes Paginated queries. It is safe for concurrent use.
type Paginator struct {
	log      zerolog.Logger
	observer Observer
	faults   FaultInjector
	load     loadFunc
}

type Option func(*Paginator)

func WithLogger(l zerolog.Logger) Option {
	return func(p *Paginator) {
		p.log = l.With().Str("module", "repository").Str("component", "paginator").Logger()
	}
}

func WithObserver(o Observer) Option {
	return func(p *Paginator) {
		if o != nil {
			p.observer = o
		}
	}
}

// WithFaultInjector makes every load consult f before touching the executor.
func WithFaultInjector(f FaultInjector) Option {
	return func(p *Paginator) { p.faults = f }
}

func New(opts ...Option) *Paginator {
	p := &Paginator{log: zerolog.Nop(), observer: nopObserver{}}
	for _, opt := range opts {
		opt(p)
	}
	if p.faults != nil {
		p.load = p.faultingLoad
	} else {
		p.load = p.realLoad
	}
	return p
}

// LoadPage executes q on exec and scans each row with dest. A nil Paginator behaves like New().
func LoadPage[T any](ctx context.Context, p *Paginator, q Paginated, exec Executor, dest Dest[T]) (Page[T], error) {
	if q.pageSize < 1 {
		return Page[T]{}, ErrInvalidPageSize
	}
	if p == nil {
		p = New()
	}

	var records []T
	collect := func(rows Rows) (int, int64, error) {
		records = make([]T, 0, q.pageSize)
		var total int64
		for rows.Next() {
			var item T
			if err := rows.Scan(append(dest(&item), &total)...); err != nil {
				return 0, 0, err
			}
			records = append(records, item)
		}
		return len(records), total, rows.Err()
	}

	total, err := p.load(ctx, q, exec, collect)
	if err != nil {
		return Page[T]{}, err
	}
	if records == nil {
		records = []T{}
	}
	return Page[T]{Records: records, TotalPages: TotalPages(total, q.pageSize)}, nil
}

// TotalPages is ceil(total/pageSize).
func TotalPages(total, pageSize int64) int64 {
	return int64(math.Ceil(float64(total) / float64(pageSize)))
}

func (p *Paginator) realLoad(ctx context.Context, q Paginated, exec Executor, collect collectFunc) (int64, error) {
	var (
		total    int64
		fallback bool
	)
	err := exec.Snapshot(ctx, func(ctx context.Context, conn Conn) error {
		sql, args := q.Render()
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		n, t, err := collect(rows)
		rows.Close()
		if err != nil {
			return err
		}
		if n > 0 {
			total = t
			return nil
		}

		fallback = true
		countSQL, countArgs := q.CountSQL()
		return conn.QueryRow(ctx, countSQL, countArgs...).Scan(&total)
	})
	p.observer.ObservePage(fallback, err)
	if err != nil {
		return 0, err
	}
	if fallback {
		p.log.Debug().
			Int64("page", q.page).
			Int64("page_size", q.pageSize).
			Int64("total", total).
			Msg("empty window, total resolved by count query")
	}
	return total, nil
}

func (p *Paginator) faultingLoad(ctx context.Context, q Paginated, exec Executor, collect collectFunc) (int64, error) {
	if err := p.faults.Fault(); err != nil {
		p.observer.ObservePage(false, err)
		return 0, err
	}
	return p.realLoad(ctx, q, exec, collect)
}
