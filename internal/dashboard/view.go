// Package dashboard is the read side: it fetches the stored records once, orders
// them newest first and filters them by title.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"formtrail/internal/submission/models"
)

// LoadFailedMessage is shown when the single fetch attempt fails.
const LoadFailedMessage = "Could not load data. Please check your connection or try again later."

// ErrAlreadyLoaded is returned by a second Load. There is no automatic retry;
// a fresh View is needed to fetch again.
var ErrAlreadyLoaded = errors.New("dashboard already loaded")

// State is the lifecycle of a View.
type State int

const (
	StateLoading State = iota
	StateError
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Row is one record as the store returned it. Fields keep their wire strings.
type Row struct {
	ID          string
	Title       string
	Gmail       string
	Timestamp   string
	SubmittedAt time.Time
	dated       bool
}

// Dated reports whether Timestamp parsed.
func (r Row) Dated() bool {
	return r.dated
}

func newRow(rec models.SubmissionResponse) Row {
	row := Row{ID: rec.ID, Title: rec.Title, Gmail: rec.Gmail, Timestamp: rec.Timestamp}
	if ts, err := models.ParseTimestamp(rec.Timestamp); err == nil {
		row.SubmittedAt = ts
		row.dated = true
	}
	return row
}

// View holds the fetched set and the current filter.
type View struct {
	mu      sync.RWMutex
	state   State
	message string
	loaded  bool
	all     []Row
	query   string
	logger  *slog.Logger
	loc     *time.Location
}

type Option func(*View)

func WithLogger(logger *slog.Logger) Option {
	return func(v *View) {
		v.logger = logger
	}
}

// WithLocation sets the zone dates are rendered in. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(v *View) {
		v.loc = loc
	}
}

// NewView returns a View in the Loading state.
func NewView(opts ...Option) *View {
	v := &View{
		state:  StateLoading,
		logger: slog.Default(),
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Load performs the single fetch. Failures move the view to StateError and are
// reported through Message; the returned error is only ErrAlreadyLoaded.
func (v *View) Load(ctx context.Context, lister Lister) error {
	v.mu.Lock()
	if v.loaded {
		v.mu.Unlock()
		return ErrAlreadyLoaded
	}
	v.loaded = true
	v.mu.Unlock()

	records, err := lister.List(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.logger.ErrorContext(ctx, "failed to fetch logs", "error", err)
		v.state = StateError
		v.message = LoadFailedMessage
		v.all = nil
		return nil
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, newRow(rec))
	}
	sortNewestFirst(rows)
	v.all = rows
	v.state = StateReady
	v.message = ""
	return nil
}

// sortNewestFirst orders dated rows by SubmittedAt descending. Rows without a
// usable timestamp go last. Equal keys keep their fetched order.
func sortNewestFirst(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		switch {
		case a.dated && !b.dated:
			return -1
		case !a.dated && b.dated:
			return 1
		case !a.dated && !b.dated:
			return 0
		}
		return b.SubmittedAt.Compare(a.SubmittedAt)
	})
}

// SetQuery changes the title filter. It never fetches.
func (v *View) SetQuery(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = q
}

func (v *View) Query() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.query
}

func (v *View) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Message is the user-facing error, empty unless the state is StateError.
func (v *View) Message() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.message
}

// Results returns the rows matching the current query, newest first. Outside
// StateReady the result is empty.
func (v *View) Results() []Row {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return filterByTitle(v.all, v.query)
}

// filterByTitle is a case-insensitive substring match on title only. An empty
// query matches everything; rows without a title never match a non-empty query.
func filterByTitle(rows []Row, query string) []Row {
	out := make([]Row, 0, len(rows))
	if query == "" {
		return append(out, rows...)
	}
	needle := strings.ToLower(query)
	for _, row := range rows {
		if row.Title != "" && strings.Contains(strings.ToLower(row.Title), needle) {
			out = append(out, row)
		}
	}
	return out
}
