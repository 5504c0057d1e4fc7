// Package history records the calculations committed by the calculator engine.
package history

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bond-kaneko/calcusmart/calculator"
	"github.com/google/uuid"
)

// DefaultLimit is the number of recent calculations kept
const DefaultLimit = 10

// Entry is one committed calculation
type Entry struct {
	ID         string
	Expression string
	Result     float64
	Timestamp  time.Time
}

// String renders the entry as "{expression} = {result}"
func (e Entry) String() string {
	return fmt.Sprintf("%s = %s", e.Expression, calculator.FormatNumber(e.Result))
}

// Store persists history entries
type Store interface {
	// Append saves one entry
	Append(ctx context.Context, entry Entry) error
	// Recent returns up to limit entries, newest first
	Recent(ctx context.Context, limit int) ([]Entry, error)
	// Clear removes all entries
	Clear(ctx context.Context) error
}

// Recorder keeps the most recent calculations, newest first
type Recorder struct {
	limit   int
	entries []Entry
	store   Store
	now     func() time.Time
}

// NewRecorder creates a recorder holding at most limit entries.
// If store is non-nil, its most recent entries are loaded and every change is written through to it.
func NewRecorder(ctx context.Context, limit int, store Store) (*Recorder, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	r := &Recorder{
		limit: limit,
		store: store,
		now:   time.Now,
	}

	if store != nil {
		entries, err := store.Recent(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
		r.entries = entries
	}

	return r, nil
}

// Record adds a calculation. It matches calculator.CalculationFunc.
func (r *Recorder) Record(expression string, result float64) {
	entry := Entry{
		ID:         uuid.NewString(),
		Expression: expression,
		Result:     result,
		Timestamp:  r.now(),
	}

	r.entries = append([]Entry{entry}, r.entries...)
	if len(r.entries) > r.limit {
		r.entries = r.entries[:r.limit]
	}

	if r.store != nil {
		if err := r.store.Append(context.Background(), entry); err != nil {
			log.Printf("Error saving calculation %q: %v", expression, err)
		}
	}
}

// Entries returns a copy of the recorded calculations, newest first
func (r *Recorder) Entries() []Entry {
	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Len returns the number of recorded calculations
func (r *Recorder) Len() int {
	return len(r.entries)
}

// Clear removes all recorded calculations
func (r *Recorder) Clear() {
	r.entries = nil

	if r.store != nil {
		if err := r.store.Clear(context.Background()); err != nil {
			log.Printf("Error clearing history: %v", err)
		}
	}
}
