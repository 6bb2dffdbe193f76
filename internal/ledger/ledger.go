package ledger

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/Dinhan123456/cinemahub-booking/internal/model"
)

// GuestUser is the ledger key fallback for unauthenticated sessions.
const GuestUser = "guest"

// StatusAll is the wildcard accepted by Filter's status predicate.
const StatusAll = "all"

const keyPrefix = "userBookings:"

// Ledger reads and appends per-user booking records. Each user maps to
// an ordered JSON array under "userBookings:{username}"; insertion
// order is chronological order. Records are never rewritten, only
// appended. Malformed persisted data is treated as an empty list so a
// corrupt value can never break the booking flow.
type Ledger struct {
	store Store
}

// NewLedger returns a Ledger on top of the given store.
func NewLedger(store Store) *Ledger {
	if store == nil {
		panic("nil store passed to NewLedger")
	}
	return &Ledger{store: store}
}

// Append pushes record onto the end of username's list and writes the
// list back. The read-modify-write is best-effort under concurrent
// writers; last write wins.
func (l *Ledger) Append(ctx context.Context, username string, record model.BookingRecord) error {
	key := userKey(username)
	records := l.load(ctx, key)
	records = append(records, record)
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return l.store.Set(ctx, key, string(data))
}

// List returns username's records in insertion order. Absent or
// malformed data yields an empty list, never an error.
func (l *Ledger) List(ctx context.Context, username string) []model.BookingRecord {
	return l.load(ctx, userKey(username))
}

// Filter narrows records by a case-insensitive substring match of
// searchTerm against the movie title or booking code, AND an exact
// status match. Empty searchTerm matches everything; empty or "all"
// status matches every status.
func Filter(records []model.BookingRecord, searchTerm, status string) []model.BookingRecord {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	out := make([]model.BookingRecord, 0, len(records))
	for _, r := range records {
		if term != "" &&
			!strings.Contains(strings.ToLower(r.Movie.Title), term) &&
			!strings.Contains(strings.ToLower(r.BookingCode), term) {
			continue
		}
		if status != "" && status != StatusAll && string(r.Status) != status {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (l *Ledger) load(ctx context.Context, key string) []model.BookingRecord {
	raw, err := l.store.Get(ctx, key)
	if err != nil {
		log.Printf("ledger: read %s failed: %v; treating as empty", key, err)
		return []model.BookingRecord{}
	}
	if raw == "" {
		return []model.BookingRecord{}
	}
	var records []model.BookingRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Printf("ledger: malformed data at %s: %v; treating as empty", key, err)
		return []model.BookingRecord{}
	}
	return records
}

func userKey(username string) string {
	if strings.TrimSpace(username) == "" {
		username = GuestUser
	}
	return keyPrefix + username
}
