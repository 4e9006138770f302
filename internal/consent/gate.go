package consent

import (
	"time"
)

// State is the disclaimer dialog state.
type State int

const (
	Prompting State = iota
	Resolved
)

func (s State) String() string {
	if s == Resolved {
		return "resolved"
	}
	return "prompting"
}

// Gate decides whether the disclaimer must be shown and records confirmations.
type Gate struct {
	store  Store
	state  State
	prefs  Preferences
	record *Record
}

// Open reads the stored record. A missing, unreadable or outdated record
// prompts with everything opted out.
func Open(store Store) *Gate {
	g := &Gate{store: store, state: Prompting}
	raw, ok := store.Load()
	if !ok {
		return g
	}
	record, err := Parse(raw)
	if err != nil || !record.Valid() {
		return g
	}
	g.record = record
	g.prefs = record.Preferences
	g.state = Resolved
	return g
}

// Confirm persists a full record with prefs and closes the dialog.
func (g *Gate) Confirm(prefs Preferences, now time.Time) (Record, error) {
	record := NewRecord(prefs, now)
	raw, err := record.Encode()
	if err != nil {
		return Record{}, err
	}
	g.store.Save(raw)
	g.record = &record
	g.prefs = prefs
	g.state = Resolved
	return record, nil
}

// OpenSettings reopens the dialog keeping the current preferences.
func (g *Gate) OpenSettings() {
	g.state = Prompting
}

func (g *Gate) State() State { return g.state }

func (g *Gate) Preferences() Preferences { return g.prefs }

// Record returns the valid stored record, or nil.
func (g *Gate) Record() *Record { return g.record }
