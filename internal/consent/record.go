package consent

import (
	"errors"
	"time"

	"github.com/bytedance/sonic"
)

// Versions of the consent dialog and privacy policy the record must match.
const (
	CurrentVersion       = 1
	CurrentPolicyVersion = 1
	StorageKey           = "consent:v1"
)

// ErrEmptyRecord is returned when parsing an empty payload.
var ErrEmptyRecord = errors.New("consent record is empty")

// Preferences are the optional categories a visitor may opt into.
type Preferences struct {
	Analytics bool `json:"analytics"`
	Marketing bool `json:"marketing"`
}

// Confirmations are the mandatory acknowledgements of the disclaimer.
type Confirmations struct {
	Age   bool `json:"age"`
	Terms bool `json:"terms"`
}

// Record is the versioned privacy choice stored on the visitor's device.
type Record struct {
	Version       int           `json:"version"`
	PolicyVersion int           `json:"policyVersion"`
	Timestamp     time.Time     `json:"timestamp"`
	Preferences   Preferences   `json:"preferences"`
	Confirmations Confirmations `json:"confirmations"`
}

// NewRecord builds a confirmed record at the current versions.
func NewRecord(prefs Preferences, now time.Time) Record {
	return Record{
		Version:       CurrentVersion,
		PolicyVersion: CurrentPolicyVersion,
		Timestamp:     now.UTC(),
		Preferences:   prefs,
		Confirmations: Confirmations{Age: true, Terms: true},
	}
}

// Valid reports whether the record was made against the current dialog and
// policy. The timestamp is not considered.
func (r *Record) Valid() bool {
	return r != nil && r.Version == CurrentVersion && r.PolicyVersion == CurrentPolicyVersion
}

// Parse decodes a stored record.
func Parse(raw string) (*Record, error) {
	if raw == "" {
		return nil, ErrEmptyRecord
	}
	var r Record
	if err := sonic.UnmarshalString(raw, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Encode serializes the record for storage.
func (r Record) Encode() (string, error) {
	return sonic.MarshalString(r)
}
