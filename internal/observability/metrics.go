package observability

import (
	"strconv"
	"sync"
	"time"
)

// RouteStats is a snapshot of counters for one method/path/status key.
type RouteStats struct {
	Requests      int64         `json:"requests"`
	TotalDuration time.Duration `json:"total_duration_ns"`
}

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]*RouteStats
	errors   map[string]int64
	gate     map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]*RouteStats),
		errors:   make(map[string]int64),
		gate:     make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := method + "|" + path + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	stats, ok := m.requests[key]
	if !ok {
		stats = &RouteStats{}
		m.requests[key] = stats
	}
	stats.Requests++
	stats.TotalDuration += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[method+"|"+path+"|"+code]++
}

// RecordGateOutcome counts edge gate decisions such as "refreshed" or "not_admin".
func (m *Metrics) RecordGateOutcome(outcome string) {
	if m == nil || outcome == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gate[outcome]++
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() (map[string]RouteStats, map[string]int64, map[string]int64) {
	requests := make(map[string]RouteStats)
	errs := make(map[string]int64)
	gate := make(map[string]int64)
	if m == nil {
		return requests, errs, gate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.requests {
		requests[k] = *v
	}
	for k, v := range m.errors {
		errs[k] = v
	}
	for k, v := range m.gate {
		gate[k] = v
	}
	return requests, errs, gate
}
