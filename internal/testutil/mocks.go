package testutil

import (
	"sync"
	"time"

	"rankd/internal/models"
	"rankd/internal/providers"
	"rankd/internal/services"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// CaptureSink implements services.EventSink and records emitted events.
type CaptureSink struct {
	mu      sync.Mutex
	Results []models.ResultSubmitted
	Boards  []models.LeaderboardUpdated
}

func (c *CaptureSink) ResultSubmitted(ev models.ResultSubmitted) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Results = append(c.Results, ev)
}

func (c *CaptureSink) LeaderboardUpdated(ev models.LeaderboardUpdated) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Boards = append(c.Boards, ev)
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu          sync.Mutex
	Requests    int
	CacheHits   int
	CacheMisses int
	Persists    int
	Submissions map[string]int
	BoardSizes  map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}

func (m *MockMetrics) IncSubmissions(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Submissions == nil {
		m.Submissions = make(map[string]int)
	}
	m.Submissions[outcome]++
}

func (m *MockMetrics) SetBoardSize(scope string, size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BoardSizes == nil {
		m.BoardSizes = make(map[string]int)
	}
	m.BoardSizes[scope] = size
}

var _ services.EventSink = (*CaptureSink)(nil)
var _ providers.Logger = (*MockLogger)(nil)
var _ providers.CacheProviderInterface = (*MockCache)(nil)
var _ providers.MetricsProviderInterface = (*MockMetrics)(nil)
