package ranking

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rankd/internal/structures"
	"rankd/internal/testutil"
)

func testConfig(filePath string) *structures.Config {
	return &structures.Config{
		Ranking: structures.RankingConfig{
			Owner: "admin",
		},
		Persistence: structures.Persistence{
			FilePath:     filePath,
			SaveInterval: 1 * time.Second,
		},
	}
}

func TestScheduler_Restore_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "restore.dat")

	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	logger := &testutil.MockLogger{}

	src := newTestService()
	_, err = src.SubmitResult("alice", 20240101, 60, 50)
	require.NoError(t, err)
	require.NoError(t, NewFileManager(comp, src, logger).SaveToFile(path))

	svc := newTestService()
	fm := NewFileManager(comp, svc, logger)
	conf := testConfig(path)

	s := NewScheduler(conf, logger, &testutil.MockMetrics{}, svc, fm)
	require.NoError(t, s.Restore())

	assert.Equal(t, uint64(20349), svc.GetTotal("alice"))
}

func TestScheduler_Restore_FileNotExist(t *testing.T) {
	svc := newTestService()
	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})
	conf := testConfig("/nonexistent/file.dat")

	s := NewScheduler(conf, &testutil.MockLogger{}, &testutil.MockMetrics{}, svc, fm)
	assert.NoError(t, s.Restore())
}

func TestScheduler_Restore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.dat")
	require.NoError(t, os.WriteFile(path, []byte("not a snapshot"), 0644))

	svc := newTestService()
	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})
	conf := testConfig(path)

	s := NewScheduler(conf, &testutil.MockLogger{}, &testutil.MockMetrics{}, svc, fm)
	assert.Error(t, s.Restore())
}

func TestScheduler_Persist_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persist.dat")

	svc := newTestService()
	_, err := svc.SubmitResult("alice", 20240101, 60, 50)
	require.NoError(t, err)

	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	fm := NewFileManager(comp, svc, &testutil.MockLogger{})
	metrics := &testutil.MockMetrics{}

	s := NewScheduler(testConfig(path), &testutil.MockLogger{}, metrics, svc, fm)
	require.NoError(t, s.Persist())

	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, 1, metrics.Persists)
}

func TestScheduler_Persist_WriteError(t *testing.T) {
	comp := &testutil.MockCompressor{
		CompressFn: func(_ []byte) ([]byte, error) {
			return nil, errors.New("compress error")
		},
	}
	svc := newTestService()
	fm := NewFileManager(comp, svc, &testutil.MockLogger{})

	s := NewScheduler(testConfig("/tmp/rankd-test.dat"), &testutil.MockLogger{}, &testutil.MockMetrics{}, svc, fm)
	assert.Error(t, s.Persist())
}

func TestScheduler_StopNilCron(t *testing.T) {
	svc := newTestService()
	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})

	s := NewScheduler(testConfig("/tmp/rankd-test.dat"), &testutil.MockLogger{}, &testutil.MockMetrics{}, svc, fm)
	// Should not panic with nil cron
	s.Stop()
}

func TestScheduler_InitAndStop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lifecycle.dat")

	svc := newTestService()
	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})

	s := NewScheduler(testConfig(path), &testutil.MockLogger{}, &testutil.MockMetrics{}, svc, fm)
	s.Init()
	// Give the cron a moment to start
	time.Sleep(50 * time.Millisecond)
	s.Stop()
}
