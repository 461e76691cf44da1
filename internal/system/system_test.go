package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample(t *testing.T) {
	s, err := Sample()
	if err != nil {
		t.Skipf("host stats unavailable: %v", err)
	}
	assert.Greater(t, s.CPUs, 0)
	assert.Greater(t, s.RSS, uint64(0))
}

func TestReport(t *testing.T) {
	r := Report{
		Build:      "dev",
		Input:      "input/recordings/cube.yaml",
		Recordings: 2,
		Keyframes:  900,
		Total:      3 * time.Second,
		Stats:      Stats{RSS: 10 << 20, CPUs: 8},
	}

	assert.InDelta(t, 300, r.KeysPerSecond(), 1e-9)
	assert.Zero(t, Report{Keyframes: 5}.KeysPerSecond())

	out := r.String()
	assert.Contains(t, out, "Recordings: 2 | Keyframes: 900")
	assert.Contains(t, out, "RSS: 10.0 MiB | CPUs: 8")

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	line := r.LogLine(at)
	assert.True(t, strings.HasPrefix(line, "[2026-01-02 03:04:05] Build: dev | Input: cube.yaml"))
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestAppendBenchmark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmark.log")
	r := Report{Build: "dev", Input: "a.yaml", Recordings: 1}

	require.NoError(t, AppendBenchmark(path, r))
	require.NoError(t, AppendBenchmark(path, r))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}
