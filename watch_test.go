package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/kyleleelarson/barchart/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loadResult struct {
	data chart.Dataset
	err  error
}

func TestFileWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`[["A",1]]`), 0o644))

	loads := make(chan loadResult, 8)
	w, err := newFileWatcher(path, logr.Discard(), func(data chart.Dataset, err error) {
		loads <- loadResult{data, err}
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(`[["A",1],["B",2]]`), 0o644))

	select {
	case got := <-loads:
		require.NoError(t, got.err)
		assert.Equal(t, chart.Pairs([]string{"A", "B"}, []float64{1, 2}), got.data)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	require.NoError(t, os.WriteFile(path, []byte(`[["A",`), 0o644))
	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-loads:
			if got.err != nil {
				return
			}
		case <-timeout:
			t.Fatal("broken file was not reported")
		}
	}
}

func TestFileWatcherMissingDirectory(t *testing.T) {
	_, err := newFileWatcher(filepath.Join(t.TempDir(), "nope", "data.json"), logr.Discard(), func(chart.Dataset, error) {})
	assert.Error(t, err)
}
