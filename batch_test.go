package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
}

func TestRenderJobOutput(t *testing.T) {
	j := renderJob{path: "data/q1.json"}
	assert.Equal(t, filepath.Join("data", "q1.svg"), j.output(".svg"))
	j.outDir = "out"
	assert.Equal(t, filepath.Join("out", "q1.png"), j.output(".png"))
}

func TestRenderAll(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{
		"a.json":   `[["A",3],["B",5],["C",7]]`,
		"b.csv":    "label,value\nx,1\n",
		"c.json":   `[]`,
		"bad.json": `[["A",`,
	})

	inst, err := newInstruments()
	require.NoError(t, err)
	b := &batchRenderer{cfg: Default(), log: logr.Discard(), inst: inst}

	var jobs []renderJob
	for _, name := range []string{"a.json", "b.csv", "c.json", "bad.json"} {
		jobs = append(jobs, renderJob{path: filepath.Join(src, name), outDir: out, png: true})
	}
	errs := b.renderAll(context.Background(), jobs)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "bad.json")

	svg, err := os.ReadFile(filepath.Join(out, "a.svg"))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(svg), `<rect class="bar"`))
	assert.NotContains(t, string(svg), "<animate")

	assert.FileExists(t, filepath.Join(out, "a.png"))
	assert.FileExists(t, filepath.Join(out, "b.svg"))
	assert.FileExists(t, filepath.Join(out, "c.svg"))
	assert.NoFileExists(t, filepath.Join(out, "c.png"))
	assert.NoFileExists(t, filepath.Join(out, "bad.svg"))
}

func TestRenderAllManyFiles(t *testing.T) {
	src := t.TempDir()
	var jobs []renderJob
	for i := 0; i < 3*batchSize+1; i++ {
		name := filepath.Join(src, strings.Repeat("f", i+1)+".json")
		require.NoError(t, os.WriteFile(name, []byte(`[["A",1]]`), 0o644))
		jobs = append(jobs, renderJob{path: name, animate: true})
	}

	inst, err := newInstruments()
	require.NoError(t, err)
	b := &batchRenderer{cfg: Default(), log: logr.Discard(), inst: inst}
	require.Empty(t, b.renderAll(context.Background(), jobs))

	for _, j := range jobs {
		svg, err := os.ReadFile(j.output(".svg"))
		require.NoError(t, err)
		assert.Contains(t, string(svg), "<animate", j.path)
	}
}

func TestRenderErrorsNameTheFileOnce(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, map[string]string{
		"broken.json": `[["A",`,
		"fine.json":   `[["A",1]]`,
		"blocker":     "",
	})

	inst, err := newInstruments()
	require.NoError(t, err)
	b := &batchRenderer{cfg: Default(), log: logr.Discard(), inst: inst}

	errs := b.renderAll(context.Background(), []renderJob{
		{path: filepath.Join(src, "broken.json")},
		// the output directory is a regular file, so writing fails
		{path: filepath.Join(src, "fine.json"), outDir: filepath.Join(src, "blocker")},
	})
	require.Len(t, errs, 2)
	for _, err := range errs {
		msg := err.Error()
		name := "broken.json"
		if strings.Contains(msg, "fine.json") {
			name = "fine.json"
		}
		assert.Equal(t, 1, strings.Count(msg, name), msg)
	}
}
