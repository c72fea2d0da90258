package main

import (
	"context"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"github.com/kyleleelarson/barchart/chart"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// reloadDebounce collapses the bursts of events editors produce on save.
const reloadDebounce = 50 * time.Millisecond

// fileWatcher reloads one dataset file whenever it changes on disk. The
// directory is watched so that editors which replace the file by renaming
// are still seen.
type fileWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	log     logr.Logger
	onLoad  func(chart.Dataset, error)
}

func newFileWatcher(path string, log logr.Logger, onLoad func(chart.Dataset, error)) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}
	return &fileWatcher{path: abs, watcher: watcher, log: log, onLoad: onLoad}, nil
}

// Run delivers reloads until ctx is done, then closes the watcher.
func (w *fileWatcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	debounce := time.NewTimer(0)
	<-debounce.C
	pending := false

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = true
			debounce.Reset(reloadDebounce)

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			data, err := loadDataset(w.path)
			w.log.V(1).Info("dataset reloaded", "path", w.path, "bars", len(data), "ok", err == nil)
			w.onLoad(data, err)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error(err, "watch error", "path", w.path)
		}
	}
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Animate a dataset file in the terminal",
	Long: `Draw the chart of a dataset file in the terminal and animate it to the
new data every time the file is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	// stderr shares the terminal with the alternate screen
	log := logr.Discard()
	path := args[0]

	data, err := loadDataset(path)
	if err != nil {
		return err
	}
	rc, o, err := cfg.Chart.Renderer()
	if err != nil {
		return err
	}
	r := chart.New(terminalConfig(rc), o, chart.WithLogger(log.WithName("chart")))
	if err := r.SetData(data); err != nil {
		return err
	}

	p := tea.NewProgram(newChartModel(r, filepath.Base(path), log), tea.WithAltScreen())

	w, err := newFileWatcher(path, log, func(data chart.Dataset, err error) {
		if err != nil {
			p.Send(errMsg{err: err})
			return
		}
		p.Send(dataMsg{data: data})
	})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go w.Run(ctx)

	_, err = p.Run()
	return err
}
