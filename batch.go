package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/kyleleelarson/barchart/chart"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// batchSize is how many files one worker renders.
const batchSize = 8

type renderJob struct {
	path   string
	outDir string
	png    bool
	// animate keeps the entry transitions in the SVG
	animate bool
}

func (j renderJob) output(ext string) string {
	base := strings.TrimSuffix(filepath.Base(j.path), filepath.Ext(j.path)) + ext
	if j.outDir == "" {
		return filepath.Join(filepath.Dir(j.path), base)
	}
	return filepath.Join(j.outDir, base)
}

// batchRenderer builds one chart per file from a shared config.
type batchRenderer struct {
	cfg  *Config
	log  logr.Logger
	inst *instruments
}

// renderFile mounts a fresh renderer on the file's dataset and writes its
// snapshots next to it, or into outDir. Every error names job.path once.
func (b *batchRenderer) renderFile(ctx context.Context, job renderJob) (err error) {
	ctx, span := tracer.Start(ctx, "render")
	span.SetAttributes(attribute.String("file", job.path))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "render failed")
		}
		span.End()
	}()

	// load errors already carry the path
	data, err := loadDataset(job.path)
	if err != nil {
		return err
	}
	if err := b.draw(ctx, job, data); err != nil {
		return errors.Wrapf(err, "render %s", job.path)
	}
	b.log.V(1).Info("rendered", "file", job.path, "bars", len(data))
	return nil
}

func (b *batchRenderer) draw(ctx context.Context, job renderJob, data chart.Dataset) error {
	rc, o, err := b.cfg.Chart.Renderer()
	if err != nil {
		return err
	}
	r := chart.New(rc, o, chart.WithLogger(b.log.WithName("chart")))
	if err := r.Mount(b.cfg.Chart.Container(), data); err != nil {
		return err
	}
	b.inst.updated(ctx, len(data))

	f := r.Settled()
	if job.animate {
		f = r.Current()
	}
	var buf bytes.Buffer
	if err := chart.WriteSVG(&buf, f); err != nil {
		return err
	}
	if err := os.WriteFile(job.output(".svg"), buf.Bytes(), 0o644); err != nil {
		return err
	}
	b.inst.rendered(ctx, "svg")

	if job.png && len(data) > 0 {
		buf.Reset()
		_, valueMax := r.ValueScale().Domain()
		if err := writePNG(&buf, r.Settled(), valueMax, b.cfg.Chart.Title, 1); err != nil {
			return err
		}
		if err := os.WriteFile(job.output(".png"), buf.Bytes(), 0o644); err != nil {
			return err
		}
		b.inst.rendered(ctx, "png")
	}
	return nil
}

// renderBatch renders a slice of jobs and reports every failure.
func (b *batchRenderer) renderBatch(ctx context.Context, jobs []renderJob, wg *sync.WaitGroup, failed chan<- error) {
	defer wg.Done()
	for _, job := range jobs {
		if err := b.renderFile(ctx, job); err != nil {
			failed <- err
		}
	}
}

// renderAll fans the jobs out in batches and waits for all of them.
func (b *batchRenderer) renderAll(ctx context.Context, jobs []renderJob) []error {
	var wg sync.WaitGroup
	failed := make(chan error, len(jobs))

	for start := 0; start < len(jobs); start += batchSize {
		end := start + batchSize
		if end > len(jobs) {
			end = len(jobs)
		}
		wg.Add(1)
		go b.renderBatch(ctx, jobs[start:end], &wg, failed)
	}
	wg.Wait()
	close(failed)

	var errs []error
	for err := range failed {
		errs = append(errs, err)
	}
	return errs
}

var renderCmd = &cobra.Command{
	Use:   "render <file>...",
	Short: "Render dataset files to SVG",
	Long: `Render each dataset file (JSON pairs or CSV) to an SVG of the settled chart,
written beside the file or into --out.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("out", "o", "", "output directory")
	renderCmd.Flags().Bool("png", false, "also write a PNG snapshot")
	renderCmd.Flags().Bool("animate", false, "keep the entry animation in the SVG")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	png, _ := cmd.Flags().GetBool("png")
	animate, _ := cmd.Flags().GetBool("animate")

	if out != "" {
		if err := os.MkdirAll(out, 0o755); err != nil {
			return err
		}
	}
	inst, err := newInstruments()
	if err != nil {
		return err
	}

	jobs := make([]renderJob, len(args))
	for i, path := range args {
		jobs[i] = renderJob{path: path, outDir: out, png: png, animate: animate}
	}
	b := &batchRenderer{cfg: appConfig, log: appLog, inst: inst}
	errs := b.renderAll(cmd.Context(), jobs)
	for _, err := range errs {
		appLog.Error(err, "render failed")
	}
	appLog.Info("render finished", "files", len(jobs), "failed", len(errs))
	if len(errs) > 0 {
		return errors.Errorf("%d of %d files failed", len(errs), len(jobs))
	}
	return nil
}
