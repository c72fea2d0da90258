package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/kyleleelarson/barchart/chart"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	maxBodyBytes  = 1 << 20
	defaultStatic = "0"
	defaultScale  = "1"
)

// Parameters are the query parameters shared by the chart endpoints.
type Parameters struct {
	title  string
	static bool
	scale  float64
}

// chartServer hosts one chart. The renderer is single-owner, so every
// handler holds mu while it touches it.
type chartServer struct {
	mu    sync.Mutex
	r     *chart.Renderer
	title string
	log   logr.Logger
	inst  *instruments
}

func newChartServer(cfg *Config, log logr.Logger, data chart.Dataset) (*chartServer, error) {
	rc, o, err := cfg.Chart.Renderer()
	if err != nil {
		return nil, err
	}
	inst, err := newInstruments()
	if err != nil {
		return nil, err
	}
	r := chart.New(rc, o, chart.WithLogger(log.WithName("chart")))
	if err := r.Mount(cfg.Chart.Container(), data); err != nil {
		return nil, err
	}
	return &chartServer{r: r, title: cfg.Chart.Title, log: log, inst: inst}, nil
}

func (s *chartServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", processParameters(s.graph))
	mux.HandleFunc("/chart.svg", processParameters(s.svg))
	mux.HandleFunc("/chart.png", processParameters(s.png))
	mux.HandleFunc("/data", s.data)
	return mux
}

// helper functions to check request parameters and supply defaults
func paramStr(r *http.Request, name string, def string) string {
	param := r.FormValue(name)
	if param == "" {
		return def
	}
	return param
}

// processParameters parses the shared parameters before calling fn.
func processParameters(fn func(http.ResponseWriter, *http.Request, *Parameters)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		static, err := strconv.ParseBool(paramStr(r, "static", defaultStatic))
		if err != nil {
			http.Error(w, "invalid static parameter", http.StatusBadRequest)
			return
		}
		scale, err := strconv.ParseFloat(paramStr(r, "scale", defaultScale), 64)
		if err != nil || !(scale > 0) || scale > 4 {
			http.Error(w, "invalid scale parameter", http.StatusBadRequest)
			return
		}
		fn(w, r, &Parameters{
			title:  paramStr(r, "title", ""),
			static: static,
			scale:  scale,
		})
	}
}

func (s *chartServer) startSpan(r *http.Request, name string) (context.Context, trace.Span) {
	return tracer.Start(r.Context(), name, trace.WithAttributes(
		attribute.String("http.method", r.Method),
		attribute.String("http.target", r.URL.Path),
	))
}

// frame snapshots the chart; static asks for the settled state.
func (s *chartServer) frame(static bool) (chart.Frame, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, valueMax := s.r.ValueScale().Domain()
	if static {
		return s.r.Settled(), valueMax
	}
	return s.r.Current(), valueMax
}

func (s *chartServer) titleFor(p *Parameters) string {
	if p.title != "" {
		return p.title
	}
	return s.title
}

func (s *chartServer) graph(w http.ResponseWriter, r *http.Request, p *Parameters) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ctx, span := s.startSpan(r, "graph")
	defer span.End()

	f, valueMax := s.frame(true)
	var buf bytes.Buffer
	if err := newGraph(f, valueMax, s.titleFor(p)).Render(&buf); err != nil {
		s.fail(w, span, err, "render graph")
		return
	}
	s.inst.rendered(ctx, "echarts")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *chartServer) svg(w http.ResponseWriter, r *http.Request, p *Parameters) {
	ctx, span := s.startSpan(r, "svg")
	defer span.End()

	f, _ := s.frame(p.static)
	var buf bytes.Buffer
	if err := chart.WriteSVG(&buf, f); err != nil {
		s.fail(w, span, err, "render svg")
		return
	}
	span.SetAttributes(attribute.Int("chart.bars", len(f.Bars)))
	s.inst.rendered(ctx, "svg")
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (s *chartServer) png(w http.ResponseWriter, r *http.Request, p *Parameters) {
	ctx, span := s.startSpan(r, "png")
	defer span.End()

	f, valueMax := s.frame(true)
	var buf bytes.Buffer
	if err := writePNG(&buf, f, valueMax, s.titleFor(p), p.scale); err != nil {
		if errors.Is(err, errNoBars) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.fail(w, span, err, "render png")
		return
	}
	s.inst.rendered(ctx, "png")
	w.Header().Set("Content-Type", "image/png")
	_, _ = buf.WriteTo(w)
}

// data serves the dataset on GET and replaces it on POST or PUT.
func (s *chartServer) data(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.startSpan(r, "data")
	defer span.End()

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		s.mu.Lock()
		data := s.r.Data()
		s.mu.Unlock()
		if data == nil {
			data = chart.Dataset{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error(err, "encode dataset")
		}

	case http.MethodPost, http.MethodPut:
		format := "json"
		if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && mt == "text/csv" {
			format = "csv"
		}
		data, err := decodeDataset(http.MaxBytesReader(w, r.Body, maxBodyBytes), format)
		if err == nil {
			s.mu.Lock()
			err = s.r.SetData(data)
			s.mu.Unlock()
		}
		if err != nil {
			s.inst.rejected.Add(ctx, 1)
			span.RecordError(err)
			span.SetStatus(codes.Error, "invalid dataset")
			s.log.V(1).Info("rejected dataset", "error", err.Error())
			http.Error(w, "invalid dataset", http.StatusBadRequest)
			return
		}
		s.inst.updated(ctx, len(data))
		span.SetAttributes(attribute.Int("chart.bars", len(data)))
		s.log.Info("dataset updated", "bars", len(data))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, "{\"bars\":%d}\n", len(data))

	default:
		w.Header().Set("Allow", "GET, HEAD, POST, PUT")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *chartServer) fail(w http.ResponseWriter, span trace.Span, err error, msg string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	s.log.Error(err, msg)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chart over HTTP",
	Long: `Serve one chart: an echarts page on /, an animated SVG on /chart.svg,
a PNG snapshot on /chart.png, and the dataset on /data (POST to replace it).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8081)")
	serveCmd.Flags().String("data", "", "dataset file to load at startup")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.data", serveCmd.Flags().Lookup("data"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log := appConfig, appLog

	var data chart.Dataset
	if cfg.Server.Data != "" {
		var err error
		if data, err = loadDataset(cfg.Server.Data); err != nil {
			return err
		}
	}

	s, err := newChartServer(cfg, log, data)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	log.Info("serving chart", "addr", cfg.Server.Addr, "bars", len(data))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
