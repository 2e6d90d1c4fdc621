package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_token_metrics/internal/adapters/logger"
	"github.com/baditaflorin/go_token_metrics/internal/adapters/normalizer"
	"github.com/baditaflorin/go_token_metrics/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_token_metrics/internal/ports"
	"github.com/baditaflorin/go_token_metrics/internal/registry"
	"github.com/baditaflorin/go_token_metrics/internal/session"
	"github.com/baditaflorin/go_token_metrics/internal/warmup"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
)

var (
	// Metric registry shared by all requests; read-only after startup.
	metricRegistry *registry.Registry

	// Logger instance
	log l.Logger
)

// CompareRequest represents a metrics computation request
type CompareRequest struct {
	Before    string `json:"before"`
	After     string `json:"after"`
	Tokenizer string `json:"tokenizer,omitempty"` // "whitespace" (default) or "rune"
	StoreText bool   `json:"store_text,omitempty"`
}

// CompareResponse represents a metrics computation response
type CompareResponse struct {
	RunID          string                        `json:"run_id"`
	Metrics        map[string]map[string]float64 `json:"metrics"`
	ProcessingTime string                        `json:"processing_time"`
}

// MetricInfo describes one registered metric
type MetricInfo struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Requires []string `json:"requires,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	extended := flag.Bool("extended", false, "Register the extended metric set")
	warmUp := flag.Bool("warm-up", true, "Perform pipeline warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	// Set up logger
	var err error
	log, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if *extended {
		metricRegistry = registry.NewExtendedRegistry()
	} else {
		metricRegistry = registry.NewDefaultRegistry()
	}

	log.Info("Starting token metrics HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
		"metrics", metricRegistry.Len(),
	)

	if *warmUp {
		manager := warmup.NewManager(logger.FromExisting(log), metricRegistry, warmup.DefaultConfig())
		manager.WarmUp(context.Background())
	}

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	log.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		log.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	log.Info("Server stopped")
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "TokenMetricsServer")

	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/v1/metrics":
		handleListMetrics(ctx)
	case "/v1/compare":
		handleCompare(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	duration := time.Since(startTime)
	log.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
	writeJSONResponse(ctx, response)
}

// handleListMetrics returns the registered metric set
func handleListMetrics(ctx *fasthttp.RequestCtx) {
	specs := metricRegistry.ListMetrics()
	infos := make([]MetricInfo, 0, len(specs))
	for _, spec := range specs {
		infos = append(infos, MetricInfo{
			ID:       spec.ID,
			Name:     spec.Name,
			Type:     spec.Semantics.Type,
			Requires: spec.Requires,
		})
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, infos)
}

// handleCompare handles metrics computation requests
func handleCompare(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req CompareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	if req.Before == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "The before text is required")
		return
	}

	tok, err := buildTokenizer(req.Tokenizer)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, err.Error())
		return
	}

	startTime := time.Now()

	// Sessions are single-threaded, so each request gets its own. The
	// registry and logger are shared; both are safe for concurrent reads.
	sess := session.NewMetricsSession(
		session.WithRegistry(metricRegistry),
		session.WithTokenizers(tok),
		session.WithLogger(logger.FromExisting(log)),
	)

	after := req.After
	result, err := sess.ComputeOnce(session.ComputeParams{
		TextBefore:  req.Before,
		Transform:   func(string) (string, error) { return after, nil },
		TransformID: "replace",
		InputType:   "http",
		StoreText:   req.StoreText,
	})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		log.Error("Metrics computation failed", "error", err)
		writeJSONError(ctx, "Computation failed: "+err.Error())
		return
	}

	response := CompareResponse{
		RunID:          result.RunID,
		Metrics:        result.MetricsByTokenizer(),
		ProcessingTime: time.Since(startTime).String(),
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, response)
}

// buildTokenizer maps a request tokenizer name to a fresh adapter instance
func buildTokenizer(name string) (ports.Tokenizer, error) {
	switch name {
	case "", "whitespace":
		return tokenizer.NewWhitespaceTokenizer(
			tokenizer.WithNormalizer(normalizer.NewFastNormalizer()),
		), nil
	case "rune":
		return tokenizer.NewRuneTokenizer(), nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q", name)
	}
}

// writeJSONResponse writes a JSON response to the context
func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		log.Error("Error marshaling JSON response", "error", err)
		writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	errResponse := ErrorResponse{
		Error: message,
	}

	response, err := json.Marshal(errResponse)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		log.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

// createLogger creates and configures a logger
func createLogger(logFile string) (l.Logger, error) {
	factory := l.NewStandardFactory()

	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
