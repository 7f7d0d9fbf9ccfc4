// Package httptransport serves the tool dispatcher over HTTP, together with
// the service description and health endpoints.
package httptransport

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/bedrockmcp/mcp"
	"github.com/effective-security/xlog"
	"github.com/google/uuid"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/bedrockmcp/mcp/transport", "httptransport")

// Service description
const (
	ServiceName     = "bedrock-mcp"
	ServiceVersion  = "1.0.0"
	ServiceInstance = "BEDROCK"
	ServicePlatform = "AWS"
	ServiceRole     = "Enterprise AI"
	StatusHealthy   = "healthy"
)

// DefaultMaxBodySize limits the size of the request body
const DefaultMaxBodySize = 4 << 20

// HeaderRequestID is the request correlation header
const HeaderRequestID = "X-Request-ID"

// Dispatcher handles decoded requests.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *mcp.Request) *mcp.Response
}

// StatusProvider reports whether the context store is reachable.
type StatusProvider interface {
	Connected(ctx context.Context) bool
}

// ServiceInfo is the response of `GET /`.
type ServiceInfo struct {
	Service           string `json:"service"`
	Version           string `json:"version"`
	Status            string `json:"status"`
	Instance          string `json:"instance"`
	Platform          string `json:"platform"`
	Role              string `json:"role"`
	Model             string `json:"model"`
	SovereignMind     bool   `json:"sovereign_mind"`
	HiveMindConnected bool   `json:"hive_mind_connected"`
	Region            string `json:"region"`
}

// Health is the response of `GET /health`.
type Health struct {
	Status        string `json:"status"`
	SovereignMind bool   `json:"sovereign_mind"`
}

// HTTPTransport implements a stateless HTTP transport for MCP
type HTTPTransport struct {
	lock        sync.Mutex
	server      *http.Server
	endpoint    string
	addr        string
	dispatcher  Dispatcher
	status      StatusProvider
	model       string
	region      string
	maxBodySize int64
}

// NewHTTPTransport creates a new HTTP transport that serves the dispatcher
// on the specified endpoint
func NewHTTPTransport(endpoint string, dispatcher Dispatcher) *HTTPTransport {
	return &HTTPTransport{
		endpoint:    endpoint,
		dispatcher:  dispatcher,
		addr:        ":8080", // Default port
		maxBodySize: DefaultMaxBodySize,
	}
}

// WithAddr sets the address to listen on
func (t *HTTPTransport) WithAddr(addr string) *HTTPTransport {
	t.addr = addr
	return t
}

// WithServiceInfo sets the values reported by the service description
func (t *HTTPTransport) WithServiceInfo(model, region string, status StatusProvider) *HTTPTransport {
	t.model = model
	t.region = region
	t.status = status
	return t
}

// WithMaxBodySize sets the request body limit
func (t *HTTPTransport) WithMaxBodySize(size int64) *HTTPTransport {
	if size > 0 {
		t.maxBodySize = size
	}
	return t
}

// Handler returns the HTTP handler with all the routes
func (t *HTTPTransport) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", t.handleIndex)
	mux.HandleFunc("GET /health", t.handleHealth)
	mux.HandleFunc("POST "+t.endpoint, t.handleRequest)
	mux.HandleFunc("OPTIONS "+t.endpoint, t.handlePreflight)
	return withCORS(withRequestID(mux))
}

// Start listens on the configured address and serves the requests until
// the transport is closed
func (t *HTTPTransport) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", t.addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", t.addr)
	}
	return t.Serve(ctx, ln)
}

// Serve serves the requests on the listener until the transport is closed.
// Request contexts carry the values of ctx, but are not cancelled with it:
// Shutdown lets the in-flight requests complete.
func (t *HTTPTransport) Serve(ctx context.Context, ln net.Listener) error {
	base := context.WithoutCancel(ctx)
	srv := &http.Server{
		Handler:           t.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return base
		},
	}

	t.lock.Lock()
	t.server = srv
	t.lock.Unlock()

	logger.KV(xlog.NOTICE, "status", "starting", "addr", ln.Addr().String(), "endpoint", t.endpoint)
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (t *HTTPTransport) getServer() *http.Server {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.server
}

// Shutdown stops the server after the in-flight requests are complete
func (t *HTTPTransport) Shutdown(ctx context.Context) error {
	srv := t.getServer()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Close stops the server immediately
func (t *HTTPTransport) Close() error {
	if srv := t.getServer(); srv != nil {
		if err := srv.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (t *HTTPTransport) handleIndex(w http.ResponseWriter, r *http.Request) {
	connected := false
	if t.status != nil {
		connected = t.status.Connected(r.Context())
	}
	writeJSON(w, http.StatusOK, &ServiceInfo{
		Service:           ServiceName,
		Version:           ServiceVersion,
		Status:            StatusHealthy,
		Instance:          ServiceInstance,
		Platform:          ServicePlatform,
		Role:              ServiceRole,
		Model:             t.model,
		SovereignMind:     true,
		HiveMindConnected: connected,
		Region:            t.region,
	})
}

func (t *HTTPTransport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, &Health{
		Status:        StatusHealthy,
		SovereignMind: true,
	})
}

func (t *HTTPTransport) handlePreflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (t *HTTPTransport) handleRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := t.readBody(w, r)
	if err != nil {
		logger.ContextKV(ctx, xlog.WARNING,
			"request_id", w.Header().Get(HeaderRequestID),
			"err", err.Error(),
		)
		writeJSON(w, http.StatusOK, mcp.NewErrorResponse(mcp.DefaultID, mcp.CodeParseError, mcp.MessageParseError))
		return
	}

	req, resp := mcp.ParseRequest(body)
	if req != nil {
		logger.ContextKV(ctx, xlog.DEBUG,
			"request_id", w.Header().Get(HeaderRequestID),
			"method", req.Method,
		)
		resp = t.dispatcher.Dispatch(ctx, req)
	}

	writeJSON(w, http.StatusOK, resp)
}

// readBody reads and returns the body, up to the configured limit
func (t *HTTPTransport) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, t.maxBodySize))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read request body")
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		logger.KV(xlog.ERROR, "reason", "marshal", "err", err.Error())
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(jsonData)
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r)
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+HeaderRequestID)
		h.Set("Access-Control-Expose-Headers", HeaderRequestID)
		next.ServeHTTP(w, r)
	})
}
