// Package web serves the calculator keypad to browsers.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/internal/keypad"
	"github.com/zephyrtronium/calculator/internal/logger"
)

//go:embed static/index.html
var indexHTML []byte

const (
	// maxMessageSize bounds a single key label sent over the websocket.
	maxMessageSize = 256
	// maxBodySize bounds JSON request bodies.
	maxBodySize = 64 << 10
)

// Config configures a Server.
type Config struct {
	// Addr is the TCP address to listen on, e.g. "localhost:8080".
	Addr string
	// ReadHeaderTimeout limits how long a client may take to send headers.
	// Zero means 10 seconds.
	ReadHeaderTimeout time.Duration
}

// Server provides the HTTP interface for the keypad.
type Server struct {
	cfg      Config
	keypad   *keypad.Keypad
	log      *logger.Logger
	router   *httprouter.Router
	upgrader websocket.Upgrader
	server   *http.Server
	addr     string
}

// NewServer creates a server that presses keys on k.
func NewServer(cfg Config, k *keypad.Keypad, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Global()
	}
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = 10 * time.Second
	}
	s := &Server{
		cfg:    cfg,
		keypad: k,
		log:    log.WithPrefix("web"),
		router: httprouter.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/api/keys", s.handleKeys)
	s.router.POST("/api/press", s.handlePress)
	s.router.GET("/api/eval", s.handleEval)
	s.router.GET("/ws", s.handleWebSocket)
}

// Handler returns the server's routes as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.addr = ln.Addr().String()
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}
	s.log.Info("listening on %s", s.addr)
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("serve: %v", err)
		}
	}()
	return nil
}

// Addr returns the address the server is listening on once started.
func (s *Server) Addr() string {
	return s.addr
}

// Stop stops the HTTP server.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

type pressRequest struct {
	Display string `json:"display"`
	Label   string `json:"label"`
}

type displayResponse struct {
	Display string `json:"display"`
	Error   string `json:"error,omitempty"`
}

type evalResponse struct {
	Result  string `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
	Display string `json:"display,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexHTML); err != nil {
		s.log.Debug("writing index: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, map[string]any{"rows": keypad.Rows})
}

func (s *Server) handlePress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req pressRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, displayResponse{Error: "invalid request: " + err.Error()})
		return
	}
	display, err := s.keypad.Press(req.Display, req.Label)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, displayResponse{Display: display, Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, displayResponse{Display: display})
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	expr := strings.TrimSpace(q.Get("expr"))
	var tokens []string
	if q.Get("lex") == "1" {
		var err error
		tokens, err = calculator.Lex(expr)
		if err != nil {
			s.writeJSON(w, http.StatusUnprocessableEntity, evalResponse{Error: err.Error(), Display: keypad.ErrorText})
			return
		}
	} else {
		tokens = calculator.Tokenize(expr)
	}
	ctx := s.keypad.Context()
	v := ctx.EvalPostfix(ctx.ToPostfix(tokens))
	if err := ctx.Err(); err != nil {
		s.log.Debug("eval %q: %v", expr, err)
		s.writeJSON(w, http.StatusUnprocessableEntity, evalResponse{Error: err.Error(), Display: keypad.ErrorDisplay(err)})
		return
	}
	s.writeJSON(w, http.StatusOK, evalResponse{Result: calculator.Format(v)})
}

// handleWebSocket runs one keypad session. Each text frame is a key label;
// each reply carries the session's display after the press.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)
	s.log.Debug("session opened from %s", r.RemoteAddr)

	display := ""
	for {
		typ, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read: %v", err)
			}
			break
		}
		if typ != websocket.TextMessage {
			continue
		}
		resp := displayResponse{}
		display, err = s.keypad.Press(display, string(msg))
		resp.Display = display
		if err != nil {
			resp.Error = err.Error()
		}
		if err := conn.WriteJSON(resp); err != nil {
			s.log.Warn("websocket write: %v", err)
			break
		}
	}
	s.log.Debug("session closed from %s", r.RemoteAddr)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Debug("writing response: %v", err)
	}
}
