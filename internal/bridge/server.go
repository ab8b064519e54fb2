package bridge

import (
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/SimplyPrint/messenger-tray/internal/config"
	"github.com/SimplyPrint/messenger-tray/internal/logging"
	"github.com/SimplyPrint/messenger-tray/internal/web"
)

// Server exposes the websocket endpoint, the userscript and diagnostics.
type Server struct {
	hub        *WSHub
	onCount    CountHandler
	pageOrigin string
	bridgeURL  string
	interval   time.Duration
	upgrader   websocket.Upgrader
}

// NewServer creates a Server that forwards counts to onCount. The hub must
// be running.
func NewServer(cfg *config.Config, hub *WSHub, onCount CountHandler) *Server {
	s := &Server{
		hub:        hub,
		onCount:    onCount,
		pageOrigin: cfg.Origin(),
		bridgeURL:  cfg.BridgeURL(),
		interval:   cfg.PollInterval,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return AllowedOrigin(r.Header.Get("Origin"), s.pageOrigin)
		},
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWS)
	mux.HandleFunc("/"+web.ScriptName, web.ScriptHandler(s.bridgeURL, s.interval))
	mux.HandleFunc("/api/logs", handleLogs)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/", web.Handler())
	return mux
}

// ServeWS upgrades the request and serves one page connection.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logging.CatBridge, "Websocket upgrade rejected", map[string]any{
			"origin": r.Header.Get("Origin"),
			"error":  err.Error(),
		})
		return
	}

	client := newWSClient(s.hub, conn, s.onCount)
	s.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"connections": s.hub.Count(),
	})
}

// handleLogs serves recent log entries.
// Query: limit (default 100), level (debug|info|warn|error), category.
func handleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	q := r.URL.Query()
	limit := 100
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}

	var minLevel *logging.Level
	if v := q.Get("level"); v != "" {
		lvl, ok := logging.ParseLevel(v)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid level"})
			return
		}
		minLevel = &lvl
	}

	var category *logging.Category
	if v := q.Get("category"); v != "" {
		c := logging.Category(v)
		category = &c
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entries": logging.Get().GetEntries(limit, minLevel, category),
		"stats":   logging.Get().Stats(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// AllowedOrigin reports whether a websocket handshake from origin may
// connect. Non-browser clients send no origin; loopback pages and the
// configured page origin are accepted.
func AllowedOrigin(origin, pageOrigin string) bool {
	if origin == "" {
		return true
	}
	if pageOrigin != "" && strings.EqualFold(strings.TrimSuffix(origin, "/"), strings.TrimSuffix(pageOrigin, "/")) {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
