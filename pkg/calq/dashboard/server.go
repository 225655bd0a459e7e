// Package dashboard is a small HTTP + websocket playground for the engine:
// category listings, one-off conversions, unit search, and a live feed of
// engine events. It is presentation glue; the engine never depends on it.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/shan2new/calq-sub001/pkg/calq"
	"github.com/shan2new/calq-sub001/pkg/calq/catalog"
)

type Server struct {
	port   int
	engine *calq.Engine
	log    *zap.Logger

	server   *http.Server
	upgrader websocket.Upgrader

	clientsMu  sync.RWMutex
	clients    map[*websocket.Conn]bool
	maxClients int

	events chan calq.Event
	stop   chan struct{}
}

// NewServer wires a playground server to an engine and subscribes to its
// event feed.
func NewServer(port int, engine *calq.Engine, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		port:   port,
		engine: engine,
		log:    log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return origin == fmt.Sprintf("http://localhost:%d", port) ||
					origin == fmt.Sprintf("http://127.0.0.1:%d", port)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients:    make(map[*websocket.Conn]bool),
		maxClients: 100,
		events:     make(chan calq.Event, 100),
		stop:       make(chan struct{}),
	}

	listener := calq.EventListenerFunc(func(evt calq.Event) {
		select {
		case s.events <- evt:
		default:
			// Drop if the feed is full.
		}
	})
	engine.Events().Subscribe(calq.EventConversion, listener)
	engine.Events().Subscribe(calq.EventBatch, listener)

	return s
}

func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/api/categories/", s.handleCategory)
	mux.HandleFunc("/api/convert", s.handleConvert)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/ws", s.handleWebSocket)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: mux,
	}

	go s.broadcast()

	s.log.Info("starting playground", zap.Int("port", s.port))
	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	close(s.stop)
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

type categorySummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	Loaded      bool     `json:"loaded"`
	Popular     []string `json:"popular_units,omitempty"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	var out []categorySummary
	for _, id := range s.engine.Categories() {
		summary := categorySummary{ID: string(id), Loaded: s.engine.Loader().IsLoaded(id)}
		if summary.Loaded {
			if cat, err := s.engine.Category(r.Context(), id); err == nil {
				summary.Name = cat.Name
				summary.Icon = cat.Icon
				summary.Description = cat.Description
				for _, uid := range cat.PopularUnits {
					summary.Popular = append(summary.Popular, string(uid))
				}
			}
		}
		out = append(out, summary)
	}
	writeJSON(w, out)
}

type unitSummary struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Symbol  string   `json:"symbol"`
	Plural  string   `json:"plural,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
	Base    bool     `json:"base,omitempty"`
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	id := catalog.CategoryID(r.URL.Path[len("/api/categories/"):])
	cat, err := s.engine.Category(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	units := make([]unitSummary, 0, len(cat.AllUnits()))
	for _, u := range cat.AllUnits() {
		units = append(units, unitSummary{
			ID: string(u.ID), Name: u.Name, Symbol: u.Symbol,
			Plural: u.Plural, Aliases: u.Aliases, Base: u.Base,
		})
	}
	writeJSON(w, map[string]interface{}{
		"id":    string(cat.ID),
		"name":  cat.Name,
		"base":  string(cat.BaseUnitID),
		"units": units,
	})
}

type convertRequest struct {
	Value     float64 `json:"value"`
	Category  string  `json:"category"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Precision *int    `json:"precision,omitempty"`
	Rounding  string  `json:"rounding,omitempty"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	opts := calq.DefaultConvertOptions()
	opts.Rounding = calq.RoundingMode(req.Rounding)
	if req.Precision != nil {
		opts.Precision = *req.Precision
	} else if s.engine.Config().DefaultPrecision > 0 {
		opts.Precision = s.engine.Config().DefaultPrecision
	}

	res, err := s.engine.Convert(r.Context(), req.Value,
		catalog.CategoryID(req.Category), catalog.UnitID(req.From), catalog.UnitID(req.To), opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, map[string]interface{}{
		"value":     res.Value,
		"formatted": res.Formatted,
		"from":      string(res.From.ID),
		"to":        string(res.To.ID),
		"precision": res.Precision,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := s.engine.SearchUnits(r.Context(), query, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]map[string]interface{}, 0, len(results))
	for _, res := range results {
		out = append(out, map[string]interface{}{
			"unit":     string(res.Unit.ID),
			"name":     res.Unit.Name,
			"symbol":   res.Unit.Symbol,
			"category": res.CategoryName,
			"score":    res.Score,
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.clientsMu.Lock()
	if len(s.clients) >= s.maxClients {
		s.clientsMu.Unlock()
		http.Error(w, "too many clients", http.StatusServiceUnavailable)
		return
	}
	s.clientsMu.Unlock()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	// Reader loop only to detect close.
	go func() {
		defer s.removeClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) removeClient(conn *websocket.Conn) {
	s.clientsMu.Lock()
	delete(s.clients, conn)
	s.clientsMu.Unlock()
	conn.Close()
}

type wsEvent struct {
	Type      string    `json:"type"`
	Category  string    `json:"category,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) broadcast() {
	for {
		select {
		case evt := <-s.events:
			payload := wsEvent{
				Type:      string(evt.Type),
				Category:  string(evt.CategoryID),
				Message:   evt.Message,
				Timestamp: evt.Timestamp,
			}
			s.clientsMu.RLock()
			conns := make([]*websocket.Conn, 0, len(s.clients))
			for conn := range s.clients {
				conns = append(conns, conn)
			}
			s.clientsMu.RUnlock()
			for _, conn := range conns {
				if err := conn.WriteJSON(payload); err != nil {
					s.removeClient(conn)
				}
			}
		case <-s.stop:
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encoding error", http.StatusInternalServerError)
	}
}
