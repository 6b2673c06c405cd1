// cmd/calcd/main.go — HTTP front end for the calculator core.
//
// The server plays the session-collaborator role: it normalizes incoming
// expressions, calls the stateless evaluation core, and records successful
// calculations in a process-lifetime history that clients can read over
// HTTP or follow live over a websocket.
//
// Usage:
//   go run cmd/calcd/main.go -port 8080
//
// Endpoints:
//   POST /evaluate       — {"expression": "2➕3✖️4"}
//   POST /integrate      — {"expression": "x**2", "variable": "x", "lower": 0, "upper": 1}
//   POST /differentiate  — {"expression": "sin(x)", "variable": "x", "point": 0}
//   GET  /functions      — the function/constant vocabulary
//   GET  /history        — committed calculations, oldest first
//   POST /history/clear  — wholesale clear
//   GET  /ws             — websocket stream of new history entries
//   GET  /health         — liveness check
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	calculator "github.com/KripaluSonar06/Scientific-Calculator"
	"github.com/KripaluSonar06/Scientific-Calculator/session"
)

const maxBodyBytes = 1 << 20 // 1 MiB

type server struct {
	reg      *calculator.Registry
	sess     *session.Session
	upgrader websocket.Upgrader
}

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	flag.Parse()

	s := &server{
		reg:  calculator.DefaultRegistry(),
		sess: session.New(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/evaluate", s.guard(s.handleEvaluate))
	mux.HandleFunc("/integrate", s.guard(s.handleIntegrate))
	mux.HandleFunc("/differentiate", s.guard(s.handleDifferentiate))
	mux.HandleFunc("/functions", s.guard(s.handleFunctions))
	mux.HandleFunc("/history", s.guard(s.handleHistory))
	mux.HandleFunc("/history/clear", s.guard(s.handleHistoryClear))
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("calcd listening on %s", addr)
	log.Printf("  POST /evaluate /integrate /differentiate")
	log.Printf("  GET  /functions, /history, /ws, /health")

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// guard wraps a handler with panic recovery so no request can take the
// process down.
func (s *server) guard(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in %s: %v\n%s", r.URL.Path, rec, string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		h(w, r)
	}
}

func (s *server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if dec.More() {
		writeError(w, http.StatusBadRequest, "invalid JSON: trailing data")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeEvalError maps the core's typed failures to HTTP statuses: bad input
// is the client's problem, numeric failure is the expression's.
func writeEvalError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	var ee *calculator.EvalError
	if errors.As(err, &ee) {
		switch ee.Kind {
		case calculator.IntegrationFailed, calculator.DifferentiationFailed:
			status = http.StatusUnprocessableEntity
		}
	}
	writeError(w, status, err.Error())
}

func (s *server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Expression string `json:"expression"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	expr := calculator.Normalize(req.Expression)
	res, err := calculator.Evaluate(calculator.EvaluateRequest{Expr: expr}, s.reg)
	if err != nil {
		writeEvalError(w, err)
		return
	}

	result := strconv.FormatFloat(res.Value, 'g', -1, 64)
	s.sess.SetExpression(result)
	s.sess.Commit(fmt.Sprintf("%s = %s", calculator.ToDisplay(expr), result))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"expression": expr,
		"result":     res.Value,
	})
}

func (s *server) handleIntegrate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Expression string  `json:"expression"`
		Variable   string  `json:"variable"`
		Lower      float64 `json:"lower"`
		Upper      float64 `json:"upper"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	expr := calculator.Normalize(req.Expression)
	res, err := calculator.Evaluate(calculator.IntegrateRequest{
		Expr:     expr,
		Variable: req.Variable,
		Lower:    req.Lower,
		Upper:    req.Upper,
	}, s.reg)
	if err != nil {
		writeEvalError(w, err)
		return
	}

	s.sess.Commit(fmt.Sprintf("∫(%s) from %g to %g = %g",
		calculator.ToDisplay(expr), req.Lower, req.Upper, res.Value))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"expression": expr,
		"result":     res.Value,
		"abs_error":  res.AbsError,
	})
}

func (s *server) handleDifferentiate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Expression string  `json:"expression"`
		Variable   string  `json:"variable"`
		Point      float64 `json:"point"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	expr := calculator.Normalize(req.Expression)
	res, err := calculator.Evaluate(calculator.DifferentiateRequest{
		Expr:     expr,
		Variable: req.Variable,
		Point:    req.Point,
	}, s.reg)
	if err != nil {
		writeEvalError(w, err)
		return
	}

	s.sess.Commit(fmt.Sprintf("d/d%s(%s) at %g = %g",
		req.Variable, calculator.ToDisplay(expr), req.Point, res.Value))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"expression": expr,
		"derivative": res.Derivative,
		"latex":      res.DerivativeLaTeX,
		"value":      res.Value,
	})
}

// handleFunctions reports the evaluation vocabulary, the data a front end
// needs to lay out its function-button panel.
func (s *server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"functions": s.reg.FuncNames(),
		"constants": s.reg.ConstNames(),
	})
}

func (s *server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	entries := s.sess.History()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

func (s *server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.sess.ClearHistory()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleWebSocket streams history commits to the client as they happen,
// after replaying the existing log.
func (s *server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	clientID := strconv.FormatInt(time.Now().UnixNano(), 36)
	updates := s.sess.Subscribe(clientID)
	defer s.sess.Unsubscribe(clientID)

	for _, entry := range s.sess.History() {
		if err := conn.WriteJSON(entry); err != nil {
			return
		}
	}

	// Drain client messages so pings and close frames are processed. On
	// disconnect, unsubscribing closes the updates channel, which unblocks
	// the write loop below even if no commit ever arrives.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				s.sess.Unsubscribe(clientID)
				return
			}
		}
	}()

	for entry := range updates {
		if err := conn.WriteJSON(entry); err != nil {
			return
		}
	}
}
