package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"i4.energy/across/espgw/at"
	"i4.energy/across/espgw/modem"
)

// Device is the part of *modem.Modem the gateway drives.
type Device interface {
	Probe(ctx context.Context) (bool, error)
	Restart(ctx context.Context) (bool, error)
	SetMode(ctx context.Context, mode uint8) (bool, error)
	SetTransportMode(ctx context.Context, mode uint8) (bool, error)
	SetAutoJoin(ctx context.Context, mode uint8) (bool, error)
	JoinNetwork(ctx context.Context, ssid, password string) (bool, error)
	Connect(ctx context.Context, mode, ip string, port uint16) (bool, error)
	Status(ctx context.Context) (at.Status, error)
	Send(ctx context.Context, payload string) (string, error)
	Receive(ctx context.Context) (string, error)
	PowerOn() error
	PowerOff() error
}

// Server handles incoming HTTP requests for interacting with the
// configured modem instance
type Server struct {
	Logger *slog.Logger
	Modem  Device
	// Token, if set, must be presented as a bearer token
	Token string
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		s.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /probe", s.handleProbe)
	mux.HandleFunc("POST /restart", s.handleRestart)
	mux.HandleFunc("POST /mode", s.handleSetting("mode", s.Modem.SetMode))
	mux.HandleFunc("POST /transport-mode", s.handleSetting("transport mode", s.Modem.SetTransportMode))
	mux.HandleFunc("POST /autojoin", s.handleSetting("auto join", s.Modem.SetAutoJoin))
	mux.HandleFunc("POST /join", s.handleJoin)
	mux.HandleFunc("POST /connect", s.handleConnect)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("POST /send", s.handleSend)
	mux.HandleFunc("GET /receive", s.handleReceive)
	mux.HandleFunc("POST /power", s.handlePower)
	mux.ServeHTTP(w, r)
}

func (s *Server) authorized(r *http.Request) bool {
	if s.Token == "" {
		return true
	}
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	return ok && subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) == 1
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) sendJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// sendModemError logs err and maps it onto a status code.
func (s *Server) sendModemError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusGatewayTimeout {
		s.Logger.Warn("Modem did not respond", "op", op, "error", err)
	} else {
		s.Logger.Error("Modem operation failed", "op", op, "error", err)
	}
	s.sendError(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, modem.ErrFailure), errors.Is(err, at.ErrMalformedField):
		return http.StatusBadGateway
	case errors.Is(err, modem.ErrNoResponse):
		return http.StatusGatewayTimeout
	case errors.Is(err, modem.ErrNoPowerLine):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

type okResponse struct {
	OK bool `json:"ok"`
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	ok, err := s.Modem.Probe(r.Context())
	if err != nil {
		s.sendModemError(w, "probe", err)
		return
	}
	s.sendJSON(w, okResponse{OK: ok})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	ok, err := s.Modem.Restart(r.Context())
	if err != nil {
		s.sendModemError(w, "restart", err)
		return
	}
	s.Logger.Info("Modem restarted", "acknowledged", ok)
	s.sendJSON(w, okResponse{OK: ok})
}

func (s *Server) handleSetting(name string, set func(context.Context, uint8) (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type SettingRequest struct {
			Mode *uint8 `json:"mode"`
		}

		var req SettingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Mode == nil {
			s.sendError(w, "'mode' field is required", http.StatusBadRequest)
			return
		}

		ok, err := set(r.Context(), *req.Mode)
		if err != nil {
			s.sendModemError(w, name, err)
			return
		}
		s.Logger.Info("Modem setting applied", "setting", name, "value", *req.Mode, "acknowledged", ok)
		s.sendJSON(w, okResponse{OK: ok})
	}
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	type JoinRequest struct {
		SSID     string `json:"ssid"`
		Password string `json:"password"`
	}

	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.SSID == "" {
		s.sendError(w, "'ssid' field is required", http.StatusBadRequest)
		return
	}

	ok, err := s.Modem.JoinNetwork(r.Context(), req.SSID, req.Password)
	if err != nil {
		s.sendModemError(w, "join", err)
		return
	}
	s.Logger.Info("Joined network", "ssid", req.SSID, "acknowledged", ok)
	s.sendJSON(w, okResponse{OK: ok})
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	type ConnectRequest struct {
		Mode string `json:"mode"`
		IP   string `json:"ip"`
		Port uint16 `json:"port"`
	}

	var req ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Mode == "" || req.IP == "" || req.Port == 0 {
		s.sendError(w, "'mode', 'ip' and 'port' fields are required", http.StatusBadRequest)
		return
	}

	ok, err := s.Modem.Connect(r.Context(), req.Mode, req.IP, req.Port)
	if err != nil {
		s.sendModemError(w, "connect", err)
		return
	}
	s.Logger.Info("Connection opened", "mode", req.Mode, "ip", req.IP, "port", req.Port, "acknowledged", ok)
	s.sendJSON(w, okResponse{OK: ok})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.Modem.Status(r.Context())
	if err != nil {
		s.sendModemError(w, "status", err)
		return
	}

	type StatusResponse struct {
		Status string `json:"status"`
		Code   int    `json:"code"`
	}
	s.sendJSON(w, StatusResponse{Status: status.String(), Code: int(status)})
}

type dataResponse struct {
	Data string `json:"data"`
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	type SendRequest struct {
		Data string `json:"data"`
	}

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Data == "" {
		s.sendError(w, "'data' field is required", http.StatusBadRequest)
		return
	}

	data, err := s.Modem.Send(r.Context(), req.Data)
	if err != nil {
		s.sendModemError(w, "send", err)
		return
	}
	s.Logger.Info("Payload sent", "length", len(req.Data), "reply_length", len(data))
	s.sendJSON(w, dataResponse{Data: data})
}

func (s *Server) handleReceive(w http.ResponseWriter, r *http.Request) {
	data, err := s.Modem.Receive(r.Context())
	if err != nil {
		s.sendModemError(w, "receive", err)
		return
	}
	s.sendJSON(w, dataResponse{Data: data})
}

func (s *Server) handlePower(w http.ResponseWriter, r *http.Request) {
	type PowerRequest struct {
		On *bool `json:"on"`
	}

	var req PowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.On == nil {
		s.sendError(w, "'on' field is required", http.StatusBadRequest)
		return
	}

	set := s.Modem.PowerOff
	if *req.On {
		set = s.Modem.PowerOn
	}
	if err := set(); err != nil {
		s.sendModemError(w, "power", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
