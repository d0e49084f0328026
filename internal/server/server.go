package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"

	"github.com/bxxf/flight-schema/internal/capture"
	"github.com/bxxf/flight-schema/internal/config"
	"github.com/bxxf/flight-schema/internal/mapper"
	"github.com/bxxf/flight-schema/internal/models/search"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Server struct {
	captures *capture.Service
	config   config.Config
	logger   *zap.Logger
	http     *http.Server
}

func NewServer(captures *capture.Service, config config.Config, logger *zap.Logger) *Server {
	s := &Server{
		captures: captures,
		config:   config,
		logger:   logger,
	}
	s.http = &http.Server{
		Addr:    ":" + config.Port,
		Handler: s.Handler(),
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /search/decode", s.decodeSearchHandler)
	mux.HandleFunc("POST /extras/decode", s.decodeExtrasHandler)
	mux.HandleFunc("POST /captures/{family}", s.saveCaptureHandler)
	mux.HandleFunc("GET /captures/{family}", s.listCapturesHandler)
	mux.HandleFunc("GET /captures", s.getCaptureHandler)
	mux.HandleFunc("DELETE /captures", s.deleteCaptureHandler)
	return mux
}

type offerSummary struct {
	Token     string   `json:"token,omitempty"`
	Route     []string `json:"route"`
	Legs      int      `json:"legs"`
	TotalTime int64    `json:"totalTime"`
	Price     string   `json:"price,omitempty"`
	Currency  string   `json:"currency,omitempty"`
}

func summarize(resp *search.Response) []offerSummary {
	offers := make([]offerSummary, 0, len(resp.Data.FlightOffers))
	for _, offer := range resp.Data.FlightOffers {
		summary := offerSummary{Route: []string{}}
		if offer.Token != nil {
			summary.Token = *offer.Token
		}
		for _, segment := range offer.Segments {
			summary.Route = append(summary.Route, segment.DepartureAirport.Code+"-"+segment.ArrivalAirport.Code)
			summary.Legs += len(segment.Legs)
			summary.TotalTime += segment.TotalTime
		}
		if offer.PriceBreakdown != nil && len(offer.PriceBreakdown.Items) > 0 {
			total := offer.PriceBreakdown.Items[0].Amount.Amount()
			for _, item := range offer.PriceBreakdown.Items[1:] {
				total = total.Add(item.Amount.Amount())
			}
			summary.Price = total.StringFixed(2)
			summary.Currency = offer.PriceBreakdown.Items[0].Amount.CurrencyCode
		}
		offers = append(offers, summary)
	}
	return offers
}

func (s *Server) decodeSearchHandler(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	resp, err := s.captures.DecodeSearch(body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	offers := summarize(resp)
	s.writeJSON(w, http.StatusOK, struct {
		Count  int            `json:"count"`
		Offers []offerSummary `json:"offers"`
	}{
		Count:  len(offers),
		Offers: offers,
	})
}

func (s *Server) decodeExtrasHandler(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	out, _, err := s.captures.NormalizeExtras(body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

func (s *Server) saveCaptureHandler(w http.ResponseWriter, r *http.Request) {
	family, err := capture.ParseFamily(r.PathValue("family"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	key, err := s.captures.Save(r.Context(), family, body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

func (s *Server) listCapturesHandler(w http.ResponseWriter, r *http.Request) {
	family, err := capture.ParseFamily(r.PathValue("family"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	keys, err := s.captures.List(r.Context(), family)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"keys": keys})
}

func (s *Server) getCaptureHandler(w http.ResponseWriter, r *http.Request) {
	raw, err := s.captures.Load(r.Context(), r.URL.Query().Get("key"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

func (s *Server) deleteCaptureHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.captures.Delete(r.Context(), r.URL.Query().Get("key")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readBody enforces the payload cap before anything is decoded.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	reader := io.Reader(r.Body)
	if s.config.MaxPayloadBytes > 0 {
		reader = http.MaxBytesReader(w, r.Body, s.config.MaxPayloadBytes)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, capture.ErrTooLarge)
			return nil, false
		}
		s.logger.Info("Failed to read request body", zap.Error(err))
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

type errorResponse struct {
	Error    string `json:"error"`
	Path     string `json:"path,omitempty"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	Offset   *int64 `json:"offset,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var schemaErr *mapper.SchemaError
	var syntaxErr *mapper.SyntaxError

	switch {
	case errors.As(err, &syntaxErr):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Offset: &syntaxErr.Offset})
	case errors.As(err, &schemaErr):
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:    err.Error(),
			Path:     schemaErr.Path,
			Expected: schemaErr.Expected,
			Actual:   schemaErr.Actual,
		})
	case errors.Is(err, capture.ErrTooLarge):
		s.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
	case errors.Is(err, capture.ErrUnknownFamily), errors.Is(err, capture.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("Request failed", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

func RegisterServerHooks(lc fx.Lifecycle, server *Server) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", server.http.Addr)
			if err != nil {
				return err
			}
			server.logger.Info("Server is running", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := server.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					server.logger.Error("Server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.http.Shutdown(ctx)
		},
	})
}
