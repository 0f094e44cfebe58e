package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"signalcipher-backend/internal/domain"
	"signalcipher-backend/internal/usecase"
)

// SignalHandler serves the latest scan snapshot and per-symbol queries.
type SignalHandler struct {
	repo     domain.ScanRepository
	history  domain.ScanHistoryRepository
	screener *usecase.ScreenerUsecase
}

func NewSignalHandler(repo domain.ScanRepository, history domain.ScanHistoryRepository, screener *usecase.ScreenerUsecase) *SignalHandler {
	return &SignalHandler{
		repo:     repo,
		history:  history,
		screener: screener,
	}
}

// HandleGetSignals returns the full snapshot from the last scan cycle,
// sorted by score descending.
func (h *SignalHandler) HandleGetSignals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.repo.GetResults())
}

// HandleGetSymbol evaluates one symbol on demand: ?symbol=BTCUSDT.
func (h *SignalHandler) HandleGetSymbol(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		http.Error(w, "symbol is required", http.StatusBadRequest)
		return
	}

	res, err := h.screener.EvaluateSymbol(r.Context(), symbol)
	if err != nil {
		var noTF *domain.NoViableTimeframeError
		if errors.As(err, &noTF) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// HandleGetHistory returns stored results for one symbol:
// ?symbol=BTCUSDT&limit=50.
func (h *SignalHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.history == nil {
		http.Error(w, "history persistence not configured", http.StatusNotImplemented)
		return
	}

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		http.Error(w, "symbol is required", http.StatusBadRequest)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			http.Error(w, "limit must be between 1 and 500", http.StatusBadRequest)
			return
		}
		limit = n
	}

	results, err := h.history.GetRecentBySymbol(r.Context(), symbol, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
