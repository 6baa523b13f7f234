package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/usecase"
	"github.com/shopspring/decimal"
)

type RateHandler struct {
	currency usecase.CurrencyUsecase
}

func NewRateHandler(currency usecase.CurrencyUsecase) *RateHandler {
	return &RateHandler{currency: currency}
}

type addRateRequest struct {
	FromCurrency  string          `json:"from_currency"`
	ToCurrency    string          `json:"to_currency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effective_date,omitempty"`
}

type rateResponse struct {
	ID            string          `json:"id"`
	FromCurrency  string          `json:"from_currency"`
	ToCurrency    string          `json:"to_currency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effective_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toRateResponse(rate *domain.ExchangeRate) rateResponse {
	return rateResponse{
		ID:            rate.ID,
		FromCurrency:  string(rate.FromCurrency),
		ToCurrency:    string(rate.ToCurrency),
		Rate:          rate.Rate,
		EffectiveDate: rate.EffectiveDate,
		CreatedAt:     rate.CreatedAt,
	}
}

// HandleRates serves /api/v1/rates.
func (h *RateHandler) HandleRates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req addRateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeBadRequest(w, err)
			return
		}
		rate, err := h.currency.AddRate(r.Context(), domain.Currency(req.FromCurrency), domain.Currency(req.ToCurrency), req.Rate, req.EffectiveDate)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"rate": toRateResponse(rate)})
	case http.MethodGet:
		from := r.URL.Query().Get("from")
		to := r.URL.Query().Get("to")
		if from == "" || to == "" {
			writeBadRequest(w, errors.New("from and to query parameters required"))
			return
		}
		rates, err := h.currency.ListRates(r.Context(), domain.Currency(from), domain.Currency(to))
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]rateResponse, 0, len(rates))
		for _, rate := range rates {
			out = append(out, toRateResponse(rate))
		}
		writeJSON(w, http.StatusOK, map[string]any{"rates": out})
	default:
		writeMethodNotAllowed(w)
	}
}
