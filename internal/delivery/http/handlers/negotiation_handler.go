package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/usecase"
	negotiationdto "github.com/forgeline/rfq-service/internal/usecase/dto/negotiation"
	offerdto "github.com/forgeline/rfq-service/internal/usecase/dto/offer"
	"github.com/shopspring/decimal"
)

type NegotiationHandler struct {
	negotiations usecase.NegotiationUsecase
	offers       usecase.OfferUsecase
}

func NewNegotiationHandler(negotiations usecase.NegotiationUsecase, offers usecase.OfferUsecase) *NegotiationHandler {
	return &NegotiationHandler{
		negotiations: negotiations,
		offers:       offers,
	}
}

type submitNegotiationRequest struct {
	ItemID           string          `json:"item_id"`
	DesiredQuantity  int             `json:"desired_quantity"`
	TargetPrice      decimal.Decimal `json:"target_price"`
	DeliveryDeadline time.Time       `json:"delivery_deadline"`
	Notes            string          `json:"notes,omitempty"`
	Currency         string          `json:"currency"`
}

type submitOfferRequest struct {
	ProposedPrice decimal.Decimal `json:"proposed_price"`
	ProposedQty   int             `json:"proposed_qty"`
	DeliveryDays  int             `json:"delivery_days"`
	Currency      string          `json:"currency"`
}

type negotiationResponse struct {
	ID               string          `json:"id"`
	RequesterID      string          `json:"requester_id"`
	ItemID           string          `json:"item_id"`
	FulfillerID      string          `json:"fulfiller_id"`
	DesiredQuantity  int             `json:"desired_quantity"`
	TargetPrice      decimal.Decimal `json:"target_price"`
	DeliveryDeadline time.Time       `json:"delivery_deadline"`
	Notes            string          `json:"notes,omitempty"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	CurrentRound     int             `json:"current_round"`
	MaxRounds        int             `json:"max_rounds"`
	ExpiresAt        time.Time       `json:"expires_at"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type offerResponse struct {
	ID            string          `json:"id"`
	NegotiationID string          `json:"negotiation_id"`
	Proposer      string          `json:"proposer"`
	ProposedPrice decimal.Decimal `json:"proposed_price"`
	ProposedQty   int             `json:"proposed_qty"`
	DeliveryDays  int             `json:"delivery_days"`
	Status        string          `json:"status"`
	RoundNumber   int             `json:"round_number"`
	ReasonCode    string          `json:"reason_code,omitempty"`
	Currency      string          `json:"currency"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toNegotiationResponse(n *domain.Negotiation) negotiationResponse {
	return negotiationResponse{
		ID:               n.ID,
		RequesterID:      n.RequesterID,
		ItemID:           n.ItemID,
		FulfillerID:      n.FulfillerID,
		DesiredQuantity:  n.DesiredQuantity,
		TargetPrice:      n.TargetPrice,
		DeliveryDeadline: n.DeliveryDeadline,
		Notes:            n.Notes,
		Currency:         string(n.Currency),
		Status:           string(n.Status),
		CurrentRound:     n.CurrentRound,
		MaxRounds:        n.MaxRounds,
		ExpiresAt:        n.ExpiresAt,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
	}
}

func toOfferResponse(o *domain.Offer) offerResponse {
	return offerResponse{
		ID:            o.ID,
		NegotiationID: o.NegotiationID,
		Proposer:      string(o.Proposer),
		ProposedPrice: o.ProposedPrice,
		ProposedQty:   o.ProposedQty,
		DeliveryDays:  o.DeliveryDays,
		Status:        string(o.Status),
		RoundNumber:   o.RoundNumber,
		ReasonCode:    o.ReasonCode,
		Currency:      string(o.Currency),
		CreatedAt:     o.CreatedAt,
	}
}

// HandleNegotiations serves /api/v1/negotiations.
func (h *NegotiationHandler) HandleNegotiations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.submit(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		writeMethodNotAllowed(w)
	}
}

func (h *NegotiationHandler) submit(w http.ResponseWriter, r *http.Request) {
	requesterID := partyID(r)
	if requesterID == "" {
		writeBadRequest(w, errors.New("X-Party-ID header required"))
		return
	}

	var req submitNegotiationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	negotiation, err := h.negotiations.SubmitNegotiation(r.Context(), &negotiationdto.SubmitNegotiationInput{
		RequesterID:      requesterID,
		ItemID:           req.ItemID,
		DesiredQuantity:  req.DesiredQuantity,
		TargetPrice:      req.TargetPrice,
		DeliveryDeadline: req.DeliveryDeadline,
		Notes:            req.Notes,
		Currency:         domain.Currency(req.Currency),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"negotiation": toNegotiationResponse(negotiation)})
}

func (h *NegotiationHandler) list(w http.ResponseWriter, r *http.Request) {
	requesterID := r.URL.Query().Get("requester_id")
	fulfillerID := r.URL.Query().Get("fulfiller_id")

	var (
		negotiations []*domain.Negotiation
		err          error
	)
	switch {
	case requesterID != "":
		negotiations, err = h.negotiations.ListByRequester(r.Context(), requesterID)
	case fulfillerID != "":
		negotiations, err = h.negotiations.ListByFulfiller(r.Context(), fulfillerID)
	default:
		writeBadRequest(w, errors.New("requester_id or fulfiller_id query parameter required"))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]negotiationResponse, 0, len(negotiations))
	for _, n := range negotiations {
		out = append(out, toNegotiationResponse(n))
	}
	writeJSON(w, http.StatusOK, map[string]any{"negotiations": out})
}

// HandleNegotiationActions serves /api/v1/negotiations/{id} and
// /api/v1/negotiations/{id}/offers.
func (h *NegotiationHandler) HandleNegotiationActions(w http.ResponseWriter, r *http.Request) {
	prefix := "/api/v1/negotiations/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		writeBadRequest(w, errors.New("invalid negotiation path"))
		return
	}
	tail := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if tail == "" {
		writeBadRequest(w, errors.New("negotiation id required"))
		return
	}

	if strings.HasSuffix(tail, "/offers") {
		negotiationID := strings.Trim(strings.TrimSuffix(tail, "/offers"), "/")
		if negotiationID == "" {
			writeBadRequest(w, errors.New("negotiation id required"))
			return
		}
		switch r.Method {
		case http.MethodPost:
			h.submitOffer(w, r, negotiationID)
		case http.MethodGet:
			h.listOffers(w, r, negotiationID)
		default:
			writeMethodNotAllowed(w)
		}
		return
	}

	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	negotiation, err := h.negotiations.GetNegotiationByID(r.Context(), tail)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"negotiation": toNegotiationResponse(negotiation)})
}

func (h *NegotiationHandler) submitOffer(w http.ResponseWriter, r *http.Request, negotiationID string) {
	requesterID := partyID(r)
	if requesterID == "" {
		writeBadRequest(w, errors.New("X-Party-ID header required"))
		return
	}

	var req submitOfferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	offer, err := h.offers.SubmitOffer(r.Context(), negotiationID, requesterID, &offerdto.SubmitOfferInput{
		ProposedPrice: req.ProposedPrice,
		ProposedQty:   req.ProposedQty,
		DeliveryDays:  req.DeliveryDays,
		Currency:      domain.Currency(req.Currency),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"offer": toOfferResponse(offer)})
}

func (h *NegotiationHandler) listOffers(w http.ResponseWriter, r *http.Request, negotiationID string) {
	offers, err := h.offers.ListByNegotiation(r.Context(), negotiationID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]offerResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, toOfferResponse(o))
	}
	writeJSON(w, http.StatusOK, map[string]any{"offers": out})
}
