package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/forgeline/rfq-service/internal/usecase"
	ruledto "github.com/forgeline/rfq-service/internal/usecase/dto/rule"
	"github.com/shopspring/decimal"
)

type RuleHandler struct {
	rules usecase.NegotiationRuleUsecase
}

func NewRuleHandler(rules usecase.NegotiationRuleUsecase) *RuleHandler {
	return &RuleHandler{rules: rules}
}

type ruleRequest struct {
	ItemID              string          `json:"item_id"`
	PriceFloor          decimal.Decimal `json:"price_floor"`
	AutoAcceptThreshold decimal.Decimal `json:"auto_accept_threshold"`
	MaxDeliveryDays     int             `json:"max_delivery_days"`
	MaxRounds           int             `json:"max_rounds,omitempty"`
	VolumeDiscountPct   decimal.Decimal `json:"volume_discount_pct"`
	VolumeThreshold     int             `json:"volume_threshold"`
	Currency            string          `json:"currency"`
}

type ruleResponse struct {
	ID                  string          `json:"id"`
	OwnerID             string          `json:"owner_id"`
	ItemID              string          `json:"item_id"`
	PriceFloor          decimal.Decimal `json:"price_floor"`
	AutoAcceptThreshold decimal.Decimal `json:"auto_accept_threshold"`
	MaxDeliveryDays     int             `json:"max_delivery_days"`
	MaxRounds           int             `json:"max_rounds"`
	VolumeDiscountPct   decimal.Decimal `json:"volume_discount_pct"`
	VolumeThreshold     int             `json:"volume_threshold"`
	Currency            string          `json:"currency"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func toRuleResponse(rule *domain.NegotiationRule) ruleResponse {
	return ruleResponse{
		ID:                  rule.ID,
		OwnerID:             rule.OwnerID,
		ItemID:              rule.ItemID,
		PriceFloor:          rule.PriceFloor,
		AutoAcceptThreshold: rule.AutoAcceptThreshold,
		MaxDeliveryDays:     rule.MaxDeliveryDays,
		MaxRounds:           rule.MaxRounds,
		VolumeDiscountPct:   rule.VolumeDiscountPct,
		VolumeThreshold:     rule.VolumeThreshold,
		Currency:            string(rule.Currency),
		CreatedAt:           rule.CreatedAt,
		UpdatedAt:           rule.UpdatedAt,
	}
}

func ruleInputFromRequest(req *ruleRequest) *ruledto.RuleInput {
	return &ruledto.RuleInput{
		ItemID:              req.ItemID,
		PriceFloor:          req.PriceFloor,
		AutoAcceptThreshold: req.AutoAcceptThreshold,
		MaxDeliveryDays:     req.MaxDeliveryDays,
		MaxRounds:           req.MaxRounds,
		VolumeDiscountPct:   req.VolumeDiscountPct,
		VolumeThreshold:     req.VolumeThreshold,
		Currency:            domain.Currency(req.Currency),
	}
}

// HandleRules serves /api/v1/rules.
func (h *RuleHandler) HandleRules(w http.ResponseWriter, r *http.Request) {
	ownerID := partyID(r)
	if ownerID == "" {
		writeBadRequest(w, errors.New("X-Party-ID header required"))
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req ruleRequest
		if err := decodeJSON(r, &req); err != nil {
			writeBadRequest(w, err)
			return
		}
		rule, err := h.rules.CreateRule(r.Context(), ownerID, ruleInputFromRequest(&req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"rule": toRuleResponse(rule)})
	case http.MethodGet:
		rules, err := h.rules.ListByOwner(r.Context(), ownerID)
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]ruleResponse, 0, len(rules))
		for _, rule := range rules {
			out = append(out, toRuleResponse(rule))
		}
		writeJSON(w, http.StatusOK, map[string]any{"rules": out})
	default:
		writeMethodNotAllowed(w)
	}
}

// HandleRuleActions serves /api/v1/rules/{id}.
func (h *RuleHandler) HandleRuleActions(w http.ResponseWriter, r *http.Request) {
	ownerID := partyID(r)
	if ownerID == "" {
		writeBadRequest(w, errors.New("X-Party-ID header required"))
		return
	}

	prefix := "/api/v1/rules/"
	ruleID := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if ruleID == "" {
		writeBadRequest(w, errors.New("rule id required"))
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req ruleRequest
		if err := decodeJSON(r, &req); err != nil {
			writeBadRequest(w, err)
			return
		}
		rule, err := h.rules.UpdateRule(r.Context(), ruleID, ownerID, ruleInputFromRequest(&req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"rule": toRuleResponse(rule)})
	case http.MethodDelete:
		if err := h.rules.DeleteRule(r.Context(), ruleID, ownerID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		writeMethodNotAllowed(w)
	}
}
