package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/BrandonWrob/ExtendedManager/internal/service"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
)

type TaxHandler struct {
	responder
	taxService service.TaxServiceInterface
}

func NewTaxHandler(taxService service.TaxServiceInterface, logger *logger.Logger) *TaxHandler {
	return &TaxHandler{
		responder:  responder{logger: logger.WithComponent("tax_handler")},
		taxService: taxService,
	}
}

type setTaxRequest struct {
	Rate *decimal.Decimal `json:"rate"`
}

type taxCalculation struct {
	Amount string `json:"amount"`
	Tax    string `json:"tax"`
}

// GetTaxRate handles GET /api/v1/tax
func (h *TaxHandler) GetTaxRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.taxService.GetTaxRate(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, rate)
}

// SetTaxRate handles PUT /api/v1/tax
func (h *TaxHandler) SetTaxRate(w http.ResponseWriter, r *http.Request) {
	var req setTaxRequest
	if err := parseRequestBody(r, &req); err != nil || req.Rate == nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Request body must contain a rate")
		return
	}

	rate, err := h.taxService.SetTaxRate(r.Context(), *req.Rate)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, rate)
}

// CalculateTax handles GET /api/v1/tax/calculate?amount=
func (h *TaxHandler) CalculateTax(w http.ResponseWriter, r *http.Request) {
	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "amount must be a number")
		return
	}

	tax, err := h.taxService.CalcTax(r.Context(), amount)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, taxCalculation{
		Amount: amount.StringFixed(2),
		Tax:    tax.StringFixed(2),
	})
}
