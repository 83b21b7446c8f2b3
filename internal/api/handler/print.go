package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golden-lotus/pos-service/internal/api"
	"github.com/golden-lotus/pos-service/internal/service"
	"github.com/google/uuid"
)

// PrintHandler serves printable receipts, kitchen slips and QR bills
type PrintHandler struct {
	receipts *service.ReceiptService
}

// NewPrintHandler creates a new print handler
func NewPrintHandler(receipts *service.ReceiptService) *PrintHandler {
	return &PrintHandler{receipts: receipts}
}

// HandlePrint handles requests under /print
func (h *PrintHandler) HandlePrint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/print")
	path = strings.Trim(path, "/")

	parts := strings.Split(path, "/")
	if len(parts) != 2 {
		api.BadRequest(w, "Invalid path")
		return
	}

	id, err := uuid.Parse(parts[1])
	if err != nil {
		api.BadRequest(w, "Invalid order ID")
		return
	}

	switch parts[0] {
	case "customer":
		h.renderHTML(w, r, func() (string, error) {
			return h.receipts.CustomerReceipt(r.Context(), id)
		})
	case "kitchen":
		h.renderHTML(w, r, func() (string, error) {
			return h.receipts.KitchenSlip(r.Context(), id)
		})
	case "qr":
		h.renderHTML(w, r, func() (string, error) {
			return h.receipts.QRBill(r.Context(), id)
		})
	case "qr-data":
		h.getQRData(w, r, id)
	default:
		api.BadRequest(w, "Invalid path")
	}
}

func (h *PrintHandler) renderHTML(w http.ResponseWriter, r *http.Request, render func() (string, error)) {
	html, err := render()
	if err != nil {
		api.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(html))
}

// getQRData returns the payment QR as a JSON data URL; the amount can be
// overridden with ?amount=
func (h *PrintHandler) getQRData(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var amount *float64
	if v := r.URL.Query().Get("amount"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			api.BadRequest(w, "Invalid amount")
			return
		}
		amount = &parsed
	}

	qr, err := h.receipts.PaymentQR(r.Context(), id, amount)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "qr": qr})
}
