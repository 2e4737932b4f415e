package handlers

import (
	"net/http"

	"github.com/DanielPopoola/paypal-checkout/internal/api"
	"github.com/DanielPopoola/paypal-checkout/internal/domain"
	"github.com/DanielPopoola/paypal-checkout/internal/interfaces/rest"
)

// HandleStartPayment creates the gateway order for a cart
// @Summary      Create a gateway order
// @Description  Builds the create-order payload from the price and merchant metadata and returns the gateway's order document verbatim.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request  body      api.StartPaymentRequest  true  "Cart price and merchant metadata"
// @Success      201      {object}  rest.APIResponse         "Order created"
// @Failure      400      {object}  rest.APIResponse         "Missing fields or malformed price"
// @Failure      502      {object}  rest.APIResponse         "Gateway failure"
// @Router       /api/v1/checkout/orders [post]
func (h *Handlers) HandleStartPayment(w http.ResponseWriter, r *http.Request) {
	var req api.StartPaymentRequest
	if err := decodeBody(r, &req, false); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	if err := h.validateStruct(req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	price, err := domain.ParsePrice(req.GrossAmount, req.Currency)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	result, err := h.checkout.StartPayment(r.Context(), price, req.Fields())
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, api.StartPaymentResponse{
		OrderID: result.OrderID,
		Order:   result.Order,
	})
}

// HandleCallback verifies a client approval callback
// @Summary      Verify an approval callback
// @Description  Fetches the order from the gateway, stores the payer identity and either reports AUTHORIZED or captures right away.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request  body      domain.AuthorizationCallback  true  "Order and payer ids from the client SDK"
// @Success      200      {object}  rest.APIResponse              "Payment status"
// @Failure      400      {object}  rest.APIResponse              "Missing callback keys"
// @Failure      502      {object}  rest.APIResponse              "Gateway failure"
// @Router       /api/v1/checkout/callback [post]
func (h *Handlers) HandleCallback(w http.ResponseWriter, r *http.Request) {
	var cb domain.AuthorizationCallback
	if err := decodeBody(r, &cb, false); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	status, err := h.checkout.HandleResponse(r.Context(), cb)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	recordStatus("callback", status)
	rest.WriteJSON(w, http.StatusOK, status)
}

// HandleCapture captures a previously authorized order
// @Summary      Capture an order
// @Description  Captures the full order amount. Supplying an amount is rejected because the gateway cannot capture a different amount.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        orderID  path      string               true   "Gateway order id"
// @Param        request  body      api.CaptureRequest   false  "Amount override (unsupported)"
// @Success      200      {object}  rest.APIResponse     "Payment status"
// @Failure      409      {object}  rest.APIResponse     "Order not authorized or already captured"
// @Failure      422      {object}  rest.APIResponse     "Amount override"
// @Failure      502      {object}  rest.APIResponse     "Gateway failure"
// @Router       /api/v1/checkout/orders/{orderID}/capture [post]
func (h *Handlers) HandleCapture(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDParam(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	var req api.CaptureRequest
	if err := decodeBody(r, &req, true); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	status, err := h.checkout.ExecuteDebit(r.Context(), orderID, req.Override())
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	recordStatus("capture", status)
	rest.WriteJSON(w, http.StatusOK, status)
}

// HandleCredit refunds a captured payment
// @Summary      Refund a payment
// @Description  Not offered by this payment method.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request  body      api.CreditRequest  true  "Refund details"
// @Failure      501      {object}  rest.APIResponse   "Not implemented"
// @Router       /api/v1/checkout/credits [post]
func (h *Handlers) HandleCredit(w http.ResponseWriter, r *http.Request) {
	var req api.CreditRequest
	if err := decodeBody(r, &req, false); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	if err := h.validateStruct(req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	price, err := domain.ParsePrice(req.GrossAmount, req.Currency)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	status, err := h.checkout.ExecuteCredit(r.Context(), price, req.Reference, req.TransactionID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	recordStatus("credit", status)
	rest.WriteJSON(w, http.StatusOK, status)
}
