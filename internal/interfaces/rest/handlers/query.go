package handlers

import (
	"net/http"

	"github.com/DanielPopoola/paypal-checkout/internal/api"
	"github.com/DanielPopoola/paypal-checkout/internal/interfaces/rest"
)

// HandleGetAuthorization returns the verified payer identity of an order
// @Summary      Get authorization
// @Description  Returns the payer identity stored when the approval callback was verified. Gone once the order is captured or the entry expires.
// @Tags         checkout
// @Produce      json
// @Param        orderID  path      string            true  "Gateway order id"
// @Success      200      {object}  rest.APIResponse  "Authorized data"
// @Failure      404      {object}  rest.APIResponse  "No pending authorization"
// @Router       /api/v1/checkout/orders/{orderID}/authorization [get]
func (h *Handlers) HandleGetAuthorization(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDParam(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	data, err := h.query.FindAuthorization(r.Context(), orderID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, data)
}

// HandleSDKLink returns the browser SDK bootstrap URL
// @Summary      SDK link
// @Tags         checkout
// @Produce      json
// @Param        currency  query     string            false  "ISO 4217 code; the configured default when absent"
// @Success      200       {object}  rest.APIResponse  "SDK link"
// @Router       /api/v1/checkout/sdk-link [get]
func (h *Handlers) HandleSDKLink(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, api.SDKLinkResponse{
		URL: h.checkout.SDKLink(r.URL.Query().Get("currency")),
	})
}
