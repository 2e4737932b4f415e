package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/DanielPopoola/paypal-checkout/internal/application"
	"github.com/DanielPopoola/paypal-checkout/internal/domain"
	"github.com/DanielPopoola/paypal-checkout/internal/infrastructure/metrics"
	"github.com/oapi-codegen/runtime"
)

// decodeBody reads a JSON body into dst. An empty body is accepted when
// optional is set.
func decodeBody(r *http.Request, dst any, optional bool) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return application.NewInvalidInputError(err)
	}
	if len(body) == 0 && optional {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return application.NewInvalidInputError(err)
	}
	return nil
}

func (h *Handlers) validateStruct(v any) error {
	if err := h.validate.Struct(v); err != nil {
		return application.NewInvalidInputError(err)
	}
	return nil
}

func orderIDParam(r *http.Request) (string, error) {
	var orderID string
	err := runtime.BindStyledParameterWithOptions("simple", "orderID", r.PathValue("orderID"), &orderID, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", application.NewInvalidInputError(err)
	}
	return orderID, nil
}

func recordStatus(stage string, status *domain.PaymentStatus) {
	metrics.IncPaymentStatus(stage, string(status.Kind))
}
