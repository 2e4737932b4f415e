package domain

// Required order field keys, in the order they are reported when missing.
const (
	FieldReturnURL         = "return_url"
	FieldCancelURL         = "cancel_url"
	FieldDescription       = "description"
	FieldInternalPaymentID = "internalPaymentId"
)

// OrderFields is the merchant metadata for one checkout attempt. An empty
// value counts as absent.
type OrderFields struct {
	ReturnURL         string
	CancelURL         string
	Description       string
	InternalPaymentID string
}

// Missing lists absent keys in canonical order.
func (f OrderFields) Missing() []string {
	var missing []string
	for _, field := range []struct {
		key   string
		value string
	}{
		{FieldReturnURL, f.ReturnURL},
		{FieldCancelURL, f.CancelURL},
		{FieldDescription, f.Description},
		{FieldInternalPaymentID, f.InternalPaymentID},
	} {
		if field.value == "" {
			missing = append(missing, field.key)
		}
	}
	return missing
}

// BuildOrderRequest assembles the create-order payload. appCtx carries the
// shipping and user-action settings and is copied, never mutated.
func BuildOrderRequest(price Price, fields OrderFields, appCtx ApplicationContext) (OrderRequest, error) {
	if missing := fields.Missing(); len(missing) > 0 {
		return OrderRequest{}, NewMissingRequiredFieldError(missing...)
	}

	appCtx.ReturnURL = fields.ReturnURL
	appCtx.CancelURL = fields.CancelURL

	return OrderRequest{
		Intent:             IntentCapture,
		ApplicationContext: appCtx,
		PurchaseUnits: []PurchaseUnitRequest{
			{
				CustomID:    fields.InternalPaymentID,
				Description: fields.Description,
				Amount: Amount{
					CurrencyCode: price.Currency,
					Value:        price.Value(),
				},
			},
		},
	}, nil
}
