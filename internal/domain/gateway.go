package domain

const IntentCapture = "CAPTURE"

type ApplicationContext struct {
	ShippingPreference ShippingPreference `json:"shipping_preference,omitempty"`
	UserAction         UserAction         `json:"user_action,omitempty"`
	ReturnURL          string             `json:"return_url,omitempty"`
	CancelURL          string             `json:"cancel_url,omitempty"`
}

type Amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type PurchaseUnitRequest struct {
	CustomID    string `json:"custom_id"`
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
}

// OrderRequest is the create-order payload
type OrderRequest struct {
	Intent             string                `json:"intent"`
	ApplicationContext ApplicationContext    `json:"application_context"`
	PurchaseUnits      []PurchaseUnitRequest `json:"purchase_units"`
}

// CreatedOrder keeps the gateway's create-order body verbatim alongside the
// order id parsed from it.
type CreatedOrder struct {
	ID     string
	Status string
	Raw    []byte
}

type PayerName struct {
	GivenName string `json:"given_name"`
	Surname   string `json:"surname"`
}

type Payer struct {
	PayerID      string    `json:"payer_id"`
	EmailAddress string    `json:"email_address"`
	Name         PayerName `json:"name"`
}

type Capture struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	CustomID string `json:"custom_id"`
	Amount   Amount `json:"amount"`
}

type Payments struct {
	Captures []Capture `json:"captures"`
}

type PurchaseUnit struct {
	ReferenceID string    `json:"reference_id"`
	CustomID    string    `json:"custom_id"`
	Description string    `json:"description"`
	Amount      *Amount   `json:"amount,omitempty"`
	Payments    *Payments `json:"payments,omitempty"`
}

// GatewayOrder is the get-order response
type GatewayOrder struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	Intent        string         `json:"intent"`
	Payer         *Payer         `json:"payer,omitempty"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
}

// CaptureResult is the capture-order response
type CaptureResult struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	Payer         *Payer         `json:"payer,omitempty"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
}

// FirstCapture returns purchase_units[0].payments.captures[0].
func (r *CaptureResult) FirstCapture() (*Capture, bool) {
	if len(r.PurchaseUnits) == 0 || r.PurchaseUnits[0].Payments == nil {
		return nil, false
	}
	captures := r.PurchaseUnits[0].Payments.Captures
	if len(captures) == 0 {
		return nil, false
	}
	return &captures[0], true
}

// AccessToken is the OAuth client-credentials token response
type AccessToken struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	ExpiresIn        int64  `json:"expires_in"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
