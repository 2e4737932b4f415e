package e2e

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// FakePayPal is an in-memory Orders v2 sandbox: it creates orders, lets a
// test approve them as a buyer would, and captures approved orders.
type FakePayPal struct {
	server *httptest.Server

	mu       sync.Mutex
	orders   map[string]*fakeOrder
	next     int
	captures int
}

type fakeOrder struct {
	id       string
	status   string
	customID string
	currency string
	value    string
}

func NewFakePayPal(t *testing.T) *FakePayPal {
	f := &FakePayPal{orders: make(map[string]*fakeOrder)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/oauth2/token", f.handleToken)
	mux.HandleFunc("POST /v2/checkout/orders", f.handleCreate)
	mux.HandleFunc("GET /v2/checkout/orders/{id}", f.handleGet)
	mux.HandleFunc("POST /v2/checkout/orders/{id}/capture", f.handleCapture)

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *FakePayPal) URL() string {
	return f.server.URL
}

// Approve marks an order as approved by the payer.
func (f *FakePayPal) Approve(orderID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orders[orderID]; ok {
		o.status = "APPROVED"
	}
}

func (f *FakePayPal) Captures() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.captures
}

func (f *FakePayPal) handleToken(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := r.BasicAuth(); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":             "invalid_client",
			"error_description": "Client Authentication failed",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": "fake-token",
		"token_type":   "Bearer",
		"expires_in":   32400,
	})
}

func (f *FakePayPal) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PurchaseUnits []struct {
			CustomID string `json:"custom_id"`
			Amount   struct {
				CurrencyCode string `json:"currency_code"`
				Value        string `json:"value"`
			} `json:"amount"`
		} `json:"purchase_units"`
	}
	body, _ := io.ReadAll(r.Body)
	if err := json.Unmarshal(body, &req); err != nil || len(req.PurchaseUnits) != 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"name": "INVALID_REQUEST", "message": "malformed order"})
		return
	}

	f.mu.Lock()
	f.next++
	order := &fakeOrder{
		id:       fmt.Sprintf("FAKE%06d", f.next),
		status:   "CREATED",
		customID: req.PurchaseUnits[0].CustomID,
		currency: req.PurchaseUnits[0].Amount.CurrencyCode,
		value:    req.PurchaseUnits[0].Amount.Value,
	}
	f.orders[order.id] = order
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     order.id,
		"status": order.status,
		"links": []map[string]string{
			{"rel": "approve", "href": "https://www.sandbox.paypal.com/checkoutnow?token=" + order.id},
		},
	})
}

func (f *FakePayPal) handleGet(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	order, ok := f.orders[r.PathValue("id")]
	var snapshot fakeOrder
	if ok {
		snapshot = *order
	}
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"name": "RESOURCE_NOT_FOUND", "message": "order not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":     snapshot.id,
		"status": snapshot.status,
		"intent": "CAPTURE",
		"payer": map[string]any{
			"payer_id":      "BUYER1",
			"email_address": "buyer@example.com",
			"name":          map[string]string{"given_name": "Jane", "surname": "Doe"},
		},
		"purchase_units": []map[string]any{{
			"reference_id": "default",
			"custom_id":    snapshot.customID,
			"amount":       map[string]string{"currency_code": snapshot.currency, "value": snapshot.value},
		}},
	})
}

func (f *FakePayPal) handleCapture(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	order, ok := f.orders[r.PathValue("id")]
	if !ok || order.status != "APPROVED" {
		f.mu.Unlock()
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"name":     "UNPROCESSABLE_ENTITY",
			"message":  "ORDER_NOT_APPROVED",
			"debug_id": "dbg1",
		})
		return
	}
	order.status = "COMPLETED"
	f.captures++
	snapshot := *order
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     snapshot.id,
		"status": "COMPLETED",
		"purchase_units": []map[string]any{{
			"reference_id": "default",
			"payments": map[string]any{
				"captures": []map[string]any{{
					"id":        "CAP-" + snapshot.id,
					"status":    "COMPLETED",
					"custom_id": snapshot.customID,
					"amount":    map[string]string{"currency_code": snapshot.currency, "value": snapshot.value},
				}},
			},
		}},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
