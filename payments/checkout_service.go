package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	config "github.com/kiprotich-dev/lingua_connect/configs"
)

// CheckoutSession is a hosted payment page created at the checkout provider.
// Students are redirected to URL and return after paying; the provider calls
// the webhook with the session ID.
type CheckoutSession struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

type checkoutRequest struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	SuccessURL  string            `json:"success_url"`
	CancelURL   string            `json:"cancel_url"`
	Metadata    map[string]string `json:"metadata"`
}

// CreateCheckoutSession opens a hosted checkout page for a credit purchase.
// Amount is in the currency's minor unit.
func CreateCheckoutSession(amountCents int64, currency, description string, metadata map[string]string) (*CheckoutSession, error) {
	apiBase := config.Config("CHECKOUT_API_BASE_URL")
	apiKey := config.Config("CHECKOUT_API_KEY")
	frontendURL := config.Config("FRONTEND_URL")

	payload := checkoutRequest{
		Amount:      amountCents,
		Currency:    currency,
		Description: description,
		SuccessURL:  fmt.Sprintf("%s/credits?status=success", frontendURL),
		CancelURL:   fmt.Sprintf("%s/credits?status=canceled", frontendURL),
		Metadata:    metadata,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/v1/checkout/sessions", apiBase), bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", apiKey))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to create checkout session: %s", string(respBody))
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetCheckoutSession re-fetches a session to verify webhook payloads against
// the provider instead of trusting the caller.
func GetCheckoutSession(sessionID string) (*CheckoutSession, error) {
	apiBase := config.Config("CHECKOUT_API_BASE_URL")
	apiKey := config.Config("CHECKOUT_API_KEY")

	req, err := http.NewRequest("GET", fmt.Sprintf("%s/v1/checkout/sessions/%s", apiBase, sessionID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", apiKey))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to fetch checkout session: %s", string(respBody))
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}
