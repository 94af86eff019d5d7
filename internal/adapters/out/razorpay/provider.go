// Package razorpay implements the escrow provider port against the Razorpay
// Route API. Funds are captured into a held transfer when an order is
// accepted and the hold is lifted once delivery is verified.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.razorpay.com"
	currency       = "INR"

	// Razorpay caps on_hold_until at 7 days from capture.
	holdDuration = 7 * 24 * time.Hour
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("razorpay: code %d: %s", e.Code, e.Body)
}

// Provider is an EscrowProvider backed by Razorpay Route. Amounts are
// converted to paise on the wire; the rest of the system stays in rupees.
// The provider is safe for concurrent use.
type Provider struct {
	session   *http.Client
	baseURL   string
	keyID     string
	keySecret string
	now       func() time.Time
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API endpoint, used for sandbox and tests.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		p.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.session = client
	}
}

// NewProvider creates a Razorpay-backed escrow provider using key pair
// authentication.
func NewProvider(keyID, keySecret string, opts ...Option) (*Provider, error) {
	if keyID == "" || keySecret == "" {
		return nil, errors.New("razorpay key id and secret must be non-empty")
	}

	p := &Provider{
		session:   &http.Client{Timeout: 10 * time.Second},
		baseURL:   defaultBaseURL,
		keyID:     keyID,
		keySecret: keySecret,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

type transferRequest struct {
	Account     string `json:"account"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	OnHold      bool   `json:"on_hold"`
	OnHoldUntil int64  `json:"on_hold_until,omitempty"`
}

type createOrderRequest struct {
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Receipt   string            `json:"receipt"`
	Transfers []transferRequest `json:"transfers"`
}

type transferResponse struct {
	ID     string `json:"id"`
	OnHold bool   `json:"on_hold"`
	Status string `json:"status,omitempty"`
}

type orderResponse struct {
	ID        string             `json:"id"`
	Transfers []transferResponse `json:"transfers"`
}

// CreateHold captures the order amount into a held transfer towards the
// carrier's linked account. The hold is created in a single order call so a
// confirmed response always means both the capture and the transfer exist.
func (p *Provider) CreateHold(
	ctx context.Context,
	orderID kernel.UUID,
	amount float64,
	payoutAccountRef string,
) (ports.EscrowHold, error) {
	if amount <= 0 {
		return ports.EscrowHold{}, fmt.Errorf("razorpay: amount %g must be positive", amount)
	}
	if payoutAccountRef == "" {
		return ports.EscrowHold{}, errors.New("razorpay: payout account reference is required")
	}

	paise := int64(math.Round(amount * 100))
	body := createOrderRequest{
		Amount:   paise,
		Currency: currency,
		Receipt:  "receipt_" + orderID.String(),
		Transfers: []transferRequest{{
			Account:     payoutAccountRef,
			Amount:      paise,
			Currency:    currency,
			OnHold:      true,
			OnHoldUntil: p.now().Add(holdDuration).Unix(),
		}},
	}

	var resp orderResponse
	if err := p.call(ctx, http.MethodPost, "/v1/orders", body, &resp); err != nil {
		return ports.EscrowHold{}, fmt.Errorf("create hold for order %s: %w", orderID, err)
	}

	if resp.ID == "" || len(resp.Transfers) == 0 || resp.Transfers[0].ID == "" {
		return ports.EscrowHold{}, fmt.Errorf(
			"razorpay: order %s created without a transfer reference", orderID)
	}

	return ports.EscrowHold{
		ProviderOrderID: resp.ID,
		TransferID:      resp.Transfers[0].ID,
	}, nil
}

// Release lifts the settlement hold on a transfer.
func (p *Provider) Release(ctx context.Context, transferID string) error {
	if transferID == "" {
		return errors.New("razorpay: transfer id is required")
	}

	body := map[string]bool{"on_hold": false}
	var resp transferResponse
	if err := p.call(ctx, http.MethodPatch, "/v1/transfers/"+transferID, body, &resp); err != nil {
		return fmt.Errorf("release transfer %s: %w", transferID, err)
	}

	if resp.OnHold {
		return fmt.Errorf("razorpay: transfer %s still on hold after release", transferID)
	}

	return nil
}

// Status reports the provider-side hold state of a transfer.
func (p *Provider) Status(ctx context.Context, transferID string) (string, error) {
	if transferID == "" {
		return "", errors.New("razorpay: transfer id is required")
	}

	var resp transferResponse
	if err := p.call(ctx, http.MethodGet, "/v1/transfers/"+transferID, nil, &resp); err != nil {
		return "", fmt.Errorf("transfer status %s: %w", transferID, err)
	}

	if resp.OnHold {
		return "on_hold", nil
	}
	if resp.Status != "" {
		return resp.Status, nil
	}
	return "released", nil
}

func (p *Provider) call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.SetBasicAuth(p.keyID, p.keySecret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.session.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		return &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
