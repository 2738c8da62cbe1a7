// Package webhook calls the automation webhooks relaying payments to PayPal,
// Stripe and the bank receipt review, and the phone lookup of members.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/lexcongreso/registration/internal/pricing"
)

// ErrUnavailable is returned when a webhook can't be reached or fails on its side
var ErrUnavailable = errors.New("webhook unavailable")

const maxReplySize = 1 << 20

// Endpoints are the webhook urls
type Endpoints struct {
	PhoneLookup   string
	PayPalCapture string
	StripeOrder   string
	ReceiptUpload string
}

// Reply is the {success, data, message} envelope every payment webhook answers with
type Reply struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	// Body is the raw reply, kept for the confirmation page
	Body json.RawMessage `json:"-"`
}

// String returns the first non empty string or number found in data under keys
func (r *Reply) String(keys ...string) string {
	var data map[string]any
	if err := json.Unmarshal(r.Data, &data); err != nil {
		return ""
	}

	for _, k := range keys {
		switch v := data[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// Client represents behavior of the webhooks
type Client interface {
	LookupPhone(ctx context.Context, phone string) (pricing.LookupResponse, error)
	CapturePayPalOrder(ctx context.Context, capture PayPalCapture) (*Reply, error)
	CreateStripeOrder(ctx context.Context, order StripeOrder) (*Reply, error)
	UploadReceipt(ctx context.Context, receipt Receipt) (*Reply, error)
}

type httpClient struct {
	endpoints      Endpoints
	client         *http.Client
	captureTimeout time.Duration
}

// NewHTTPClient builds Client, captureTimeout bounds the PayPal capture call
func NewHTTPClient(endpoints Endpoints, client *http.Client, captureTimeout time.Duration) Client {
	return &httpClient{endpoints: endpoints, client: client, captureTimeout: captureTimeout}
}

type phoneLookup struct {
	Phone string `json:"phone"`
}

func (c *httpClient) LookupPhone(ctx context.Context, phone string) (pricing.LookupResponse, error) {
	raw, err := c.postJSON(ctx, c.endpoints.PhoneLookup, &phoneLookup{Phone: phone})
	if err != nil {
		return pricing.LookupResponse{}, err
	}

	var resp pricing.LookupResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return pricing.LookupResponse{}, fmt.Errorf("%w: malformed phone lookup reply - %v", ErrUnavailable, err)
	}
	return resp, nil
}

func (c *httpClient) postJSON(ctx context.Context, url string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *httpClient) do(req *http.Request) (json.RawMessage, error) {
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - %v", ErrUnavailable, req.URL.Path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxReplySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read reply - %v", ErrUnavailable, err)
	}

	if res.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: %s answered %d", ErrUnavailable, req.URL.Path, res.StatusCode)
	}
	return raw, nil
}

// decodeReply parses a payment webhook envelope, an unsuccessful one becomes a ProviderError
func decodeReply(raw json.RawMessage) (*Reply, error) {
	var reply Reply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("%w: malformed reply - %v", ErrUnavailable, err)
	}
	reply.Body = raw

	if !reply.Success {
		return &reply, classifyFailure(reply.Message)
	}
	return &reply, nil
}
