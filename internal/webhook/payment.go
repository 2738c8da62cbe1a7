package webhook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
)

// ErrorKind classifies why a payment provider refused a payment
type ErrorKind string

const (
	KindCaptureTimeout ErrorKind = "capture_timeout"
	KindCancelled      ErrorKind = "cancelled"
	KindDeclined       ErrorKind = "declined"
	KindProvider       ErrorKind = "provider_error"
)

// ProviderError is returned when the payment provider didn't accept the payment
type ProviderError struct {
	Kind    ErrorKind
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func classifyFailure(msg string) error {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "cancel"), strings.Contains(lower, "closed"):
		return &ProviderError{Kind: KindCancelled, Message: msg}
	case strings.Contains(lower, "declin"), strings.Contains(lower, "denied"):
		return &ProviderError{Kind: KindDeclined, Message: msg}
	default:
		return &ProviderError{Kind: KindProvider, Message: msg}
	}
}

// PayPalCapture asks the relay to capture an order approved in the PayPal window
type PayPalCapture struct {
	OrderID  string  `json:"order_id"`
	LeadID   string  `json:"lead_id"`
	Email    string  `json:"email"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	PriceKey string  `json:"price_key"`
}

func (c *httpClient) CapturePayPalOrder(ctx context.Context, capture PayPalCapture) (*Reply, error) {
	captureCtx, cancel := context.WithTimeout(ctx, c.captureTimeout)
	defer cancel()

	raw, err := c.postJSON(captureCtx, c.endpoints.PayPalCapture, &capture)
	if err != nil {
		// only our own deadline is a capture timeout, a cancelled caller is not
		if errors.Is(captureCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &ProviderError{Kind: KindCaptureTimeout, Message: fmt.Sprintf("capture of order %s took longer than %s", capture.OrderID, c.captureTimeout)}
		}
		return nil, err
	}
	return decodeReply(raw)
}

// StripeOrder asks the relay to open a Stripe Checkout session
type StripeOrder struct {
	LeadID     string  `json:"lead_id"`
	Email      string  `json:"email"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	PriceKey   string  `json:"price_key"`
	SuccessURL string  `json:"success_url"`
	CancelURL  string  `json:"cancel_url"`
}

func (c *httpClient) CreateStripeOrder(ctx context.Context, order StripeOrder) (*Reply, error) {
	raw, err := c.postJSON(ctx, c.endpoints.StripeOrder, &order)
	if err != nil {
		return nil, err
	}
	return decodeReply(raw)
}

// Receipt is a bank transfer receipt or a membership proof to be reviewed
type Receipt struct {
	LeadID      string
	Email       string
	Amount      float64
	Currency    string
	PriceKey    string
	Kind        string
	FileName    string
	ContentType string
	Content     io.Reader
}

func (c *httpClient) UploadReceipt(ctx context.Context, receipt Receipt) (*Reply, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := map[string]string{
		"lead_id":   receipt.LeadID,
		"email":     receipt.Email,
		"amount":    strconv.FormatFloat(receipt.Amount, 'f', 2, 64),
		"currency":  receipt.Currency,
		"price_key": receipt.PriceKey,
		"kind":      receipt.Kind,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="receipt"; filename=%q`, receipt.FileName))
	hdr.Set("Content-Type", receipt.ContentType)

	part, err := w.CreatePart(hdr)
	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(part, receipt.Content); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.ReceiptUpload, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return decodeReply(raw)
}
