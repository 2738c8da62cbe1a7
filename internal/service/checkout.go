package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/lexcongreso/registration/internal/cache"
	apperrors "github.com/lexcongreso/registration/internal/errors"
	"github.com/lexcongreso/registration/internal/events"
	"github.com/lexcongreso/registration/internal/model"
	"github.com/lexcongreso/registration/internal/payment"
	"github.com/lexcongreso/registration/internal/pricing"
	"github.com/lexcongreso/registration/internal/repository"
	"github.com/lexcongreso/registration/internal/session"
	"github.com/lexcongreso/registration/internal/webhook"
	"github.com/sirupsen/logrus"
)

// Purchase is what the attendee is about to pay for.
// Academic purchases carry the selection, the quote is always recomputed here.
type Purchase struct {
	LeadID    string
	Option    payment.Option
	Selection *pricing.Selection
}

// ReceiptFile is an uploaded bank receipt or membership proof
type ReceiptFile struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// CheckoutResult tells the site where to go after the payment step
type CheckoutResult struct {
	Instruction       payment.Instruction `json:"instruction"`
	TransactionID     string              `json:"transactionId,omitempty"`
	StripeAccessURL   string              `json:"stripeAccessUrl,omitempty"`
	ConfirmationQuery string              `json:"confirmationQuery,omitempty"`
	Session           *session.Token      `json:"session"`
}

// CheckoutCfg holds the urls Stripe returns the attendee to
type CheckoutCfg struct {
	StripeSuccessURL string
	StripeCancelURL  string
}

// CheckoutService relays purchases to the payment webhooks
type CheckoutService interface {
	Quote(pricing.Selection) (pricing.Quote, error)
	Dispatch(Purchase, model.PaymentMethod, bool) (payment.Instruction, error)
	CapturePayPal(ctx context.Context, p Purchase, orderID string) (*CheckoutResult, error)
	StartStripeCheckout(ctx context.Context, p Purchase) (*CheckoutResult, error)
	SubmitReceipt(ctx context.Context, p Purchase, file ReceiptFile) (*CheckoutResult, error)
}

type checkoutService struct {
	cfg           CheckoutCfg
	customerRps   repository.CustomerRepository
	responseCache cache.WebhookResponseCache
	webhookClient webhook.Client
	publisher     events.Publisher
	issuer        *session.Issuer
}

func NewCheckoutService(
	cfg CheckoutCfg,
	customerRps repository.CustomerRepository,
	responseCache cache.WebhookResponseCache,
	webhookClient webhook.Client,
	publisher events.Publisher,
	issuer *session.Issuer,
) CheckoutService {
	return &checkoutService{
		cfg:           cfg,
		customerRps:   customerRps,
		responseCache: responseCache,
		webhookClient: webhookClient,
		publisher:     publisher,
		issuer:        issuer,
	}
}

func (s *checkoutService) Quote(sel pricing.Selection) (pricing.Quote, error) {
	return pricing.CalculateAcademicPrice(sel)
}

func (s *checkoutService) Dispatch(p Purchase, method model.PaymentMethod, receiptUpload bool) (payment.Instruction, error) {
	req := payment.Request{Option: p.Option, Method: method, ReceiptUpload: receiptUpload}

	if p.Selection != nil {
		quote, err := pricing.CalculateAcademicPrice(*p.Selection)
		if err != nil {
			return payment.Instruction{}, err
		}
		req.Role = p.Selection.Role
		req.Quote = &quote
	}

	return payment.Dispatch(req)
}

func (s *checkoutService) CapturePayPal(ctx context.Context, p Purchase, orderID string) (*CheckoutResult, error) {
	customer, ins, err := s.prepare(ctx, p, model.PaymentMethodPayPal, false)
	if err != nil {
		return nil, err
	}

	reply, err := s.webhookClient.CapturePayPalOrder(ctx, webhook.PayPalCapture{
		OrderID:  orderID,
		LeadID:   customer.ID,
		Email:    customer.Email,
		Amount:   ins.Amount,
		Currency: ins.Currency,
		PriceKey: ins.PriceKey,
	})
	if err != nil {
		return nil, err
	}

	txID := reply.String("transaction_id", "capture_id", "id")
	if txID == "" {
		txID = orderID
	}

	s.remember(ctx, customer.ID, txID, ins, reply)
	return s.complete(p, ins, txID, "")
}

func (s *checkoutService) StartStripeCheckout(ctx context.Context, p Purchase) (*CheckoutResult, error) {
	customer, ins, err := s.prepare(ctx, p, model.PaymentMethodStripe, false)
	if err != nil {
		return nil, err
	}

	reply, err := s.webhookClient.CreateStripeOrder(ctx, webhook.StripeOrder{
		LeadID:     customer.ID,
		Email:      customer.Email,
		Amount:     ins.Amount,
		Currency:   ins.Currency,
		PriceKey:   ins.PriceKey,
		SuccessURL: withLead(s.cfg.StripeSuccessURL, customer.ID),
		CancelURL:  withLead(s.cfg.StripeCancelURL, customer.ID),
	})
	if err != nil {
		return nil, err
	}

	accessURL := reply.String("access_url", "url", "checkout_url")
	if accessURL == "" {
		return nil, &webhook.ProviderError{Kind: webhook.KindProvider, Message: "stripe relay returned no checkout url"}
	}

	// payment isn't done yet, an older cached answer must not win over the live row
	if err := s.responseCache.DeleteByLeadID(ctx, customer.ID); err != nil {
		logrus.Errorf("failed to drop cached webhook response of lead %s - %v", customer.ID, err)
	}

	return s.complete(p, ins, reply.String("session_id", "id"), accessURL)
}

func (s *checkoutService) SubmitReceipt(ctx context.Context, p Purchase, file ReceiptFile) (*CheckoutResult, error) {
	customer, ins, err := s.prepare(ctx, p, model.PaymentMethodTransfer, true)
	if err != nil {
		return nil, err
	}

	reply, err := s.webhookClient.UploadReceipt(ctx, webhook.Receipt{
		LeadID:      customer.ID,
		Email:       customer.Email,
		Amount:      ins.Amount,
		Currency:    ins.Currency,
		PriceKey:    ins.PriceKey,
		Kind:        string(ins.Widget),
		FileName:    file.Name,
		ContentType: file.ContentType,
		Content:     file.Content,
	})
	if err != nil {
		return nil, err
	}

	txID := reply.String("transaction_id", "receipt_id", "id")
	s.remember(ctx, customer.ID, txID, ins, reply)
	return s.complete(p, ins, txID, "")
}

func (s *checkoutService) prepare(ctx context.Context, p Purchase, method model.PaymentMethod, receiptUpload bool) (*model.Customer, payment.Instruction, error) {
	ins, err := s.Dispatch(p, method, receiptUpload)
	if err != nil {
		return nil, payment.Instruction{}, err
	}

	customer, err := s.customerRps.FindByID(ctx, p.LeadID)
	if err != nil {
		return nil, payment.Instruction{}, err
	}

	if customer == nil {
		return nil, payment.Instruction{}, apperrors.NewEntryNotFoundErr(fmt.Sprintf("lead %s doesn't exist", p.LeadID))
	}
	return customer, ins, nil
}

// remember keeps the webhook answer for the confirmation page and notifies
// the back office, failures of either are only logged
func (s *checkoutService) remember(ctx context.Context, leadID, txID string, ins payment.Instruction, reply *webhook.Reply) {
	resp := &cache.WebhookResponse{
		LeadID:        leadID,
		TransactionID: txID,
		PaymentMethod: string(ins.Method),
		Amount:        ins.Amount,
		Body:          reply.Body,
		ReceivedAt:    time.Now().UTC(),
	}
	if err := s.responseCache.Create(ctx, resp); err != nil {
		logrus.Errorf("failed to cache webhook response of lead %s - %v", leadID, err)
	}

	e := events.PaymentSubmitted{
		CustomerID:    leadID,
		TransactionID: txID,
		PaymentMethod: string(ins.Method),
		PriceKey:      ins.PriceKey,
		Amount:        ins.Amount,
		Currency:      ins.Currency,
	}
	if err := s.publisher.PaymentSubmitted(ctx, e); err != nil {
		logrus.Errorf("failed to publish payment of lead %s - %v", leadID, err)
	}
}

func (s *checkoutService) complete(p Purchase, ins payment.Instruction, txID, accessURL string) (*CheckoutResult, error) {
	token, err := s.issuer.Sign(session.Checkout{
		LeadID:          p.LeadID,
		TransactionID:   txID,
		PaymentMethod:   string(ins.Method),
		Amount:          ins.Amount,
		IsAcademic:      p.Option == payment.OptionAcademic,
		StripeAccessURL: accessURL,
	}, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	res := &CheckoutResult{Instruction: ins, TransactionID: txID, StripeAccessURL: accessURL, Session: token}
	if accessURL == "" {
		q := url.Values{}
		q.Set("lead_id", p.LeadID)
		q.Set("method", string(ins.Method))
		q.Set("status", "success")
		if txID != "" {
			q.Set("transaction_id", txID)
		}
		res.ConfirmationQuery = q.Encode()
	}
	return res, nil
}

// withLead appends the lead to a return url without re-encoding it, Stripe
// substitutes {CHECKOUT_SESSION_ID} only when the braces are left as is
func withLead(raw, leadID string) string {
	if raw == "" {
		return raw
	}

	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	return raw + sep + "lead_id=" + url.QueryEscape(leadID) + "&method=" + string(model.PaymentMethodStripe)
}
