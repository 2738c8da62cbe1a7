package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lexcongreso/registration/internal/cache"
	apperrors "github.com/lexcongreso/registration/internal/errors"
	"github.com/lexcongreso/registration/internal/model"
	"github.com/lexcongreso/registration/internal/payment"
	"github.com/lexcongreso/registration/internal/repository"
	"github.com/lexcongreso/registration/internal/session"
	"github.com/sirupsen/logrus"
)

const paymentPollRetries = 2

var errPaymentPending = errors.New("payment is not recorded yet")

// ConfirmationState is the outcome of resolving the confirmation page
type ConfirmationState string

const (
	StateNoLeadID      ConfirmationState = "no_lead_id"
	StateCustomerError ConfirmationState = "customer_error"
	StateResolved      ConfirmationState = "resolved"
)

// PaymentSource tells where the payment shown on the confirmation page came from
type PaymentSource string

const (
	SourceCache    PaymentSource = "cache"
	SourceDatabase PaymentSource = "database"
)

// ConfirmationQuery holds the query parameters of the confirmation page
type ConfirmationQuery struct {
	LeadID        string
	TransactionID string
	Method        string
	Status        string
}

// Confirmation is what the confirmation page renders
type Confirmation struct {
	State         ConfirmationState   `json:"state"`
	Customer      *model.Customer     `json:"customer,omitempty"`
	Payment       *model.Payment      `json:"payment,omitempty"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod,omitempty"`
	TransactionID string              `json:"transactionId,omitempty"`
	Status        string              `json:"status,omitempty"`
	Source        PaymentSource       `json:"source,omitempty"`
	Ticket        *payment.Ticket     `json:"ticket,omitempty"`
}

// Revalidation tells whether a rejected or pending attendee may upload a new receipt
type Revalidation struct {
	Customer  *model.Customer `json:"customer"`
	Rejected  bool            `json:"rejected"`
	CanUpload bool            `json:"canUpload"`
}

// ConfirmationService resolves the post payment pages
type ConfirmationService interface {
	Resolve(ctx context.Context, q ConfirmationQuery, checkout *session.Checkout) (*Confirmation, error)
	Revalidate(ctx context.Context, customerID string, rejected bool) (*Revalidation, error)
}

type confirmationService struct {
	customerRps   repository.CustomerRepository
	paymentRps    repository.PaymentRepository
	responseCache cache.WebhookResponseCache
	pollInterval  time.Duration
}

func NewConfirmationService(
	customerRps repository.CustomerRepository,
	paymentRps repository.PaymentRepository,
	responseCache cache.WebhookResponseCache,
	pollInterval time.Duration,
) ConfirmationService {
	return &confirmationService{
		customerRps:   customerRps,
		paymentRps:    paymentRps,
		responseCache: responseCache,
		pollInterval:  pollInterval,
	}
}

func (s *confirmationService) Resolve(ctx context.Context, q ConfirmationQuery, checkout *session.Checkout) (*Confirmation, error) {
	leadID, txID := q.LeadID, q.TransactionID
	var sessionMethod string
	if checkout != nil {
		if leadID == "" {
			leadID = checkout.LeadID
		}
		if txID == "" {
			txID = checkout.TransactionID
		}
		sessionMethod = checkout.PaymentMethod
	}

	if leadID == "" {
		return &Confirmation{State: StateNoLeadID}, nil
	}

	customer, err := s.customerRps.FindByID(ctx, leadID)
	if err != nil {
		logrus.Errorf("failed to load customer %s for confirmation - %v", leadID, err)
		return &Confirmation{State: StateCustomerError}, nil
	}

	if customer == nil {
		return &Confirmation{State: StateCustomerError}, nil
	}

	conf := &Confirmation{
		State:         StateResolved,
		Customer:      customer,
		PaymentMethod: payment.FirstMethod(q.Method, sessionMethod),
		TransactionID: txID,
		Status:        q.Status,
	}

	cached, err := s.responseCache.FindByLeadID(ctx, leadID)
	if err != nil {
		logrus.Warnf("failed to read cached webhook response of lead %s - %v", leadID, err)
	}

	if cached != nil && payment.HasData(cached.Body) {
		conf.Source = SourceCache
		if conf.TransactionID == "" {
			conf.TransactionID = cached.TransactionID
		}
		if conf.PaymentMethod == model.PaymentMethodUnknown {
			conf.PaymentMethod = payment.NormalizeMethod(cached.PaymentMethod)
		}
		conf.Ticket = ticketOf(cached.Body)
		return conf, nil
	}

	if txID == "" {
		return conf, nil
	}

	p, err := s.pollPayment(ctx, leadID, txID, conf.PaymentMethod)
	if err != nil {
		logrus.Warnf("no payment found for lead %s transaction %s - %v", leadID, txID, err)
		return conf, nil
	}

	conf.Source = SourceDatabase
	conf.Payment = p
	if conf.PaymentMethod == model.PaymentMethodUnknown {
		conf.PaymentMethod = payment.NormalizeMethod(p.PaymentMethod)
	}
	conf.Ticket = ticketOf(p.Response)
	return conf, nil
}

// pollPayment gives the payment webhook a couple of chances to write the row
func (s *confirmationService) pollPayment(ctx context.Context, customerID, txID string, method model.PaymentMethod) (*model.Payment, error) {
	var found *model.Payment
	op := func() error {
		p, err := s.paymentRps.FindByTransaction(ctx, customerID, txID, method)
		if err != nil {
			return backoff.Permanent(err)
		}

		if p == nil {
			return errPaymentPending
		}
		found = p
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(s.pollInterval), paymentPollRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return nil, err
	}
	return found, nil
}

func (s *confirmationService) Revalidate(ctx context.Context, customerID string, rejected bool) (*Revalidation, error) {
	customer, err := s.customerRps.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if customer == nil {
		return nil, apperrors.NewEntryNotFoundErr(fmt.Sprintf("customer %s doesn't exist", customerID))
	}

	return &Revalidation{
		Customer:  customer,
		Rejected:  rejected || customer.Status == model.StatusRejected,
		CanUpload: customer.Status != model.StatusConfirmed,
	}, nil
}

func ticketOf(response []byte) *payment.Ticket {
	if len(response) == 0 {
		return nil
	}

	t := payment.ExtractTicket(response)
	if t.Empty() {
		return nil
	}
	return &t
}
