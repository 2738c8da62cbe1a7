package model

import "encoding/json"

// PaymentMethod is the channel a purchase was paid through
type PaymentMethod string

const (
	PaymentMethodPayPal   PaymentMethod = "paypal"
	PaymentMethodStripe   PaymentMethod = "stripe"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodUnknown  PaymentMethod = "unknown"
)

// Payment is a row of event.event_payment written by the payment webhooks
type Payment struct {
	ID                  string          `json:"eventPaymentId"`
	CustomerFK          string          `json:"customerFk"`
	Amount              float64         `json:"amount"`
	Currency            string          `json:"currency"`
	PaymentMethod       string          `json:"paymentMethod"`
	Status              string          `json:"status"`
	PayPalTransactionID *string         `json:"paypalTransactionId"`
	StripeTransactionID *string         `json:"stripeTransactionId"`
	OtherTransactionID  *string         `json:"otherTransactionId"`
	Response            json.RawMessage `json:"response"`
}

// TransactionID returns whichever provider transaction id is set
func (p *Payment) TransactionID() string {
	for _, id := range []*string{p.PayPalTransactionID, p.StripeTransactionID, p.OtherTransactionID} {
		if id != nil && *id != "" {
			return *id
		}
	}
	return ""
}
