// Package payment decides how a purchase is paid and reads back what the
// payment webhooks answered.
package payment

import (
	"errors"
	"fmt"

	"github.com/lexcongreso/registration/internal/model"
	"github.com/lexcongreso/registration/internal/pricing"
)

var (
	// ErrUnknownOption is returned for a registration option outside 1..4
	ErrUnknownOption = errors.New("unknown registration option")
	// ErrUnknownMethod is returned for a payment method other than paypal, stripe or transfer
	ErrUnknownMethod = errors.New("unknown payment method")
	// ErrMethodNotAllowed is returned when the option can't be paid with the method
	ErrMethodNotAllowed = errors.New("payment method not allowed for option")
	// ErrQuoteRequired is returned when an academic purchase has no quote
	ErrQuoteRequired = errors.New("academic purchase requires a price quote")
)

// Option is the registration path chosen on the site
type Option int

const (
	OptionGeneral Option = iota + 1
	OptionAcademic
	OptionMembership
	OptionActiveMember
)

// Widget is the payment component the site has to mount
type Widget string

const (
	WidgetPayPal          Widget = "paypal_buttons"
	WidgetStripe          Widget = "stripe_checkout"
	WidgetReceiptUpload   Widget = "receipt_upload"
	WidgetMembershipProof Widget = "membership_proof"
)

// Request describes a purchase to dispatch
type Request struct {
	Option        Option              `json:"selectedOption"`
	Method        model.PaymentMethod `json:"selectedMethod"`
	Role          pricing.Role        `json:"role"`
	ReceiptUpload bool                `json:"receiptUpload"`
	Quote         *pricing.Quote      `json:"academicPriceData"`
}

// Instruction tells the site and the payment webhook what to charge
type Instruction struct {
	Widget   Widget              `json:"widget"`
	Method   model.PaymentMethod `json:"method"`
	PriceKey string              `json:"priceKey,omitempty"`
	Amount   float64             `json:"amount"`
	Currency string              `json:"currency"`
}

// Dispatch resolves the widget, price key and amount for req
func Dispatch(req Request) (Instruction, error) {
	widget, err := widgetFor(req.Option, req.Method)
	if err != nil {
		return Instruction{}, err
	}

	ins := Instruction{Widget: widget, Method: req.Method, Currency: pricing.Currency}

	switch req.Option {
	case OptionGeneral:
		ins.PriceKey = pricing.PriceKeyList
		ins.Amount = pricing.ListPrice
		if req.Quote != nil {
			ins.Amount = req.Quote.FinalPrice
		}
	case OptionAcademic:
		if req.Quote == nil {
			return Instruction{}, ErrQuoteRequired
		}
		ins.PriceKey = pricing.PriceKeyAcademic
		if req.Role == pricing.RoleUndergraduate && (req.ReceiptUpload || req.Method == model.PaymentMethodTransfer) {
			ins.PriceKey = pricing.PriceKeyUndergraduate
		}
		ins.Amount = req.Quote.FinalPrice
	case OptionMembership:
		ins.PriceKey = pricing.PriceKeyMembership
		ins.Amount = pricing.MembershipPrice
	case OptionActiveMember:
		ins.Amount = 0
	}

	return ins, nil
}

func widgetFor(opt Option, method model.PaymentMethod) (Widget, error) {
	if opt < OptionGeneral || opt > OptionActiveMember {
		return "", fmt.Errorf("%w %d", ErrUnknownOption, opt)
	}

	if opt == OptionActiveMember {
		if method != model.PaymentMethodTransfer {
			return "", fmt.Errorf("%w: option %d only accepts membership proof, got %q", ErrMethodNotAllowed, opt, method)
		}
		return WidgetMembershipProof, nil
	}

	switch method {
	case model.PaymentMethodPayPal:
		return WidgetPayPal, nil
	case model.PaymentMethodStripe:
		return WidgetStripe, nil
	case model.PaymentMethodTransfer:
		return WidgetReceiptUpload, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownMethod, method)
	}
}
