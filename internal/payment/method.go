package payment

import (
	"strings"

	"github.com/lexcongreso/registration/internal/model"
)

// NormalizeMethod maps the aliases used across the site and the webhooks to a
// PaymentMethod. Unknown names pass through lower-cased.
func NormalizeMethod(raw string) model.PaymentMethod {
	m := strings.TrimSpace(raw)
	switch m {
	case "":
		return model.PaymentMethodUnknown
	case "creditCard", "credit_card":
		return model.PaymentMethodStripe
	case "bankTransfer", "bank_transfer":
		return model.PaymentMethodTransfer
	default:
		return model.PaymentMethod(strings.ToLower(m))
	}
}

// FirstMethod normalizes the first non blank candidate
func FirstMethod(candidates ...string) model.PaymentMethod {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return NormalizeMethod(c)
		}
	}
	return model.PaymentMethodUnknown
}
