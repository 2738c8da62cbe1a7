package pricing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidRole is returned for an academic selection with an unknown role
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidUniversity is returned for an academic selection with an unknown university
	ErrInvalidUniversity = errors.New("invalid university")
	// ErrInvalidPaymentPlan is returned when the payment plan can't be parsed
	ErrInvalidPaymentPlan = errors.New("invalid payment plan")
)

const (
	planSinglePayment = "contado"
	planMsiPrefix     = "msi"
)

var (
	academicMsiOptions  = []int{3}
	paquete11MsiOptions = []int{3, 6, 12}
)

// Selection is what the attendee picked in the registration form
type Selection struct {
	IsAcademic  bool       `json:"isAcademic"`
	University  University `json:"university"`
	Role        Role       `json:"role"`
	IsPaquete11 bool       `json:"isPaquete11"`
	PaymentPlan string     `json:"paymentPlan"`
}

// Quote is the price derived from a Selection
type Quote struct {
	BasePrice          float64  `json:"basePrice"`
	FinalPrice         float64  `json:"finalPrice"`
	Discount           float64  `json:"discount"`
	DiscountPercentage int      `json:"discountPercentage"`
	MsiOptions         []int    `json:"msiOptions"`
	MonthlyAmount      *float64 `json:"monthlyAmount"`
}

// SupportsMsi reports whether the quote can be paid in n interest-free months
func (q Quote) SupportsMsi(n int) bool {
	for _, opt := range q.MsiOptions {
		if opt == n {
			return true
		}
	}
	return false
}

// CalculateAcademicPrice resolves the quote for sel
func CalculateAcademicPrice(sel Selection) (Quote, error) {
	q, err := baseQuote(sel)
	if err != nil {
		return Quote{}, err
	}

	q.Discount = q.BasePrice - q.FinalPrice
	q.DiscountPercentage = discountPercentage(q.BasePrice, q.FinalPrice)

	months, err := ParsePaymentPlan(sel.PaymentPlan)
	if err != nil {
		return Quote{}, err
	}

	if months > 0 && q.SupportsMsi(months) {
		monthly := roundCents(q.FinalPrice / float64(months))
		q.MonthlyAmount = &monthly
	}
	return q, nil
}

func baseQuote(sel Selection) (Quote, error) {
	if !sel.IsAcademic {
		return Quote{BasePrice: ListPrice, FinalPrice: ListPrice, MsiOptions: []int{}}, nil
	}

	if !sel.University.Valid() {
		return Quote{}, fmt.Errorf("%w %q", ErrInvalidUniversity, sel.University)
	}

	if sel.IsPaquete11 {
		return Quote{
			BasePrice:  ListPrice * Paquete11Seats,
			FinalPrice: Paquete11Price,
			MsiOptions: append([]int(nil), paquete11MsiOptions...),
		}, nil
	}

	switch sel.Role {
	case RoleUndergraduate:
		return Quote{BasePrice: ListPrice, FinalPrice: UndergraduatePrice, MsiOptions: append([]int(nil), academicMsiOptions...)}, nil
	case RoleProfessor, RolePostgraduate:
		return Quote{BasePrice: ListPrice, FinalPrice: AcademicPrice, MsiOptions: append([]int(nil), academicMsiOptions...)}, nil
	default:
		return Quote{}, fmt.Errorf("%w %q", ErrInvalidRole, sel.Role)
	}
}

// ParsePaymentPlan returns the number of months requested by plan, 0 means a single payment.
// Both "msi6" and "6" are accepted.
func ParsePaymentPlan(plan string) (int, error) {
	p := strings.ToLower(strings.TrimSpace(plan))
	if p == "" || p == planSinglePayment {
		return 0, nil
	}

	months, err := strconv.Atoi(strings.TrimPrefix(p, planMsiPrefix))
	if err != nil || months <= 0 {
		return 0, fmt.Errorf("%w %q", ErrInvalidPaymentPlan, plan)
	}
	return months, nil
}

func discountPercentage(base, final float64) int {
	if base == 0 {
		return 0
	}
	return int(math.Round((base - final) / base * 100))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
