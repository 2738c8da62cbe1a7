// Package session signs the checkout session carried from the registration
// page to the confirmation page.
package session

import (
	"crypto"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Checkout is what the confirmation page needs to know about the last purchase
type Checkout struct {
	LeadID          string  `json:"lastLeadId"`
	TransactionID   string  `json:"lastTransactionId,omitempty"`
	PaymentMethod   string  `json:"lastPaymentMethod,omitempty"`
	Amount          float64 `json:"lastPaymentAmount,omitempty"`
	IsAcademic      bool    `json:"isAcademicPurchase,omitempty"`
	StripeAccessURL string  `json:"stripeAccessUrl,omitempty"`
}

// Claims are JWT claims of a checkout session
type Claims struct {
	jwt.RegisteredClaims
	Checkout
}

// Token represents signed checkout session and unix expires at
type Token struct {
	Signed    string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Issuer signs checkout sessions
type Issuer struct {
	issuer     string
	method     jwt.SigningMethod
	timeToLive time.Duration
	privateKey crypto.PrivateKey
}

// NewIssuer builds Issuer
func NewIssuer(issuer string, method jwt.SigningMethod, ttl time.Duration, key crypto.PrivateKey) *Issuer {
	return &Issuer{
		issuer:     issuer,
		method:     method,
		timeToLive: ttl,
		privateKey: key,
	}
}

// Sign issues a session for checkout, subject is the lead id
func (i *Issuer) Sign(checkout Checkout, issuedAt time.Time) (*Token, error) {
	expiresAt := issuedAt.Add(i.timeToLive)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Subject:   checkout.LeadID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
		Checkout: checkout,
	}

	signed, err := jwt.NewWithClaims(i.method, claims).SignedString(i.privateKey)
	if err != nil {
		return nil, err
	}

	return &Token{Signed: signed, ExpiresAt: expiresAt.Unix()}, nil
}

// Validator verifies checkout sessions
type Validator struct {
	method    jwt.SigningMethod
	publicKey crypto.PublicKey
}

// NewValidator builds Validator
func NewValidator(method jwt.SigningMethod, key crypto.PublicKey) *Validator {
	return &Validator{publicKey: key, method: method}
}

// Verify parses raw token and returns the checkout it carries
func (v *Validator) Verify(rawToken string) (Checkout, error) {
	var claims Claims
	if _, err := jwt.ParseWithClaims(rawToken, &claims, v.keyFunc); err != nil {
		return Checkout{}, err
	}
	return claims.Checkout, nil
}

func (v *Validator) keyFunc(token *jwt.Token) (any, error) {
	if token.Method.Alg() != v.method.Alg() {
		return nil, errors.New("failed to verify signing algorithm")
	}
	return v.publicKey, nil
}
