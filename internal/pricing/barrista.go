package pricing

import (
	"errors"
	"fmt"
)

// ErrUnclassifiable is returned when a phone lookup response matches no rule
var ErrUnclassifiable = errors.New("phone lookup response can't be classified")

// Lists a phone may be found in
const (
	ListGuests    = "invitados"
	ListBarristas = "baristas"
)

// MemberType is the kind of attendee a phone lookup resolved to
type MemberType string

const (
	MemberTypeVip            MemberType = "vip"
	MemberTypeActiveBarrista MemberType = "barrista_activo"
	MemberTypeNewBarrista    MemberType = "barrista_nuevo"
)

// LookupResponse is the body returned by the phone lookup webhook
type LookupResponse struct {
	Valid   *bool   `json:"valid"`
	Founded *bool   `json:"founded,omitempty"`
	List    *string `json:"list,omitempty"`
}

// Classification describes how a member is registered and charged
type Classification struct {
	Blocked            bool       `json:"blocked"`
	Type               MemberType `json:"type,omitempty"`
	Category           string     `json:"category,omitempty"`
	FinalPrice         float64    `json:"finalPrice"`
	RequiresPayment    bool       `json:"requiresPayment"`
	CustomerCategoryID int        `json:"customerCategoryId,omitempty"`
}

var classificationMessages = map[string]map[MemberType]string{
	"es": {
		"":                       "No pudimos validar tu número. Contacta a soporte para continuar con tu registro.",
		MemberTypeVip:            "Eres invitado especial, tu acceso no tiene costo.",
		MemberTypeActiveBarrista: "Eres barrista activo, tu acceso incluye la membresía vigente.",
		MemberTypeNewBarrista:    "Registro como nuevo barrista, incluye la membresía anual.",
	},
	"en": {
		"":                       "We could not validate your number. Contact support to continue your registration.",
		MemberTypeVip:            "You are a special guest, your access is free of charge.",
		MemberTypeActiveBarrista: "You are an active member, your access includes the current membership.",
		MemberTypeNewBarrista:    "Registration as a new member, includes the annual membership.",
	},
}

// Message renders the attendee-facing message in lang, Spanish when lang is unknown
func (c Classification) Message(lang string) string {
	msgs, ok := classificationMessages[lang]
	if !ok {
		msgs = classificationMessages["es"]
	}
	return msgs[c.Type]
}

// ClassifyBarrista maps a phone lookup response to a Classification.
// A blocked classification carries no type and must stop the registration.
func ClassifyBarrista(resp LookupResponse) (Classification, error) {
	if resp.Valid == nil {
		return Classification{}, fmt.Errorf("%w: missing valid flag", ErrUnclassifiable)
	}

	if !*resp.Valid {
		return Classification{Blocked: true}, nil
	}

	founded := resp.Founded != nil && *resp.Founded
	list := ""
	if resp.List != nil {
		list = *resp.List
	}

	switch {
	case founded && list == ListGuests:
		return Classification{
			Type:               MemberTypeVip,
			Category:           "invitado",
			FinalPrice:         GuestPrice,
			RequiresPayment:    false,
			CustomerCategoryID: CategoryGuest,
		}, nil
	case founded && list == ListBarristas:
		return Classification{
			Type:               MemberTypeActiveBarrista,
			Category:           "barrista",
			FinalPrice:         MembershipPrice,
			RequiresPayment:    true,
			CustomerCategoryID: CategoryBarrista,
		}, nil
	case !founded:
		return Classification{
			Type:               MemberTypeNewBarrista,
			Category:           "barrista",
			FinalPrice:         MembershipPrice,
			RequiresPayment:    true,
			CustomerCategoryID: CategoryBarrista,
		}, nil
	default:
		return Classification{}, fmt.Errorf("%w: founded in unknown list %q", ErrUnclassifiable, list)
	}
}
