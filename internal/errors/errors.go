package errors

import (
	"encoding/json"
	"fmt"
)

// Business error codes
const (
	CodeAlreadyRegistered = "already_registered"
	CodePhoneBlocked      = "phone_blocked"
	CodeInvalidSelection  = "invalid_selection"
	CodeRFCRequired       = "rfc_required"
	CodeMethodNotAllowed  = "method_not_allowed"
)

var businessMessages = map[string]map[string]string{
	"es": {
		CodeAlreadyRegistered: "Este correo ya tiene un registro procesado. Si necesitas ayuda contacta a soporte.",
		CodePhoneBlocked:      "No pudimos validar tu número. Contacta a soporte para continuar con tu registro.",
		CodeInvalidSelection:  "La selección no es válida.",
		CodeRFCRequired:       "El RFC es obligatorio y debe tener 12 o 13 caracteres.",
		CodeMethodNotAllowed:  "Este método de pago no está disponible para la opción elegida.",
	},
	"en": {
		CodeAlreadyRegistered: "This email already has a processed registration. Contact support if you need help.",
		CodePhoneBlocked:      "We could not validate your number. Contact support to continue your registration.",
		CodeInvalidSelection:  "The selection is not valid.",
		CodeRFCRequired:       "RFC is required and must be 12 or 13 characters long.",
		CodeMethodNotAllowed:  "This payment method is not available for the selected option.",
	},
}

// BusinessErr is a field level error caused by a business rule
type BusinessErr struct {
	target string
	code   string
	detail string
}

func (e *BusinessErr) Error() string {
	if e.detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.target, e.code, e.detail)
	}
	return fmt.Sprintf("%s: %s", e.target, e.code)
}

// Target is the field the error relates to
func (e *BusinessErr) Target() string {
	return e.target
}

// Code identifies the violated rule
func (e *BusinessErr) Code() string {
	return e.code
}

// Localize renders error for the given language, spanish is the fallback
func (e *BusinessErr) Localize(lang string) *LocalizedBusinessErr {
	msgs, ok := businessMessages[lang]
	if !ok {
		msgs = businessMessages["es"]
	}

	msg, ok := msgs[e.code]
	if !ok {
		msg = e.code
	}

	return &LocalizedBusinessErr{Target: e.target, Code: e.code, Message: msg, Detail: e.detail}
}

func (e *BusinessErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Localize("es"))
}

// LocalizedBusinessErr is the wire form of BusinessErr
type LocalizedBusinessErr struct {
	Target  string `json:"target"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func NewBusinessErr(target string, code string) error {
	return &BusinessErr{
		target: target,
		code:   code,
	}
}

func NewBusinessErrWithDetail(target string, code string, detail string) error {
	return &BusinessErr{
		target: target,
		code:   code,
		detail: detail,
	}
}

type EntryNotFoundErr struct {
	message string
}

func (e *EntryNotFoundErr) Error() string {
	return e.message
}

func NewEntryNotFoundErr(msg string) *EntryNotFoundErr {
	return &EntryNotFoundErr{message: msg}
}
