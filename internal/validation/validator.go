package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	esTranslations "github.com/go-playground/validator/v10/translations/es"
	"github.com/labstack/echo/v4"
)

const (
	tagMobilePhone = "mxphone"
	tagRFC         = "rfc"
)

var (
	mobilePhoneRegexp = regexp.MustCompile(`^\+?\d{10,13}$`)
	rfcRegexp         = regexp.MustCompile(`^[A-ZÑ&]{3,4}\d{6}[A-Z0-9]{3}$`)
)

type violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PayloadError holds every field violation found in a payload
type PayloadError struct {
	violations []violation
}

func (e *PayloadError) Error() string {
	buff := bytes.NewBufferString("")

	for _, err := range e.violations {
		buff.WriteString(err.Message)
		buff.WriteString("\n")
	}

	return buff.String()
}

// Violation appends a violation to the error
func (e *PayloadError) Violation(field, message string) {
	e.violations = append(e.violations, violation{Field: field, Message: message})
}

// Fields lists fields which were violated
func (e *PayloadError) Fields() []string {
	fields := make([]string, 0, len(e.violations))
	for _, v := range e.violations {
		fields = append(fields, v.Field)
	}
	return fields
}

func (e *PayloadError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Errors []violation `json:"errors"`
	}{
		Errors: e.violations,
	})
}

// EchoValidator validates request payloads and translates violations to the request language
type EchoValidator struct {
	validator   *validator.Validate
	translators map[string]ut.Translator
	fallback    string
}

// Echo builds validator with english and spanish translations, fallback is used by Validate
func Echo(fallback string) (*EchoValidator, error) {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation(tagMobilePhone, validateMobilePhone); err != nil {
		return nil, fmt.Errorf("failed to register %s validation - %w", tagMobilePhone, err)
	}

	if err := v.RegisterValidation(tagRFC, validateRFC); err != nil {
		return nil, fmt.Errorf("failed to register %s validation - %w", tagRFC, err)
	}

	enLocale := en.New()
	esLocale := es.New()
	unvTranslator := ut.New(esLocale, esLocale, enLocale)

	enTrans, _ := unvTranslator.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(v, enTrans); err != nil {
		return nil, fmt.Errorf("failed to register en translations - %w", err)
	}

	esTrans, _ := unvTranslator.GetTranslator("es")
	if err := esTranslations.RegisterDefaultTranslations(v, esTrans); err != nil {
		return nil, fmt.Errorf("failed to register es translations - %w", err)
	}

	custom := map[ut.Translator]map[string]string{
		enTrans: {
			tagMobilePhone: "{0} must be a 10 to 13 digit phone number",
			tagRFC:         "{0} must be a valid RFC",
		},
		esTrans: {
			tagMobilePhone: "{0} debe ser un teléfono de 10 a 13 dígitos",
			tagRFC:         "{0} debe ser un RFC válido",
		},
	}

	for trans, msgs := range custom {
		for tag, msg := range msgs {
			if err := v.RegisterTranslation(tag, trans, registerMessage(tag, msg), translateMessage(tag)); err != nil {
				return nil, fmt.Errorf("failed to register %s translation for %s - %w", trans.Locale(), tag, err)
			}
		}
	}

	return &EchoValidator{
		validator:   v,
		translators: map[string]ut.Translator{"en": enTrans, "es": esTrans},
		fallback:    fallback,
	}, nil
}

// Validate validates i and reports violations in fallback language
func (v *EchoValidator) Validate(i any) error {
	return v.ValidateIn(v.fallback, i)
}

// ValidateIn validates i and reports violations in lang
func (v *EchoValidator) ValidateIn(lang string, i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.payloadError(v.translator(lang), ve)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (v *EchoValidator) translator(lang string) ut.Translator {
	if trans, ok := v.translators[lang]; ok {
		return trans
	}
	return v.translators[v.fallback]
}

func (v *EchoValidator) payloadError(trans ut.Translator, ve validator.ValidationErrors) error {
	pldErr := &PayloadError{violations: make([]violation, 0, len(ve))}
	for _, e := range ve {
		pldErr.Violation(e.Field(), e.Translate(trans))
	}
	return pldErr
}

// Struct validates i in the language negotiated for the request
func Struct(c echo.Context, lang string, i any) error {
	if v, ok := c.Echo().Validator.(*EchoValidator); ok {
		return v.ValidateIn(lang, i)
	}
	return c.Validate(i)
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "query", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func validateMobilePhone(fl validator.FieldLevel) bool {
	phone := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(fl.Field().String())
	return mobilePhoneRegexp.MatchString(phone)
}

func validateRFC(fl validator.FieldLevel) bool {
	return rfcRegexp.MatchString(strings.ToUpper(strings.TrimSpace(fl.Field().String())))
}

func registerMessage(tag, msg string) validator.RegisterTranslationsFunc {
	return func(trans ut.Translator) error {
		return trans.Add(tag, msg, true)
	}
}

func translateMessage(tag string) validator.TranslationFunc {
	return func(trans ut.Translator, fe validator.FieldError) string {
		t, err := trans.T(tag, fe.Field())
		if err != nil {
			return fe.Error()
		}
		return t
	}
}
