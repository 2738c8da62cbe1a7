package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lexcongreso/registration/internal/middleware"
	"github.com/lexcongreso/registration/internal/model"
	"github.com/lexcongreso/registration/internal/pricing"
	"github.com/lexcongreso/registration/internal/service"
	"github.com/lexcongreso/registration/internal/validation"
)

// Registration forms
const (
	FormGeneral      = "general"
	FormAcademic     = "academic"
	FormMembership   = "membership"
	FormActiveMember = "active_member"
)

type newLead struct {
	Form        string       `json:"form" validate:"required,oneof=general academic membership active_member"`
	FirstName   string       `json:"firstName" validate:"required,max=100"`
	LastName    string       `json:"lastName" validate:"required,max=100"`
	Email       string       `json:"email" validate:"required,email,max=255"`
	MobilePhone string       `json:"mobilePhone" validate:"required,mxphone"`
	Role        pricing.Role `json:"role" validate:"required_if=Form academic,omitempty,oneof=profesor posgrado licenciatura"`
	Invoice     bool         `json:"invoice"`
	RFC         *string      `json:"rfc" validate:"omitempty,rfc"`
}

func (l *newLead) policy() service.LeadPolicy {
	p := service.LeadPolicy{RequireRFC: l.Invoice}

	switch l.Form {
	case FormAcademic:
		category := l.Role.Category()
		p.CategoryID = &category
	case FormMembership:
		p.RequirePhoneValidation = true
	case FormActiveMember:
		p.RequirePhoneValidation = true
		p.RequireRFC = true
	}
	return p
}

type submission struct {
	CustomerID     string          `json:"customerId"`
	Created        bool            `json:"created"`
	Classification *classification `json:"classification,omitempty"`
}

// LeadHTTPHandler is http handler for lead endpoint
type LeadHTTPHandler struct {
	leadSvc service.LeadService
}

// NewLeadHTTPHandler builds new LeadHTTPHandler
func NewLeadHTTPHandler(leadSvc service.LeadService) *LeadHTTPHandler {
	return &LeadHTTPHandler{leadSvc: leadSvc}
}

// Submit submits lead
// @Summary     Submit registration lead
// @Description Creates lead or refreshes the one registered with the same email while it is still a lead
// @Tags        leads
// @Accept      json
// @Produce     json
// @Param       lang    query    string  false "Response language" Enums(es, en)
// @Param       newLead body     newLead true  "Registration form data"
// @Success     200     {object} submission
// @Failure     400     {object} validation.PayloadError
// @Failure     403     {object} errors.LocalizedBusinessErr
// @Failure     409     {object} errors.LocalizedBusinessErr
// @Failure     502     {object} echo.HTTPError
// @Failure     500     {object} echo.HTTPError
// @Router      /api/leads [post]
func (h *LeadHTTPHandler) Submit(c echo.Context) error {
	var nl newLead
	if err := c.Bind(&nl); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lang := middleware.Lang(c)
	if err := validation.Struct(c, lang, &nl); err != nil {
		return err
	}

	sub, err := h.leadSvc.Submit(c.Request().Context(), model.Lead{
		FirstName:   nl.FirstName,
		LastName:    nl.LastName,
		Email:       nl.Email,
		MobilePhone: nl.MobilePhone,
		RFC:         nl.RFC,
	}, nl.policy())
	if err != nil {
		return err
	}

	res := &submission{CustomerID: sub.CustomerID, Created: sub.Created}
	if sub.Classification != nil {
		res.Classification = newClassification(*sub.Classification, lang)
	}
	return c.JSON(http.StatusOK, res)
}

// PricingHTTPHandler is http handler for pricing endpoint
type PricingHTTPHandler struct {
	checkoutSvc service.CheckoutService
}

// NewPricingHTTPHandler builds new PricingHTTPHandler
func NewPricingHTTPHandler(checkoutSvc service.CheckoutService) *PricingHTTPHandler {
	return &PricingHTTPHandler{checkoutSvc: checkoutSvc}
}

// Academic quotes academic price
// @Summary     Academic price quote
// @Description Calculates academic or Paquete 11 price, discount and interest-free installments
// @Tags        pricing
// @Accept      json
// @Produce     json
// @Param       selection body     pricing.Selection true "Academic selection"
// @Success     200       {object} pricing.Quote
// @Failure     400       {object} echo.HTTPError
// @Failure     422       {object} echo.HTTPError
// @Router      /api/pricing/academic [post]
func (h *PricingHTTPHandler) Academic(c echo.Context) error {
	var sel pricing.Selection
	if err := c.Bind(&sel); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quote, err := h.checkoutSvc.Quote(sel)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &quote)
}

type phoneValidation struct {
	MobilePhone string `json:"mobilePhone" validate:"required,mxphone"`
}

type classification struct {
	pricing.Classification
	Message string `json:"message"`
}

func newClassification(cls pricing.Classification, lang string) *classification {
	return &classification{Classification: cls, Message: cls.Message(lang)}
}

// BarristaHTTPHandler is http handler for barrista endpoint
type BarristaHTTPHandler struct {
	barristaSvc service.BarristaService
}

// NewBarristaHTTPHandler builds new BarristaHTTPHandler
func NewBarristaHTTPHandler(barristaSvc service.BarristaService) *BarristaHTTPHandler {
	return &BarristaHTTPHandler{barristaSvc: barristaSvc}
}

// Validate validates member phone
// @Summary     Validate member phone
// @Description Looks the phone up in the association lists and classifies the attendee
// @Tags        barristas
// @Accept      json
// @Produce     json
// @Param       lang            query    string          false "Response language" Enums(es, en)
// @Param       phoneValidation body     phoneValidation true  "Phone to validate"
// @Success     200             {object} classification
// @Failure     400             {object} validation.PayloadError
// @Failure     422             {object} echo.HTTPError
// @Failure     502             {object} echo.HTTPError
// @Router      /api/barristas/validate [post]
func (h *BarristaHTTPHandler) Validate(c echo.Context) error {
	var pv phoneValidation
	if err := c.Bind(&pv); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lang := middleware.Lang(c)
	if err := validation.Struct(c, lang, &pv); err != nil {
		return err
	}

	cls, err := h.barristaSvc.ValidatePhone(c.Request().Context(), pv.MobilePhone)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newClassification(cls, lang))
}
