package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lexcongreso/registration/internal/middleware"
	"github.com/lexcongreso/registration/internal/payment"
	"github.com/lexcongreso/registration/internal/pricing"
	"github.com/lexcongreso/registration/internal/service"
	"github.com/lexcongreso/registration/internal/session"
	"github.com/lexcongreso/registration/internal/validation"
)

const (
	mimeBytesNumber = 512
	maxReceiptSize  = 10 << 20
)

// PaymentCfg configures the checkout session cookie
type PaymentCfg struct {
	Https         bool
	SessionCookie string
}

type purchase struct {
	Option   payment.Option     `json:"selectedOption" validate:"required,min=1,max=4"`
	Academic *pricing.Selection `json:"academicSelection"`
}

func (p *purchase) toService(leadID string) service.Purchase {
	return service.Purchase{LeadID: leadID, Option: p.Option, Selection: p.Academic}
}

type dispatch struct {
	purchase
	Method        string `json:"selectedMethod" validate:"required"`
	ReceiptUpload bool   `json:"receiptUpload"`
}

type paypalCapture struct {
	purchase
	LeadID  string `json:"leadId" validate:"required,uuid"`
	OrderID string `json:"orderId" validate:"required"`
}

type stripeCheckout struct {
	purchase
	LeadID string `json:"leadId" validate:"required,uuid"`
}

type receiptUpload struct {
	LeadID      string             `form:"leadId" validate:"required,uuid"`
	Option      payment.Option     `form:"selectedOption" validate:"required,min=1,max=4"`
	IsAcademic  bool               `form:"isAcademic"`
	University  pricing.University `form:"university"`
	Role        pricing.Role       `form:"role"`
	IsPaquete11 bool               `form:"isPaquete11"`
}

func (r *receiptUpload) toService() service.Purchase {
	p := service.Purchase{LeadID: r.LeadID, Option: r.Option}
	if r.IsAcademic || r.IsPaquete11 {
		p.Selection = &pricing.Selection{IsAcademic: true, University: r.University, Role: r.Role, IsPaquete11: r.IsPaquete11}
	}
	return p
}

// PaymentHTTPHandler is http handler for payments endpoint
type PaymentHTTPHandler struct {
	checkoutSvc       service.CheckoutService
	cfg               PaymentCfg
	validReceiptTypes map[string]struct{}
}

// NewPaymentHTTPHandler builds new PaymentHTTPHandler
func NewPaymentHTTPHandler(checkoutSvc service.CheckoutService, cfg PaymentCfg) *PaymentHTTPHandler {
	return &PaymentHTTPHandler{
		checkoutSvc: checkoutSvc,
		cfg:         cfg,
		validReceiptTypes: map[string]struct{}{
			"application/pdf": {},
			"image/jpeg":      {},
			"image/png":       {},
			"image/webp":      {},
		},
	}
}

// Dispatch resolves payment widget
// @Summary     Resolve payment widget
// @Description Returns the widget to mount, the price key and the amount for the selected option and method
// @Tags        payments
// @Accept      json
// @Produce     json
// @Param       dispatch body     dispatch true "Selected option and method"
// @Success     200      {object} payment.Instruction
// @Failure     400      {object} validation.PayloadError
// @Failure     422      {object} echo.HTTPError
// @Router      /api/payments/dispatch [post]
func (h *PaymentHTTPHandler) Dispatch(c echo.Context) error {
	var d dispatch
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := validation.Struct(c, middleware.Lang(c), &d); err != nil {
		return err
	}

	ins, err := h.checkoutSvc.Dispatch(d.toService(""), payment.NormalizeMethod(d.Method), d.ReceiptUpload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &ins)
}

// CapturePayPal captures PayPal order
// @Summary     Capture PayPal order
// @Description Captures an order approved in the PayPal window and issues the checkout session
// @Tags        payments
// @Accept      json
// @Produce     json
// @Param       paypalCapture body     paypalCapture true "Approved order"
// @Success     200           {object} service.CheckoutResult
// @Failure     400           {object} validation.PayloadError
// @Failure     402           {object} providerFailure
// @Failure     404           {object} echo.HTTPError
// @Failure     422           {object} echo.HTTPError
// @Failure     502           {object} echo.HTTPError
// @Router      /api/payments/paypal/capture [post]
func (h *PaymentHTTPHandler) CapturePayPal(c echo.Context) error {
	var pc paypalCapture
	if err := c.Bind(&pc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := validation.Struct(c, middleware.Lang(c), &pc); err != nil {
		return err
	}

	res, err := h.checkoutSvc.CapturePayPal(c.Request().Context(), pc.toService(pc.LeadID), pc.OrderID)
	if err != nil {
		return err
	}
	return h.checkout(c, res)
}

// StartStripeCheckout opens Stripe checkout
// @Summary     Start Stripe checkout
// @Description Opens a Stripe Checkout session and returns its url
// @Tags        payments
// @Accept      json
// @Produce     json
// @Param       stripeCheckout body     stripeCheckout true "Purchase"
// @Success     200            {object} service.CheckoutResult
// @Failure     400            {object} validation.PayloadError
// @Failure     402            {object} providerFailure
// @Failure     404            {object} echo.HTTPError
// @Failure     422            {object} echo.HTTPError
// @Failure     502            {object} echo.HTTPError
// @Router      /api/payments/stripe/checkout [post]
func (h *PaymentHTTPHandler) StartStripeCheckout(c echo.Context) error {
	var sc stripeCheckout
	if err := c.Bind(&sc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := validation.Struct(c, middleware.Lang(c), &sc); err != nil {
		return err
	}

	res, err := h.checkoutSvc.StartStripeCheckout(c.Request().Context(), sc.toService(sc.LeadID))
	if err != nil {
		return err
	}
	return h.checkout(c, res)
}

// UploadReceipt uploads bank receipt
// @Summary     Upload bank receipt
// @Description Uploads a bank transfer receipt or a membership proof for review
// @Tags        payments
// @Accept      mpfd
// @Produce     json
// @Param       leadId         formData string true  "Lead id" Format(uuid)
// @Param       selectedOption formData int    true  "Registration option" Enums(1, 2, 3, 4)
// @Param       isAcademic     formData bool   false "Academic purchase"
// @Param       university     formData string false "University" Enums(UNAM, UVM, UAM)
// @Param       role           formData string false "Academic role" Enums(profesor, posgrado, licenciatura)
// @Param       isPaquete11    formData bool   false "Paquete 11 purchase"
// @Param       receipt        formData file   true  "Receipt, pdf or image"
// @Success     200            {object} service.CheckoutResult
// @Failure     400            {object} echo.HTTPError
// @Failure     402            {object} providerFailure
// @Failure     404            {object} echo.HTTPError
// @Failure     502            {object} echo.HTTPError
// @Router      /api/payments/transfer/receipt [post]
func (h *PaymentHTTPHandler) UploadReceipt(c echo.Context) error {
	var ru receiptUpload
	if err := c.Bind(&ru); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := validation.Struct(c, middleware.Lang(c), &ru); err != nil {
		return err
	}

	fileHdr, err := c.FormFile("receipt")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if fileHdr.Size > maxReceiptSize {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("receipt exceeds %d bytes", maxReceiptSize))
	}

	file, err := fileHdr.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("failed to load file content - %v", err))
	}
	defer file.Close()

	mimeBuff := make([]byte, mimeBytesNumber)
	n, err := file.Read(mimeBuff)
	if err != nil && err != io.EOF {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	mimeType := http.DetectContentType(mimeBuff[:n])
	if !h.isMimeTypeAllowed(mimeType) {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("MIME type %s is not allowed", mimeType))
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	res, err := h.checkoutSvc.SubmitReceipt(c.Request().Context(), ru.toService(), service.ReceiptFile{
		Name:        fileHdr.Filename,
		ContentType: mimeType,
		Content:     file,
	})
	if err != nil {
		return err
	}
	return h.checkout(c, res)
}

func (h *PaymentHTTPHandler) checkout(c echo.Context, res *service.CheckoutResult) error {
	c.SetCookie(h.sessionCookie(res.Session))
	return c.JSON(http.StatusOK, res)
}

func (h *PaymentHTTPHandler) sessionCookie(token *session.Token) *http.Cookie {
	return &http.Cookie{
		Name:     h.cfg.SessionCookie,
		Value:    token.Signed,
		Path:     "/api",
		MaxAge:   int(time.Until(time.Unix(token.ExpiresAt, 0)).Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Https,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *PaymentHTTPHandler) isMimeTypeAllowed(mime string) bool {
	if _, ok := h.validReceiptTypes[mime]; ok {
		return true
	}
	return false
}
