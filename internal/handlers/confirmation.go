package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lexcongreso/registration/internal/middleware"
	"github.com/lexcongreso/registration/internal/service"
	"github.com/lexcongreso/registration/internal/validation"
)

type confirmationQuery struct {
	LeadID        string `query:"lead_id"`
	TransactionID string `query:"transaction_id"`
	Method        string `query:"method"`
	Status        string `query:"status"`
}

type revalidationQuery struct {
	CustomerID string `query:"customer_id" validate:"required"`
	Rejected   bool   `query:"rejected"`
}

// ConfirmationHTTPHandler is http handler for post payment pages
type ConfirmationHTTPHandler struct {
	confirmationSvc service.ConfirmationService
}

// NewConfirmationHTTPHandler builds new ConfirmationHTTPHandler
func NewConfirmationHTTPHandler(confirmationSvc service.ConfirmationService) *ConfirmationHTTPHandler {
	return &ConfirmationHTTPHandler{confirmationSvc: confirmationSvc}
}

// Confirmation resolves confirmation page
// @Summary     Resolve confirmation page
// @Description Returns customer, payment and ticket of the last purchase, ids missing in the query are taken from the checkout session
// @Tags        confirmation
// @Produce     json
// @Param       lead_id        query    string false "Lead id"
// @Param       transaction_id query    string false "Provider transaction id"
// @Param       method         query    string false "Payment method"
// @Param       status         query    string false "Status reported by the provider redirect"
// @Success     200            {object} service.Confirmation
// @Failure     400            {object} echo.HTTPError
// @Failure     500            {object} echo.HTTPError
// @Router      /api/confirmation [get]
func (h *ConfirmationHTTPHandler) Confirmation(c echo.Context) error {
	var q confirmationQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	conf, err := h.confirmationSvc.Resolve(c.Request().Context(), service.ConfirmationQuery{
		LeadID:        q.LeadID,
		TransactionID: q.TransactionID,
		Method:        q.Method,
		Status:        q.Status,
	}, middleware.Checkout(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conf)
}

// Revalidation checks receipt re-upload
// @Summary     Receipt revalidation
// @Description Tells whether the customer may upload a new receipt
// @Tags        confirmation
// @Produce     json
// @Param       customer_id query    string true  "Customer id"
// @Param       rejected    query    bool   false "Receipt was rejected"
// @Success     200         {object} service.Revalidation
// @Failure     400         {object} validation.PayloadError
// @Failure     404         {object} echo.HTTPError
// @Router      /api/revalidation [get]
func (h *ConfirmationHTTPHandler) Revalidation(c echo.Context) error {
	var q revalidationQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := validation.Struct(c, middleware.Lang(c), &q); err != nil {
		return err
	}

	rv, err := h.confirmationSvc.Revalidate(c.Request().Context(), q.CustomerID, q.Rejected)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rv)
}
