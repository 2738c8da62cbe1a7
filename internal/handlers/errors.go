package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apperrors "github.com/lexcongreso/registration/internal/errors"
	"github.com/lexcongreso/registration/internal/middleware"
	"github.com/lexcongreso/registration/internal/payment"
	"github.com/lexcongreso/registration/internal/pricing"
	"github.com/lexcongreso/registration/internal/validation"
	"github.com/lexcongreso/registration/internal/webhook"
	"github.com/sirupsen/logrus"
)

var businessStatus = map[string]int{
	apperrors.CodeAlreadyRegistered: http.StatusConflict,
	apperrors.CodePhoneBlocked:      http.StatusForbidden,
}

var unprocessable = []error{
	pricing.ErrInvalidRole,
	pricing.ErrInvalidUniversity,
	pricing.ErrInvalidPaymentPlan,
	pricing.ErrUnclassifiable,
	payment.ErrUnknownOption,
	payment.ErrUnknownMethod,
	payment.ErrMethodNotAllowed,
	payment.ErrQuoteRequired,
}

var providerMessages = map[string]map[webhook.ErrorKind]string{
	"es": {
		webhook.KindCaptureTimeout: "El pago tardó demasiado en confirmarse. Revisa tu cuenta antes de intentarlo de nuevo.",
		webhook.KindCancelled:      "Cancelaste el pago. Puedes intentarlo de nuevo cuando quieras.",
		webhook.KindDeclined:       "Tu pago fue rechazado. Intenta con otro método de pago.",
		webhook.KindProvider:       "El proveedor de pagos no pudo procesar tu pago. Inténtalo de nuevo.",
	},
	"en": {
		webhook.KindCaptureTimeout: "The payment took too long to be confirmed. Check your account before trying again.",
		webhook.KindCancelled:      "You cancelled the payment. You can try again whenever you want.",
		webhook.KindDeclined:       "Your payment was declined. Try another payment method.",
		webhook.KindProvider:       "The payment provider could not process your payment. Please try again.",
	},
}

type providerFailure struct {
	Kind    webhook.ErrorKind `json:"kind"`
	Message string            `json:"message"`
	Detail  string            `json:"detail,omitempty"`
}

// HTTPErrorHandler logs err and answers with the status and body matching its kind
func HTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		status, body := errorResponse(err, middleware.Lang(c))

		entry := logrus.WithFields(logrus.Fields{
			"method": c.Request().Method,
			"path":   c.Path(),
			"status": status,
		})
		if status >= http.StatusInternalServerError {
			entry.Errorf("request failed - %v", err)
		} else {
			entry.Infof("request rejected - %v", err)
		}

		if body == nil {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		if c.Response().Committed {
			return
		}

		if err := c.JSON(status, body); err != nil {
			logrus.Errorf("failed to write error response - %v", err)
		}
	}
}

// errorResponse maps err to status and body, nil body leaves it to echo
func errorResponse(err error, lang string) (int, any) {
	var pldErr *validation.PayloadError
	if errors.As(err, &pldErr) {
		return http.StatusBadRequest, pldErr
	}

	var bErr *apperrors.BusinessErr
	if errors.As(err, &bErr) {
		status, ok := businessStatus[bErr.Code()]
		if !ok {
			status = http.StatusUnprocessableEntity
		}
		return status, bErr.Localize(lang)
	}

	var nfErr *apperrors.EntryNotFoundErr
	if errors.As(err, &nfErr) {
		return http.StatusNotFound, echo.NewHTTPError(http.StatusNotFound, nfErr.Error())
	}

	var pErr *webhook.ProviderError
	if errors.As(err, &pErr) {
		msgs, ok := providerMessages[lang]
		if !ok {
			msgs = providerMessages["es"]
		}
		return http.StatusPaymentRequired, &providerFailure{Kind: pErr.Kind, Message: msgs[pErr.Kind], Detail: pErr.Message}
	}

	if errors.Is(err, webhook.ErrUnavailable) {
		return http.StatusBadGateway, echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	for _, target := range unprocessable {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, nil
	}
	return http.StatusInternalServerError, nil
}
