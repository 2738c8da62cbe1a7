package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/lexcongreso/registration/internal/session"
	"github.com/sirupsen/logrus"
)

const (
	// SessionHeader carries the checkout session when cookies are not available
	SessionHeader = "X-Checkout-Session"
	checkoutKey   = "checkout"
)

// CheckoutSession reads the optional checkout session from the Authorization or
// X-Checkout-Session header, then from cookie. Invalid sessions are ignored.
func CheckoutSession(validator *session.Validator, cookie string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := rawSession(c, cookie)
			if raw == "" {
				return next(c)
			}

			checkout, err := validator.Verify(raw)
			if err != nil {
				logrus.Debugf("ignoring invalid checkout session - %v", err)
				return next(c)
			}

			c.Set(checkoutKey, &checkout)
			return next(c)
		}
	}
}

// Checkout returns session verified by CheckoutSession, nil if there is none
func Checkout(c echo.Context) *session.Checkout {
	checkout, _ := c.Get(checkoutKey).(*session.Checkout)
	return checkout
}

func rawSession(c echo.Context, cookie string) string {
	hdrSplit := strings.Split(c.Request().Header.Get(echo.HeaderAuthorization), " ")
	if len(hdrSplit) == 2 && strings.EqualFold(hdrSplit[0], "Bearer") {
		return hdrSplit[1]
	}

	if hdr := c.Request().Header.Get(SessionHeader); hdr != "" {
		return hdr
	}

	if ck, err := c.Cookie(cookie); err == nil {
		return ck.Value
	}
	return ""
}
