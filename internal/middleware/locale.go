package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/lexcongreso/registration/internal/i18n"
)

const langKey = "lang"

// Locale negotiates the language of the request, see i18n.Negotiate
func Locale() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := i18n.Negotiate(c.QueryParam("lang"), c.Request().Header.Get("Accept-Language"))
			c.Set(langKey, lang)
			c.Response().Header().Set("Content-Language", lang)
			return next(c)
		}
	}
}

// Lang returns the negotiated language, the default one if Locale didn't run
func Lang(c echo.Context) string {
	if lang, ok := c.Get(langKey).(string); ok {
		return lang
	}
	return i18n.Default
}
