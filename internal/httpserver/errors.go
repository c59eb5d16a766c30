package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/validation"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

const msgInvalidBody = "Invalid request body"

// ErrorHandler renders every error as a failed envelope. Anything that is not
// an *echo.HTTPError becomes a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		case nil:
			msg = http.StatusText(code)
		default:
			msg = fmt.Sprint(m)
		}
	} else {
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", code, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, transport.Fail(msg))
	}
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("error_response_failed", "error", err)
	}
}

// violations returns the joined field messages of a validation failure.
func violations(err error) string {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return msgInvalidBody
}

// bindMessage names the offending field when the body decoded to the wrong
// type, e.g. a fractional quantity.
func bindMessage(err error) string {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		field := ute.Field
		if i := strings.LastIndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		if m, ok := validation.FieldMessage(field); ok {
			return m
		}
	}
	return msgInvalidBody
}
