package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func getKindStatuses() map[string]int {
	return map[string]int{
		errs.KindUnauthorized:           http.StatusUnauthorized,
		errs.KindForbidden:              http.StatusForbidden,
		errs.KindRegionMismatch:         http.StatusForbidden,
		errs.KindNotFound:               http.StatusNotFound,
		errs.KindValidation:             http.StatusBadRequest,
		errs.KindInvalidStatus:          http.StatusBadRequest,
		errs.KindIllegalTransition:      http.StatusConflict,
		errs.KindTerminalState:          http.StatusConflict,
		errs.KindCancellationNotAllowed: http.StatusConflict,
		errs.KindPriceChanged:           http.StatusConflict,
		errs.KindConflict:               http.StatusConflict,
		errs.KindStoreUnavailable:       http.StatusServiceUnavailable,
		errs.KindTimeout:                http.StatusGatewayTimeout,
	}
}

func getStatusKinds() map[int]string {
	return map[int]string{
		http.StatusBadRequest:            errs.KindValidation,
		http.StatusUnauthorized:          errs.KindUnauthorized,
		http.StatusForbidden:             errs.KindForbidden,
		http.StatusNotFound:              errs.KindNotFound,
		http.StatusMethodNotAllowed:      "method_not_allowed",
		http.StatusRequestEntityTooLarge: "payload_too_large",
		http.StatusUnsupportedMediaType:  "unsupported_media_type",
	}
}

// HandleError is the echo HTTPErrorHandler. Classified failures keep their
// message; anything unclassified is logged and hidden behind a generic 500.
func (s *Server) HandleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := s.render(err, c)
	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		s.logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
	}
}

func (s *Server) render(err error, c echo.Context) (int, ErrorResponse) {
	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) {
		return http.StatusBadRequest, ErrorResponse{
			Code:    errs.KindValidation,
			Message: "invalid value for " + bindErr.Field,
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		kind, ok := getStatusKinds()[httpErr.Code]
		if !ok {
			kind = "http_error"
		}
		message := http.StatusText(httpErr.Code)
		if msg, isString := httpErr.Message.(string); isString {
			message = msg
		}
		if httpErr.Internal != nil && httpErr.Code == http.StatusBadRequest {
			message += ": " + httpErr.Internal.Error()
		}
		return httpErr.Code, ErrorResponse{Code: kind, Message: message}
	}

	kind := errs.Kind(err)
	if status, ok := getKindStatuses()[kind]; ok {
		return status, ErrorResponse{Code: kind, Message: err.Error()}
	}

	s.logger.ErrorContext(c.Request().Context(), "unhandled error",
		"error", err,
		"method", c.Request().Method,
		"path", c.Path(),
	)
	return http.StatusInternalServerError, ErrorResponse{Code: errs.KindInternal, Message: "internal server error"}
}
