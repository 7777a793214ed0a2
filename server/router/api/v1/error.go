package v1

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	apierrors "github.com/watayuraType-C/playground-ramen-concierge/server/internal/errors"
	"github.com/watayuraType-C/playground-ramen-concierge/server/internal/observability"
)

type errorResponse struct {
	Code    apierrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
}

// decodeJSON decodes the request body with Echo's serializer. Syntax errors
// become INVALID_JSON and type mismatches BAD_REQUEST.
func decodeJSON(c echo.Context, v any) error {
	err := c.Echo().JSONSerializer.Deserialize(c, v)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apierrors.Wrap(err, apierrors.ErrCodeBadRequest, "入力内容の型が正しくありません。")
	}
	return apierrors.InvalidJSON(err)
}

// HTTPErrorHandler renders every error as {code, message}.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	resp := errorResponse{Code: apierrors.ErrCodeInternal, Message: "予期せぬエラーが発生しました。"}
	status := http.StatusInternalServerError

	var httpErr *echo.HTTPError
	if apiErr, ok := apierrors.As(err); ok {
		status = apierrors.StatusFromError(apiErr)
		resp = errorResponse{Code: apiErr.Code, Message: apiErr.Message}
	} else if errors.As(err, &httpErr) {
		status = httpErr.Code
		resp = errorResponse{Code: codeForStatus(status), Message: http.StatusText(status)}
		if msg, ok := httpErr.Message.(string); ok {
			resp.Message = msg
		}
	}

	if status >= http.StatusInternalServerError {
		observability.Logger(c.Request().Context()).Error("request error",
			slog.String(observability.LogFieldErrorCode, string(resp.Code)),
			slog.String("error", err.Error()),
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, resp)
	}
	if err != nil {
		slog.Error("failed to write error response", slog.String("error", err.Error()))
	}
}

func codeForStatus(status int) apierrors.ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return apierrors.ErrCodeBadRequest
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return apierrors.ErrCodeNotFound
	case http.StatusTooManyRequests:
		return apierrors.ErrCodeRateLimitExceeded
	case http.StatusServiceUnavailable:
		return apierrors.ErrCodeDatabaseUnavailable
	default:
		return apierrors.ErrCodeInternal
	}
}
