package errors

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform failure body. Successful responses use the same
// shape with success=true and a resource key.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HTTPErrorHandler renders every error as the {success:false, message}
// envelope. Internal detail never reaches the response body.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"

	if appErr := AsError(err); appErr != nil {
		status = HTTPStatus(appErr.Kind)
		message = appErr.Message
		if appErr.Kind == KindUnexpected && appErr.Err != nil {
			log.Printf("unexpected error: %v", appErr.Err)
		}
	} else if httpErr, ok := err.(*echo.HTTPError); ok {
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	} else {
		log.Printf("unhandled error: %v", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, Envelope{Success: false, Message: message})
}
