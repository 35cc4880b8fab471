package errresponse

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrResponse renderer type for handling all sorts of errors.
//
// Message is what the client shows; ErrorText carries the low-level
// error for debugging and is only set on 4xx responses caused by the
// request itself.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	Success   *bool  `json:"success,omitempty"` // set on the login/register endpoints
	Message   string `json:"message"`
	ErrorText string `json:"error,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		Message:        "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		Message:        "Error rendering response.",
		ErrorText:      err.Error(),
	}
}

func ErrInternal(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		Message:        "Internal server error.",
	}
}

// ErrAuthFailed is the {success:false, message} body of the login and
// register endpoints.
func ErrAuthFailed(status int, message string) render.Renderer {
	success := false

	return &ErrResponse{
		HTTPStatusCode: status,
		Success:        &success,
		Message:        message,
	}
}

var (
	ErrNotFound     = &ErrResponse{HTTPStatusCode: http.StatusNotFound, Message: "Resource not found."}
	ErrNewsNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, Message: "News not found."}
	ErrUnauthorized = &ErrResponse{HTTPStatusCode: http.StatusUnauthorized, Message: "Unauthorized."}
)
