// Package response renders JSON envelopes and errors for the HTTP API.
package response

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	Status  string                `json:"status"`
	Kind    gerr.Kind             `json:"kind"`
	Message string                `json:"message"`
	Errors  []gerr.FieldViolation `json:"errors,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// ErrRender maps err to its client facing form. Internal errors and errors
// outside the gerr taxonomy never expose their text.
func ErrRender(err error) *ErrResponse {
	kind := gerr.KindOf(err)
	code := gerr.HTTPStatus(kind)

	resp := &ErrResponse{
		Err:            err,
		HTTPStatusCode: code,
		Status:         statusFail,
		Kind:           kind,
		Message:        gerr.ErrInternal.Message,
	}
	if code >= http.StatusInternalServerError {
		resp.Status = statusError
	}

	var e *gerr.Error
	if errors.As(err, &e) && kind != gerr.KindInternal {
		resp.Message = e.Message
		resp.Errors = e.Fields
	}
	return resp
}

// ErrInvalidRequest is used when the request body can't be decoded.
func ErrInvalidRequest(err error) *ErrResponse {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		Status:         statusFail,
		Kind:           gerr.KindValidationFailed,
		Message:        "Invalid request body",
	}
}

// Error writes err and logs it when it is a server side failure.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrRender(err)
	if resp.HTTPStatusCode >= http.StatusInternalServerError {
		slog.Default().ErrorContext(r.Context(), "request failed",
			slog.String("err", err.Error()),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
	Render(w, r, resp)
}

// Render writes v and logs encoding failures.
func Render(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		slog.Default().ErrorContext(r.Context(), "can't render response",
			slog.String("err", err.Error()),
		)
	}
}

// DataResponse is the success envelope.
type DataResponse struct {
	HTTPStatusCode int `json:"-"`

	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (d *DataResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, d.HTTPStatusCode)
	return nil
}

func OK(w http.ResponseWriter, r *http.Request, code int, message string, data any) {
	Render(w, r, &DataResponse{
		HTTPStatusCode: code,
		Status:         statusSuccess,
		Message:        message,
		Data:           data,
	})
}
