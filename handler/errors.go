package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/edoabasi/libcatalog/faults"
)

// wireFault is the shape every fault takes on the wire: a category code,
// a human-readable message, and the structured detail fields for that
// category. Callers branch on code and detail, never on the message text.
type wireFault struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

func (h *Handler) logError(r *http.Request, err error) {
	h.logger.PrintError(err, map[string]string{
		"request_method": r.Method,
		"request_url":    r.URL.String(),
	})
}

// faultResponse writes a fault envelope with the given status code.
func (h *Handler) faultResponse(w http.ResponseWriter, r *http.Request, status int, fault wireFault) {
	env := envelope{"fault": fault}
	err := h.encodeJSON(w, status, env, nil)
	if err != nil {
		h.logError(r, err)
		w.WriteHeader(500)
	}
}

// domainFaultResponse maps a typed fault raised by the service layer onto
// its wire representation, carrying the code and detail across verbatim.
// Anything that isn't one of the four client fault categories is an
// unexpected failure and surfaces as a server fault.
func (h *Handler) domainFaultResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound     *faults.BookNotFound
		notAvailable *faults.BookNotAvailable
		invalidInput *faults.InvalidInput
		duplicate    *faults.DuplicateISBN
	)
	switch {
	case errors.As(err, &notFound):
		h.faultResponse(w, r, http.StatusNotFound, wireFault{
			Code:    notFound.Code(),
			Message: notFound.Error(),
			Detail:  notFound,
		})
	case errors.As(err, &notAvailable):
		h.faultResponse(w, r, http.StatusConflict, wireFault{
			Code:    notAvailable.Code(),
			Message: notAvailable.Error(),
			Detail:  notAvailable,
		})
	case errors.As(err, &invalidInput):
		h.faultResponse(w, r, http.StatusUnprocessableEntity, wireFault{
			Code:    invalidInput.Code(),
			Message: invalidInput.Error(),
			Detail:  invalidInput,
		})
	case errors.As(err, &duplicate):
		h.faultResponse(w, r, http.StatusConflict, wireFault{
			Code:    duplicate.Code(),
			Message: duplicate.Error(),
			Detail:  duplicate,
		})
	default:
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.logError(r, err)
	h.faultResponse(w, r, http.StatusInternalServerError, wireFault{
		Code:    faults.CodeInternal,
		Message: "the server encountered a problem and could not process your request",
	})
}

func (h *Handler) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	h.faultResponse(w, r, http.StatusNotFound, wireFault{
		Code:    "Client.NotFound",
		Message: "the requested resource could not be found",
	})
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.faultResponse(w, r, http.StatusMethodNotAllowed, wireFault{
		Code:    "Client.MethodNotAllowed",
		Message: fmt.Sprintf("the %s method is not supported for this resource", r.Method),
	})
}

func (h *Handler) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.faultResponse(w, r, http.StatusBadRequest, wireFault{
		Code:    "Client.BadRequest",
		Message: err.Error(),
	})
}

func (h *Handler) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	h.faultResponse(w, r, http.StatusTooManyRequests, wireFault{
		Code:    "Client.RateLimitExceeded",
		Message: "rate limit exceeded",
	})
}
