package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cimillas/event-lodging/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeValidation         = "validation_error"
	codeInvalidID          = "invalid_id"
	codeHotelNameRequired  = "hotel_name_required"
	codeRoomNameRequired   = "room_name_required"
	codeInvalidCapacity    = "invalid_capacity"
	codeRoomAlreadyExists  = "room_already_exists"
	codeRoomFull           = "room_full"
	codeAlreadyBooked      = "already_booked"
	codeCapacity           = "capacity_error"
	codeUnauthorized       = "unauthorized"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

var errorCodes = []struct {
	err  error
	code string
}{
	{domain.ErrInvalidID, codeInvalidID},
	{domain.ErrInvalidCapacity, codeInvalidCapacity},
	{domain.ErrHotelNameRequired, codeHotelNameRequired},
	{domain.ErrRoomNameRequired, codeRoomNameRequired},
	{domain.ErrRoomAlreadyExists, codeRoomAlreadyExists},
	{domain.ErrRoomFull, codeRoomFull},
	{domain.ErrAlreadyBooked, codeAlreadyBooked},
}

// writeServiceError maps a service error onto the HTTP contract:
// validation 400, not found 404, capacity 403, anything else 500.
// Not-found errors share one body whatever their cause.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status int
		code   string
	)
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusBadRequest, codeValidation
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
		return
	case errors.Is(err, domain.ErrCapacity):
		status, code = http.StatusForbidden, codeCapacity
	default:
		loggerFrom(r.Context()).WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}

	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			code = ec.code
			break
		}
	}
	writeError(w, status, code, err.Error())
}
