package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang/gddo/httputil/header"
	"github.com/teaguenet/shadebar/pkg/utils/log"
)

const (
	// Maximum size in bytes of a request supplied to the application.
	MAX_CREATE_REQUEST_SIZE_IN_BYTES = 1048576
)

// swagger:response healthCheckResponse
type _ struct {
	body struct {
		Ok bool `json:"ok"`
	}
}

// swagger:response jsonResponse
// Standard response in JSON from the application. (follows Google JSON Format)
type _ struct {
	body JsonResponse
}

// JsonResponse holds a response in JSON format.
type JsonResponse struct {
	// Payload of the response.
	Data interface{} `json:"data,omitempty"`
	// Any errors returned by the application.
	Error *JsonErrorResponse `json:"error,omitempty"`
}

// JsonErrorResponse holds an error response in JSON format.
type JsonErrorResponse struct {
	// HTTP status code returned in the response.
	Code int `json:"code"`
	// Error message.
	Message string `json:"message"`
}

// MalformedRequestError holds a response to a malformed request to the application.
type MalformedRequestError struct {
	Status  int
	Message string
}

// Error returns an error string for the error.
func (request *MalformedRequestError) Error() string {
	return request.Message
}

// WriteJSONResponse encodes the specified response object as JSON and then writes it as a response to the supplied response writer, along with the supplied status.
// If there are any errors in encoding or writing, an entry is written to the logs, and an internal server error is written to the page instead.
func WriteJSONResponse(w http.ResponseWriter, status int, response interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Error(fmt.Sprintf("Failed to encode json: %s", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		_, err = w.Write([]byte("\n"))
		if err != nil {
			log.Error(fmt.Sprintf("Failed to write: %s", err.Error()))
		}
	}
}

// WriteJSONErrorResponse writes an error response in JSON with the supplied
// status code and user-facing message. Optional log messages carry the
// internal detail; they are logged, never echoed to the caller.
func WriteJSONErrorResponse(w http.ResponseWriter, status int, message string, logMsgs ...string) {
	for _, msg := range logMsgs {
		log.Error(msg)
	}
	response := JsonResponse{Error: &JsonErrorResponse{Code: status, Message: message}}
	WriteJSONResponse(w, status, response)
}

// DecodeJSONBody decodes a single JSON object into the supplied destination.
// Unknown fields are rejected, so payloads carrying aliased or misspelled
// field names fail fast instead of being silently ignored.
// Returns a MalformedRequestError describing the problem, nil on success.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, destination interface{}, maxRequestSizeInBytes int) error {
	if r.Header.Get("Content-Type") != "" {
		value, _ := header.ParseValueAndParams(r.Header, "Content-Type")
		if value != "application/json" {
			msg := "Content-Type header is not application/json"
			return &MalformedRequestError{Status: http.StatusUnsupportedMediaType, Message: msg}
		}
	}

	// Enforce max request size to reduce memory consumption of parsing crazy requests
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxRequestSizeInBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(&destination)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError

		switch {
		case errors.As(err, &syntaxError):
			msg := fmt.Sprintf("Request body contains badly-formed JSON at position %d", syntaxError.Offset)
			return &MalformedRequestError{Status: http.StatusBadRequest, Message: msg}
		// Decode() may also return io.ErrUnexpectedEOF for syntax errors in JSON -- open issue in Golang
		// You don't get syntax error position from this though
		// Refactor if https://github.com/golang/go/issues/25956 solved
		case errors.Is(err, io.ErrUnexpectedEOF):
			msg := "Request body contains badly-formed JSON"
			return &MalformedRequestError{Status: http.StatusBadRequest, Message: msg}
		case errors.As(err, &unmarshalTypeError):
			msg := fmt.Sprintf("Request body contains an invalid value for the %q field at position %d", unmarshalTypeError.Field, unmarshalTypeError.Offset)
			return &MalformedRequestError{Status: http.StatusBadRequest, Message: msg}
		case strings.HasPrefix(err.Error(), "json: unknown field"):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field")
			msg := fmt.Sprintf("Request body contains unknown field %s", fieldName)
			return &MalformedRequestError{Status: http.StatusBadRequest, Message: msg}
		case errors.Is(err, io.EOF):
			msg := "Request body must not be empty"
			return &MalformedRequestError{Status: http.StatusBadRequest, Message: msg}
		case err.Error() == "http: request body too large":
			msg := "Request body must not be larger than " + strconv.Itoa(maxRequestSizeInBytes) + " bytes"
			return &MalformedRequestError{Status: http.StatusRequestEntityTooLarge, Message: msg}
		default:
			return err
		}
	}

	err = decoder.Decode(&struct{}{}) // a single JSON object in the body returns io.EOF here
	if err != io.EOF {
		msg := "Request body must only contain a single JSON object"
		return &MalformedRequestError{Status: http.StatusBadRequest, Message: msg}
	}
	return nil
}
