package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/osse101/CaseSim_Go/internal/logger"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// An empty body decodes to the zero value, so requests whose fields are all
// optional may omit it. If this returns an error the response has already
// been written.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(LogMsgRequestDecoded, "action", actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// GetOptionalQueryParam returns a query parameter or defaultValue when absent
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// parseWait reads the wait query flag. On a malformed value it writes a 400
// and returns ok=false.
func parseWait(w http.ResponseWriter, r *http.Request) (wait bool, ok bool) {
	raw := GetOptionalQueryParam(r, QueryParamWait, "false")
	wait, err := strconv.ParseBool(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidWaitParam)
		return false, false
	}
	return wait, true
}

// QueryParamWait makes an action block until its outcome is revealed
const QueryParamWait = "wait"
