package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/usecase"
	"github.com/verteidiq/assessor/pkg/utils/errutil"
	"github.com/verteidiq/assessor/pkg/utils/safe"
)

var errInvalidBody = goerr.New("invalid request body")

// decodeJSON reads a bounded JSON body into v. Unknown fields are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return goerr.Wrap(errInvalidBody, err.Error())
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

// handleError maps use case errors to status codes
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errInvalidBody),
		errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, model.ErrNoOptionSelected),
		errors.Is(err, model.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrAssessmentNotFound),
		errors.Is(err, usecase.ErrLeadNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidLeadStep):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
