package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/PZavyalov/bank-account-service/internal/application/errs"
	"github.com/PZavyalov/bank-account-service/internal/domain/result"
	"github.com/PZavyalov/bank-account-service/pkg/logger"
)

func checkJSONDecodeError(err error) error {
	var e *json.UnmarshalTypeError
	if errors.As(err, &e) {
		return fmt.Errorf("%w: %s must be of type %s, got %s",
			errs.ErrInvalidRequest, e.Field, e.Type, e.Value)
	}
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: empty body", errs.ErrInvalidRequest)
	}

	return err
}

// statusFromKind maps an outcome kind onto an HTTP status code.
func statusFromKind(kind result.Kind) int {
	switch kind {
	case result.Success:
		return http.StatusOK
	case result.NotFound:
		return http.StatusNotFound
	case result.InvalidData:
		return http.StatusBadRequest
	case result.Duplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeFailure renders a failed outcome in the JSON format.
func writeFailure(w http.ResponseWriter, logger logger.Logger, kind result.Kind, message string) {
	code := statusFromKind(kind)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	logger.Debugf("account controller [%d]: %s", code, message)

	if err := json.NewEncoder(w).Encode(errs.JSON{Error: message}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeJSON renders a success payload. Status 200 OK.
func writeJSON(w http.ResponseWriter, logger logger.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Errorf("encode response: %s", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
