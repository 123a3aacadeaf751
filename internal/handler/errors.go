package handler

import (
	"errors"
	"log"
	"net/http"

	customError "github.com/segyhp/loan-origination/pkg/errors"
	"github.com/segyhp/loan-origination/pkg/response"
)

var statusByCode = map[string]int{
	customError.ErrCodeValidation:            http.StatusBadRequest,
	customError.ErrCodeInvalidDecision:       http.StatusBadRequest,
	customError.ErrCodeAmountOutOfRange:      http.StatusUnprocessableEntity,
	customError.ErrCodeProductNotFound:       http.StatusNotFound,
	customError.ErrCodeOrderNotFound:         http.StatusNotFound,
	customError.ErrCodeOrderAlreadyProcessed: http.StatusConflict,
	customError.ErrCodeConfiguration:         http.StatusInternalServerError,
	customError.ErrCodeDatabaseError:         http.StatusInternalServerError,
}

// writeServiceError maps a workflow error onto an HTTP status.
func writeServiceError(w http.ResponseWriter, err error) {
	var be *customError.BusinessError
	if !errors.As(err, &be) {
		log.Printf("Unexpected error: %v", err)
		response.InternalServerError(w, "internal error", nil)
		return
	}

	status, ok := statusByCode[be.Code]
	if !ok {
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		log.Printf("Request failed with %s: %v", be.Code, err)
		response.CodedError(w, status, be.Code, "internal error")
		return
	}

	response.CodedError(w, status, be.Code, be.Message)
}
