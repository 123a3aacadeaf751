package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/segyhp/loan-origination/internal/domain"
	"github.com/segyhp/loan-origination/internal/service"
	"github.com/segyhp/loan-origination/pkg/response"

	"github.com/go-playground/validator/v10"
)

type DebtCapacityHandler struct {
	service   service.DebtCapacityUseCase
	validator *validator.Validate
}

func NewDebtCapacityHandler(service service.DebtCapacityUseCase) *DebtCapacityHandler {
	return &DebtCapacityHandler{
		service:   service,
		validator: NewValidator(),
	}
}

// Submit handles POST /debt-capacity. Submission is asynchronous.
func (h *DebtCapacityHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.DebtCapacitySubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.ValidationError(w, ToFieldErrors(err))
		return
	}

	request := domain.NewDebtCapacityRequest(req.OrderID, req.UserID, req.Amount, req.Deadline, req.EmailAddress,
		req.BaseSalary, req.InterestRate, req.LoanProductID, time.Now())

	response.Accepted(w, h.service.ProcessDebtCapacityRequest(r.Context(), request))
}
