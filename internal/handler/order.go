package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/segyhp/loan-origination/internal/domain"
	"github.com/segyhp/loan-origination/internal/service"
	"github.com/segyhp/loan-origination/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type OrderHandler struct {
	service   service.OrderUseCase
	validator *validator.Validate
}

func NewOrderHandler(service service.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		service:   service,
		validator: NewValidator(),
	}
}

// CreateLoanRequest handles POST /loan-requests
func (h *OrderHandler) CreateLoanRequest(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.ValidationError(w, ToFieldErrors(err))
		return
	}

	order, err := h.service.CreateLoanRequest(r.Context(), req.ApplicantID, req.Amount, req.Deadline, req.EmailAddress, req.LoanProductID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, order)
}

// GetLoanRequest handles GET /loan-requests/{id}
func (h *OrderHandler) GetLoanRequest(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, order)
}

// ListLoanRequests handles GET /loan-requests?email=
func (h *OrderHandler) ListLoanRequests(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		response.ValidationError(w, map[string]string{"email": "is required"})
		return
	}

	orders := []*domain.Order{}
	for order, err := range h.service.FindByEmail(r.Context(), email) {
		if err != nil {
			writeServiceError(w, err)
			return
		}
		orders = append(orders, order)
	}

	response.Success(w, orders)
}

// UpdateDecision handles PUT /loan-requests/{id}/decision
func (h *OrderHandler) UpdateDecision(w http.ResponseWriter, r *http.Request) {
	var req domain.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.ValidationError(w, ToFieldErrors(err))
		return
	}

	order, err := h.service.UpdateOrderDecision(r.Context(), mux.Vars(r)["id"], req.Decision)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, order)
}

// ListPendingRequests handles GET /pending-requests
func (h *OrderHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.PendingFilter{Email: strings.TrimSpace(query.Get("email"))}
	fields := map[string]string{}

	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		if status, ok := domain.StatusFromName(strings.ToUpper(raw)); ok {
			filter.StatusID = status.ID()
		} else if status, ok := domain.StatusFromID(raw); ok {
			filter.StatusID = status.ID()
		} else {
			fields["status"] = "is not a known status"
		}
	}

	var err error
	if filter.Page, err = intParam(query.Get("page")); err != nil {
		fields["page"] = "must be a non-negative integer"
	}
	if filter.Size, err = intParam(query.Get("size")); err != nil {
		fields["size"] = "must be a non-negative integer"
	}

	if len(fields) > 0 {
		response.ValidationError(w, fields)
		return
	}

	requests, err := h.service.FindPendingRequests(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, domain.PendingRequestsResponse{
		Page:     filter.Page,
		Size:     filter.Size,
		Requests: requests,
	})
}

// ListLoanProducts handles GET /loan-products
func (h *OrderHandler) ListLoanProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListLoanProducts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, products)
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
