package service

import (
	"context"
	"iter"
	"log"
	"time"

	"github.com/segyhp/loan-origination/internal/config"
	"github.com/segyhp/loan-origination/internal/directory"
	"github.com/segyhp/loan-origination/internal/domain"
	"github.com/segyhp/loan-origination/internal/messaging"
	"github.com/segyhp/loan-origination/internal/repository"
	customError "github.com/segyhp/loan-origination/pkg/errors"
	"github.com/segyhp/loan-origination/pkg/utils"

	"github.com/shopspring/decimal"
)

type OrderService struct {
	ProductRepo repository.LoanProductRepository
	OrderRepo   repository.OrderRepository
	notifier    messaging.NotificationDispatcher
	applicants  directory.ApplicantDirectory
	config      *config.Config
	now         func() time.Time
}

// NewOrderService wires the workflow. A nil notifier disables decision
// notifications; a nil directory leaves report rows unenriched.
func NewOrderService(
	productRepo repository.LoanProductRepository,
	orderRepo repository.OrderRepository,
	notifier messaging.NotificationDispatcher,
	applicants directory.ApplicantDirectory,
	config *config.Config,
) *OrderService {
	if notifier == nil {
		notifier = messaging.NoopNotifier{}
	}
	if applicants == nil {
		applicants = directory.NoopDirectory{}
	}
	return &OrderService{
		ProductRepo: productRepo,
		OrderRepo:   orderRepo,
		notifier:    notifier,
		applicants:  applicants,
		config:      config,
		now:         time.Now,
	}
}

// CreateLoanRequest validates the request against its loan product and stores a new PENDING order
func (s *OrderService) CreateLoanRequest(ctx context.Context, applicantID string, amount decimal.Decimal, deadline int, email, productID string) (*domain.Order, error) {
	// 1. Resolve the loan product
	product, err := s.ProductRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, customError.WrapProductNotFound(productID)
	}

	// 2. Amount must fall inside the product's range
	if !product.IsAmountValid(amount) {
		return nil, customError.WrapAmountOutOfRange(amount.String(), product.MinimumAmount.String(), product.MaximumAmount.String())
	}

	// 3. Resolve PENDING from the status catalog
	pending, err := s.resolvePendingStatus(ctx)
	if err != nil {
		return nil, err
	}

	// 4-5. Build the order and check its own invariants
	order := domain.NewOrder(amount, deadline, email, productID, pending, s.now())
	if err := order.Validate(); err != nil {
		return nil, err
	}

	// 6. Persist
	saved, err := s.OrderRepo.Save(ctx, order)
	if err != nil {
		return nil, err
	}

	log.Printf("Loan request %s created for applicant %s (product %s, amount %s)", saved.ID, applicantID, productID, amount)
	return saved, nil
}

func (s *OrderService) resolvePendingStatus(ctx context.Context) (domain.Status, error) {
	id, err := s.OrderRepo.FindPendingStatusID(ctx)
	if err != nil {
		return domain.StatusUnknown, err
	}
	if id == "" {
		return domain.StatusUnknown, customError.WrapPendingStatusNotProvisioned("no PENDING row in status catalog")
	}

	status, ok := domain.StatusFromID(id)
	if !ok || status != domain.StatusPending {
		return domain.StatusUnknown, customError.WrapPendingStatusNotProvisioned("catalog id " + id + " is not the PENDING status")
	}
	return status, nil
}

// FindByID returns the order or ORDER_NOT_FOUND
func (s *OrderService) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.OrderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, customError.WrapOrderNotFound(id)
	}
	return order, nil
}

// FindByEmail yields the applicant's orders; each range re-queries the store
func (s *OrderService) FindByEmail(ctx context.Context, email string) iter.Seq2[*domain.Order, error] {
	return s.OrderRepo.FindByEmail(ctx, email)
}

// UpdateOrderDecision applies a one-time APPROVED/REJECTED decision to a PENDING order
func (s *OrderService) UpdateOrderDecision(ctx context.Context, id, decision string) (*domain.Order, error) {
	order, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Decisions apply at most once
	if !order.IsPending() {
		return nil, customError.WrapOrderAlreadyProcessed(id)
	}

	target, ok := domain.DecisionStatus(decision)
	if !ok {
		return nil, customError.WrapInvalidDecision(decision)
	}

	saved, err := s.OrderRepo.Save(ctx, order.WithStatus(target, s.now()))
	if err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyOrderDecision(ctx, saved); err != nil {
		log.Printf("Decision for order %s persisted but notification failed: %v", saved.ID, err)
	}

	return saved, nil
}

// FindPendingRequests returns one page of the pending-requests report,
// enriched with applicant data where the user service has it
func (s *OrderService) FindPendingRequests(ctx context.Context, filter domain.PendingFilter) ([]*domain.PendingRequest, error) {
	filter.Page, filter.Size = utils.NormalizePage(filter.Page, filter.Size,
		s.config.Business.DefaultPageSize, s.config.Business.MaxPageSize)

	rows, err := s.OrderRepo.FindPendingRequests(ctx, filter)
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		rows[i] = s.enrich(ctx, row)
	}
	return rows, nil
}

// enrich never fails the report: a failed or empty lookup keeps the plain row
func (s *OrderService) enrich(ctx context.Context, row *domain.PendingRequest) *domain.PendingRequest {
	applicant, err := s.applicants.FindByEmail(ctx, row.EmailAddress)
	if err != nil {
		log.Printf("Could not load applicant data for %s: %v", row.EmailAddress, err)
		return row
	}
	if applicant == nil {
		if s.config.IsDebug() {
			log.Printf("No applicant found for %s", row.EmailAddress)
		}
		return row
	}
	return row.WithApplicant(applicant)
}

// ListLoanProducts drains the catalog
func (s *OrderService) ListLoanProducts(ctx context.Context) ([]*domain.LoanProduct, error) {
	products := []*domain.LoanProduct{}
	for product, err := range s.ProductRepo.ListAll(ctx) {
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}
