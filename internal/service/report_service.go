package service

import (
	"context"
	"log"
	"sort"

	"github.com/segyhp/loan-origination/internal/config"
	"github.com/segyhp/loan-origination/internal/domain"
	"github.com/segyhp/loan-origination/internal/repository"
	"github.com/segyhp/loan-origination/pkg/utils"

	"github.com/shopspring/decimal"
)

// LoanTypeDigest summarizes pending requests for one loan type.
type LoanTypeDigest struct {
	LoanType      string          `json:"loan_type"`
	Count         int             `json:"count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
}

type PendingDigest struct {
	Total  int              `json:"total"`
	ByType []LoanTypeDigest `json:"by_type"`
}

type ReportService struct {
	OrderRepo repository.OrderRepository
	config    *config.Config
}

func NewReportService(orderRepo repository.OrderRepository, config *config.Config) *ReportService {
	return &ReportService{OrderRepo: orderRepo, config: config}
}

// PendingDigest pages through every PENDING request and aggregates them by loan type
func (s *ReportService) PendingDigest(ctx context.Context) (*PendingDigest, error) {
	_, size := utils.NormalizePage(0, s.config.Business.MaxPageSize, s.config.Business.DefaultPageSize, 0)
	byType := map[string]*LoanTypeDigest{}
	digest := &PendingDigest{}

	for page := 0; ; page++ {
		rows, err := s.OrderRepo.FindPendingRequests(ctx, domain.PendingFilter{
			StatusID: domain.StatusPending.ID(),
			Page:     page,
			Size:     size,
		})
		if err != nil {
			return nil, err
		}

		for _, row := range rows {
			entry, ok := byType[row.LoanType]
			if !ok {
				entry = &LoanTypeDigest{LoanType: row.LoanType}
				byType[row.LoanType] = entry
			}
			if s.config.IsDebug() {
				log.Printf("Pending %s request from %s: %s over %d months", row.LoanType, row.EmailAddress, row.Amount, row.Deadline)
			}
			entry.Count++
			entry.TotalAmount = entry.TotalAmount.Add(row.Amount)
			entry.MonthlyAmount = entry.MonthlyAmount.Add(row.MonthlyAmount)
			digest.Total++
		}

		if len(rows) < size {
			break
		}
	}

	for _, entry := range byType {
		digest.ByType = append(digest.ByType, *entry)
	}
	sort.Slice(digest.ByType, func(i, j int) bool {
		return digest.ByType[i].LoanType < digest.ByType[j].LoanType
	})

	log.Printf("Pending digest: %d requests across %d loan types", digest.Total, len(digest.ByType))
	for _, entry := range digest.ByType {
		log.Printf("  %s: %d pending, %s requested, %s monthly", entry.LoanType, entry.Count, entry.TotalAmount, entry.MonthlyAmount)
	}

	return digest, nil
}
