package service

import (
	"github.com/carson-networks/fintrack-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Category    *CategoryService
	Report      *ReportService
}

// NewService creates a new Service with the given storage. resultCap is the
// configured cap on composed query results; 0 means no cap.
func NewService(store *storage.Storage, resultCap int) *Service {
	return &Service{
		Transaction: NewTransactionService(store, resultCap),
		Category:    NewCategoryService(store),
		Report:      NewReportService(store),
	}
}
