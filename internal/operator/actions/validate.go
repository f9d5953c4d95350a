package actions

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/fintrack-server/internal/storage/category"
)

const maxTransactionNameLength = 20

var maxTransactionMagnitude = decimal.NewFromInt(100000)

func validateTransactionName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("transaction name must not be blank")
	}
	if len([]rune(name)) > maxTransactionNameLength {
		return NewValidationError("transaction name must not exceed %d characters", maxTransactionNameLength)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.Abs().GreaterThan(maxTransactionMagnitude) {
		return NewValidationError("amount magnitude must not exceed %s", maxTransactionMagnitude.String())
	}
	return nil
}

// validateCategoryRef enforces the application-side referential rule: a set
// category must exist and belong to the same owner. uuid.Nil (uncategorized)
// is always valid.
func validateCategoryRef(ctx context.Context, categories category.Table, ownerID, categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return nil
	}

	cat, err := categories.FindByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if cat == nil || cat.OwnerID != ownerID {
		return NewValidationError("category %s does not exist for this user", categoryID)
	}
	return nil
}
