package live

import (
	"context"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fintrack-server/internal/storage"
	"github.com/carson-networks/fintrack-server/internal/storage/transaction"
)

// ProjectedTransaction is a transaction joined with its category display
// name, with DateAdded truncated to a calendar date for display.
type ProjectedTransaction struct {
	ID              uuid.UUID       `json:"id"`
	TransactionName string          `json:"transactionName"`
	Amount          decimal.Decimal `json:"amount"`
	CategoryID      uuid.UUID       `json:"categoryId"`
	CategoryName    string          `json:"categoryName"`
	DateAdded       string          `json:"dateAdded"`
}

// Projector maintains a filtered live view over the transaction collection.
// Every refresh re-runs the composed query, re-joins category names from the
// directory's current mapping, and hands the consumer a full replacement
// list. It watches both collections: a category rename must re-join even
// when the transaction predicate set did not change.
//
// Create the Projector after its Directory; the hub refreshes subscriptions
// in registration order, so the directory's mapping is already rebuilt when
// the projector re-joins.
type Projector struct {
	table     transaction.Table
	directory *Directory
	filter    transaction.Filter
	onUpdate  func([]ProjectedTransaction)
	onError   func(error)
	log       *logrus.Logger

	mu   sync.Mutex
	last []ProjectedTransaction

	sub *Subscription
}

// NewProjector subscribes to the store and delivers the initial snapshot
// before returning. onUpdate is called synchronously on every snapshot with
// a list that fully replaces the previous one; onError is called on refresh
// failure with the last successful projection left in place.
func NewProjector(
	ctx context.Context,
	hub *Hub,
	table transaction.Table,
	directory *Directory,
	filter transaction.Filter,
	onUpdate func([]ProjectedTransaction),
	onError func(error),
	log *logrus.Logger,
) *Projector {
	p := &Projector{
		table:     table,
		directory: directory,
		filter:    filter,
		onUpdate:  onUpdate,
		onError:   onError,
		log:       log,
	}

	p.sub = hub.Subscribe(
		[]string{storage.CollectionTransactions, storage.CollectionCategories},
		p.refresh,
	)
	if err := p.sub.Refresh(ctx); err != nil {
		log.WithError(err).Error("Projector.initialRefresh")
	}

	return p
}

func (p *Projector) refresh(ctx context.Context) error {
	rows, err := p.table.List(ctx, &p.filter)
	if err != nil {
		if p.onError != nil {
			p.onError(err)
		}
		return err
	}

	projected := make([]ProjectedTransaction, len(rows))
	for i, row := range rows {
		projected[i] = ProjectedTransaction{
			ID:              row.ID,
			TransactionName: row.TransactionName,
			Amount:          row.Amount,
			CategoryID:      row.CategoryID,
			CategoryName:    p.directory.Lookup(row.CategoryID),
			DateAdded:       row.DateAdded.UTC().Format(time.DateOnly),
		}
	}

	p.mu.Lock()
	p.last = projected
	p.mu.Unlock()

	if p.log.IsLevelEnabled(logrus.DebugLevel) {
		p.log.WithField("snapshot", spew.Sdump(projected)).Debug("Projector.refresh")
	}

	p.onUpdate(projected)
	return nil
}

// Last returns the most recent successful projection.
func (p *Projector) Last() []ProjectedTransaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Close disposes the live subscription. No snapshot is delivered after Close
// returns.
func (p *Projector) Close() {
	p.sub.Unsubscribe()
}
