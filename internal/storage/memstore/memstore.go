// Package memstore is an in-memory storage backend with the same semantics
// as the postgres backend: filtered reads over committed state, and writers
// whose mutations become visible atomically on Commit. It backs development
// setups and tests that should not need a running database.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/storage/category"
	"github.com/carson-networks/fintrack-server/internal/storage/transaction"
)

type data struct {
	transactions map[uuid.UUID]transaction.Transaction
	categories   map[uuid.UUID]category.Category
}

func (d *data) clone() *data {
	next := &data{
		transactions: make(map[uuid.UUID]transaction.Transaction, len(d.transactions)),
		categories:   make(map[uuid.UUID]category.Category, len(d.categories)),
	}
	for id, tx := range d.transactions {
		next.transactions[id] = tx
	}
	for id, cat := range d.categories {
		next.categories[id] = cat
	}
	return next
}

// Store holds committed state. Readers see committed state only; a Writer
// stages changes on a copy and swaps it in on Commit. Writers are expected
// to be serialized by the operator queue, concurrent commits are last-wins.
type Store struct {
	mu        sync.RWMutex
	committed *data
}

func New() *Store {
	return &Store{
		committed: &data{
			transactions: make(map[uuid.UUID]transaction.Transaction),
			categories:   make(map[uuid.UUID]category.Category),
		},
	}
}

func (s *Store) Transactions() transaction.Table {
	return &txReader{store: s}
}

func (s *Store) Categories() category.Table {
	return &catReader{store: s}
}

// Write opens a staged copy of the committed state.
func (s *Store) Write() *Writer {
	s.mu.RLock()
	staged := s.committed.clone()
	s.mu.RUnlock()
	return &Writer{store: s, staged: staged}
}

func (s *Store) snapshot() *data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed
}

func listTransactions(d *data, filter *transaction.Filter) []*transaction.Transaction {
	var result []*transaction.Transaction
	for _, tx := range d.transactions {
		tx := tx
		if filter.Matches(&tx) {
			result = append(result, &tx)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return transaction.Less(result[i], result[j])
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result
}

func listCategories(d *data, ownerID uuid.UUID) []*category.Category {
	var result []*category.Category
	for _, cat := range d.categories {
		cat := cat
		if cat.OwnerID == ownerID {
			result = append(result, &cat)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result
}

type txReader struct {
	store *Store
}

func (r *txReader) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	d := r.store.snapshot()
	if tx, ok := d.transactions[id]; ok {
		return &tx, nil
	}
	return nil, nil
}

func (r *txReader) List(ctx context.Context, filter *transaction.Filter) ([]*transaction.Transaction, error) {
	return listTransactions(r.store.snapshot(), filter), nil
}

type catReader struct {
	store *Store
}

func (r *catReader) FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	d := r.store.snapshot()
	if cat, ok := d.categories[id]; ok {
		return &cat, nil
	}
	return nil, nil
}

func (r *catReader) List(ctx context.Context, ownerID uuid.UUID) ([]*category.Category, error) {
	return listCategories(r.store.snapshot(), ownerID), nil
}

// Writer stages mutations on a private copy of the store. Commit publishes
// the copy; Rollback discards it. Reads through the writer observe its own
// staged writes, matching the postgres writer's in-transaction reads.
type Writer struct {
	store  *Store
	staged *data
	done   bool
}

func (w *Writer) Transactions() transaction.WriteTable {
	return &txWriter{writer: w}
}

func (w *Writer) Categories() category.WriteTable {
	return &catWriter{writer: w}
}

func (w *Writer) Commit() error {
	if w.done {
		return nil
	}
	w.done = true
	w.store.mu.Lock()
	w.store.committed = w.staged
	w.store.mu.Unlock()
	return nil
}

func (w *Writer) Rollback() error {
	w.done = true
	return nil
}

type txWriter struct {
	writer *Writer
}

func (t *txWriter) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	if tx, ok := t.writer.staged.transactions[id]; ok {
		return &tx, nil
	}
	return nil, nil
}

func (t *txWriter) List(ctx context.Context, filter *transaction.Filter) ([]*transaction.Transaction, error) {
	return listTransactions(t.writer.staged, filter), nil
}

func (t *txWriter) Insert(ctx context.Context, create *transaction.Create) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	dateAdded := create.DateAdded
	if dateAdded.IsZero() {
		dateAdded = time.Now()
	}

	t.writer.staged.transactions[id] = transaction.Transaction{
		ID:              id,
		OwnerID:         create.OwnerID,
		CategoryID:      create.CategoryID,
		Amount:          create.Amount,
		TransactionName: create.TransactionName,
		DateAdded:       dateAdded,
		CreatedAt:       time.Now(),
	}
	return id, nil
}

func (t *txWriter) Update(ctx context.Context, id uuid.UUID, update *transaction.Update) error {
	tx, ok := t.writer.staged.transactions[id]
	if !ok {
		return nil
	}

	if name, set := update.TransactionName.Get(); set {
		tx.TransactionName = name
	}
	if amount, set := update.Amount.Get(); set {
		tx.Amount = amount
	}
	if categoryID, set := update.CategoryID.Get(); set {
		tx.CategoryID = categoryID
	}
	if dateAdded, set := update.DateAdded.Get(); set {
		tx.DateAdded = dateAdded
	}

	t.writer.staged.transactions[id] = tx
	return nil
}

func (t *txWriter) Delete(ctx context.Context, id uuid.UUID) error {
	delete(t.writer.staged.transactions, id)
	return nil
}

func (t *txWriter) DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var removed int64
	for id, tx := range t.writer.staged.transactions {
		if tx.CategoryID == categoryID {
			delete(t.writer.staged.transactions, id)
			removed++
		}
	}
	return removed, nil
}

type catWriter struct {
	writer *Writer
}

func (c *catWriter) FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	if cat, ok := c.writer.staged.categories[id]; ok {
		return &cat, nil
	}
	return nil, nil
}

func (c *catWriter) List(ctx context.Context, ownerID uuid.UUID) ([]*category.Category, error) {
	return listCategories(c.writer.staged, ownerID), nil
}

func (c *catWriter) Insert(ctx context.Context, create *category.Create) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	c.writer.staged.categories[id] = category.Category{
		ID:        id,
		OwnerID:   create.OwnerID,
		Name:      create.Name,
		CreatedAt: time.Now(),
	}
	return id, nil
}

func (c *catWriter) Rename(ctx context.Context, id uuid.UUID, name string) error {
	cat, ok := c.writer.staged.categories[id]
	if !ok {
		return nil
	}
	cat.Name = name
	c.writer.staged.categories[id] = cat
	return nil
}

func (c *catWriter) Delete(ctx context.Context, id uuid.UUID) error {
	delete(c.writer.staged.categories, id)
	return nil
}
