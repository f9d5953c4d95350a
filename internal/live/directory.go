package live

import (
	"context"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fintrack-server/internal/storage"
	"github.com/carson-networks/fintrack-server/internal/storage/category"
)

// UncategorizedName is the display name for transactions whose category
// reference is unset or dangling.
const UncategorizedName = category.UncategorizedName

// Directory is a live owner-scoped mapping from category ID to display name.
// Every upstream change replaces the whole mapping; on refresh failure the
// last-known mapping is kept (stale but available).
type Directory struct {
	table   category.Table
	ownerID uuid.UUID
	log     *logrus.Logger

	mu    sync.RWMutex
	names map[uuid.UUID]string

	sub *Subscription
}

// NewDirectory subscribes to the category collection and loads the initial
// mapping. A failed initial load leaves the mapping empty, so every lookup
// falls back to UncategorizedName until the next successful refresh.
func NewDirectory(ctx context.Context, hub *Hub, table category.Table, ownerID uuid.UUID, log *logrus.Logger) *Directory {
	d := &Directory{
		table:   table,
		ownerID: ownerID,
		log:     log,
		names:   make(map[uuid.UUID]string),
	}

	d.sub = hub.Subscribe([]string{storage.CollectionCategories}, d.refresh)
	if err := d.sub.Refresh(ctx); err != nil {
		log.WithError(err).Error("Directory.initialRefresh")
	}

	return d
}

func (d *Directory) refresh(ctx context.Context) error {
	rows, err := d.table.List(ctx, d.ownerID)
	if err != nil {
		return err
	}

	names := make(map[uuid.UUID]string, len(rows))
	for _, row := range rows {
		names[row.ID] = row.Name
	}

	d.mu.Lock()
	d.names = names
	d.mu.Unlock()
	return nil
}

// Lookup resolves a category ID to its display name, falling back to
// UncategorizedName for uuid.Nil and dangling references.
func (d *Directory) Lookup(id uuid.UUID) string {
	if id == uuid.Nil {
		return UncategorizedName
	}

	d.mu.RLock()
	name, ok := d.names[id]
	d.mu.RUnlock()
	if !ok {
		return UncategorizedName
	}
	return name
}

// Close disposes the live subscription.
func (d *Directory) Close() {
	d.sub.Unsubscribe()
}
