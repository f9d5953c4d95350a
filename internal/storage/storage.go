package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/fintrack-server/internal/config"
	"github.com/carson-networks/fintrack-server/internal/storage/category"
	"github.com/carson-networks/fintrack-server/internal/storage/memstore"
	"github.com/carson-networks/fintrack-server/internal/storage/transaction"
)

// Collection names, used when notifying live subscribers which part of the
// store a committed write touched.
const (
	CollectionTransactions = "transactions"
	CollectionCategories   = "categories"
)

// Writer is a single storage transaction. Mutations made through its tables
// become visible to readers only after Commit, so multi-step writes such as
// a category cascade delete are all-or-nothing.
type Writer interface {
	Transactions() transaction.WriteTable
	Categories() category.WriteTable
	Commit() error
	Rollback() error
}

type Storage struct {
	DB           *sql.DB
	Transactions transaction.Table
	Categories   category.Table

	write func(ctx context.Context) (Writer, error)
}

// Write opens a new storage transaction.
func (s *Storage) Write(ctx context.Context) (Writer, error) {
	return s.write(ctx)
}

// NewStorage selects the backend from config: postgres for real deployments,
// memory for development and tests.
func NewStorage(env *config.Config) (*Storage, error) {
	switch env.DataBackend {
	case config.BackendPostgres:
		return NewPostgresStorage(env)
	case config.BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", env.DataBackend)
	}
}

func NewPostgresStorage(env *config.Config) (*Storage, error) {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	bdb := bob.NewDB(db)

	return &Storage{
		DB:           db,
		Transactions: transaction.NewReader(bdb),
		Categories:   category.NewReader(bdb),
		write: func(ctx context.Context) (Writer, error) {
			tx, err := bdb.Begin(ctx)
			if err != nil {
				return nil, err
			}
			return &pgWriter{
				tx:           tx,
				transactions: transaction.NewWriter(tx),
				categories:   category.NewWriter(tx),
			}, nil
		},
	}, nil
}

func NewMemoryStorage() *Storage {
	store := memstore.New()
	return &Storage{
		Transactions: store.Transactions(),
		Categories:   store.Categories(),
		write: func(ctx context.Context) (Writer, error) {
			return store.Write(), nil
		},
	}
}

type pgWriter struct {
	tx           bob.Tx
	transactions *transaction.Writer
	categories   *category.Writer
}

func (w *pgWriter) Transactions() transaction.WriteTable { return w.transactions }

func (w *pgWriter) Categories() category.WriteTable { return w.categories }

func (w *pgWriter) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *pgWriter) Rollback() error {
	return w.tx.Rollback(context.Background())
}
