// Package memory provides an in-memory Store for tests and local runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Claipousse/LedgerOne/internal/core"
	"github.com/Claipousse/LedgerOne/internal/storage"
)

type Store struct {
	mu           sync.RWMutex
	transactions map[int64]core.Transaction
	categories   map[int64]core.Category
	settings     core.Settings
	nextTxID     int64
	nextCatID    int64
}

func NewStore() *Store {
	return &Store{
		transactions: make(map[int64]core.Transaction),
		categories:   make(map[int64]core.Category),
		nextTxID:     1,
		nextCatID:    1,
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) InsertTransaction(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx.ID = s.nextTxID
	s.nextTxID++
	s.transactions[tx.ID] = tx
	return tx, nil
}

func (s *Store) GetTransaction(_ context.Context, id int64) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[id]
	if !ok {
		return core.Transaction{}, storage.ErrNotFound
	}
	return tx, nil
}

func (s *Store) UpdateTransaction(_ context.Context, tx core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[tx.ID]; !ok {
		return storage.ErrNotFound
	}
	s.transactions[tx.ID] = tx
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *Store) ListTransactions(_ context.Context, f storage.TransactionFilter) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var txs []core.Transaction
	for _, tx := range s.transactions {
		if matches(tx, f) {
			txs = append(txs, tx)
		}
	}

	// Newest first, ties broken by insertion order.
	sort.Slice(txs, func(i, j int) bool {
		di, dj := txs[i].Date.String(), txs[j].Date.String()
		if di != dj {
			return di > dj
		}
		return txs[i].ID > txs[j].ID
	})

	if f.Offset > 0 {
		if f.Offset >= len(txs) {
			return nil, nil
		}
		txs = txs[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(txs) {
		txs = txs[:f.Limit]
	}
	return txs, nil
}

func matches(tx core.Transaction, f storage.TransactionFilter) bool {
	if f.From != nil && tx.Date.String() < f.From.String() {
		return false
	}
	if f.To != nil && tx.Date.String() > f.To.String() {
		return false
	}
	if f.CategoryID != nil {
		if tx.CategoryID == nil || *tx.CategoryID != *f.CategoryID {
			return false
		}
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(tx.Description), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

func (s *Store) CreateCategory(_ context.Context, c core.Category) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.Name == c.Name {
			return core.Category{}, storage.ErrDuplicateName
		}
	}

	c.ID = s.nextCatID
	s.nextCatID++
	s.categories[c.ID] = c
	return c, nil
}

func (s *Store) GetCategory(_ context.Context, id int64) (core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return core.Category{}, storage.ErrNotFound
	}
	return c, nil
}

func (s *Store) FindCategoryByName(_ context.Context, name string) (core.Category, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.Name == name {
			return c, true, nil
		}
	}
	return core.Category{}, false, nil
}

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cats := make([]core.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats, nil
}

func (s *Store) UpdateCategory(_ context.Context, c core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[c.ID]; !ok {
		return storage.ErrNotFound
	}
	for _, existing := range s.categories {
		if existing.ID != c.ID && existing.Name == c.Name {
			return storage.ErrDuplicateName
		}
	}
	s.categories[c.ID] = c
	return nil
}

// DeleteCategory removes the category and detaches its transactions.
func (s *Store) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.categories, id)

	for txID, tx := range s.transactions {
		if tx.CategoryID != nil && *tx.CategoryID == id {
			tx.CategoryID = nil
			s.transactions[txID] = tx
		}
	}
	return nil
}

func (s *Store) GetSettings(_ context.Context) (core.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *Store) UpdateSettings(_ context.Context, settings core.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}
