// Package state is the application-state container for the two collections
// shared across modules: clients and invoices.
//
// Collections are replaced, never mutated in place: every update builds a new
// slice from the previous snapshot under the write lock, so readers always
// hold a consistent snapshot and there is a single writer at a time.
package state

import (
	"sync"

	"smartisp.net/console/internal/models"
)

type Store struct {
	mu       sync.RWMutex
	clients  []models.Client
	invoices []models.Invoice
}

func New(clients []models.Client, invoices []models.Invoice) *Store {
	return &Store{
		clients:  append([]models.Client(nil), clients...),
		invoices: append([]models.Invoice(nil), invoices...),
	}
}

// Clients returns a copy of the current client snapshot.
func (s *Store) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Client(nil), s.clients...)
}

// SetClients replaces the client collection with fn(previous) and returns the new snapshot.
func (s *Store) SetClients(fn func(prev []models.Client) []models.Client) []models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(append([]models.Client(nil), s.clients...))
	s.clients = next
	return append([]models.Client(nil), next...)
}

func (s *Store) Invoices() []models.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Invoice(nil), s.invoices...)
}

func (s *Store) SetInvoices(fn func(prev []models.Invoice) []models.Invoice) []models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(append([]models.Invoice(nil), s.invoices...))
	s.invoices = next
	return append([]models.Invoice(nil), next...)
}
