// Package memory keeps users and profiles in process memory. It backs the
// "memory" store driver and the service tests.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is shared by the user and profile repositories so that both see the same data.
type Store struct {
	mu       sync.RWMutex
	users    map[string]userRow
	emails   map[string]string
	profiles map[string]profileRow // keyed by user id
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    map[string]userRow{},
		emails:   map[string]string{},
		profiles: map[string]profileRow{},
		now:      time.Now,
	}
}

func newID() string { return uuid.NewString() }
