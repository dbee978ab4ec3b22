// Package store keeps uploaded datasets for the HTTP explorer.
//
// Each upload becomes an [Entry] holding the raw dataset CSV and the
// optional relations and pathway info files, identified by a random UUID
// and valid until its TTL runs out. Two backends implement [Store]:
//   - [MemoryStore]: process-local, bounded in size; the default
//   - [FileStore]: one JSON file per entry, survives restarts
//
// # Usage
//
//	store := store.NewMemoryStore(100)
//
//	e := store.New("tumor_vs_normal", "tumor_vs_normal.csv", data, store.DefaultTTL)
//	if err := s.Put(ctx, e); err != nil {
//	    return err
//	}
//
//	e, err := s.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if e == nil {
//	    // Entry not found or expired
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an upload is kept.
const DefaultTTL = 24 * time.Hour

// Entry is one uploaded dataset.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Filename  string    `json:"filename"`
	Records   int       `json:"records"`
	Invalid   int       `json:"invalid"`
	Relations int       `json:"relations"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	Data          []byte `json:"data"`
	RelationsData []byte `json:"relations_data,omitempty"`
	InfoData      []byte `json:"info_data,omitempty"`
}

// Meta is the part of an Entry returned by listings.
type Meta struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Filename  string    `json:"filename"`
	Records   int       `json:"records"`
	Invalid   int       `json:"invalid"`
	Relations int       `json:"relations"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New creates an entry with a fresh ID.
func New(name, filename string, data []byte, ttl time.Duration) *Entry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	return &Entry{
		ID:        uuid.New().String(),
		Name:      name,
		Filename:  filename,
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true if the entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Meta returns the entry without its file contents.
func (e *Entry) Meta() Meta {
	return Meta{
		ID:        e.ID,
		Name:      e.Name,
		Filename:  e.Filename,
		Records:   e.Records,
		Invalid:   e.Invalid,
		Relations: e.Relations,
		Size:      len(e.Data) + len(e.RelationsData) + len(e.InfoData),
		CreatedAt: e.CreatedAt,
		ExpiresAt: e.ExpiresAt,
	}
}

// ValidID reports whether id has the form produced by New.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Store is the interface for dataset storage backends.
type Store interface {
	// Get retrieves an entry by ID.
	// Returns nil, nil if the entry doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Entry, error)

	// Put stores an entry.
	Put(ctx context.Context, e *Entry) error

	// Delete removes an entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the live entries, newest first.
	List(ctx context.Context) ([]Meta, error)

	// Cleanup removes expired entries and returns how many were removed.
	Cleanup(ctx context.Context) (int, error)
}
