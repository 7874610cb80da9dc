// Package storage defines the persistence contract for fitting settings and
// saved configurations. Implementations live in subpackages.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// SettingsRecord stores one profile's persisted fitting settings. The payload
// is the serialized persisted state slice; the storage layer does not
// interpret it.
type SettingsRecord struct {
	Profile      string
	PayloadBytes []byte
	UpdatedAt    time.Time
}

// SavedConfigRecord stores one named, shareable fitting setup artifact.
type SavedConfigRecord struct {
	ID           string
	Name         string
	PayloadBytes []byte
	CreatedAt    time.Time
}

// Store is the contract for fitting persistence.
type Store interface {
	Close() error

	GetSettings(ctx context.Context, profile string) (SettingsRecord, bool, error)
	PutSettings(ctx context.Context, record SettingsRecord) error

	PutSavedConfig(ctx context.Context, record SavedConfigRecord) error
	GetSavedConfig(ctx context.Context, id string) (SavedConfigRecord, error)
	ListSavedConfigs(ctx context.Context) ([]SavedConfigRecord, error)
	DeleteSavedConfig(ctx context.Context, id string) error
}
