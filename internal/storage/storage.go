// Package storage defines the persistence interface behind the
// transform engine. Backends receive finalized feature records after a
// committed operation; they never see in-progress drag state.
package storage

import "github.com/cartomark/annotate/pkg/record"

// Backend is the interface all storage implementations satisfy.
type Backend interface {
	Init() error
	Close() error

	SaveFeature(rec record.Feature) error
	DeleteFeature(id string) error
	ListFeatures() ([]record.Feature, error)
}

// Exportable is an optional interface for backends that write a
// portable annotation file on shutdown.
type Exportable interface {
	ExportedFilePath() string
}
