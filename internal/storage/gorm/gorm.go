// Package gormstore implements the storage.Backend interface on top of
// a GORM database handle. The sqlite and postgres backends compose it
// and supply the connection.
package gormstore

import (
	"encoding/json"
	"errors"
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/cartomark/annotate/internal/logging"
	"github.com/cartomark/annotate/pkg/record"
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB         *gorm.DB
	LogManager *logging.SlogManager
}

// FeatureRow is the database row for one annotation. Geometry is
// stored as WKT; the parametric properties bag is stored as JSON.
type FeatureRow struct {
	gorm.Model
	FeatureID   string `gorm:"uniqueIndex;size:64"`
	Geometry    string
	Color       string  `gorm:"size:32"`
	Opacity     float64
	StrokeWidth float64
	Properties  datatypes.JSON
}

func (*FeatureRow) TableName() string {
	return "features"
}

// Backend implements storage.Backend using GORM.
type Backend struct {
	deps Dependencies
}

// New creates a GORM storage backend.
func New(deps Dependencies) *Backend {
	return &Backend{deps: deps}
}

// Init migrates the schema.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return errors.New("gormstore: no database handle")
	}
	if err := b.deps.DB.AutoMigrate(&FeatureRow{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	b.deps.LogManager.WriteLog("gormstore:Init", "Schema migrated", "DEBUG")
	return nil
}

// Close is a no-op; connection ownership stays with the composing
// backend.
func (b *Backend) Close() error {
	return nil
}

// SaveFeature upserts the record keyed by its feature id.
func (b *Backend) SaveFeature(rec record.Feature) error {
	row, err := toRow(rec)
	if err != nil {
		return err
	}

	var existing FeatureRow
	err = b.deps.DB.Where("feature_id = ?", rec.ID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := b.deps.DB.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert feature %s: %w", rec.ID, err)
		}
	case err != nil:
		return fmt.Errorf("failed to look up feature %s: %w", rec.ID, err)
	default:
		existing.Geometry = row.Geometry
		existing.Color = row.Color
		existing.Opacity = row.Opacity
		existing.StrokeWidth = row.StrokeWidth
		existing.Properties = row.Properties
		if err := b.deps.DB.Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to update feature %s: %w", rec.ID, err)
		}
	}
	return nil
}

// DeleteFeature removes the row for id. Deleting an unknown id is not
// an error.
func (b *Backend) DeleteFeature(id string) error {
	if err := b.deps.DB.Where("feature_id = ?", id).Delete(&FeatureRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete feature %s: %w", id, err)
	}
	return nil
}

// ListFeatures returns every stored feature record.
func (b *Backend) ListFeatures() ([]record.Feature, error) {
	var rows []FeatureRow
	if err := b.deps.DB.Order("feature_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list features: %w", err)
	}

	recs := make([]record.Feature, 0, len(rows))
	for _, row := range rows {
		rec, err := fromRow(row)
		if err != nil {
			b.deps.LogManager.WriteLog("gormstore:ListFeatures",
				fmt.Sprintf("Skipping unreadable feature %s: %v", row.FeatureID, err), "ERROR")
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func toRow(rec record.Feature) (FeatureRow, error) {
	props, err := json.Marshal(rec.Properties)
	if err != nil {
		return FeatureRow{}, fmt.Errorf("failed to marshal properties for %s: %w", rec.ID, err)
	}
	return FeatureRow{
		FeatureID:   rec.ID,
		Geometry:    rec.Geometry.AsText(),
		Color:       rec.Color,
		Opacity:     rec.Opacity,
		StrokeWidth: rec.StrokeWidth,
		Properties:  props,
	}, nil
}

func fromRow(row FeatureRow) (record.Feature, error) {
	g, err := geom.UnmarshalWKT(row.Geometry)
	if err != nil {
		return record.Feature{}, fmt.Errorf("bad geometry: %w", err)
	}
	var props record.Properties
	if len(row.Properties) > 0 {
		if err := json.Unmarshal(row.Properties, &props); err != nil {
			return record.Feature{}, fmt.Errorf("bad properties: %w", err)
		}
	}
	return record.Feature{
		ID:          row.FeatureID,
		Geometry:    g,
		Color:       row.Color,
		Opacity:     row.Opacity,
		StrokeWidth: row.StrokeWidth,
		Properties:  props,
	}, nil
}
