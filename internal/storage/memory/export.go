package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/cartomark/annotate/pkg/record"
)

// collectionJSON is the root GeoJSON structure.
type collectionJSON struct {
	Type     string        `json:"type"`
	Features []featureJSON `json:"features"`
}

// featureJSON is one GeoJSON feature. Style and the parametric
// description travel in the properties bag.
type featureJSON struct {
	Type       string         `json:"type"`
	ID         string         `json:"id"`
	Geometry   geom.Geometry  `json:"geometry"`
	Properties propertiesJSON `json:"properties"`
}

type propertiesJSON struct {
	Color       string  `json:"color,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	record.Properties
}

// exportGeoJSON writes the stored features to a (optionally gzipped)
// GeoJSON file. Caller holds the lock.
func (b *Backend) exportGeoJSON() error {
	export := b.buildCollection()

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("annotations_%s.geojson", timestamp)
	if b.cfg.CompressOutput {
		filename += ".gz"
	}
	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var err error
	if b.cfg.CompressOutput {
		err = writeGzipJSON(outputPath, export)
	} else {
		err = writeJSON(outputPath, export)
	}
	if err != nil {
		return err
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) buildCollection() collectionJSON {
	export := collectionJSON{
		Type:     "FeatureCollection",
		Features: make([]featureJSON, 0, len(b.features)),
	}

	for _, rec := range b.features {
		export.Features = append(export.Features, featureJSON{
			Type:     "Feature",
			ID:       rec.ID,
			Geometry: rec.Geometry,
			Properties: propertiesJSON{
				Color:       rec.Color,
				Opacity:     rec.Opacity,
				StrokeWidth: rec.StrokeWidth,
				Properties:  rec.Properties,
			},
		})
	}
	sort.Slice(export.Features, func(i, j int) bool {
		return export.Features[i].ID < export.Features[j].ID
	})

	return export
}

func writeJSON(path string, data collectionJSON) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(data)
}

func writeGzipJSON(path string, data collectionJSON) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	return json.NewEncoder(gzWriter).Encode(data)
}
