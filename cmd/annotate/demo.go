package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cartomark/annotate/internal/api"
	"github.com/cartomark/annotate/internal/config"
	"github.com/cartomark/annotate/internal/dispatcher"
	"github.com/cartomark/annotate/internal/engine"
	"github.com/cartomark/annotate/internal/feature"
	"github.com/cartomark/annotate/internal/geo"
	"github.com/cartomark/annotate/internal/logging"
	"github.com/cartomark/annotate/internal/monitor"
	"github.com/cartomark/annotate/internal/persist"
	"github.com/cartomark/annotate/internal/projection"
	"github.com/cartomark/annotate/internal/storage"
	"github.com/cartomark/annotate/internal/storage/memory"
	"github.com/cartomark/annotate/internal/telemetry"
)

// clickEvent is the payload for "click" dispatcher events.
type clickEvent struct {
	At       geo.Pixel
	Additive bool
}

func runDemo(cmd *cobra.Command, args []string) error {
	logManager, err := setup()
	if err != nil {
		return err
	}
	log := logManager.Logger()

	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()

	backend := memory.New(config.MemoryConfig{
		OutputDir:      demoOutDir,
		CompressOutput: demoGzip,
	})
	if err := backend.Init(); err != nil {
		return fmt.Errorf("initializing backend: %w", err)
	}

	svc := persist.NewService(persist.Dependencies{
		Backend:    backend,
		LogManager: logManager,
	})
	svc.Start()

	pixelsPerMeter := config.GetFloat64("projection.pixelsPerMeter")
	eng := engine.New(engine.Dependencies{
		Projection: projection.NewContext(projection.NewFlat(pixelsPerMeter, 0)),
		Persist:    svc,
		LogManager: logManager,
		Callbacks: engine.Callbacks{
			Created: func(f *feature.Feature) {
				log.Info("Feature created", "id", f.ID, "shape", f.Shape.String())
			},
			Updated: func(f *feature.Feature) {
				log.Debug("Feature updated", "id", f.ID)
			},
			Deleted: func(id string) {
				log.Info("Feature deleted", "id", id)
			},
		},
		Interaction: config.GetInteraction(),
		Style:       feature.Style{Color: "#3388ff", Opacity: 0.6, StrokeWidth: 2},
	})

	disp, err := newSurfaceDispatcher(eng, zl)
	if err != nil {
		return fmt.Errorf("creating dispatcher: %w", err)
	}

	if config.GetBool("influx.enabled") {
		tm := telemetry.NewManager(zl, filepath.Join(demoOutDir, "telemetry.lp.gz"))
		if err := tm.Connect(); err != nil {
			log.Warn("Telemetry disabled", "error", err)
		} else {
			mon := monitor.NewService(monitor.Dependencies{
				Engine:     eng,
				Telemetry:  tm,
				LogManager: logManager,
				Interval:   10 * time.Second,
			})
			mon.Start()
			defer mon.Stop()
		}
	}

	runScript(disp)

	log.Info("Scripted session complete", "features", eng.Len())

	svc.Close()
	if err := backend.Close(); err != nil {
		return fmt.Errorf("closing backend: %w", err)
	}
	if exp, ok := storage.Backend(backend).(storage.Exportable); ok {
		fmt.Printf("Exported %d feature(s) to %s\n", eng.Len(), exp.ExportedFilePath())

		if url := config.GetString("api.url"); url != "" {
			client := api.New(url, config.GetString("api.key"))
			err := client.Upload(exp.ExportedFilePath(), api.UploadMetadata{
				LayerName:    config.GetString("api.layerName"),
				FeatureCount: eng.Len(),
			})
			if err != nil {
				log.Error("Upload failed", "error", err)
			} else {
				log.Info("Uploaded export", "url", url)
			}
		}
	}
	return nil
}

// newSurfaceDispatcher registers the engine's entry points as named
// events, the shape a rendering surface would emit them in.
func newSurfaceDispatcher(eng *engine.Engine, zl zerolog.Logger) (*dispatcher.Dispatcher, error) {
	disp, err := dispatcher.New(logging.NewDispatcherLogger(zl))
	if err != nil {
		return nil, err
	}

	disp.Register("mode.set", func(e dispatcher.Event) (any, error) {
		eng.SetMode(e.Payload.(engine.Mode))
		return nil, nil
	}, dispatcher.Logged())
	disp.Register("pointer.down", func(e dispatcher.Event) (any, error) {
		eng.PointerDown(e.Payload.(geo.Pixel))
		return nil, nil
	})
	disp.Register("pointer.move", func(e dispatcher.Event) (any, error) {
		eng.PointerMove(e.Payload.(geo.Pixel))
		return nil, nil
	})
	disp.Register("pointer.up", func(e dispatcher.Event) (any, error) {
		eng.PointerUp(e.Payload.(geo.Pixel))
		return nil, nil
	})
	disp.Register("click", func(e dispatcher.Event) (any, error) {
		c := e.Payload.(clickEvent)
		eng.Click(c.At, c.Additive)
		return len(eng.Selection()), nil
	})
	disp.Register("key.down", func(e dispatcher.Event) (any, error) {
		eng.KeyDown(e.Payload.(string))
		return nil, nil
	}, dispatcher.Logged())
	disp.Register("rotate.set", func(e dispatcher.Event) (any, error) {
		angle := e.Payload.(float64)
		for _, id := range eng.Selection() {
			if err := eng.ApplyRotateFromAngle(id, angle); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}, dispatcher.Logged())
	disp.Register("resize.set", func(e dispatcher.Event) (any, error) {
		dims := e.Payload.([2]float64)
		for _, id := range eng.Selection() {
			if err := eng.ApplyResizeFromDimensions(id, dims[0], dims[1]); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}, dispatcher.Logged())

	return disp, nil
}

// runScript replays a canned pointer session: one of each shape, then a
// rotate, a dimension resize, and a translate drag. Events go through
// the dispatcher the way a surface would emit them.
func runScript(disp *dispatcher.Dispatcher) {
	emit := func(name string, payload any) {
		if _, err := disp.Dispatch(dispatcher.Event{Name: name, Payload: payload, Timestamp: time.Now()}); err != nil {
			fmt.Fprintf(os.Stderr, "dispatch %s: %v\n", name, err)
		}
	}
	drag := func(from, to geo.Pixel) {
		emit("pointer.down", from)
		emit("pointer.move", geo.Pixel{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2})
		emit("pointer.move", to)
		emit("pointer.up", to)
	}

	emit("mode.set", engine.ModeRectangle)
	drag(geo.Pixel{X: 0, Y: 0}, geo.Pixel{X: 400, Y: 200})

	emit("mode.set", engine.ModeCircle)
	drag(geo.Pixel{X: 700, Y: 100}, geo.Pixel{X: 800, Y: 100})

	emit("mode.set", engine.ModeTriangle)
	drag(geo.Pixel{X: 1000, Y: 100}, geo.Pixel{X: 1000, Y: 20})

	emit("mode.set", engine.ModeSquare)
	drag(geo.Pixel{X: 1300, Y: 100}, geo.Pixel{X: 1380, Y: 180})

	emit("mode.set", engine.ModePolygon)
	emit("click", clickEvent{At: geo.Pixel{X: 0, Y: 400}})
	emit("click", clickEvent{At: geo.Pixel{X: 200, Y: 400}})
	emit("click", clickEvent{At: geo.Pixel{X: 100, Y: 550}})

	emit("mode.set", engine.ModeLine)
	emit("pointer.down", geo.Pixel{X: 400, Y: 400})
	for x := 410.0; x <= 600; x += 10 {
		emit("pointer.move", geo.Pixel{X: x, Y: 400 + 30*((x/100)-5)})
	}
	emit("pointer.up", geo.Pixel{X: 600, Y: 430})

	emit("mode.set", engine.ModePoint)
	emit("click", clickEvent{At: geo.Pixel{X: 800, Y: 400}})

	emit("mode.set", engine.ModeSelect)

	// programmatic entry points against the first rectangle
	emit("click", clickEvent{At: geo.Pixel{X: 200, Y: 100}})
	emit("rotate.set", 30.0)
	emit("resize.set", [2]float64{5000, 2500})
	emit("click", clickEvent{At: geo.Pixel{X: 5000, Y: 5000}})

	// translate the circle
	emit("click", clickEvent{At: geo.Pixel{X: 700, Y: 100}})
	drag(geo.Pixel{X: 700, Y: 100}, geo.Pixel{X: 700, Y: 250})
}
