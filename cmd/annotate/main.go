package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/cartomark/annotate/internal/config"
	"github.com/cartomark/annotate/internal/logging"
	"github.com/cartomark/annotate/internal/otel"
	"github.com/cartomark/annotate/internal/storage"
)

var (
	configDir string
	logLevel  string

	otelProvider *otel.Provider
)

var rootCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Geometric transform engine for interactive map annotations",
	Long: `A headless annotation engine: shape construction, selection,
resize/rotate/translate drags, and pluggable persistence backends.`,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted edit session and export the result",
	Long: `Drive the engine through a scripted pointer session using the flat
projector, then export the resulting features as GeoJSON.`,
	RunE: runDemo,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List features stored in the configured backend",
	RunE:  runList,
}

var (
	demoOutDir string
	demoGzip   bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", "", "Config directory (empty uses built-in defaults)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "Log level override (debug, info, warn, error)")

	demoCmd.Flags().StringVarP(&demoOutDir, "out", "o", "./annotations", "Export directory for the demo session")
	demoCmd.Flags().BoolVarP(&demoGzip, "gzip", "z", false, "Gzip the exported GeoJSON")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(listCmd)
}

func setup() (*logging.SlogManager, error) {
	if err := config.Load(configDir); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	level := config.GetString("logLevel")
	if logLevel != "" {
		level = logLevel
	}

	logsDir := config.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		os.Mkdir(logsDir, 0755)
	}
	logPath := logging.LogFilePath(logsDir, "annotate", time.Now())
	logFile, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		// Stdout logging still works without the file.
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", logPath, err)
		logFile = nil
	}

	otelCfg := config.GetOTel()
	if otelCfg.Enabled && logFile != nil {
		otelProvider, err = otel.New(otel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    logFile,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize telemetry: %v\n", err)
			otelProvider = nil
		}
	}

	var logProvider *sdklog.LoggerProvider
	if otelProvider != nil {
		logProvider = otelProvider.LoggerProvider()
	}

	logManager := logging.NewSlogManager()
	// A typed nil *os.File would defeat Setup's nil check.
	if logFile != nil {
		logManager.Setup(logFile, level, logProvider)
	} else {
		logManager.Setup(nil, level, logProvider)
	}
	return logManager, nil
}

func runList(cmd *cobra.Command, args []string) error {
	logManager, err := setup()
	if err != nil {
		return err
	}

	backend, err := storage.NewBackend(storage.LoadConfig(), logManager)
	if err != nil {
		return fmt.Errorf("creating backend: %w", err)
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("initializing backend: %w", err)
	}
	defer backend.Close()

	recs, err := backend.ListFeatures()
	if err != nil {
		return fmt.Errorf("listing features: %w", err)
	}

	for _, rec := range recs {
		fmt.Printf("%-12s %-10s %-10s size=%.1fm rotation=%.1f°\n",
			rec.ID, rec.Properties.ShapeType, rec.Properties.MapElementType,
			rec.Properties.Size, rec.Properties.RotationDeg)
	}
	fmt.Printf("%d feature(s)\n", len(recs))
	return nil
}

func main() {
	err := rootCmd.Execute()
	if otelProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if serr := otelProvider.Shutdown(ctx); serr != nil {
			fmt.Fprintf(os.Stderr, "telemetry shutdown: %v\n", serr)
		}
		cancel()
	}
	if err != nil {
		os.Exit(1)
	}
}
