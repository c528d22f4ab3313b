package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pthm-cable/perlin/config"
	"github.com/pthm-cable/perlin/generator"
	"github.com/pthm-cable/perlin/noise"
	"github.com/pthm-cable/perlin/telemetry"
)

const (
	modeTile   = "tile"
	modeLayers = "layers"
	modeBoth   = "both"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV, raw fields and config snapshot")
	mode := flag.String("mode", modeBoth, "Field to generate: tile, layers or both")
	width := flag.Int("width", 0, "Image width in samples (0 = use config)")
	height := flag.Int("height", 0, "Image height in samples (0 = use config)")
	scale := flag.Int("scale", 0, "Samples per cell for the tiled field (0 = use config)")
	parallel := flag.Bool("parallel", false, "Render tiled cell rows concurrently")
	passes := flag.Int("passes", 1, "Generation passes to run (perf is averaged over them)")
	logText := flag.Bool("log-text", false, "Log as text instead of JSON")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if *logText {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *width > 0 {
		cfg.Image.Width = *width
	}
	if *height > 0 {
		cfg.Image.Height = *height
	}
	if *scale > 0 {
		cfg.Tile.Scale = *scale
	}
	cfg.Tile.Parallel = cfg.Tile.Parallel || *parallel
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(1)
	}
	cfg.ComputeDerived()

	if err := run(cfg, *mode, *passes, *outputDir); err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, mode string, passes int, outputDir string) error {
	if mode != modeTile && mode != modeLayers && mode != modeBoth {
		return fmt.Errorf("unknown mode %q", mode)
	}
	if passes < 1 {
		passes = 1
	}

	om, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	defer om.Close()

	if err := om.WriteConfig(cfg); err != nil {
		return err
	}

	w, h := cfg.Image.Width, cfg.Image.Height
	wantTile := mode == modeTile || mode == modeBoth
	wantLayers := mode == modeLayers || mode == modeBoth

	layers := make([]generator.Layer, len(cfg.Layers))
	for i, l := range cfg.Layers {
		layers[i] = generator.Layer{Scale: l.Scale, Amplitude: cfg.Derived.LayerAmplitude[i]}
	}

	slog.Info("starting generation",
		"width", w,
		"height", h,
		"mode", mode,
		"tile_scale", cfg.Tile.Scale,
		"tile_cells", cfg.Derived.TileCellsX*cfg.Derived.TileCellsY,
		"layers", len(layers),
		"parallel", cfg.Tile.Parallel,
		"passes", passes,
	)

	var tile []float32
	if wantTile {
		tile = make([]float32, w*h)
	}
	var gen *generator.Generator
	if wantLayers {
		gen = generator.New(w, h)
	}

	fieldCount := 0
	if wantTile {
		fieldCount++
	}
	if wantLayers {
		fieldCount++
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	var fields []telemetry.FieldStats

	for pass := 0; pass < passes; pass++ {
		perf.StartPass()

		if wantTile {
			perf.StartPhase(telemetry.PhaseTile, cfg.Derived.Samples)
			if cfg.Tile.Parallel {
				noise.FillTilesParallel(tile, w, h, cfg.Tile.Scale)
			} else {
				noise.FillTiles(tile, w, h, cfg.Tile.Scale)
			}
		}

		if wantLayers {
			perf.StartPhase(telemetry.PhaseLayers, cfg.Derived.Samples*len(layers))
			gen.Reset()
			gen.AddLayers(layers...)
		}

		perf.StartPhase(telemetry.PhaseStats, cfg.Derived.Samples*fieldCount)
		fields = fields[:0]
		if wantTile {
			fields = append(fields, telemetry.ComputeFieldStats(modeTile, w, h, tile))
		}
		if wantLayers {
			fields = append(fields, telemetry.ComputeFieldStats(modeLayers, w, h, gen.ImageData()))
		}

		if pass == passes-1 {
			perf.StartPhase(telemetry.PhaseOutput, 0)
			if wantTile {
				if err := writeField(om, cfg, modeTile, w, tile); err != nil {
					return err
				}
			}
			if wantLayers {
				if err := writeField(om, cfg, modeLayers, w, gen.ImageData()); err != nil {
					return err
				}
			}
		}

		perf.EndPass()
	}

	for _, s := range fields {
		s.LogStats()
		if err := om.WriteStats(s); err != nil {
			return err
		}
	}

	stats := perf.Stats()
	stats.LogStats()
	if err := om.WritePerf(stats, perf.Passes()); err != nil {
		return err
	}

	if dir := om.Dir(); dir != "" {
		slog.Info("output written", "dir", dir)
	}
	return nil
}

func writeField(om *telemetry.OutputManager, cfg *config.Config, name string, width int, data []float32) error {
	if cfg.Output.SamplesCSV {
		if err := om.WriteSamples(name, width, data); err != nil {
			return err
		}
	}
	if cfg.Output.Raw {
		if err := om.WriteRaw(name, data); err != nil {
			return err
		}
	}
	return nil
}
