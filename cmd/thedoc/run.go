package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/thedoc/internal/config"
	"git.home.luguber.info/inful/thedoc/internal/dialect"
	"git.home.luguber.info/inful/thedoc/internal/discovery"
	"git.home.luguber.info/inful/thedoc/internal/engine"
	apperrors "git.home.luguber.info/inful/thedoc/internal/errors"
	"git.home.luguber.info/inful/thedoc/internal/logfields"
	"git.home.luguber.info/inful/thedoc/internal/metrics"
	"git.home.luguber.info/inful/thedoc/internal/preview"
	"git.home.luguber.info/inful/thedoc/internal/relnotes"
	"git.home.luguber.info/inful/thedoc/internal/render"
	"git.home.luguber.info/inful/thedoc/internal/state"
	"git.home.luguber.info/inful/thedoc/internal/version"
)

func runInit(configPath, name string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	if name == "" {
		if wd, err := os.Getwd(); err == nil {
			name = filepath.Base(wd)
		}
	}
	cfg := config.Default(name)
	if err := config.Save(cfg, configPath); err != nil {
		return err
	}
	slog.Info("Configuration written", logfields.Path(configPath), logfields.Name(cfg.ProjectName))
	return nil
}

// configuredRegistry restricts the built-in registry to the dialects the
// configuration enables.
func configuredRegistry(cfg *config.Config) *dialect.Registry {
	full := engine.DefaultRegistry()
	var enabled []dialect.Dialect
	for _, name := range cfg.Source.Dialects {
		if d, ok := full.ByName(config.NormalizeDialect(name)); ok {
			enabled = append(enabled, d)
		}
	}
	return dialect.NewRegistry(enabled...)
}

func runGenerate(ctx context.Context, cfg *config.Config, outputDir string, incremental bool, workers int) error {
	if outputDir == "" {
		outputDir = cfg.Output.Directory
	}
	if workers == 0 {
		workers = cfg.Generate.Workers
	}
	if incremental || cfg.Generate.Incremental {
		return generateIncremental(ctx, cfg, outputDir, workers)
	}
	_, err := generate(ctx, cfg, outputDir, workers, engine.New().WithRegistry(configuredRegistry(cfg)))
	return err
}

// generate runs the full discover, extract, render pipeline once.
func generate(ctx context.Context, cfg *config.Config, outputDir string, workers int, eng *engine.Engine) (*engine.Result, error) {
	start := time.Now()

	files, err := discovery.New(cfg.Source.Roots, cfg.Source.ExcludePatterns, eng.Registry()).Discover()
	if err != nil {
		return nil, err
	}

	result, err := eng.Run(ctx, discovery.Paths(files), workers)
	if err != nil {
		return nil, err
	}
	for path, fileErr := range result.Failed {
		slog.Warn("File skipped", logfields.File(path), logfields.Error(fileErr))
	}

	if err := render.NewGenerator(cfg, outputDir).Generate(result); err != nil {
		return nil, err
	}

	slog.Info("Generation complete",
		logfields.Count(result.Items()),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return result, nil
}

// generateIncremental skips the run entirely when no discovered file's
// content hash changed since the previous run. Any change regenerates the
// whole output so cross-page references stay consistent.
func generateIncremental(ctx context.Context, cfg *config.Config, outputDir string, workers int) error {
	store, err := state.Open(cfg.Generate.StatePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	eng := engine.New().WithRegistry(configuredRegistry(cfg))
	files, err := discovery.New(cfg.Source.Roots, cfg.Source.ExcludePatterns, eng.Registry()).Discover()
	if err != nil {
		return err
	}

	hashes := make(map[string]string, len(files))
	anyChanged := false
	for _, f := range files {
		content, readErr := os.ReadFile(f.Path)
		if readErr != nil {
			return apperrors.FileReadError(f.Path, readErr)
		}
		hash := state.HashContent(content)
		hashes[f.Path] = hash
		changed, checkErr := store.Changed(ctx, f.Path, hash)
		if checkErr != nil {
			return checkErr
		}
		if changed {
			anyChanged = true
		}
	}

	pruned, err := store.Prune(ctx, discovery.Paths(files))
	if err != nil {
		return err
	}
	if !anyChanged && pruned == 0 {
		slog.Info("Output up to date, skipping generation", logfields.Count(len(files)))
		return nil
	}

	if _, err := generate(ctx, cfg, outputDir, workers, eng); err != nil {
		return err
	}
	for path, hash := range hashes {
		if err := store.Record(ctx, path, hash); err != nil {
			return err
		}
	}
	return nil
}

func runPreview(ctx context.Context, cfg *config.Config, port int) error {
	registry := prom.NewRegistry()
	eng := engine.New().
		WithRegistry(configuredRegistry(cfg)).
		WithRecorder(metrics.NewPrometheusRecorder(registry))

	outputDir := cfg.Output.Directory
	rebuild := func(ctx context.Context) error {
		_, err := generate(ctx, cfg, outputDir, cfg.Generate.Workers, eng)
		return err
	}

	server := preview.NewServer(outputDir, cfg.Source.Roots, rebuild, registry)
	return server.Run(ctx, port)
}

func runReleaseNotes(repoPath, since, name, outputPath string) error {
	if since == "" {
		tag, err := relnotes.LatestTag(repoPath)
		if err != nil {
			return err
		}
		since = tag
		if since != "" {
			slog.Info("Collecting commits since latest tag", logfields.Name(since))
		}
	}

	entries, err := relnotes.Collect(repoPath, since)
	if err != nil {
		return err
	}
	notes := relnotes.Render(name, time.Now(), entries)

	if outputPath == "" {
		fmt.Print(notes)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(notes), 0o644); err != nil {
		return apperrors.RenderError(outputPath, err)
	}
	slog.Info("Release notes written", logfields.Path(outputPath), logfields.Count(len(entries)))
	return nil
}

func runVersion() {
	fmt.Printf("thedoc %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
}
