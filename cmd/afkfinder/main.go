// Command afkfinder is the CLI entry point around the afkfinder library: it
// parses the five positional arguments and tuning flags, wires the
// optional wasm validator plugin, runs the pipeline, and writes a CSV
// file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"afkfinder/internal/config"
	"afkfinder/internal/pipeline"
	"afkfinder/internal/progress"
	"afkfinder/internal/report"
)

// cancellationGrace bounds how long the orchestrator is given to unwind
// after a cancellation signal before the process forcibly exits.
const cancellationGrace = 5 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	log.SetOutput(stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	fs := flag.NewFlagSet("afkfinder", flag.ContinueOnError)
	fs.SetOutput(stderr)

	out := fs.String("out", "afkpoints.csv", "output CSV file path")
	centerOffset := fs.Int("centerOffset", 0, "block offset added to chunk*16 when computing monument center")
	pairwiseA := fs.Int("pairwiseBlocksStageA", 256, "Stage A isolation threshold in blocks")
	pairwiseGroup := fs.Int("pairwiseBlocks", 224, "Stage B/C isolation threshold in blocks")
	keepAll := fs.Bool("keepAll", false, "disable all pruning (correctness testing)")
	localStep := fs.Int("localStep", 32, "coarse-scan lattice step")
	keepTop := fs.Int("keepTop", 40, "number of coarse-scan seeds retained for refinement")
	refineRadius := fs.Int("refineRadius", 24, "refinement search radius in blocks")
	refineSteps := fs.String("refineSteps", "4,2,1", "comma-separated descending refinement step sizes")
	requireOutside24 := fs.Bool("requireOutside24", true, "enforce the inner 24-block annulus exclusion")
	anchorBatchSize := fs.Int("batchSize", 25000, "GroupEnumerator anchor batch size")
	validatorBatchSize := fs.Int("validatorBatchSize", 10000, "validator call batch size")
	validatorWasmPath := fs.String("validatorWasmPath", "", "optional path to a wasm biome-viability validator plugin")
	validatorVersion := fs.Int("validatorVersion", 0, "game-version ordinal passed to the validator's create call")

	if err := fs.Parse(args); err != nil {
		return exitArgError(err)
	}

	positional := fs.Args()
	if len(positional) != 5 {
		return exitArgError(fmt.Errorf("expected 5 positional arguments <seed> <type> <rangeBlocks> <excludeRadius> <threads>, got %d", len(positional)))
	}

	seed, err := strconv.ParseInt(positional[0], 10, 64)
	if err != nil {
		return exitArgError(fmt.Errorf("invalid seed %q: %w", positional[0], err))
	}
	groupSize, err := config.ParseGroupSize(positional[1])
	if err != nil {
		return exitArgError(err)
	}
	rangeBlocks, err := strconv.Atoi(positional[2])
	if err != nil {
		return exitArgError(fmt.Errorf("invalid rangeBlocks %q: %w", positional[2], err))
	}
	excludeRadius, err := strconv.Atoi(positional[3])
	if err != nil {
		return exitArgError(fmt.Errorf("invalid excludeRadius %q: %w", positional[3], err))
	}
	threads, err := strconv.Atoi(positional[4])
	if err != nil {
		return exitArgError(fmt.Errorf("invalid threads %q: %w", positional[4], err))
	}

	steps, err := parseRefineSteps(*refineSteps)
	if err != nil {
		return exitArgError(err)
	}

	cfg, err := config.New(seed, groupSize, rangeBlocks, excludeRadius, threads)
	if err != nil {
		return exitArgError(err)
	}
	cfg.CenterOffset = *centerOffset
	cfg.PairwiseBlocksStageA = *pairwiseA
	cfg.PairwiseBlocksGroup = *pairwiseGroup
	cfg.KeepAll = *keepAll
	cfg.LocalStep = *localStep
	cfg.KeepTop = *keepTop
	cfg.RefineRadius = *refineRadius
	cfg.RefineSteps = steps
	cfg.RequireOutside24 = *requireOutside24
	cfg.AnchorBatchSize = *anchorBatchSize
	cfg.ValidatorBatchSize = *validatorBatchSize
	cfg.ValidatorWasmPath = *validatorWasmPath
	cfg.ValidatorVersion = int32(*validatorVersion)
	if err := cfg.Validate(); err != nil {
		return exitArgError(err)
	}

	validator, err := pipeline.WireValidator(cfg)
	if err != nil {
		var pErr *pipeline.Error
		if e, ok := err.(*pipeline.Error); ok {
			pErr = e
		}
		if pErr != nil && pErr.Kind == pipeline.ValidatorMissing {
			log.Printf("warning: %v; proceeding without biome validation", err)
		} else {
			log.Printf("fatal: %v", err)
			return 2
		}
	}
	defer validator.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracker := progress.NewTracker("stageA", 0)
	done := make(chan struct{})
	go watchCancellation(ctx, done, stderr)
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				log.Print(tracker.Line())
			}
		}
	}()

	results, err := pipeline.Run(ctx, cfg, validator, tracker)
	close(done)
	if err != nil {
		log.Printf("fatal: %v", err)
		return exitCodeFor(err)
	}

	rows := make([]report.Row, len(results))
	for i, r := range results {
		rows[i] = report.RowFromResult(positional[1], cfg.CenterOffset, r)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Printf("fatal: creating output file: %v", err)
		return 3
	}
	defer f.Close()
	if err := report.WriteCSV(f, rows); err != nil {
		log.Printf("fatal: writing CSV: %v", err)
		return 3
	}

	fmt.Fprintf(stdout, "%s: %d AFK spots\n", *out, len(rows))
	return 0
}

// watchCancellation enforces the bounded grace window: if the pipeline
// hasn't returned cancellationGrace after ctx is canceled, the process
// aborts rather than hang on an uncancellable worker.
func watchCancellation(ctx context.Context, done <-chan struct{}, stderr *os.File) {
	select {
	case <-done:
		return
	case <-ctx.Done():
	}
	select {
	case <-done:
	case <-time.After(cancellationGrace):
		fmt.Fprintln(stderr, "afkfinder: pipeline did not shut down within the grace window, aborting")
		os.Exit(4)
	}
}

func parseRefineSteps(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	steps := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid refineSteps %q: %w", s, err)
		}
		steps = append(steps, v)
	}
	return steps, nil
}

func exitArgError(err error) int {
	log.Printf("argument error: %v", err)
	return 1
}

func exitCodeFor(err error) int {
	var pErr *pipeline.Error
	if e, ok := err.(*pipeline.Error); ok {
		pErr = e
	}
	if pErr == nil {
		return 2
	}
	switch pErr.Kind {
	case pipeline.Interrupted:
		return 130
	default:
		return 2
	}
}
