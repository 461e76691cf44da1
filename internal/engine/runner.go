package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/animcurve/internal/animation"
	"github.com/ivlev/animcurve/internal/config"
	"github.com/ivlev/animcurve/internal/system"
)

const benchmarkLog = "benchmark.log"

// Runner processes several recordings concurrently. Each recording gets its
// own container and session; only the name registry is shared.
type Runner struct {
	Config       *config.Config
	Registry     *animation.Registry
	BenchmarkLog string
}

func NewRunner(cfg *config.Config) *Runner {
	return &Runner{Config: cfg, Registry: animation.NewRegistry(), BenchmarkLog: benchmarkLog}
}

// Run processes paths with at most Config.Workers in flight and returns
// results in input order. The first failure cancels recordings not yet
// started.
func (r *Runner) Run(ctx context.Context, paths []string) ([]*Result, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no recordings to process")
	}
	startTime := time.Now()

	fmt.Println("--- [PROJECT: CURVE EDITOR] ---")
	fmt.Printf("[*] Input: %s | Recordings: %d | Workers: %d\n", r.Config.InputPath, len(paths), r.workers(len(paths)))
	fmt.Println("-----------------------------")

	project := NewProject(r.Config, r.Registry)
	results := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers(len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := project.Run(path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if r.Config.ShowStats {
		r.report(paths, results, time.Since(startTime))
	}
	return results, nil
}

func (r *Runner) workers(n int) int {
	w := r.Config.Workers
	if w <= 0 {
		w = 1
	}
	if w > n {
		w = n
	}
	return w
}

func (r *Runner) report(paths []string, results []*Result, total time.Duration) {
	rep := system.Report{
		Build:      r.Config.BuildVersion,
		Input:      r.Config.InputPath,
		Recordings: len(paths),
		Total:      total,
	}
	for _, res := range results {
		rep.Keyframes += res.Keyframes
		rep.Replay += res.Replay
		rep.Export += res.Export
	}

	stats, err := system.Sample()
	if err != nil {
		log.Printf("[!] Partial system stats: %v", err)
	}
	rep.Stats = stats
	fmt.Print(rep.String())

	if r.BenchmarkLog == "" {
		return
	}
	if err := system.AppendBenchmark(r.BenchmarkLog, rep); err != nil {
		fmt.Printf("[!] Failed to write %s: %v\n", r.BenchmarkLog, err)
	}
}
