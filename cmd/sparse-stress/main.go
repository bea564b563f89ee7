// Command sparse-stress runs a random workload against a sparse set storage
// and checks it against a reference model, then prints a report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML workload file. Flags given explicitly override it.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The maximum number of live entities.")
	pageSize := flag.Int("page-size", 4096, "Slots per sparse page, a power of two.")
	seed := flag.Uint64("seed", 1, "Seed of the random workload.")
	checkEvery := flag.Int("check-every", 10000, "Steps between two checks against the reference model.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the current directory.")
	flag.Parse()

	workload := defaultWorkload()
	if *configPath != "" {
		var err error
		if workload, err = loadWorkload(*configPath); err != nil {
			log.Fatalf("Failed to load workload: %v", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			workload.Duration = *duration
		case "entities":
			workload.Entities = *entityCount
		case "page-size":
			workload.PageSize = *pageSize
		case "seed":
			workload.Seed = *seed
		case "check-every":
			workload.CheckEvery = *checkEvery
		}
	})
	if err := workload.validate(); err != nil {
		log.Fatalf("Invalid workload: %v", err)
	}

	if err := run(workload, *profileMode); err != nil {
		log.Fatalf("Stress test failed: %v", err)
	}
	log.Println("Stress test complete.")
}

func run(workload Workload, profileMode string) error {
	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", profileMode)
	}

	log.Println("Starting sparse set stress test...")

	r := newRunner(workload)
	report := &Report{
		Workload: workload,
		StepTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Populating storage with %d entities...\n", workload.Entities)
	if err := r.populate(); err != nil {
		return fmt.Errorf("populate: %w", err)
	}

	log.Printf("Running workload for %s...\n", workload.Duration)
	ctx, cancel := context.WithTimeout(context.Background(), workload.Duration)
	defer cancel()

	startTime := time.Now()
	var totalSteps int64
	var failure error

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			stepStart := time.Now()
			failure = r.step()
			report.StepTime.Samples = append(report.StepTime.Samples, time.Since(stepStart))
			totalSteps++

			if failure == nil && totalSteps%int64(workload.CheckEvery) == 0 {
				failure = r.check()
			}
			if failure != nil {
				break Loop
			}
		}
	}
	if failure == nil {
		failure = r.check()
	}

	report.TotalTime = time.Since(startTime)
	report.TotalSteps = totalSteps
	report.Ops = r.ops
	report.Checks = r.checks
	report.Set = r.store.Set().Stats()
	report.StepTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	if failure != nil {
		report.Failure = failure.Error()
	}

	log.Println("Workload finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")

	return failure
}
