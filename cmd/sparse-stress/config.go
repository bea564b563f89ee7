package main

import (
	"fmt"
	"os"
	"time"

	"github.com/plus3/sparse/ecs"
	"gopkg.in/yaml.v3"
)

// Workload describes one stress run. It can be loaded from a YAML file and
// is then overridden by any flag given on the command line.
type Workload struct {
	Duration time.Duration `yaml:"duration"`
	Entities int           `yaml:"entities"`
	PageSize int           `yaml:"page_size"`
	Seed     uint64        `yaml:"seed"`

	// Relative weights of the operations applied each step.
	Weights Weights `yaml:"weights"`

	// Check the set against the reference model every CheckEvery steps.
	CheckEvery int `yaml:"check_every"`
}

type Weights struct {
	Emplace int `yaml:"emplace"`
	Erase   int `yaml:"erase"`
	Sort    int `yaml:"sort"`
	Respect int `yaml:"respect"`
	Shrink  int `yaml:"shrink"`
}

func (w Weights) total() int {
	return w.Emplace + w.Erase + w.Sort + w.Respect + w.Shrink
}

func defaultWorkload() Workload {
	return Workload{
		Duration: 10 * time.Second,
		Entities: 10000,
		PageSize: 4096,
		Seed:     1,
		Weights: Weights{
			Emplace: 50,
			Erase:   45,
			Sort:    2,
			Respect: 2,
			Shrink:  1,
		},
		CheckEvery: 10000,
	}
}

// loadWorkload reads path over the defaults.
func loadWorkload(path string) (Workload, error) {
	w := defaultWorkload()
	data, err := os.ReadFile(path)
	if err != nil {
		return w, err
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("parse workload %s: %w", path, err)
	}
	return w, w.validate()
}

func (w Workload) validate() error {
	switch {
	case w.Entities <= 0:
		return fmt.Errorf("entities must be positive, got %d", w.Entities)
	case w.Entities >= int(ecs.IndexMask[ecs.Entity]())-1:
		return fmt.Errorf("entities must be below %d, got %d", ecs.IndexMask[ecs.Entity]()-1, w.Entities)
	case w.PageSize <= 0 || w.PageSize&(w.PageSize-1) != 0:
		return fmt.Errorf("page size must be a power of two, got %d", w.PageSize)
	case w.Weights.total() <= 0:
		return fmt.Errorf("at least one operation weight must be positive")
	case w.CheckEvery <= 0:
		return fmt.Errorf("check_every must be positive, got %d", w.CheckEvery)
	}
	return nil
}
