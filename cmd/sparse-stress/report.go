package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/sparse/ecs"
)

type Report struct {
	Workload Workload

	// Results
	TotalSteps    int64
	TotalTime     time.Duration
	StepTime      Stats
	Ops           OpCounts
	Checks        int
	Set           ecs.Stats
	Failure       string
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Sparse Set Stress Test Report

## Workload
- **Run Duration:** {{.Workload.Duration}}
- **Max Live Entities:** {{.Workload.Entities}}
- **Page Size:** {{.Workload.PageSize}}
- **Seed:** {{.Workload.Seed}}
- **Weights:** emplace {{.Workload.Weights.Emplace}}, erase {{.Workload.Weights.Erase}}, sort {{.Workload.Weights.Sort}}, respect {{.Workload.Weights.Respect}}, shrink {{.Workload.Weights.Shrink}}

## Performance Results
- **Total Steps:** {{.TotalSteps}}
- **Total Test Time:** {{.TotalTime}}
- **Step Time:**
  - **Avg:** {{.StepTime.Avg}}
  - **Min:** {{.StepTime.Min}}
  - **Max:** {{.StepTime.Max}}
- **Operations:** emplace {{.Ops.Emplace}}, erase {{.Ops.Erase}}, sort {{.Ops.Sort}}, respect {{.Ops.Respect}}, shrink {{.Ops.Shrink}}
- **Model Checks:** {{.Checks}}

## Final Set
- Size:            {{.Set.Size}}
- Capacity:        {{.Set.Capacity}}
- Pages:           {{.Set.AllocatedPages}} allocated of {{.Set.Pages}}
- Extent:          {{.Set.Extent}}
- Fill Ratio:      {{printf "%.3f" .Set.FillRatio}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .Failure}}
## FAILURE
{{.Failure}}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
