package ecs

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'sparse'
func tracer() tracing.Trace {
	return tracing.Select("sparse")
}
