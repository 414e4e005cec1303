package cron

import (
	"context"
	"testing"
)

type namedJob struct {
	name string
}

func (j *namedJob) Name() string              { return j.name }
func (j *namedJob) Run(context.Context) error { return nil }

func TestRegistryKeepsRegistrationOrder(t *testing.T) {
	registry := NewRegistry()
	first := &namedJob{name: "weather-collector"}
	second := &namedJob{name: "housekeeping"}
	registry.Register(first)
	registry.Register(nil)
	registry.Register(second)

	jobs := registry.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0] != first || jobs[1] != second {
		t.Fatalf("jobs returned out of order")
	}
	// ensure caller cannot mutate internal slice
	jobs[0] = nil
	if registry.Jobs()[0] == nil {
		t.Fatalf("internal slice leaked")
	}
}

func TestRegistryNames(t *testing.T) {
	registry := NewRegistry(&namedJob{name: "weather-collector"})
	names := registry.Names()
	if len(names) != 1 || names[0] != "weather-collector" {
		t.Fatalf("unexpected names %v", names)
	}
}
