package predict

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
)

const (
	visitorsArtifact   = "visitors.json"
	totalUnitsArtifact = "total_units.json"
	itemArtifactPrefix = "item_"
)

// Registry holds the process-wide model set: loaded once at startup and
// read-only thereafter, so it may be shared across concurrent pipeline runs.
// Only the configured item identifiers are looked up; stray artifacts in the
// models directory are reported, never loaded implicitly.
type Registry struct {
	visitors   *LinearModel
	totalUnits *LinearModel
	items      map[string]*LinearModel
	itemIDs    []string

	unknown  []string
	loadErrs map[string]error
}

// LoadRegistry scans the models directory for the two day-level artifacts and
// one artifact per configured item. Per-artifact failures are captured
// individually; a missing artifact simply leaves that prediction path absent.
func LoadRegistry(dir string, itemIDs []string) (*Registry, error) {
	if len(itemIDs) == 0 {
		return nil, fmt.Errorf("at least one item identifier must be configured")
	}

	reg := &Registry{
		items:    make(map[string]*LinearModel, len(itemIDs)),
		itemIDs:  append([]string(nil), itemIDs...),
		loadErrs: make(map[string]error),
	}

	reg.visitors = reg.loadOptional(filepath.Join(dir, visitorsArtifact), "visitors")
	reg.totalUnits = reg.loadOptional(filepath.Join(dir, totalUnitsArtifact), "total_units")

	expected := map[string]struct{}{
		visitorsArtifact:   {},
		totalUnitsArtifact: {},
	}
	for _, id := range itemIDs {
		filename := itemArtifactPrefix + id + ".json"
		expected[filename] = struct{}{}
		if model := reg.loadOptional(filepath.Join(dir, filename), "item:"+id); model != nil {
			reg.items[id] = model
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading models directory: %w", err)
		}
		return reg, nil
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if _, ok := expected[entry.Name()]; !ok {
			reg.unknown = append(reg.unknown, entry.Name())
		}
	}

	return reg, nil
}

func (r *Registry) loadOptional(path, key string) *LinearModel {
	model, err := LoadModelFile(path)
	if err != nil {
		// Absence is a degraded path, not a load failure.
		if !errors.Is(err, fs.ErrNotExist) {
			r.loadErrs[key] = err
		}
		return nil
	}
	return model
}

// Visitors returns the day-level visitor model, if loaded.
func (r *Registry) Visitors() (Predictor, bool) {
	if r.visitors == nil {
		return nil, false
	}
	return r.visitors, true
}

// TotalUnits returns the day-level total-units model, if loaded.
func (r *Registry) TotalUnits() (Predictor, bool) {
	if r.totalUnits == nil {
		return nil, false
	}
	return r.totalUnits, true
}

// Item returns the model for one item identifier, if loaded.
func (r *Registry) Item(id string) (Predictor, bool) {
	model, ok := r.items[id]
	if !ok {
		return nil, false
	}
	return model, true
}

// ItemIDs returns the configured item identifiers in their configured order.
// This is the full key set every enriched record carries.
func (r *Registry) ItemIDs() []string {
	ids := make([]string, len(r.itemIDs))
	copy(ids, r.itemIDs)
	return ids
}

// ItemModelCount reports how many item models loaded successfully.
func (r *Registry) ItemModelCount() int {
	return len(r.items)
}

// Unknown lists artifacts present in the directory that match no configured
// prediction path.
func (r *Registry) Unknown() []string {
	return append([]string(nil), r.unknown...)
}

// LoadErrors exposes per-artifact load failures keyed by prediction path.
func (r *Registry) LoadErrors() map[string]error {
	out := make(map[string]error, len(r.loadErrs))
	for k, v := range r.loadErrs {
		out[k] = v
	}
	return out
}

// Err aggregates every captured load failure into one error, or nil.
func (r *Registry) Err() error {
	var combined error
	for key, err := range r.loadErrs {
		combined = multierr.Append(combined, fmt.Errorf("%s: %w", key, err))
	}
	return combined
}

// HasAnyModel reports whether at least one prediction path is usable.
func (r *Registry) HasAnyModel() bool {
	return r.visitors != nil || r.totalUnits != nil || len(r.items) > 0
}
