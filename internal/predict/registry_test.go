package predict

import (
	"testing"
)

const visitorsJSON = `{
	"name": "visitors",
	"features": ["avg_temp_c", "day_of_week", "month", "weather_code"],
	"coefficients": [0.1, 0.0, 0.0, 1.0],
	"intercept": 8.0
}`

const totalUnitsJSON = `{
	"name": "total_units",
	"features": ["avg_temp_c", "day_of_week", "month", "weather_code"],
	"coefficients": [0.2, 0.0, 0.0, 2.0],
	"intercept": 4.0
}`

const ipaJSON = `{
	"name": "item_ipa",
	"features": ["visitors", "total_units", "avg_temp_c", "day_of_week", "month", "weather_code"],
	"coefficients": [0.5, 0.0, 0.0, 0.0, 0.0, 0.0],
	"intercept": 1.0
}`

func TestLoadRegistryFullSet(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "visitors.json", visitorsJSON)
	writeArtifact(t, dir, "total_units.json", totalUnitsJSON)
	writeArtifact(t, dir, "item_ipa.json", ipaJSON)

	reg, err := LoadRegistry(dir, []string{"ipa", "lager"})
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}

	if _, ok := reg.Visitors(); !ok {
		t.Fatal("expected visitors model")
	}
	if _, ok := reg.TotalUnits(); !ok {
		t.Fatal("expected total units model")
	}
	if _, ok := reg.Item("ipa"); !ok {
		t.Fatal("expected ipa model")
	}
	if _, ok := reg.Item("lager"); ok {
		t.Fatal("expected lager model to be absent")
	}
	if reg.ItemModelCount() != 1 {
		t.Fatalf("expected 1 item model got %d", reg.ItemModelCount())
	}
	if err := reg.Err(); err != nil {
		t.Fatalf("expected no load errors, got %v", err)
	}
}

func TestLoadRegistryCapturesPerArtifactErrors(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "visitors.json", `{not json`)
	writeArtifact(t, dir, "item_ipa.json", ipaJSON)

	reg, err := LoadRegistry(dir, []string{"ipa"})
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}

	if _, ok := reg.Visitors(); ok {
		t.Fatal("corrupt visitors artifact must not load")
	}
	if _, ok := reg.Item("ipa"); !ok {
		t.Fatal("valid ipa artifact should still load")
	}
	loadErrs := reg.LoadErrors()
	if _, ok := loadErrs["visitors"]; !ok {
		t.Fatalf("expected captured visitors load error, got %v", loadErrs)
	}
	if reg.Err() == nil {
		t.Fatal("expected aggregated error")
	}
}

func TestLoadRegistryReportsUnknownArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "visitors.json", visitorsJSON)
	writeArtifact(t, dir, "item_mystery.json", ipaJSON)

	reg, err := LoadRegistry(dir, []string{"ipa"})
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}

	unknown := reg.Unknown()
	if len(unknown) != 1 || unknown[0] != "item_mystery.json" {
		t.Fatalf("expected item_mystery.json reported, got %v", unknown)
	}
	if _, ok := reg.Item("mystery"); ok {
		t.Fatal("unconfigured artifacts must never load")
	}
}

func TestLoadRegistryMissingDirDegradesEverything(t *testing.T) {
	reg, err := LoadRegistry(t.TempDir()+"/nope", []string{"ipa"})
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	if reg.HasAnyModel() {
		t.Fatal("expected empty registry")
	}
	if err := reg.Err(); err != nil {
		t.Fatalf("missing dir is absence, not a load error: %v", err)
	}
}

func TestLoadRegistryRequiresItems(t *testing.T) {
	if _, err := LoadRegistry(t.TempDir(), nil); err == nil {
		t.Fatal("expected error when no items configured")
	}
}
