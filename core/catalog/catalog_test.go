package catalog

import (
	"testing"

	"github.com/filmlane/classifier/core/patternpack"
	"github.com/filmlane/classifier/core/review"
	"github.com/filmlane/classifier/plugin"
)

func TestBuild_BuiltinOnly(t *testing.T) {
	entries := Build(nil, nil)
	if len(entries) == 0 {
		t.Fatal("expected built-in categories")
	}
	for _, e := range entries {
		if e.Source != SourceBuiltin {
			t.Errorf("expected only built-in entries, got %+v", e)
		}
	}
}

func TestBuild_IncludesPatternPack(t *testing.T) {
	v, err := patternpack.ParseVersion("1.2.0")
	if err != nil {
		t.Fatalf("ParseVersion: %v", err)
	}
	bundles := []patternpack.Bundle{
		{Manifest: patternpack.Manifest{
			Name:                 "studio-acme",
			Version:              v,
			AdditionalPlaceNames: []string{"فندق"},
		}},
	}
	entries := Build(bundles, nil)

	found := false
	for _, e := range entries {
		if e.Source == SourcePatternPack && e.Origin == "studio-acme@1.2.0" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a pattern-pack entry naming studio-acme@1.2.0, got %+v", entries)
	}
}

type catalogFakeLexicon struct{ name string }

func (f catalogFakeLexicon) Name() string                 { return f.name }
func (f catalogFakeLexicon) PlaceNamePrefixes() []string   { return nil }
func (f catalogFakeLexicon) InvalidSingleTokens() []string { return nil }

type catalogFakeDetector struct{ name string }

func (f catalogFakeDetector) Name() string { return f.name }
func (f catalogFakeDetector) Detect(lines []review.ClassifiedLine, i int) *review.Finding {
	return nil
}

func TestBuild_IncludesPlugins(t *testing.T) {
	host := plugin.NewHost()
	_ = host.RegisterLexicon(catalogFakeLexicon{name: "studio-lexicon"})
	_ = host.RegisterDetector(catalogFakeDetector{name: "studio-detector"})

	entries := Build(nil, host)

	var sawLexicon, sawDetector bool
	for _, e := range entries {
		if e.Source == SourcePlugin && e.Category == "lexicon-plugin" && e.Origin == "studio-lexicon" {
			sawLexicon = true
		}
		if e.Source == SourcePlugin && e.Category == "detector-plugin" && e.Origin == "studio-detector" {
			sawDetector = true
		}
	}
	if !sawLexicon || !sawDetector {
		t.Errorf("expected both plugin entries, got %+v", entries)
	}
}
