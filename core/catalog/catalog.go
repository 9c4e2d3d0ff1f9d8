// Package catalog provides a central registry of the active pattern
// categories, loaded pattern packs, and registered plugins, for
// introspection via the CLI's --list-patterns flag.
package catalog

import (
	"sort"

	"github.com/filmlane/classifier/core/patternpack"
	"github.com/filmlane/classifier/plugin"
)

// Source distinguishes where a catalog entry's patterns come from.
type Source string

const (
	SourceBuiltin     Source = "built-in"
	SourcePatternPack Source = "pattern-pack"
	SourcePlugin      Source = "plugin"
)

// Entry is one row of the catalog: a named category of patterns and where
// it came from.
type Entry struct {
	Category string `json:"category"`
	Source   Source `json:"source"`
	Origin   string `json:"origin,omitempty"` // pattern pack name@version or plugin name
}

// builtinCategories names the fixed regex and lexicon groups the rule-based
// classifier ships with, independent of any loaded pattern pack or plugin.
func builtinCategories() []string {
	return []string{
		"scene-number",
		"scene-time",
		"scene-location",
		"transition",
		"parenthetical",
		"action-cue",
		"inline-dialogue",
		"character-cue",
		"vocative",
		"conversational-marker",
		"pronoun-action",
		"masdar-action",
		"audio-narrative",
		"place-name-prefix",
		"invalid-single-token",
	}
}

// Build assembles the full catalog: every built-in category, then one
// entry per loaded pattern pack's contributed lexicon extension, then one
// entry per registered plugin's capability.
func Build(bundles []patternpack.Bundle, host *plugin.Host) []Entry {
	var entries []Entry
	for _, name := range builtinCategories() {
		entries = append(entries, Entry{Category: name, Source: SourceBuiltin})
	}

	for _, b := range bundles {
		if len(b.Manifest.AdditionalPlaceNames) > 0 {
			entries = append(entries, Entry{
				Category: "place-name-prefix",
				Source:   SourcePatternPack,
				Origin:   b.Manifest.Name + "@" + b.Manifest.Version.String(),
			})
		}
		if len(b.Manifest.AdditionalInvalidTokens) > 0 {
			entries = append(entries, Entry{
				Category: "invalid-single-token",
				Source:   SourcePatternPack,
				Origin:   b.Manifest.Name + "@" + b.Manifest.Version.String(),
			})
		}
	}

	if host != nil {
		lexicons, detectors := host.Names()
		sort.Strings(lexicons)
		sort.Strings(detectors)
		for _, name := range lexicons {
			entries = append(entries, Entry{Category: "lexicon-plugin", Source: SourcePlugin, Origin: name})
		}
		for _, name := range detectors {
			entries = append(entries, Entry{Category: "detector-plugin", Source: SourcePlugin, Origin: name})
		}
	}

	return entries
}
