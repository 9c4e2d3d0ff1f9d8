// Package plugin is the in-process capability port the rule-based
// classifier and reviewer expose for future extension. A capability here
// is a Go value registered at process startup, not a separate binary
// speaking a wire protocol over a subprocess or gRPC boundary.
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/filmlane/classifier/core/review"
)

// LexiconPlugin contributes extra vocabulary to the built-in Arabic lexicon
// tables, the in-process equivalent of a pattern pack that never needs
// signing because it ships inside the binary.
type LexiconPlugin interface {
	// Name identifies the plugin for diagnostics and the catalog listing.
	Name() string
	// PlaceNamePrefixes returns additional scene-header place-name prefixes
	// this plugin contributes.
	PlaceNamePrefixes() []string
	// InvalidSingleTokens returns additional tokens that should never stand
	// alone as a character cue.
	InvalidSingleTokens() []string
}

// DetectorPlugin contributes an extra reviewer detector alongside the five
// built in to core/review. A detector plugin is pure: it must not mutate
// lines and must be safe for concurrent use across sessions.
type DetectorPlugin interface {
	Name() string
	// Detect runs the plugin's check for lines[i] against its neighbors and
	// returns at most one finding, or nil if nothing is suspicious.
	Detect(lines []review.ClassifiedLine, i int) *review.Finding
}

// Host is the in-process registry both capability kinds are registered
// with. A Host is safe for concurrent registration and lookup.
type Host struct {
	mu        sync.RWMutex
	lexicons  map[string]LexiconPlugin
	detectors map[string]DetectorPlugin
}

// NewHost returns an empty Host ready for registration.
func NewHost() *Host {
	return &Host{
		lexicons:  make(map[string]LexiconPlugin),
		detectors: make(map[string]DetectorPlugin),
	}
}

// RegisterLexicon adds p to the host, rejecting a second plugin under the
// same name.
func (h *Host) RegisterLexicon(p LexiconPlugin) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.lexicons[p.Name()]; exists {
		return fmt.Errorf("plugin: lexicon plugin %q already registered", p.Name())
	}
	h.lexicons[p.Name()] = p
	return nil
}

// RegisterDetector adds p to the host, rejecting a second plugin under the
// same name.
func (h *Host) RegisterDetector(p DetectorPlugin) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.detectors[p.Name()]; exists {
		return fmt.Errorf("plugin: detector plugin %q already registered", p.Name())
	}
	h.detectors[p.Name()] = p
	return nil
}

// Lexicons returns every registered lexicon plugin, in no particular order.
func (h *Host) Lexicons() []LexiconPlugin {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]LexiconPlugin, 0, len(h.lexicons))
	for _, p := range h.lexicons {
		out = append(out, p)
	}
	return out
}

// Detectors returns every registered detector plugin, in no particular
// order.
func (h *Host) Detectors() []DetectorPlugin {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]DetectorPlugin, 0, len(h.detectors))
	for _, p := range h.detectors {
		out = append(out, p)
	}
	return out
}

// Names returns the registered names of each capability kind as two lists,
// each sorted for stable catalog output.
func (h *Host) Names() (lexicons []string, detectors []string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for name := range h.lexicons {
		lexicons = append(lexicons, name)
	}
	for name := range h.detectors {
		detectors = append(detectors, name)
	}
	sort.Strings(lexicons)
	sort.Strings(detectors)
	return lexicons, detectors
}

// RunDetectorPlugins runs every registered detector plugin against
// lines[i] and returns the findings they produced, in no particular order.
func (h *Host) RunDetectorPlugins(lines []review.ClassifiedLine, i int) []review.Finding {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var findings []review.Finding
	for _, p := range h.detectors {
		if f := p.Detect(lines, i); f != nil {
			findings = append(findings, *f)
		}
	}
	return findings
}

// ApplyLexicons merges every registered lexicon plugin's contributions using
// apply, the same merge function core/patternpack.Apply uses for a signed
// bundle's manifest.
func (h *Host) ApplyLexicons(apply func(placeNamePrefixes, invalidTokens []string)) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, p := range h.lexicons {
		apply(p.PlaceNamePrefixes(), p.InvalidSingleTokens())
	}
}
