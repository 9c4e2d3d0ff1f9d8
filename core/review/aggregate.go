package review

import (
	"context"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/filmlane/classifier/config"
	"github.com/filmlane/classifier/core/document"
)

// detectorConcurrency bounds how many lines are scored in parallel. The
// five built-in detectors plus any plugin detectors only read lines, never
// mutate them, so scoring is safe to fan out the way the plugin host fans
// out tool invocations across plugins.
func detectorConcurrency() int {
	if n := runtime.GOMAXPROCS(0); n > 1 {
		return n
	}
	return 1
}

// LineVerdict is the aggregated outcome of running every detector over one
// line: its total suspicion score and the findings that produced it.
type LineVerdict struct {
	LineIndex     int
	FormatID      document.FormatID
	Total         int
	Findings      []Finding
	SuggestedType document.FormatID
}

// RunDetectors runs all five detectors over lines and returns one verdict
// per line that produced at least one finding.
func RunDetectors(lines []ClassifiedLine) []LineVerdict {
	return RunDetectorsWithPlugins(lines, nil)
}

// PluginDetectorFunc runs every registered detector plugin against
// lines[i] and returns the findings they produced. It exists so this
// package never imports the plugin package that depends on it.
type PluginDetectorFunc func(lines []ClassifiedLine, i int) []Finding

// RunDetectorsWithPlugins runs the five built-in detectors plus, for each
// line, any findings pluginDetectors returns, and returns one verdict per
// line that produced at least one finding. pluginDetectors may be nil.
func RunDetectorsWithPlugins(lines []ClassifiedLine, pluginDetectors PluginDetectorFunc) []LineVerdict {
	perLine := make([]*LineVerdict, len(lines))

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(detectorConcurrency())

	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			var findings []Finding
			if f := DetectSequenceViolation(lines, i); f != nil {
				findings = append(findings, *f)
			}
			if f := DetectContentTypeMismatch(line); f != nil {
				findings = append(findings, *f)
			}
			if f := DetectSplitNameFragment(lines, i); f != nil {
				findings = append(findings, *f)
			}
			if f := DetectStatisticalAnomaly(line); f != nil {
				findings = append(findings, *f)
			}
			if f := DetectConfidenceDrop(line); f != nil {
				findings = append(findings, *f)
			}
			if pluginDetectors != nil {
				findings = append(findings, pluginDetectors(lines, i)...)
			}
			if len(findings) == 0 {
				return nil
			}
			perLine[i] = &LineVerdict{
				LineIndex:     i,
				FormatID:      line.FormatID,
				Total:         aggregate(findings),
				Findings:      findings,
				SuggestedType: firstSuggestion(findings),
			}
			return nil
		})
	}
	g.Wait()

	var verdicts []LineVerdict
	for _, v := range perLine {
		if v != nil {
			verdicts = append(verdicts, *v)
		}
	}
	return verdicts
}

// aggregate combines a line's findings into a single 0-99 suspicion total:
// the top score plus 30% of the rest, sorted descending first.
func aggregate(findings []Finding) int {
	if len(findings) == 0 {
		return 0
	}
	sorted := append([]Finding(nil), findings...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })

	if len(sorted) == 1 {
		return sorted[0].Score
	}

	rest := 0
	for _, f := range sorted[1:] {
		rest += f.Score
	}
	total := int(math.Round(float64(sorted[0].Score) + 0.3*float64(rest)))
	if total > 99 {
		total = 99
	}
	return total
}

// firstSuggestion returns the first non-empty SuggestedType across
// findings, in their original detector order.
func firstSuggestion(findings []Finding) document.FormatID {
	for _, f := range findings {
		if f.SuggestedType != "" {
			return f.SuggestedType
		}
	}
	return ""
}

// IsSuspicious applies the escalation gate: a verdict's total must clear
// the threshold, and either carry enough independent findings or be severe
// enough on its own.
func IsSuspicious(v LineVerdict, cfg config.ReviewerSettings) bool {
	if v.Total < cfg.SuspicionThreshold {
		return false
	}
	return len(v.Findings) >= cfg.MinSignalsForSuspicion || v.Total >= cfg.HighSeveritySingleSignal
}

// Trim keeps at most ceil(n * maxRatio) suspicious verdicts, ordered by
// descending total, where n is the total number of lines reviewed.
func Trim(verdicts []LineVerdict, n int, cfg config.ReviewerSettings) []LineVerdict {
	var suspicious []LineVerdict
	for _, v := range verdicts {
		if IsSuspicious(v, cfg) {
			suspicious = append(suspicious, v)
		}
	}
	sort.SliceStable(suspicious, func(i, j int) bool { return suspicious[i].Total > suspicious[j].Total })

	limit := int(math.Ceil(float64(n) * cfg.MaxSuspicionRatio))
	if limit < 0 {
		limit = 0
	}
	if len(suspicious) > limit {
		suspicious = suspicious[:limit]
	}
	return suspicious
}
