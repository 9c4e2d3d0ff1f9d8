// Package badge generates shields.io-style SVG status badges summarizing a
// processed document's reviewer suspicion rate and import quality score,
// for embedding in CI output or a project README.
package badge

import (
	"fmt"
	"math"
)

// Result holds badge generation output.
type Result struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Color string `json:"color"`
	Grade string `json:"grade,omitempty"`
	SVG   string `json:"svg,omitempty"`
}

// Grade represents a quality letter grade A through F.
type Grade struct {
	Letter string
	Color  string
}

// gradeThresholds maps minimum quality scores, highest first, to letter
// grades and badge colors. A score of 1.0 (no anomalies, no suspicion)
// grades A.
var gradeThresholds = []struct {
	minScore float64
	grade    Grade
}{
	{0.95, Grade{"A", "#4c1"}},     // bright green
	{0.85, Grade{"B", "#a3c51c"}},  // yellow-green
	{0.70, Grade{"C", "#dfb317"}},  // yellow
	{0.50, Grade{"D", "#fe7d37"}},  // orange
	{0.25, Grade{"E", "#e05d44"}},  // red
}

var gradeF = Grade{"F", "#b60205"} // dark red

// GradeFromScore returns the letter grade for a combined quality score in
// [0, 1], where 1 is flawless.
func GradeFromScore(score float64) Grade {
	for _, t := range gradeThresholds {
		if score >= t.minScore {
			return t.grade
		}
	}
	return gradeF
}

// DocumentScore is the combined import-quality and reviewer-suspicion
// figure a badge summarizes.
type DocumentScore struct {
	ImportQuality    float64 // importer's informational quality score, in [0, 1]
	TotalReviewed    int
	SuspiciousLines  int
}

// SuspicionRate is the fraction of reviewed lines the reviewer escalated,
// in [0, 1]. A document with nothing reviewed has a rate of 0.
func (d DocumentScore) SuspicionRate() float64 {
	if d.TotalReviewed == 0 {
		return 0
	}
	return float64(d.SuspiciousLines) / float64(d.TotalReviewed)
}

// CombinedScore averages import quality against the inverse suspicion
// rate: a document that imported cleanly and reviewed clean scores near 1,
// one with low import quality or a high suspicion rate scores lower.
func (d DocumentScore) CombinedScore() float64 {
	return (d.ImportQuality + (1 - d.SuspicionRate())) / 2
}

// GenerateFromScore creates a badge result summarizing score under label.
func GenerateFromScore(score DocumentScore, label string) *Result {
	combined := score.CombinedScore()
	grade := GradeFromScore(combined)

	return &Result{
		Label: label,
		Value: grade.Letter,
		Color: grade.Color,
		Grade: grade.Letter,
		SVG:   GenerateSVG(label, grade.Letter, grade.Color),
	}
}

// ImportQualityBadge renders the importer's quality score alone, as a
// percentage.
func ImportQualityBadge(quality float64, label string) *Result {
	value := fmt.Sprintf("%d%%", int(math.Round(quality*100)))
	color := "#4c1"
	switch {
	case quality < 0.5:
		color = "#e05d44"
	case quality < 0.85:
		color = "#dfb317"
	}
	return &Result{
		Label: label,
		Value: value,
		Color: color,
		SVG:   GenerateSVG(label, value, color),
	}
}

// SuspicionRateBadge renders the reviewer's suspicion rate alone, as a
// percentage.
func SuspicionRateBadge(score DocumentScore, label string) *Result {
	rate := score.SuspicionRate()
	value := fmt.Sprintf("%d%%", int(math.Round(rate*100)))
	color := "#4c1"
	switch {
	case rate > 0.15:
		color = "#e05d44"
	case rate > 0.05:
		color = "#dfb317"
	}
	return &Result{
		Label: label,
		Value: value,
		Color: color,
		SVG:   GenerateSVG(label, value, color),
	}
}

// GenerateSVG produces an SVG badge string for the given label, value, and color.
func GenerateSVG(label, value, color string) string {
	labelW := textWidth(label) + 10
	valueW := textWidth(value) + 10
	totalW := labelW + valueW

	// Text positions are in tenths of a pixel (SVG uses scale(.1)).
	labelX := labelW * 10 / 2
	valueX := (labelW + valueW/2) * 10

	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%d" height="20" role="img" aria-label="%s: %s">
  <title>%s: %s</title>
  <linearGradient id="s" x2="0" y2="100%%">
    <stop offset="0" stop-color="#bbb" stop-opacity=".1"/>
    <stop offset="1" stop-opacity=".1"/>
  </linearGradient>
  <clipPath id="r">
    <rect width="%d" height="20" rx="3" fill="#fff"/>
  </clipPath>
  <g clip-path="url(#r)">
    <rect width="%d" height="20" fill="#555"/>
    <rect x="%d" width="%d" height="20" fill="%s"/>
    <rect width="%d" height="20" fill="url(#s)"/>
  </g>
  <g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" text-rendering="geometricPrecision" font-size="110">
    <text aria-hidden="true" x="%d" y="150" fill="#010101" fill-opacity=".3" transform="scale(.1)">%s</text>
    <text x="%d" y="140" transform="scale(.1)">%s</text>
    <text aria-hidden="true" x="%d" y="150" fill="#010101" fill-opacity=".3" transform="scale(.1)">%s</text>
    <text x="%d" y="140" transform="scale(.1)">%s</text>
  </g>
</svg>
`,
		totalW, label, value,
		label, value,
		totalW,
		labelW,
		labelW, valueW, color,
		totalW,
		labelX, label,
		labelX, label,
		valueX, value,
		valueX, value,
	)
}

// textWidth estimates the pixel width of a string rendered in Verdana 11px,
// matching the shields.io flat badge style.
func textWidth(s string) int {
	w := 0.0
	for _, c := range s {
		switch {
		case c >= 'A' && c <= 'Z':
			w += 7.5
		case c >= 'a' && c <= 'z':
			w += 6.1
		case c >= '0' && c <= '9':
			w += 6.5
		case c == ' ':
			w += 3.3
		default:
			w += 6.0
		}
	}
	return int(math.Ceil(w))
}
