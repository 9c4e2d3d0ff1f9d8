package pipeline

import "github.com/filmlane/classifier/core/document"

// marginRule is one row of the spacing table, keyed by (previous, current)
// format pair.
type marginRule struct {
	prev, current document.FormatID
}

// marginTable maps a (previous, current) pair to the margin-top, in points,
// an emitted block of type current should carry given the type that came
// immediately before it.
var marginTable = map[marginRule]int{
	{"", document.Basmala}:                                     0,
	{document.Character, document.Dialogue}:                    0,
	{document.Character, document.Parenthetical}:                0,
	{document.Parenthetical, document.Dialogue}:                 0,
	{document.SceneHeader2, document.SceneHeader3}:               0,
	{document.SceneHeader3, document.Action}:                     12,
	{document.Action, document.Action}:                           12,
	{document.Action, document.Character}:                        12,
	{document.Action, document.Transition}:                       12,
	{document.Dialogue, document.Character}:                      12,
	{document.Dialogue, document.Action}:                         12,
	{document.Dialogue, document.Transition}:                     12,
	{document.Parenthetical, document.Character}:                 0,
	{document.Parenthetical, document.Action}:                    0,
	{document.Parenthetical, document.Transition}:                0,
	{document.Transition, document.SceneHeader1}:                 12,
	{document.Transition, document.SceneHeaderTopLine}:           12,
}

// basmalaAnyMargin is the wildcard "basmala → any" margin rule; it is checked
// separately since marginTable keys the current side, not a wildcard.
const basmalaAnyMargin = 0

// marginFor computes an emitted block's margin-top given the format of the
// block immediately before it in the resolved sequence. The zero-value
// FormatID ("") signals "no previous block", which only the basmala rule
// and the default both handle the same way.
func marginFor(prev, current document.FormatID) int {
	if prev == document.Basmala {
		return basmalaAnyMargin
	}
	if m, ok := marginTable[marginRule{prev, current}]; ok {
		return m
	}
	return document.MarginUnspecified
}

// emit attaches spacing metadata to each classified item in sequence
// order.
func emit(items []ClassifiedItem) []EmittedItem {
	out := make([]EmittedItem, len(items))
	var prev document.FormatID
	for i, item := range items {
		out[i] = EmittedItem{ClassifiedItem: item, MarginTopPt: marginFor(prev, item.FormatID)}
		prev = item.FormatID
	}
	return out
}
