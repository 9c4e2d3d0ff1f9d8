package pipeline

import (
	"strings"
	"testing"

	"github.com/filmlane/classifier/config"
	"github.com/filmlane/classifier/core/document"
	"github.com/filmlane/classifier/core/store"
)

func runOpts(s store.Store) Options {
	return Options{
		Source:      SourceClipboard,
		SessionID:   "sid-1",
		Store:       s,
		Config:      config.Default(),
		TestRuntime: true,
	}
}

func TestExtractPlainTextStripsHTMLAndDomTokens(t *testing.T) {
	raw := "<div>مشهد 1</div>@dom-element:482<p>نهار - داخلي</p>"
	out := ExtractPlainText(raw)
	if strings.Contains(out, "@dom-element") || strings.Contains(out, "<") {
		t.Errorf("expected tags and dom tokens stripped, got %q", out)
	}
}

func TestRunClassifiesSimpleScreenplay(t *testing.T) {
	s := store.NewMemStore()
	raw := "مشهد 1\nداخلي - ليل\nأحمد يدخل الغرفة بهدوء\nأحمد: مرحبا بك في بيتي"

	result, err := Run(raw, runOpts(s))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Blocks) == 0 {
		t.Fatalf("expected blocks, got none")
	}
	if result.BatchID == "" {
		t.Errorf("expected a batch id")
	}

	var sawCharacter, sawDialogue bool
	for _, b := range result.Blocks {
		if b.FormatID == document.Character {
			sawCharacter = true
		}
		if b.FormatID == document.Dialogue {
			sawDialogue = true
		}
	}
	if !sawCharacter || !sawDialogue {
		t.Errorf("expected both character and dialogue blocks, got %+v", result.Blocks)
	}
}

func TestRunPersistsSessionMemory(t *testing.T) {
	s := store.NewMemStore()
	opts := runOpts(s)
	if _, err := Run("أحمد:\nمرحبا", opts); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := Run("سارة:\nأهلا", opts); err != nil {
		t.Fatalf("Run: %v", err)
	}
	result, err := Run("كريم:\nكيف حالك", opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.MemoryRecord.CommonCharacters) == 0 {
		t.Errorf("expected accumulated character names across runs")
	}
}

func TestRunInlineSpeakerSplit(t *testing.T) {
	s := store.NewMemStore()
	result, err := Run("ليلى: أين كنت طوال الليل", runOpts(s))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Blocks) != 2 {
		t.Fatalf("expected an inline speaker split into two blocks, got %d: %+v", len(result.Blocks), result.Blocks)
	}
	if result.Blocks[0].FormatID != document.Character || result.Blocks[1].FormatID != document.Dialogue {
		t.Errorf("unexpected split types: %+v", result.Blocks)
	}
}

func TestDeferConfirmationsAppliesUserOverride(t *testing.T) {
	s := store.NewMemStore()
	opts := runOpts(s)
	opts.Config.Resolver.LowConfidenceThreshold = 65
	opts.Confirm = func(item ClassifiedItem) (document.FormatID, bool) {
		return document.Character, true
	}

	emitted := []EmittedItem{{ClassifiedItem: ClassifiedItem{Text: "x", FormatID: document.Action, Confidence: 60, Reason: "tie:safe-action"}}}
	batchID := deferConfirmations(emitted, opts)
	if batchID == "" {
		t.Errorf("expected a non-empty batch id")
	}
	if emitted[0].FormatID != document.Character {
		t.Errorf("expected the confirm callback's override to apply to a below-threshold item, got %+v", emitted[0])
	}
}

func TestMarginForSpacingTable(t *testing.T) {
	if got := marginFor(document.Character, document.Dialogue); got != 0 {
		t.Errorf("character->dialogue: got %d, want 0", got)
	}
	if got := marginFor(document.Action, document.Action); got != 12 {
		t.Errorf("action->action: got %d, want 12", got)
	}
	if got := marginFor(document.Basmala, document.SceneHeader1); got != 0 {
		t.Errorf("basmala->any: got %d, want 0", got)
	}
	if got := marginFor(document.Dialogue, document.Dialogue); got != document.MarginUnspecified {
		t.Errorf("dialogue->dialogue: got %d, want unspecified", got)
	}
}

func TestMergeBrokenCharacterName(t *testing.T) {
	merged, ok := mergeBrokenCharacterName("أحمد", "الكبير:")
	if !ok {
		t.Fatalf("expected merge to succeed")
	}
	if merged != "أحمدالكبير:" && merged != "أحمد الكبير:" {
		t.Errorf("unexpected merge result: %q", merged)
	}
}

func TestSplitTopLineComposite(t *testing.T) {
	first, second, ok := splitTopLineComposite("مشهد 1 نهار - داخلي")
	if !ok {
		t.Fatalf("expected a composite split")
	}
	if !strings.Contains(first, "مشهد") || second == "" {
		t.Errorf("unexpected split: first=%q second=%q", first, second)
	}
}
