package arabic

import "testing"

func TestSceneNumberExactRE(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"مشهد 1", true},
		{"مشهد 12 - ليل", true},
		{"scene 3", true},
		{"داخلي - بيت أحمد", false},
	}
	for _, c := range cases {
		if got := SCENE_NUMBER_EXACT_RE.MatchString(c.in); got != c.want {
			t.Errorf("SCENE_NUMBER_EXACT_RE.MatchString(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTransitionRE(t *testing.T) {
	for _, in := range []string{"قطع", "قطع إلى:", "انتقال", "Cut To:"} {
		if !TRANSITION_RE.MatchString(in) {
			t.Errorf("TRANSITION_RE.MatchString(%q) = false, want true", in)
		}
	}
}

func TestCharacterRE(t *testing.T) {
	if !CHARACTER_RE.MatchString("أحمد:") {
		t.Errorf("expected CHARACTER_RE to match a simple name cue")
	}
	if CHARACTER_RE.MatchString("this is clearly not arabic:") {
		t.Errorf("expected CHARACTER_RE to reject non-Arabic content")
	}
}

func TestStringSetHas(t *testing.T) {
	if !CHARACTER_STOP_WORDS.Has("في") {
		t.Errorf("expected stop word set to contain في")
	}
	if CHARACTER_STOP_WORDS.Has("أحمد") {
		t.Errorf("did not expect stop word set to contain a name")
	}
	if !NON_NAME_TOKENS.Has("طيب") {
		t.Errorf("expected NON_NAME_TOKENS to include conversational starts")
	}
}

func TestHasPlaceNamePrefix(t *testing.T) {
	if !HasPlaceNamePrefix("شقة أحمد") {
		t.Errorf("expected شقة prefix to be recognised")
	}
	if HasPlaceNamePrefix("أحمد يدخل الغرفة") {
		t.Errorf("did not expect a non-prefixed line to match")
	}
}
