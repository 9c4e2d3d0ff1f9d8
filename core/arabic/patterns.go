// Package arabic is the package-private catalogue of Arabic-specific regular
// expressions and closed lexical sets used by the classifier, the import
// preprocessor, and the post-classification reviewer. Every pattern here is
// compiled once at package init and is safe for concurrent use —
// *regexp.Regexp values are read-only after compilation.
package arabic

import "regexp"

// SCENE_NUMBER_RE matches the Arabic or Latin word for "scene" followed by a
// run of Arabic-Indic or Latin digits, anywhere in the line.
var SCENE_NUMBER_RE = regexp.MustCompile(`(?i)(مشهد|scene)\s*[:\-]?\s*([0-9\x{0660}-\x{0669}]+)`)

// SCENE_NUMBER_EXACT_RE anchors the same pattern to the whole line (after
// normalization), optionally followed by trailing time/location text.
var SCENE_NUMBER_EXACT_RE = regexp.MustCompile(`^(مشهد|scene)\s*[:\-]?\s*([0-9\x{0660}-\x{0669}]+)`)

// SCENE_TIME_RE matches any of the five canonical times of day.
var SCENE_TIME_RE = regexp.MustCompile(`نهار|ليل|صباح|مساء|فجر`)

// SCENE_LOCATION_RE matches interior/exterior markers, including the
// hyphen/slash combined forms ("داخلي/خارجي", "داخلي-خارجي").
var SCENE_LOCATION_RE = regexp.MustCompile(`داخلي\s*[/\-]\s*خارجي|خارجي\s*[/\-]\s*داخلي|داخلي|خارجي`)

// TRANSITION_RE matches cut/transition cues, case-insensitively for the
// Latin form.
var TRANSITION_RE = regexp.MustCompile(`(?i)قطع|انتقال\s*(إلى)?|cut\s*to`)

// PARENTHETICAL_RE matches a line entirely wrapped in parentheses, Arabic or
// Latin.
var PARENTHETICAL_RE = regexp.MustCompile(`^[(\x{FD3E}]\s*[^()\x{FD3E}\x{FD3F}]*\s*[)\x{FD3F}]$`)

// ACTION_CUE_RE matches short Arabic performance/delivery cue phrases that
// typically appear inside a parenthetical.
var ACTION_CUE_RE = regexp.MustCompile(`مبتسما|مبتسماً|بغضب|بفرح|بحزن|بهدوء|بصوت\s+(عال|منخفض|مرتفع)|ساخرا|ساخراً|بخوف|متوترا|متوتراً|بتردد|صارخا|صارخاً|هامسا|هامساً`)

// INLINE_DIALOGUE_RE matches "<name> : <dialogue>" on one line.
var INLINE_DIALOGUE_RE = regexp.MustCompile(`^([\p{Arabic}0-9\s]{1,32}?)\s*:\s*(.+)$`)

// INLINE_DIALOGUE_GLUE_RE matches the glued variant "<cue><name>: <dialogue>"
// with no space between the cue and the name.
var INLINE_DIALOGUE_GLUE_RE = regexp.MustCompile(`^(\S+?)([\p{Arabic}]{2,20})\s*:\s*(.+)$`)

// CHARACTER_RE is a strict name-colon line: up to 32 characters of Arabic
// letters, digits, and spaces, ending in a colon.
var CHARACTER_RE = regexp.MustCompile(`^[\p{Arabic}0-9 ]{1,32}:$`)

// ARABIC_ONLY_WITH_NUMBERS_RE matches strings made up exclusively of Arabic
// letters, digits, and whitespace.
var ARABIC_ONLY_WITH_NUMBERS_RE = regexp.MustCompile(`^[\p{Arabic}0-9\s]+$`)

// VOCATIVE_RE matches the vocative particle "يا" introducing direct address.
var VOCATIVE_RE = regexp.MustCompile(`(^|\s)يا\s+\p{Arabic}`)

// VOCATIVE_TITLES_RE matches common honorific/title vocatives.
var VOCATIVE_TITLES_RE = regexp.MustCompile(`يا\s+(دكتور|أستاذ|سيدي|سيدتي|حضرة|باشا|بيه|أفندم|حبيبي|حبيبتي)`)

// CONVERSATIONAL_MARKERS_RE matches mid-sentence conversational discourse
// markers.
var CONVERSATIONAL_MARKERS_RE = regexp.MustCompile(`طيب|خلاص|يعني|أصلا|أصلاً|بصراحة|للأمانة|في الحقيقة`)

// QUOTE_MARKS_RE matches Arabic or Latin quotation marks.
var QUOTE_MARKS_RE = regexp.MustCompile(`[\x{00AB}\x{00BB}\x{201C}\x{201D}"«»]`)

// PRONOUN_ACTION_RE matches a leading detached pronoun followed by a verb,
// e.g. "هو يدخل".
var PRONOUN_ACTION_RE = regexp.MustCompile(`^(هو|هي|هم|أنت|أنتِ|نحن)\s+\p{Arabic}+`)

// THEN_ACTION_RE matches a narrative continuation opener, e.g. "ثم يخرج".
var THEN_ACTION_RE = regexp.MustCompile(`^(ثم|بعدها|فجأة|وفجأة)\s+\p{Arabic}+`)

// PRONOUN_PREFIX_RE matches a word beginning with one leading conjunction
// particle (و/ف/ل) attached directly to the following token.
var PRONOUN_PREFIX_RE = regexp.MustCompile(`^[وفل]\p{Arabic}+`)

// PRONOUN_PLUS_VERB_RE matches an attached-pronoun subject immediately
// followed by what looks like a present-tense verb stem.
var PRONOUN_PLUS_VERB_RE = regexp.MustCompile(`^(يدخل|تدخل|يخرج|تخرج|ينظر|تنظر|يقف|تقف|يجلس|تجلس|يرفع|ترفع|ينهض|تنهض)`)

// NEGATION_PLUS_VERB_RE matches a negation particle immediately followed by
// a verb.
var NEGATION_PLUS_VERB_RE = regexp.MustCompile(`^(لا|لم|لن|ما)\s+\p{Arabic}+`)

// VERB_WITH_PRONOUN_SUFFIX_RE matches a verb carrying an attached object
// pronoun suffix.
var VERB_WITH_PRONOUN_SUFFIX_RE = regexp.MustCompile(`\p{Arabic}+(ه|ها|هم|ني|نا|ك|كم)$`)

// MASDAR_PREFIX_RE matches a leading verbal-noun (masdar) construction
// commonly used in scene/shot descriptions.
var MASDAR_PREFIX_RE = regexp.MustCompile(`^(دخول|خروج|وقوف|جلوس|نظرة|صمت|سكوت)\s`)

// ACTION_VERB_FOLLOWED_BY_NAME_AND_VERB_RE matches the "verb name verb"
// narrative triple syntax, e.g. "ينظر أحمد ويبتسم".
var ACTION_VERB_FOLLOWED_BY_NAME_AND_VERB_RE = regexp.MustCompile(`^\p{Arabic}+\s+[\p{Arabic}]{2,20}\s+\p{Arabic}*(و|ف)\p{Arabic}+`)

// AUDIO_NARRATIVE_RE matches sound-narration cues describing an audible
// event rather than spoken dialogue ("نسمع صوت انفجار").
var AUDIO_NARRATIVE_RE = regexp.MustCompile(`نسمع|يُسمع|يسمع\s|صوت\s+(ال)?(انفجار|رصاص|سيارة|أقدام|باب|صراخ)`)

// FULL_ACTION_VERB_SET is the closed set of full-form Arabic action verbs
// that reliably open an action line.
var FULL_ACTION_VERB_SET = newSet(
	"يدخل", "تدخل", "يخرج", "تخرج", "ينظر", "تنظر", "يقف", "تقف",
	"يجلس", "تجلس", "يرفع", "ترفع", "ينهض", "تنهض", "يسير", "تسير",
	"يركض", "تركض", "يبتسم", "تبتسم", "يصرخ", "تصرخ", "يلتفت", "تلتفت",
	"يمشي", "تمشي", "يهز", "تهز", "يفتح", "تفتح", "يغلق", "تغلق",
)

// IMPERATIVE_VERB_SET is the closed set of imperative-mood verb forms.
var IMPERATIVE_VERB_SET = newSet(
	"اذهب", "تعال", "قف", "اجلس", "انظر", "اسمع", "اخرج", "ادخل",
	"توقف", "اسكت", "انتظر", "هيا", "يلا",
)

// CHARACTER_STOP_WORDS are tokens that disqualify a line from being a
// character cue even when it otherwise matches CHARACTER_RE.
var CHARACTER_STOP_WORDS = newSet(
	"في", "من", "إلى", "على", "عن", "مع", "هذا", "هذه", "ذلك", "التي",
	"الذي", "كان", "كانت", "يكون", "لكن", "ولكن", "أو", "ثم",
)

// CONVERSATIONAL_STARTS are tokens that, as the first word of a line,
// strongly suggest spoken dialogue.
var CONVERSATIONAL_STARTS = newSet(
	"طيب", "خلاص", "أها", "أيوه", "لا", "نعم", "ماشي", "تمام", "حسنا", "حسناً",
)

// SHORT_DIALOGUE_WORDS are common one-or-two-word utterances that read as
// dialogue rather than a character name even though they are short.
var SHORT_DIALOGUE_WORDS = newSet(
	"نعم", "لا", "ماشي", "تمام", "حسنا", "حسناً", "أكيد", "طبعا", "طبعاً", "أبدا", "أبداً",
)

// NON_CHARACTER_SINGLE_TOKENS are single words that must never be treated as
// a one-token character name.
var NON_CHARACTER_SINGLE_TOKENS = newSet(
	"هو", "هي", "هم", "أنا", "أنت", "أنتِ", "نحن", "ماذا", "لماذا", "كيف", "متى", "أين",
)

// NON_NAME_TOKENS is the superset of CHARACTER_STOP_WORDS,
// CONVERSATIONAL_STARTS, and negation/interrogative particles; it is used
// wherever a token must be rejected as a plausible name fragment.
var NON_NAME_TOKENS = unionSets(
	CHARACTER_STOP_WORDS,
	CONVERSATIONAL_STARTS,
	newSet("لا", "لم", "لن", "ما", "ماذا", "لماذا", "كيف", "متى", "أين", "هل"),
)

// MEMORY_INVALID_SINGLE_TOKENS are single-token strings that must never be
// recorded as a character name in session memory, even if encountered as the
// sole token of an otherwise-valid character cue.
var MEMORY_INVALID_SINGLE_TOKENS = unionSets(NON_CHARACTER_SINGLE_TOKENS, newSet(
	"نعم", "لا", "ربما", "أكيد", "طبعا", "طبعاً",
))

// StringSet is a closed, immutable set of strings used throughout the
// lexicon tables.
type StringSet map[string]struct{}

// Has reports whether s is a member of the set.
func (set StringSet) Has(s string) bool {
	_, ok := set[s]
	return ok
}

func newSet(words ...string) StringSet {
	s := make(StringSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func unionSets(sets ...StringSet) StringSet {
	out := make(StringSet)
	for _, s := range sets {
		for w := range s {
			out[w] = struct{}{}
		}
	}
	return out
}
