package arabic

import "regexp"

// PlaceNamePrefixes are known sub-location opening words recognised by the
// scene-header-3 standalone heuristic.
var PlaceNamePrefixes = []string{
	"شقة", "منزل", "بيت", "فيلا", "مكتب", "العتبة", "كوافير", "كوايفير",
	"شارع", "مستشفى", "غرفة", "صالة", "مطبخ", "حديقة", "مقهى", "مطعم",
	"فندق", "مدرسة", "جامعة", "سيارة", "مصعد", "سلم", "حمام", "ممر",
}

// MultiLocationRE matches a short line naming two or more locations joined
// by a conjunction or slash ("المطبخ والصالة").
var MultiLocationRE = regexp.MustCompile(`^[\p{Arabic} ]{2,40}(و|/)[\p{Arabic} ]{2,40}$`)

// RangeRE matches a sub-location range expression ("من الباب إلى الشباك").
var RangeRE = regexp.MustCompile(`^من\s+[\p{Arabic} ]+\s+(إلى|حتى)\s+[\p{Arabic} ]+$`)

// HasPlaceNamePrefix reports whether s begins with one of the known
// sub-location opening words.
func HasPlaceNamePrefix(s string) bool {
	for _, p := range PlaceNamePrefixes {
		if hasArabicPrefix(s, p) {
			return true
		}
	}
	return false
}

func hasArabicPrefix(s, prefix string) bool {
	rs, rp := []rune(s), []rune(prefix)
	if len(rs) < len(rp) {
		return false
	}
	for i, r := range rp {
		if rs[i] != r {
			return false
		}
	}
	return true
}
