package views

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var apostrophes = strings.NewReplacer("'", "", "’", "")

// Latin letters that do not decompose into a base letter plus marks.
var ligatures = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "Ae", "œ", "oe", "Œ", "Oe",
	"ø", "o", "Ø", "O", "đ", "d", "Đ", "D", "ð", "d", "Ð", "D",
	"ł", "l", "Ł", "L", "þ", "th", "Þ", "Th",
)

// deburr strips diacritics: "piñata" -> "pinata".
func deburr(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return ligatures.Replace(out)
}

// KebabCase lowercases s and joins its words with hyphens, the way glyph class
// names are spelled. Apostrophes are dropped and accents removed first. Words
// break on any non-alphanumeric rune, on lower-to-upper case changes, before
// the last capital of an acronym ("XMLHttp" -> "xml-http") and around digit
// runs, except that ordinals such as "1st" or "4th" stay whole.
func KebabCase(s string) string {
	rs := []rune(deburr(apostrophes.Replace(s)))
	var words []string
	start := -1
	emit := func(end int) {
		if start >= 0 {
			words = append(words, strings.ToLower(string(rs[start:end])))
			start = -1
		}
	}
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case !isWordRune(r):
			emit(i)
			i++
		case unicode.IsDigit(r):
			emit(i)
			j := i
			for j < len(rs) && unicode.IsDigit(rs[j]) {
				j++
			}
			j += ordinalSuffix(rs, j)
			words = append(words, strings.ToLower(string(rs[i:j])))
			i = j
		default:
			if start >= 0 && unicode.IsUpper(r) {
				prev := rs[i-1]
				if unicode.IsLower(prev) || (unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1])) {
					emit(i)
				}
			}
			if start < 0 {
				start = i
			}
			i++
		}
	}
	emit(len(rs))
	return strings.Join(words, "-")
}

// ordinalSuffix returns 2 when the digit run ending before rs[j] is followed
// by its ordinal suffix (1st, 2nd, 3rd, 4th) and then a word boundary or a
// case change, otherwise 0.
func ordinalSuffix(rs []rune, j int) int {
	if j == 0 || j+2 > len(rs) {
		return 0
	}
	want := "th"
	switch rs[j-1] {
	case '1':
		want = "st"
	case '2':
		want = "nd"
	case '3':
		want = "rd"
	}
	suffix := string(rs[j : j+2])
	lower := suffix == want
	upper := suffix == strings.ToUpper(want)
	if !lower && !upper {
		return 0
	}
	if j+2 == len(rs) {
		return 2
	}
	next := rs[j+2]
	switch {
	case !isWordRune(next):
		return 2
	case lower && unicode.IsUpper(next), upper && unicode.IsLower(next):
		return 2
	}
	return 0
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
