package service

import (
	"regexp"
	"strings"
)

// Arabic short-vowel diacritics (fathatan..sukun)
var reDiacritics = regexp.MustCompile("[ً-ْ]")

// Letter variants folded to one canonical form
var letterVariants = strings.NewReplacer(
	"أ", "ا", "إ", "ا", "آ", "ا", "ٱ", "ا", // Alef forms → bare Alef
	"ى", "ي", // Alef Maksura → Ya
	"ة", "ه", // Ta Marbuta → Ha
	"ؤ", "و", // Hamza on Waw → Waw
	"ئ", "ي", // Hamza on Ya → Ya
)

// Everything outside {Arabic block, ASCII digits, space, %, \, /} is noise
var reNonArabic = regexp.MustCompile(`[^\x{0600}-\x{06FF}0-9 %\\/]`)

// Arabic-Indic and extended (Persian) digits → ASCII
var arabicDigits = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
)

var (
	reDigitRun = regexp.MustCompile(`[0-9]+`)
	reSpaces   = regexp.MustCompile(`\s+`)
	reNoiseNew = regexp.MustCompile("جدي+د") // "new", tolerant of stretched Ya
)

const noisePriceToken = "سعر" // standalone "price"

// Normalize is the deterministic Arabic cleanup pipeline. It is total and
// idempotent; a fully non-Arabic, non-numeric input normalizes to "" and the
// caller treats that as unmatchable.
func Normalize(s string) string {
	// 1) outer whitespace
	out := strings.TrimSpace(s)

	// 2) diacritics
	out = reDiacritics.ReplaceAllString(out, "")

	// 3) letter variant folding
	out = letterVariants.Replace(out)

	// 4) drop everything outside the allowed set
	out = reNonArabic.ReplaceAllString(out, "")

	// 5) ٣٠ → 30
	out = arabicDigits.Replace(out)

	// 6) pad digit runs with spaces, then collapse. The pad spaces survive
	// on purpose: "٣٠" comes out as " 30 ".
	out = reDigitRun.ReplaceAllString(out, " $0 ")
	out = reSpaces.ReplaceAllString(out, " ")

	// 7) tatweel
	out = strings.ReplaceAll(out, "ـ", "")

	// 8) noise tokens. The substring removal runs to a fixpoint because
	// non-overlapping replacement never re-scans text glued together by an
	// earlier removal; "سعر" is filtered per token so consecutive
	// occurrences all go in one pass.
	for {
		next := reNoiseNew.ReplaceAllString(out, "")
		if next == out {
			break
		}
		out = next
	}
	fields := strings.Fields(out)
	kept := fields[:0]
	for _, f := range fields {
		if f != noisePriceToken {
			kept = append(kept, f)
		}
	}
	out = strings.Join(kept, " ")

	// re-pad after noise removal so edge spaces exist only around digits;
	// this keeps the function idempotent
	out = strings.TrimSpace(out)
	out = reDigitRun.ReplaceAllString(out, " $0 ")
	out = reSpaces.ReplaceAllString(out, " ")

	return out
}
