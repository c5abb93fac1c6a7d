package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var romanValues = map[byte]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50,
	'C': 100, 'D': 500, 'M': 1000,
}

// Canonical decomposition table for 1..3999.
var canonicalTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"},
	{1, "I"},
}

var (
	romanTokenPattern     = regexp.MustCompile(`\b[MDCLXVI]+\b`)
	romanTokenFoldPattern = regexp.MustCompile(`(?i)\b[MDCLXVI]+\b`)
)

// ReplaceRomanNumerals replaces canonical uppercase roman numeral tokens with
// their arabic values. An isolated "I" is preserved so the English pronoun
// survives, and non-canonical forms such as "IC" are left untouched.
func ReplaceRomanNumerals(text string) string {
	return replaceRomanTokens(text, romanTokenPattern)
}

// ReplaceRomanNumeralsFold is the case-insensitive variant: tokens are
// upper-cased before validation while the rest of the text is untouched.
func ReplaceRomanNumeralsFold(text string) string {
	return replaceRomanTokens(text, romanTokenFoldPattern)
}

func replaceRomanTokens(text string, pattern *regexp.Regexp) string {
	return pattern.ReplaceAllStringFunc(text, func(token string) string {
		upper := strings.ToUpper(token)
		if upper == "I" {
			return token
		}
		value := romanToIntLoose(upper)
		if value < 1 || value > 3999 {
			return token
		}
		// Round-trip check rejects non-canonical encodings.
		if intToRoman(value) != upper {
			return token
		}
		return strconv.Itoa(value)
	})
}

// intToRoman encodes 1..3999 into canonical roman numerals.
func intToRoman(n int) string {
	var out strings.Builder
	for _, entry := range canonicalTable {
		for n >= entry.value {
			out.WriteString(entry.symbol)
			n -= entry.value
		}
	}
	return out.String()
}

// romanToIntLoose decodes with standard subtractive logic. It accepts some
// non-canonical forms ("IC" => 99), so callers must round-trip the result.
func romanToIntLoose(s string) int {
	total := 0
	for i := 0; i < len(s); i++ {
		value := romanValues[s[i]]
		if i+1 < len(s) && value < romanValues[s[i+1]] {
			total += romanValues[s[i+1]] - value
			i++
			continue
		}
		total += value
	}
	return total
}
