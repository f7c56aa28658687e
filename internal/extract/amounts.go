// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls procurement facts out of document text: price
// ceilings (НМЦК), the procurement method and dates. Every function here is a
// pure function of its input text.
package extract

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/procurement-parser/pkg/types"
)

// numberRun is a digit run as printed in Russian documents: digits grouped
// by spaces (often no-break spaces) with commas as decimal separators.
const numberRun = `[\d\s\x{00A0}\x{202F},]+`

// amountPatterns are scanned in order over the full text. Each is
// case-insensitive and independent of the others, so one printed amount
// can be reported by several patterns. A pattern with a capture group is
// normalized on the group alone; the others on the whole match.
var amountPatterns = []*regexp.Regexp{
	// НМЦК followed by the first number after it, with an optional unit.
	// Words between НМЦК and the number do not scale it.
	regexp.MustCompile(`(?i)НМЦК\D*(` + numberRun + `(?:млн|тыс)?)`),
	// Number followed by a currency word.
	regexp.MustCompile(`(?i)` + numberRun + `\s*(?:руб|₽|рублей)`),
	// Number in millions.
	regexp.MustCompile(`(?i)` + numberRun + `\s*(?:млн|млн\.|млн руб)`),
	// Number in thousands.
	regexp.MustCompile(`(?i)` + numberRun + `\s*(?:тыс|тыс\.|тыс руб)`),
}

const (
	thousandMarker = "тыс"
	millionMarker  = "млн"

	// scaleLimit is the bound below which a unit word rescales the value.
	// Figures at or above it are taken as already written out in roubles.
	scaleLimit = 1_000_000
)

// ParseAmounts scans text for price-ceiling figures and returns them in
// roubles, ordered by pattern and then by position. Matches are not merged:
// "НМЦК 250 тыс руб" yields one value per pattern that matches it. Text with
// no figures yields an empty, non-nil list.
func ParseAmounts(text string) types.AmountList {
	amounts := types.AmountList{}
	for _, re := range amountPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if v, ok := normalizeAmount(m[len(m)-1]); ok {
				amounts = append(amounts, v)
			}
		}
	}
	return amounts
}

// normalizeAmount turns one raw match into roubles. All non-digits are
// dropped, so "1 500,00" reads as 150000. A unit word inside the match, in
// any letter case, scales values below scaleLimit; thousands are checked
// before millions. Digit runs too long for an int64 are clamped to
// math.MaxInt64. It reports false when the match holds no digits.
func normalizeAmount(match string) (int64, bool) {
	digits := keepDigits(match)
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt64, true
	}
	if err != nil {
		return 0, false
	}

	lower := strings.ToLower(match)
	switch {
	case v < scaleLimit && strings.Contains(lower, thousandMarker):
		v *= 1_000
	case v < scaleLimit && strings.Contains(lower, millionMarker):
		v *= 1_000_000
	}
	return v, true
}

// keepDigits returns the ASCII digits of s in order.
func keepDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
