// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"

	"github.com/pdiddy/procurement-parser/pkg/types"
)

// dateRe matches DD.MM.YYYY tokens. Day and month are not range-checked.
var dateRe = regexp.MustCompile(`\b(\d{1,2}\.\d{1,2}\.\d{4})\b`)

// FindDates returns every DD.MM.YYYY token in text, left to right.
func FindDates(text string) []string {
	dates := []string{}
	for _, m := range dateRe.FindAllStringSubmatch(text, -1) {
		dates = append(dates, m[1])
	}
	return dates
}

// ParseDates fills the date buckets for text. Telling a plan-change date from
// a deadline needs the surrounding wording, which is not analyzed, so only
// the first date found is reported, as the notice placement date.
func ParseDates(text string) types.DateBuckets {
	buckets := types.NewDateBuckets()
	if first := dateRe.FindStringSubmatch(text); first != nil {
		buckets.NoticePlacement = append(buckets.NoticePlacement, first[1])
	}
	return buckets
}
