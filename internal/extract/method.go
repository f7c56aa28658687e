// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/procurement-parser/pkg/types"
)

// quotationAbbrevRe matches "зк" as a word of its own, so that words such as
// "перевозка" do not count as a request for quotations.
var quotationAbbrevRe = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])зк(?:[^\p{L}\p{N}_]|$)`)

// methodRule assigns label when match reports true for the lower-cased text.
type methodRule struct {
	label types.ProcurementMethod
	match func(lower string) bool
}

// methodRules are evaluated in order; the first match decides. A notice that
// mentions both Article 93 and an auction is single-source.
var methodRules = []methodRule{
	{
		label: types.MethodSingleSource,
		match: func(lower string) bool {
			return strings.Contains(lower, "ст. 93") || strings.Contains(lower, "единственный поставщик")
		},
	},
	{
		label: types.MethodElectronicAuction,
		match: func(lower string) bool {
			return strings.Contains(lower, "аукцион")
		},
	},
	{
		label: types.MethodRequestForQuotations,
		match: func(lower string) bool {
			return strings.Contains(lower, "запрос котировок") || quotationAbbrevRe.MatchString(lower)
		},
	},
}

// ClassifyMethod returns the procurement method named in text, or
// MethodUndetermined when no marker is present.
func ClassifyMethod(text string) types.ProcurementMethod {
	lower := strings.ToLower(text)
	for _, rule := range methodRules {
		if rule.match(lower) {
			return rule.label
		}
	}
	return types.MethodUndetermined
}
