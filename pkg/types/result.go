// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ProcurementMethod labels how a purchase is conducted under the
// contract-system law. Exactly one label is assigned per document.
type ProcurementMethod string

const (
	MethodSingleSource         ProcurementMethod = "single-source"
	MethodElectronicAuction    ProcurementMethod = "electronic-auction"
	MethodRequestForQuotations ProcurementMethod = "request-for-quotations"
	MethodUndetermined         ProcurementMethod = "undetermined"
)

// statutoryNames maps each method to the wording used in Russian procurement
// documents.
var statutoryNames = map[ProcurementMethod]string{
	MethodSingleSource:         "ст. 93",
	MethodElectronicAuction:    "электронный аукцион",
	MethodRequestForQuotations: "запрос котировок",
	MethodUndetermined:         "не определён",
}

// StatutoryName returns the Russian name of the method as it appears in
// procurement documents.
func (m ProcurementMethod) StatutoryName() string {
	if name, ok := statutoryNames[m]; ok {
		return name
	}
	return statutoryNames[MethodUndetermined]
}

// Valid reports whether m is one of the four known labels.
func (m ProcurementMethod) Valid() bool {
	_, ok := statutoryNames[m]
	return ok
}

// AmountList holds normalized price-ceiling values in roubles. Values are
// listed in scan order and may repeat when several patterns match the same
// figure.
type AmountList []int64

// DateBuckets sorts the dates found in a document by their role. Only
// NoticePlacement is filled today; the other two stay empty until dates can
// be bound to their surrounding context.
type DateBuckets struct {
	PlanChange      []string `json:"plan_change" yaml:"plan_change"`
	NoticePlacement []string `json:"notice_placement" yaml:"notice_placement"`
	Deadline        []string `json:"deadline" yaml:"deadline"`
}

// NewDateBuckets returns buckets with every slot set to an empty, non-nil
// slice so they serialize as [] rather than null.
func NewDateBuckets() DateBuckets {
	return DateBuckets{
		PlanChange:      []string{},
		NoticePlacement: []string{},
		Deadline:        []string{},
	}
}

// ParseResult is the structured record produced for one procurement PDF.
type ParseResult struct {
	// SourceFile is the document path exactly as supplied by the caller.
	SourceFile string `json:"source_file" yaml:"source_file"`

	// NMCList lists every price-ceiling (НМЦК) figure found, normalized to roubles.
	NMCList AmountList `json:"nmc_list" yaml:"nmc_list"`

	// ProcurementMethod is the single method label assigned to the document.
	ProcurementMethod ProcurementMethod `json:"procurement_method" yaml:"procurement_method"`

	// Dates holds the date buckets.
	Dates DateBuckets `json:"dates" yaml:"dates"`

	// RawTextSnippet is the first 500 characters of the document text, with
	// "..." appended when the text was longer.
	RawTextSnippet string `json:"raw_text_snippet" yaml:"raw_text_snippet"`
}
