package model

type CoverageStatus string

const (
	CoverageStatusCovered    CoverageStatus = "covered"
	CoverageStatusPartial    CoverageStatus = "partial"
	CoverageStatusNotCovered CoverageStatus = "not_covered"
)

// Valid reports whether s is one of the three recognized coverage buckets.
func (s CoverageStatus) Valid() bool {
	switch s {
	case CoverageStatusCovered, CoverageStatusPartial, CoverageStatusNotCovered:
		return true
	}
	return false
}

// EmailExample is verbatim evidence backing a use-case classification.
// Never rewritten after ingestion.
type EmailExample struct {
	Subject string `json:"subject"`
	From    string `json:"from"`
	Snippet string `json:"snippet"`
}

// CoverageRecord describes one recognized use case and how well the
// automated quoting system handles it. Records are constructed once from
// the catalog and never mutated; a reclassification produces a new record.
type CoverageRecord struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Status        CoverageStatus `json:"status"`
	EmailCount    int            `json:"email_count"`
	Products      []string       `json:"products,omitempty"`
	Parameters    []string       `json:"parameters,omitempty"`
	EmailExamples []EmailExample `json:"email_examples,omitempty"`
	WhatWorks     []string       `json:"what_works,omitempty"`
	WhatsGap      []string       `json:"whats_gap,omitempty"`
}
