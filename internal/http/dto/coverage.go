package dto

import (
	"dealgraph.app/insight/internal/model"
	"dealgraph.app/insight/internal/service"
)

// StatusStats is one coverage bucket's slice of the aggregate view.
type StatusStats struct {
	Records    int     `json:"records"`
	Emails     int     `json:"emails"`
	Percentage float64 `json:"percentage"`
}

type CoverageReportResponse struct {
	TotalRecords int         `json:"total_records"`
	TotalEmails  int         `json:"total_emails"`
	Covered      StatusStats `json:"covered"`
	Partial      StatusStats `json:"partial"`
	NotCovered   StatusStats `json:"not_covered"`
	Remainder    int         `json:"remainder"`
}

func ToCoverageReportResponse(report *service.CoverageReport) *CoverageReportResponse {
	bucket := func(status model.CoverageStatus) StatusStats {
		return StatusStats{
			Records:    report.Stats.RecordCounts[status],
			Emails:     report.Stats.EmailCounts[status],
			Percentage: report.Percentages[status],
		}
	}

	return &CoverageReportResponse{
		TotalRecords: report.Stats.TotalRecords,
		TotalEmails:  report.Stats.TotalEmails,
		Covered:      bucket(model.CoverageStatusCovered),
		Partial:      bucket(model.CoverageStatusPartial),
		NotCovered:   bucket(model.CoverageStatusNotCovered),
		Remainder:    report.Remainder,
	}
}

type CoverageRecordsResponse struct {
	Records []model.CoverageRecord `json:"records"`
	Count   int                    `json:"count"`
}

func ToCoverageRecordsResponse(records []model.CoverageRecord) *CoverageRecordsResponse {
	if records == nil {
		records = []model.CoverageRecord{}
	}
	return &CoverageRecordsResponse{Records: records, Count: len(records)}
}
