package coverage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dealgraph.app/insight/common"
	"dealgraph.app/insight/internal/model"
)

type catalogFile struct {
	UseCases []catalogRecord `yaml:"use_cases"`
}

type catalogRecord struct {
	ID            string           `yaml:"id"`
	Title         string           `yaml:"title"`
	Status        string           `yaml:"status"`
	EmailCount    int              `yaml:"email_count"`
	Products      []string         `yaml:"products"`
	Parameters    []string         `yaml:"parameters"`
	EmailExamples []catalogExample `yaml:"email_examples"`
	WhatWorks     []string         `yaml:"what_works"`
	WhatsGap      []string         `yaml:"whats_gap"`
}

type catalogExample struct {
	Subject string `yaml:"subject"`
	From    string `yaml:"from"`
	Snippet string `yaml:"snippet"`
}

// LoadCatalog reads a use-case catalog from a YAML file, preserving file
// order. The result is validated structurally before it is returned; a
// catalog that fails validation is rejected whole.
func LoadCatalog(path string) ([]model.CoverageRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes and validates a YAML catalog document.
func ParseCatalog(raw []byte) ([]model.CoverageRecord, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	records := make([]model.CoverageRecord, 0, len(file.UseCases))
	for _, rec := range file.UseCases {
		records = append(records, toRecord(rec))
	}

	if err := NewLedger(records).Validate(); err != nil {
		return nil, err
	}
	return records, nil
}

func toRecord(rec catalogRecord) model.CoverageRecord {
	examples := make([]model.EmailExample, 0, len(rec.EmailExamples))
	for _, ex := range rec.EmailExamples {
		examples = append(examples, model.EmailExample{
			Subject: ex.Subject,
			From:    ex.From,
			Snippet: ex.Snippet,
		})
	}

	// Entries without an explicit id are keyed by their slugified title.
	recID := rec.ID
	if recID == "" {
		if slug, err := common.Slugify(rec.Title, ""); err == nil {
			recID = slug
		}
	}

	return model.CoverageRecord{
		ID:            recID,
		Title:         rec.Title,
		Status:        model.CoverageStatus(rec.Status),
		EmailCount:    rec.EmailCount,
		Products:      rec.Products,
		Parameters:    rec.Parameters,
		EmailExamples: examples,
		WhatWorks:     rec.WhatWorks,
		WhatsGap:      rec.WhatsGap,
	}
}
