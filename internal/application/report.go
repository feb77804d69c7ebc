package application

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"certwatch/internal/domain"
)

// BuildReport classifies every member's documents into the analysis
// report. The report is purely descriptive; deduplication state lives only
// in the ledger.
func BuildReport(members []domain.CrewMember, ref time.Time, format string) domain.AnalysisReport {
	report := make(domain.AnalysisReport, len(members))
	for _, m := range members {
		report[domain.ReportKey(m)] = domain.BuildBreakdown(m, ref, format)
	}
	return report
}

// WriteReport saves the analysis report as indented JSON
func WriteReport(path string, report domain.AnalysisReport) error {
	data, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
