package rasterizer

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"
	"time"
)

// ReportWriter exports verification reports in various formats
type ReportWriter struct {
	report *SetReport
}

// NewReportWriter creates a new ReportWriter
func NewReportWriter(report *SetReport) *ReportWriter {
	return &ReportWriter{
		report: report,
	}
}

// JSONReport represents the structure for JSON export
type JSONReport struct {
	Metadata    ReportMetadata `json:"metadata"`
	Summary     ReportSummary  `json:"summary"`
	Icons       []*IconReport  `json:"icons"`
	GeneratedAt string         `json:"generated_at"`
}

// ReportMetadata contains verification metadata
type ReportMetadata struct {
	Tool            string `json:"tool"`
	Dir             string `json:"dir"`
	VerifyStartTime int64  `json:"verify_start_time"`
	VerifyEndTime   int64  `json:"verify_end_time"`
	DurationMillis  int64  `json:"duration_ms"`
}

// ReportSummary contains summary statistics
type ReportSummary struct {
	IconsChecked  int  `json:"icons_checked"`
	IconsPassed   int  `json:"icons_passed"`
	ChecksRun     int  `json:"checks_run"`
	ChecksFailed  int  `json:"checks_failed"`
	CriticalFails int  `json:"critical_fails"`
	HighFails     int  `json:"high_fails"`
	MediumFails   int  `json:"medium_fails"`
	Passed        bool `json:"passed"`
}

// ExportJSON exports the verification report to a JSON file
func (rw *ReportWriter) ExportJSON(filePath string) error {
	report := JSONReport{
		Metadata:    rw.generateMetadata(),
		Summary:     rw.generateSummary(),
		Icons:       rw.report.Icons,
		GeneratedAt: time.Now().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filePath, data, 0644)
}

// ExportCSV exports the per-check results to a CSV file
func (rw *ReportWriter) ExportCSV(filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	// Write UTF-8 BOM for Excel compatibility
	file.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header (Russian)
	header := []string{
		"Файл",
		"Размер",
		"Проверка",
		"Статус",
		"Уровень серьёзности",
		"Детали",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, icon := range rw.report.Icons {
		for _, check := range icon.Checks {
			row := []string{
				icon.Path,
				strconv.Itoa(icon.Size),
				check.Name,
				string(check.Status),
				string(check.Severity),
				check.Detail,
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func (rw *ReportWriter) generateMetadata() ReportMetadata {
	return ReportMetadata{
		Tool:            "icon-maker",
		Dir:             rw.report.Dir,
		VerifyStartTime: rw.report.StartTime.Unix(),
		VerifyEndTime:   rw.report.EndTime.Unix(),
		DurationMillis:  rw.report.Duration().Milliseconds(),
	}
}

func (rw *ReportWriter) generateSummary() ReportSummary {
	summary := ReportSummary{
		IconsChecked: len(rw.report.Icons),
		ChecksRun:    rw.report.ChecksRun,
		ChecksFailed: rw.report.ChecksFailed,
		Passed:       rw.report.Passed(),
	}
	for _, icon := range rw.report.Icons {
		if icon.Passed() {
			summary.IconsPassed++
		}
		for _, check := range icon.Checks {
			if check.Status != StatusFail {
				continue
			}
			switch check.Severity {
			case SeverityCritical:
				summary.CriticalFails++
			case SeverityHigh:
				summary.HighFails++
			case SeverityMedium:
				summary.MediumFails++
			}
		}
	}
	return summary
}
