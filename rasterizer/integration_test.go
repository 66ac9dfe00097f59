package rasterizer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// TestIntegrationGenerateAndVerify runs the full pipeline: generate the
// standard set, bundle the ICO, verify everything, export reports.
func TestIntegrationGenerateAndVerify(t *testing.T) {
	tmpDir := t.TempDir()

	// Step 1: Generate the standard set with the ICO bundle
	gen := NewGenerator()
	gen.SetOutputDir(tmpDir)
	gen.SetWriteICO(true)

	result, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Count() != 3 || result.ICOPath == "" {
		t.Fatalf("unexpected result: %+v", result)
	}

	// Step 2: Verify the generated set
	v := NewVerifier()
	v.SetDir(tmpDir)
	report, err := v.VerifySet()
	if err != nil {
		t.Fatalf("VerifySet failed: %v", err)
	}
	if !report.Passed() {
		t.Fatalf("freshly generated set failed verification: %d checks failed", report.ChecksFailed)
	}

	// Step 3: Export the JSON report and read it back
	jsonPath := filepath.Join(tmpDir, "report.json")
	rw := NewReportWriter(report)
	if err := rw.ExportJSON(jsonPath); err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to read JSON report: %v", err)
	}
	var exported JSONReport
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("Failed to parse JSON report: %v", err)
	}
	if exported.Metadata.Tool != "icon-maker" {
		t.Errorf("metadata tool = %q", exported.Metadata.Tool)
	}
	if !exported.Summary.Passed || exported.Summary.IconsChecked != 3 || exported.Summary.IconsPassed != 3 {
		t.Errorf("unexpected summary: %+v", exported.Summary)
	}
	if len(exported.Icons) != 3 {
		t.Errorf("exported %d icon reports, want 3", len(exported.Icons))
	}

	// Step 4: Export the CSV report and check its shape
	csvPath := filepath.Join(tmpDir, "report.csv")
	if err := rw.ExportCSV(csvPath); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("Failed to read CSV report: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("CSV report missing UTF-8 BOM")
	}

	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV report: %v", err)
	}
	// Header plus one row per check per icon.
	wantRows := 1 + report.ChecksRun
	if len(rows) != wantRows {
		t.Errorf("CSV has %d rows, want %d", len(rows), wantRows)
	}
	if len(rows) > 0 && rows[0][0] != "Файл" {
		t.Errorf("unexpected CSV header: %v", rows[0])
	}
}

// TestIntegrationVerifyCatchesTampering makes sure verification fails
// after an icon is regenerated with the wrong content.
func TestIntegrationVerifyCatchesTampering(t *testing.T) {
	tmpDir := t.TempDir()

	gen := NewGenerator()
	gen.SetOutputDir(tmpDir)
	if _, err := gen.Generate(); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Replace the 128px icon with a 16px render.
	img, err := Render(16)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	f, err := os.Create(filepath.Join(tmpDir, FileName(128)))
	if err != nil {
		t.Fatalf("Failed to open icon128.png: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to overwrite icon128.png: %v", err)
	}
	f.Close()

	v := NewVerifier()
	v.SetDir(tmpDir)
	report, err := v.VerifySet()
	if err != nil {
		t.Fatalf("VerifySet failed: %v", err)
	}
	if report.Passed() {
		t.Error("tampered set passed verification")
	}

	var tampered *IconReport
	for _, icon := range report.Icons {
		if icon.Size == 128 {
			tampered = icon
		}
	}
	if tampered == nil || tampered.Passed() {
		t.Error("tampered icon128.png did not fail verification")
	}
	if tampered != nil && (tampered.Width != 16 || tampered.Height != 16) {
		t.Errorf("tampered dimensions %dx%d, want 16x16", tampered.Width, tampered.Height)
	}
}
