package packager

import (
	"bytes"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexmullins/zip"

	"github.com/kacebover/icon-maker/rasterizer"
)

// TestIntegrationPackGeneratedSet generates a real icon set, packs it
// and decodes an icon straight out of the archive.
func TestIntegrationPackGeneratedSet(t *testing.T) {
	tmpDir := t.TempDir()

	// Step 1: Generate the standard set with the ICO bundle
	gen := rasterizer.NewGenerator()
	gen.SetOutputDir(tmpDir)
	gen.SetWriteICO(true)
	if _, err := gen.Generate(); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Step 2: Pack the set
	outPath := filepath.Join(tmpDir, "icons.zip")
	p, err := NewPackager(Config{OutputPath: outPath})
	if err != nil {
		t.Fatalf("NewPackager failed: %v", err)
	}
	result, err := p.PackFilesWithResult(iconEntries(tmpDir))
	if err != nil {
		t.Fatalf("PackFilesWithResult failed: %v", err)
	}
	if result.FilesPacked != 4 {
		t.Errorf("FilesPacked = %d, want 4", result.FilesPacked)
	}

	// Step 3: Decode icon48.png from inside the archive
	reader, err := zip.OpenReader(outPath)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer reader.Close()

	var found bool
	for _, f := range reader.File {
		if f.Name != "icon48.png" {
			continue
		}
		found = true
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open archive entry: %v", err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("Failed to read archive entry: %v", err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("Failed to decode packed icon: %v", err)
		}
		if img.Bounds().Dx() != 48 || img.Bounds().Dy() != 48 {
			t.Errorf("packed icon is %dx%d, want 48x48", img.Bounds().Dx(), img.Bounds().Dy())
		}
	}
	if !found {
		t.Error("icon48.png missing from archive")
	}
}

// TestIntegrationEncryptedRoundTrip packs a generated set with a
// password and verifies the decrypted bytes match the files on disk.
func TestIntegrationEncryptedRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	gen := rasterizer.NewGenerator()
	gen.SetOutputDir(tmpDir)
	if _, err := gen.Generate(); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	password, err := GeneratePassword(20, true)
	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}

	outPath := filepath.Join(tmpDir, "protected.zip")
	p, err := NewPackager(Config{OutputPath: outPath, Password: password})
	if err != nil {
		t.Fatalf("NewPackager failed: %v", err)
	}
	if err := p.PackIconSet(tmpDir, rasterizer.DefaultSizes); err != nil {
		t.Fatalf("PackIconSet failed: %v", err)
	}

	reader, err := zip.OpenReader(outPath)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer reader.Close()

	if len(reader.File) != 3 {
		t.Fatalf("archive has %d entries, want 3", len(reader.File))
	}
	for _, f := range reader.File {
		f.SetPassword(password)
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open encrypted entry %s: %v", f.Name, err)
		}
		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("Failed to read encrypted entry %s: %v", f.Name, err)
		}

		want, err := os.ReadFile(filepath.Join(tmpDir, f.Name))
		if err != nil {
			t.Fatalf("Failed to read source file %s: %v", f.Name, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("decrypted %s does not match the source file", f.Name)
		}
	}
}

// iconEntries lists the standard set plus the ICO bundle in dir
func iconEntries(dir string) []FileEntry {
	var entries []FileEntry
	for _, size := range rasterizer.DefaultSizes {
		name := rasterizer.FileName(size)
		entries = append(entries, FileEntry{
			SourcePath:  filepath.Join(dir, name),
			ArchivePath: name,
		})
	}
	entries = append(entries, FileEntry{
		SourcePath:  filepath.Join(dir, rasterizer.ICOFileName),
		ArchivePath: rasterizer.ICOFileName,
	})
	return entries
}
