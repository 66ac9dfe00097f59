package packager

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// BenchmarkPackFiles_Plain benchmarks packing without encryption
func BenchmarkPackFiles_Plain(b *testing.B) {
	tempDir := b.TempDir()
	entries := benchmarkEntries(b, tempDir)
	outPath := filepath.Join(tempDir, "out.zip")

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		p, err := NewPackager(Config{OutputPath: outPath})
		if err != nil {
			b.Fatal(err)
		}
		if err := p.PackFiles(entries); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkPackFiles_Encrypted benchmarks AES-256 packing
func BenchmarkPackFiles_Encrypted(b *testing.B) {
	tempDir := b.TempDir()
	entries := benchmarkEntries(b, tempDir)
	outPath := filepath.Join(tempDir, "out.zip")

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		p, err := NewPackager(Config{OutputPath: outPath, Password: "benchmark-password"})
		if err != nil {
			b.Fatal(err)
		}
		if err := p.PackFiles(entries); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkEntries(b *testing.B, dir string) []FileEntry {
	b.Helper()
	var entries []FileEntry
	for _, name := range []string{"icon16.png", "icon48.png", "icon128.png"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(strings.Repeat("icon data ", 500)), 0644); err != nil {
			b.Fatal(err)
		}
		entries = append(entries, FileEntry{SourcePath: path})
	}
	return entries
}
