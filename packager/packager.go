// Package packager bundles generated icon sets and extension
// directories into ZIP archives for store upload or hand-off, with
// optional AES-256 password protection.
package packager

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexmullins/zip"
)

var (
	ErrNoFiles          = errors.New("no files to pack")
	ErrEmptySource      = errors.New("source directory contains no files")
	ErrInvalidOutput    = errors.New("invalid output path")
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrWeakPassword     = errors.New("password must be at least 8 characters")
	ErrCancelled        = errors.New("packing cancelled")
)

// ProgressCallback is called once per file added to the archive.
// filesDone counts completed files, filesTotal is the number of files
// to pack, currentFile is the archive path being written.
type ProgressCallback func(filesDone, filesTotal int, currentFile string)

// Config holds packing configuration
type Config struct {
	// OutputPath is the full path of the archive to create (required)
	OutputPath string

	// Password protects the archive with AES-256 when non-empty.
	// An empty password produces a plain ZIP.
	Password string

	// OnProgress is called as files are added
	OnProgress ProgressCallback

	// BufferSize for streaming copies (default: 32KB)
	BufferSize int
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		OutputPath: "extension-icons.zip",
		BufferSize: 32 * 1024,
	}
}

// Packager writes icon sets and extension trees into ZIP archives
type Packager struct {
	config Config

	filesPacked int32
	totalBytes  int64
	cancelled   int32
}

// NewPackager creates a new Packager with the given config
func NewPackager(config Config) (*Packager, error) {
	if config.OutputPath == "" {
		return nil, ErrInvalidOutput
	}
	if config.Password != "" {
		if err := ValidatePassword(config.Password); err != nil {
			return nil, err
		}
	}
	if config.BufferSize <= 0 {
		config.BufferSize = 32 * 1024
	}

	return &Packager{config: config}, nil
}

// Encrypted reports whether the archive will be password protected
func (p *Packager) Encrypted() bool {
	return p.config.Password != ""
}

// Cancel aborts an ongoing packing operation
func (p *Packager) Cancel() {
	atomic.StoreInt32(&p.cancelled, 1)
}

// FileEntry represents one file to pack
type FileEntry struct {
	// SourcePath is the path to the file on disk
	SourcePath string

	// ArchivePath is the path within the archive (derived from
	// SourcePath when empty)
	ArchivePath string
}

// PackFiles writes the given files into the configured archive,
// overwriting any existing archive. The partial archive is removed on
// error or cancellation.
func (p *Packager) PackFiles(files []FileEntry) error {
	if len(files) == 0 {
		return ErrNoFiles
	}

	atomic.StoreInt32(&p.cancelled, 0)
	atomic.StoreInt32(&p.filesPacked, 0)
	atomic.StoreInt64(&p.totalBytes, 0)

	for _, file := range files {
		info, err := os.Stat(file.SourcePath)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", ErrFileNotFound, file.SourcePath)
			}
			if os.IsPermission(err) {
				return fmt.Errorf("%w: %s", ErrPermissionDenied, file.SourcePath)
			}
			return fmt.Errorf("failed to stat file %s: %w", file.SourcePath, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%w: %s is a directory, use PackDir", ErrInvalidOutput, file.SourcePath)
		}
		atomic.AddInt64(&p.totalBytes, info.Size())
	}

	if dir := filepath.Dir(p.config.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	zipFile, err := os.Create(p.config.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)
	defer zipWriter.Close()

	for _, file := range files {
		if atomic.LoadInt32(&p.cancelled) == 1 {
			zipWriter.Close()
			zipFile.Close()
			os.Remove(p.config.OutputPath)
			return ErrCancelled
		}

		if err := p.addFileToArchive(zipWriter, file, len(files)); err != nil {
			zipWriter.Close()
			zipFile.Close()
			os.Remove(p.config.OutputPath)
			return err
		}
	}

	return nil
}

// PackDir packs every file under dir, with archive paths relative to
// dir itself. A packed extension root therefore keeps manifest.json at
// the archive root, the layout store uploads require.
func (p *Packager) PackDir(dir string) error {
	entries, err := collectDir(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptySource, dir)
	}
	return p.PackFiles(entries)
}

// PackIconSet packs icon{size}.png for each given size from dir, plus
// icon.ico when present.
func (p *Packager) PackIconSet(dir string, sizes []int) error {
	var entries []FileEntry
	for _, size := range sizes {
		name := fmt.Sprintf("icon%d.png", size)
		entries = append(entries, FileEntry{
			SourcePath:  filepath.Join(dir, name),
			ArchivePath: name,
		})
	}

	icoPath := filepath.Join(dir, "icon.ico")
	if _, err := os.Stat(icoPath); err == nil {
		entries = append(entries, FileEntry{SourcePath: icoPath, ArchivePath: "icon.ico"})
	}

	return p.PackFiles(entries)
}

// Result describes a finished packing run
type Result struct {
	// OutputPath is the path to the created archive
	OutputPath string

	// FilesPacked is the number of files added to the archive
	FilesPacked int

	// TotalSize is the total uncompressed size of packed files
	TotalSize int64

	// ArchiveSize is the size of the resulting archive
	ArchiveSize int64

	// CompressionRatio is archive size divided by total size
	CompressionRatio float64

	// Encrypted reports whether the archive is password protected
	Encrypted bool

	// Elapsed is the wall time the run took
	Elapsed time.Duration
}

// PackFilesWithResult packs files and reports archive statistics
func (p *Packager) PackFilesWithResult(files []FileEntry) (*Result, error) {
	start := time.Now()
	if err := p.PackFiles(files); err != nil {
		return nil, err
	}
	return p.buildResult(start)
}

// PackDirWithResult packs a directory and reports archive statistics
func (p *Packager) PackDirWithResult(dir string) (*Result, error) {
	start := time.Now()
	if err := p.PackDir(dir); err != nil {
		return nil, err
	}
	return p.buildResult(start)
}

// PackIconSetWithResult packs the icon set and reports archive statistics
func (p *Packager) PackIconSetWithResult(dir string, sizes []int) (*Result, error) {
	start := time.Now()
	if err := p.PackIconSet(dir, sizes); err != nil {
		return nil, err
	}
	return p.buildResult(start)
}

func (p *Packager) buildResult(start time.Time) (*Result, error) {
	archiveInfo, err := os.Stat(p.config.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat output archive: %w", err)
	}

	totalSize := atomic.LoadInt64(&p.totalBytes)
	var ratio float64
	if totalSize > 0 {
		ratio = float64(archiveInfo.Size()) / float64(totalSize)
	}

	return &Result{
		OutputPath:       p.config.OutputPath,
		FilesPacked:      int(atomic.LoadInt32(&p.filesPacked)),
		TotalSize:        totalSize,
		ArchiveSize:      archiveInfo.Size(),
		CompressionRatio: ratio,
		Encrypted:        p.Encrypted(),
		Elapsed:          time.Since(start),
	}, nil
}

// collectDir gathers all regular files under dir with dir-relative
// archive paths.
func collectDir(dir string) ([]FileEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, dir)
		}
		return nil, fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidOutput, dir)
	}

	var entries []FileEntry
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			relPath = filepath.Base(path)
		}
		entries = append(entries, FileEntry{SourcePath: path, ArchivePath: relPath})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dir, err)
	}
	return entries, nil
}

// addFileToArchive streams one file into the archive, encrypted when a
// password is configured.
func (p *Packager) addFileToArchive(zipWriter *zip.Writer, file FileEntry, filesTotal int) error {
	srcFile, err := os.Open(file.SourcePath)
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", ErrPermissionDenied, file.SourcePath)
		}
		return fmt.Errorf("failed to open file %s: %w", file.SourcePath, err)
	}
	defer srcFile.Close()

	archivePath := file.ArchivePath
	if archivePath == "" {
		archivePath = filepath.Base(file.SourcePath)
	}
	// ZIP entries always use forward slashes.
	archivePath = strings.ReplaceAll(archivePath, string(os.PathSeparator), "/")

	var writer io.Writer
	if p.Encrypted() {
		writer, err = zipWriter.Encrypt(archivePath, p.config.Password)
	} else {
		writer, err = zipWriter.Create(archivePath)
	}
	if err != nil {
		return fmt.Errorf("failed to create archive entry for %s: %w", file.SourcePath, err)
	}

	buf := make([]byte, p.config.BufferSize)
	for {
		if atomic.LoadInt32(&p.cancelled) == 1 {
			return ErrCancelled
		}

		n, readErr := srcFile.Read(buf)
		if n > 0 {
			if _, writeErr := writer.Write(buf[:n]); writeErr != nil {
				return fmt.Errorf("failed to write to archive: %w", writeErr)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("failed to read file %s: %w", file.SourcePath, readErr)
		}
	}

	done := atomic.AddInt32(&p.filesPacked, 1)
	if p.config.OnProgress != nil {
		p.config.OnProgress(int(done), filesTotal, archivePath)
	}
	return nil
}

// GeneratePassword generates a cryptographically secure random password
// of the given length. With alphanumericOnly set the password avoids
// symbols, which is easier to read out and type.
func GeneratePassword(length int, alphanumericOnly bool) (string, error) {
	if length < 8 {
		length = 8
	}
	if length > 128 {
		length = 128
	}

	charset := "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()-_=+[]{}|;:,.<>?"
	if alphanumericOnly {
		charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	}

	password := make([]byte, length)
	randomBytes := make([]byte, length)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	for i := 0; i < length; i++ {
		password[i] = charset[randomBytes[i]%byte(len(charset))]
	}
	return string(password), nil
}

// ValidatePassword checks that a password is acceptable for protecting
// an archive
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	return nil
}
