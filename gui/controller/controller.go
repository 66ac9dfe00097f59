// Package controller provides the bridge between the UI and the icon
// generation, verification and packing logic
package controller

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/draw"

	"github.com/kacebover/icon-maker/packager"
	"github.com/kacebover/icon-maker/rasterizer"
)

// ErrBusy is returned when an operation is started while another one
// is still running
var ErrBusy = errors.New("another operation is already running")

// LogLevel represents log message severity
type LogLevel int

const (
	LogInfo LogLevel = iota
	LogWarning
	LogError
)

// IconController manages icon operations and provides callbacks for UI
// updates
type IconController struct {
	config *AppConfig

	// Callbacks
	onIconCreated      func(rasterizer.IconInfo)
	onLogMessage       func(LogLevel, string)
	onGenerateComplete func(*rasterizer.Result, error)
	onVerifyComplete   func(*rasterizer.SetReport, error)
	onPackProgress     func(filesDone, filesTotal int, currentFile string)
	onPackComplete     func(*packager.Result, error)

	// State
	mu           sync.RWMutex
	busy         bool
	lastGenerate *rasterizer.Result
	lastReport   *rasterizer.SetReport
	lastPack     *packager.Result
	activePack   *packager.Packager
}

// NewIconController creates a new controller with persisted settings
func NewIconController() *IconController {
	config := LoadConfig()
	config.ValidateConfig()
	return &IconController{config: config}
}

// SetOnIconCreated sets the callback for each written icon
func (ic *IconController) SetOnIconCreated(callback func(rasterizer.IconInfo)) {
	ic.onIconCreated = callback
}

// SetOnLogMessage sets the callback for log messages
func (ic *IconController) SetOnLogMessage(callback func(LogLevel, string)) {
	ic.onLogMessage = callback
}

// SetOnGenerateComplete sets the callback for generation completion
func (ic *IconController) SetOnGenerateComplete(callback func(*rasterizer.Result, error)) {
	ic.onGenerateComplete = callback
}

// SetOnVerifyComplete sets the callback for verification completion
func (ic *IconController) SetOnVerifyComplete(callback func(*rasterizer.SetReport, error)) {
	ic.onVerifyComplete = callback
}

// SetOnPackProgress sets the callback for packing progress
func (ic *IconController) SetOnPackProgress(callback func(filesDone, filesTotal int, currentFile string)) {
	ic.onPackProgress = callback
}

// SetOnPackComplete sets the callback for packing completion
func (ic *IconController) SetOnPackComplete(callback func(*packager.Result, error)) {
	ic.onPackComplete = callback
}

// GetConfig returns the current configuration
func (ic *IconController) GetConfig() *AppConfig {
	return ic.config
}

// UpdateConfig updates and saves configuration
func (ic *IconController) UpdateConfig(config *AppConfig) error {
	config.ValidateConfig()
	ic.config = config
	return SaveConfig(config)
}

// IsBusy reports whether an operation is running
func (ic *IconController) IsBusy() bool {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	return ic.busy
}

func (ic *IconController) beginOp() bool {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if ic.busy {
		return false
	}
	ic.busy = true
	return true
}

func (ic *IconController) endOp() {
	ic.mu.Lock()
	ic.busy = false
	ic.activePack = nil
	ic.mu.Unlock()
}

// Generate renders and writes the standard icon set into the
// configured output directory
func (ic *IconController) Generate() (*rasterizer.Result, error) {
	if !ic.beginOp() {
		return nil, ErrBusy
	}
	defer ic.endOp()

	ic.log(LogInfo, "Генерация иконок в "+ic.config.OutputDir)

	gen := rasterizer.NewGenerator()
	gen.SetOutputDir(ic.config.OutputDir)
	gen.SetWriteICO(ic.config.WriteICO)
	gen.SetOnCreated(func(info rasterizer.IconInfo) {
		ic.log(LogInfo, "Создан "+filepath.Base(info.Path))
		if ic.onIconCreated != nil {
			ic.onIconCreated(info)
		}
	})

	result, err := gen.Generate()
	if err != nil {
		ic.log(LogError, "Ошибка генерации: "+err.Error())
	} else {
		ic.mu.Lock()
		ic.lastGenerate = result
		ic.mu.Unlock()

		ic.config.AddRecentDir(ic.config.OutputDir)
		if saveErr := SaveConfig(ic.config); saveErr != nil {
			ic.log(LogWarning, "Не удалось сохранить настройки: "+saveErr.Error())
		}
	}

	if ic.onGenerateComplete != nil {
		ic.onGenerateComplete(result, err)
	}
	return result, err
}

// Verify checks the icon set in the configured output directory
// against the pixel contract
func (ic *IconController) Verify() (*rasterizer.SetReport, error) {
	if !ic.beginOp() {
		return nil, ErrBusy
	}
	defer ic.endOp()

	ic.log(LogInfo, "Проверка иконок в "+ic.config.OutputDir)

	v := rasterizer.NewVerifier()
	v.SetDir(ic.config.OutputDir)

	report, err := v.VerifySet()
	if err != nil {
		ic.log(LogError, "Ошибка проверки: "+err.Error())
	} else {
		ic.mu.Lock()
		ic.lastReport = report
		ic.mu.Unlock()

		if report.Passed() {
			ic.log(LogInfo, "Все проверки пройдены")
		} else {
			ic.log(LogWarning, "Проверка не пройдена")
		}
	}

	if ic.onVerifyComplete != nil {
		ic.onVerifyComplete(report, err)
	}
	return report, err
}

// Pack bundles the icon set from the configured output directory into
// a ZIP archive. An empty outputPath falls back to the last used
// archive path or the default export location; an empty password
// produces a plain archive.
func (ic *IconController) Pack(outputPath, password string) (*packager.Result, error) {
	if !ic.beginOp() {
		return nil, ErrBusy
	}
	defer ic.endOp()

	if outputPath == "" {
		outputPath = ic.config.LastArchivePath
	}
	if outputPath == "" {
		outputPath = filepath.Join(ic.config.DefaultExportDir, "extension-icons.zip")
	}

	ic.log(LogInfo, "Упаковка иконок в "+outputPath)

	p, err := packager.NewPackager(packager.Config{
		OutputPath: outputPath,
		Password:   password,
		OnProgress: ic.onPackProgress,
	})
	if err != nil {
		ic.log(LogError, "Ошибка упаковки: "+err.Error())
		if ic.onPackComplete != nil {
			ic.onPackComplete(nil, err)
		}
		return nil, err
	}

	ic.mu.Lock()
	ic.activePack = p
	ic.mu.Unlock()

	result, err := p.PackIconSetWithResult(ic.config.OutputDir, rasterizer.DefaultSizes)
	if err != nil {
		ic.log(LogError, "Ошибка упаковки: "+err.Error())
		if ic.onPackComplete != nil {
			ic.onPackComplete(nil, err)
		}
		return nil, err
	}

	ic.mu.Lock()
	ic.lastPack = result
	ic.mu.Unlock()

	ic.config.LastArchivePath = outputPath
	if saveErr := SaveConfig(ic.config); saveErr != nil {
		ic.log(LogWarning, "Не удалось сохранить настройки: "+saveErr.Error())
	}
	ic.log(LogInfo, "Архив создан: "+outputPath)

	if ic.onPackComplete != nil {
		ic.onPackComplete(result, err)
	}
	return result, err
}

// CancelPack aborts a running pack operation
func (ic *IconController) CancelPack() {
	ic.mu.RLock()
	p := ic.activePack
	ic.mu.RUnlock()
	if p != nil {
		p.Cancel()
	}
}

// PreviewIcon is one upscaled icon for the preview row
type PreviewIcon struct {
	Size  int
	Scale int
	Image image.Image
}

// RenderPreviews renders the standard set upscaled with
// nearest-neighbour interpolation so small icons stay crisp on screen
func (ic *IconController) RenderPreviews(scale int) ([]PreviewIcon, error) {
	if scale < 1 {
		scale = 1
	}

	previews := make([]PreviewIcon, 0, len(rasterizer.DefaultSizes))
	for _, size := range rasterizer.DefaultSizes {
		src, err := rasterizer.Render(size)
		if err != nil {
			return nil, err
		}
		dst := image.NewNRGBA(image.Rect(0, 0, size*scale, size*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		previews = append(previews, PreviewIcon{Size: size, Scale: scale, Image: dst})
	}
	return previews, nil
}

// ExportReport writes the last verification report as JSON and CSV
// into outputDir
func (ic *IconController) ExportReport(outputDir string) error {
	ic.mu.RLock()
	report := ic.lastReport
	ic.mu.RUnlock()

	if report == nil {
		return nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	rw := rasterizer.NewReportWriter(report)
	if err := rw.ExportJSON(filepath.Join(outputDir, "icon-report.json")); err != nil {
		return err
	}
	return rw.ExportCSV(filepath.Join(outputDir, "icon-report.csv"))
}

// GetLastGenerate returns the most recent generation result
func (ic *IconController) GetLastGenerate() *rasterizer.Result {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	return ic.lastGenerate
}

// GetLastReport returns the most recent verification report
func (ic *IconController) GetLastReport() *rasterizer.SetReport {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	return ic.lastReport
}

// GetLastPack returns the most recent packing result
func (ic *IconController) GetLastPack() *packager.Result {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	return ic.lastPack
}

// GenerateSecurePassword generates a cryptographically secure password
func (ic *IconController) GenerateSecurePassword(length int, alphanumericOnly bool) (string, error) {
	return packager.GeneratePassword(length, alphanumericOnly)
}

// ValidateArchivePassword validates a password for archive protection
func (ic *IconController) ValidateArchivePassword(password string) error {
	return packager.ValidatePassword(password)
}

func (ic *IconController) log(level LogLevel, message string) {
	if ic.onLogMessage != nil {
		ic.onLogMessage(level, message)
	}
}
