package main

import (
	"fmt"
	"image/color"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/kacebover/icon-maker/gui/controller"
	"github.com/kacebover/icon-maker/rasterizer"
)

// Colors
var (
	colorCritical = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colorHigh     = color.NRGBA{R: 253, G: 126, B: 20, A: 255}
	colorMedium   = color.NRGBA{R: 255, G: 193, B: 7, A: 255}
	colorPass     = color.NRGBA{R: 40, G: 167, B: 69, A: 255}
	colorSkip     = color.NRGBA{R: 108, G: 117, B: 125, A: 255}
)

// checkItem is one verification check flattened for the results list
type checkItem struct {
	File  string
	Check rasterizer.Check
}

// IconGUI represents the GUI application
type IconGUI struct {
	app        fyne.App
	window     fyne.Window
	controller *controller.IconController

	// Input fields
	outputDir    *widget.Entry
	recentSelect *widget.Select

	// Options
	icoCheck      *widget.Check
	encryptCheck  *widget.Check
	passwordEntry *widget.Entry

	// Buttons
	generateButton *widget.Button
	verifyButton   *widget.Button
	packButton     *widget.Button
	exportButton   *widget.Button
	showButton     *widget.Button
	settingsButton *widget.Button

	// Preview
	previewRow *fyne.Container

	// Progress
	progressBar *widget.ProgressBar
	statusLabel *widget.Label
	timeLabel   *widget.Label

	// Statistics
	iconsLabel  *widget.Label
	sizeLabel   *widget.Label
	checksLabel *widget.Label
	failsLabel  *widget.Label

	// Results
	checksList   *widget.List
	checksData   []checkItem
	checksMutex  sync.RWMutex
	statusFilter string

	// State
	working   atomic.Bool
	startTime time.Time
}

// NewIconGUI creates a new GUI instance
func NewIconGUI() *IconGUI {
	a := app.NewWithID("com.iconmaker.app")

	ctrl := controller.NewIconController()
	cfg := ctrl.GetConfig()

	w := a.NewWindow("🎨 Генератор Иконок")
	w.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))
	w.CenterOnScreen()

	ig := &IconGUI{
		app:        a,
		window:     w,
		controller: ctrl,
		checksData: make([]checkItem, 0),
	}

	ig.buildUI()
	ig.setupShortcuts()
	ig.refreshPreviews()
	return ig
}

func (ig *IconGUI) buildUI() {
	// === HEADER ===
	titleText := canvas.NewText("🎨 Генератор Иконок", theme.ForegroundColor())
	titleText.TextSize = 28
	titleText.TextStyle.Bold = true

	subtitleText := canvas.NewText("Иконки для Браузерного Расширения", theme.ForegroundColor())
	subtitleText.TextSize = 14

	ig.settingsButton = widget.NewButton("⚙️ Настройки", ig.showSettings)
	ig.settingsButton.Importance = widget.LowImportance

	helpButton := widget.NewButton("❓ Справка", ig.showHelp)
	helpButton.Importance = widget.LowImportance

	header := container.NewBorder(
		nil, nil,
		container.NewVBox(titleText, subtitleText),
		container.NewHBox(ig.settingsButton, helpButton),
	)

	// === LEFT PANEL - CONTROLS ===
	leftPanel := ig.buildControlPanel()

	// === RIGHT PANEL - RESULTS ===
	rightPanel := ig.buildResultsPanel()

	// === MAIN LAYOUT ===
	mainSplit := container.NewHSplit(leftPanel, rightPanel)
	mainSplit.SetOffset(0.45)

	content := container.NewBorder(
		container.NewVBox(container.NewPadded(header), widget.NewSeparator()),
		nil, nil, nil,
		mainSplit,
	)

	ig.window.SetContent(content)
}

func (ig *IconGUI) buildControlPanel() fyne.CanvasObject {
	cfg := ig.controller.GetConfig()

	// Output directory section
	dirLabel := widget.NewLabelWithStyle("📁 Папка Вывода", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	ig.outputDir = widget.NewEntry()
	ig.outputDir.SetPlaceHolder("Выберите или введите путь к папке...")
	ig.outputDir.SetText(cfg.OutputDir)

	browseBtn := widget.NewButton("📂 Обзор...", func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, ig.window)
				return
			}
			if uri != nil {
				ig.outputDir.SetText(uri.Path())
			}
		}, ig.window)
	})
	browseBtn.Importance = widget.MediumImportance

	// Quick access buttons
	cwdBtn := widget.NewButton("📁 Текущая", func() {
		wd, _ := os.Getwd()
		ig.outputDir.SetText(wd)
	})
	cwdBtn.Importance = widget.LowImportance

	homeBtn := widget.NewButton("🏠 Домой", func() {
		home, _ := os.UserHomeDir()
		ig.outputDir.SetText(home)
	})
	homeBtn.Importance = widget.LowImportance

	quickButtons := container.NewHBox(cwdBtn, homeBtn)

	ig.recentSelect = widget.NewSelect(cfg.RecentDirs, func(s string) {
		if s != "" {
			ig.outputDir.SetText(s)
		}
	})
	ig.recentSelect.PlaceHolder = "Недавние папки..."

	dirSection := container.NewVBox(
		dirLabel,
		ig.outputDir,
		browseBtn,
		quickButtons,
		ig.recentSelect,
	)

	// Preview section
	previewLabel := widget.NewLabelWithStyle("🖼️ Предпросмотр", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ig.previewRow = container.NewHBox()

	previewSection := container.NewVBox(
		previewLabel,
		container.NewCenter(ig.previewRow),
	)

	// Options section
	optionsLabel := widget.NewLabelWithStyle("⚙️ Параметры", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	ig.icoCheck = widget.NewCheck("📦 Также создать icon.ico (Windows)", nil)
	ig.icoCheck.SetChecked(cfg.WriteICO)

	ig.passwordEntry = widget.NewPasswordEntry()
	ig.passwordEntry.SetPlaceHolder("Пароль архива...")
	ig.passwordEntry.Disable()

	generatePwdBtn := widget.NewButton("🎲", func() {
		pwd, err := ig.controller.GenerateSecurePassword(16, false)
		if err != nil {
			dialog.ShowError(err, ig.window)
			return
		}
		ig.passwordEntry.SetText(pwd)
	})
	generatePwdBtn.Importance = widget.LowImportance

	ig.encryptCheck = widget.NewCheck("🔐 Зашифровать архив (AES-256)", func(checked bool) {
		if checked {
			ig.passwordEntry.Enable()
		} else {
			ig.passwordEntry.Disable()
		}
	})
	ig.encryptCheck.SetChecked(cfg.EncryptArchives)

	passwordRow := container.NewBorder(nil, nil, nil, generatePwdBtn, ig.passwordEntry)

	optionsSection := container.NewVBox(
		optionsLabel,
		ig.icoCheck,
		ig.encryptCheck,
		passwordRow,
	)

	// Control buttons
	ig.generateButton = widget.NewButton("▶️ СОЗДАТЬ ИКОНКИ", ig.onGenerate)
	ig.generateButton.Importance = widget.HighImportance

	ig.verifyButton = widget.NewButton("🔎 Проверить", ig.onVerify)

	ig.packButton = widget.NewButton("📦 Упаковать ZIP", ig.onPack)

	ig.exportButton = widget.NewButton("💾 Экспорт Отчёта", ig.onExport)
	ig.exportButton.Disable()

	ig.showButton = widget.NewButton("📂 Показать Файлы", func() {
		ig.openInExplorer(ig.outputDir.Text)
	})
	ig.showButton.Importance = widget.LowImportance
	ig.showButton.Disable()

	controlButtons := container.NewGridWithColumns(2,
		ig.generateButton, ig.verifyButton,
		ig.packButton, ig.exportButton,
	)

	// Progress section
	progressLabel := widget.NewLabelWithStyle("📈 Прогресс", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	ig.progressBar = widget.NewProgressBar()
	ig.progressBar.Min = 0
	ig.progressBar.Max = 1
	ig.progressBar.SetValue(0)

	ig.statusLabel = widget.NewLabel("Готов к генерации")
	ig.timeLabel = widget.NewLabel("Время: --")

	progressSection := container.NewVBox(
		progressLabel,
		ig.progressBar,
		container.NewHBox(ig.statusLabel, layout.NewSpacer(), ig.timeLabel),
	)

	// Statistics section
	statsLabel := widget.NewLabelWithStyle("📊 Статистика", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	ig.iconsLabel = widget.NewLabel("0")
	ig.iconsLabel.TextStyle.Bold = true
	ig.sizeLabel = widget.NewLabel("0 B")
	ig.checksLabel = widget.NewLabel("0")
	ig.failsLabel = widget.NewLabel("0")

	statsGrid := container.NewGridWithColumns(4,
		container.NewVBox(widget.NewLabel("Иконок"), ig.iconsLabel),
		container.NewVBox(widget.NewLabel("Размер"), ig.sizeLabel),
		container.NewVBox(widget.NewLabel("Проверок"), ig.checksLabel),
		container.NewVBox(widget.NewLabel("🔴 Ошибок"), ig.failsLabel),
	)

	statsSection := container.NewVBox(
		statsLabel,
		statsGrid,
	)

	// Combine all sections
	leftContent := container.NewVBox(
		dirSection,
		widget.NewSeparator(),
		previewSection,
		widget.NewSeparator(),
		optionsSection,
		widget.NewSeparator(),
		controlButtons,
		ig.showButton,
		widget.NewSeparator(),
		progressSection,
		widget.NewSeparator(),
		statsSection,
	)

	scroll := container.NewScroll(leftContent)
	scroll.SetMinSize(fyne.NewSize(360, 0))

	return container.NewPadded(scroll)
}

func (ig *IconGUI) buildResultsPanel() fyne.CanvasObject {
	ig.checksList = widget.NewList(
		func() int {
			ig.checksMutex.RLock()
			defer ig.checksMutex.RUnlock()
			return len(ig.getFilteredChecks())
		},
		func() fyne.CanvasObject {
			return ig.createCheckItem()
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			ig.updateCheckItem(id, obj)
		},
	)

	statusSelect := widget.NewSelect(
		[]string{"Все проверки", "Только ошибки", "Только пройденные"},
		func(s string) {
			ig.statusFilter = s
			ig.refreshChecksList()
		},
	)
	statusSelect.SetSelected("Все проверки")

	resultsHeader := widget.NewLabelWithStyle("🔎 Результаты Проверки", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	filterBar := container.NewBorder(nil, nil, nil, statusSelect, widget.NewLabel("Нажмите «Проверить» после генерации"))

	resultsPanel := container.NewBorder(
		container.NewVBox(resultsHeader, filterBar, widget.NewSeparator()),
		nil, nil, nil,
		ig.checksList,
	)

	return container.NewPadded(resultsPanel)
}

func (ig *IconGUI) createCheckItem() fyne.CanvasObject {
	statusIcon := canvas.NewRectangle(theme.ForegroundColor())
	statusIcon.CornerRadius = 6
	statusIcon.SetMinSize(fyne.NewSize(12, 12))

	checkName := widget.NewLabel("проверка")
	checkName.TextStyle.Bold = true
	checkName.Truncation = fyne.TextTruncateEllipsis

	detail := widget.NewLabel("файл / детали")
	detail.Truncation = fyne.TextTruncateEllipsis

	iconContainer := container.NewCenter(statusIcon)

	return container.NewHBox(
		iconContainer,
		container.NewVBox(checkName, detail),
	)
}

func (ig *IconGUI) updateCheckItem(id widget.ListItemID, obj fyne.CanvasObject) {
	ig.checksMutex.RLock()
	filtered := ig.getFilteredChecks()
	if id >= len(filtered) {
		ig.checksMutex.RUnlock()
		return
	}
	item := filtered[id]
	ig.checksMutex.RUnlock()

	row := obj.(*fyne.Container)
	iconContainer := row.Objects[0].(*fyne.Container)
	statusIcon := iconContainer.Objects[0].(*canvas.Rectangle)
	textBox := row.Objects[1].(*fyne.Container)
	checkName := textBox.Objects[0].(*widget.Label)
	detail := textBox.Objects[1].(*widget.Label)

	statusIcon.FillColor = checkColor(item.Check)
	statusIcon.Refresh()

	checkName.SetText(fmt.Sprintf("%s %s: %s",
		statusToMark(item.Check.Status), filepath.Base(item.File), checkToRussian(item.Check.Name)))

	if item.Check.Detail != "" {
		detail.SetText(item.Check.Detail)
	} else {
		detail.SetText(statusToRussian(item.Check.Status))
	}
}

// checkColor picks the list marker color for a check outcome
func checkColor(c rasterizer.Check) color.Color {
	switch c.Status {
	case rasterizer.StatusPass:
		return colorPass
	case rasterizer.StatusSkip:
		return colorSkip
	}
	switch c.Severity {
	case rasterizer.SeverityCritical:
		return colorCritical
	case rasterizer.SeverityHigh:
		return colorHigh
	default:
		return colorMedium
	}
}

func statusToMark(s rasterizer.CheckStatus) string {
	switch s {
	case rasterizer.StatusPass:
		return "✓"
	case rasterizer.StatusFail:
		return "✗"
	default:
		return "–"
	}
}

func statusToRussian(s rasterizer.CheckStatus) string {
	switch s {
	case rasterizer.StatusPass:
		return "Пройдено"
	case rasterizer.StatusFail:
		return "Не пройдено"
	default:
		return "Пропущено"
	}
}

func checkToRussian(name string) string {
	switch name {
	case "readable":
		return "Файл читается"
	case "png_decodes":
		return "Корректный PNG"
	case "dimensions":
		return "Размеры совпадают"
	case "corners_transparent":
		return "Прозрачные углы"
	case "center_white":
		return "Белый центр"
	case "inset_margin":
		return "Отступ квадрата"
	case "background_ring":
		return "Синий фон круга"
	default:
		return name
	}
}

func (ig *IconGUI) getFilteredChecks() []checkItem {
	if ig.statusFilter == "" || ig.statusFilter == "Все проверки" {
		return ig.checksData
	}

	filtered := make([]checkItem, 0, len(ig.checksData))
	for _, item := range ig.checksData {
		switch ig.statusFilter {
		case "Только ошибки":
			if item.Check.Status == rasterizer.StatusFail {
				filtered = append(filtered, item)
			}
		case "Только пройденные":
			if item.Check.Status == rasterizer.StatusPass {
				filtered = append(filtered, item)
			}
		}
	}
	return filtered
}

func (ig *IconGUI) refreshChecksList() {
	fyne.Do(func() {
		ig.checksList.Refresh()
	})
}

// refreshPreviews rebuilds the preview row from freshly rendered icons
func (ig *IconGUI) refreshPreviews() {
	scale := ig.controller.GetConfig().PreviewScale
	previews, err := ig.controller.RenderPreviews(scale)
	if err != nil {
		return
	}

	ig.previewRow.Objects = nil
	for _, p := range previews {
		img := canvas.NewImageFromImage(p.Image)
		img.FillMode = canvas.ImageFillOriginal
		img.SetMinSize(fyne.NewSize(float32(p.Size*p.Scale), float32(p.Size*p.Scale)))

		caption := widget.NewLabel(fmt.Sprintf("%d×%d", p.Size, p.Size))
		caption.Alignment = fyne.TextAlignCenter

		ig.previewRow.Add(container.NewVBox(container.NewCenter(img), caption))
	}
	ig.previewRow.Refresh()
}

// updateStatsUI updates stats labels - must be called from main thread
func (ig *IconGUI) updateStatsUI() {
	if result := ig.controller.GetLastGenerate(); result != nil {
		ig.iconsLabel.SetText(strconv.Itoa(result.Count()))
		ig.sizeLabel.SetText(controller.FormatFileSize(result.TotalBytes))
	}
	if report := ig.controller.GetLastReport(); report != nil {
		ig.checksLabel.SetText(strconv.Itoa(report.ChecksRun))
		ig.failsLabel.SetText(strconv.Itoa(report.ChecksFailed))
	}
}

// applyConfigFromUI writes current widget state into the saved config
func (ig *IconGUI) applyConfigFromUI() error {
	cfg := ig.controller.GetConfig()
	cfg.OutputDir = ig.outputDir.Text
	cfg.WriteICO = ig.icoCheck.Checked
	cfg.EncryptArchives = ig.encryptCheck.Checked
	return ig.controller.UpdateConfig(cfg)
}

func (ig *IconGUI) notify(title, content string) {
	if !ig.controller.GetConfig().ShowNotifications {
		return
	}
	ig.app.SendNotification(&fyne.Notification{Title: title, Content: content})
}

func (ig *IconGUI) setupShortcuts() {
	// G to start generation when no entry has focus
	ig.window.Canvas().SetOnTypedKey(func(ke *fyne.KeyEvent) {
		if ke.Name == fyne.KeyG {
			if !ig.working.Load() {
				ig.onGenerate()
			}
		}
	})
}

func (ig *IconGUI) onGenerate() {
	if ig.working.Load() {
		return
	}

	outDir := ig.outputDir.Text
	if outDir == "" {
		dialog.ShowError(fmt.Errorf("пожалуйста, выберите папку вывода"), ig.window)
		return
	}

	if err := ig.applyConfigFromUI(); err != nil {
		dialog.ShowError(err, ig.window)
		return
	}

	ig.working.Store(true)
	ig.startTime = time.Now()

	ig.generateButton.Disable()
	ig.verifyButton.Disable()
	ig.packButton.Disable()
	ig.progressBar.SetValue(0)
	ig.statusLabel.SetText("🔄 Генерация...")

	var done atomic.Int64
	ig.controller.SetOnIconCreated(func(info rasterizer.IconInfo) {
		n := done.Add(1)
		fyne.Do(func() {
			ig.progressBar.SetValue(float64(n) / float64(len(rasterizer.DefaultSizes)))
			ig.statusLabel.SetText(fmt.Sprintf("✓ Создан %s", filepath.Base(info.Path)))
		})
	})

	go func() {
		result, err := ig.controller.Generate()

		elapsed := time.Since(ig.startTime)
		fyne.Do(func() {
			ig.working.Store(false)
			ig.generateButton.Enable()
			ig.verifyButton.Enable()
			ig.packButton.Enable()
			ig.timeLabel.SetText(fmt.Sprintf("Время: %.2fс", elapsed.Seconds()))

			if err != nil {
				ig.progressBar.SetValue(0)
				ig.statusLabel.SetText("❌ Ошибка генерации")
				dialog.ShowError(err, ig.window)
				return
			}

			ig.progressBar.SetValue(1)
			ig.statusLabel.SetText(fmt.Sprintf("✅ Создано %d иконок за %.2fс", result.Count(), elapsed.Seconds()))
			ig.showButton.Enable()
			ig.recentSelect.Options = ig.controller.GetConfig().RecentDirs
			ig.recentSelect.Refresh()
			ig.updateStatsUI()
		})

		if err == nil {
			ig.notify("Генерация завершена", fmt.Sprintf("Создано %d иконок", result.Count()))
		}
	}()
}

func (ig *IconGUI) onVerify() {
	if ig.working.Load() {
		return
	}

	outDir := ig.outputDir.Text
	if outDir == "" {
		dialog.ShowError(fmt.Errorf("пожалуйста, выберите папку вывода"), ig.window)
		return
	}

	if err := ig.applyConfigFromUI(); err != nil {
		dialog.ShowError(err, ig.window)
		return
	}

	ig.working.Store(true)
	ig.startTime = time.Now()

	ig.generateButton.Disable()
	ig.verifyButton.Disable()
	ig.packButton.Disable()
	ig.statusLabel.SetText("🔄 Проверка...")

	go func() {
		report, err := ig.controller.Verify()

		elapsed := time.Since(ig.startTime)
		fyne.Do(func() {
			ig.working.Store(false)
			ig.generateButton.Enable()
			ig.verifyButton.Enable()
			ig.packButton.Enable()
			ig.timeLabel.SetText(fmt.Sprintf("Время: %.2fс", elapsed.Seconds()))

			if err != nil {
				ig.statusLabel.SetText("❌ Ошибка проверки")
				dialog.ShowError(err, ig.window)
				return
			}

			ig.checksMutex.Lock()
			ig.checksData = ig.checksData[:0]
			for _, icon := range report.Icons {
				for _, c := range icon.Checks {
					ig.checksData = append(ig.checksData, checkItem{File: icon.Path, Check: c})
				}
			}
			ig.checksMutex.Unlock()

			if report.Passed() {
				ig.statusLabel.SetText(fmt.Sprintf("✅ Все проверки пройдены (%d)", report.ChecksRun))
			} else {
				ig.statusLabel.SetText(fmt.Sprintf("❌ Ошибок: %d из %d проверок", report.ChecksFailed, report.ChecksRun))
			}

			ig.exportButton.Enable()
			ig.checksList.Refresh()
			ig.updateStatsUI()
		})
	}()
}

func (ig *IconGUI) onPack() {
	if ig.working.Load() {
		return
	}

	cfg := ig.controller.GetConfig()

	defaultOutput := cfg.LastArchivePath
	if defaultOutput == "" {
		defaultOutput = filepath.Join(cfg.DefaultExportDir, "extension-icons.zip")
	}
	outputEntry := widget.NewEntry()
	outputEntry.SetText(defaultOutput)

	browseOutputBtn := widget.NewButton("📂 Обзор", func() {
		dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			writer.Close()
			outputEntry.SetText(writer.URI().Path())
		}, ig.window)
	})

	encrypted := ig.encryptCheck.Checked
	passwordInfo := widget.NewLabel("Без шифрования")
	if encrypted {
		passwordInfo.SetText("🔐 AES-256")
	}

	formItems := []*widget.FormItem{
		widget.NewFormItem("Сохранить в", container.NewBorder(nil, nil, nil, browseOutputBtn, outputEntry)),
		widget.NewFormItem("Шифрование", passwordInfo),
	}

	dialog.ShowForm("📦 Упаковать иконки", "Упаковать", "Отмена", formItems, func(confirm bool) {
		if !confirm {
			return
		}

		outputPath := outputEntry.Text
		if outputPath == "" {
			dialog.ShowError(fmt.Errorf("укажите путь для сохранения"), ig.window)
			return
		}
		if !strings.HasSuffix(strings.ToLower(outputPath), ".zip") {
			outputPath += ".zip"
		}

		password := ""
		if encrypted {
			password = ig.passwordEntry.Text
			if err := ig.controller.ValidateArchivePassword(password); err != nil {
				dialog.ShowError(fmt.Errorf("слабый пароль: %v", err), ig.window)
				return
			}
		}

		ig.runPack(outputPath, password)
	}, ig.window)
}

// runPack performs the packing with a progress dialog
func (ig *IconGUI) runPack(outputPath, password string) {
	ig.working.Store(true)
	ig.packButton.Disable()

	progressBar := widget.NewProgressBar()
	progressLabel := widget.NewLabel("Подготовка...")

	progressContent := container.NewVBox(progressLabel, progressBar)

	progressDialog := dialog.NewCustom("📦 Упаковка...", "Отмена", progressContent, ig.window)
	progressDialog.Show()

	var cancelled bool
	progressDialog.SetOnClosed(func() {
		cancelled = true
		ig.controller.CancelPack()
	})

	ig.controller.SetOnPackProgress(func(done, total int, currentFile string) {
		if cancelled {
			return
		}
		fyne.Do(func() {
			if total > 0 {
				progressBar.SetValue(float64(done) / float64(total))
			}
			progressLabel.SetText(fmt.Sprintf("Упаковка: %s (%d/%d)", filepath.Base(currentFile), done, total))
		})
	})

	go func() {
		defer func() {
			ig.working.Store(false)
			fyne.Do(func() {
				ig.packButton.Enable()
			})
		}()

		if err := ig.applyConfigFromUI(); err != nil {
			fyne.Do(func() {
				progressDialog.Hide()
				dialog.ShowError(err, ig.window)
			})
			return
		}

		result, err := ig.controller.Pack(outputPath, password)
		if err != nil {
			if !cancelled {
				fyne.Do(func() {
					progressDialog.Hide()
					dialog.ShowError(fmt.Errorf("ошибка упаковки: %v", err), ig.window)
				})
			}
			return
		}

		fyne.Do(func() {
			progressDialog.Hide()

			successMsg := fmt.Sprintf(
				"✅ Упаковка завершена!\n\n"+
					"📦 Архив: %s\n"+
					"📁 Файлов: %d\n"+
					"📊 Размер архива: %s",
				filepath.Base(result.OutputPath),
				result.FilesPacked,
				controller.FormatFileSize(result.ArchiveSize),
			)
			if result.Encrypted {
				successMsg += "\n🔐 Шифрование: AES-256"
			}

			dialog.ShowInformation("Упаковка завершена", successMsg, ig.window)
			ig.statusLabel.SetText(fmt.Sprintf("✅ Архив создан: %s", filepath.Base(result.OutputPath)))
		})

		ig.notify("Упаковка завершена", fmt.Sprintf("Упаковано %d файлов в %s", result.FilesPacked, filepath.Base(result.OutputPath)))
	}()
}

func (ig *IconGUI) onExport() {
	if ig.controller.GetLastReport() == nil {
		dialog.ShowError(fmt.Errorf("нет отчёта для экспорта"), ig.window)
		return
	}

	exportDir := filepath.Join(ig.outputDir.Text, "reports")
	if err := ig.controller.ExportReport(exportDir); err != nil {
		dialog.ShowError(err, ig.window)
		return
	}

	ig.statusLabel.SetText(fmt.Sprintf("✅ Отчёты экспортированы в: %s", exportDir))

	dialog.ShowInformation("Экспорт завершён",
		fmt.Sprintf("Отчёты сохранены в:\n%s\n\n• JSON отчёт\n• CSV отчёт", exportDir),
		ig.window)
}

func (ig *IconGUI) openInExplorer(dir string) {
	if dir == "" {
		return
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", dir)
	case "windows":
		cmd = exec.Command("explorer", dir)
	default:
		cmd = exec.Command("xdg-open", dir)
	}
	if err := cmd.Start(); err != nil {
		ig.statusLabel.SetText("❌ Не удалось открыть проводник")
	}
}

func (ig *IconGUI) showSettings() {
	cfg := ig.controller.GetConfig()

	// Preview scale
	scaleEntry := widget.NewEntry()
	scaleEntry.SetText(strconv.Itoa(cfg.PreviewScale))

	// Export directory
	exportDirEntry := widget.NewEntry()
	exportDirEntry.SetText(cfg.DefaultExportDir)

	// Notifications
	notificationsCheck := widget.NewCheck("Показывать уведомления", nil)
	notificationsCheck.SetChecked(cfg.ShowNotifications)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Масштаб предпросмотра (1-16)", scaleEntry),
		widget.NewFormItem("Папка экспорта архивов", exportDirEntry),
		widget.NewFormItem("", notificationsCheck),
	}

	dialog.ShowForm("⚙️ Настройки", "Сохранить", "Отмена", formItems, func(confirm bool) {
		if !confirm {
			return
		}

		if scale, err := strconv.Atoi(scaleEntry.Text); err == nil && scale > 0 {
			cfg.PreviewScale = scale
		}
		if exportDirEntry.Text != "" {
			cfg.DefaultExportDir = exportDirEntry.Text
		}
		cfg.ShowNotifications = notificationsCheck.Checked

		if err := ig.controller.UpdateConfig(cfg); err != nil {
			dialog.ShowError(err, ig.window)
			return
		}

		ig.refreshPreviews()
		ig.statusLabel.SetText("✅ Настройки сохранены")
	}, ig.window)
}

func (ig *IconGUI) showHelp() {
	helpText := `🎨 Генератор Иконок для Браузерного Расширения

ВОЗМОЖНОСТИ:
• Генерация иконок 16×16, 48×48 и 128×128 (PNG)
• Синий круг #007acc с белым квадратом по центру
• 📦 Сборка icon.ico для Windows
• 🔎 Проверка пиксельного контракта иконок
• 💾 Экспорт отчёта проверки (JSON, CSV)
• 🔐 Упаковка в ZIP с шифрованием AES-256

КАК ПОЛЬЗОВАТЬСЯ:
1. Выберите папку вывода
2. Нажмите «СОЗДАТЬ ИКОНКИ»
3. Нажмите «Проверить» для контроля пикселей
4. «Упаковать ZIP» соберёт архив для магазина

ПРОВЕРКИ:
🔴 Критические - файл не читается или неверный размер
🟠 Высокие - углы не прозрачны или центр не белый
🟡 Средние - квадрат выходит за отступ`

	dialog.ShowInformation("Справка", helpText, ig.window)
}

func (ig *IconGUI) Run() {
	ig.window.ShowAndRun()
}

func main() {
	gui := NewIconGUI()
	gui.Run()
}
