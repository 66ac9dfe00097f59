package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kacebover/icon-maker/packager"
	"github.com/kacebover/icon-maker/rasterizer"
)

func main() {
	// Проверка подкоманд
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "generate", "генерировать":
			runGenerateCommand(os.Args[2:])
			return
		case "verify", "проверить":
			runVerifyCommand(os.Args[2:])
			return
		case "pack", "упаковать":
			runPackCommand(os.Args[2:])
			return
		case "gui", "гуи":
			LaunchGUI()
			return
		case "help", "--help", "-h", "помощь":
			printMainHelp()
			return
		}

		fmt.Fprintf(os.Stderr, "❌ Неизвестная команда: %s\n\n", os.Args[1])
		printMainHelp()
		os.Exit(1)
	}

	// По умолчанию: генерация набора иконок в текущую директорию
	runGenerateLegacy()
}

func printMainHelp() {
	fmt.Println("🎨 Генератор Иконок - Иконки для Браузерного Расширения")
	fmt.Println("========================================================")
	fmt.Println()
	fmt.Println("Команды:")
	fmt.Println("  generate (генерировать)  Создать PNG-иконки 16/48/128")
	fmt.Println("  verify (проверить)       Проверить пиксельный контракт иконок")
	fmt.Println("  pack (упаковать)         Упаковать иконки в ZIP-архив")
	fmt.Println("  gui (гуи)                Запустить графический интерфейс")
	fmt.Println("  help (помощь)            Показать эту справку")
	fmt.Println()
	fmt.Println("Использование:")
	fmt.Println("  icon-maker                    Создать иконки в текущей директории")
	fmt.Println("  icon-maker generate [опции]")
	fmt.Println("  icon-maker verify [опции]")
	fmt.Println("  icon-maker pack [опции]")
	fmt.Println()
	fmt.Println("Примеры:")
	fmt.Println("  icon-maker")
	fmt.Println("  icon-maker generate -output ./dist -ico")
	fmt.Println("  icon-maker verify -dir ./dist -json report.json")
	fmt.Println("  icon-maker pack -dir ./dist -output icons.zip -generate-password")
	fmt.Println()
	fmt.Println("Запустите 'icon-maker <команда> -h' для подробной информации.")
}

// ═══════════════════════════════════════════════════════════════════════════
// КОМАНДА ГЕНЕРАЦИИ
// ═══════════════════════════════════════════════════════════════════════════

// runGenerateLegacy создаёт стандартный набор в текущей директории и
// печатает только строки подтверждения
func runGenerateLegacy() {
	gen := rasterizer.NewGenerator()
	gen.SetOnCreated(func(info rasterizer.IconInfo) {
		fmt.Printf("Created %s\n", filepath.Base(info.Path))
	})

	if _, err := gen.Generate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func runGenerateCommand(args []string) {
	generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)

	outputDir := generateCmd.String("output", ".", "Директория для сохранения иконок")
	writeICO := generateCmd.Bool("ico", false, "Также собрать icon.ico для Windows")
	verbose := generateCmd.Bool("verbose", false, "Подробный вывод")
	quiet := generateCmd.Bool("quiet", false, "Только строки подтверждения")

	generateCmd.Usage = func() {
		fmt.Println("🎨 Генерация Иконок")
		fmt.Println("===================")
		fmt.Println()
		fmt.Println("Создаёт PNG-иконки 16×16, 48×48 и 128×128: синий круг #007acc")
		fmt.Println("с белым квадратом по центру на прозрачном фоне.")
		fmt.Println()
		fmt.Println("Использование:")
		fmt.Println("  icon-maker generate [опции]")
		fmt.Println()
		fmt.Println("Опции:")
		fmt.Println("  -output string")
		fmt.Println("        Директория для сохранения иконок (по умолчанию: .)")
		fmt.Println("  -ico")
		fmt.Println("        Также собрать icon.ico для Windows")
		fmt.Println("  -verbose")
		fmt.Println("        Подробный вывод")
		fmt.Println("  -quiet")
		fmt.Println("        Только строки подтверждения")
		fmt.Println()
		fmt.Println("Примеры:")
		fmt.Println("  icon-maker generate")
		fmt.Println("  icon-maker generate -output ./dist -ico -verbose")
	}

	if err := generateCmd.Parse(args); err != nil {
		os.Exit(1)
	}

	// Создание директории вывода, если не существует
	if *outputDir != "." {
		if err := os.MkdirAll(*outputDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Ошибка: Не удалось создать директорию: %v\n", err)
			os.Exit(1)
		}
	}

	gen := rasterizer.NewGenerator()
	gen.SetOutputDir(*outputDir)
	gen.SetWriteICO(*writeICO)
	gen.SetOnCreated(func(info rasterizer.IconInfo) {
		fmt.Printf("Created %s\n", filepath.Base(info.Path))
		if *verbose {
			fmt.Printf("   %d×%d, %s\n", info.Size, info.Size, formatBytes(info.Bytes))
		}
	})

	if *verbose {
		fmt.Printf("🎨 Генерация иконок в %s...\n", *outputDir)
	}

	result, err := gen.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Ошибка генерации: %v\n", err)
		os.Exit(1)
	}

	if *quiet {
		return
	}

	if result.ICOPath != "" {
		fmt.Printf("Created %s\n", filepath.Base(result.ICOPath))
	}

	fmt.Println()
	fmt.Printf("✅ Создано %d иконок за %.2fс (%s)\n",
		result.Count(), result.Duration().Seconds(), formatBytes(result.TotalBytes))
}

// ═══════════════════════════════════════════════════════════════════════════
// КОМАНДА ПРОВЕРКИ
// ═══════════════════════════════════════════════════════════════════════════

func runVerifyCommand(args []string) {
	verifyCmd := flag.NewFlagSet("verify", flag.ExitOnError)

	dir := verifyCmd.String("dir", ".", "Директория с иконками")
	jsonPath := verifyCmd.String("json", "", "Сохранить отчёт в JSON-файл")
	csvPath := verifyCmd.String("csv", "", "Сохранить отчёт в CSV-файл")
	verbose := verifyCmd.Bool("verbose", false, "Показать все проверки, включая пройденные")

	verifyCmd.Usage = func() {
		fmt.Println("🔎 Проверка Иконок")
		fmt.Println("==================")
		fmt.Println()
		fmt.Println("Проверяет пиксельный контракт набора иконок: размеры PNG,")
		fmt.Println("прозрачные углы, белый центр и отступ квадрата.")
		fmt.Println()
		fmt.Println("Использование:")
		fmt.Println("  icon-maker verify [опции]")
		fmt.Println()
		fmt.Println("Опции:")
		fmt.Println("  -dir string")
		fmt.Println("        Директория с иконками (по умолчанию: .)")
		fmt.Println("  -json string")
		fmt.Println("        Сохранить отчёт в JSON-файл")
		fmt.Println("  -csv string")
		fmt.Println("        Сохранить отчёт в CSV-файл")
		fmt.Println("  -verbose")
		fmt.Println("        Показать все проверки, включая пройденные")
		fmt.Println()
		fmt.Println("Код возврата 1, если хотя бы одна проверка не пройдена.")
		fmt.Println()
		fmt.Println("Примеры:")
		fmt.Println("  icon-maker verify")
		fmt.Println("  icon-maker verify -dir ./dist -json report.json -csv report.csv")
	}

	if err := verifyCmd.Parse(args); err != nil {
		os.Exit(1)
	}

	v := rasterizer.NewVerifier()
	v.SetDir(*dir)

	report, err := v.VerifySet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Ошибка проверки: %v\n", err)
		os.Exit(1)
	}

	printVerifyReport(report, *verbose)

	// Экспорт отчётов
	rw := rasterizer.NewReportWriter(report)
	if *jsonPath != "" {
		if err := rw.ExportJSON(*jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Ошибка экспорта JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("📊 JSON-отчёт сохранён: %s\n", *jsonPath)
	}
	if *csvPath != "" {
		if err := rw.ExportCSV(*csvPath); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Ошибка экспорта CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("📊 CSV-отчёт сохранён: %s\n", *csvPath)
	}

	if !report.Passed() {
		os.Exit(1)
	}
}

// printVerifyReport выводит сводку результатов проверки
func printVerifyReport(report *rasterizer.SetReport, verbose bool) {
	fmt.Println("\n========== РЕЗУЛЬТАТЫ ПРОВЕРКИ ==========")
	fmt.Printf("Директория:            %s\n", report.Dir)
	fmt.Printf("Проверено иконок:      %d\n", len(report.Icons))
	fmt.Printf("Выполнено проверок:    %d\n", report.ChecksRun)
	fmt.Printf("Не пройдено:           %d\n", report.ChecksFailed)
	fmt.Printf("Время:                 %.3fс\n", report.Duration().Seconds())
	fmt.Println()

	for _, icon := range report.Icons {
		if icon.Passed() {
			fmt.Printf("  ✓ %s (%d×%d)\n", filepath.Base(icon.Path), icon.Width, icon.Height)
		} else {
			fmt.Printf("  ✗ %s\n", filepath.Base(icon.Path))
			for _, c := range icon.Failures() {
				fmt.Printf("      [%s] %s: %s\n", severityToRussian(c.Severity), c.Name, c.Detail)
			}
		}

		if verbose {
			for _, c := range icon.Checks {
				if c.Status == rasterizer.StatusPass {
					fmt.Printf("      ✓ %s\n", c.Name)
				}
			}
		}
	}

	fmt.Println()
	if report.Passed() {
		fmt.Println("✅ Все проверки пройдены")
	} else {
		fmt.Println("❌ Проверка не пройдена")
	}
	fmt.Println("==========================================")
}

func severityToRussian(s rasterizer.Severity) string {
	switch s {
	case rasterizer.SeverityCritical:
		return "Крит."
	case rasterizer.SeverityHigh:
		return "Высок."
	case rasterizer.SeverityMedium:
		return "Сред."
	default:
		return string(s)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// КОМАНДА УПАКОВКИ
// ═══════════════════════════════════════════════════════════════════════════

func runPackCommand(args []string) {
	packCmd := flag.NewFlagSet("pack", flag.ExitOnError)

	dir := packCmd.String("dir", ".", "Директория с иконками")
	outputPath := packCmd.String("output", "extension-icons.zip", "Путь к выходному ZIP-файлу")
	packAll := packCmd.Bool("all", false, "Упаковать всю директорию, а не только набор иконок")
	password := packCmd.String("password", "", "Пароль для шифрования архива (AES-256)")
	encrypt := packCmd.Bool("encrypt", false, "Зашифровать архив (пароль будет запрошен, если не указан)")
	generatePwd := packCmd.Bool("generate-password", false, "Сгенерировать случайный безопасный пароль")
	pwdLength := packCmd.Int("password-length", 16, "Длина генерируемого пароля")
	verbose := packCmd.Bool("verbose", false, "Подробный вывод")

	packCmd.Usage = func() {
		fmt.Println("📦 Упаковка Иконок")
		fmt.Println("==================")
		fmt.Println()
		fmt.Println("Упаковывает icon16.png, icon48.png, icon128.png (и icon.ico,")
		fmt.Println("если есть) в ZIP-архив, при необходимости с шифрованием AES-256.")
		fmt.Println("С флагом -all упаковывается вся директория расширения: вложенные")
		fmt.Println("пути сохраняются, manifest.json остаётся в корне архива.")
		fmt.Println()
		fmt.Println("Использование:")
		fmt.Println("  icon-maker pack [опции]")
		fmt.Println()
		fmt.Println("Опции:")
		fmt.Println("  -dir string")
		fmt.Println("        Директория с иконками (по умолчанию: .)")
		fmt.Println("  -output string")
		fmt.Println("        Путь к выходному ZIP-файлу (по умолчанию: extension-icons.zip)")
		fmt.Println("  -all")
		fmt.Println("        Упаковать всю директорию, а не только набор иконок")
		fmt.Println("  -password string")
		fmt.Println("        Пароль для шифрования архива")
		fmt.Println("  -encrypt")
		fmt.Println("        Зашифровать архив (пароль будет запрошен, если не указан)")
		fmt.Println("  -generate-password")
		fmt.Println("        Сгенерировать случайный безопасный пароль")
		fmt.Println("  -password-length int")
		fmt.Println("        Длина генерируемого пароля (по умолчанию: 16)")
		fmt.Println("  -verbose")
		fmt.Println("        Подробный вывод")
		fmt.Println()
		fmt.Println("Примеры:")
		fmt.Println("  icon-maker pack -dir ./dist")
		fmt.Println("  icon-maker pack -dir ./extension -all -output extension.zip")
		fmt.Println("  icon-maker pack -output secure.zip -generate-password")
		fmt.Println("  icon-maker pack -encrypt -password myP@ss123")
		fmt.Println()
		fmt.Println("Безопасность:")
		fmt.Println("  • Используется шифрование AES-256 (совместимо с WinZip)")
		fmt.Println("  • Пароли не сохраняются и не логируются")
	}

	if err := packCmd.Parse(args); err != nil {
		os.Exit(1)
	}

	// Добавление расширения .zip
	out := *outputPath
	if !strings.HasSuffix(strings.ToLower(out), ".zip") {
		out += ".zip"
	}

	// Обработка пароля
	pwd := *password

	if *generatePwd {
		generatedPwd, err := packager.GeneratePassword(*pwdLength, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Ошибка генерации пароля: %v\n", err)
			os.Exit(1)
		}
		pwd = generatedPwd
		fmt.Println("🔑 Сгенерированный пароль:")
		fmt.Println()
		fmt.Printf("   %s\n", pwd)
		fmt.Println()
		fmt.Println("⚠️  ВАЖНО: Сохраните этот пароль! Его невозможно восстановить.")
		fmt.Println()
	} else if *encrypt && pwd == "" {
		// Запрос пароля
		pwd = promptPassword("Введите пароль для шифрования: ")
		confirmPwd := promptPassword("Подтвердите пароль: ")

		if pwd != confirmPwd {
			fmt.Fprintln(os.Stderr, "❌ Ошибка: Пароли не совпадают")
			os.Exit(1)
		}
	}

	// Проверка пароля
	if pwd != "" {
		if err := packager.ValidatePassword(pwd); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Ошибка: %v\n", err)
			os.Exit(1)
		}
	}

	// Настройка упаковщика
	config := packager.DefaultConfig()
	config.OutputPath = out
	config.Password = pwd

	if *verbose {
		config.OnProgress = func(filesDone, filesTotal int, currentFile string) {
			fmt.Printf("🔄 Упаковка: %s (%d/%d)\n", filepath.Base(currentFile), filesDone, filesTotal)
		}
	}

	p, err := packager.NewPackager(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Ошибка: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("📦 Упаковка иконок из %s в %s...\n", *dir, out)
	}

	var result *packager.Result
	if *packAll {
		result, err = p.PackDirWithResult(*dir)
	} else {
		result, err = p.PackIconSetWithResult(*dir, rasterizer.DefaultSizes)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Ошибка упаковки: %v\n", err)
		os.Exit(1)
	}

	// Вывод результата
	fmt.Println()
	fmt.Println("✅ Упаковка завершена!")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("📦 Архив:             %s\n", result.OutputPath)
	fmt.Printf("📁 Файлов:            %d\n", result.FilesPacked)
	fmt.Printf("📊 Исходный размер:   %s\n", formatBytes(result.TotalSize))
	fmt.Printf("📊 Размер архива:     %s\n", formatBytes(result.ArchiveSize))
	fmt.Printf("📈 Сжатие:            %.1f%%\n", result.CompressionRatio*100)
	if result.Encrypted {
		fmt.Println("🔐 Шифрование:        AES-256")
	}
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	password, _ := reader.ReadString('\n')
	return strings.TrimSpace(password)
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d Б", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), []string{"КБ", "МБ", "ГБ", "ТБ"}[exp])
}
