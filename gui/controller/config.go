package controller

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
)

// AppConfig holds all application configuration
type AppConfig struct {
	// Generation settings
	OutputDir    string `json:"output_dir"`
	WriteICO     bool   `json:"write_ico"`
	PreviewScale int    `json:"preview_scale"` // upscale factor for the preview row

	// Packing settings
	DefaultExportDir string `json:"default_export_dir"`
	LastArchivePath  string `json:"last_archive_path"`
	EncryptArchives  bool   `json:"encrypt_archives"`

	// UI settings
	ShowNotifications bool `json:"show_notifications"`

	// Window settings
	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`

	// Recent output directories
	RecentDirs []string `json:"recent_dirs"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	homeDir, _ := os.UserHomeDir()

	return &AppConfig{
		OutputDir:    ".",
		WriteICO:     false,
		PreviewScale: 4,

		DefaultExportDir: filepath.Join(homeDir, "IconMakerExports"),
		EncryptArchives:  false,

		ShowNotifications: true,

		WindowWidth:  900,
		WindowHeight: 640,

		RecentDirs: []string{},
	}
}

// getConfigDir returns the configuration directory path
func getConfigDir() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, "Library", "Application Support")
	default: // linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			homeDir, _ := os.UserHomeDir()
			configDir = filepath.Join(homeDir, ".config")
		}
	}

	appConfigDir := filepath.Join(configDir, "IconMaker")
	_ = os.MkdirAll(appConfigDir, 0755)

	return appConfigDir
}

// getConfigPath returns the full path to the config file
func getConfigPath() string {
	return filepath.Join(getConfigDir(), "config.json")
}

// LoadConfig loads configuration from disk or returns defaults
func LoadConfig() *AppConfig {
	config := DefaultConfig()

	data, err := os.ReadFile(getConfigPath())
	if err != nil {
		return config
	}

	if err := json.Unmarshal(data, config); err != nil {
		return DefaultConfig()
	}

	return config
}

// SaveConfig saves configuration to disk
func SaveConfig(config *AppConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(getConfigPath(), data, 0644)
}

// AddRecentDir adds a directory to the recent list
func (c *AppConfig) AddRecentDir(dir string) {
	// Remove if already exists
	newDirs := make([]string, 0, len(c.RecentDirs)+1)
	newDirs = append(newDirs, dir)

	for _, d := range c.RecentDirs {
		if d != dir {
			newDirs = append(newDirs, d)
		}
	}

	// Keep only last 10
	if len(newDirs) > 10 {
		newDirs = newDirs[:10]
	}

	c.RecentDirs = newDirs
}

// ValidateConfig validates and normalizes configuration values
func (c *AppConfig) ValidateConfig() {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}

	if c.PreviewScale < 1 {
		c.PreviewScale = 1
	}
	if c.PreviewScale > 16 {
		c.PreviewScale = 16
	}

	if c.WindowWidth < 640 {
		c.WindowWidth = 640
	}
	if c.WindowHeight < 480 {
		c.WindowHeight = 480
	}
}

// Clone creates a deep copy of the config
func (c *AppConfig) Clone() *AppConfig {
	clone := *c

	if c.RecentDirs != nil {
		clone.RecentDirs = make([]string, len(c.RecentDirs))
		copy(clone.RecentDirs, c.RecentDirs)
	}

	return &clone
}

// FormatFileSize formats bytes to human readable string
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return formatInt(bytes) + " B"
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return formatFloat(float64(bytes)/float64(div)) + " " + []string{"KB", "MB", "GB", "TB"}[exp]
}

func formatInt(n int64) string {
	s := ""
	for n > 0 {
		if len(s) > 0 && len(s)%3 == 0 {
			s = "," + s
		}
		s = string(rune('0'+n%10)) + s
		n /= 10
	}
	if s == "" {
		return "0"
	}
	return s
}

func formatFloat(f float64) string {
	// Simple float formatting
	i := int64(f * 100)
	whole := i / 100
	frac := i % 100
	if frac == 0 {
		return formatInt(whole)
	}
	return formatInt(whole) + "." + string(rune('0'+frac/10)) + string(rune('0'+frac%10))
}
