package config

import (
	"os"
	"strconv"
)

type Config struct {
	Storage StorageConfig
	Export  ExportConfig
	Web     WebConfig
}

type StorageConfig struct {
	DataDir         string // project JSON and photo blobs (default ./data)
	AutosaveDelayMs int    // debounce window for project saves (default 600)
}

type ExportConfig struct {
	FontDir     string  // TTF files for embedded PDF fonts (default ./fonts)
	DPI         float64 // raster resolution for composited photos (default 300)
	ImagePolicy string  // "placeholder" or "abort" (default placeholder)
}

type WebConfig struct {
	Host string // defaults to 127.0.0.1
	Port int    // defaults to 8642
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

// envString reads an environment variable with a fallback default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir:         envString("CALENDAR_DATA_DIR", "./data"),
			AutosaveDelayMs: envInt("CALENDAR_AUTOSAVE_DELAY_MS", 600),
		},
		Export: ExportConfig{
			FontDir:     envString("CALENDAR_FONT_DIR", "./fonts"),
			DPI:         envFloat("CALENDAR_EXPORT_DPI", 300),
			ImagePolicy: envString("CALENDAR_IMAGE_POLICY", "placeholder"),
		},
		Web: WebConfig{
			Host: envString("CALENDAR_WEB_HOST", "127.0.0.1"),
			Port: envInt("CALENDAR_WEB_PORT", 8642),
		},
	}
}
