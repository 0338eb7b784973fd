package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	VardbPath     string `mapstructure:"path"`
	Output        string `mapstructure:"output"`
	ResolvePasses int    `mapstructure:"resolve_passes"`
	ColorCategory string `mapstructure:"color_category"`
	ColorName     string `mapstructure:"color_name"`
	ColorVersion  string `mapstructure:"color_version"`
	ColorDesc     string `mapstructure:"color_desc"`
	ColorBorder   string `mapstructure:"color_border"`
	ColorCursor   string `mapstructure:"color_cursor"`
	ColorSelected string `mapstructure:"color_selected"`
	ColorDim      string `mapstructure:"color_dim"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("path", "/var/db/pkg")
	viper.SetDefault("output", "json")
	viper.SetDefault("resolve_passes", 2)
	viper.SetDefault("color_category", "36") // Cyan
	viper.SetDefault("color_name", "32")     // Green
	viper.SetDefault("color_version", "33")  // Yellow
	viper.SetDefault("color_desc", "90")     // Gray
	viper.SetDefault("color_border", "240")
	viper.SetDefault("color_cursor", "212")
	viper.SetDefault("color_selected", "236")
	viper.SetDefault("color_dim", "241")

	viper.SetConfigName("vardbx")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "vardbx"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("VARDBX")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetPath returns the vardb root with tilde expansion
func GetPath() string {
	return expandTilde(viper.GetString("path"))
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetOutput returns the output mode
func GetOutput() string {
	return viper.GetString("output")
}

// GetResolvePasses returns how many reference-resolution passes the
// ebuild scanner runs
func GetResolvePasses() int {
	return viper.GetInt("resolve_passes")
}

// GetColorCategory returns ANSI color code for package categories
func GetColorCategory() string {
	return viper.GetString("color_category")
}

// GetColorName returns ANSI color code for package names
func GetColorName() string {
	return viper.GetString("color_name")
}

// GetColorVersion returns ANSI color code for package versions
func GetColorVersion() string {
	return viper.GetString("color_version")
}

// GetColorDesc returns ANSI color code for descriptions
func GetColorDesc() string {
	return viper.GetString("color_desc")
}

// GetColorBorder returns the border color
func GetColorBorder() string {
	return viper.GetString("color_border")
}

// GetColorCursor returns the cursor color
func GetColorCursor() string {
	return viper.GetString("color_cursor")
}

// GetColorSelected returns the selection background color
func GetColorSelected() string {
	return viper.GetString("color_selected")
}

// GetColorDim returns the color for de-emphasized text
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// SetOutput sets output mode at runtime
func SetOutput(mode string) {
	viper.Set("output", mode)
	C.Output = mode
}

// SetPath sets the vardb root at runtime
func SetPath(path string) {
	viper.Set("path", path)
	C.VardbPath = path
}

// SetResolvePasses sets the resolution depth at runtime
func SetResolvePasses(passes int) {
	viper.Set("resolve_passes", passes)
	C.ResolvePasses = passes
}
