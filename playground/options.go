package playground

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	ProfileNone = ""
	ProfileCPU  = "cpu"
	ProfileMem  = "mem"
)

type Options struct {
	// path of the wgsl shader rendering the triangle
	ShaderPath string

	// directory watched for changes, defaults to the directory of ShaderPath
	WatchDir string

	// quiet period after the last change before a reload is triggered
	Debounce time.Duration

	WindowWidth  int
	WindowHeight int
	WindowTitle  string

	// multisample count of the triangle pass
	SampleCount uint32

	// physical pixels per gui point
	UIScale float32

	// one of ProfileNone, ProfileCPU or ProfileMem
	Profile string

	LogLevel slog.Level
}

func (opts Options) withDefaults() Options {
	if opts.ShaderPath == "" {
		opts.ShaderPath = filepath.Join("shaders", "triangle.wgsl")
	}

	if opts.WatchDir == "" {
		opts.WatchDir = filepath.Dir(opts.ShaderPath)
	}

	if opts.Debounce <= 0 {
		opts.Debounce = 250 * time.Millisecond
	}

	if opts.WindowWidth == 0 {
		opts.WindowWidth = 1280
	}

	if opts.WindowHeight == 0 {
		opts.WindowHeight = 720
	}

	if opts.WindowTitle == "" {
		opts.WindowTitle = "Shader Playground"
	}

	if opts.SampleCount == 0 {
		opts.SampleCount = 1
	}

	if opts.UIScale <= 0 {
		opts.UIScale = 1
	}

	return opts
}

// OptionsFromEnv reads the SHADERPLAY_* environment variables.
// Unset variables keep their default value.
func OptionsFromEnv() (Options, error) {
	return optionsFromLookup(os.LookupEnv)
}

func optionsFromLookup(lookup func(key string) (string, bool)) (Options, error) {
	var opts Options

	if value, ok := lookup("SHADERPLAY_SHADER"); ok {
		opts.ShaderPath = value
	}

	if value, ok := lookup("SHADERPLAY_WATCH_DIR"); ok {
		opts.WatchDir = value
	}

	if value, ok := lookup("SHADERPLAY_DEBOUNCE"); ok {
		debounce, err := time.ParseDuration(value)
		if err != nil {
			return Options{}, fmt.Errorf("parse SHADERPLAY_DEBOUNCE: %w", err)
		}

		opts.Debounce = debounce
	}

	if value, ok := lookup("SHADERPLAY_MSAA"); ok {
		count, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return Options{}, fmt.Errorf("parse SHADERPLAY_MSAA: %w", err)
		}

		if count != 1 && count != 4 {
			return Options{}, fmt.Errorf("unsupported sample count %d, expected 1 or 4", count)
		}

		opts.SampleCount = uint32(count)
	}

	if value, ok := lookup("SHADERPLAY_UI_SCALE"); ok {
		scale, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return Options{}, fmt.Errorf("parse SHADERPLAY_UI_SCALE: %w", err)
		}

		opts.UIScale = float32(scale)
	}

	if value, ok := lookup("SHADERPLAY_PROFILE"); ok {
		switch profile := strings.ToLower(value); profile {
		case ProfileNone, ProfileCPU, ProfileMem:
			opts.Profile = profile
		default:
			return Options{}, fmt.Errorf("unknown profile %q", value)
		}
	}

	if value, ok := lookup("SHADERPLAY_LOG_LEVEL"); ok {
		if err := opts.LogLevel.UnmarshalText([]byte(value)); err != nil {
			return Options{}, fmt.Errorf("parse SHADERPLAY_LOG_LEVEL: %w", err)
		}
	}

	return opts.withDefaults(), nil
}
