package options

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// ManifestName is the project file looked up from the working directory upward.
	ManifestName = "portast.toml"
	// EnvVar may carry the same TOML document inline; it wins over the file.
	EnvVar = "PORTAST_FRONTEND_OPTS"
)

// ErrEnvOptions marks failures coming from EnvVar rather than a file.
var ErrEnvOptions = errors.New("invalid " + EnvVar)

// Manifest is a located and decoded project file.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the TOML layout.
type Config struct {
	Export ExportConfig `toml:"export"`
}

// ExportConfig is the [export] table.
type ExportConfig struct {
	InlineMacroCalls []Pattern `toml:"inline_macro_calls"`
}

// FindManifest walks from startDir to the filesystem root looking for ManifestName.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest finds and decodes the nearest project file.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, _, err := decodeConfigFile(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

func decodeConfigFile(path string) (Config, bool, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, false, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, meta.IsDefined("export", "inline_macro_calls"), nil
}

func decodeConfigText(text string) (Config, bool, error) {
	var cfg Config
	meta, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w: failed to parse TOML: %w", ErrEnvOptions, err)
	}
	return cfg, meta.IsDefined("export", "inline_macro_calls"), nil
}

// Resolve builds the effective options. Layers, lowest first: defaults, the
// explicit config file (or the discovered manifest when configPath is empty),
// the environment variable. An empty inline_macro_calls array disables folding.
func Resolve(startDir, configPath string) (Options, error) {
	opts := Default()

	if configPath == "" {
		path, ok, err := FindManifest(startDir)
		if err != nil {
			return Options{}, err
		}
		if ok {
			configPath = path
		}
	}
	if configPath != "" {
		cfg, defined, err := decodeConfigFile(configPath)
		if err != nil {
			return Options{}, err
		}
		if defined {
			opts.InlineMacroCalls = cfg.Export.InlineMacroCalls
		}
	}

	if text := strings.TrimSpace(os.Getenv(EnvVar)); text != "" {
		cfg, defined, err := decodeConfigText(text)
		if err != nil {
			return Options{}, err
		}
		if defined {
			opts.InlineMacroCalls = cfg.Export.InlineMacroCalls
		}
	}
	if opts.InlineMacroCalls == nil {
		opts.InlineMacroCalls = []Pattern{}
	}
	return opts, nil
}
