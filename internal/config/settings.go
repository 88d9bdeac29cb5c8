package config

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"equals-verifier/internal/common"
	"equals-verifier/options"
)

// EnvPrefix starts every environment variable read by LoadSettings,
// e.g. EQUALSVERIFIER_SUPPRESS=null_fields,strict_hashcode.
const EnvPrefix = "EQUALSVERIFIER_"

const keyDelim = "/"

// Settings is the file and environment layer of the configuration.
//
// Example file:
//
//	suppress: [strict_hashcode]
//	log_level: debug
//	nonnull:
//	  store.Customer: [Address]
type Settings struct {
	Suppress []string            `koanf:"suppress"`
	LogLevel string              `koanf:"log_level"`
	Nonnull  map[string][]string `koanf:"nonnull"` // type name -> field names
}

// LoadSettings reads path, when not empty, and then the environment.
// Environment variables override the file.
func LoadSettings(path string) (*Settings, error) {
	// type names contain dots, so keys are delimited by slashes
	k := koanf.New(keyDelim)

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load settings %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, keyDelim, envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment settings: %w", err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if _, err := s.Warnings(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}

	if _, err := s.Level(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}

	return &s, nil
}

// envTransform converts environment variable names to settings keys
// Example: EQUALSVERIFIER_LOG_LEVEL -> log_level
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// Warnings returns the suppressed warnings. Entries may hold several
// comma separated names, as environment values do.
func (s *Settings) Warnings() (options.WarningEnum, error) {
	var names []string
	for _, entry := range s.Suppress {
		for _, name := range strings.Split(entry, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}

	return options.ParseWarnings(names...)
}

// Level returns the log level, slog.LevelWarn when unset.
func (s *Settings) Level() (slog.Level, error) {
	if s.LogLevel == "" {
		return slog.LevelWarn, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}

	return level, nil
}

// NonnullFor returns the non-nil fields listed for t. Keys may be the
// bare type name, "pkg.Name" or the full import path form.
func (s *Settings) NonnullFor(t reflect.Type) []string {
	keys := []string{
		common.BaseName(t),
		common.PkgAlias(t.PkgPath()) + "." + common.BaseName(t),
		t.PkgPath() + "." + common.BaseName(t),
	}

	var out []string
	for _, key := range keys {
		out = append(out, s.Nonnull[key]...)
	}

	return out
}

// WithSettings applies s: suppressed warnings, non-nil fields of the type
// under test and, unless WithLogger is also given, a stderr logger at the
// configured level.
func WithSettings(s *Settings) Option {
	return func(b *builder) error {
		if s == nil {
			return nil
		}

		warnings, err := s.Warnings()
		if err != nil {
			return err
		}
		b.suppressed |= warnings

		for _, name := range s.NonnullFor(b.typ) {
			b.nonnull[name] = struct{}{}
		}

		level, err := s.Level()
		if err != nil {
			return err
		}
		if b.logger == nil {
			b.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		}

		return nil
	}
}
