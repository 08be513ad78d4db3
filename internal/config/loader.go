package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Load resolves the configuration. Later layers win: defaults, then the
// env file (when it exists), then the process environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnvKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// transformEnvKey converts environment variable names to koanf paths.
// For example: POLLFINDER_SEARCH_PAGE_SIZE -> search.page_size
func transformEnvKey(key, value string) (string, any) {
	if !strings.HasPrefix(key, EnvPrefix) {
		return "", nil
	}
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_'
	})

	switch len(parts) {
	case 0:
		return "", nil
	case 1:
		return parts[0], value
	default:
		// First part is the section, the rest is the field name
		return parts[0] + "." + strings.Join(parts[1:], "_"), value
	}
}
