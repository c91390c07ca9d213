package gopolya

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds session-wide settings, typically read from a YAML file and then overridden by flags.
type Config struct {

	// Tolerance is the max distance allowed when matching rotated vertices or face centroids.
	Tolerance float64 `yaml:"tolerance"`

	// MaxResults caps the number of representatives an enumeration returns (0 denotes no cap).
	MaxResults int `yaml:"max_results"`

	// Method is the enumeration method: "pruned" or "filter".
	Method string `yaml:"method"`

	// CatalogPath is the pathname of a group catalog db.  Empty means groups are only cached in memory.
	CatalogPath string `yaml:"catalog_path"`

	// OutputDir is where result files are written.
	OutputDir string `yaml:"output_dir"`

	// Preview is the number of representatives echoed to the terminal after an enumeration.
	Preview int `yaml:"preview"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Tolerance:  DefaultTolerance,
		MaxResults: DefaultMaxResults,
		Method:     MethodPruned.String(),
		OutputDir:  "result",
		Preview:    5,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig().
func LoadConfig(pathname string) (Config, error) {
	cfg := DefaultConfig()

	buf, err := os.ReadFile(pathname)
	if err != nil {
		return cfg, err
	}
	if err = yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "error reading config %q", pathname)
	}
	return cfg, cfg.Validate()
}

// Validate checks that settings are in range.
func (cfg *Config) Validate() error {
	if cfg.Tolerance <= 0 {
		return errors.Errorf("tolerance must be > 0 (got %v)", cfg.Tolerance)
	}
	if cfg.MaxResults < 0 {
		return errors.Errorf("max_results must be >= 0 (got %d)", cfg.MaxResults)
	}
	if _, err := ParseEnumMethod(cfg.Method); err != nil {
		return err
	}
	return nil
}

// EnumOpts returns the enumeration options implied by this config.
func (cfg *Config) EnumOpts() EnumOpts {
	method, _ := ParseEnumMethod(cfg.Method)
	return EnumOpts{
		MaxResults: cfg.MaxResults,
		Method:     method,
	}
}
