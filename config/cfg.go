package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"

	"ckstyle/browser"
	"ckstyle/ledger"
	"ckstyle/plugin"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	LintConfig struct {
		Include        []string `yaml:"include" validate:"dive,required"`
		Exclude        []string `yaml:"exclude" validate:"dive,required"`
		Safe           bool     `yaml:"safe"`
		ErrorLevel     int      `yaml:"error_level" validate:"min=0,max=2"`
		IgnoreRulesets []string `yaml:"ignore_rulesets" validate:"dive,required"`
	}

	FixConfig struct {
		Extension string `yaml:"extension" validate:"omitempty,startswith=."`
		NoBackup  bool   `yaml:"no_backup"`
	}

	CompressConfig struct {
		Extension string `yaml:"extension" validate:"omitempty,startswith=."`
		Browsers  string `yaml:"browsers"`
		// Minify runs a generic minifier over the result, mostly useful for
		// at-rule blocks which are kept as text.
		Minify bool `yaml:"minify"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Lint      LintConfig     `yaml:"lint"`
		Fix       FixConfig      `yaml:"fix"`
		Compress  CompressConfig `yaml:"compress"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// Options builds plugin options from the lint section.
func (conf *LintConfig) Options() *plugin.Options {
	opts := plugin.DefaultOptions()
	opts.Include = plugin.ParseIDList(strings.Join(conf.Include, ","), plugin.IncludeAll)
	opts.Exclude = plugin.ParseIDList(strings.Join(conf.Exclude, ","), plugin.ExcludeNone)
	opts.Safe = conf.Safe
	opts.ErrorLevel = ledger.Level(conf.ErrorLevel)
	opts.IgnoreRulesets = append([]string(nil), conf.IgnoreRulesets...)
	return opts
}

// Mask returns target browsers of the compress section.
func (conf *CompressConfig) Mask() (browser.Mask, error) {
	return browser.Parse(conf.Browsers)
}

// checkConfig covers what cannot be expressed with validation tags.
func checkConfig(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	if _, err := cfg.Compress.Mask(); err != nil {
		sl.ReportError(cfg.Compress.Browsers, "Compress.Browsers", "Browsers", "browsers", cfg.Compress.Browsers)
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if !process {
		return cfg, nil
	}
	if err := gencfg.Sanitize(cfg); err != nil {
		return nil, fmt.Errorf("configuration sanitizing failed: %w", err)
	}
	if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkConfig)); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
