package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/pthm/kwicketgen/pkg/catalogue"
	"github.com/pthm/kwicketgen/pkg/schema"
	"github.com/pthm/kwicketgen/pkg/typeref"
)

const (
	maxWalkDepth = 25
)

// ConfigFileNames are looked up, in order, in every directory walked.
var ConfigFileNames = []string{"kwicketgen.yaml", "kwicketgen.yml"}

// Config represents the kwicketgen configuration from kwicketgen.yaml.
type Config struct {
	// Builtin includes the builtin Wicket catalogue.
	Builtin bool `mapstructure:"builtin" json:"builtin"`
	// Catalogues are extra catalogue files (.yaml, .json, .cue).
	Catalogues []string `mapstructure:"catalogues" json:"catalogues"`

	Naming   NamingConfig   `mapstructure:"naming" json:"naming"`
	Generate GenerateConfig `mapstructure:"generate" json:"generate"`
	Watch    WatchConfig    `mapstructure:"watch" json:"watch"`
	Log      LogConfig      `mapstructure:"log" json:"log"`
}

// ClassPattern overrides where a generated declaration lives and what it is
// called. Both fields are text/template patterns over the configuration,
// for example {{.Basename}}Builder. Empty fields keep the default.
type ClassPattern struct {
	Package string `mapstructure:"package" json:"package"`
	Name    string `mapstructure:"name" json:"name"`
}

// NamingConfig overrides the kWicket naming layout.
type NamingConfig struct {
	ConfigInterface ClassPattern `mapstructure:"config_interface" json:"config_interface"`
	ConfigClass     ClassPattern `mapstructure:"config_class" json:"config_class"`
	TagClass        ClassPattern `mapstructure:"tag_class" json:"tag_class"`
	TagMethod       ClassPattern `mapstructure:"tag_method" json:"tag_method"`
	IncludeMethod   ClassPattern `mapstructure:"include_method" json:"include_method"`

	// BaseTagClass and IncludeFactory are qualified class names.
	BaseTagClass   string `mapstructure:"base_tag_class" json:"base_tag_class"`
	IncludeFactory string `mapstructure:"include_factory" json:"include_factory"`

	ComponentParam string `mapstructure:"component_param" json:"component_param"`
	ModelParam     string `mapstructure:"model_param" json:"model_param"`
}

// GenerateConfig holds code generation settings.
type GenerateConfig struct {
	// Output is the output directory. "-" writes a txtar archive to stdout.
	Output string `mapstructure:"output" json:"output"`
	// Format selects the renderer ("kotlin", "yaml").
	Format string `mapstructure:"format" json:"format"`
	// FileName is the name of the file generated in each package, without
	// extension.
	FileName    string   `mapstructure:"file_name" json:"file_name"`
	Only        []string `mapstructure:"only" json:"only"`
	KeepGoing   bool     `mapstructure:"keep_going" json:"keep_going"`
	Parallelism int      `mapstructure:"parallelism" json:"parallelism"`
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" json:"debounce"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Format is "console" or "json".
	Format string `mapstructure:"format" json:"format"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("KWICKETGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, errors.Wrap(err, "unmarshaling config")
	}

	// Catalogue paths are relative to the config file.
	if configPath != "" {
		base := filepath.Dir(configPath)
		for i, p := range cfg.Catalogues {
			if !filepath.IsAbs(p) {
				cfg.Catalogues[i] = filepath.Join(base, p)
			}
		}
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("builtin", true)
	v.SetDefault("catalogues", []string{})

	v.SetDefault("naming.config_interface.package", "")
	v.SetDefault("naming.config_interface.name", "")
	v.SetDefault("naming.config_class.package", "")
	v.SetDefault("naming.config_class.name", "")
	v.SetDefault("naming.tag_class.package", "")
	v.SetDefault("naming.tag_class.name", "")
	v.SetDefault("naming.tag_method.package", "")
	v.SetDefault("naming.tag_method.name", "")
	v.SetDefault("naming.include_method.package", "")
	v.SetDefault("naming.include_method.name", "")
	v.SetDefault("naming.base_tag_class", "")
	v.SetDefault("naming.include_factory", "")
	v.SetDefault("naming.component_param", "")
	v.SetDefault("naming.model_param", "")

	v.SetDefault("generate.output", "build/generated/kwicket")
	v.SetDefault("generate.format", "kotlin")
	v.SetDefault("generate.file_name", "Components")
	v.SetDefault("generate.only", []string{})
	v.SetDefault("generate.keep_going", false)
	v.SetDefault("generate.parallelism", 0)

	v.SetDefault("watch.debounce", 200*time.Millisecond)

	v.SetDefault("log.format", "console")
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for kwicketgen.yaml or
// kwicketgen.yml, stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", errors.Newf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "getting cwd")
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// Stop at the repository root.
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// NamingStrategy returns the default kWicket naming with the configured
// overrides applied.
func (c *Config) NamingStrategy() (*schema.Naming, error) {
	n := catalogue.DefaultNaming()
	nc := c.Naming

	for _, o := range []struct {
		key     string
		pattern ClassPattern
		target  *schema.ClassInfo
	}{
		{"config_interface", nc.ConfigInterface, &n.ConfigInterface},
		{"config_class", nc.ConfigClass, &n.ConfigClass},
		{"tag_class", nc.TagClass, &n.TagClass},
		{"tag_method", nc.TagMethod, &n.TagMethod},
		{"include_method", nc.IncludeMethod, &n.IncludeMethod},
	} {
		ci, err := override(*o.target, o.pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "naming.%s", o.key)
		}
		*o.target = ci
	}

	for _, o := range []struct {
		key    string
		value  string
		target *schema.ClassInfo
	}{
		{"base_tag_class", nc.BaseTagClass, &n.BaseTagClass},
		{"include_factory", nc.IncludeFactory, &n.IncludeFactory},
	} {
		if o.value == "" {
			continue
		}
		ref, err := typeref.Parse(o.value)
		if err != nil || ref.Kind != typeref.KindClass || ref.Package == "" {
			return nil, errors.Newf("naming.%s: %q is not a qualified class name", o.key, o.value)
		}
		*o.target = schema.StaticClassInfo(ref.Package, ref.Name)
	}

	if nc.ComponentParam != "" {
		n.ComponentParam.Name = nc.ComponentParam
	}
	if nc.ModelParam != "" {
		n.ModelParam.Name = nc.ModelParam
	}
	if n.ComponentParam.Name == n.ModelParam.Name {
		return nil, errors.Newf("naming: component and model type parameters are both %q", n.ModelParam.Name)
	}
	return n, nil
}

// override replaces the parts of ci that p sets. Unset parts keep the
// default derivation.
func override(ci schema.ClassInfo, p ClassPattern) (schema.ClassInfo, error) {
	if p.Package == "" && p.Name == "" {
		return ci, nil
	}
	pkg, name := p.Package, p.Name
	if pkg == "" {
		pkg = "{{.Basename}}"
	}
	if name == "" {
		name = "{{.Basename}}"
	}
	tmpl, err := schema.TemplateClassInfo(pkg, name)
	if err != nil {
		return schema.ClassInfo{}, err
	}
	if p.Package != "" {
		ci.Package = tmpl.Package
	}
	if p.Name != "" {
		ci.Name = tmpl.Name
	}
	return ci, nil
}
