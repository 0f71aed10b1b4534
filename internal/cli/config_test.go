package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/kwicketgen/pkg/schema"
	"github.com/pthm/kwicketgen/pkg/typeref"
)

// repo creates a directory with a .git marker and changes into it.
func repo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	t.Chdir(root)
	return root
}

func sameFile(t *testing.T, want, got string) {
	t.Helper()
	// Resolve symlinks for comparison (macOS /var -> /private/var)
	expected, _ := filepath.EvalSymlinks(want)
	actual, _ := filepath.EvalSymlinks(got)
	assert.Equal(t, expected, actual)
}

func TestFindConfigFile_ExplicitPath(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("builtin: false"), 0o644))

	path, err := findConfigFile(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, tmpFile, path)
}

func TestFindConfigFile_ExplicitPathNotFound(t *testing.T) {
	_, err := findConfigFile("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestFindConfigFile_AutoDiscovery(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	configPath := filepath.Join(root, "kwicketgen.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("builtin: true"), 0o644))

	nested := filepath.Join(root, "deep", "nested")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	path, err := findConfigFile("")
	require.NoError(t, err)
	sameFile(t, configPath, path)
}

func TestFindConfigFile_PrefersYamlOverYml(t *testing.T) {
	root := repo(t)
	yamlPath := filepath.Join(root, "kwicketgen.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("builtin: true"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "kwicketgen.yml"), []byte("builtin: false"), 0o644))

	path, err := findConfigFile("")
	require.NoError(t, err)
	sameFile(t, yamlPath, path)
}

func TestFindConfigFile_StopsAtGitRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "kwicketgen.yaml"), []byte("builtin: false"), 0o644))

	project := filepath.Join(root, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(project, ".git"), 0o755))
	t.Chdir(project)

	path, err := findConfigFile("")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoadConfig_Defaults(t *testing.T) {
	repo(t)

	cfg, configPath, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, configPath)

	assert.True(t, cfg.Builtin)
	assert.Empty(t, cfg.Catalogues)
	assert.Equal(t, "build/generated/kwicket", cfg.Generate.Output)
	assert.Equal(t, "kotlin", cfg.Generate.Format)
	assert.Equal(t, "Components", cfg.Generate.FileName)
	assert.False(t, cfg.Generate.KeepGoing)
	assert.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfig_FromFile(t *testing.T) {
	root := repo(t)
	configPath := filepath.Join(root, "kwicketgen.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
catalogues:
  - catalogues/widgets.yaml
  - /abs/other.cue
naming:
  tag_method:
    name: "{{lowerCamel .Basename}}Tag"
generate:
  output: src/main/kotlin
  format: yaml
  only: [Label, CheckBox]
watch:
  debounce: 1s
`), 0o644))

	cfg, foundPath, err := LoadConfig("")
	require.NoError(t, err)
	sameFile(t, configPath, foundPath)

	assert.Equal(t, []string{filepath.Join(filepath.Dir(foundPath), "catalogues", "widgets.yaml"), "/abs/other.cue"}, cfg.Catalogues)
	assert.Equal(t, "{{lowerCamel .Basename}}Tag", cfg.Naming.TagMethod.Name)
	assert.Equal(t, "src/main/kotlin", cfg.Generate.Output)
	assert.Equal(t, "yaml", cfg.Generate.Format)
	assert.Equal(t, []string{"Label", "CheckBox"}, cfg.Generate.Only)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)

	// Defaults still apply for unset values
	assert.True(t, cfg.Builtin)
	assert.Equal(t, "Components", cfg.Generate.FileName)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	root := repo(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "kwicketgen.yaml"), []byte("generate:\n  format: yaml\n"), 0o644))

	t.Setenv("KWICKETGEN_GENERATE_FORMAT", "kotlin")
	t.Setenv("KWICKETGEN_BUILTIN", "false")

	cfg, _, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "kotlin", cfg.Generate.Format)
	assert.False(t, cfg.Builtin)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generate: [unclosed"), 0o644))

	_, _, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func sample() *schema.Configuration {
	return &schema.Configuration{Component: schema.Component{Target: typeref.Class("org.example", "Badge")}}
}

func TestNamingStrategy_Defaults(t *testing.T) {
	n, err := (&Config{}).NamingStrategy()
	require.NoError(t, err)
	require.NoError(t, n.Check())
	assert.Equal(t, "IBadgeConfig", n.ConfigInterface.Name(sample()))
	assert.Equal(t, "T", n.ModelParam.Name)
}

func TestNamingStrategy_Overrides(t *testing.T) {
	cfg := &Config{Naming: NamingConfig{
		ConfigClass:    ClassPattern{Name: "{{.Basename}}Settings"},
		TagMethod:      ClassPattern{Package: "com.example.{{lower .Basename}}"},
		BaseTagClass:   "com.example.tag.BaseTag",
		IncludeFactory: "com.example.include.add",
		ModelParam:     "M",
	}}
	n, err := cfg.NamingStrategy()
	require.NoError(t, err)

	badge := sample()
	assert.Equal(t, "BadgeSettings", n.ConfigClass.Name(badge))
	assert.Equal(t, "org.kwicket.builder.config", n.ConfigClass.Package(badge))
	assert.Equal(t, "com.example.badge", n.TagMethod.Package(badge))
	assert.Equal(t, "badge", n.TagMethod.Name(badge))
	assert.Equal(t, "com.example.tag.BaseTag", n.BaseTagClass.Ref(badge).QualifiedName())
	assert.Equal(t, "com.example.include.add", n.IncludeFactory.Ref(badge).QualifiedName())
	assert.Equal(t, "M", n.ModelParam.Name)
}

func TestNamingStrategy_Errors(t *testing.T) {
	_, err := (&Config{Naming: NamingConfig{TagClass: ClassPattern{Name: "{{.Nope"}}}).NamingStrategy()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "naming.tag_class")

	_, err = (&Config{Naming: NamingConfig{BaseTagClass: "NotQualified"}}).NamingStrategy()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "naming.base_tag_class")

	_, err = (&Config{Naming: NamingConfig{ComponentParam: "T"}}).NamingStrategy()
	require.Error(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitGeneral, ExitCode(errors.New("plain")))
	assert.Equal(t, ExitConfig, ExitCode(ConfigError("bad config", nil)))
	assert.Equal(t, ExitCatalogue, ExitCode(errors.Wrap(CatalogueError("bad catalogue", nil), "outer")))
	assert.Equal(t, ExitGenerate, ExitCode(GenerateError("failed", errors.New("inner"))))
}

func TestExitErrorMessage(t *testing.T) {
	err := GeneralError("loading", errors.New("boom"))
	assert.Equal(t, "loading: boom", err.Error())
	assert.Equal(t, "loading", GeneralError("loading", nil).Error())
	assert.True(t, errors.Is(err, err.Err))
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, errors.WithHint(errors.New("boom"), "try again"))
	assert.Equal(t, "Error: boom\nHint: try again\n", buf.String())
}
