package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/kwicketgen/pkg/catalogue"
	"github.com/pthm/kwicketgen/pkg/catalogue/loader"
)

const chipCatalogue = `configurations:
  - target: com.example.ui.Chip
    parent: Label
    tag: {name: span}
`

func TestLoadCatalogue_Builtin(t *testing.T) {
	configs, err := LoadCatalogue(true, nil)
	require.NoError(t, err)
	assert.Equal(t, catalogue.Names(catalogue.All()), catalogue.Names(configs))
}

func TestLoadCatalogue_WithFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chips.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chipCatalogue), 0o644))

	configs, err := LoadCatalogue(true, []string{path})
	require.NoError(t, err)

	byName := catalogue.Index(configs)
	require.Contains(t, byName, "Chip")
	assert.Same(t, byName["Label"], byName["Chip"].Parent)
	assert.Equal(t, "Chip", configs[len(configs)-1].Name())
}

func TestLoadCatalogue_FilesNeedBuiltinParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chips.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chipCatalogue), 0o644))

	_, err := LoadCatalogue(false, []string{path})
	require.Error(t, err)
	assert.True(t, loader.IsUnknownParentErr(err))
}

func TestLoadCatalogue_Nothing(t *testing.T) {
	_, err := LoadCatalogue(false, nil)
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "builtin: true")
}

func TestCatalogueTable(t *testing.T) {
	configs := catalogue.All()
	data := CatalogueTable(configs)

	require.Len(t, data, len(configs)+1)
	assert.Equal(t, "Name", data[0][0])

	byName := map[string][]string{}
	for _, row := range data[1:] {
		byName[row[0]] = row
	}
	component := byName["Component"]
	assert.Equal(t, "-", component[2])
	assert.Equal(t, "config only", component[3])

	label := byName["Label"]
	assert.Equal(t, "org.apache.wicket.markup.html.basic.Label", label[1])
	assert.Equal(t, "Component", label[2])
	assert.Equal(t, "builders", label[3])
}

func TestCatalogueTree(t *testing.T) {
	configs := catalogue.All()
	root := CatalogueTree(configs)

	require.Len(t, root.Children, 1)
	component := root.Children[0]
	assert.Equal(t, "Component (config only)", component.Text)

	count := 0
	var walk func(n pterm.TreeNode)
	walk = func(n pterm.TreeNode) {
		count++
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(component)
	assert.Equal(t, len(configs), count)
}
