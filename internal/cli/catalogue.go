package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"

	"github.com/pthm/kwicketgen/pkg/catalogue"
	"github.com/pthm/kwicketgen/pkg/catalogue/loader"
	"github.com/pthm/kwicketgen/pkg/schema"
)

// LoadCatalogue returns the builtin configurations, when enabled, followed
// by the configurations of every catalogue file.
func LoadCatalogue(builtin bool, files []string) ([]*schema.Configuration, error) {
	if !builtin && len(files) == 0 {
		return nil, errors.WithHint(
			errors.New("no catalogue configured"),
			"set builtin: true or list files under catalogues in kwicketgen.yaml",
		)
	}
	var base []*schema.Configuration
	if builtin {
		base = catalogue.All()
	}
	extra, err := loader.LoadFiles(files, base)
	if err != nil {
		return nil, err
	}
	return append(base, extra...), nil
}

// CatalogueTable lists configurations as table rows, header first.
func CatalogueTable(configs []*schema.Configuration) pterm.TableData {
	data := pterm.TableData{{"Name", "Target", "Parent", "Output", "Model", "Tag", "Properties"}}
	for _, c := range configs {
		parent := "-"
		if c.Parent != nil {
			parent = c.Parent.Name()
		}
		output := "builders"
		if c.IsConfigOnly() {
			output = "config only"
		}
		target := "-"
		if c.Component.Target != nil {
			target = c.Component.Target.QualifiedName()
		}
		model := c.ModelInfo().Kind.String()
		if c.ModelInfo().Nullable {
			model += "?"
		}
		data = append(data, []string{
			c.Name(),
			target,
			parent,
			output,
			model,
			c.DefaultTagName(),
			fmt.Sprintf("%d/%d", len(c.Properties), len(c.AllProperties())),
		})
	}
	return data
}

// CatalogueTree arranges configurations by inheritance under one root node.
// Children keep catalogue order.
func CatalogueTree(configs []*schema.Configuration) pterm.TreeNode {
	members := make(map[*schema.Configuration]bool, len(configs))
	for _, c := range configs {
		members[c] = true
	}
	children := map[*schema.Configuration][]*schema.Configuration{}
	var roots []*schema.Configuration
	for _, c := range configs {
		if c.Parent == nil || !members[c.Parent] {
			roots = append(roots, c)
			continue
		}
		children[c.Parent] = append(children[c.Parent], c)
	}

	var node func(c *schema.Configuration) pterm.TreeNode
	node = func(c *schema.Configuration) pterm.TreeNode {
		text := c.Name()
		if c.IsConfigOnly() {
			text += " (config only)"
		}
		n := pterm.TreeNode{Text: text}
		for _, child := range children[c] {
			n.Children = append(n.Children, node(child))
		}
		return n
	}

	root := pterm.TreeNode{Text: fmt.Sprintf("%d configurations", len(configs))}
	for _, r := range roots {
		root.Children = append(root.Children, node(r))
	}
	return root
}
