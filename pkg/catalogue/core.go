package catalogue

import (
	"github.com/pthm/kwicketgen/pkg/schema"
	"github.com/pthm/kwicketgen/pkg/typeref"
)

// componentConfig is the root of the forest. Every other configuration
// inherits its properties.
func componentConfig() *schema.Configuration {
	return &schema.Configuration{
		Component: schema.Component{Target: wicketComponent, Abstract: true},
		Properties: []*schema.Property{
			prop("model", schema.Generic(wicketModel, schema.ModelType()).OrNullWithModel(), "model for the component"),
			prop("markupId", nullableString, "optional unique id to use in the associated markup"),
			prop("outputMarkupId", nullableBoolean, "whether to include an id for the component in the markup"),
			prop("outputMarkupPlaceholderTag", nullableBoolean,
				"whether to include a placeholder tag for the component in the markup when the component is not visible"),
			prop("isVisible", nullableBoolean, "whether the component is initially visible"),
			prop("isEnabled", nullableBoolean, "whether the component is initially enabled"),
			prop("isVisibilityAllowed", nullableBoolean, "whether the component is initially allowed to be visible"),
			prop("escapeModelStrings", nullableBoolean, "whether the component model strings should be escaped"),
			prop("renderBodyOnly", nullableBoolean, "whether to only render the body of the component"),
			prop("behaviors", schema.Fixed(typeref.ParameterizedBy(typeref.List, wicketBehavior).AsNullable()),
				"list of [Behavior]s to add to the component"),
			{
				Name:        "statelessHint",
				Type:        schema.Fixed(statelessHint),
				Default:     schema.DefaultCode(typeref.Codef("%T.Default", statelessHint)),
				Description: "type of stateless hint for the component",
			},
			prop("onConfig", handler(schema.ComponentType()), "optional lambda to execute in the onConfigure lifecycle method"),
		},
	}
}

func labelConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.basic.Label"),
		Parent:    parent,
		Tag:       tag("span"),
	}
}

func multiLineLabelConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.basic.MultiLineLabel"),
		Parent:    parent,
		Tag:       tag("span"),
	}
}

func debugBarConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.devutils.debugbar.DebugBar"),
		Parent:    parent,
		Properties: []*schema.Property{
			{
				Name:        "isInitiallyExpanded",
				Type:        nullableBoolean,
				Default:     schema.DefaultCode(typeref.Lit("true")),
				Description: "whether the debug bar is initially expanded",
			},
		},
	}
}

func webMarkupContainerConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.WebMarkupContainer"),
		Parent:    parent,
	}
}

func repeatingViewConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.repeater.RepeatingView"),
		Parent:    parent,
		Tag:       tag("div"),
	}
}

func feedbackPanelConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.panel.FeedbackPanel"),
		Model:     schema.DefaultModel(),
		Parent:    parent,
		Properties: []*schema.Property{
			prop("filter", schema.Fixed(feedbackFilter.AsNullable()), "filter for the messages to be displayed in the feedback panel"),
		},
	}
}

// listViewConfig binds a ListView<T> to a model of List<T>.
func listViewConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: abstract("org.apache.wicket.markup.html.list.ListView", "T"),
		Model: &schema.Model{
			Kind:     schema.Unbounded,
			Target:   schema.Generic(typeref.List, schema.ModelParam()),
			Nullable: true,
			Generic:  nullableAny,
		},
		ConfigOnly: schema.Bool(false),
		Parent:     parent,
		Properties: []*schema.Property{
			prop("populateItem", handler(schema.Generic(listItem, schema.ModelParam())), "how to populate every iteration"),
		},
	}
}

func ajaxTabbedPanelConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.extensions.ajax.markup.html.tabs.AjaxTabbedPanel", "T"),
		Model: &schema.Model{
			Kind:     schema.Exact,
			Target:   schema.Fixed(typeref.Int),
			Nullable: false,
			Generic:  schema.Fixed(tab),
		},
		Parent: parent,
		Properties: []*schema.Property{
			prop("tabs", schema.Generic(typeref.List, schema.ModelParam().ErasedTo(schema.Fixed(tab))), "tabs in the tab panel"),
		},
	}
}

// checkGroupConfig binds a CheckGroup<T> to a model of Collection<T>.
func checkGroupConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.form.CheckGroup", "T"),
		Model: &schema.Model{
			Kind:     schema.Exact,
			Target:   schema.Generic(collection, schema.ModelParam()),
			Nullable: true,
			Generic:  nullableAny,
		},
		Parent: parent,
		Tag:    tag("span"),
	}
}

func checkConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.form.Check", "T"),
		Parent:    parent,
		Properties: []*schema.Property{
			prop("group", schema.Generic(class("org.apache.wicket.markup.html.form.CheckGroup"), schema.ModelParam()).OrNull(),
				"check group the check is associated with"),
		},
	}
}

func radioConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.form.Radio", "T"),
		Parent:    parent,
		Tag:       inputTag("radio"),
		Properties: []*schema.Property{
			prop("label", stringModel, "label for the radio button"),
			prop("group", schema.Generic(class("org.apache.wicket.markup.html.form.RadioGroup"), schema.ModelParam()).OrNull(),
				"radio group the radio button belongs to"),
		},
	}
}
