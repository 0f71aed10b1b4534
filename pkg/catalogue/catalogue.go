// Package catalogue provides the built-in component configurations for the
// Apache Wicket component library and the kWicket naming layout.
//
// All returns a freshly built forest on every call. Nothing in this package
// is shared between generation runs, so callers may modify the returned
// configurations or combine them with their own.
package catalogue

import (
	"sort"

	"github.com/pthm/kwicketgen/pkg/schema"
	"github.com/pthm/kwicketgen/pkg/typeref"
)

// Packages of the kWicket layout.
const (
	ConfigPackage         = "org.kwicket.builder.config"
	FactoryPackage        = "org.kwicket.builder.factory"
	IncludePackage        = "org.kwicket.builder.include"
	IncludeDSLPackage     = "org.kwicket.builder.include.dsl"
	TagPackage            = "org.kwicket.builder.tag"
	TagDSLPackage         = "org.kwicket.builder.tag.dsl"
	kotlinxHTMLPackage    = "kotlinx.html"
	defaultComponentParam = "C"
	defaultModelParam     = "T"
)

// DefaultNaming returns the kWicket naming strategy: I<Name>Config and
// <Name>Config in the config package, <Name>Tag and lowerCamel tag methods in
// the tag DSL package, and lowerCamel include methods in the include DSL
// package.
func DefaultNaming() *schema.Naming {
	return &schema.Naming{
		ConfigInterface: schema.PatternClassInfo(ConfigPackage, "I%sConfig"),
		ConfigClass:     schema.PatternClassInfo(ConfigPackage, "%sConfig"),
		FactoryMethod:   schema.StaticClassInfo(FactoryPackage, "invoke"),
		IncludeMethod:   schema.LowerCamelClassInfo(IncludeDSLPackage),
		TagClass:        schema.PatternClassInfo(TagDSLPackage, "%sTag"),
		TagMethod:       schema.LowerCamelClassInfo(TagDSLPackage),
		BaseTagClass:    schema.StaticClassInfo(TagPackage, "ConfigurableComponentTag"),
		IncludeFactory:  schema.StaticClassInfo(IncludePackage, "q"),
		BlockTag:        typeref.Class(kotlinxHTMLPackage, "HtmlBlockTag"),
		TagReceiver:     typeref.Class(kotlinxHTMLPackage, "HTMLTag"),
		TagConsumer:     typeref.Class(kotlinxHTMLPackage, "TagConsumer"),
		IncludeReceiver: typeref.Class("org.apache.wicket", "MarkupContainer"),
		Visit:           typeref.Class(kotlinxHTMLPackage, "visit"),
		ComponentParam:  schema.TypeParamInfo{Name: defaultComponentParam, Doc: "type of the Wicket component"},
		ModelParam:      schema.TypeParamInfo{Name: defaultModelParam, Doc: "type of the component model"},
	}
}

// All returns every built-in configuration, parents before children.
func All() []*schema.Configuration {
	component := componentConfig()
	abstractForm := abstractFormConfig(component)
	formComponent := formComponentConfig(component)
	abstractButton := abstractButtonConfig(component)
	abstractLink := abstractLinkConfig(component)
	abstractImage := abstractImageConfig(component)
	mediaComponent := mediaComponentConfig(component)

	return []*schema.Configuration{
		component,
		ajaxTabbedPanelConfig(component),
		labelConfig(component),
		multiLineLabelConfig(component),
		debugBarConfig(component),
		webMarkupContainerConfig(component),
		repeatingViewConfig(component),
		feedbackPanelConfig(component),
		listViewConfig(component),

		abstractButton,
		buttonConfig(abstractButton),
		ajaxButtonConfig(abstractButton),
		indicatingAjaxButtonConfig(abstractButton),
		ajaxFallbackButtonConfig(abstractButton),

		formComponent,
		textAreaConfig(formComponent),
		textFieldConfig(formComponent),
		passwordTextFieldConfig(formComponent),
		autoCompleteTextFieldConfig(formComponent),
		checkBoxConfig(formComponent),
		ajaxCheckBoxConfig(formComponent),
		dropDownChoiceConfig(formComponent),
		radioChoiceConfig(formComponent),
		radioGroupConfig(formComponent),
		selectConfig(formComponent),
		fileUploadFieldConfig(formComponent),
		localDateTextFieldConfig(formComponent),
		localDateTimeTextFieldConfig(formComponent),
		localDateTimeFieldConfig(formComponent),
		timeFieldConfig(formComponent),
		zonedDateTimeFieldConfig(formComponent),

		checkConfig(component),
		checkGroupConfig(component),
		radioConfig(component),

		ajaxLinkConfig(component),
		indicatingAjaxLinkConfig(component),
		externalLinkConfig(component),
		ajaxSubmitLinkConfig(component),
		submitLinkConfig(component),
		abstractLink,
		linkConfig(abstractLink),
		bookmarkablePageLinkConfig(abstractLink),
		ajaxFallbackLinkConfig(abstractLink),
		indicatingAjaxFallbackLinkConfig(abstractLink),
		statelessLinkConfig(abstractLink),

		abstractImage,
		imageConfig(abstractImage),
		sourceConfig(abstractImage),
		inlineImageConfig(component),
		pictureConfig(component),

		mediaComponent,
		audioConfig(mediaComponent),
		videoConfig(mediaComponent),

		abstractForm,
		formConfig(abstractForm),
		statelessFormConfig(abstractForm),
	}
}

// Index maps configurations by name.
func Index(configs []*schema.Configuration) map[string]*schema.Configuration {
	out := make(map[string]*schema.Configuration, len(configs))
	for _, c := range configs {
		out[c.Name()] = c
	}
	return out
}

// Names returns the sorted configuration names.
func Names(configs []*schema.Configuration) []string {
	names := make([]string, 0, len(configs))
	for _, c := range configs {
		names = append(names, c.Name())
	}
	sort.Strings(names)
	return names
}

// Select returns the named configurations in catalogue order together with
// the names that matched nothing. Ancestors are not added.
func Select(configs []*schema.Configuration, names []string) ([]*schema.Configuration, []string) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []*schema.Configuration
	for _, c := range configs {
		if want[c.Name()] {
			out = append(out, c)
			delete(want, c.Name())
		}
	}
	var missing []string
	for n := range want {
		missing = append(missing, n)
	}
	sort.Strings(missing)
	return out, missing
}
