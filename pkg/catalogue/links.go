package catalogue

import (
	"github.com/pthm/kwicketgen/pkg/schema"
	"github.com/pthm/kwicketgen/pkg/typeref"
)

var (
	wicketButton        = class("org.apache.wicket.markup.html.form.Button")
	ajaxButton          = class("org.apache.wicket.ajax.markup.html.form.AjaxButton")
	ajaxFallbackButton  = class("org.apache.wicket.ajax.markup.html.form.AjaxFallbackButton")
	ajaxLink            = class("org.apache.wicket.ajax.markup.html.AjaxLink")
	ajaxFallbackLink    = class("org.apache.wicket.ajax.markup.html.AjaxFallbackLink")
	ajaxSubmitLink      = class("org.apache.wicket.ajax.markup.html.form.AjaxSubmitLink")
	submitLink          = class("org.apache.wicket.markup.html.form.SubmitLink")
	nullableRequestAjax = ajaxRequestTarget.AsNullable()
)

// buttonModel is the label of a button: a nullable string.
func buttonModel() *schema.Model {
	return exactModel(typeref.String.AsNullable(), true)
}

func abstractButtonConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  schema.Component{Target: wicketButton},
		Basename:   "AbstractButton",
		Model:      buttonModel(),
		ConfigOnly: schema.Bool(true),
		Parent:     parent,
		Tag:        tag("button"),
		Properties: []*schema.Property{
			prop("defaultFormProcessing", nullableBoolean, "whether the button submits the data"),
		},
	}
}

func buttonConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: schema.Component{Target: wicketButton},
		Model:     buttonModel(),
		Parent:    parent,
		Properties: []*schema.Property{
			prop("onSubmit", fixedHandler(wicketButton), "submit handler lambda"),
			prop("onError", fixedHandler(wicketButton), "error handler lambda"),
		},
	}
}

// ajaxButtonProperties are shared by the ajax buttons. receiver is the
// class the handlers run on.
func ajaxButtonProperties(receiver, target *typeref.TypeRef) []*schema.Property {
	return []*schema.Property{
		prop("form", formOfAny.OrNull(), "form the button is associated with"),
		prop("onSubmit", fixedHandler(receiver, target), "submit handler lambda"),
		prop("onError", fixedHandler(receiver, target), "error handler lambda"),
	}
}

func ajaxButtonConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  schema.Component{Target: ajaxButton},
		Model:      buttonModel(),
		ConfigOnly: schema.Bool(false),
		Parent:     parent,
		Properties: ajaxButtonProperties(ajaxButton, ajaxRequestTarget),
	}
}

func indicatingAjaxButtonConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  concrete("org.apache.wicket.extensions.ajax.markup.html.IndicatingAjaxButton"),
		Model:      buttonModel(),
		ConfigOnly: schema.Bool(false),
		Parent:     parent,
		Properties: ajaxButtonProperties(ajaxButton, ajaxRequestTarget),
	}
}

func ajaxFallbackButtonConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  schema.Component{Target: ajaxFallbackButton},
		Model:      buttonModel(),
		ConfigOnly: schema.Bool(false),
		Parent:     parent,
		Properties: ajaxButtonProperties(ajaxFallbackButton, nullableRequestAjax),
	}
}

func abstractLinkConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  abstract("org.apache.wicket.markup.html.link.Link", "T"),
		Basename:   "AbstractLink",
		ConfigOnly: schema.Bool(true),
		Parent:     parent,
		Tag:        tag("a"),
		Properties: []*schema.Property{
			prop("popupSettings", schema.Fixed(popupSettings.AsNullable()), "specifies how the link opens"),
			prop("autoEnable", nullableBoolean, "whether link should automatically enable/disable based on current page"),
		},
	}
}

func linkConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  abstract("org.apache.wicket.markup.html.link.Link", "T"),
		ConfigOnly: schema.Bool(false),
		Parent:     parent,
		Properties: []*schema.Property{
			prop("onClick", handler(schema.TargetType()), "click handler lambda"),
		},
	}
}

func statelessLinkConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  abstract("org.apache.wicket.markup.html.link.StatelessLink", "T"),
		ConfigOnly: schema.Bool(false),
		Parent:     parent,
		Properties: []*schema.Property{
			prop("onClick", handler(schema.TargetType()), "link click handler lambda"),
		},
	}
}

func bookmarkablePageLinkConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.link.BookmarkablePageLink", "T"),
		Parent:    parent,
		Properties: []*schema.Property{
			prop("page", schema.Fixed(typeref.ParameterizedBy(kotlinClass, typeref.Out(wicketPage)).AsNullable()),
				"class of the page the link references"),
			prop("params", schema.Fixed(pageParameters.AsNullable()), "parameters to pass to the link"),
		},
	}
}

// ajaxLinkProperties are the handlers of ajax links running on receiver,
// a link class parameterized by the model.
func ajaxLinkProperties(receiver, target *typeref.TypeRef, withAttrs bool) []*schema.Property {
	on := schema.Generic(receiver, schema.ModelParam())
	props := []*schema.Property{
		prop("onClick", handler(on, schema.Fixed(target)), "ajax click handler"),
	}
	if withAttrs {
		props = append(props, prop("updateAjaxAttrs", handler(on, schema.Fixed(ajaxRequestAttrs)), "updates the ajax attributes"))
	}
	return props
}

func ajaxLinkConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  schema.Component{Target: ajaxLink, TypeParams: []string{"T"}, Abstract: true},
		ConfigOnly: schema.Bool(false),
		Parent:     parent,
		Tag:        tag("a"),
		Properties: ajaxLinkProperties(ajaxLink, ajaxRequestTarget, true),
	}
}

func indicatingAjaxLinkConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  abstract("org.apache.wicket.extensions.ajax.markup.html.IndicatingAjaxLink", "T"),
		ConfigOnly: schema.Bool(false),
		Parent:     parent,
		Tag:        tag("a"),
		Properties: ajaxLinkProperties(ajaxLink, ajaxRequestTarget, true),
	}
}

func ajaxFallbackLinkConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  schema.Component{Target: ajaxFallbackLink, TypeParams: []string{"T"}, Abstract: true},
		ConfigOnly: schema.Bool(false),
		Parent:     parent,
		Properties: ajaxLinkProperties(ajaxFallbackLink, nullableRequestAjax, true),
	}
}

func indicatingAjaxFallbackLinkConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  abstract("org.apache.wicket.extensions.ajax.markup.html.IndicatingAjaxFallbackLink", "T"),
		ConfigOnly: schema.Bool(false),
		Parent:     parent,
		Properties: ajaxLinkProperties(ajaxFallbackLink, nullableRequestAjax, false),
	}
}

func externalLinkConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.link.ExternalLink"),
		Model:     exactModel(typeref.String.AsNullable(), true),
		Parent:    parent,
		Tag:       tag("a"),
		Properties: []*schema.Property{
			prop("popupSettings", schema.Fixed(popupSettings.AsNullable()), "specifies how the link opens"),
			prop("label", schema.Fixed(typeref.ParameterizedBy(wicketModel, typeref.Star()).AsNullable()), "text for the link"),
		},
	}
}

func ajaxSubmitLinkConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  schema.Component{Target: ajaxSubmitLink},
		ConfigOnly: schema.Bool(false),
		Parent:     parent,
		Tag:        tag("a"),
		Properties: []*schema.Property{
			prop("onSubmit", fixedHandler(ajaxSubmitLink, ajaxRequestTarget), "submit handler lambda"),
			prop("onError", fixedHandler(ajaxSubmitLink, ajaxRequestTarget), "error handler lambda"),
			prop("form", formOfAny.OrNull(), "form the link submits"),
		},
	}
}

func submitLinkConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  schema.Component{Target: submitLink},
		ConfigOnly: schema.Bool(false),
		Parent:     parent,
		Tag:        tag("a"),
		Properties: []*schema.Property{
			prop("form", formOfAny, "form the link is submitting"),
			prop("onSubmit", schema.Lambda(schema.Fixed(submitLink), nil), "lambda called when the form is submitted without errors"),
			prop("onError", schema.Lambda(schema.Fixed(submitLink), nil), "lambda called when the form has validation errors"),
		},
	}
}
