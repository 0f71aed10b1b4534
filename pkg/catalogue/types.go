package catalogue

import (
	"github.com/pthm/kwicketgen/pkg/schema"
	"github.com/pthm/kwicketgen/pkg/typeref"
)

func class(qualified string) *typeref.TypeRef {
	return typeref.MustParse(qualified)
}

func fixed(notation string) *schema.TypeRule {
	return schema.Fixed(typeref.MustParse(notation))
}

// Wicket and JDK classes referenced by the catalogue.
var (
	wicketComponent      = class("org.apache.wicket.Component")
	wicketPage           = class("org.apache.wicket.Page")
	wicketBehavior       = class("org.apache.wicket.behavior.Behavior")
	wicketModel          = class("org.apache.wicket.model.IModel")
	wicketValidator      = class("org.apache.wicket.validation.IValidator")
	wicketBytes          = class("org.apache.wicket.util.lang.Bytes")
	ajaxRequestTarget    = class("org.apache.wicket.ajax.AjaxRequestTarget")
	ajaxRequestAttrs     = class("org.apache.wicket.ajax.attributes.AjaxRequestAttributes")
	pageParameters       = class("org.apache.wicket.request.mapper.parameter.PageParameters")
	resourceReference    = class("org.apache.wicket.request.resource.ResourceReference")
	packageResourceRef   = class("org.apache.wicket.request.resource.PackageResourceReference")
	resource             = class("org.apache.wicket.request.resource.IResource")
	feedbackFilter       = class("org.apache.wicket.feedback.IFeedbackMessageFilter")
	popupSettings        = class("org.apache.wicket.markup.html.link.PopupSettings")
	choiceRenderer       = class("org.apache.wicket.markup.html.form.IChoiceRenderer")
	listItem             = class("org.apache.wicket.markup.html.list.ListItem")
	tab                  = class("org.apache.wicket.extensions.markup.html.tabs.ITab")
	autoCompleteRenderer = class("org.apache.wicket.extensions.ajax.markup.html.autocomplete.IAutoCompleteRenderer")
	autoCompleteSettings = class("org.apache.wicket.extensions.ajax.markup.html.autocomplete.AutoCompleteSettings")
	fileUpload           = class("org.apache.wicket.markup.html.form.upload.FileUpload")
	statelessHint        = class("org.kwicket.builder.config.StatelessHint")

	javaClass     = class("java.lang.Class")
	kotlinClass   = class("kotlin.reflect.KClass")
	sequence      = class("kotlin.sequences.Sequence")
	collection    = class("kotlin.collections.Collection")
	mutableList   = class("kotlin.collections.MutableList")
	localDate     = class("java.time.LocalDate")
	localTime     = class("java.time.LocalTime")
	localDateTime = class("java.time.LocalDateTime")
	zonedDateTime = class("java.time.ZonedDateTime")
	formatStyle   = class("java.time.format.FormatStyle")
)

// Frequently used property rules.
var (
	nullableAny     = schema.Fixed(typeref.Any.AsNullable())
	nullableString  = schema.Fixed(typeref.String.AsNullable())
	nullableBoolean = schema.Fixed(typeref.Boolean.AsNullable())
	nullableInt     = schema.Fixed(typeref.Int.AsNullable())
	stringModel     = schema.Fixed(typeref.ParameterizedBy(wicketModel, typeref.String).AsNullable())
	formOfAny       = schema.Fixed(typeref.ParameterizedBy(class("org.apache.wicket.markup.html.form.Form"), typeref.Star()))
)

// modelParamOrAny is the model type variable, erased to Any?.
func modelParamOrAny() *schema.TypeRule {
	return schema.ModelParam().ErasedTo(nullableAny)
}

// handler is a nullable lambda on receiver returning Unit.
func handler(receiver *schema.TypeRule, params ...*schema.TypeRule) *schema.TypeRule {
	return schema.Lambda(receiver, nil, params...).OrNull()
}

// fixedHandler is a nullable lambda on a fixed receiver class.
func fixedHandler(receiver *typeref.TypeRef, params ...*typeref.TypeRef) *schema.TypeRule {
	rules := make([]*schema.TypeRule, len(params))
	for i, p := range params {
		rules[i] = schema.Fixed(p)
	}
	return handler(schema.Fixed(receiver), rules...)
}

func prop(name string, typ *schema.TypeRule, desc string) *schema.Property {
	return &schema.Property{Name: name, Type: typ, Description: desc}
}

func concrete(target string, typeParams ...string) schema.Component {
	return schema.Component{Target: class(target), TypeParams: typeParams}
}

func abstract(target string, typeParams ...string) schema.Component {
	return schema.Component{Target: class(target), TypeParams: typeParams, Abstract: true}
}

func tag(name string) *schema.TagInfo {
	return &schema.TagInfo{Name: name}
}

func inputTag(typ string) *schema.TagInfo {
	return &schema.TagInfo{Name: "input", Attrs: map[string]string{"type": typ}}
}

// exactModel is a model fixed to target. Nullable models still get a type
// variable bounded by the target.
func exactModel(target *typeref.TypeRef, nullable bool) *schema.Model {
	return &schema.Model{Kind: schema.Exact, Target: schema.Fixed(target), Nullable: nullable}
}
