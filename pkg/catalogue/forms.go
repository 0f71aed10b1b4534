package catalogue

import (
	"github.com/pthm/kwicketgen/pkg/schema"
	"github.com/pthm/kwicketgen/pkg/typeref"
)

func abstractFormConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  concrete("org.apache.wicket.markup.html.form.Form", "T"),
		Basename:   "AbstractForm",
		ConfigOnly: schema.Bool(true),
		Parent:     parent,
		Properties: []*schema.Property{
			prop("isMultiPart", nullableBoolean, "whether the form is a multi-part submission"),
			prop("maxSize", schema.Fixed(wicketBytes.AsNullable()), "maximum bytes the form can submit"),
			prop("fileMaxSize", schema.Fixed(wicketBytes.AsNullable()), "maximum bytes a single file in the form submission can be"),
			prop("onSubmit", handler(schema.ComponentType()), "submit handler lambda"),
			prop("onError", handler(schema.ComponentType()), "error handler lambda"),
		},
	}
}

func formConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.form.Form", "T"),
		Parent:    parent,
		Tag:       tag("form"),
	}
}

func statelessFormConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.form.StatelessForm", "T"),
		Parent:    parent,
		Tag:       tag("form"),
	}
}

func formComponentConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  abstract("org.apache.wicket.markup.html.form.FormComponent", "T"),
		ConfigOnly: schema.Bool(true),
		Parent:     parent,
		Properties: []*schema.Property{
			prop("isRequired", nullableBoolean, "whether the form component is required"),
			prop("label", stringModel, "label associated with the form component"),
			prop("validators",
				schema.Generic(typeref.List, schema.Generic(wicketValidator, schema.ModelType().ErasedTo(nullableAny))).OrNull(),
				"validators for the form component"),
		},
	}
}

func textAreaConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.form.TextArea", "T"),
		Parent:    parent,
		Tag:       tag("textarea"),
	}
}

func textFieldConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.form.TextField", "T"),
		Parent:    parent,
		Tag:       inputTag("text"),
		Properties: []*schema.Property{
			prop("type", schema.Generic(javaClass, modelParamOrAny()).OrNull(), "type of the input"),
		},
	}
}

func passwordTextFieldConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.form.PasswordTextField"),
		Model:     exactModel(typeref.String.AsNullable(), true),
		Parent:    parent,
		Tag:       inputTag("password"),
	}
}

func autoCompleteTextFieldConfig(parent *schema.Configuration) *schema.Configuration {
	target := class("org.apache.wicket.extensions.ajax.markup.html.autocomplete.AutoCompleteTextField")
	return &schema.Configuration{
		Component:  schema.Component{Target: target, TypeParams: []string{"T"}, Abstract: true},
		ConfigOnly: schema.Bool(false),
		Parent:     parent,
		Tag:        inputTag("text"),
		Properties: []*schema.Property{
			prop("type", schema.Generic(javaClass, modelParamOrAny()).OrNull(), "type of the input"),
			prop("renderer", schema.Generic(autoCompleteRenderer, modelParamOrAny()).OrNull(), "how to render the autocomplete choices"),
			prop("settings", schema.Fixed(autoCompleteSettings.AsNullable()), "settings for the autocomplete"),
			prop("choices",
				schema.Lambda(
					schema.Generic(target, modelParamOrAny()).OrNull(),
					schema.Generic(sequence, modelParamOrAny()).OrNull(),
					nullableString,
				).OrNull(),
				"produces the choices matching the input"),
		},
	}
}

func checkBoxConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.form.CheckBox"),
		Model:     exactModel(typeref.Boolean, false),
		Parent:    parent,
		Tag:       inputTag("checkbox"),
	}
}

func ajaxCheckBoxConfig(parent *schema.Configuration) *schema.Configuration {
	target := class("org.apache.wicket.ajax.markup.html.form.AjaxCheckBox")
	return &schema.Configuration{
		Component:  schema.Component{Target: target, Abstract: true},
		Model:      exactModel(typeref.Boolean, false),
		ConfigOnly: schema.Bool(false),
		Parent:     parent,
		Tag:        inputTag("checkbox"),
		Properties: []*schema.Property{
			prop("onUpdate", fixedHandler(target, ajaxRequestTarget), "lambda handler when the checkbox is toggled"),
		},
	}
}

func dropDownChoiceConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.form.DropDownChoice", "T"),
		Parent:    parent,
		Tag:       tag("select"),
		Properties: []*schema.Property{
			prop("choices", choicesRule().OrNull(), "choices for the drop down"),
			prop("choiceRenderer", choiceRendererRule(), "how to render the drop down choices"),
		},
	}
}

func radioChoiceConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.form.RadioChoice", "T"),
		Parent:    parent,
		Tag:       tag("span"),
		Properties: []*schema.Property{
			prop("choices", choicesRule(), "radio choice options"),
			prop("choiceRenderer", choiceRendererRule(), "how to render the radio choices"),
		},
	}
}

// choicesRule is IModel<out List<T>>.
func choicesRule() *schema.TypeRule {
	return schema.Generic(wicketModel, schema.Out(schema.Generic(typeref.List, schema.ModelParam())))
}

// choiceRendererRule is IChoiceRenderer<in T>?.
func choiceRendererRule() *schema.TypeRule {
	return schema.Generic(choiceRenderer, schema.In(modelParamOrAny())).OrNull()
}

func radioGroupConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.form.RadioGroup", "T"),
		Parent:    parent,
		Tag:       tag("span"),
	}
}

func selectConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.extensions.markup.html.form.select.Select", "T"),
		Parent:    parent,
		Tag:       tag("select"),
	}
}

func fileUploadFieldConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.form.upload.FileUploadField"),
		Model:     exactModel(typeref.ParameterizedBy(mutableList, fileUpload), true),
		Parent:    parent,
		Tag:       inputTag("file"),
	}
}

func localDateTextFieldConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.extensions.markup.html.form.datetime.LocalDateTextField"),
		Model:     exactModel(localDate.AsNullable(), true),
		Parent:    parent,
		Tag:       inputTag("text"),
		Properties: []*schema.Property{
			prop("formatPattern", nullableString, "how to format the date"),
			prop("parsePattern", nullableString, "how to parse the date"),
			prop("dateStyle", schema.Fixed(formatStyle.AsNullable()), "style used to format the date"),
		},
	}
}

func localDateTimeTextFieldConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.extensions.markup.html.form.datetime.LocalDateTimeTextField"),
		Model:     exactModel(localDateTime.AsNullable(), true),
		Parent:    parent,
		Tag:       inputTag("text"),
		Properties: []*schema.Property{
			prop("dateTimePattern", nullableString, "how to parse the datetime"),
			prop("dateStyle", schema.Fixed(formatStyle.AsNullable()), "how to format the date portion of the datetime"),
			prop("timeStyle", schema.Fixed(formatStyle.AsNullable()), "how to format the time portion of the datetime"),
		},
	}
}

func localDateTimeFieldConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  concrete("org.apache.wicket.extensions.markup.html.form.datetime.LocalDateTimeField"),
		Model:      exactModel(localDateTime.AsNullable(), true),
		Parent:     parent,
		Properties: dateTimeFieldProperties(localDateTime),
	}
}

func zonedDateTimeFieldConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  concrete("org.apache.wicket.extensions.markup.html.form.datetime.ZonedDateTimeField"),
		Model:      exactModel(zonedDateTime.AsNullable(), true),
		Parent:     parent,
		Properties: dateTimeFieldProperties(zonedDateTime),
	}
}

// dateTimeFieldProperties are the conversion hooks of date time fields
// whose model holds a value of type value.
func dateTimeFieldProperties(value *typeref.TypeRef) []*schema.Property {
	return []*schema.Property{
		prop("toLocalDate", schema.Fixed(typeref.Func(nil, localDate, value).AsNullable()),
			"how to extract a LocalDate from the model value"),
		prop("toLocalTime", schema.Fixed(typeref.Func(nil, localTime, value).AsNullable()),
			"how to extract a LocalTime from the model value"),
		prop("defaultTime", schema.Fixed(typeref.Func(nil, localTime).AsNullable()),
			"how to create a default LocalTime"),
	}
}

func timeFieldConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.extensions.markup.html.form.datetime.TimeField"),
		Model:     exactModel(localTime.AsNullable(), true),
		Parent:    parent,
		Properties: []*schema.Property{
			prop("use12HourFormat", nullableBoolean, "whether the time is displayed and parsed in a 12-hour format"),
		},
	}
}
