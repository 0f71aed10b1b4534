package catalogue

import (
	"github.com/pthm/kwicketgen/pkg/schema"
	"github.com/pthm/kwicketgen/pkg/typeref"
)

func abstractImageConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component:  concrete("org.apache.wicket.markup.html.image.Image"),
		Basename:   "AbstractImage",
		ConfigOnly: schema.Bool(true),
		Parent:     parent,
		Tag:        tag("img"),
		Properties: []*schema.Property{
			prop("resRef", schema.Fixed(resourceReference.AsNullable()), "resource reference of the image"),
			prop("resParams", schema.Fixed(pageParameters.AsNullable()), "parameters to add to the image link"),
			prop("resRefs", schema.Fixed(typeref.ParameterizedBy(typeref.List, resourceReference).AsNullable()),
				"resource references of the image"),
			prop("imageResource", schema.Fixed(resource.AsNullable()), "resource of the image"),
			prop("imageResources", schema.Fixed(typeref.ParameterizedBy(typeref.List, resource).AsNullable()),
				"resources of the image"),
			prop("xValues", schema.Fixed(typeref.ParameterizedBy(typeref.List, typeref.String).AsNullable()), "x values for image"),
			prop("sizes", schema.Fixed(typeref.ParameterizedBy(typeref.List, typeref.String).AsNullable()), "sizes of the image"),
		},
	}
}

func imageConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.image.Image"),
		Parent:    parent,
	}
}

func sourceConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.image.Source"),
		Parent:    parent,
		Tag:       tag("source"),
		Properties: []*schema.Property{
			prop("media", nullableString, "media type of the image"),
			prop("crossOrigin", fixed("org.apache.wicket.markup.html.image.Image.Cors?"), "CORS type of the image"),
		},
	}
}

func inlineImageConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.image.InlineImage"),
		Parent:    parent,
		Tag:       tag("img"),
		Properties: []*schema.Property{
			prop("resRef", schema.Fixed(packageResourceRef.AsNullable()), "resource reference of the image"),
		},
	}
}

func pictureConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.image.Picture"),
		Parent:    parent,
		Tag:       tag("picture"),
	}
}

func mediaComponentConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: abstract("org.apache.wicket.markup.html.media.MediaComponent"),
		Parent:    parent,
		Properties: []*schema.Property{
			prop("resRef", schema.Fixed(resourceReference.AsNullable()), "reference to the media resource"),
			prop("url", nullableString, "url to the media"),
			prop("pageParams", schema.Fixed(pageParameters.AsNullable()), "parameters for the page"),
			prop("isMuted", nullableBoolean, "whether the media is muted"),
			prop("hasControls", nullableBoolean, "whether the media has controls"),
			prop("preload", fixed("org.apache.wicket.markup.html.media.MediaComponent.Preload?"), "how the media is preloaded"),
			prop("isAutoPlay", nullableBoolean, "whether the media will start automatically"),
			prop("isLooping", nullableBoolean, "whether the media should start over when it finishes"),
			prop("startTime", nullableString, "where in the media to start playing"),
			prop("endTime", nullableString, "where in the media to stop playing"),
			prop("mediaGroup", nullableString, "name of the group the media is part of"),
			prop("crossOrigin", fixed("org.apache.wicket.markup.html.media.MediaComponent.Cors?"), "CORS type"),
			prop("type", nullableString, "type of the media"),
		},
	}
}

func audioConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.media.audio.Audio"),
		Parent:    parent,
		Tag:       tag("audio"),
	}
}

func videoConfig(parent *schema.Configuration) *schema.Configuration {
	return &schema.Configuration{
		Component: concrete("org.apache.wicket.markup.html.media.video.Video"),
		Parent:    parent,
		Tag:       tag("video"),
		Properties: []*schema.Property{
			prop("width", nullableInt, "width of the video playback"),
			prop("height", nullableInt, "height of the video playback"),
			prop("poster", schema.Fixed(resourceReference.AsNullable()), "reference to the resource for an image representing the video"),
		},
	}
}
