package markup_test

import (
	"htmltag-go/packages/htmltag/src/markup"
)

type tagInfo struct {
	Type  string
	Name  string
	Begin int
	End   int
}

func humanizeTag(tag markup.Tag) tagInfo {
	return tagInfo{
		Type:  tag.TagType().Description(),
		Name:  tag.Name(),
		Begin: tag.Begin(),
		End:   tag.End(),
	}
}

func humanizeTags(tags []markup.Tag) []tagInfo {
	result := make([]tagInfo, 0, len(tags))
	for _, tag := range tags {
		result = append(result, humanizeTag(tag))
	}
	return result
}

// tagsOnDemand walks the source with FindNextTag, without a full sequential parse
func tagsOnDemand(source *markup.Source) []markup.Tag {
	var tags []markup.Tag
	for tag := source.NextTag(0); tag != nil; tag = tag.FindNextTag() {
		tags = append(tags, tag)
	}
	return tags
}

func registeredOnly(tags []markup.Tag) []markup.Tag {
	var result []markup.Tag
	for _, tag := range tags {
		if !tag.IsUnregistered() {
			result = append(result, tag)
		}
	}
	return result
}

func descriptions(types []markup.TagType) []string {
	result := make([]string, 0, len(types))
	for _, t := range types {
		result = append(result, t.Description())
	}
	return result
}
