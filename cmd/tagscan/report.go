package main

import (
	"fmt"
	"io"

	"htmltag-go/packages/htmltag/src/config"
	"htmltag-go/packages/htmltag/src/markup"
)

type report struct {
	url          string
	tags         []markup.Tag
	unregistered int
}

// scan collects the tags of source, restricted to filter when it is not nil
func scan(source *markup.Source, mode string, filter markup.TagType) *report {
	r := &report{url: source.Location(0).File.URL}
	var tags []markup.Tag
	if mode == config.ModeFull {
		tags = source.FullSequentialParse()
	} else {
		for tag := source.NextTag(0); tag != nil; tag = tag.FindNextTag() {
			tags = append(tags, tag)
		}
	}
	for _, tag := range tags {
		if tag.IsUnregistered() {
			r.unregistered++
		}
		if filter == nil || tag.TagType() == filter {
			r.tags = append(r.tags, tag)
		}
	}
	return r
}

func (r *report) write(w io.Writer, colored bool) {
	for _, tag := range r.tags {
		description := tag.TagType().Description()
		if colored {
			description = "\033[36m" + description + "\033[m"
		}
		fmt.Fprintf(w, "%s:%d-%d\t%s\t%s\n", r.url, tag.Begin(), tag.End(), description, tag.Name())
	}
	fmt.Fprintf(w, "%s: %d tags, %d unregistered\n", r.url, len(r.tags), r.unregistered)
}
