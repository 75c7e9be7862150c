package markup_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"htmltag-go/packages/htmltag/src/diaglog"
	"htmltag-go/packages/htmltag/src/markup"
)

const mixedDocument = `<!DOCTYPE html>
<html><head><title>T</title></head>
<body class="x"><!-- <p>hidden</p> --><p>One<br/>Two</p>
<![CDATA[ <b> ]]><% if (x) { %><i>y</i><% } %>
<1 stray> </body></html>`

func TestSource_FullSequentialParse(t *testing.T) {
	t.Run("should find nested element tags in order", func(t *testing.T) {
		source := markup.NewSource("<a><b></b></a>", nil)
		expected := []tagInfo{
			{"normal start tag", "a", 0, 3},
			{"normal start tag", "b", 3, 6},
			{"normal end tag", "b", 6, 10},
			{"normal end tag", "a", 10, 14},
		}
		if diff := cmp.Diff(expected, humanizeTags(source.FullSequentialParse())); diff != "" {
			t.Errorf("FullSequentialParse() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should recognize every built-in tag type", func(t *testing.T) {
		source := markup.NewSource(mixedDocument, nil)
		var names []string
		for _, tag := range source.FullSequentialParse() {
			names = append(names, tag.Name())
		}
		expected := []string{
			"!doctype", "html", "head", "title", "title", "head",
			"body", "!--", "p", "br", "p",
			"![cdata[", "%", "i", "i", "%",
			"", "body", "html",
		}
		if diff := cmp.Diff(expected, names); diff != "" {
			t.Errorf("FullSequentialParse() names mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should partition registered tags and start tags", func(t *testing.T) {
		source := markup.NewSource("<p>a<1 b></p>", nil)
		all := source.AllTags()
		if got := len(all); got != 3 {
			t.Fatalf("len(AllTags()) = %d, want 3", got)
		}
		expected := []tagInfo{
			{"normal start tag", "p", 0, 3},
			{"normal end tag", "p", 9, 13},
		}
		if diff := cmp.Diff(expected, humanizeTags(source.RegisteredTags())); diff != "" {
			t.Errorf("RegisteredTags() mismatch (-want +got):\n%s", diff)
		}
		starts := source.AllStartTags()
		if len(starts) != 1 || starts[0].Name() != "p" {
			t.Errorf("AllStartTags() = %v, want only <p>", starts)
		}
	})

	t.Run("should step by index after a full parse", func(t *testing.T) {
		source := markup.NewSource(mixedDocument, nil)
		tags := source.FullSequentialParse()
		for i := 0; i+1 < len(tags); i++ {
			if next := tags[i].FindNextTag(); next != tags[i+1] {
				t.Errorf("tags[%d].FindNextTag() = %v, want %v", i, next, tags[i+1])
			}
			if prev := tags[i+1].FindPreviousTag(); prev != tags[i] {
				t.Errorf("tags[%d].FindPreviousTag() = %v, want %v", i+1, prev, tags[i])
			}
		}
		if tags[0].FindPreviousTag() != nil {
			t.Errorf("first tag FindPreviousTag() != nil")
		}
		if tags[len(tags)-1].FindNextTag() != nil {
			t.Errorf("last tag FindNextTag() != nil")
		}
	})

	t.Run("should return an empty non-nil result for a document without tags", func(t *testing.T) {
		source := markup.NewSource("plain text", nil)
		if tags := source.FullSequentialParse(); tags == nil || len(tags) != 0 {
			t.Errorf("FullSequentialParse() = %v, want empty", tags)
		}
		if !source.IsFullSequentialParsed() {
			t.Errorf("IsFullSequentialParsed() = false")
		}
	})
}

func TestSource_CrossModeConsistency(t *testing.T) {
	documents := []string{
		mixedDocument,
		"<a><b></b></a>",
		"<!-- <p> -->",
		"<![CDATA[<x>]]><y><!-- unclosed <z>",
		"<%-- x --%><p><% y %></p><?php echo 1 ?>",
		"<table><tr><td>1</td></tr></table><br><img src='a>b'>",
		"<!-- <![CDATA[ --> <p> ]]>",
		"<![CDATA[ <!-- ]]> <p> -->",
		"<!-- a --><![CDATA[ <!-- ]]><b><!-- <![CDATA[ --><i>",
	}
	for _, doc := range documents {
		t.Run(doc, func(t *testing.T) {
			onDemand := humanizeTags(registeredOnly(tagsOnDemand(markup.NewSource(doc, nil))))
			full := humanizeTags(markup.NewSource(doc, nil).RegisteredTags())
			if diff := cmp.Diff(full, onDemand); diff != "" {
				t.Errorf("parse on demand differs from full sequential parse (-full +demand):\n%s", diff)
			}
		})
	}
}

func TestSource_Precedence(t *testing.T) {
	t.Run("longer delimiter wins over its prefix", func(t *testing.T) {
		source := markup.NewSource("<!-- x -->", nil)
		tag := source.TagAt(0)
		if tag == nil || tag.TagType() != markup.StartTagTypeCOMMENT {
			t.Fatalf("TagAt(0) = %v, want comment", tag)
		}
		if diff := cmp.Diff(tagInfo{"comment", "!--", 0, 10}, humanizeTag(tag)); diff != "" {
			t.Errorf("TagAt(0) mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("custom type with a longer delimiter", func(t *testing.T) {
		registry := markup.NewDefaultRegistry()
		expression := markup.NewDelimitedTagType("expression", "<%=", "%>", true)
		registry.Register(expression)
		source := markup.NewSource("<%= x %><% y %>", &markup.SourceOptions{Registry: registry})
		if tag := source.TagAt(0); tag == nil || tag.TagType() != expression {
			t.Errorf("TagAt(0) = %v, want expression", tag)
		}
		if tag := source.TagAt(8); tag == nil || tag.TagType() != markup.StartTagTypeSERVER_COMMON {
			t.Errorf("TagAt(8) = %v, want common server tag", tag)
		}
	})

	t.Run("falls back to a shorter delimiter when construction fails", func(t *testing.T) {
		source := markup.NewSource("<!element x><!-- unclosed>", nil)
		if tag := source.TagAt(0); tag == nil || tag.TagType() != markup.StartTagTypeMARKUP_DECLARATION {
			t.Errorf("TagAt(0) = %v, want markup declaration", tag)
		}
		if tag := source.TagAt(12); tag == nil || !tag.IsUnregistered() {
			t.Errorf("TagAt(12) = %v, want unregistered tag", tag)
		}
	})
}

func TestSource_NestingSuppression(t *testing.T) {
	const doc = "<!-- <p> -->"

	t.Run("parse on demand", func(t *testing.T) {
		source := markup.NewSource(doc, nil)
		if tag := source.NextStartTag(0, "p"); tag != nil {
			t.Errorf("NextStartTag(0, p) = %v, want nil", tag)
		}
		comment := source.NextTagOfType(0, markup.StartTagTypeCOMMENT)
		if comment == nil {
			t.Fatalf("NextTagOfType(0, comment) = nil")
		}
		if diff := cmp.Diff(tagInfo{"comment", "!--", 0, 12}, humanizeTag(comment)); diff != "" {
			t.Errorf("NextTagOfType() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("parse on demand without cached comment", func(t *testing.T) {
		source := markup.NewSource(doc, nil)
		if tag := source.TagAt(5); tag != nil {
			t.Errorf("TagAt(5) = %v, want nil", tag)
		}
	})

	t.Run("full sequential parse", func(t *testing.T) {
		source := markup.NewSource(doc, nil)
		source.FullSequentialParse()
		if tag := source.NextStartTag(0, "P"); tag != nil {
			t.Errorf("NextStartTag(0, P) = %v, want nil", tag)
		}
		if tag := source.NextTagOfType(0, markup.StartTagTypeCOMMENT); tag == nil || tag.End() != 12 {
			t.Errorf("NextTagOfType(0, comment) = %v, want [0,12)", tag)
		}
	})

	t.Run("server tags are recognized inside comments", func(t *testing.T) {
		source := markup.NewSource("<!-- <% x %> -->", nil)
		tag := source.TagAt(5)
		if tag == nil || tag.TagType() != markup.StartTagTypeSERVER_COMMON {
			t.Errorf("TagAt(5) = %v, want common server tag", tag)
		}
	})

	t.Run("a tag directly after the comment is valid", func(t *testing.T) {
		source := markup.NewSource("<!-- x --><p>", nil)
		source.TagAt(0)
		if tag := source.TagAt(10); tag == nil || tag.Name() != "p" {
			t.Errorf("TagAt(10) = %v, want <p>", tag)
		}
	})

	t.Run("delimiters inside another ignoring type", func(t *testing.T) {
		tests := []struct {
			doc   string
			inner int
		}{
			{"<!-- <![CDATA[ --> <p> ]]>", 5},
			{"<![CDATA[ <!-- ]]> <p> -->", 10},
		}
		for _, tt := range tests {
			doc := tt.doc
			source := markup.NewSource(doc, nil)
			if tag := source.TagAt(tt.inner); tag != nil {
				t.Errorf("%s: TagAt(%d) = %v, want nil", doc, tt.inner, tag)
			}
			if tag := source.TagAt(19); tag == nil || tag.Name() != "p" {
				t.Errorf("%s: TagAt(19) = %v, want <p>", doc, tag)
			}
			if tag := markup.NewSource(doc, nil).NextStartTag(0, "p"); tag == nil || tag.Begin() != 19 {
				t.Errorf("%s: NextStartTag(0, p) = %v, want tag at 19", doc, tag)
			}
		}
	})

	t.Run("no ignoring types", func(t *testing.T) {
		source := markup.NewSource(doc, &markup.SourceOptions{IgnoringTypes: []markup.TagType{}})
		if tag := source.NextStartTag(1, "p"); tag == nil || tag.Begin() != 5 {
			t.Errorf("NextStartTag(1, p) = %v, want tag at 5", tag)
		}
	})
}

func TestSource_UnregisteredFallback(t *testing.T) {
	t.Run("start tag", func(t *testing.T) {
		collector := &diaglog.Collector{}
		source := markup.NewSource("<1 <2>", &markup.SourceOptions{Logger: collector})
		tag := source.TagAt(0)
		if tag == nil {
			t.Fatalf("TagAt(0) = nil")
		}
		if _, ok := tag.(*markup.StartTag); !ok || !tag.IsUnregistered() {
			t.Errorf("TagAt(0) = %v, want unregistered start tag", tag)
		}
		if diff := cmp.Diff(tagInfo{"unregistered start tag", "", 0, 6}, humanizeTag(tag)); diff != "" {
			t.Errorf("TagAt(0) mismatch (-want +got):\n%s", diff)
		}
		messages := collector.Messages()
		if len(messages) != 1 || !strings.Contains(messages[0], "does not match a registered tag type") {
			t.Errorf("diagnostics = %q, want one unregistered tag message", messages)
		}
	})

	t.Run("end tag", func(t *testing.T) {
		source := markup.NewSource("</1>", nil)
		tag := source.TagAt(0)
		if _, ok := tag.(*markup.EndTag); !ok || tag.TagType() != markup.EndTagTypeUNREGISTERED {
			t.Errorf("TagAt(0) = %v, want unregistered end tag", tag)
		}
	})

	t.Run("no closing '>'", func(t *testing.T) {
		source := markup.NewSource("a <1 b", nil)
		if tag := source.TagAt(2); tag != nil {
			t.Errorf("TagAt(2) = %v, want nil", tag)
		}
		if tags := source.FullSequentialParse(); len(tags) != 0 {
			t.Errorf("FullSequentialParse() = %v, want none", tags)
		}
	})

	t.Run("unterminated start tag is logged", func(t *testing.T) {
		collector := &diaglog.Collector{}
		source := markup.NewSource("<div class=x", &markup.SourceOptions{Logger: collector, URL: "t.html"})
		if tag := source.TagAt(0); tag != nil {
			t.Errorf("TagAt(0) = %v, want nil", tag)
		}
		messages := collector.Messages()
		if len(messages) != 1 || !strings.Contains(messages[0], "not terminated") || !strings.HasSuffix(messages[0], "t.html@0:0") {
			t.Errorf("diagnostics = %q, want one located termination message", messages)
		}
	})
}

func TestSource_TagAtContract(t *testing.T) {
	source := markup.NewSource(mixedDocument, nil)
	for p := -1; p <= source.Len()+1; p++ {
		if tag := source.TagAt(p); tag != nil && tag.Begin() != p {
			t.Errorf("TagAt(%d) = %v, starts elsewhere", p, tag)
		}
	}
}

func TestSource_ClearCacheIdempotence(t *testing.T) {
	source := markup.NewSource(mixedDocument, nil)
	before := make(map[int]tagInfo)
	for p := 0; p < source.Len(); p++ {
		if tag := source.TagAt(p); tag != nil {
			before[p] = humanizeTag(tag)
		}
	}
	source.ClearCache()
	if got := source.Cache().Len(); got != 0 {
		t.Fatalf("Cache().Len() = %d after ClearCache, want 0", got)
	}
	after := make(map[int]tagInfo)
	for p := source.Len() - 1; p >= 0; p-- {
		if tag := source.TagAt(p); tag != nil {
			after[p] = humanizeTag(tag)
		}
	}
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("tags differ after ClearCache (-before +after):\n%s", diff)
	}
}

func TestSource_IgnoreWhenParsing(t *testing.T) {
	const doc = "<p>{{ <b> }}</p>"

	t.Run("hides tags in the ignored span", func(t *testing.T) {
		source := markup.NewSource(doc, nil)
		if tag := source.NextStartTag(1, "b"); tag == nil || tag.Begin() != 6 {
			t.Fatalf("NextStartTag(1, b) = %v, want tag at 6", tag)
		}
		source.FullSequentialParse()
		source.IgnoreWhenParsing(3, 12)
		if source.IsFullSequentialParsed() {
			t.Errorf("IsFullSequentialParsed() = true after IgnoreWhenParsing")
		}
		if tag := source.NextStartTag(0, "b"); tag != nil {
			t.Errorf("NextStartTag(0, b) = %v, want nil", tag)
		}
		if tag := source.NextTag(1); tag == nil || tag.Begin() != 12 {
			t.Errorf("NextTag(1) = %v, want </p> at 12", tag)
		}
		if got := len(source.FullSequentialParse()); got != 2 {
			t.Errorf("len(FullSequentialParse()) = %d, want 2", got)
		}
	})

	t.Run("panics during a full sequential parse", func(t *testing.T) {
		registry := markup.NewDefaultRegistry()
		registry.Register(&ignoringTagType{markup.NewTagTypeBase("ignoring", "<{", "}>", false)})
		source := markup.NewSource("<{ x }>", &markup.SourceOptions{Registry: registry})
		defer func() {
			if recover() == nil {
				t.Errorf("FullSequentialParse() did not panic")
			}
		}()
		source.FullSequentialParse()
	})

	t.Run("panics on an invalid span", func(t *testing.T) {
		source := markup.NewSource(doc, nil)
		defer func() {
			if recover() == nil {
				t.Errorf("IgnoreWhenParsing(5, 100) did not panic")
			}
		}()
		source.IgnoreWhenParsing(5, 100)
	})
}

// ignoringTagType marks its own span as ignored while being constructed
type ignoringTagType struct {
	markup.TagTypeBase
}

func (t *ignoringTagType) ConstructTagAt(source *markup.Source, pos int) markup.Tag {
	source.IgnoreWhenParsing(pos, pos+2)
	return nil
}

// zeroLengthTagType constructs empty tags
type zeroLengthTagType struct {
	markup.TagTypeBase
}

func (t *zeroLengthTagType) ConstructTagAt(source *markup.Source, pos int) markup.Tag {
	return markup.NewStartTag(source, pos, pos, t, "")
}

// failingTagType panics with an error other than a bounds error
type failingTagType struct {
	markup.TagTypeBase
}

func (t *failingTagType) ConstructTagAt(source *markup.Source, pos int) markup.Tag {
	panic("construction failed")
}

func TestSource_ZeroLengthTags(t *testing.T) {
	registry := markup.NewDefaultRegistry()
	registry.Register(&zeroLengthTagType{markup.NewTagTypeBase("zero length", "<@", ">", false)})
	expected := []tagInfo{
		{"zero length", "", 0, 0},
		{"normal start tag", "p", 5, 8},
	}

	done := make(chan []markup.Tag, 1)
	go func() {
		done <- markup.NewSource("<@ x <p>", &markup.SourceOptions{Registry: registry}).FullSequentialParse()
	}()
	select {
	case tags := <-done:
		if diff := cmp.Diff(expected, humanizeTags(tags)); diff != "" {
			t.Errorf("FullSequentialParse() mismatch (-want +got):\n%s", diff)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("FullSequentialParse() did not return")
	}

	onDemand := tagsOnDemand(markup.NewSource("<@ x <p>", &markup.SourceOptions{Registry: registry}))
	if diff := cmp.Diff(expected, humanizeTags(onDemand)); diff != "" {
		t.Errorf("parse on demand mismatch (-want +got):\n%s", diff)
	}
}

func TestSource_LoggerRestoredAfterPanic(t *testing.T) {
	registry := markup.NewDefaultRegistry()
	failing := &failingTagType{markup.NewTagTypeBase("failing", "<{", "}>", false)}
	registry.Register(failing)
	collector := &diaglog.Collector{}
	source := markup.NewSource("<{ x <p>", &markup.SourceOptions{
		Registry:      registry,
		Logger:        collector,
		IgnoringTypes: []markup.TagType{failing},
	})
	func() {
		defer func() {
			if recover() == nil {
				t.Errorf("TagAt(5) did not panic")
			}
		}()
		source.TagAt(5)
	}()
	if source.Logger() != markup.Logger(collector) {
		t.Errorf("Logger() = %v, want the collector", source.Logger())
	}
}

func TestSource_ResultsAreCopies(t *testing.T) {
	source := markup.NewSource("<a><b></b>", nil)
	tags := source.FullSequentialParse()
	first := tags[0]
	tags[1] = nil
	source.AllTags()[2] = nil
	source.RegisteredTags()[1] = nil
	source.AllStartTags()[1] = nil
	next := first.FindNextTag()
	if next == nil || next.Begin() != 3 {
		t.Fatalf("FindNextTag() = %v, want <b> at 3", next)
	}
	if next.FindNextTag() == nil {
		t.Errorf("FindNextTag() = nil, want </b>")
	}
	if got := len(source.AllStartTags()); got != 2 || source.AllStartTags()[1] == nil {
		t.Errorf("AllStartTags() changed by a caller")
	}
}

// overrunTagType reads past the end of the text
type overrunTagType struct {
	markup.TagTypeBase
}

func (t *overrunTagType) ConstructTagAt(source *markup.Source, pos int) markup.Tag {
	_ = source.Text()[pos+100]
	return nil
}

func TestSource_ConstructionOverrun(t *testing.T) {
	registry := markup.NewDefaultRegistry()
	registry.Register(&overrunTagType{markup.NewTagTypeBase("overrun", "<x", ">", false)})
	collector := &diaglog.Collector{}
	source := markup.NewSource("<x>", &markup.SourceOptions{Registry: registry, Logger: collector})
	tag := source.TagAt(0)
	if tag == nil || tag.TagType() != markup.StartTagTypeNORMAL || tag.Name() != "x" {
		t.Errorf("TagAt(0) = %v, want normal start tag x", tag)
	}
	messages := collector.Messages()
	if len(messages) != 1 || !strings.Contains(messages[0], "overrun construction aborted") {
		t.Errorf("diagnostics = %q, want one aborted construction", messages)
	}
}

func TestSource_Names(t *testing.T) {
	tests := []struct {
		doc  string
		want tagInfo
	}{
		{`<DIV Class=X>`, tagInfo{"normal start tag", "div", 0, 13}},
		{`<ÄB>`, tagInfo{"normal start tag", "äb", 0, 5}},
		{`</Div >`, tagInfo{"normal end tag", "div", 0, 7}},
		{`<a title="x>y">`, tagInfo{"normal start tag", "a", 0, 15}},
		{`<?xml version="1.0"?>`, tagInfo{"XML declaration", "?xml", 0, 21}},
		{`<?xml-stylesheet href="a"?>`, tagInfo{"XML processing instruction", "?xml-stylesheet", 0, 27}},
		{`<!ENTITY x "y">`, tagInfo{"markup declaration", "!entity", 0, 15}},
		{`<%-- x --%>`, tagInfo{"common server comment", "%--", 0, 11}},
	}
	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			tag := markup.NewSource(tt.doc, nil).TagAt(0)
			if tag == nil {
				t.Fatalf("TagAt(0) = nil")
			}
			if diff := cmp.Diff(tt.want, humanizeTag(tag)); diff != "" {
				t.Errorf("TagAt(0) mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("well-known names", func(t *testing.T) {
		source := markup.NewSource("<P><custom-el>", nil)
		if got := source.TagAt(0).ElementName(); got != markup.ElementNameP {
			t.Errorf("ElementName() = %v, want ElementNameP", got)
		}
		if got := source.TagAt(3).ElementName(); got != markup.ElementNameOther {
			t.Errorf("ElementName() = %v, want ElementNameOther", got)
		}
	})

	t.Run("empty element tag", func(t *testing.T) {
		source := markup.NewSource("<br/><br >", nil)
		if st, ok := source.TagAt(0).(*markup.StartTag); !ok || !st.IsEmptyElementTag() {
			t.Errorf("<br/> IsEmptyElementTag() = false")
		}
		if st, ok := source.TagAt(5).(*markup.StartTag); !ok || st.IsEmptyElementTag() {
			t.Errorf("<br > IsEmptyElementTag() = true")
		}
	})
}

func TestSource_TagText(t *testing.T) {
	source := markup.NewSource("ab\n<p class=x>", &markup.SourceOptions{URL: "doc.html"})
	tag := source.TagAt(3)
	if tag == nil {
		t.Fatalf("TagAt(3) = nil")
	}
	if diff := cmp.Diff("<p class=x>", tag.Text()); diff != "" {
		t.Errorf("Text() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(tag.Text(), tag.Tidy()); diff != "" {
		t.Errorf("Tidy() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(`"<p class=x>" at doc.html@1:0`, tag.Span().Describe()); diff != "" {
		t.Errorf("Span().Describe() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewStartTag_InvalidSpan(t *testing.T) {
	source := markup.NewSource("<p>", nil)
	defer func() {
		if recover() == nil {
			t.Errorf("NewStartTag() did not panic")
		}
	}()
	markup.NewStartTag(source, 2, 10, markup.StartTagTypeNORMAL, "p")
}
