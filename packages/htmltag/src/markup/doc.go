// Package markup recognizes tags in a Source and caches them by position.
//
// A Registry maps start delimiters to tag types. When several types match at a position, the
// one with the longest start delimiter wins, and among types with the same delimiter the most
// recently registered one. Comments and CDATA sections hide the markup they enclose: a '<'
// inside them never starts a non-server tag.
//
//	source := markup.NewSource("<p>Hello<!-- <b> --></p>", nil)
//	for tag := source.NextTag(0); tag != nil; tag = tag.FindNextTag() {
//		fmt.Println(tag)
//	}
package markup
