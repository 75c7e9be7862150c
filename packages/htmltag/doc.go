// Package htmltag provides a tag recognition and position-indexed caching engine for HTML and
// related markup.
//
// The engine recognizes tags as lexical spans, not as a document tree. It can be driven in two
// ways: one query at a time ("parse on demand"), or with a single left-to-right pass over the
// whole document ("full sequential parse") whose results are cached and make every later
// query a lookup.
//
// Main sub-packages:
//
//   - src/markup: Source, ParseText, TagType, Registry, Cache and the Tag model
//   - src/util: source files and row/column locations
//   - src/diaglog: adapters from zerolog, zap and the standard log package to markup.Logger
//   - src/config: tagscan configuration and YAML tag type definitions
//
// Built-in tag types (from src/markup):
//
//	Start tag types:
//	  - StartTagTypeNORMAL                     <name ...>
//	  - StartTagTypeCOMMENT                    <!-- ... -->
//	  - StartTagTypeCDATA_SECTION              <![CDATA[ ... ]]>
//	  - StartTagTypeDOCTYPE_DECLARATION        <!DOCTYPE ...>
//	  - StartTagTypeMARKUP_DECLARATION         <!ELEMENT ...>, <!ATTLIST ...>, <!ENTITY ...>, <!NOTATION ...>
//	  - StartTagTypeXML_DECLARATION            <?xml ... ?>
//	  - StartTagTypeXML_PROCESSING_INSTRUCTION <?target ... ?>
//	  - StartTagTypeSERVER_COMMON              <% ... %>
//	  - StartTagTypeSERVER_COMMON_COMMENT      <%-- ... --%>
//
//	End tag types:
//	  - EndTagTypeNORMAL                       </name>
//
// Tags matching no registered type are returned as StartTagTypeUNREGISTERED or
// EndTagTypeUNREGISTERED tags reaching to the next '>'.
package htmltag
