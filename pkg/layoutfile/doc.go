// Package layoutfile reads and writes layout documents and baked results.
//
// # Overview
//
// A layout document describes either a tree of nodes or a flow of items in
// JSON, TOML or YAML. Documents are the on-disk and on-the-wire form of a
// [layout.Node] tree; a [Result] is the serialized form of a bake, consumed
// by the render sinks, the cache and the HTTP API.
//
// # Tree documents
//
//	{
//	  "root": {
//	    "name": "screen", "width": 80, "height": 24,
//	    "orientation": "vertical", "padding": 1,
//	    "children": [
//	      {"name": "header", "height": 3},
//	      {"name": "body"},
//	      {"name": "logo", "aspect": "16:9"}
//	    ]
//	  }
//	}
//
// A dimension is either a pixel count or the string "stretch". An omitted
// dimension stretches. "aspect" declares a fixed aspect ratio and overrides
// both dimensions. A node without a name is a spacer: it takes space but is
// not part of the result.
//
// The same document in TOML:
//
//	[root]
//	name = "screen"
//	width = 80
//	height = 24
//	orientation = "vertical"
//
//	[[root.children]]
//	name = "header"
//	height = 3
//
// # Flow documents
//
//	{
//	  "flow": {
//	    "name": "words", "width": 20, "height": 10,
//	    "item_padding": 1, "overflow": "contain",
//	    "items": [
//	      {"name": "hello", "width": 5, "height": 1},
//	      {"break": true},
//	      {"name": "world", "width": 5, "height": 1}
//	    ]
//	  }
//	}
//
// # Reading and writing
//
// Use [Import] / [Export] for files (the format follows the extension) or
// [Read] / [Write] with an explicit [Format]. [Document.Bake] bakes a
// document into a [Result].
package layoutfile
