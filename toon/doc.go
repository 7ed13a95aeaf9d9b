// Package toon implements TOON (Token-Oriented Object Notation), a compact,
// indentation-based codec for the JSON data model designed to minimize token
// count when the text is consumed by language models.
//
// TOON is:
//   - Token-cheap (no braces, unquoted strings where safe, tabular arrays)
//   - Lossless (strings, key order, and decimal literals round-trip exactly)
//   - Line-oriented (encode yields lines lazily, decode consumes them
//     one at a time, including from channels and readers)
//   - Strict-checkable (declared lengths, field counts, duplicate keys)
//
// # Data Model
//
// Scalars: null, bool, number (decimal-preserving), string
// Containers: array, object (ordered keys)
//
// # Syntax
//
// Object:        key: value          (members indented under "key:")
// Inline array:  tags[3]: a,b,c
// Tabular array: users[2]{id,name}:
//                  1,Alice
//                  2,Bob
// List array:    items[2]:
//                  - first
//                  - second
// Folded keys:   a.b.c: 1            (with KeyFoldingSafe / ExpandPaths)
//
// # Example
//
//	v := toon.Obj(
//		toon.F("name", toon.Str("Alice")),
//		toon.F("tags", toon.Arr(toon.Str("a"), toon.Str("b"))),
//	)
//	text := toon.Encode(v)
//	back, err := toon.Decode(text)
package toon
