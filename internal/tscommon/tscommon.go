// Package tscommon provides shared Tree-sitter walking helpers used by the
// JSX extractor and the graph builder. Kept separate from those packages to
// avoid import cycles between them.
package tscommon

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// WalkTree walks a Tree-sitter tree depth-first, calling fn for each node.
func WalkTree(node *tree_sitter.Node, fn func(*tree_sitter.Node)) {
	if node == nil {
		return
	}
	fn(node)
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil {
			WalkTree(child, fn)
		}
	}
}

// NodeText extracts the text content of a Tree-sitter node.
func NodeText(node *tree_sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	return string(content[node.StartByte():node.EndByte()])
}

// StripQuotes removes surrounding quotes from a string literal.
func StripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '`' && s[len(s)-1] == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// IsCapitalized reports whether s begins with an ASCII upper-case letter.
// Capitalized tag names are candidate components; lower-case tags are host
// DOM elements unless explicitly imported.
func IsCapitalized(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c >= 'A' && c <= 'Z'
}
