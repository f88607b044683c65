package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/spinnegraph/spinne/internal/tscommon"
)

// collectTopLevelDefinitions scans root's direct children for declarations
// that can be React components: top-level function declarations, variable
// declarations bound to arrow/function expressions, and named class
// declarations. It also records each definition's byte span so nested JSX
// usage sites can be attributed to their containing definition.
func collectTopLevelDefinitions(root *tree_sitter.Node, content []byte) ([]LocalDefinition, []definitionRange) {
	var defs []LocalDefinition
	var ranges []definitionRange

	add := func(name string, exported bool, start, end uint) {
		defs = append(defs, LocalDefinition{Name: name, Exported: exported})
		ranges = append(ranges, definitionRange{name: name, startByte: start, endByte: end})
	}

	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		processTopLevelStatement(child, content, false, add)
	}

	return defs, ranges
}

func processTopLevelStatement(node *tree_sitter.Node, content []byte, exported bool, add func(name string, exported bool, start, end uint)) {
	switch node.Kind() {
	case "export_statement":
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			processTopLevelStatement(decl, content, true, add)
			return
		}
		if isDefaultExport(node) {
			addDefaultExport(node, content, add)
		}
	case "function_declaration":
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			add(tscommon.NodeText(nameNode, content), exported, node.StartByte(), node.EndByte())
		}
	case "class_declaration":
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			add(tscommon.NodeText(nameNode, content), exported, node.StartByte(), node.EndByte())
		}
	case "lexical_declaration":
		addLexicalComponentDeclarators(node, content, exported, add)
	}
}

func addLexicalComponentDeclarators(node *tree_sitter.Node, content []byte, exported bool, add func(name string, exported bool, start, end uint)) {
	for i := uint(0); i < node.ChildCount(); i++ {
		decl := node.Child(i)
		if decl == nil || decl.Kind() != "variable_declarator" {
			continue
		}
		value := decl.ChildByFieldName("value")
		if value == nil || !isComponentValue(value) {
			continue
		}
		nameNode := decl.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		add(tscommon.NodeText(nameNode, content), exported, node.StartByte(), node.EndByte())
	}
}

// isComponentValue reports whether a variable_declarator's value could be a
// component body: an arrow function or function expression.
func isComponentValue(node *tree_sitter.Node) bool {
	switch node.Kind() {
	case "arrow_function", "function_expression":
		return true
	default:
		return false
	}
}

func isDefaultExport(node *tree_sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		c := node.Child(i)
		if c != nil && c.Kind() == "default" {
			return true
		}
	}
	return false
}

// addDefaultExport handles `export default function Foo(){}` (named,
// contributes "Foo") and `export default () => <jsx/>` (anonymous,
// contributes the canonical name "default").
func addDefaultExport(node *tree_sitter.Node, content []byte, add func(name string, exported bool, start, end uint)) {
	for i := uint(0); i < node.ChildCount(); i++ {
		c := node.Child(i)
		if c == nil {
			continue
		}
		switch c.Kind() {
		case "function_declaration", "class_declaration":
			if nameNode := c.ChildByFieldName("name"); nameNode != nil {
				add(tscommon.NodeText(nameNode, content), true, node.StartByte(), node.EndByte())
				return
			}
		case "arrow_function", "function_expression", "identifier", "call_expression":
			add("default", true, node.StartByte(), node.EndByte())
			return
		}
	}
}
