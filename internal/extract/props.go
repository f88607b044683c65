package extract

import (
	"strconv"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/spinnegraph/spinne/internal/tscommon"
	"github.com/spinnegraph/spinne/pkg/types"
)

// extractProps walks a JSX opening element's attribute children, producing
// a name -> occurrence-count multiset (for Edge.PropUsage accumulation) and
// a sample tagged-sum value per name. A JSXSpreadAttribute sets hasSpread
// and is not enumerated by name.
func extractProps(node *tree_sitter.Node, content []byte) (map[string]int, map[string]types.PropValue, bool) {
	counts := make(map[string]int)
	values := make(map[string]types.PropValue)
	hasSpread := false

	for i := uint(0); i < node.ChildCount(); i++ {
		attr := node.Child(i)
		if attr == nil {
			continue
		}
		switch attr.Kind() {
		case "jsx_attribute":
			nameNode := attr.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			name := tscommon.NodeText(nameNode, content)
			counts[name]++
			values[name] = attributeValue(attr, content)
		case "jsx_spread_attribute":
			hasSpread = true
		}
	}

	return counts, values, hasSpread
}

// attributeValue extracts the duck-typed value of a single JSXAttribute.
func attributeValue(attr *tree_sitter.Node, content []byte) types.PropValue {
	value := attr.ChildByFieldName("value")
	if value == nil {
		return types.PropValue{Kind: types.PropBool, Bool: true}
	}

	switch value.Kind() {
	case "string":
		return types.PropValue{Kind: types.PropString, String: tscommon.StripQuotes(tscommon.NodeText(value, content))}
	case "jsx_expression_container":
		return expressionValue(unwrapExpressionContainer(value), content)
	default:
		return types.PropValue{Kind: types.PropOpaque, Opaque: "(" + value.Kind() + ")"}
	}
}

func unwrapExpressionContainer(container *tree_sitter.Node) *tree_sitter.Node {
	for i := uint(0); i < container.ChildCount(); i++ {
		child := container.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "{", "}":
			continue
		default:
			return child
		}
	}
	return nil
}

func expressionValue(expr *tree_sitter.Node, content []byte) types.PropValue {
	if expr == nil {
		return types.PropValue{Kind: types.PropOpaque, Opaque: "(empty)"}
	}

	switch expr.Kind() {
	case "string":
		return types.PropValue{Kind: types.PropString, String: tscommon.StripQuotes(tscommon.NodeText(expr, content))}
	case "number":
		n, _ := strconv.ParseFloat(tscommon.NodeText(expr, content), 64)
		return types.PropValue{Kind: types.PropNumber, Number: n}
	case "true":
		return types.PropValue{Kind: types.PropBool, Bool: true}
	case "false":
		return types.PropValue{Kind: types.PropBool, Bool: false}
	default:
		return types.PropValue{Kind: types.PropOpaque, Opaque: "(" + expr.Kind() + ")"}
	}
}
