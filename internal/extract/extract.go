// Package extract walks one file's Tree-sitter AST and produces its imports
// table, JSX usage sites, and top-level component-candidate declarations.
// Module-specifier resolution and component identity assignment happen
// downstream, in internal/resolve and internal/registry/internal/graph.
package extract

import (
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/spinnegraph/spinne/internal/tscommon"
	"github.com/spinnegraph/spinne/internal/tsxparse"
	"github.com/spinnegraph/spinne/pkg/types"
)

// ReexportSpec records `export { X } from './foo'` or `export * from './foo'`.
type ReexportSpec struct {
	ExportedName    string // name visible to importers of this file; "" when IsStar
	OriginalName    string // name as declared in the source module
	ModuleSpecifier string
	IsStar          bool
}

// LocalDefinition is a top-level declaration that can be a React component:
// a function declaration, a variable bound to an arrow/function expression,
// or a named class declaration.
type LocalDefinition struct {
	Name     string
	Exported bool
}

// UsageSite is one JSX opening element found during the walk, with
// resolution deferred: FirstSegment is the dotted tag's first identifier,
// looked up against Imports/LocalDefinitions by the graph builder.
type UsageSite struct {
	ContainingDefName string // local top-level definition name, or a synthesized file-stem name
	TagName           string // normalized dotted form, e.g. "A.B"
	FirstSegment      string
	MemberName        string // portion after the first '.', empty if TagName has no dot
	Props             map[string]int
	HasSpread         bool
	Location          types.Location
	PropValues        map[string]types.PropValue
}

// Extraction is the full per-file output of the JSX Extractor.
type Extraction struct {
	Imports          map[string]types.ImportRecord
	Reexports        []ReexportSpec
	LocalDefinitions []LocalDefinition
	Usages           []UsageSite
}

// Extract walks f's AST and produces its Extraction.
func Extract(f *tsxparse.ParsedFile) *Extraction {
	root := f.Tree.RootNode()
	content := f.Content

	imports, reexports := walkImports(root, content)
	localDefs, defRanges := collectTopLevelDefinitions(root, content)

	fileStem := strings.TrimSuffix(filepath.Base(f.RelativePath), filepath.Ext(f.RelativePath))

	w := &usageWalker{
		content:   content,
		defRanges: defRanges,
		fileStem:  fileStem,
		imports:   imports,
	}
	w.walk(root)

	return &Extraction{
		Imports:          imports,
		Reexports:        reexports,
		LocalDefinitions: localDefs,
		Usages:           w.usages,
	}
}

// definitionRange associates a top-level definition name with the byte span
// of its declaration, used to attribute nested JSX usage sites to their
// containing definition.
type definitionRange struct {
	name       string
	startByte  uint
	endByte    uint
}

// usageWalker walks the full tree (not just top-level) collecting JSX usage
// sites, attributing each to the innermost enclosing top-level definition.
type usageWalker struct {
	content   []byte
	defRanges []definitionRange
	fileStem  string
	imports   map[string]types.ImportRecord
	usages    []UsageSite
}

func (w *usageWalker) walk(node *tree_sitter.Node) {
	tscommon.WalkTree(node, func(n *tree_sitter.Node) {
		switch n.Kind() {
		case "jsx_opening_element", "jsx_self_closing_element":
			if site, ok := w.extractUsage(n); ok {
				w.usages = append(w.usages, site)
			}
		}
	})
}

func (w *usageWalker) containingDefinition(startByte uint) string {
	for _, r := range w.defRanges {
		if startByte >= r.startByte && startByte < r.endByte {
			return r.name
		}
	}
	return w.fileStem
}

func (w *usageWalker) extractUsage(node *tree_sitter.Node) (UsageSite, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return UsageSite{}, false
	}
	tagName := normalizeTagName(nameNode, w.content)
	if tagName == "" {
		return UsageSite{}, false
	}

	firstSegment := tagName
	memberName := ""
	if idx := strings.IndexByte(tagName, '.'); idx >= 0 {
		firstSegment = tagName[:idx]
		memberName = tagName[idx+1:]
	}

	props, values, hasSpread := extractProps(node, w.content)
	pos := node.StartPosition()

	return UsageSite{
		ContainingDefName: w.containingDefinition(node.StartByte()),
		TagName:           tagName,
		FirstSegment:      firstSegment,
		MemberName:        memberName,
		Props:             props,
		HasSpread:         hasSpread,
		Location:          types.Location{Line: int(pos.Row) + 1, Column: int(pos.Column)},
		PropValues:        values,
	}, true
}

// normalizeTagName builds the dotted tag string from a JSX name node:
// `Foo` -> "Foo", `A.B.C` -> "A.B.C", `ns:Name` -> "ns.Name".
func normalizeTagName(node *tree_sitter.Node, content []byte) string {
	switch node.Kind() {
	case "identifier", "jsx_identifier":
		return tscommon.NodeText(node, content)
	case "member_expression", "jsx_member_expression":
		object := node.ChildByFieldName("object")
		property := node.ChildByFieldName("property")
		if object == nil || property == nil {
			return tscommon.NodeText(node, content)
		}
		return normalizeTagName(object, content) + "." + tscommon.NodeText(property, content)
	case "jsx_namespace_name":
		namespace := node.ChildByFieldName("namespace")
		name := node.ChildByFieldName("name")
		if namespace == nil || name == nil {
			return tscommon.NodeText(node, content)
		}
		return tscommon.NodeText(namespace, content) + "." + tscommon.NodeText(name, content)
	default:
		return tscommon.NodeText(node, content)
	}
}
