package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/spinnegraph/spinne/internal/tscommon"
	"github.com/spinnegraph/spinne/pkg/types"
)

// walkImports builds the imports_map from a file's top-level
// ImportDeclaration nodes and collects any re-export specs from top-level
// ExportDeclaration nodes that name a `source`.
func walkImports(root *tree_sitter.Node, content []byte) (map[string]types.ImportRecord, []ReexportSpec) {
	imports := make(map[string]types.ImportRecord)
	var reexports []ReexportSpec

	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "import_statement":
			addImportStatement(child, content, imports)
		case "export_statement":
			addReexports(child, content, &reexports)
		}
	}

	return imports, reexports
}

func addImportStatement(node *tree_sitter.Node, content []byte, imports map[string]types.ImportRecord) {
	source := node.ChildByFieldName("source")
	if source == nil {
		return
	}
	specifier := tscommon.StripQuotes(tscommon.NodeText(source, content))

	clause := firstChildOfKind(node, "import_clause")
	if clause == nil {
		return // side-effect-only import, e.g. `import './styles.css'`
	}

	for i := uint(0); i < clause.ChildCount(); i++ {
		inner := clause.Child(i)
		if inner == nil {
			continue
		}
		switch inner.Kind() {
		case "identifier":
			name := tscommon.NodeText(inner, content)
			imports[name] = types.ImportRecord{LocalName: name, ModuleSpecifier: specifier, Kind: types.Default}
		case "named_imports":
			addNamedImports(inner, content, specifier, imports)
		case "namespace_import":
			addNamespaceImport(inner, content, specifier, imports)
		}
	}
}

func addNamedImports(node *tree_sitter.Node, content []byte, specifier string, imports map[string]types.ImportRecord) {
	for i := uint(0); i < node.ChildCount(); i++ {
		spec := node.Child(i)
		if spec == nil || spec.Kind() != "import_specifier" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		importedName := tscommon.NodeText(nameNode, content)
		localName := importedName
		record := types.ImportRecord{ImportedName: importedName, ModuleSpecifier: specifier, Kind: types.Named}

		if aliasNode := spec.ChildByFieldName("alias"); aliasNode != nil {
			localName = tscommon.NodeText(aliasNode, content)
		}
		record.LocalName = localName
		imports[localName] = record
	}
}

func addNamespaceImport(node *tree_sitter.Node, content []byte, specifier string, imports map[string]types.ImportRecord) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		nameNode = firstChildOfKind(node, "identifier")
	}
	if nameNode == nil {
		return
	}
	name := tscommon.NodeText(nameNode, content)
	imports[name] = types.ImportRecord{LocalName: name, ModuleSpecifier: specifier, Kind: types.Namespace}
}

// addReexports handles `export { X } from './foo'` and `export * from './foo'`.
func addReexports(node *tree_sitter.Node, content []byte, reexports *[]ReexportSpec) {
	source := node.ChildByFieldName("source")
	if source == nil {
		return // not a re-export (local export, or declaration export)
	}
	specifier := tscommon.StripQuotes(tscommon.NodeText(source, content))

	if clause := firstChildOfKind(node, "export_clause"); clause != nil {
		for i := uint(0); i < clause.ChildCount(); i++ {
			spec := clause.Child(i)
			if spec == nil || spec.Kind() != "export_specifier" {
				continue
			}
			nameNode := spec.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			originalName := tscommon.NodeText(nameNode, content)
			exportedName := originalName
			if aliasNode := spec.ChildByFieldName("alias"); aliasNode != nil {
				exportedName = tscommon.NodeText(aliasNode, content)
			}
			*reexports = append(*reexports, ReexportSpec{
				ExportedName:    exportedName,
				OriginalName:    originalName,
				ModuleSpecifier: specifier,
			})
		}
		return
	}

	// `export * from './foo'` has no export_clause child.
	*reexports = append(*reexports, ReexportSpec{ModuleSpecifier: specifier, IsStar: true})
}

func firstChildOfKind(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}
