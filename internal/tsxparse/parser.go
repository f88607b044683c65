// Package tsxparse parses TSX and TS source into Tree-sitter syntax trees
// with source locations retained. Parse failures are reported as
// types.ParseErrorRecord and never abort the pipeline.
package tsxparse

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/spinnegraph/spinne/pkg/types"
)

// ParsedFile holds a parsed Tree-sitter syntax tree with its source
// content. Callers must call Close when done with the file.
type ParsedFile struct {
	AbsolutePath string
	RelativePath string
	Content      []byte
	Tree         *tree_sitter.Tree
}

// Close releases the underlying Tree-sitter tree.
func (f *ParsedFile) Close() {
	if f != nil && f.Tree != nil {
		f.Tree.Close()
	}
}

// Parser holds pooled Tree-sitter parsers for TS and TSX grammars.
// Tree-sitter parsers are not thread-safe, so parse operations are
// serialized via a mutex; resulting trees are safe to read concurrently.
type Parser struct {
	mu        sync.Mutex
	tsParser  *tree_sitter.Parser
	tsxParser *tree_sitter.Parser
}

// NewParser creates parsers for the TS and TSX grammars.
func NewParser() (*Parser, error) {
	tsParser := tree_sitter.NewParser()
	tsLang := tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	if err := tsParser.SetLanguage(tsLang); err != nil {
		tsParser.Close()
		return nil, fmt.Errorf("set typescript language: %w", err)
	}

	tsxParser := tree_sitter.NewParser()
	tsxLang := tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	if err := tsxParser.SetLanguage(tsxLang); err != nil {
		tsParser.Close()
		tsxParser.Close()
		return nil, fmt.Errorf("set tsx language: %w", err)
	}

	return &Parser{tsParser: tsParser, tsxParser: tsxParser}, nil
}

// Close releases all parser resources.
func (p *Parser) Close() {
	if p.tsParser != nil {
		p.tsParser.Close()
	}
	if p.tsxParser != nil {
		p.tsxParser.Close()
	}
}

// ParseContent parses content using the grammar selected by ext (".tsx" vs
// anything else, which is treated as plain TypeScript). The returned tree
// must be closed by the caller.
func (p *Parser) ParseContent(ext string, content []byte) (*tree_sitter.Tree, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	parser := p.tsParser
	if strings.EqualFold(ext, ".tsx") {
		parser = p.tsxParser
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter parse returned nil")
	}
	return tree, nil
}

// ParseFile reads and parses a single absolute file path, relative to
// projectRoot. On success it returns a ParsedFile the caller must Close. On
// a read or syntax failure it returns a types.ParseErrorRecord describing
// the failure; the pipeline logs it, skips the file, and continues.
func (p *Parser) ParseFile(projectRoot, absPath string) (*ParsedFile, *types.ParseErrorRecord) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, &types.ParseErrorRecord{File: absPath, Message: err.Error()}
	}

	relPath, err := filepath.Rel(projectRoot, absPath)
	if err != nil {
		relPath = absPath
	}
	relPath = filepath.ToSlash(relPath)

	ext := strings.ToLower(filepath.Ext(absPath))
	tree, err := p.ParseContent(ext, content)
	if err != nil {
		return nil, &types.ParseErrorRecord{File: relPath, Message: err.Error()}
	}

	if tree.RootNode().HasError() {
		line, col := firstErrorPosition(tree.RootNode())
		tree.Close()
		return nil, &types.ParseErrorRecord{File: relPath, Line: line, Column: col, Message: "syntax error"}
	}

	return &ParsedFile{
		AbsolutePath: absPath,
		RelativePath: relPath,
		Content:      content,
		Tree:         tree,
	}, nil
}

// firstErrorPosition finds the first ERROR node in the tree and returns its
// 1-based line, 0-based column.
func firstErrorPosition(node *tree_sitter.Node) (line, col int) {
	if node == nil {
		return 1, 0
	}
	if node.IsError() {
		pos := node.StartPosition()
		return int(pos.Row) + 1, int(pos.Column)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.HasError() {
			return firstErrorPosition(child)
		}
	}
	pos := node.StartPosition()
	return int(pos.Row) + 1, int(pos.Column)
}

// CloseAll closes all trees in a slice of ParsedFile. Safe with nil/empty.
func CloseAll(files []*ParsedFile) {
	for _, f := range files {
		f.Close()
	}
}
