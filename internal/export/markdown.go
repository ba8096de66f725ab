// Package export renders a block tree to external formats. Only a one-way
// markdown rendering lives here; persistence of application data is out of
// scope for this core.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/pstuifzand/block-engine/internal/block"
	"github.com/pstuifzand/block-engine/internal/surface"
)

// MarkdownString renders the tree as markdown. Headings become '#' lines at
// their depth; everything else becomes an indented bullet (2 spaces per
// level).
func MarkdownString(tree *block.Tree) string {
	var sb strings.Builder
	for _, childID := range tree.Children(tree.RootID) {
		writeBlockAsMarkdown(&sb, tree, childID, 0)
	}
	return sb.String()
}

// ExportToMarkdown renders the tree as markdown and writes it to a file
func ExportToMarkdown(tree *block.Tree, filePath string) error {
	content := MarkdownString(tree)
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}

// writeBlockAsMarkdown recursively writes a block and its children.
// depth determines the indentation level.
func writeBlockAsMarkdown(sb *strings.Builder, tree *block.Tree, id string, depth int) {
	node := tree.Node(id)
	if node == nil {
		return
	}

	text := surface.TextOf(node.Content)

	// Skip empty blocks but still render their children
	if strings.TrimSpace(text) == "" {
		for _, childID := range node.Children {
			writeBlockAsMarkdown(sb, tree, childID, depth)
		}
		return
	}

	switch node.Kind {
	case block.KindHeading:
		level := depth + 1
		if level > 6 {
			level = 6
		}
		sb.WriteString(strings.Repeat("#", level))
		sb.WriteString(" ")
		sb.WriteString(text)
	case block.KindCodeBlock:
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString("`")
		sb.WriteString(text)
		sb.WriteString("`")
	default:
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString("- ")
		sb.WriteString(text)
	}
	sb.WriteString("\n")

	for _, childID := range node.Children {
		writeBlockAsMarkdown(sb, tree, childID, depth+1)
	}
}
