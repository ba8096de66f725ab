// Package importer builds surface node sequences from plain text formats,
// used to seed documents in the demo host and in tests.
package importer

import (
	"bufio"
	"strings"

	"github.com/pstuifzand/block-engine/internal/block"
	"github.com/pstuifzand/block-engine/internal/surface"
)

// ParseIndented converts indentation-based plain text into a flat surface
// sequence. Each non-empty line becomes a paragraph block; a line ending in
// ':' becomes a toggle header. Two spaces or one tab per indentation level.
// Level jumps are clamped so the result always satisfies the single-step
// depth invariant.
func ParseIndented(content string) []surface.Node {
	scanner := bufio.NewScanner(strings.NewReader(content))

	// parents[level] is the block id of the last block seen at that level
	var parents []string
	var nodes []surface.Node
	prevLevel := -1

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		level := indentLevel(line)
		text := strings.TrimSpace(line)

		// Clamp jumps deeper than one level
		if level > prevLevel+1 {
			level = prevLevel + 1
		}
		if level < 0 {
			level = 0
		}

		kind := block.KindParagraph
		if strings.HasSuffix(text, ":") {
			kind = block.KindToggleHeader
			text = strings.TrimSuffix(text, ":")
		}

		parentID := block.RootID
		if level > 0 {
			parentID = parents[level-1]
		}

		id := block.NewID()
		nodes = append(nodes, surface.Node{
			Kind: kind,
			Attrs: surface.Attrs{
				BlockID:       id,
				ParentBlockID: parentID,
				Level:         level,
			},
			Content: text,
		})

		parents = parents[:level]
		parents = append(parents, id)
		prevLevel = level
	}

	return nodes
}

// indentLevel counts leading indentation: one level per tab or per two
// spaces
func indentLevel(line string) int {
	spaces := 0
	tabs := 0
	for _, r := range line {
		if r == ' ' {
			spaces++
		} else if r == '\t' {
			tabs++
		} else {
			break
		}
	}
	return tabs + spaces/2
}
