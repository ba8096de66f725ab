package command

import (
	"fmt"

	"github.com/pstuifzand/block-engine/internal/block"
)

// textContent reads a block's payload as text. Payloads are opaque; text
// commands only operate on string payloads, with nil counting as empty.
func textContent(n *block.Node) (string, error) {
	if n.Content == nil {
		return "", nil
	}
	s, ok := n.Content.(string)
	if !ok {
		return "", fmt.Errorf("block %q content is not text", n.ID)
	}
	return s, nil
}

// InsertText splices text into a block's string content at a byte offset.
type InsertText struct {
	BlockID string
	Text    string
	Offset  int
}

// Name implements Command
func (c *InsertText) Name() string { return "insert-text" }

// Apply implements Command
func (c *InsertText) Apply(t *block.Tree) error {
	node := t.Node(c.BlockID)
	if node == nil {
		return fmt.Errorf("insert text: %w: %q", ErrNotFound, c.BlockID)
	}
	text, err := textContent(node)
	if err != nil {
		return fmt.Errorf("insert text: %w", err)
	}
	if c.Offset < 0 || c.Offset > len(text) {
		return fmt.Errorf("insert text: offset %d out of range on block %q", c.Offset, c.BlockID)
	}
	node.Content = text[:c.Offset] + c.Text + text[c.Offset:]
	return nil
}

// Invert implements Command
func (c *InsertText) Invert() Command {
	return &DeleteText{
		BlockID:     c.BlockID,
		From:        c.Offset,
		To:          c.Offset + len(c.Text),
		DeletedText: c.Text,
	}
}

// DeleteText removes the byte range [From,To) from a block's string content.
// DeletedText carries the removed characters for the inverse; Apply fills it
// in when the caller left it empty.
type DeleteText struct {
	BlockID     string
	From        int
	To          int
	DeletedText string
}

// Name implements Command
func (c *DeleteText) Name() string { return "delete-text" }

// Apply implements Command
func (c *DeleteText) Apply(t *block.Tree) error {
	node := t.Node(c.BlockID)
	if node == nil {
		return fmt.Errorf("delete text: %w: %q", ErrNotFound, c.BlockID)
	}
	text, err := textContent(node)
	if err != nil {
		return fmt.Errorf("delete text: %w", err)
	}
	if c.From < 0 || c.To < c.From || c.To > len(text) {
		return fmt.Errorf("delete text: invalid range [%d,%d) on block %q", c.From, c.To, c.BlockID)
	}
	c.DeletedText = text[c.From:c.To]
	node.Content = text[:c.From] + text[c.To:]
	return nil
}

// Invert implements Command
func (c *DeleteText) Invert() Command {
	return &InsertText{
		BlockID: c.BlockID,
		Text:    c.DeletedText,
		Offset:  c.From,
	}
}
