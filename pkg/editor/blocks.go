package editor

import "golang.org/x/net/html"

// InsertNext adds an empty paragraph after the active block (or at the end
// when nothing is active), moves the caret into it and opens the slash
// menu there.
func (e *Editor) InsertNext() bool {
	root := e.doc.root
	para := newElement("p")
	if active := e.ActiveBlock(); active != nil {
		insertAfter(para, active)
	} else {
		root.AppendChild(para)
	}
	e.placeCaret(Position{Node: para, Offset: 0})
	e.afterEdit()
	e.openSlashMenu(para)
	return true
}

// DeleteBlock removes the active block. The caret moves to the following
// block, or the preceding one, or is cleared when the document is empty.
func (e *Editor) DeleteBlock() bool {
	block := e.ActiveBlock()
	if block == nil {
		return false
	}
	next := block.NextSibling
	if next == nil {
		next = block.PrevSibling
	}
	detach(block)
	if d, ok := e.drag.(Dragging); ok && contains(block, d.Source) {
		e.drag = DragIdle{}
	}
	if next != nil {
		e.placeCaret(caretAtStart(next))
	} else {
		e.sel = Selection{}
	}
	e.afterEdit()
	return true
}

// DuplicateBlock inserts a deep copy of the active block right after it
func (e *Editor) DuplicateBlock() bool {
	block := e.ActiveBlock()
	if block == nil {
		return false
	}
	insertAfter(cloneNode(block), block)
	e.afterEdit()
	return true
}

// MoveUp swaps the active block with its previous sibling
func (e *Editor) MoveUp() bool {
	block := e.ActiveBlock()
	if block == nil || block.PrevSibling == nil {
		return false
	}
	prev := block.PrevSibling
	detach(block)
	e.doc.root.InsertBefore(block, prev)
	e.afterEdit()
	return true
}

// MoveDown swaps the active block with its next sibling
func (e *Editor) MoveDown() bool {
	block := e.ActiveBlock()
	if block == nil || block.NextSibling == nil {
		return false
	}
	next := block.NextSibling
	detach(block)
	insertAfter(block, next)
	e.afterEdit()
	return true
}

// moveBlock reinserts block before or after target
func (e *Editor) moveBlock(block, target *html.Node, pos DropPosition) {
	detach(block)
	if pos == DropBefore {
		e.doc.root.InsertBefore(block, target)
	} else {
		insertAfter(block, target)
	}
}
