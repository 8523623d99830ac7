package worldcache

import "github.com/oriumgames/isotile/pos"

// listNode is one entry in the intrusive doubly-linked recency list.
type listNode struct {
	pos        pos.ChunkPos
	prev, next *listNode
}

// lruList is a minimal intrusive doubly-linked list tracking chunk
// recency, front being most-recently-used. Kept separate from the
// cache's map so touch/evict are O(1) without reslicing.
type lruList struct {
	front, back *listNode
}

func newLRUList() *lruList {
	return &lruList{}
}

func (l *lruList) pushFront(p pos.ChunkPos) *listNode {
	n := &listNode{pos: p}
	l.linkFront(n)
	return n
}

func (l *lruList) linkFront(n *listNode) {
	n.prev = nil
	n.next = l.front
	if l.front != nil {
		l.front.prev = n
	}
	l.front = n
	if l.back == nil {
		l.back = n
	}
}

func (l *lruList) unlink(n *listNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.front = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.back = n.prev
	}
	n.prev, n.next = nil, nil
}

// touch moves n to the front, marking it most-recently-used.
func (l *lruList) touch(n *listNode) {
	if l.front == n {
		return
	}
	l.unlink(n)
	l.linkFront(n)
}

func (l *lruList) remove(n *listNode) {
	l.unlink(n)
}

// popBack removes and returns the position of the least-recently-used
// node, or (zero, false) if the list is empty.
func (l *lruList) popBack() (pos.ChunkPos, bool) {
	if l.back == nil {
		var zero pos.ChunkPos
		return zero, false
	}
	n := l.back
	l.unlink(n)
	return n.pos, true
}
