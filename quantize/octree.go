package quantize

import (
	"container/heap"

	"pixelart/pixbuf"
)

// OctreeDepth matches the 8 bits of a channel.
const OctreeDepth = 8

const noNode = -1

type octNode struct {
	parent   int
	children [8]int
	leaf     bool
	// leaves in this subtree, the node itself included
	below int
	// sums of the original colours accumulated at a leaf
	r, g, b, n int
}

// octree keeps its nodes in an arena; index 0 is the root.
type octree struct {
	nodes  []octNode
	leaves int
}

func newOctNode(parent int) octNode {
	n := octNode{parent: parent}
	for i := range n.children {
		n.children[i] = noNode
	}
	return n
}

// octIndex selects bit 7-level of each channel as a 3-bit child index.
func octIndex(c pixbuf.Color, level int) int {
	shift := 7 - level
	r := int(c.R>>shift) & 1
	g := int(c.G>>shift) & 1
	b := int(c.B>>shift) & 1
	return r<<2 | g<<1 | b
}

func (t *octree) insert(c pixbuf.Color) {
	cur := 0
	for level := range OctreeDepth {
		idx := octIndex(c, level)
		next := t.nodes[cur].children[idx]
		if next == noNode {
			next = len(t.nodes)
			t.nodes = append(t.nodes, newOctNode(cur))
			t.nodes[cur].children[idx] = next
		}
		cur = next
	}

	leaf := &t.nodes[cur]
	if !leaf.leaf {
		leaf.leaf = true
		t.leaves++
		for id := cur; id != noNode; id = t.nodes[id].parent {
			t.nodes[id].below++
		}
	}
	leaf.r += int(c.R)
	leaf.g += int(c.G)
	leaf.b += int(c.B)
	leaf.n++
}

// fold removes leaf id and adds its colours to the first leaf, in tree
// order, under its nearest ancestor that holds another leaf. It returns
// the leaf that received the colours.
func (t *octree) fold(id int) int {
	node := t.nodes[id]
	t.nodes[id] = newOctNode(node.parent)
	t.leaves--

	anc := noNode
	for cur := node.parent; cur != noNode; cur = t.nodes[cur].parent {
		t.nodes[cur].below--
		if anc == noNode && t.nodes[cur].below > 0 {
			anc = cur
		}
	}
	if anc == noNode {
		return noNode
	}

	cur := anc
	for !t.nodes[cur].leaf {
		for _, child := range t.nodes[cur].children {
			if child != noNode && t.nodes[child].below > 0 {
				cur = child
				break
			}
		}
	}

	dst := &t.nodes[cur]
	dst.r += node.r
	dst.g += node.g
	dst.b += node.b
	dst.n += node.n
	return cur
}

// reduce repeatedly folds the leaf holding the fewest colours (ties go to
// the earlier leaf in tree order) into its closest neighbour, one leaf per
// step, until at most target leaves remain.
func (t *octree) reduce(target int) {
	if t.leaves <= target {
		return
	}

	q := &leafQueue{rank: t.preorder()}
	for id, node := range t.nodes {
		if node.leaf {
			q.entries = append(q.entries, leafEntry{id: id, n: node.n})
		}
	}
	heap.Init(q)

	for t.leaves > target && q.Len() > 0 {
		e := heap.Pop(q).(leafEntry)
		if node := t.nodes[e.id]; !node.leaf || node.n != e.n {
			continue
		}
		if dst := t.fold(e.id); dst != noNode {
			heap.Push(q, leafEntry{id: dst, n: t.nodes[dst].n})
		}
	}
}

// preorder ranks every node by its position in a depth-first walk.
func (t *octree) preorder() []int {
	rank := make([]int, len(t.nodes))
	next := 0
	var walk func(id int)
	walk = func(id int) {
		rank[id] = next
		next++
		for _, child := range t.nodes[id].children {
			if child != noNode {
				walk(child)
			}
		}
	}
	walk(0)
	return rank
}

// palette returns one averaged colour per leaf in depth-first order.
func (t *octree) palette() Palette {
	var pal Palette
	var walk func(id int)
	walk = func(id int) {
		node := &t.nodes[id]
		if node.leaf {
			if node.n > 0 {
				pal = append(pal, meanOf(node.r, node.g, node.b, node.n))
			}
			return
		}
		for _, child := range node.children {
			if child != noNode {
				walk(child)
			}
		}
	}
	walk(0)
	return pal
}

// Octree buckets colours by successive bit triples down to depth 8, then
// folds the smallest leaves into their neighbours until at most target
// remain, so the palette holds min(target, distinct) colours. Each returned
// colour is the mean of the original colours in its leaf.
func Octree(colors []pixbuf.Color, target int) Palette {
	if len(colors) == 0 {
		return nil
	}

	t := &octree{nodes: []octNode{newOctNode(noNode)}}
	for _, c := range colors {
		t.insert(c)
	}
	t.reduce(max(1, target))
	return t.palette()
}

// leafEntry snapshots a leaf's count when queued; entries whose leaf has
// since changed are stale and skipped.
type leafEntry struct {
	id, n int
}

type leafQueue struct {
	rank    []int
	entries []leafEntry
}

func (q *leafQueue) Len() int { return len(q.entries) }

func (q *leafQueue) Less(i, j int) bool {
	a, b := q.entries[i], q.entries[j]
	if a.n != b.n {
		return a.n < b.n
	}
	return q.rank[a.id] < q.rank[b.id]
}

func (q *leafQueue) Swap(i, j int) { q.entries[i], q.entries[j] = q.entries[j], q.entries[i] }

func (q *leafQueue) Push(x any) { q.entries = append(q.entries, x.(leafEntry)) }

func (q *leafQueue) Pop() any {
	n := len(q.entries)
	e := q.entries[n-1]
	q.entries = q.entries[:n-1]
	return e
}
