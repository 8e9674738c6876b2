package scene

// Graph is one scene graph: a tree of nodes under a single root, plus an id
// registry so node handles can be validated instead of dangling.
type Graph struct {
	id         int
	nextNodeID int
	root       *Node
	nodes      map[int]*Node
}

// newGraph creates an empty graph with a root node. Only the Manager creates
// graphs; external code obtains them through Manager.SceneGraph.
func newGraph(id int) *Graph {
	g := &Graph{
		id:    id,
		nodes: make(map[int]*Node),
	}
	g.root = g.newNode(nil)
	return g
}

// ID returns the graph's handle in its owning Manager.
func (g *Graph) ID() int { return g.id }

// RootNode returns the graph's root node. The root always exists and cannot
// be removed.
func (g *Graph) RootNode() *Node { return g.root }

// Node looks up a node by id.
//
// Parameters:
//   - id: the node id to resolve
//
// Returns:
//   - *Node: the node, or nil if the id is unknown or the node was removed
func (g *Graph) Node(id int) *Node {
	return g.nodes[id]
}

// NumNodes returns the number of live nodes in the graph, including the root.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// Drawables collects every node carrying a render asset instance, in
// depth-first order from the root.
//
// Returns:
//   - []*Node: the drawable nodes
func (g *Graph) Drawables() []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.drawable != nil {
			out = append(out, n)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(g.root)
	return out
}

// newNode allocates and registers a node. parent may be nil only for the root.
func (g *Graph) newNode(parent *Node) *Node {
	n := &Node{
		id:     g.nextNodeID,
		graph:  g,
		parent: parent,
	}
	n.initDefaults()
	g.nextNodeID++
	g.nodes[n.id] = n
	return n
}

// unregisterSubtree drops a detached node and all its descendants from the
// id registry so stale handles resolve to nil rather than dangling.
func (g *Graph) unregisterSubtree(n *Node) {
	delete(g.nodes, n.id)
	for _, c := range n.children {
		g.unregisterSubtree(c)
	}
}
