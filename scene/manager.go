package scene

import (
	"fmt"
	"sync"
)

// manager is the implementation of the Manager interface.
type manager struct {
	mu     sync.RWMutex
	graphs []*Graph
}

// Manager owns a pool of scene graphs indexed by an integer id. One Manager
// is shared across every environment of a batch renderer; each environment
// references its graphs by id only.
type Manager interface {
	// InitSceneGraph creates a new empty scene graph and returns its id.
	//
	// Returns:
	//   - int: the id of the newly created graph
	InitSceneGraph() int

	// SceneGraph returns the graph for the given id.
	// Panics if the id was never returned by InitSceneGraph — an invalid
	// graph id is caller misuse, not a runtime condition.
	//
	// Parameters:
	//   - id: the graph id to resolve
	//
	// Returns:
	//   - *Graph: the graph registered under the id
	SceneGraph(id int) *Graph

	// NumSceneGraphs returns the number of graphs created so far.
	//
	// Returns:
	//   - int: the graph count
	NumSceneGraphs() int
}

var _ Manager = &manager{}

// NewManager creates an empty scene graph Manager.
//
// Returns:
//   - Manager: the new manager
func NewManager() Manager {
	return &manager{}
}

func (m *manager) InitSceneGraph() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := len(m.graphs)
	m.graphs = append(m.graphs, newGraph(id))
	return id
}

func (m *manager) SceneGraph(id int) *Graph {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id < 0 || id >= len(m.graphs) {
		panic(fmt.Sprintf("scene: graph id %d out of range [0,%d)", id, len(m.graphs)))
	}
	return m.graphs[id]
}

func (m *manager) NumSceneGraphs() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.graphs)
}
