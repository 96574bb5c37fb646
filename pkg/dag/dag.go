package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned when a node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [DAG.Validate] when an edge does
	// not lead from one row to the next.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")
)

// NodeKind distinguishes the call handler from its menu entries.
type NodeKind int

const (
	// NodeKindHandler is the root node naming the call handler.
	NodeKindHandler NodeKind = iota
	// NodeKindEntry is one menu entry of the handler.
	NodeKindEntry
)

// String returns the kind name.
func (k NodeKind) String() string {
	switch k {
	case NodeKindHandler:
		return "handler"
	case NodeKindEntry:
		return "entry"
	default:
		return "unknown"
	}
}

// Node is a vertex of a handler graph.
type Node struct {
	ID    string   // Unique identifier, used verbatim in the drawing source
	Label string   // Display text; lines are separated by "\n"
	Row   int      // 0 for the handler, 1 for entries
	Kind  NodeKind // Selects the drawing style
}

// Edge is a directed connection from a handler to one of its entries.
type Edge struct {
	From string
	To   string
}

// DAG is a small directed graph with insertion-ordered nodes and edges.
// The zero value is not usable; use [New].
type DAG struct {
	name     string
	order    []string
	nodes    map[string]*Node
	edges    []Edge
	outgoing map[string][]string
}

// New creates an empty graph named name.
func New(name string) *DAG {
	return &DAG{
		name:     name,
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
	}
}

// Name returns the graph name given to [New].
func (d *DAG) Name() string { return d.name }

// AddNode adds n. Returns ErrInvalidNodeID for an empty ID and
// ErrDuplicateNodeID if the ID is taken.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	d.nodes[n.ID] = &n
	d.order = append(d.order, n.ID)
	return nil
}

// SetNode adds n, or replaces the node with the same ID while keeping its
// position and edges. It reports whether a node was replaced.
func (d *DAG) SetNode(n Node) (replaced bool, err error) {
	if n.ID == "" {
		return false, ErrInvalidNodeID
	}
	if existing, ok := d.nodes[n.ID]; ok {
		*existing = n
		return true, nil
	}
	return false, d.AddNode(n)
}

// AddEdge adds a directed edge between two existing nodes. Adding an edge
// that already exists is a no-op.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if slices.Contains(d.outgoing[e.From], e.To) {
		return nil
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	return nil
}

// Node returns the node with the given ID.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, 0, len(d.order))
	for _, id := range d.order {
		nodes = append(nodes, d.nodes[id])
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Validate checks that every edge leads from a node to one in the next row.
func (d *DAG) Validate() error {
	for _, e := range d.edges {
		from, ok1 := d.nodes[e.From]
		to, ok2 := d.nodes[e.To]
		if !ok1 || !ok2 || from.Row+1 != to.Row {
			return ErrInvalidEdgeEndpoint
		}
	}
	return nil
}
