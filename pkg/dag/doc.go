// Package dag provides the directed graph drawn for one call handler.
//
// # Overview
//
// A handler graph is a two-row tree: one root node for the call handler in
// row 0 and one node per menu entry in row 1, with an edge from the root to
// every entry. The package keeps nodes and edges in insertion order so the
// generated drawing is deterministic.
//
//	g := dag.New("Sales")
//	g.AddNode(dag.Node{ID: "CH_Sales", Label: "Call Handler:\nSales", Kind: dag.NodeKindHandler})
//	g.AddNode(dag.Node{ID: "CH_Sales_1", Label: "Touchtone: 1", Row: 1, Kind: dag.NodeKindEntry})
//	g.AddEdge(dag.Edge{From: "CH_Sales", To: "CH_Sales_1"})
//
// # Duplicate IDs
//
// [DAG.AddNode] rejects duplicate IDs. [DAG.SetNode] instead replaces the
// existing node in place, keeping its position and edges; callers that follow
// the drawing tool's "last definition wins" rule use it and decide themselves
// whether to report the collision.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use.
package dag
