package diagram

import (
	"strings"

	"github.com/matzehuels/handlermap/pkg/dag"
	"github.com/matzehuels/handlermap/pkg/io"
)

// none stands in for blank touchtone keys and actions.
const none = "(none)"

// Build creates the graph of one call handler. It returns the IDs of entry
// nodes that were defined more than once, in the order the duplicates were seen.
func Build(name string, rows []io.Row) (*dag.DAG, []string, error) {
	g := dag.New(name)
	root := RootID(name)
	_ = g.AddNode(dag.Node{
		ID:    root,
		Label: "Call Handler:\n" + name,
		Kind:  dag.NodeKindHandler,
	})

	var collisions []string
	for _, r := range rows {
		id := EntryID(name, r.TouchtoneKey)
		replaced, _ := g.SetNode(dag.Node{
			ID:    id,
			Label: EntryLabel(r),
			Row:   1,
			Kind:  dag.NodeKindEntry,
		})
		if replaced {
			collisions = append(collisions, id)
		}
		_ = g.AddEdge(dag.Edge{From: root, To: id})
	}
	if err := g.Validate(); err != nil {
		return nil, nil, err
	}
	return g, collisions, nil
}

// RootID returns the node ID of a handler.
func RootID(name string) string { return "CH_" + name }

// EntryID returns the node ID of a handler's entry for key.
func EntryID(name, key string) string {
	return RootID(name) + "_" + orNone(key)
}

// EntryLabel returns the multi-line label of an entry node. Transfer number
// and display name lines appear only when set.
func EntryLabel(r io.Row) string {
	lines := []string{
		"Touchtone: " + orNone(r.TouchtoneKey),
		"Action: " + orNone(r.ActionDescription),
	}
	if r.TransferNumber != "" {
		lines = append(lines, "Transfer#: "+r.TransferNumber)
	}
	if r.EntryDisplayName != "" {
		lines = append(lines, "DisplayName: "+r.EntryDisplayName)
	}
	return strings.Join(lines, "\n")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return none
	}
	return s
}

var unsafeChars = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// SafeName turns a handler name into a file name stem by replacing spaces
// and path separators with underscores. The empty name becomes "_".
func SafeName(name string) string {
	if name == "" {
		return "_"
	}
	return unsafeChars.Replace(name)
}
