package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/handlermap/pkg/dag"
)

func salesGraph() *dag.DAG {
	g := dag.New("Sales")
	_ = g.AddNode(dag.Node{ID: "CH_Sales", Label: "Call Handler:\nSales", Kind: dag.NodeKindHandler})
	_ = g.AddNode(dag.Node{ID: "CH_Sales_4", Label: "Touchtone: 4\nAction: Take Message", Row: 1, Kind: dag.NodeKindEntry})
	_ = g.AddEdge(dag.Edge{From: "CH_Sales", To: "CH_Sales_4"})
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(salesGraph())

	for _, want := range []string{
		`digraph "Sales" {`,
		`"CH_Sales" [label="Call Handler:\nSales", fillcolor="#cfe2f3"];`,
		`"CH_Sales_4" [label="Touchtone: 4\nAction: Take Message", fillcolor="#f8f9fa"];`,
		`"CH_Sales" -> "CH_Sales_4";`,
		"shape=box",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOTNodeOrder(t *testing.T) {
	dot := ToDOT(salesGraph())
	root := strings.Index(dot, `"CH_Sales" [`)
	child := strings.Index(dot, `"CH_Sales_4" [`)
	edge := strings.Index(dot, "->")
	if !(root < child && child < edge) {
		t.Errorf("unexpected statement order in:\n%s", dot)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`a\b`, `"a\\b"`},
		{"two\nlines", `"two\nlines"`},
		{"tab\there", `"tabhere"`},
		{"Zürich", `"Zürich"`},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(salesGraph()))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
	if !strings.Contains(string(svg), "Take Message") {
		t.Error("RenderSVG() output missing entry label")
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
