package diagram

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/handlermap/pkg/errors"
	"github.com/matzehuels/handlermap/pkg/io"
)

// fakeRaster returns the DOT source as file content.
type fakeRaster struct {
	calls int
	fail  error
}

func (f *fakeRaster) PNG(_ context.Context, dot string) ([]byte, error) {
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	return []byte("PNG " + dot), nil
}

func (f *fakeRaster) PDF(_ context.Context, dot string) ([]byte, error) {
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	return []byte("PDF " + dot), nil
}

// recordMerge stores its inputs and writes a marker file.
type recordMerge struct {
	inputs []string
	output string
}

func (m *recordMerge) merge(inputs []string, output string) error {
	m.inputs, m.output = inputs, output
	return os.WriteFile(output, []byte("merged"), 0o644)
}

func writeRows(t *testing.T, dir string, rows []io.Row) string {
	t.Helper()
	path := filepath.Join(dir, "rows.csv")
	w, err := io.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderSalesExample(t *testing.T) {
	dir := t.TempDir()
	input := writeRows(t, dir, []io.Row{
		{HandlerName: "Sales", MenuEntryID: "1", TouchtoneKey: "4", ActionDescription: "Take Message"},
		{HandlerName: "Sales", MenuEntryID: "2", TouchtoneKey: "0", ActionDescription: "Ignore"},
	})
	merger := &recordMerge{}
	r := NewRenderer(&fakeRaster{}, nil).WithMerge(merger.merge)

	m, err := r.Render(context.Background(), input, Options{OutputDir: dir, Prefix: "handler_graph", Merge: true})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	wantPNG := "handler_graph_images/Sales.png"
	if !reflect.DeepEqual(m.PNGFiles, []string{wantPNG}) {
		t.Errorf("PNGFiles = %v", m.PNGFiles)
	}
	if !reflect.DeepEqual(m.PDFFiles, []string{"handler_graph_images/Sales.pdf"}) {
		t.Errorf("PDFFiles = %v", m.PDFFiles)
	}
	if !reflect.DeepEqual(m.PNGMapping, []Mapping{{HandlerName: "Sales", PNGFile: wantPNG}}) {
		t.Errorf("PNGMapping = %v", m.PNGMapping)
	}
	if m.MergedPDF == nil || *m.MergedPDF != "handler_graph_combined.pdf" {
		t.Errorf("MergedPDF = %v", m.MergedPDF)
	}
	if merger.output != filepath.Join(dir, "handler_graph_combined.pdf") {
		t.Errorf("merge output = %q", merger.output)
	}

	png, err := os.ReadFile(filepath.Join(dir, "handler_graph_images", "Sales.png"))
	if err != nil {
		t.Fatalf("image not written: %v", err)
	}
	if !strings.Contains(string(png), `"CH_Sales" -> "CH_Sales_4"`) {
		t.Errorf("image content = %q", png)
	}
}

func TestRenderGroupsInFirstSeenOrder(t *testing.T) {
	dir := t.TempDir()
	input := writeRows(t, dir, []io.Row{
		{HandlerName: "B", TouchtoneKey: "1"},
		{HandlerName: "After Hours", TouchtoneKey: "1"},
		{HandlerName: "B", TouchtoneKey: "2"},
	})
	merger := &recordMerge{}
	r := NewRenderer(&fakeRaster{}, nil).WithMerge(merger.merge)

	m, err := r.Render(context.Background(), input, Options{OutputDir: dir, Prefix: "g", Merge: true})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if len(m.PNGMapping) != 2 {
		t.Fatalf("PNGMapping = %v, want one entry per handler", m.PNGMapping)
	}
	if m.PNGMapping[0].HandlerName != "B" || m.PNGMapping[1].PNGFile != "g_images/After_Hours.png" {
		t.Errorf("PNGMapping = %v", m.PNGMapping)
	}
	wantInputs := []string{
		filepath.Join(dir, "g_images", "B.pdf"),
		filepath.Join(dir, "g_images", "After_Hours.pdf"),
	}
	if !reflect.DeepEqual(merger.inputs, wantInputs) {
		t.Errorf("merge inputs = %v, want %v", merger.inputs, wantInputs)
	}
}

func TestRenderKeepsFilesOfSimilarNames(t *testing.T) {
	dir := t.TempDir()
	input := writeRows(t, dir, []io.Row{
		{HandlerName: "Sales Main", TouchtoneKey: "1"},
		{HandlerName: "Sales_Main", TouchtoneKey: "2"},
		{HandlerName: "Sales/Main", TouchtoneKey: "3"},
	})
	merger := &recordMerge{}
	r := NewRenderer(&fakeRaster{}, nil).WithMerge(merger.merge)

	m, err := r.Render(context.Background(), input, Options{OutputDir: dir, Prefix: "p", Merge: true})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	wantPNG := []string{"p_images/Sales_Main.png", "p_images/Sales_Main_2.png", "p_images/Sales_Main_3.png"}
	if !reflect.DeepEqual(m.PNGFiles, wantPNG) {
		t.Errorf("PNGFiles = %v, want %v", m.PNGFiles, wantPNG)
	}
	seen := map[string]bool{}
	for _, f := range m.PDFFiles {
		if seen[f] {
			t.Errorf("PDFFiles lists %s twice", f)
		}
		seen[f] = true
	}
	if len(merger.inputs) != 3 || merger.inputs[0] == merger.inputs[1] {
		t.Errorf("merge inputs = %v, want three distinct documents", merger.inputs)
	}

	for _, mp := range m.PNGMapping {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(mp.PNGFile)))
		if err != nil {
			t.Fatalf("image of %q not written: %v", mp.HandlerName, err)
		}
		if want := `"` + RootID(mp.HandlerName) + `"`; !strings.Contains(string(data), want) {
			t.Errorf("image %s does not show handler %q", mp.PNGFile, mp.HandlerName)
		}
	}
}

func TestStemsNumberRepeats(t *testing.T) {
	used := stems{}
	got := []string{
		used.next("A B"),
		used.next("A_B"),
		used.next("A_B_2"),
		used.next("A/B"),
		used.next(""),
	}
	want := []string{"A_B", "A_B_2", "A_B_2_2", "A_B_3", "_"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("stems = %v, want %v", got, want)
	}
}

func TestRenderWithoutMerge(t *testing.T) {
	dir := t.TempDir()
	input := writeRows(t, dir, []io.Row{{HandlerName: "Sales", TouchtoneKey: "1"}})
	merger := &recordMerge{}
	r := NewRenderer(&fakeRaster{}, nil).WithMerge(merger.merge)

	m, err := r.Render(context.Background(), input, Options{OutputDir: dir, Prefix: "p", Merge: false})
	if err != nil {
		t.Fatal(err)
	}
	if m.MergedPDF != nil {
		t.Errorf("MergedPDF = %q, want nil", *m.MergedPDF)
	}
	if merger.inputs != nil {
		t.Error("merge should not run")
	}
}

func TestRenderEmptyInput(t *testing.T) {
	dir := t.TempDir()
	input := writeRows(t, dir, nil)
	merger := &recordMerge{}
	r := NewRenderer(&fakeRaster{}, nil).WithMerge(merger.merge)

	m, err := r.Render(context.Background(), input, Options{OutputDir: dir, Prefix: "p", Merge: true})
	if err != nil {
		t.Fatal(err)
	}
	if m.MergedPDF != nil || merger.inputs != nil {
		t.Error("no combined document expected without pages")
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"format_version":1,"png_files":[],"pdf_files":[],"merged_pdf":null,"png_mapping":[]}`
	if string(data) != want {
		t.Errorf("manifest JSON = %s, want %s", data, want)
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeRows(t, dir, []io.Row{{HandlerName: "Sales", TouchtoneKey: "1"}})

	t.Run("missing input", func(t *testing.T) {
		_, err := NewRenderer(&fakeRaster{}, nil).Render(context.Background(), filepath.Join(dir, "absent.csv"), Options{OutputDir: dir, Prefix: "p"})
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("Render() = %v, want FILE_NOT_FOUND", err)
		}
	})

	t.Run("bad columns", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.csv")
		if err := os.WriteFile(bad, []byte("CallHandlerName,TouchtoneKey\r\nSales,1\r\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := NewRenderer(&fakeRaster{}, nil).Render(context.Background(), bad, Options{OutputDir: dir, Prefix: "p"})
		if !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("Render() = %v, want INVALID_FORMAT", err)
		}
	})

	t.Run("bad prefix", func(t *testing.T) {
		_, err := NewRenderer(&fakeRaster{}, nil).Render(context.Background(), input, Options{OutputDir: dir, Prefix: "../up"})
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Render() = %v, want INVALID_INPUT", err)
		}
	})

	t.Run("rasterizer failure", func(t *testing.T) {
		raster := &fakeRaster{fail: errors.New(errors.ErrCodeRender, "no librsvg")}
		_, err := NewRenderer(raster, nil).Render(context.Background(), input, Options{OutputDir: dir, Prefix: "p"})
		if !errors.Is(err, errors.ErrCodeRender) {
			t.Errorf("Render() = %v, want RENDER_FAILED", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		raster := &fakeRaster{}
		_, err := NewRenderer(raster, nil).Render(ctx, input, Options{OutputDir: dir, Prefix: "p"})
		if err == nil || raster.calls != 0 {
			t.Errorf("Render() = %v after %d conversions, want cancellation before work", err, raster.calls)
		}
	})
}
