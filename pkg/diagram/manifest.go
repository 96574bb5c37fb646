package diagram

import (
	"fmt"
	"path"

	"github.com/matzehuels/handlermap/pkg/io"
)

// Manifest lists the files produced by one render, relative to the output
// directory and always with forward slashes.
type Manifest struct {
	FormatVersion int       `json:"format_version"`
	PNGFiles      []string  `json:"png_files"`
	PDFFiles      []string  `json:"pdf_files"`
	MergedPDF     *string   `json:"merged_pdf"` // nil when no combined document was written
	PNGMapping    []Mapping `json:"png_mapping"`
}

// Mapping pairs a handler with its image.
type Mapping struct {
	HandlerName string `json:"handlerName"`
	PNGFile     string `json:"pngFile"`
}

func newManifest() *Manifest {
	return &Manifest{
		FormatVersion: io.FormatVersion,
		PNGFiles:      []string{},
		PDFFiles:      []string{},
		PNGMapping:    []Mapping{},
	}
}

// ImagesDir returns the directory, relative to the output directory, that
// holds per-handler files for prefix.
func ImagesDir(prefix string) string { return prefix + "_images" }

// CombinedName returns the file name of the merged document for prefix.
func CombinedName(prefix string) string { return prefix + "_combined.pdf" }

func imagePath(prefix, stem, ext string) string {
	return path.Join(ImagesDir(prefix), stem+ext)
}

// stems hands out file name stems that are unique within one render.
// Handler names that sanitize to a stem already taken get a numeric suffix,
// so "Sales Main" and "Sales_Main" end up as Sales_Main and Sales_Main_2.
type stems map[string]bool

func (s stems) next(name string) string {
	base := SafeName(name)
	stem := base
	for n := 2; s[stem]; n++ {
		stem = fmt.Sprintf("%s_%d", base, n)
	}
	s[stem] = true
	return stem
}
