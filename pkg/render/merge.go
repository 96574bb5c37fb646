package render

import (
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/matzehuels/handlermap/pkg/errors"
)

// MergePDFs concatenates the PDF files at inputs, in order, into output.
// A single input is copied unchanged.
func MergePDFs(inputs []string, output string) error {
	switch len(inputs) {
	case 0:
		return errors.New(errors.ErrCodeInvalidInput, "no PDF files to merge")
	case 1:
		data, err := os.ReadFile(inputs[0])
		if err != nil {
			return errors.Wrap(errors.ErrCodeRender, err, "merge into %s", output)
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeRender, err, "merge into %s", output)
		}
		return nil
	}

	if err := api.MergeCreateFile(inputs, output, false, nil); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "merge %d documents into %s", len(inputs), output)
	}
	return nil
}
