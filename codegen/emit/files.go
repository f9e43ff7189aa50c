package emit

import (
	"io"
	"os"
	"path/filepath"

	"github.com/fontbake/fontbake/codegen/table"
	"github.com/fontbake/fontbake/core"
)

// WriteFiles emits every artifact of a compiled table into dir: the C
// source and header (if genC is set), one JSON file per language table and,
// if widths is set, the character width JSON. It returns the paths of the
// written files.
func WriteFiles(dir string, t *table.FontTable, genC, widths bool) ([]string, error) {
	var written []string
	emitTo := func(name string, emit func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return core.ErrorWithCode(err, core.EINVALID)
		}
		defer f.Close()
		if err := emit(f); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}
	//
	if genC {
		err := emitTo(CSourceName(t.Config), func(w io.Writer) error {
			return WriteCSource(w, t)
		})
		if err != nil {
			return written, err
		}
		err = emitTo(CHeaderName(t.Config), func(w io.Writer) error {
			return WriteCHeader(w, t)
		})
		if err != nil {
			return written, err
		}
	}
	for _, lt := range t.Langs {
		lt := lt
		err := emitTo(LangJSONName(t.Config, lt.Lang, lt.Upper), func(w io.Writer) error {
			return WriteLangJSON(w, lt)
		})
		if err != nil {
			return written, err
		}
	}
	if widths {
		err := emitTo(WidthsJSONName(t.Config), func(w io.Writer) error {
			return WriteWidthsJSON(w, t)
		})
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
