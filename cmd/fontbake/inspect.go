package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fontbake/fontbake/codegen/table"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object for inspecting a baked font table.
type Intp struct {
	table *table.FontTable
	repl  *readline.Instance
}

func newInspector(t *table.FontTable) (*Intp, error) {
	repl, err := readline.New(t.Config.FullName() + " > ")
	if err != nil {
		return nil, err
	}
	return &Intp{table: t, repl: repl}, nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.execute(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func (intp *Intp) execute(line string) (bool, error) {
	cmd, arg := line, ""
	if sp := strings.IndexByte(line, ' '); sp > 0 {
		cmd, arg = line[:sp], strings.TrimSpace(line[sp+1:])
	}
	switch strings.ToLower(cmd) {
	case "quit":
		return true, nil
	case "glyph":
		if arg == "" {
			return false, errors.New("glyph: need a character argument")
		}
		return false, intp.showGlyph([]rune(arg)[0])
	case "info":
		return false, intp.showInfo(arg == "upper")
	case "langs":
		intp.showLangs()
	case "widths":
		for _, c := range arg {
			data := intp.table.Glyph(c)
			pterm.Printfln("%q advances %d pixels", c, data[2])
		}
	default:
		help()
	}
	return false, nil
}

func (intp *Intp) showGlyph(c rune) error {
	data := intp.table.Glyph(c)
	if len(data) < 5 {
		return fmt.Errorf("glyph %q has a truncated entry", c)
	}
	width, rows := int(data[0]), int(data[1])
	pterm.Printfln("%q: %dx%d, advance %d, bearing (%d,%d), %d bytes packed",
		c, width, rows, data[2], data[3], data[4], len(data)-5)
	pixels, err := unpack(data[5:], intp.table.Config.BPP, width, rows)
	if err != nil {
		return err
	}
	for y := 0; y < rows; y++ {
		var sb strings.Builder
		for x := 0; x < width; x++ {
			sb.WriteByte(shade(pixels[y*width+x]))
		}
		pterm.Println(sb.String())
	}
	return nil
}

func (intp *Intp) showInfo(upper bool) error {
	info, err := intp.table.FontInfo(upper)
	if err != nil {
		return err
	}
	rows := pterm.TableData{
		{"variant", info.Variant},
		{"index", fmt.Sprint(info.BlobIdx)},
		{"height", fmt.Sprint(info.Height)},
		{"max height", fmt.Sprint(info.MaxHeight)},
		{"baseline", fmt.Sprint(info.Baseline)},
	}
	return pterm.DefaultTable.WithData(rows).Render()
}

func (intp *Intp) showLangs() {
	for _, lt := range intp.table.Langs {
		variant := "normal"
		if lt.Upper {
			variant = "upper"
		}
		pterm.Printfln("%s (%s): %d glyphs", lt.Lang, variant, len(lt.Glyphs))
	}
}

// unpack expands packed pixels back to one byte per pixel, with the gray
// value in the top bits.
func unpack(packed []byte, bpp, width, rows int) ([]byte, error) {
	pixels := make([]byte, width*rows)
	switch bpp {
	case 1:
		for i := range pixels {
			if packed[i/8]&(0x80>>(i%8)) != 0 {
				pixels[i] = 0x80
			}
		}
	case 2:
		for i := range pixels {
			pixels[i] = packed[i/4] << (2 * (i % 4)) & 0xC0
		}
	case 4:
		// pairs are packed per row, an odd trailing pixel fills a byte
		stride := (width + 1) / 2
		for y := 0; y < rows; y++ {
			row := packed[y*stride:]
			for x := 0; x < width; x++ {
				b := row[x/2]
				if x%2 == 0 {
					pixels[y*width+x] = b << 4
				} else {
					pixels[y*width+x] = b & 0xF0
				}
			}
		}
	case 8:
		copy(pixels, packed)
	default:
		return nil, fmt.Errorf("unsupported bit depth %d", bpp)
	}
	return pixels, nil
}

func shade(v byte) byte {
	const ramp = " .:-=+*#%@"
	return ramp[int(v)*len(ramp)/256]
}

func help() {
	pterm.Info.Println("Inspector commands")
	pterm.Println(`
	glyph <c>     render glyph <c> as ASCII art
	info [upper]  show the font_info constants of a variant
	langs         list the language tables
	widths <str>  show advance widths for the given characters
	quit          leave the inspector
	`)
}
