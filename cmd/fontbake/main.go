package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fontbake/fontbake/codegen/emit"
	"github.com/fontbake/fontbake/codegen/table"
	"github.com/fontbake/fontbake/core/charset"
	"github.com/fontbake/fontbake/core/font"
	"github.com/fontbake/fontbake/core/locate/resources"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'fontbake.cli'
func tracer() tracing.Trace {
	return tracing.Select("fontbake.cli")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font family to bake")
	style := flag.String("style", "Regular", "Font style, e.g. Regular or Bold")
	size := flag.Int("size", 0, "Pixel size")
	bpp := flag.Int("bpp", 4, "Packed bits per pixel [1|2|4|8]")
	shaveX := flag.Int("shave", 0, "Pixel columns to trim from the left")
	genNormal := flag.Bool("normal", true, "Generate the normal table variant")
	genUpper := flag.Bool("upper", false, "Generate the upper-cased table variant")
	fontIdx := flag.Int("font-idx", 0, "Identifier of the normal variant")
	fontIdxUpper := flag.Int("font-idx-upper", 0, "Identifier of the upper variant")
	faces := flag.String("faces", "", "JSON catalog of faces to bake in one run")
	outdir := flag.String("out", ".", "Output directory")
	genC := flag.Bool("gen-c", false, "Emit C sources alongside the JSON files")
	widths := flag.Bool("widths", false, "Emit character width tables")
	langs := flag.String("langs", "", "Comma-separated language tags (default: all built-in)")
	fontdir := flag.String("font-dir", "", "Directory holding the project's font files")
	inspect := flag.Bool("inspect", false, "Inspect a baked face interactively")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":          "go",
		"trace.fontbake.cli":       *tlevel,
		"trace.fontbake.table":     *tlevel,
		"trace.fontbake.glyph":     *tlevel,
		"trace.fontbake.resources": *tlevel,
		"app-key":                  "fontbake",
		"font-dir":                 *fontdir,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	pterm.Info.Println("Welcome to fontbake")
	tracer().Infof("Trace level is %s", *tlevel)

	sets, err := selectCharsets(*langs)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}

	var configs []table.FaceConfig
	if *faces != "" {
		if configs, err = readFacesCatalog(*faces); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
	} else {
		if *fontname == "" || *size == 0 {
			pterm.Error.Println("need -font and -size, or a -faces catalog")
			os.Exit(2)
		}
		configs = []table.FaceConfig{{
			Name:         *fontname,
			Style:        *style,
			Size:         *size,
			BPP:          *bpp,
			ShaveX:       *shaveX,
			GenNormal:    *genNormal,
			GenUpper:     *genUpper,
			FontIdx:      *fontIdx,
			FontIdxUpper: *fontIdxUpper,
		}}
	}

	tables := bakeAll(conf, configs, sets, *outdir, *genC, *widths)
	if tables == nil {
		os.Exit(3)
	}
	if *inspect {
		pterm.Info.Println("Quit with <ctrl>D")
		intp, err := newInspector(tables[0])
		if err != nil {
			tracer().Errorf(err.Error())
			os.Exit(3)
		}
		intp.REPL()
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func selectCharsets(langs string) ([]*charset.Set, error) {
	tags := charset.Languages()
	if langs != "" {
		tags = strings.Split(langs, ",")
	}
	sets := make([]*charset.Set, 0, len(tags))
	for _, tag := range tags {
		set, err := charset.ForLanguage(strings.TrimSpace(tag))
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func readFacesCatalog(path string) ([]table.FaceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var configs []table.FaceConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

type bakeResult struct {
	cfg     table.FaceConfig
	table   *table.FontTable
	written []string
	err     error
}

// bakeAll compiles every face of a catalog concurrently and emits the
// artifacts. It returns nil if any face failed.
func bakeAll(conf schuko.Configuration, configs []table.FaceConfig,
	sets []*charset.Set, outdir string, genC, widths bool) []*table.FontTable {
	//
	ch := make(chan bakeResult)
	for _, cfg := range configs {
		go func(cfg table.FaceConfig) {
			ch <- bakeFace(conf, cfg, sets, outdir, genC, widths)
		}(cfg)
	}
	results := make(map[string]bakeResult, len(configs))
	failed := false
	for range configs {
		r := <-ch
		results[r.cfg.FullName()] = r
		if r.err != nil {
			pterm.Error.Printfln("%s: %v", r.cfg.FullName(), r.err)
			failed = true
		} else {
			pterm.Printfln("%s: %d files", r.cfg.FullName(), len(r.written))
			for _, path := range r.written {
				tracer().Infof("wrote %s", path)
			}
		}
	}
	if failed {
		return nil
	}
	// keep catalog order
	tables := make([]*table.FontTable, len(configs))
	for i, cfg := range configs {
		tables[i] = results[cfg.FullName()].table
	}
	return tables
}

func bakeFace(conf schuko.Configuration, cfg table.FaceConfig,
	sets []*charset.Set, outdir string, genC, widths bool) bakeResult {
	//
	result := bakeResult{cfg: cfg}
	style, weight := font.GuessStyleAndWeight(cfg.Name + "-" + cfg.Style + ".ttf")
	loader := resources.ResolveTypeCase(conf, cfg.Name, style, weight, cfg.Size)
	typecase, err := loader.TypeCase()
	if err != nil {
		result.err = err
		return result
	}
	if result.table, result.err = table.Build(typecase, cfg, sets...); result.err != nil {
		return result
	}
	result.written, result.err = emit.WriteFiles(outdir, result.table, genC, widths)
	return result
}
