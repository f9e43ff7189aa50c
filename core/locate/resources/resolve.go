package resources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/fontbake/fontbake/core"
	"github.com/fontbake/fontbake/core/font"
	"github.com/npillmayer/schuko"
	xfont "golang.org/x/image/font"
)

// NotFound returns an application error for a missing font resource.
func NotFound(res string) error {
	e := fmt.Errorf("resource missing: %v", res)
	return core.WrapError(e, core.EMISSING, "font not found: %s", res)
}

type fontPlusErr struct {
	font *font.TypeCase
	err  error
}

// TypeCasePromise is the await-handle for an async font resolution.
type TypeCasePromise interface {
	TypeCase() (*font.TypeCase, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.TypeCase, error)
}

func (loader fontLoader) TypeCase() (*font.TypeCase, error) {
	return loader.await(context.Background())
}

// ResolveTypeCase resolves a font type case with a given pixel size.
//
// The already-loaded fonts of the global registry are checked first, then
// the configured font directory (key 'font-dir'), then locally installed
// system fonts, then the fontconfig database, and finally the Google Fonts
// service.
func ResolveTypeCase(conf schuko.Configuration, name string, style xfont.Style,
	weight xfont.Weight, pixelSize int) TypeCasePromise {
	//
	ch := make(chan fontPlusErr)
	go func(ch chan<- fontPlusErr) {
		result := fontPlusErr{}
		normalized := font.NormalizeFontname(name, style, weight)
		if t, err := font.GlobalRegistry().TypeCase(normalized, pixelSize); err == nil {
			result.font = t
			ch <- result
			close(ch)
			return
		}
		var f *font.ScalableFont
		if fpath := findProjectFont(conf, name, style, weight); fpath != "" {
			tracer().Debugf("found %s in the project font directory", name)
			f, result.err = font.LoadOpenTypeFont(fpath)
		}
		if f == nil {
			fpath, err := findfont.Find(name) // try to find as system font
			if err == nil && fpath != "" {
				tracer().Debugf("%s is a system font", name)
				f, result.err = font.LoadOpenTypeFont(fpath)
			}
		}
		if f == nil {
			desc, variant := findFontConfigFont(conf, name, style, weight)
			if len(desc.Variants) > 0 {
				tracer().Debugf("fontconfig lists %s as %s|%s", name, desc.Family, variant)
				f, result.err = font.LoadOpenTypeFont(desc.Path)
			}
		}
		if f == nil {
			var fiList []GoogleFontInfo
			if fiList, result.err = FindGoogleFont(conf, name, style, weight); result.err == nil {
				fi := fiList[0]
				variant := matchGoogleVariant(fi, style, weight)
				var fpath string
				if fpath, result.err = CacheGoogleFont(conf, fi, variant); result.err == nil {
					f, result.err = font.LoadOpenTypeFont(fpath)
				}
			}
		}
		if f != nil {
			f.Fontname = normalized
			font.GlobalRegistry().StoreFont(normalized, f)
			result.font, result.err = font.GlobalRegistry().TypeCase(normalized, pixelSize)
		} else if result.err == nil {
			result.err = NotFound(name)
		}
		ch <- result
		close(ch)
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.TypeCase, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}

// findProjectFont scans the configured font directory (key 'font-dir') for
// a file matching the requested family, style and weight.
func findProjectFont(conf schuko.Configuration, name string, style xfont.Style,
	weight xfont.Weight) string {
	//
	fontdir := conf.GetString("font-dir")
	if fontdir == "" {
		return ""
	}
	entries, err := os.ReadDir(fontdir)
	if err != nil {
		tracer().Infof("configured font directory cannot be read: %v", err)
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		if font.Matches(entry.Name(), name, style, weight) {
			return filepath.Join(fontdir, entry.Name())
		}
	}
	return ""
}
