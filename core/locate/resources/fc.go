package resources

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"path"
	"strings"
	"sync"

	"github.com/fontbake/fontbake/core"
	"github.com/fontbake/fontbake/core/font"
	"github.com/npillmayer/schuko"
	xfont "golang.org/x/image/font"
)

// We shell out to the fc-list binary instead of binding the fontconfig C
// library, to avoid version issues. The binary's location has to be set as
// configuration key 'fontconfig'; without it this resolution stage is
// silently skipped.

// findFontConfigFont searches for a locally installed font variant using the
// fontconfig system (https://www.freedesktop.org/wiki/Software/fontconfig/).
//
// The output of fc-list is copied to the user's config directory once;
// subsequent calls search the cached entries for a font, given a name
// pattern, a style and a weight.
func findFontConfigFont(conf schuko.Configuration, pattern string, style xfont.Style,
	weight xfont.Weight) (desc font.Descriptor, variant string) {
	//
	fcListOnce.Do(func() {
		fcDescriptors, fcListLoaded = loadFontConfigList(conf)
		tracer().Infof("loaded %d fontconfig font descriptors", len(fcDescriptors))
	})
	if !fcListLoaded {
		return
	}
	var confidence font.MatchConfidence
	desc, variant, confidence = font.ClosestMatch(fcDescriptors, pattern, style, weight)
	tracer().Debugf("closest fontconfig match confidence for %s|%s = %d",
		desc.Family, variant, confidence)
	if confidence > font.LowConfidence {
		return
	}
	return font.Descriptor{}, ""
}

var fcListOnce sync.Once
var fcListLoaded bool
var fcDescriptors []font.Descriptor

func loadFontConfigList(conf schuko.Configuration) ([]font.Descriptor, bool) {
	fclist, ok := cacheFontConfigList(conf, false)
	if !ok {
		return nil, false
	}
	fc, err := os.Open(fclist)
	if err != nil {
		core.UserError(core.WrapError(err, core.EINVALID,
			"fontconfig font list cannot be opened: %s", fclist))
		return nil, false
	}
	defer fc.Close()
	descriptors, skipped, err := parseFontConfigList(fc)
	if err != nil {
		core.UserError(core.WrapError(err, core.EINVALID,
			"encountered a problem during reading of fontconfig font list: %s", fclist))
		return descriptors, false
	}
	if skipped > 0 {
		tracer().Infof("skipping %d platform fonts: TTC not yet supported", skipped)
	}
	return descriptors, true
}

// parseFontConfigList reads fc-list output, one font per line:
//
//	/path/to/font.ttf: Family Name:style=Bold
//
// TrueType collections (.ttc) are counted and skipped.
func parseFontConfigList(r io.Reader) (descriptors []font.Descriptor, ttc int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			continue
		}
		fontpath := strings.TrimSpace(fields[0])
		if strings.HasSuffix(fontpath, ".ttc") {
			ttc++
			continue
		}
		fontname := strings.TrimSpace(fields[1])
		fontname = strings.TrimPrefix(fontname, ".") // hidden system fonts on macOS
		descriptors = append(descriptors, font.Descriptor{
			Family:   fontname,
			Path:     fontpath,
			Variants: classifyFcVariant(fields[2]),
		})
	}
	return descriptors, ttc, scanner.Err()
}

// fcVariantClasses maps indicators in fc-list style fields onto the variant
// names the matcher scores; first hit wins.
var fcVariantClasses = []struct {
	indicator string
	variant   string
}{
	{"regular", "regular"},
	{"text", "regular"},
	{"light", "light"},
	{"italic", "italic"},
	{"bold", "bold"},
	{"black", "bold"},
}

func classifyFcVariant(styleField string) []string {
	styleField = strings.ToLower(styleField)
	for _, class := range fcVariantClasses {
		if strings.Contains(styleField, class.indicator) {
			return []string{class.variant}
		}
	}
	return nil
}

// cacheFontConfigList copies the output of fc-list into the user's config
// directory, or reuses an earlier copy unless update is set.
func cacheFontConfigList(conf schuko.Configuration, update bool) (string, bool) {
	appkey := conf.GetString("app-key")
	tracer().Debugf("config[app-key] = %s", appkey)
	uconfdir, err := os.UserConfigDir()
	if appkey == "" || err != nil {
		tracer().Errorf("user config directory not set")
		return "", false
	}
	fcListFilename := path.Join(uconfdir, appkey, "fontlist.txt")
	if _, err := os.Stat(fcListFilename); err == nil {
		if !update {
			return fcListFilename, true
		}
	} else { // create config sub-dir for this application
		dir := path.Join(uconfdir, appkey)
		if _, err = os.Stat(dir); os.IsNotExist(err) {
			if err = os.MkdirAll(dir, 0755); err != nil {
				core.UserError(core.WrapError(err, core.EINVALID,
					"user configuration path cannot be created: %s", dir))
				return "", false
			}
		}
	}
	fcpath, ok := findFontConfigBinary(conf)
	if !ok {
		return "", false
	}
	fontlistFile, err := os.Create(fcListFilename)
	if err == nil {
		fccmd := exec.Command(fcpath)
		fccmd.Stdout = fontlistFile
		err = fccmd.Run()
	}
	if err != nil {
		core.UserError(core.WrapError(err, core.EINVALID,
			"fontconfig output file cannot be created: %s", fcListFilename))
		return "", false
	}
	return fcListFilename, true
}

func findFontConfigBinary(conf schuko.Configuration) (string, bool) {
	fcpath := conf.GetString("fontconfig")
	if fcpath == "" {
		tracer().Infof("fontconfig not configured: key 'fontconfig' should point to the 'fc-list' binary")
		return "", false
	}
	if !path.IsAbs(fcpath) {
		core.UserError(core.Error(core.EINVALID,
			"fontconfig binary fc-list must point to absolute path: %s", fcpath))
		return "", false
	}
	if fi, err := os.Stat(fcpath); err != nil || (fi.Mode().Perm()&0100) == 0 {
		core.UserError(core.WrapError(err, core.EINVALID,
			"fontconfig configuration points to an invalid binary: %s", fcpath))
		return "", false
	}
	return fcpath, true
}
