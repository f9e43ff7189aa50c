package resources

import (
	"testing"

	"github.com/fontbake/fontbake/core"
	"github.com/fontbake/fontbake/core/font"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	xfont "golang.org/x/image/font"
)

func TestNotFound(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.resources")
	defer teardown()
	//
	err := NotFound("MissingSans")
	if core.Code(err) != core.EMISSING {
		t.Errorf("expected error code EMISSING, got %d", core.Code(err))
	}
}

func TestResolveFromRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.resources", "fontbake.font")
	defer teardown()
	//
	conf := testconfig.Conf{}
	name := font.NormalizeFontname("Go Sans", xfont.StyleNormal, xfont.WeightNormal)
	font.GlobalRegistry().StoreFont(name, font.FallbackFont())
	//
	promise := ResolveTypeCase(conf, "Go Sans", xfont.StyleNormal, xfont.WeightNormal, 18)
	typecase, err := promise.TypeCase()
	if err != nil {
		t.Fatal(err)
	}
	if typecase == nil {
		t.Fatal("expected a typecase from the registry, got none")
	}
	if typecase.PixelSize() != 18 {
		t.Errorf("expected a typecase of size 18, got %d", typecase.PixelSize())
	}
}

func TestFindProjectFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontbake.resources")
	defer teardown()
	//
	conf := testconfig.Conf{"font-dir": t.TempDir()}
	fpath := findProjectFont(conf, "NoSuchFamily", xfont.StyleNormal, xfont.WeightNormal)
	if fpath != "" {
		t.Errorf("expected no match in an empty font directory, got %q", fpath)
	}
	//
	conf = testconfig.Conf{} // no font-dir configured
	fpath = findProjectFont(conf, "NoSuchFamily", xfont.StyleNormal, xfont.WeightNormal)
	if fpath != "" {
		t.Errorf("expected no match without a configured font directory, got %q", fpath)
	}
}
