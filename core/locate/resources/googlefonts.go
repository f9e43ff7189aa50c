package resources

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"
	"sync"

	"github.com/fontbake/fontbake/core"
	"github.com/fontbake/fontbake/core/font"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
)

// GoogleFontInfo is the directory entry of one font family at the Google
// Fonts service.
type GoogleFontInfo struct {
	Family   string            `json:"family"`
	Version  string            `json:"version"`
	Variants []string          `json:"variants"`
	Subsets  []string          `json:"subsets"`
	Files    map[string]string `json:"files"`
}

type googleFontsList struct {
	Items []GoogleFontInfo `json:"items"`
}

var loadGoogleFontsDir sync.Once
var googleFontsDirectory googleFontsList
var googleFontsLoadError error
var googleFontsAPI string = `https://www.googleapis.com/webfonts/v1/webfonts?`

// SetupGoogleFontsDirectory downloads the font directory of the Google Fonts
// service, once per process. The API key is taken from configuration key
// 'google-api-key' or from the environment.
func SetupGoogleFontsDirectory(conf schuko.Configuration) error {
	loadGoogleFontsDir.Do(func() {
		apikey := conf.GetString("google-api-key")
		if apikey == "" {
			apikey = os.Getenv("GOOGLE_API_KEY")
		}
		if apikey == "" {
			err := errors.New("Google API key not set")
			tracer().Errorf(err.Error())
			googleFontsLoadError = core.WrapError(err, core.EMISSING,
				`Google Fonts API-key must be set in global configuration or as GOOGLE_API_KEY in environment;
      please refer to https://developers.google.com/fonts/docs/developer_api`)
			return
		}
		values := url.Values{
			"sort": []string{"alpha"},
			"key":  []string{apikey},
		}
		resp, err := http.Get(googleFontsAPI + values.Encode())
		if err != nil {
			tracer().Errorf("Google Fonts API request not OK: %s", err.Error())
			googleFontsLoadError = core.WrapError(err, core.ECONNECTION,
				"could not get fonts-directory from Google font service")
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			tracer().Errorf("Google Fonts API request not OK: %v", resp.Status)
			err := core.Error(resp.StatusCode, "response: %v", resp.Status)
			googleFontsLoadError = core.WrapError(err, core.ECONNECTION,
				"could not get fonts-directory from Google font service")
			return
		}
		dec := json.NewDecoder(resp.Body)
		err = dec.Decode(&googleFontsDirectory)
		if err != nil {
			googleFontsLoadError = core.WrapError(err, core.EINVALID,
				"could not decode fonts-list from Google font service")
		}
	})
	return googleFontsLoadError
}

// FindGoogleFont searches the Google Fonts directory for families matching a
// given name, carrying a variant for the given style and weight. Families
// are returned in directory order.
func FindGoogleFont(conf schuko.Configuration, name string, style xfont.Style,
	weight xfont.Weight) ([]GoogleFontInfo, error) {
	//
	if err := SetupGoogleFontsDirectory(conf); err != nil {
		return nil, err
	}
	var found []GoogleFontInfo
	for _, fi := range googleFontsDirectory.Items {
		if !strings.EqualFold(fi.Family, name) {
			continue
		}
		if matchGoogleVariant(fi, style, weight) != "" {
			found = append(found, fi)
		}
	}
	if len(found) == 0 {
		return nil, NotFound(name)
	}
	return found, nil
}

// matchGoogleVariant picks the best-matching variant name of a family, or ""
// if none scores above low confidence.
func matchGoogleVariant(fi GoogleFontInfo, style xfont.Style, weight xfont.Weight) string {
	best, confidence := "", font.NoConfidence
	for _, v := range fi.Variants {
		// variant names combine weight and style, e.g. "700italic"
		weightName := strings.TrimSuffix(strings.ToLower(v), "italic")
		weightName = strings.TrimSuffix(weightName, "oblique")
		if weightName == "" {
			weightName = "regular"
		}
		c := font.MatchStyle(v, style) + font.MatchWeight(weightName, weight)
		if c > confidence {
			best, confidence = v, c
		}
	}
	if confidence <= 2*font.LowConfidence {
		return ""
	}
	return best
}

// CacheGoogleFont downloads a variant of a Google font into the user's cache
// directory and returns the local path. An already cached copy is reused.
func CacheGoogleFont(conf schuko.Configuration, fi GoogleFontInfo, variant string) (string, error) {
	fileurl, ok := fi.Files[variant]
	if !ok {
		return "", core.Error(core.EMISSING, "font %s has no variant %s", fi.Family, variant)
	}
	ext := path.Ext(fileurl)
	filename := fmt.Sprintf("%s-%s-%s%s", sanitize(fi.Family), variant, fi.Version, ext)
	cachedir, err := CacheDirPath(conf, "fonts")
	if err != nil {
		return "", err
	}
	fpath := path.Join(cachedir, filename)
	if _, err := os.Stat(fpath); err == nil {
		tracer().Debugf("found cached copy of %s %s", fi.Family, variant)
		return fpath, nil
	}
	tracer().Infof("downloading %s %s from the Google font service", fi.Family, variant)
	if err := DownloadCachedFile(fpath, fileurl); err != nil {
		return "", core.WrapError(err, core.ECONNECTION,
			"could not download font %s from Google font service", fi.Family)
	}
	return fpath, nil
}

func sanitize(family string) string {
	return strings.ReplaceAll(strings.TrimSpace(family), " ", "")
}

// ---------------------------------------------------------------------------

// ListGoogleFonts produces a listing of available fonts from the Google
// webfont service, with font-family names matching a given pattern.
//
// If not already done, the list of fonts will be downloaded from Google.
func ListGoogleFonts(conf schuko.Configuration, pattern string) {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	if err := SetupGoogleFontsDirectory(conf); err != nil {
		tracer().Errorf(core.UserMessage(err))
	} else {
		listGoogleFonts(googleFontsDirectory, pattern)
	}
	tracer().SetTraceLevel(level)
}

func listGoogleFonts(list googleFontsList, pattern string) {
	r, err := regexp.Compile(pattern)
	if err != nil {
		tracer().Errorf("cannot list Google fonts: invalid pattern: %v", err)
		return
	}
	tracer().Infof("%d fonts in list", len(list.Items))
	tracer().Infof("======================================")
	for i, finfo := range list.Items {
		if r.MatchString(finfo.Family) {
			tracer().Infof("[%4d] %-20s: %s", i, finfo.Family, finfo.Version)
			tracer().Infof("       subsets: %v", finfo.Subsets)
			for k, v := range finfo.Files {
				tracer().Infof("       - %-18s: %s", k, v[len(v)-4:])
			}
		}
	}
}
