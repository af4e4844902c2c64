// Package i18n provides the translation catalog used by every rendering
// path. A Catalog is loaded once at startup and never mutated, so it can be
// shared freely between requests.
package i18n

import (
	"embed"
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type Lang string

const (
	ZhTW Lang = "zh-TW"
	En   Lang = "en"

	Default = ZhTW
)

var Supported = []Lang{ZhTW, En}

//go:embed locales/*.yaml
var locales embed.FS

// Catalog maps, per language, a message key to its text. Keys are either UI
// identifiers ("submit_button") or source-language strings; a missing key
// translates to itself. The two kinds live in separate tables so that text
// typed by a respondent is only ever matched against source strings.
type Catalog struct {
	ui       map[Lang]map[string]string
	messages map[Lang]map[string]string
}

type localeFile struct {
	UI       map[string]string `yaml:"ui"`
	Messages map[string]string `yaml:"messages"`
}

// Load reads the embedded locale resources.
func Load() (*Catalog, error) {
	return LoadFS(locales, "locales")
}

// LoadFS reads one "<lang>.yaml" file per supported language from dir.
func LoadFS(fsys fs.FS, dir string) (*Catalog, error) {
	c := &Catalog{
		ui:       map[Lang]map[string]string{},
		messages: map[Lang]map[string]string{},
	}
	for _, lang := range Supported {
		raw, err := fs.ReadFile(fsys, path.Join(dir, string(lang)+".yaml"))
		if err != nil {
			return nil, errors.Wrapf(err, "i18n.read %s", lang)
		}
		var file localeFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, errors.Wrapf(err, "i18n.parse %s", lang)
		}
		c.ui[lang] = file.UI
		c.messages[lang] = file.Messages
	}
	return c, nil
}

// Tr translates key into lang, looking up UI identifiers first.
func (c *Catalog) Tr(key string, lang Lang) string {
	if v, ok := c.ui[lang][key]; ok {
		return v
	}
	return c.Message(key, lang)
}

// Message translates a source-language string, ignoring UI identifiers.
func (c *Catalog) Message(text string, lang Lang) string {
	if v, ok := c.messages[lang][text]; ok {
		return v
	}
	return text
}

// For binds a language, for use from templates.
func (c *Catalog) For(lang Lang) Localizer {
	return Localizer{catalog: c, Lang: lang}
}

type Localizer struct {
	catalog *Catalog
	Lang    Lang
}

func (l Localizer) T(key string) string {
	return l.catalog.Tr(key, l.Lang)
}

// HTMLLang is the value of the <html lang> attribute.
func (l Localizer) HTMLLang() string {
	if l.Lang == En {
		return "en"
	}
	return "zh-Hant"
}

// Normalize maps any language string to a supported language: anything
// English is En, everything else the default.
func Normalize(raw string) Lang {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Default
	}
	if strings.HasPrefix(strings.ToLower(raw), "en") {
		return En
	}
	return Default
}

var matcher = language.NewMatcher([]language.Tag{
	language.TraditionalChinese,
	language.English,
})

// Negotiate picks a language from an Accept-Language header. ok is false
// when the header is empty, malformed, or matches nothing supported.
func Negotiate(acceptLanguage string) (lang Lang, ok bool) {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default, false
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default, false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default, false
	}
	if idx == 1 {
		return En, true
	}
	return ZhTW, true
}
