// Package locale provides message catalogs and locale display names.
package locale

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedCatalogs embed.FS

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en_US"

// Catalog holds translated messages keyed by locale code.
type Catalog struct {
	messages      map[string]map[string]string
	defaultLocale string
	uiLocale      string
	supported     []string
}

// Options configures a Catalog.
type Options struct {
	// DefaultLocale is the fallback for missing translations
	DefaultLocale string

	// UILocale is the locale messages are rendered in
	UILocale string

	// Supported lists the locale codes reported by AllLocales.
	// When empty, the locales with a catalog are used.
	Supported []string
}

// New creates a catalog with the embedded message files loaded.
func New(opts Options) (*Catalog, error) {
	c := &Catalog{
		messages:      make(map[string]map[string]string),
		defaultLocale: opts.DefaultLocale,
		uiLocale:      opts.UILocale,
	}
	if c.defaultLocale == "" {
		c.defaultLocale = DefaultLocale
	}
	if c.uiLocale == "" {
		c.uiLocale = c.defaultLocale
	}

	entries, err := embeddedCatalogs.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("reading embedded catalogs: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := embeddedCatalogs.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading catalog %s: %w", entry.Name(), err)
		}
		if err := c.add(strings.TrimSuffix(entry.Name(), ".yaml"), data); err != nil {
			return nil, err
		}
	}

	c.supported = append([]string(nil), opts.Supported...)
	if len(c.supported) == 0 {
		c.supported = c.Locales()
	}

	return c, nil
}

// LoadFromDirectory merges every <locale>.yaml file in dir into the catalog.
// Messages in dir override embedded ones.
func (c *Catalog) LoadFromDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading catalog directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("reading catalog %s: %w", entry.Name(), err)
		}
		if err := c.add(strings.TrimSuffix(entry.Name(), ".yaml"), data); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) add(locale string, data []byte) error {
	var messages map[string]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return fmt.Errorf("parsing catalog %s: %w", locale, err)
	}
	if c.messages[locale] == nil {
		c.messages[locale] = make(map[string]string, len(messages))
	}
	for key, msg := range messages {
		c.messages[locale][key] = msg
	}
	return nil
}

// Translate renders key in the UI locale, substituting {$name} placeholders
// from params. Missing keys fall back to the default locale, then to "##key##".
func (c *Catalog) Translate(key string, params map[string]string) string {
	return c.TranslateIn(c.uiLocale, key, params)
}

// TranslateIn renders key in locale.
func (c *Catalog) TranslateIn(locale, key string, params map[string]string) string {
	msg, ok := c.messages[locale][key]
	if !ok {
		msg, ok = c.messages[c.defaultLocale][key]
	}
	if !ok {
		return "##" + key + "##"
	}
	return substitute(msg, params)
}

func substitute(msg string, params map[string]string) string {
	if len(params) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(params)*2)
	for name, value := range params {
		pairs = append(pairs, "{$"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// UILocale returns the locale messages are rendered in.
func (c *Catalog) UILocale() string {
	return c.uiLocale
}

// Locales returns the locale codes that have a catalog, sorted.
func (c *Catalog) Locales() []string {
	locales := make([]string, 0, len(c.messages))
	for loc := range c.messages {
		locales = append(locales, loc)
	}
	sort.Strings(locales)
	return locales
}

// AllLocales maps every supported locale code to its display name.
func (c *Catalog) AllLocales() map[string]string {
	all := make(map[string]string, len(c.supported))
	for _, code := range c.supported {
		all[code] = DisplayName(code)
	}
	return all
}

// Tag parses a platform locale code such as "fr_CA".
func Tag(code string) (language.Tag, error) {
	return language.Parse(strings.ReplaceAll(code, "_", "-"))
}

// DisplayName returns the locale's name in its own language, or the code
// itself when it cannot be parsed.
func DisplayName(code string) string {
	tag, err := Tag(code)
	if err != nil {
		return code
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return code
}
