// Package lang resolves translated UI labels. Catalogs are TOML files, one
// per locale, whose nested tables flatten to dotted keys:
//
//	[timepicker]
//	hour = "Hour"
//
// becomes "timepicker.hour". A missing key resolves to the key itself.
package lang

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/log"
)

// FallbackLocale is consulted when the requested locale lacks a key.
const FallbackLocale = "en"

var ErrUnknownLocale = errors.New("unknown locale")

//go:embed locales/*.toml
var builtin embed.FS

// Localer is anything that knows its current locale, typically the
// display a widget lives on.
type Localer interface {
	Locale() string
}

// Tag is a fixed locale usable wherever a Localer is expected.
type Tag string

func (t Tag) Locale() string { return string(t) }

// Catalog holds messages per locale.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
	logger   *log.Logger
}

func NewCatalog() *Catalog {
	return &Catalog{
		messages: make(map[string]map[string]string),
		logger:   log.Default().WithPrefix("lang"),
	}
}

func (c *Catalog) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l
	}
}

// Register merges msgs into locale, overwriting existing keys.
func (c *Catalog) Register(locale string, msgs map[string]string) {
	locale = normalize(locale)
	c.mu.Lock()
	defer c.mu.Unlock()
	dst := c.messages[locale]
	if dst == nil {
		dst = make(map[string]string, len(msgs))
		c.messages[locale] = dst
	}
	for k, v := range msgs {
		dst[k] = v
	}
}

// LoadTOML parses a catalog document and registers it under locale.
func (c *Catalog) LoadTOML(locale string, data []byte) error {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse %s catalog: %w", locale, err)
	}
	msgs := make(map[string]string)
	flatten("", raw, msgs)
	c.Register(locale, msgs)
	return nil
}

// LoadDir registers every *.toml file in dir, named by locale
// (for example "ja.toml").
func (c *Catalog) LoadDir(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return fmt.Errorf("list catalogs: %w", err)
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read catalog: %w", err)
		}
		locale := strings.TrimSuffix(filepath.Base(p), ".toml")
		if err := c.LoadTOML(locale, data); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the label for key in root's locale. Lookup order is the
// exact locale, its language prefix ("ja" for "ja_JP"), then English. A
// nil root uses English.
func (c *Catalog) Get(key string, root Localer) string {
	locale := localeOf(root)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, loc := range candidates(locale) {
		if msg, ok := c.messages[loc][key]; ok {
			return msg
		}
	}
	if near := c.nearest(key); near != "" {
		c.logger.Debug("missing label", "key", key, "locale", locale, "did_you_mean", near)
	} else {
		c.logger.Debug("missing label", "key", key, "locale", locale)
	}
	return key
}

// Has reports whether locale has a catalog.
func (c *Catalog) Has(locale string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.messages[normalize(locale)]
	return ok
}

// Check returns ErrUnknownLocale unless locale, or its language prefix,
// has a catalog.
func (c *Catalog) Check(locale string) error {
	for _, loc := range candidates(locale) {
		if loc == FallbackLocale && normalize(locale) != FallbackLocale {
			continue
		}
		if c.Has(loc) {
			return nil
		}
	}
	return fmt.Errorf("%q: %w", locale, ErrUnknownLocale)
}

// Available lists the registered locales in order.
func (c *Catalog) Available() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for loc := range c.messages {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

// Clear drops a locale's catalog.
func (c *Catalog) Clear(locale string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.messages, normalize(locale))
}

// nearest finds the closest known English key, for diagnostics only.
// Callers hold the read lock.
func (c *Catalog) nearest(key string) string {
	best, bestDist := "", -1
	for k := range c.messages[FallbackLocale] {
		d := levenshtein.ComputeDistance(key, k)
		if d > len(key)/3 {
			continue
		}
		if bestDist < 0 || d < bestDist || (d == bestDist && k < best) {
			best, bestDist = k, d
		}
	}
	return best
}

// ---------------------------------------------------------------------------
// Package-level catalog
// ---------------------------------------------------------------------------

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the shared catalog, seeded with the built-in locales.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = NewCatalog()
		entries, _ := builtin.ReadDir("locales")
		for _, e := range entries {
			data, err := builtin.ReadFile("locales/" + e.Name())
			if err != nil {
				continue
			}
			locale := strings.TrimSuffix(e.Name(), ".toml")
			if err := defaultCatalog.LoadTOML(locale, data); err != nil {
				defaultCatalog.logger.Error("builtin catalog", "locale", locale, "err", err)
			}
		}
	})
	return defaultCatalog
}

// Get looks key up in the shared catalog.
func Get(key string, root Localer) string {
	return Default().Get(key, root)
}

// Register merges msgs into the shared catalog.
func Register(locale string, msgs map[string]string) {
	Default().Register(locale, msgs)
}

// LoadDir loads extra catalogs into the shared catalog.
func LoadDir(dir string) error {
	return Default().LoadDir(dir)
}

func Available() []string { return Default().Available() }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// localeOf tolerates nil and typed-nil roots.
func localeOf(root Localer) (locale string) {
	if root == nil {
		return FallbackLocale
	}
	defer func() {
		if recover() != nil {
			locale = FallbackLocale
		}
	}()
	if l := normalize(root.Locale()); l != "" {
		return l
	}
	return FallbackLocale
}

// candidates is the lookup order for locale.
func candidates(locale string) []string {
	locale = normalize(locale)
	out := []string{locale}
	if i := strings.IndexByte(locale, '_'); i > 0 {
		out = append(out, locale[:i])
	}
	if locale != FallbackLocale {
		out = append(out, FallbackLocale)
	}
	return out
}

// normalize maps "ja-JP.UTF-8" to "ja_JP".
func normalize(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexByte(locale, '.'); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "-", "_")
	if i := strings.IndexByte(locale, '_'); i > 0 {
		return strings.ToLower(locale[:i]) + "_" + strings.ToUpper(locale[i+1:])
	}
	return strings.ToLower(locale)
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
