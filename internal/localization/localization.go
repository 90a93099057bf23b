// Package localization provides the localized user-facing strings of the
// engine, most importantly the blocked-message warnings returned to the chat
// subsystem, keyed by detection severity. Default translations are embedded
// so the engine works without any locale directory; an external directory can
// override them at startup.
package localization

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// Localizer manages the translations for the application.
// It holds a map of languages, each with its own map of translation keys and values.
type Localizer struct {
	translations map[string]map[string]string
	mu           sync.RWMutex
}

// NewLocalizer returns a Localizer loaded with the embedded translations.
func NewLocalizer() (*Localizer, error) {
	l := &Localizer{translations: make(map[string]map[string]string)}

	entries, err := embeddedLocales.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded locales: %w", err)
	}
	for _, entry := range entries {
		data, err := embeddedLocales.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded locale %s: %w", entry.Name(), err)
		}
		if err := l.addLocale(entry.Name(), data); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// LoadDir overlays translations from a directory of JSON files named by
// language code (e.g. "en.json"), replacing embedded entries key by key.
func (l *Localizer) LoadDir(path string) error {
	files, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to read localization directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(path, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read localization file %s: %w", file.Name(), err)
		}
		if err := l.addLocale(file.Name(), data); err != nil {
			return err
		}
	}
	return nil
}

func (l *Localizer) addLocale(filename string, data []byte) error {
	lang := strings.TrimSuffix(filename, ".json")

	var translations map[string]string
	if err := json.Unmarshal(data, &translations); err != nil {
		return fmt.Errorf("failed to parse localization file %s: %w", filename, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.translations[lang] == nil {
		l.translations[lang] = make(map[string]string)
	}
	for k, v := range translations {
		l.translations[lang][k] = v
	}
	return nil
}

// GetString returns the localized string for a given key and language.
// If the language or the key is not found, it returns the key itself as a fallback.
func (l *Localizer) GetString(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if langTranslations, ok := l.translations[lang]; ok {
		if value, ok := langTranslations[key]; ok {
			return value
		}
	}

	// Fallback to a default language if the key is not found in the specified language
	if lang != "en" {
		if enTranslations, ok := l.translations["en"]; ok {
			if value, ok := enTranslations[key]; ok {
				return value
			}
		}
	}

	return key
}
