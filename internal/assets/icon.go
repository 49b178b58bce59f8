// Package assets loads auxiliary UI assets (Codex icon paths) from the
// MediaWiki API. Every failure is swallowed: callers get whatever could be
// loaded and fall back to their own rendering for the rest.
package assets

import (
	"encoding/json"
	"strings"
)

// Icon is one Codex icon. The API returns either a plain SVG path or an
// object with direction and language variants.
type Icon struct {
	Path        string            `json:"path,omitempty"`
	LTR         string            `json:"ltr,omitempty"`
	RTL         string            `json:"rtl,omitempty"`
	Default     string            `json:"default,omitempty"`
	LangCodeMap map[string]string `json:"langCodeMap,omitempty"`
}

// UnmarshalJSON accepts both API shapes
func (i *Icon) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err == nil {
		*i = Icon{Path: path}
		return nil
	}

	var raw struct {
		Path        string                     `json:"path"`
		LTR         string                     `json:"ltr"`
		RTL         string                     `json:"rtl"`
		Default     string                     `json:"default"`
		LangCodeMap map[string]json.RawMessage `json:"langCodeMap"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*i = Icon{Path: raw.Path, LTR: raw.LTR, RTL: raw.RTL, Default: raw.Default}
	for lang, v := range raw.LangCodeMap {
		// Nested variants are not used; keep plain paths only
		var p string
		if json.Unmarshal(v, &p) == nil && p != "" {
			if i.LangCodeMap == nil {
				i.LangCodeMap = make(map[string]string)
			}
			i.LangCodeMap[lang] = p
		}
	}
	return nil
}

// Resolve picks the SVG path for a language and text direction ("ltr" or "rtl")
func (i Icon) Resolve(lang, dir string) string {
	if p, ok := i.LangCodeMap[strings.ToLower(lang)]; ok {
		return p
	}
	if strings.EqualFold(dir, "rtl") && i.RTL != "" {
		return i.RTL
	}
	for _, p := range []string{i.LTR, i.Default, i.Path} {
		if p != "" {
			return p
		}
	}
	return ""
}
