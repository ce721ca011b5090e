package language

import "strings"

type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Catalog maps language codes to English display names.
type Catalog struct {
	ordered []Language
	byCode  map[string]string
}

func NewCatalog(languages []Language) *Catalog {
	c := &Catalog{
		ordered: make([]Language, 0, len(languages)),
		byCode:  make(map[string]string, len(languages)),
	}
	for _, lang := range languages {
		code := strings.ToLower(strings.TrimSpace(lang.Code))
		if code == "" {
			continue
		}
		if _, dup := c.byCode[code]; dup {
			continue
		}
		c.byCode[code] = lang.Name
		c.ordered = append(c.ordered, Language{Code: code, Name: lang.Name})
	}
	return c
}

// Name falls back to the upper-cased code for unknown languages.
func (c *Catalog) Name(code string) string {
	if name, ok := c.byCode[strings.ToLower(code)]; ok {
		return name
	}
	return strings.ToUpper(code)
}

func (c *Catalog) Known(code string) bool {
	_, ok := c.byCode[strings.ToLower(code)]
	return ok
}

func (c *Catalog) Supported() []Language {
	out := make([]Language, len(c.ordered))
	copy(out, c.ordered)
	return out
}
