// Package knowledge loads the versioned reference data the pipeline runs on:
// bilingual dictionaries, glossary enrichment, domain vocabularies, entity term
// lists, language names and the similar-case corpus.
package knowledge

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/doclens/internal/core/domain"
)

// SupportedVersion is the only resource format version this build reads.
const SupportedVersion = 1

const (
	dictionariesFile = "dictionaries.yaml"
	glossaryFile     = "glossary.yaml"
	vocabulariesFile = "vocabularies.yaml"
	casesFile        = "cases.yaml"
	languagesFile    = "languages.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

type Base struct {
	Dictionaries map[string]Pair
	Glossary     Glossary
	Vocabularies Vocabularies
	Cases        []domain.SimilarCase
	Languages    []Language
}

// Pair is the term table for one "{source}-{target}" language pair.
type Pair struct {
	Terms  map[string]string `yaml:"terms"`
	Common map[string]string `yaml:"common"`
}

type Glossary struct {
	Explanations map[string]map[string]string `yaml:"explanations"`
	Contexts     map[string]string            `yaml:"contexts"`
	Examples     map[string][]string          `yaml:"examples"`
	Fallback     GlossaryFallback             `yaml:"fallback"`
}

type GlossaryFallback struct {
	Terms    []string          `yaml:"terms"`
	Document map[string]string `yaml:"document"`
	Examples []string          `yaml:"examples"`
}

type Vocabularies struct {
	Domains  map[string][]string `yaml:"domains"`
	Entities EntityLists         `yaml:"entities"`
}

type EntityLists struct {
	LegalTerms           []string `yaml:"legal_terms"`
	MedicalTerms         []string `yaml:"medical_terms"`
	TechnicalTerms       []string `yaml:"technical_terms"`
	OrganizationSuffixes []string `yaml:"organization_suffixes"`
	LocationSuffixes     []string `yaml:"location_suffixes"`
}

type Language struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

// LoadEmbedded reads the knowledge base compiled into the binary.
func LoadEmbedded() (*Base, error) {
	return load(readEmbedded)
}

// LoadDir reads resources from dir; files missing there come from the embedded copy.
func LoadDir(dir string) (*Base, error) {
	if strings.TrimSpace(dir) == "" {
		return LoadEmbedded()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat knowledge dir: %w", err)
	}
	if !info.IsDir() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "load knowledge", fmt.Errorf("%s is not a directory", dir))
	}

	return load(func(name string) ([]byte, error) {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			return readEmbedded(name)
		}
		return raw, err
	})
}

func readEmbedded(name string) ([]byte, error) {
	return embedded.ReadFile("data/" + name)
}

func load(read func(name string) ([]byte, error)) (*Base, error) {
	var dictionaries struct {
		Version int             `yaml:"version"`
		Pairs   map[string]Pair `yaml:"pairs"`
	}
	var glossary struct {
		Version  int `yaml:"version"`
		Glossary `yaml:",inline"`
	}
	var vocabularies struct {
		Version      int `yaml:"version"`
		Vocabularies `yaml:",inline"`
	}
	var cases struct {
		Version int                  `yaml:"version"`
		Cases   []domain.SimilarCase `yaml:"cases"`
	}
	var languages struct {
		Version   int        `yaml:"version"`
		Languages []Language `yaml:"languages"`
	}

	resources := []struct {
		name    string
		out     any
		version *int
	}{
		{dictionariesFile, &dictionaries, &dictionaries.Version},
		{glossaryFile, &glossary, &glossary.Version},
		{vocabulariesFile, &vocabularies, &vocabularies.Version},
		{casesFile, &cases, &cases.Version},
		{languagesFile, &languages, &languages.Version},
	}
	for _, res := range resources {
		raw, err := read(res.name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", res.name, err)
		}
		if err := yaml.Unmarshal(raw, res.out); err != nil {
			return nil, domain.WrapError(domain.ErrInvalidInput, "decode "+res.name, err)
		}
		if *res.version != SupportedVersion {
			return nil, domain.WrapError(
				domain.ErrInvalidInput,
				"decode "+res.name,
				fmt.Errorf("unsupported version %d", *res.version),
			)
		}
	}

	base := &Base{
		Dictionaries: dictionaries.Pairs,
		Glossary:     glossary.Glossary,
		Vocabularies: vocabularies.Vocabularies,
		Cases:        cases.Cases,
		Languages:    languages.Languages,
	}
	if err := base.validate(); err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "validate knowledge", err)
	}
	return base, nil
}

func (b *Base) validate() error {
	for key := range b.Dictionaries {
		src, tgt, ok := strings.Cut(key, "-")
		if !ok || src == "" || tgt == "" {
			return fmt.Errorf("malformed language pair %q", key)
		}
	}

	seen := make(map[string]struct{}, len(b.Cases))
	for _, c := range b.Cases {
		if c.ID == "" {
			return fmt.Errorf("case without id: %q", c.Title)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("duplicate case id %q", c.ID)
		}
		seen[c.ID] = struct{}{}

		switch c.Domain {
		case domain.DomainLegal, domain.DomainMedical, domain.DomainTechnical:
		default:
			return fmt.Errorf("case %s has unknown domain %q", c.ID, c.Domain)
		}
	}
	return nil
}

// PairKey builds the dictionary key for a language pair.
func PairKey(source, target string) string {
	return source + "-" + target
}
