// Package frequency counts mentions of fruit terms across a corpus.
package frequency

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category groups the literal surface forms counted under one label.
type Category struct {
	Label    string   `yaml:"label"`
	Variants []string `yaml:"variants"`
}

// Lexicon is an ordered set of categories. Output follows lexicon order.
type Lexicon struct {
	Categories []Category `yaml:"categories"`
}

// DefaultLexicon returns the five built-in fruit categories. Variants are
// matched literally and are not normalized.
func DefaultLexicon() Lexicon {
	return Lexicon{Categories: []Category{
		{Label: "Palm/نخل", Variants: []string{"نخل", "نخيل", "النخل", "النخيل", "نخلة", "ﻧﺨﻞ", "ﻧﺨﯿﻞ"}},
		{Label: "Grape/عنب", Variants: []string{"عنب", "اعناب", "الأعناب", "العنب", "أعناب", "عنابا"}},
		{Label: "Pomegranate/رمان", Variants: []string{"رمان", "الرمان", "رمّان", "الرمّان", "رمّانٌ", "والرمّان"}},
		{Label: "Olive/زيتون", Variants: []string{"زيتون", "الزيتون", "زيتونة", "زيتوناً", "والزيتون"}},
		{Label: "Fig/تين", Variants: []string{"تين", "التين", "والتين"}},
	}}
}

// Labels returns the category labels in order.
func (l Lexicon) Labels() []string {
	labels := make([]string, len(l.Categories))
	for i, c := range l.Categories {
		labels[i] = c.Label
	}
	return labels
}

// Validate checks that every category has a unique label and at least one
// non-empty variant.
func (l Lexicon) Validate() error {
	if len(l.Categories) == 0 {
		return errors.New("lexicon has no categories")
	}
	seen := make(map[string]bool, len(l.Categories))
	for i, c := range l.Categories {
		label := strings.TrimSpace(c.Label)
		if label == "" {
			return fmt.Errorf("category %d: empty label", i)
		}
		if seen[label] {
			return fmt.Errorf("category %q: duplicate label", c.Label)
		}
		seen[label] = true
		if len(c.Variants) == 0 {
			return fmt.Errorf("category %q: no variants", c.Label)
		}
		for _, v := range c.Variants {
			if v == "" {
				return fmt.Errorf("category %q: empty variant", c.Label)
			}
		}
	}
	return nil
}

// LoadLexicon reads and validates a YAML lexicon file.
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	var l Lexicon
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	if err := l.Validate(); err != nil {
		return Lexicon{}, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return l, nil
}
