package main

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/symbolic"
)

// Settings is the contents of a settings file.
type Settings struct {
	// Evaluate enables immediate evaluation of constants and functions.
	Evaluate bool `yaml:"evaluate"`
	// ImplicitMul allows juxtaposition as multiplication. Default true.
	ImplicitMul *bool `yaml:"implicit_mul"`
	// SortTerms orders sums by degree. Default true.
	SortTerms *bool `yaml:"sort_terms"`
	// Precision is the numeric precision in bits.
	Precision uint `yaml:"precision"`
	// SingleLetters splits unknown names into one-letter variables.
	SingleLetters bool `yaml:"single_letters"`
	// Locale is the language of error messages.
	Locale string `yaml:"locale"`
	// Values binds names to expressions.
	Values map[string]string `yaml:"values"`
}

// loadSettings reads a settings file. An empty name gives zero settings.
func loadSettings(name string) (*Settings, error) {
	var s Settings
	if name == "" {
		return &s, nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("reading settings from %s: %w", name, err)
	}
	return &s, nil
}

// options converts settings to parse options.
func (s *Settings) options() []symbolic.Option {
	var opts []symbolic.Option
	if s.Evaluate {
		opts = append(opts, symbolic.Immediate())
	}
	if s.ImplicitMul != nil && !*s.ImplicitMul {
		opts = append(opts, symbolic.DisableImplicitMul())
	}
	if s.SortTerms != nil {
		opts = append(opts, symbolic.SortTerms(*s.SortTerms))
	}
	if s.Precision != 0 {
		opts = append(opts, symbolic.Prec(s.Precision))
	}
	if s.SingleLetters {
		opts = append(opts, symbolic.SingleLetters())
	}
	return opts
}

// bindings parses the configured values under opts. Names are bound in
// sorted order, and each value may use the names bound before it.
func (s *Settings) bindings(opts []symbolic.Option) ([]symbolic.Option, error) {
	names := make([]string, 0, len(s.Values))
	for name := range s.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	var r []symbolic.Option
	for _, name := range names {
		text := s.Values[name]
		e, err := symbolic.Parse(text, append(opts[:len(opts):len(opts)], r...)...)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		r = append(r, symbolic.SetVar(name, e))
	}
	return r, nil
}

// locale returns the configured language, or English.
func (s *Settings) locale() language.Tag {
	if s.Locale == "" {
		return language.English
	}
	t, err := language.Parse(s.Locale)
	if err != nil {
		return language.English
	}
	return t
}
