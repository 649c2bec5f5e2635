// Package formtext serves the labels and help text of the proposal forms from an embedded YAML file.
package formtext

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"confsite/internal/domain"
)

//go:embed forms.yaml
var formsYAML []byte

type catalogFile struct {
	Base     map[string]domain.FieldText                    `yaml:"base"`
	Variants map[domain.Variant]map[string]domain.FieldText `yaml:"variants"`
}

type catalog struct {
	base     map[string]domain.FieldText
	variants map[domain.Variant]map[string]domain.FieldText
}

// Load parses the embedded catalogue. Every field of every variant form must have a label.
func Load() (domain.FormCatalog, error) {
	return parse(formsYAML)
}

func parse(raw []byte) (*catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse form catalogue: %w", err)
	}
	c := &catalog{base: f.Base, variants: f.Variants}
	for _, v := range domain.Variants {
		form, err := domain.FormFor(v)
		if err != nil {
			return nil, err
		}
		for _, field := range form.Fields {
			if c.FieldText(v, field).Label == "" {
				return nil, fmt.Errorf("form catalogue: %s field %q has no label", v, field)
			}
		}
	}
	return c, nil
}

// FieldText returns the base text for field with any per-variant override applied.
func (c *catalog) FieldText(v domain.Variant, field string) domain.FieldText {
	text := c.base[field]
	if o, ok := c.variants[v][field]; ok {
		if o.Label != "" {
			text.Label = o.Label
		}
		if o.HelpText != "" {
			text.HelpText = o.HelpText
		}
	}
	return text
}
