package ai

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CatalogEntry describes a supported provider to API consumers.
type CatalogEntry struct {
	Name         ProviderName `yaml:"name" json:"name"`
	DisplayName  string       `yaml:"display_name" json:"display_name"`
	Description  string       `yaml:"description" json:"description"`
	DefaultModel string       `yaml:"default_model" json:"default_model"`
	EndpointBase string       `yaml:"endpoint_base" json:"-"`
}

var catalog = mustLoadCatalog(catalogYAML)

func mustLoadCatalog(data []byte) []CatalogEntry {
	entries, err := parseCatalog(data)
	if err != nil {
		panic(err)
	}
	return entries
}

func parseCatalog(data []byte) ([]CatalogEntry, error) {
	var doc struct {
		Providers []CatalogEntry `yaml:"providers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse provider catalog: %w", err)
	}
	if len(doc.Providers) == 0 {
		return nil, fmt.Errorf("provider catalog is empty")
	}
	for _, entry := range doc.Providers {
		if entry.Name == "" || entry.DefaultModel == "" {
			return nil, fmt.Errorf("provider catalog entry %q is incomplete", entry.Name)
		}
	}
	return doc.Providers, nil
}

// Catalog lists every supported provider in display order.
func Catalog() []CatalogEntry {
	return append([]CatalogEntry(nil), catalog...)
}

// LookupProvider returns the catalog entry for name.
func LookupProvider(name ProviderName) (CatalogEntry, bool) {
	for _, entry := range catalog {
		if entry.Name == name {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}
