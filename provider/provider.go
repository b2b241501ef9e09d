// Package provider manages the built-in catalog and custom Lua providers.
package provider

import (
	"bytes"
	"path/filepath"

	"github.com/jevah-cli/jevah/api"
	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/filesystem"
	"github.com/jevah-cli/jevah/lookup"
	"github.com/jevah-cli/jevah/provider/custom"
	"github.com/jevah-cli/jevah/util"
	"github.com/jevah-cli/jevah/where"
)

// CustomProviderExtension is the file extension custom provider scripts carry.
const CustomProviderExtension = ".lua"

// Provider represents a content source provider.
type Provider struct {
	ID           string
	Name         string
	UsesHeadless bool // Indicates whether the provider requires a headless browser.
	IsCustom     bool // Reserved for Lua-based providers.
	CreateSource func() (content.Source, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns built-in providers. The Jevah platform catalog is always
// available and needs no script on disk.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:       "jevah",
			Name:     "Jevah",
			IsCustom: false,
			CreateSource: func() (content.Source, error) {
				return lookup.NewSource(lookup.NewClient(api.New())), nil
			},
		},
	}
}

// Customs returns all available Lua providers.
func Customs() []*Provider {
	providers, _ := CustomProviders()
	return providers
}

// Get finds a provider by name, checking builtins before custom scripts.
func Get(name string) (*Provider, bool) {
	for _, p := range Builtins() {
		if p.Name == name {
			return p, true
		}
	}

	for _, p := range Customs() {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

func CustomProviders() ([]*Provider, error) {
	files, err := filesystem.API().ReadDir(where.Sources())
	if err != nil {
		return nil, err
	}

	var providers []*Provider
	for _, f := range files {
		if filepath.Ext(f.Name()) != CustomProviderExtension {
			continue
		}

		if f.Name() == "common.lua" {
			continue
		}

		path := filepath.Join(where.Sources(), f.Name())
		name := util.FileStem(f.Name())

		providers = append(providers, &Provider{
			ID:           custom.IDfromName(name),
			Name:         name,
			UsesHeadless: isHeadless(path),
			IsCustom:     true,
			CreateSource: func() (content.Source, error) {
				return custom.LoadSource(path)
			},
		})
	}

	return providers, nil
}

// Helpers

func isHeadless(path string) bool {
	script, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	match := [][]byte{
		[]byte("require(\"headless\")"),
		[]byte("require('headless')"),
	}

	for _, m := range match {
		if bytes.Contains(script, m) {
			return true
		}
	}
	return false
}
