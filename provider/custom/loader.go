// Package custom provides a bridge between the Go core and Lua-based lookup scripts.
package custom

import (
	"fmt"

	"github.com/jevah-cli/jevah/constant"
	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/internal/scraper"
	"github.com/jevah-cli/jevah/util"
	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"
)

// IDfromName generates a canonical provider identifier for a given Lua script basename.
func IDfromName(name string) string {
	return name + " custom"
}

// LoadSource initializes a new content.Source instance by executing and validating a Lua lookup script.
func LoadSource(path string) (content.Source, error) {
	state := lua.NewState()
	libs.Preload(state)
	registerTLSClient(state) // Injected from wrapper_tls.go

	// Load and compile the Lua script (using cache if available).
	err := scraper.PreCompileAndLoad(state, path)
	if err != nil {
		return nil, err
	}

	name := util.FileStem(path)

	// Validation
	required := []string{
		constant.SearchContentFn,
		constant.ContentStreamsFn,
	}

	for _, fn := range required {
		if state.GetGlobal(fn).Type() != lua.LTFunction {
			return nil, fmt.Errorf("function %s is required but not defined in %s", fn, name)
		}
	}

	return newLuaSource(name, state)
}
