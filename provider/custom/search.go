// Package custom provides a bridge between the Go core and Lua-based lookup scripts.
package custom

import (
	"strconv"

	"github.com/jevah-cli/jevah/constant"
	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/internal/cache"
	lua "github.com/yuin/gopher-lua"
)

func (s *luaSource) Search(query string) ([]*content.Item, error) {
	cacheKey := cache.GenerateKey(query, s.Name())
	var cachedItems []*content.Item
	if cache.Read(cacheKey, &cachedItems) {
		for _, item := range cachedItems {
			item.Source = s
		}
		return cachedItems, nil
	}

	val, err := s.call(constant.SearchContentFn, lua.LTTable, lua.LString(query))
	if err != nil {
		return nil, err
	}

	table := val.(*lua.LTable)
	var items []*content.Item

	var errs []error
	table.ForEach(func(k, v lua.LValue) {
		if k.Type() != lua.LTNumber || v.Type() != lua.LTTable {
			return // Skip invalid entries
		}

		idx, err := strconv.ParseUint(k.String(), 10, 16)
		if err != nil {
			errs = append(errs, err)
			return
		}

		item, err := itemFromTable(v.(*lua.LTable), uint16(idx))
		if err != nil {
			errs = append(errs, err)
			return
		}

		item.Source = s
		items = append(items, item)
	})

	if len(items) == 0 && len(errs) > 0 {
		return nil, errs[0]
	}

	if len(items) > 0 {
		_ = cache.Write(cacheKey, items)
	}

	return items, nil
}
