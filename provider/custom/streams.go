// Package custom provides a bridge between the Go core and Lua-based lookup scripts.
package custom

import (
	"strconv"

	"github.com/jevah-cli/jevah/constant"
	"github.com/jevah-cli/jevah/content"
	lua "github.com/yuin/gopher-lua"
)

func (s *luaSource) StreamsOf(item *content.Item) ([]*content.Stream, error) {
	// No caching for streams (links expire)

	val, err := s.call(constant.ContentStreamsFn, lua.LTTable, lua.LString(item.FileURL))
	if err != nil {
		return nil, err
	}

	table := val.(*lua.LTable)
	var streams []*content.Stream
	var errs []error

	table.ForEach(func(k, v lua.LValue) {
		if k.Type() != lua.LTNumber || v.Type() != lua.LTTable {
			return
		}

		idx, err := strconv.ParseUint(k.String(), 10, 16)
		if err != nil {
			errs = append(errs, err)
			return
		}

		stream, err := streamFromTable(v.(*lua.LTable), uint16(idx))
		if err != nil {
			errs = append(errs, err)
			return
		}

		streams = append(streams, stream)
	})

	if len(streams) == 0 && len(errs) > 0 {
		return nil, errs[0]
	}

	return streams, nil
}
