// Package custom provides a bridge between the Go core and Lua-based lookup scripts.
package custom

import (
	"fmt"

	"github.com/jevah-cli/jevah/content"
	lua "github.com/yuin/gopher-lua"
)

// Helper to get string from table with default
func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return val.String()
	}
	return ""
}

// Helper to get int from table, zero when absent or unparseable
func getInt(table *lua.LTable, key string) int {
	val := table.RawGetString(key)
	if val.Type() == lua.LTNumber {
		return int(val.(lua.LNumber))
	}
	return 0
}

func itemFromTable(table *lua.LTable, index uint16) (*content.Item, error) {
	title := getString(table, "title")
	url := getString(table, "url")

	if title == "" || url == "" {
		return nil, fmt.Errorf("item must have title and url")
	}

	// Kind defaults to video when the script omits or mislabels it.
	kind, err := content.ParseKind(getString(table, "kind"))
	if err != nil {
		kind = content.Video
	}

	id := getString(table, "id")
	if id == "" {
		id = url // Use URL as ID for custom providers usually
	}

	item := &content.Item{
		ID:           id,
		Title:        title,
		Kind:         kind,
		FileURL:      url,
		ThumbnailURL: getString(table, "thumbnail"),
		Uploader:     getString(table, "uploader"),
		Duration:     getInt(table, "duration"),
		Index:        index,
	}

	return item, nil
}

func streamFromTable(table *lua.LTable, index uint16) (*content.Stream, error) {
	url := getString(table, "url")
	quality := getString(table, "quality")

	if url == "" {
		return nil, fmt.Errorf("stream must have url")
	}

	stream := &content.Stream{
		URL:       url,
		Quality:   quality,
		Extension: getString(table, "extension"),
		Index:     index,
		Headers:   make(map[string]string),
	}

	// Headers
	headersTbl := table.RawGetString("headers")
	if headersTbl.Type() == lua.LTTable {
		headersTbl.(*lua.LTable).ForEach(func(k, v lua.LValue) {
			stream.Headers[k.String()] = v.String()
		})
	}

	return stream, nil
}
