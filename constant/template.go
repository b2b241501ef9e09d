// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Lookup Function Identifiers - these constants define the required global function signatures for Lua lookup modules.
const (
	SearchContentFn  = "SearchContent"
	ContentStreamsFn = "ContentStreams"
)

// SourceTemplate is a Go text/template for scaffolding new Lua lookup source files.
const SourceTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias item { id: string, title: string, kind: string, url: string, thumbnail: string|nil, uploader: string|nil }
---@alias stream { url: string, quality: string|nil, headers: table|nil }


----- IMPORTS -----
--- END IMPORTS ---



----- VARIABLES -----
--- END VARIABLES ---



----- MAIN -----

--- Searches for content with the given query.
-- @param query string Query to search for
-- @return item[] Table of content items
function {{ .SearchContentFn }}(query)
	return {}
end


--- Gets the playable streams for a content item.
-- @param itemURL string URL of the content item
-- @return stream[] Table of streams
function {{ .ContentStreamsFn }}(itemURL)
	return {}
end


--- END MAIN ---




----- HELPERS -----
--- END HELPERS ---

-- ex: ts=4 sw=4 et filetype=lua
`
