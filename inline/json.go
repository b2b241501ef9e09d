// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"

	"github.com/jevah-cli/jevah/api"
	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/stats"
)

type Media struct {
	// Source is the name of the provider.
	Source string `json:"source"`
	// Item is the media object from the source.
	Item *content.Item `json:"item"`
	// Stats is the engagement snapshot from the platform (optional).
	Stats *stats.ContentStats `json:"stats,omitempty"`
}

type Output struct {
	Query  string   `json:"query"`
	Result []*Media `json:"result"`
}

func asJson(items []*content.Item, query string, client *api.Client) ([]byte, error) {
	var result = make([]*Media, len(items))
	for i, it := range items {
		var st *stats.ContentStats
		if client != nil {
			// Stats degrade gracefully, a missing snapshot is omitted.
			st, _ = client.Stats(it.ID, it.Kind)
		}

		sourceName := ""
		if it.Source != nil {
			sourceName = it.Source.Name()
		}

		result[i] = &Media{
			Source: sourceName,
			Item:   it,
			Stats:  st,
		}
	}

	return json.Marshal(&Output{
		Query:  query,
		Result: result,
	})
}
