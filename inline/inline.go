// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"os"

	"github.com/jevah-cli/jevah/api"
	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/log"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	// Step 1: Search across all configured providers.
	var items []*content.Item
	for _, src := range options.Sources {
		found, err := src.Search(options.Query)
		if err != nil {
			return fmt.Errorf("search failed for %s: %w", src.Name(), err)
		}
		items = append(items, found...)
	}

	// Step 2: Narrow the result set if a filter is defined.
	if options.ItemsFilter.IsPresent() {
		filter := options.ItemsFilter.MustGet()
		filtered, err := filter(items)
		if err != nil {
			return err
		}
		items = filtered
	}

	// Step 3: Apply item selection logic if a picker is defined.
	var selected []*content.Item
	if options.ItemPicker.IsPresent() {
		picker := options.ItemPicker.MustGet()
		if choice := picker(items); choice != nil {
			selected = []*content.Item{choice}
		}
	} else {
		selected = items
	}

	if len(selected) == 0 {
		if options.Json {
			return writeJson(options.Out, []*content.Item{}, options)
		}
		return nil // Nothing found
	}

	// Step 4: Resolve playable streams for the selected subset.
	if options.Streams {
		for _, item := range selected {
			if item.Source == nil {
				continue
			}

			streams, err := item.Source.StreamsOf(item)
			if err != nil {
				log.Warnf("failed to fetch streams for %s: %v", item.Title, err)
				continue
			}
			item.Streams = streams
		}
	}

	// Step 5: Dispatch the processed results to the configured output writer.
	if options.Json {
		return writeJson(options.Out, selected, options)
	}

	// Plain text output: one URL per line.
	for _, item := range selected {
		if options.Streams && len(item.Streams) > 0 {
			for _, s := range item.Streams {
				fmt.Fprintln(options.Out, s.URL)
			}
		} else {
			fmt.Fprintln(options.Out, item.FileURL)
		}
	}

	return nil
}

func writeJson(out io.Writer, items []*content.Item, options *Options) error {
	var client *api.Client
	if options.IncludeStats {
		client = api.New()
	}

	data, err := asJson(items, options.Query, client)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
