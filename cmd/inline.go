// Package cmd implements the command-line interface for jevah.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/filesystem"
	"github.com/jevah-cli/jevah/inline"
	"github.com/jevah-cli/jevah/key"
	"github.com/jevah-cli/jevah/provider"
	"github.com/jevah-cli/jevah/query"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query to execute for media discovery")
	inlineCmd.Flags().StringP("item", "i", "", "Criteria for selecting a specific item from the search results")
	inlineCmd.Flags().StringP("items", "f", "", "Criteria for filtering the search results before selection")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("include-stats", "t", false, "Fetch and include engagement statistics in the structured output")
	inlineCmd.Flags().BoolP("include-streams", "V", false, "Execute stream resolution to include playable URLs for selected items")

	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// parseItemPickerFlag maps the CLI selector syntax onto a picker: "first",
// "last", an index number, or an exact title.
func parseItemPickerFlag(flag string) (inline.ItemPicker, error) {
	switch flag {
	case "first", "last":
		return inline.ParseItemPicker(flag, "")
	default:
		if _, err := strconv.ParseUint(flag, 10, 16); err == nil {
			return inline.ParseItemPicker("index", flag)
		}
		return inline.ParseItemPicker("exact", flag)
	}
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Initialize the application for automated execution and data extraction using inline mode.

Item selectors:
  first - first item in the list
  last - last item in the list
  [number] - select item by index (starting from 0)
  [title] - select item by exact title

Items filters:
  all - keep every result
  video|audio|ebook|sermon - keep results of one media kind
  [number] - keep a single result by index (starting from 0)
  [from]-[to] - keep results by range
  @[substring]@ - keep results whose title contains the substring

When using the json flag the item selector could be omitted. That way, it will select all items`,

	Example: "  jevah inline -q worship -f audio -i first -V",
	PreRun: func(cmd *cobra.Command, args []string) {
		json, _ := cmd.Flags().GetBool("json")

		if !json {
			lo.Must0(cmd.MarkFlagRequired("item"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			sources []content.Source
			err     error
		)

		for _, name := range viper.GetStringSlice(key.DefaultSources) {
			if name == "" {
				handleErr(errors.New("source not set"))
			}

			p, ok := provider.Get(name)
			if !ok {
				handleErr(fmt.Errorf("source not found: %s", name))
			}

			src, err := p.CreateSource()
			handleErr(err)

			sources = append(sources, src)
		}

		searchQuery := lo.Must(cmd.Flags().GetString("query"))

		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			writer, err = filesystem.API().Create(output)
			handleErr(err)
		} else {
			writer = os.Stdout
		}

		itemFlag := lo.Must(cmd.Flags().GetString("item"))
		itemPicker := mo.None[inline.ItemPicker]()
		if itemFlag != "" {
			fn, err := parseItemPickerFlag(itemFlag)
			handleErr(err)
			itemPicker = mo.Some(fn)
		}

		itemsFlag := lo.Must(cmd.Flags().GetString("items"))
		itemsFilter := mo.None[inline.ItemsFilter]()
		if itemsFlag != "" {
			fn, err := inline.ParseItemsFilter(itemsFlag)
			handleErr(err)
			itemsFilter = mo.Some(fn)
		}

		options := &inline.Options{
			Sources:      sources,
			Json:         lo.Must(cmd.Flags().GetBool("json")),
			Query:        searchQuery,
			IncludeStats: lo.Must(cmd.Flags().GetBool("include-stats")),
			ItemPicker:   itemPicker,
			ItemsFilter:  itemsFilter,
			Out:          writer,
			Streams:      lo.Must(cmd.Flags().GetBool("include-streams")),
		}

		handleErr(inline.Run(options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates JSON schemas for structured inline mode outputs.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured inline mode outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "item", "stream", "media", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		schema := reflector.Reflect(&inline.Output{})

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
