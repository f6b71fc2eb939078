package cli

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/scout/pkg/cli/config"
	"github.com/m-mizutani/scout/pkg/domain/model"
	"github.com/m-mizutani/scout/pkg/domain/types"
	"github.com/m-mizutani/scout/pkg/usecase"
)

func cmdSearch() *cli.Command {
	var (
		upstreamCfg config.Upstream
		asJSON      bool
	)

	flags := append(upstreamCfg.Flags(),
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the API response body instead of a table",
			Destination: &asJSON,
		},
	)

	return &cli.Command{
		Name:      "search",
		Usage:     "Search the upstream and print results",
		ArgsUsage: "<query>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return goerr.New("query is required", goerr.T(types.ErrTagValidation))
			}

			client, err := upstreamClient(c, &upstreamCfg)
			if err != nil {
				return err
			}

			results, err := usecase.NewSearch(client).Search(ctx, query)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if asJSON {
				return writeJSON(w, model.SearchResponse{
					Query:   query,
					Count:   len(results),
					Results: results,
				})
			}
			printResults(w, query, results)
			return nil
		},
	}
}

func printResults(w io.Writer, query string, results []model.SearchResult) {
	header := color.New(color.FgCyan, color.Bold)
	if len(results) == 0 {
		header.Fprintf(w, "No results for %q\n", query)
		return
	}
	header.Fprintf(w, "%d result(s) for %q\n", len(results), query)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Name", "Size", "Type", "Link"})
	table.SetAutoWrapText(false)
	for i, r := range results {
		table.Append([]string{strconv.Itoa(i + 1), r.Name, r.Size, r.FileType, r.Link})
	}
	table.Render()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode output")
	}
	return nil
}
