package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/scout/pkg/cli/config"
	"github.com/m-mizutani/scout/pkg/domain/model"
	"github.com/m-mizutani/scout/pkg/domain/types"
	"github.com/m-mizutani/scout/pkg/usecase"
	"github.com/m-mizutani/scout/pkg/utils/filetype"
)

func cmdResolve() *cli.Command {
	var (
		upstreamCfg config.Upstream
		asJSON      bool
	)

	flags := append(upstreamCfg.Flags(),
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the API response body instead of plain text",
			Destination: &asJSON,
		},
	)

	return &cli.Command{
		Name:      "resolve",
		Aliases:   []string{"r"},
		Usage:     "Resolve a link fragment or page URL to a direct download URL",
		ArgsUsage: "<link|url>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			link := strings.TrimSpace(c.Args().First())
			if link == "" {
				return goerr.New("link is required", goerr.T(types.ErrTagValidation))
			}

			client, err := upstreamClient(c, &upstreamCfg)
			if err != nil {
				return err
			}

			uc := usecase.NewDownload(client)
			if !strings.HasPrefix(link, "http") {
				link = uc.DownloadURL(link)
			}

			details, err := uc.Resolve(ctx, link)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if asJSON {
				return writeJSON(w, model.NewDownloadResponse(details))
			}
			printDetails(w, details)
			return nil
		},
	}
}

func printDetails(w io.Writer, d *model.FileDetails) {
	label := color.New(color.FgYellow)
	row := func(name, value string) {
		fmt.Fprintf(w, "%s %s\n", label.Sprintf("%-9s", name+":"), value)
	}

	row("Filename", d.Filename)
	row("Size", d.Size)
	row("Type", fmt.Sprintf("%s (%s)", filetype.Classify(d.Filename), filetype.Icon(d.Filename)))
	row("URL", color.New(color.FgGreen).Sprint(d.DownloadURL))
}
