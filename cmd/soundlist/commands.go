package main

import (
	"fmt"
	"io"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/litescript/soundlist/internal/config"
	"github.com/litescript/soundlist/internal/scraper"
	"github.com/litescript/soundlist/internal/tui"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newItemCmd(a *app) *cobra.Command {
	var withPlays bool

	cmd := &cobra.Command{
		Use:   "item <url>",
		Short: "Show the metadata of one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			item, err := a.client.ResolveItem(ctx, args[0])
			if err != nil {
				return err
			}
			if withPlays {
				if _, err := a.client.ResolvePlayCount(ctx, item, true); err != nil {
					return err
				}
			}
			printItem(cmd.OutOrStdout(), item)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withPlays, "plays", false, "look up the play count on the uploader's listing")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var withAudio bool

	cmd := &cobra.Command{
		Use:   "list <uploader>",
		Short: "List an uploader's items with play counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			header := []string{"Plays", "Title", "URL"}
			if withAudio {
				header = append(header, "Audio")
			}
			table.SetHeader(header)
			table.SetAutoWrapText(false)

			u := scraper.Uploader{Name: args[0]}
			for item, err := range a.client.ListAudios(cmd.Context(), u, withAudio) {
				if err != nil {
					table.Render()
					return err
				}
				row := []string{plays(item.PlayCount), item.Title, item.PostURL}
				if withAudio {
					row = append(row, item.AudioURL)
				}
				table.Append(row)
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&withAudio, "audio", false, "resolve each item's audio URL (one request per item)")
	return cmd
}

func newPlaysCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plays <url>",
		Short: "Print the play count of one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.client.ResolvePlayCountByURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <uploader>",
		Short: "Print an uploader's upload and play totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u := scraper.Uploader{Name: args[0]}

			uploads, err := a.client.TotalUploads(ctx, u)
			if err != nil {
				return err
			}
			total, err := a.client.TotalPlays(ctx, u)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Uploader: %s\n", u.Name)
			fmt.Fprintf(out, "Listing:  %s\n", a.client.UploaderURL(u))
			fmt.Fprintf(out, "Uploads:  %d\n", uploads)
			fmt.Fprintf(out, "Plays:    %d\n", total)
			return nil
		},
	}
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [uploader]",
		Short: "Browse an uploader's catalog interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if len(args) == 1 {
				cfg.TUI.LastUploader = args[0]
			}

			factory := func(c config.Config) *scraper.Client {
				return newClient(c, a.log)
			}
			model := tui.NewModel(cfg, a.configPath, factory, a.log)
			p := tea.NewProgram(model, tea.WithAltScreen())

			watcher, err := config.Watch(a.configPath, func(c config.Config, err error) {
				p.Send(tui.ConfigChangedMsg{Config: c, Err: err})
			})
			if err != nil {
				a.log.Warn("config watch disabled", zap.Error(err))
			} else {
				defer watcher.Stop()
			}

			_, err = p.Run()
			return err
		},
	}
}

func printItem(w io.Writer, item *scraper.AudioItem) {
	fmt.Fprintf(w, "Title:       %s\n", item.Title)
	fmt.Fprintf(w, "Uploader:    %s\n", item.Uploader.Name)
	fmt.Fprintf(w, "Plays:       %s\n", plays(item.PlayCount))
	fmt.Fprintf(w, "Page:        %s\n", item.PostURL)
	fmt.Fprintf(w, "Audio:       %s\n", item.AudioURL)
	fmt.Fprintf(w, "Description: %s\n", item.Description)
}

func plays(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
