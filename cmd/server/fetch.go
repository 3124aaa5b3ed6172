package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dfryer1193/wpgallery/api"
	"github.com/dfryer1193/wpgallery/gallery/application"
	"github.com/dfryer1193/wpgallery/internal/rest"
	"github.com/spf13/cobra"
)

var (
	fetchPage   int
	fetchSearch string
	fetchJSON   bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch one gallery page and print it",
	Long: `Runs one fetch cycle against the configured WordPress site and prints
the resulting gallery items, the same way the news section would show them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.FetchTimeout)
		defer cancel()

		doc := application.NewDocument()
		controller := application.NewController(a.client, a.resolver, doc, a.galleryOptions())
		outcome := controller.FetchPosts(ctx, fetchPage, fetchSearch)

		page := rest.NewGalleryPage(fetchPage, outcome, doc.Snapshot())
		if fetchJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(page)
		}
		return printGalleryPage(cmd.OutOrStdout(), page)
	},
}

func printGalleryPage(w io.Writer, page api.GalleryPage) error {
	if page.Query != "" {
		fmt.Fprintf(w, "Search: %s\n", page.Query)
	}
	fmt.Fprintf(w, "Page %d (%s)\n", page.Page, page.Status)
	if page.Message != "" {
		fmt.Fprintln(w, page.Message)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, item := range page.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, item.Title, item.Link, item.Image)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "prev: %s  next: %s\n", enabled(!page.PrevDisabled), enabled(!page.NextDisabled))
	return nil
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

func init() {
	fetchCmd.Flags().IntVar(&fetchPage, "page", 1, "page to fetch")
	fetchCmd.Flags().StringVarP(&fetchSearch, "search", "s", "", "search query")
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(fetchCmd)
}
