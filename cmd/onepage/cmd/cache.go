package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"onepage/internal/adapters/sqlite"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the media cache",
	Long: `The media cache persists fetched images as data URIs, one database
per document. Entries are never evicted by the viewer itself; clearing
the cache here is the only sanctioned eviction path.

Examples:
  onepage cache stats page.html
  onepage cache clear page.html`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats <document>",
	Short: "Show cache statistics for a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := sqlite.Open(args[0])
		if err != nil {
			return err
		}
		defer cache.Close()

		n, err := cache.Count()
		if err != nil {
			return err
		}
		fmt.Printf("%s\n%d cached entries\n", cache.Path(), n)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear <document>",
	Short: "Remove every cached entry for a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := sqlite.Open(args[0])
		if err != nil {
			return err
		}
		defer cache.Close()

		if err := cache.Clear(); err != nil {
			return err
		}
		fmt.Println("cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
