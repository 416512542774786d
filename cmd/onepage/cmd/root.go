package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"onepage/internal/adapters/htmlpage"
	"onepage/internal/adapters/httpfetch"
	"onepage/internal/adapters/location"
	"onepage/internal/adapters/sqlite"
	"onepage/internal/adapters/tui"
	"onepage/internal/application"
	"onepage/internal/config"
	"onepage/internal/domain"
	"onepage/internal/logging"
)

var (
	configPath string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "onepage <document>",
	Short: "Viewer for single-page documents with synchronized navigation",
	Long: `onepage renders a single-page HTML or Markdown document in the
terminal, keeping the table-of-contents rail, the viewport and the
location fragment in sync while deferred media loads into a durable
cache.

The active section follows the scroll position; left/right move between
sections with an animated scroll, and the last position is restored the
next time the same document is opened.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to the config file")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured logs to this file")
	rootCmd.AddCommand(cacheCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	docPath := args[0]

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	logger, closer, err := logging.New(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closer.Close()

	page, err := loadPage(docPath)
	if err != nil {
		return err
	}
	if page.Len() == 0 {
		return fmt.Errorf("%s: no sections found", docPath)
	}

	cache, err := sqlite.Open(docPath)
	if err != nil {
		return err
	}
	defer cache.Close()

	fetcher := httpfetch.New(time.Duration(cfg.FetchTimeoutMS) * time.Millisecond)
	loader := application.NewLoader(cache, fetcher, time.Duration(cfg.FadeMS)*time.Millisecond, logger)

	loc := location.New(docPath)
	sel := application.NewSelection(page, loc)

	app := tui.NewApp(cfg, page, sel, loader, loc, logger)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

// loadPage parses the document; Markdown is rendered to sections via
// its headings, anything else is treated as single-page HTML.
func loadPage(path string) (*domain.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return htmlpage.ParseMarkdown(f)
	default:
		return htmlpage.Parse(f)
	}
}

// defaultConfigPath places the config under the XDG config directory.
func defaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "onepage", "config.yaml")
}
