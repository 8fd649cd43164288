package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/charlesng35/codeshelf/internal/client"
	"github.com/charlesng35/codeshelf/pkg/logger"
)

const (
	defaultServer  = "http://localhost:3001"
	defaultTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options are the persistent flags shared by every command.
type options struct {
	server  string
	timeout time.Duration
	verbose bool
	color   string
}

func (o *options) client() (*client.Client, error) {
	return client.New(o.server, client.WithTimeout(o.timeout))
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "codeshelf",
		Short: "Browse and manage a codeshelf snippet store",
		Long: `codeshelf talks to a codeshelf store over HTTP.

The store address comes from --server or CODESHELF_SERVER.

Run "codeshelf browse" for the interactive browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			return logger.InitWithFormat(level, "console")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	server := strings.TrimSpace(os.Getenv("CODESHELF_SERVER"))
	if server == "" {
		server = defaultServer
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.server, "server", server, "Store base URL (env CODESHELF_SERVER)")
	flags.DurationVar(&opts.timeout, "timeout", defaultTimeout, "Per-request timeout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&opts.color, "color", "auto", "Colour output: auto, always or never")

	root.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newCreateCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
		newTagsCmd(opts),
		newCategoriesCmd(opts),
		newImportCmd(opts),
		newBrowseCmd(opts),
	)

	return root
}
