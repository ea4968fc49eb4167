package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kyaoi/mdnav/internal/app"
	"github.com/kyaoi/mdnav/internal/config"
)

// Version information set at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		opts        app.Options
		writeConfig bool
	)

	cmd := &cobra.Command{
		Use:           "mdnav [path-to-markdown-or-directory]",
		Short:         "Browse markdown files in the terminal",
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ConfigPath == "" {
				opts.ConfigPath = config.DefaultPath()
			}
			if writeConfig {
				return writeConfigFile(cmd, opts.ConfigPath)
			}

			opts.Target = "."
			if len(args) > 0 {
				opts.Target = filepath.Clean(args[0])
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Tag, "tag", "", "show only files whose front matter has this tag")
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	flags.IntVar(&opts.Width, "width", 0, "viewport width in pixels, skipping terminal detection")
	flags.BoolVar(&writeConfig, "write-config", false, "write the effective config file and exit")

	return cmd
}

func writeConfigFile(cmd *cobra.Command, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
