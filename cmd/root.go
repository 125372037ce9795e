package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Devon-White/sitemap-harvester/internal/config"
	"github.com/Devon-White/sitemap-harvester/internal/domain"
	"github.com/Devon-White/sitemap-harvester/internal/pipeline"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "sitemap-harvester <domain>",
	Short: "Discover and download the XML sitemaps of a website",
	Long: `sitemap-harvester finds a website's sitemaps starting from its domain name
and stores every sitemap file it finds.

It locates the homepage by probing https:// and then http://, reads the
Sitemap: lines of robots.txt (falling back to /sitemap.xml), and expands
sitemap indexes into their child sitemaps. Files are written to a folder
named after the domain ("example.com" -> "example_com/"). Domains for which
no sitemap could be obtained are appended to sitemapNotFound.txt.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&configFile, "config", "", "config file (default: ./sitemap-harvester.yaml if present)")
	f.StringP("output", "o", config.DefaultOutputDir, "directory in which the per-domain folder is created")
	f.String("not-found-file", config.DefaultNotFoundFile, "file that failed domains are appended to")
	f.Duration("timeout", config.DefaultTimeout, "timeout for each HTTP request")
	f.String("user-agent", config.DefaultUserAgent, "custom User-Agent string")
	f.Bool("accept-direct-homepage", false, "treat a 2xx answer on the bare domain as the homepage instead of requiring a redirect")
	f.Bool("probe-default-sitemap", false, "also resolve /sitemap.xml when robots.txt lists sitemaps")
	f.Bool("no-color", false, "disable colored output")
	f.BoolP("verbose", "v", false, "verbose logging")
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("Please provide a domain as argument.")
		return nil
	}

	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Domain = args[0]

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err = pipeline.Run(ctx, cfg)
	if errors.Is(err, domain.ErrInvalid) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
