package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdxblog/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags override the content and output configuration.
type siteFlags struct {
	content string
	output  string
	drafts  bool
	workers int
}

// exportFlags holds PDF export flags.
type exportFlags struct {
	dir     string
	timeout time.Duration
}

// commandFlags holds every flag of a command; unused groups stay zero.
type commandFlags struct {
	common commonFlags
	site   siteFlags
	export exportFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addSiteFlags adds content and output flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.content, "content", "", "posts directory")
	fs.StringVarP(&f.output, "output", "o", "", "site output directory")
	fs.BoolVar(&f.drafts, "drafts", false, "include draft posts")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
}

// addExportFlags adds PDF export flags to a FlagSet.
func addExportFlags(fs *flag.FlagSet, f *exportFlags) {
	fs.StringVarP(&f.dir, "dir", "d", defaultExportDir, "PDF output directory")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "page load timeout (e.g., 30s, 2m)")
}

// parseCommandFlags parses the flags of command and returns positional args.
// --help prints usage and returns flag.ErrHelp.
func parseCommandFlags(command string, args []string, stderr io.Writer) (*commandFlags, []string, error) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &commandFlags{}

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	if command == "export" {
		addExportFlags(fs, &f.export)
	}
	fs.Usage = func() { printCommandUsage(stderr, command) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if f.site.workers < 0 {
		return nil, nil, fmt.Errorf("%w: --workers must be >= 0, got %d", ErrUsage, f.site.workers)
	}
	if f.export.timeout < 0 {
		return nil, nil, fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, f.export.timeout)
	}
	return f, fs.Args(), nil
}

// mergeFlags applies set flags over cfg. Flags win over env and file values.
func mergeFlags(f *siteFlags, cfg *config.Config) {
	if f.content != "" {
		cfg.Content.Dir = f.content
	}
	if f.output != "" {
		cfg.Output.Dir = f.output
	}
	if f.drafts {
		cfg.Content.IncludeDrafts = true
	}
}
