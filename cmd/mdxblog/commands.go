package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/rodaine/table"

	mdxblog "github.com/alnah/go-mdxblog"
	"github.com/alnah/go-mdxblog/internal/config"
	"github.com/alnah/go-mdxblog/internal/dateutil"
)

// defaultConfigName is looked up when no --config is given. A missing file
// is not an error.
const defaultConfigName = "mdxblog"

// defaultExportDir receives exported PDFs.
const defaultExportDir = "pdf"

// runCommand parses flags, loads the site and runs command.
func runCommand(ctx context.Context, command string, args []string, env *Environment) error {
	flags, positional, err := parseCommandFlags(command, args, env.Stderr)
	if err != nil {
		return err
	}
	if command != "export" && len(positional) > 0 {
		return fmt.Errorf("%w: %s takes no arguments, got %q", ErrUsage, command, positional)
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := resolveConfig(flags, envCfg)
	if err != nil {
		return err
	}

	site, err := openSite(ctx, cfg, flags, envCfg, env, logger)
	if err != nil {
		return err
	}
	defer func() { _ = site.Close() }()

	switch command {
	case "build":
		return runBuild(ctx, site, flags, env)
	case "list":
		return runList(site, env)
	default:
		return runExport(ctx, site, positional, flags, env)
	}
}

// resolveConfig loads the config file and applies env vars and flags.
func resolveConfig(flags *commandFlags, envCfg *envConfig) (*config.Config, error) {
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	var err error
	if name != "" {
		cfg, err = config.LoadConfig(name)
	} else {
		cfg, err = config.LoadConfig(defaultConfigName)
		if errors.Is(err, config.ErrConfigNotFound) {
			cfg, err = config.DefaultConfig(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(&flags.site, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSite creates the site and loads its posts.
func openSite(ctx context.Context, cfg *config.Config, flags *commandFlags, envCfg *envConfig, env *Environment, logger *slog.Logger) (*mdxblog.Site, error) {
	workers := flags.site.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	opts := []mdxblog.Option{
		mdxblog.WithConfig(cfg),
		mdxblog.WithLogger(logger),
		mdxblog.WithWorkers(workers),
		mdxblog.WithClock(env.Now),
	}
	timeout := flags.export.timeout
	if timeout == 0 {
		timeout = envCfg.Timeout
	}
	if timeout > 0 {
		opts = append(opts, mdxblog.WithTimeout(timeout))
	}

	site, err := mdxblog.New(opts...)
	if err != nil {
		return nil, err
	}
	if err := site.Load(ctx); err != nil {
		return nil, &contentDirError{dir: cfg.Content.Dir, err: err}
	}
	return site, nil
}

// runBuild writes the site to output.dir.
func runBuild(ctx context.Context, site *mdxblog.Site, flags *commandFlags, env *Environment) error {
	if err := site.Build(ctx, ""); err != nil {
		return err
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Built %d posts into %s\n", len(site.Documents()), site.Config().Output.Dir)
	}
	return nil
}

// runList prints the loaded posts as a table, newest first.
func runList(site *mdxblog.Site, env *Environment) error {
	tbl := table.New("Slug", "Title", "Published", "Reading time", "Draft").WithWriter(env.Stdout)
	for _, doc := range site.Documents() {
		date, err := dateutil.FormatDate("iso", doc.PublishedAt)
		if err != nil {
			return err
		}
		tbl.AddRow(doc.Slug, doc.Title, date, doc.ReadingTime.Text, strconv.FormatBool(doc.Draft))
	}
	tbl.Print()
	return nil
}

// runExport renders the given slugs, or every post, to PDF.
func runExport(ctx context.Context, site *mdxblog.Site, slugs []string, flags *commandFlags, env *Environment) error {
	if len(slugs) == 0 {
		for _, doc := range site.Documents() {
			slugs = append(slugs, doc.Slug)
		}
	}
	if len(slugs) == 0 {
		return fmt.Errorf("%w: no posts to export", ErrUsage)
	}

	paths, err := site.ExportPDFs(ctx, slugs, flags.export.dir)
	if !flags.common.quiet {
		for _, p := range paths {
			fmt.Fprintf(env.Stdout, "Wrote %s\n", p)
		}
	}
	return err
}
