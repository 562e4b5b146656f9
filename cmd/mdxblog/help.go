package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdxblog <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Compile the posts into a static site")
	fmt.Fprintln(w, "  list       List the posts")
	fmt.Fprintln(w, "  export     Render posts to PDF")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdxblog help <command>' for details on a specific command.")
}

// printCommonFlags prints the flags shared by build, list and export.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: mdxblog)")
	fmt.Fprintln(w, "      --content <dir>       Posts directory")
	fmt.Fprintln(w, "  -o, --output <dir>        Site output directory")
	fmt.Fprintln(w, "      --drafts              Include draft posts")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printEnvironment lists the MDXBLOG_* variables.
func printEnvironment(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDXBLOG_CONFIG, MDXBLOG_CONTENT_DIR, MDXBLOG_OUTPUT_DIR, MDXBLOG_BASE_PATH,")
	fmt.Fprintln(w, "  MDXBLOG_SITE_URL, MDXBLOG_THEME, MDXBLOG_DRAFTS, MDXBLOG_WORKERS, MDXBLOG_TIMEOUT")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// printCommandUsage prints usage for command.
func printCommandUsage(w io.Writer, command string) {
	switch command {
	case "build":
		fmt.Fprintln(w, "Usage: mdxblog build [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Compile every post and write the site: one page per post, index.html,")
		fmt.Fprintln(w, "feed.xml and the assets directory.")
		fmt.Fprintln(w)
		printCommonFlags(w)
		printEnvironment(w)
	case "list":
		fmt.Fprintln(w, "Usage: mdxblog list [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "List the posts, newest first.")
		fmt.Fprintln(w)
		printCommonFlags(w)
		printEnvironment(w)
	case "export":
		fmt.Fprintln(w, "Usage: mdxblog export [slug...] [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Render posts to PDF with headless Chrome. Without slugs every post is")
		fmt.Fprintln(w, "exported. Images are read from the site output directory.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Export:")
		fmt.Fprintln(w, "  -d, --dir <dir>           PDF output directory (default: pdf)")
		fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout (e.g., 30s, 2m)")
		fmt.Fprintln(w)
		printCommonFlags(w)
		printEnvironment(w)
	case "version":
		fmt.Fprintln(w, "Usage: mdxblog version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	case "help":
		fmt.Fprintln(w, "Usage: mdxblog help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	}
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build", "list", "export", "version", "help":
		printCommandUsage(env.Stdout, args[0])
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
}
