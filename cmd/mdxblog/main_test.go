package main

// Notes:
// - runMain: we test exit codes and output for each command against a
//   temporary posts directory. PDF rendering itself needs a browser and is
//   covered by the library tests through a fake renderer; here export only
//   runs the paths that fail before a browser is launched.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testPost = `---
title: Hello World
publishedAt: 2024-05-01
---
Some words here.
`

// testEnv returns an environment writing into buffers with the given
// MDXBLOG_* variables.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	environ := make([]string, 0, len(vars))
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}
	return &Environment{
		Now:     func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) },
		Stdout:  &stdout,
		Stderr:  &stderr,
		Getenv:  func(k string) string { return vars[k] },
		Environ: func() []string { return environ },
	}, &stdout, &stderr
}

// writeBlog creates a posts directory and a config file pointing at it.
// It returns the config path and the output directory.
func writeBlog(t *testing.T, posts map[string]string) (cfgPath, outDir string) {
	t.Helper()
	root := t.TempDir()
	postsDir := filepath.Join(root, "posts")
	outDir = filepath.Join(root, "public")

	if err := os.MkdirAll(postsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, src := range posts {
		if err := os.WriteFile(filepath.Join(postsDir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := "site:\n  title: Test Blog\ncontent:\n  dir: " + filepath.ToSlash(postsDir) +
		"\noutput:\n  dir: " + filepath.ToSlash(outDir) + "\n"
	cfgPath = filepath.Join(root, "blog.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, outDir
}

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain_Build(t *testing.T) {
	t.Parallel()

	cfgPath, outDir := writeBlog(t, map[string]string{"hello.mdx": testPost})
	env, stdout, stderr := testEnv(nil)

	code := runMain(context.Background(), []string{"build", "-c", cfgPath}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, stderr)
	}
	if !strings.Contains(stdout.String(), "Built 1 posts into") {
		t.Errorf("stdout = %q, want build summary", stdout)
	}
	for _, rel := range []string{"index.html", "feed.xml", "hello/index.html", "assets/site.css", "assets/code.js"} {
		if _, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing output %s: %v", rel, err)
		}
	}
}

func TestRunMain_BuildOutputFlagWins(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeBlog(t, map[string]string{"hello.mdx": testPost})
	override := t.TempDir()
	env, _, stderr := testEnv(map[string]string{"MDXBLOG_OUTPUT_DIR": t.TempDir()})

	code := runMain(context.Background(), []string{"build", "-q", "-c", cfgPath, "-o", override}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(override, "index.html")); err != nil {
		t.Errorf("flag output directory not used: %v", err)
	}
}

func TestRunMain_List(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeBlog(t, map[string]string{"hello.mdx": testPost})
	env, stdout, stderr := testEnv(nil)

	code := runMain(context.Background(), []string{"list", "--config", cfgPath}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, stderr)
	}
	for _, want := range []string{"Slug", "Reading time", "hello", "Hello World", "2024-05-01", "1 min read"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("list output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunMain_Errors(t *testing.T) {
	t.Parallel()

	cfgPath, _ := writeBlog(t, map[string]string{"hello.mdx": testPost})
	badPost, _ := writeBlog(t, map[string]string{"bad.mdx": "no front matter\n"})
	missingDir := filepath.Join(t.TempDir(), "blog.yaml")
	if err := os.WriteFile(missingDir, []byte("content:\n  dir: "+filepath.ToSlash(filepath.Join(t.TempDir(), "nope"))+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{"no command", nil, ExitUsage, "Usage: mdxblog"},
		{"unknown command", []string{"serve"}, ExitUsage, "unknown command"},
		{"unknown flag", []string{"build", "--nope"}, ExitUsage, "invalid usage"},
		{"negative workers", []string{"build", "-w", "-1"}, ExitUsage, "--workers"},
		{"list takes no args", []string{"list", "-c", cfgPath, "extra"}, ExitUsage, "takes no arguments"},
		{"config not found", []string{"build", "-c", "./missing.yaml"}, ExitUsage, "config file not found"},
		{"front matter", []string{"build", "-c", badPost}, ExitUsage, "hint:"},
		{"missing content dir", []string{"build", "-c", missingDir}, ExitIO, "posts are read from"},
		{"unknown slug", []string{"export", "-c", cfgPath, "missing"}, ExitUsage, "document not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := testEnv(nil)
			code := runMain(context.Background(), tt.args, env)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d; stderr: %s", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunMain_VersionAndHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
	}{
		{"version", []string{"version"}, ExitSuccess, "mdxblog dev"},
		{"help", []string{"help"}, ExitSuccess, "Commands:"},
		{"help export", []string{"help", "export"}, ExitSuccess, "--timeout"},
		{"help unknown", []string{"help", "serve"}, ExitUsage, ""},
		{"flag help", []string{"build", "--help"}, ExitSuccess, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv(nil)
			if code := runMain(context.Background(), tt.args, env); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout, tt.wantStdout)
			}
		})
	}
}
