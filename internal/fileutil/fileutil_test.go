package fileutil_test

// Notes:
// - The WriteString and Close error branches in WriteTempFile are not tested
//   because triggering disk write failures is platform-specific.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdxblog/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "valid extension html", extension: "html", wantErr: nil},
		{name: "empty extension", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "forward slash path traversal", extension: "../etc/passwd", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash path traversal", extension: "..\\windows", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte injection", extension: "html\x00exe", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temporary file creation
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile("<p>post</p>", "html")
	if err != nil {
		t.Fatalf("WriteTempFile() unexpected error: %v", err)
	}

	if !strings.HasSuffix(path, ".html") {
		t.Errorf("path = %q, want .html suffix", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(got) != "<p>post</p>" {
		t.Errorf("content = %q, want %q", got, "<p>post</p>")
	}

	cleanup()
	if fileutil.FileExists(path) {
		t.Error("cleanup() did not remove the file")
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, _, err := fileutil.WriteTempFile("x", "../x")
	if !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		t.Errorf("WriteTempFile() error = %v, want ErrExtensionPathTraversal", err)
	}
}

// ---------------------------------------------------------------------------
// TestWriteOutput - Output tree writes
// ---------------------------------------------------------------------------

func TestWriteOutput(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path, err := fileutil.WriteOutput(root, "posts/hello/index.html", []byte("ok"))
	if err != nil {
		t.Fatalf("WriteOutput() unexpected error: %v", err)
	}
	if want := filepath.Join(root, "posts", "hello", "index.html"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if !fileutil.FileExists(path) {
		t.Error("output file was not created")
	}
}

func TestWriteOutput_Escape(t *testing.T) {
	t.Parallel()

	for _, rel := range []string{"../x.html", "a/../../x.html", "/abs.html"} {
		if _, err := fileutil.WriteOutput(t.TempDir(), rel, nil); !errors.Is(err, fileutil.ErrOutsideRoot) {
			t.Errorf("WriteOutput(%q) error = %v, want ErrOutsideRoot", rel, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestIsFilePath / TestIsURL
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"blog":         false,
		"my-blog":      false,
		"./blog.yaml":  true,
		"/etc/b.yaml":  true,
		`C:\b.yaml`:    true,
		"configs/blog": true,
	}
	for in, want := range tests {
		if got := fileutil.IsFilePath(in); got != want {
			t.Errorf("IsFilePath(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"https://example.com": true,
		"http://example.com":  true,
		"/posts/hello":        false,
		"mailto:a@b.c":        false,
		"httpfoo":             false,
		"":                    false,
	}
	for in, want := range tests {
		if got := fileutil.IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}
