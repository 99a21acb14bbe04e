package pdftext

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPagesPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programa.txt")
	if err := os.WriteFile(path, []byte("pagina uno\fpagina dos\fpagina tres"), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := Pages(path)
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if len(pages) != 3 || pages[1] != "pagina dos" {
		t.Errorf("Pages = %q, want three pages", pages)
	}
}

func TestPagesPlainTextSinglePage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reporte.txt")
	if err := os.WriteFile(path, []byte("sin saltos de pagina"), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := Pages(path)
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if len(pages) != 1 {
		t.Errorf("Pages = %q, want a single page", pages)
	}
}

func TestPagesMissingFile(t *testing.T) {
	if _, err := Pages(filepath.Join(t.TempDir(), "no-such.pdf")); err == nil {
		t.Error("Pages on a missing file returned nil error")
	}
}

func TestReadAllMissingFile(t *testing.T) {
	if _, err := ReadAll(filepath.Join(t.TempDir(), "no-such.txt")); err == nil {
		t.Error("ReadAll on a missing file returned nil error")
	}
}
