package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeList(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "en.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	return path
}

func TestLoadWordsFiltersAndSkipsBlank(t *testing.T) {
	path := writeList(t, "hello", "", "  world  ", "naïve", "Upper")
	words, err := LoadWords(path, FilterForLang("en"))
	if err != nil {
		t.Fatalf("LoadWords failed: %v", err)
	}
	if strings.Join(words, ",") != "hello,world" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestLoadWordsWithoutFilter(t *testing.T) {
	path := writeList(t, "hola", "señor")
	words, err := LoadWords(path, FilterForLang("es"))
	if err != nil {
		t.Fatalf("LoadWords failed: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %v", words)
	}
}

func TestLoadWordsEmpty(t *testing.T) {
	path := writeList(t, "Ünïcode", "")
	if _, err := LoadWords(path, FilterForLang("en")); err == nil {
		t.Fatalf("expected error for list with no usable words")
	}
	if _, err := LoadWords(filepath.Join(t.TempDir(), "missing.txt"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
