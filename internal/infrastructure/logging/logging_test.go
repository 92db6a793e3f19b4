package logging

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesDurableSinks(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	closeLogs, err := Setup(dir)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	log.Printf("bonjour")
	Error("échec d'envoi", errors.New("boom"))
	closeLogs()

	logs, err := os.ReadFile(filepath.Join(dir, "logs.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(logs), "bonjour") || !strings.Contains(string(logs), "échec d'envoi: boom") {
		t.Errorf("logs.txt = %q", logs)
	}

	errs, err := os.ReadFile(filepath.Join(dir, "errors.txt"))
	if err != nil {
		t.Fatal(err)
	}
	got := string(errs)
	if !strings.Contains(got, "ERROR: échec d'envoi") || !strings.Contains(got, "boom") {
		t.Errorf("errors.txt = %q", got)
	}
	if strings.Count(got, "---\n") != 2 {
		t.Errorf("expected one delimited block, got %q", got)
	}
}
