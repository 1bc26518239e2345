package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func writeTempDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	path := writeTempDoc(t, "good.xml", "<a><b>x</b></a>")

	out, err := runCommand(t, NewValidateCommand(), path)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "valid XML") {
		t.Errorf("output = %q", out)
	}
}

func TestValidateCommandInvalid(t *testing.T) {
	path := writeTempDoc(t, "bad.xml", "<a><b></a>")

	_, err := runCommand(t, NewValidateCommand(), path)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !strings.Contains(err.Error(), "invalid XML") {
		t.Errorf("error = %v", err)
	}
}

func TestFormatCommandPrints(t *testing.T) {
	path := writeTempDoc(t, "doc.xml", "<a><b>x</b></a>")

	formatWrite = false
	out, err := runCommand(t, NewFormatCommand(), path)
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if !strings.Contains(out, "<?xml") || !strings.Contains(out, "  <b>x</b>") {
		t.Errorf("output = %q", out)
	}
}

func TestSegmentsCommandTable(t *testing.T) {
	path := writeTempDoc(t, "doc.xml",
		`<!-- SEGMENT: id="h", locked="true" --><h>x</h><!-- SEGMENT: id="d", dynamic="clock" --><t/>`)

	out, err := runCommand(t, NewSegmentsCommand(), path)
	if err != nil {
		t.Fatalf("segments failed: %v", err)
	}
	for _, want := range []string{"ID", "h", "d", "yes"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSegmentsCommandJSON(t *testing.T) {
	path := writeTempDoc(t, "doc.xml", `<!-- SEGMENT: id="a" --><x/>`)

	cmd := NewSegmentsCommand()
	cmd.Flags().StringP("output", "o", "text", "")
	out, err := runCommand(t, cmd, path, "-o", "json")
	if err != nil {
		t.Fatalf("segments -o json failed: %v", err)
	}
	if !strings.Contains(out, `"id": "a"`) {
		t.Errorf("output = %q", out)
	}
}

func TestShowCommandModes(t *testing.T) {
	raw := `<!-- SEGMENT: id="a" --><x>1</x><!-- SEGMENT: id="d", dynamic="clock" --><t/>`
	path := writeTempDoc(t, "doc.xml", raw)

	showMode = "styled"
	out, err := runCommand(t, NewShowCommand(), path)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "[DYNAMIC: clock]") {
		t.Errorf("styled output = %q", out)
	}

	out, err = runCommand(t, NewShowCommand(), path, "--mode", "source")
	if err != nil {
		t.Fatalf("show --mode source failed: %v", err)
	}
	if !strings.Contains(out, `<!-- SEGMENT: id="a" -->`) {
		t.Errorf("source output must include markers: %q", out)
	}
}

func TestConvertCommandRoundTrip(t *testing.T) {
	raw := `<!-- SEGMENT: id="a", locked="true" --><x>1</x>`
	dir := t.TempDir()
	input := filepath.Join(dir, "doc.xml")
	if err := os.WriteFile(input, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	containerPath := filepath.Join(dir, "doc.xedit")
	if _, err := runCommand(t, NewConvertCommand(), input, containerPath); err != nil {
		t.Fatalf("convert to container failed: %v", err)
	}

	wrapped, err := os.ReadFile(containerPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(wrapped), "<xedit") {
		t.Errorf("container file = %q", wrapped)
	}

	back := filepath.Join(dir, "back.xml")
	if _, err := runCommand(t, NewConvertCommand(), containerPath, back); err != nil {
		t.Fatalf("convert back failed: %v", err)
	}

	unwrapped, err := os.ReadFile(back)
	if err != nil {
		t.Fatal(err)
	}
	if string(unwrapped) != raw {
		t.Errorf("round trip = %q, want %q", unwrapped, raw)
	}
}
