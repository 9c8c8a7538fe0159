package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/packetctl/internal/packet"
)

func runCapture(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("PACKETCTL_LOG_LEVEL", "")
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunFromFile(t *testing.T) {
	out, _, err := runCapture(t, "", "-input", "testdata/nested.txt")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "part 1: 31\n") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.HasPrefix(out, "part 1: ") || strings.Contains(out, "tree:") {
		t.Fatalf("unexpected extra output: %q", out)
	}
}

func TestRunFromStdinWithTree(t *testing.T) {
	out, _, err := runCapture(t, "  9C0141080250320F1802104A08\n", "-tree", "-reencode")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "tree: ((1 + 3) == (2 * 2))\n" +
		"hex: 9C0141080250320F1802104A08\n" +
		"part 1: 20\n" +
		"part 2: 1\n"
	if out != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", out, want)
	}
}

func TestRunConfigThenFlagOverride(t *testing.T) {
	path := writeConfig(t, `
input = "testdata/example.txt"
print_tree = true
log_level = "off"
`)
	out, stderr, err := runCapture(t, "", "-config", path, "-tree=false")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "part 1: 20\npart 2: 1\n" {
		t.Fatalf("unexpected output: %q", out)
	}
	if stderr != "" {
		t.Fatalf("expected silent logs, got %q", stderr)
	}
}

func TestRunDebugLogsGoToStderr(t *testing.T) {
	out, stderr, err := runCapture(t, "D2FE28", "-log-level", "debug")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "part 1: 6\npart 2: 2021\n" {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(stderr, "decoded transmission") {
		t.Fatalf("expected decode summary on stderr, got %q", stderr)
	}
}

func TestRunMalformedInput(t *testing.T) {
	out, _, err := runCapture(t, "D2FG28", "-log-level", "off")
	if !errors.Is(err, packet.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected no answers, got %q", out)
	}
}

func TestRunEmptyInput(t *testing.T) {
	_, _, err := runCapture(t, " \n", "-log-level", "off")
	if !errors.Is(err, errEmptyInput) {
		t.Fatalf("expected errEmptyInput, got %v", err)
	}
}

func TestRunBadLogLevelFlag(t *testing.T) {
	if _, _, err := runCapture(t, "D2FE28", "-log-level", "loud"); err == nil {
		t.Fatalf("expected log level error")
	}
}
