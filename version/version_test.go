package version

import (
	"strings"
	"testing"

	"github.com/ferus-web/sanchar/testutil"
)

func TestString(t *testing.T) {
	info := New("sanchar")
	s := info.String()
	if !strings.Contains(s, "sanchar version 0.0.0-dev") {
		t.Errorf("String() = %q, want name and default version", s)
	}
}

func TestCommand(t *testing.T) {
	info := New("sanchar")
	info.Version = "1.2.3"

	cmd := NewCommand(info)
	output := testutil.CaptureOutput(t, func() error {
		return cmd.RunE(cmd, nil)
	})

	if !strings.Contains(output, "1.2.3") {
		t.Errorf("version command output = %q, want version string", output)
	}
}

func TestCommandQuiet(t *testing.T) {
	info := New("sanchar")
	info.Version = "1.2.3"

	cmd := NewCommand(info)
	if err := cmd.Flags().Set("quiet", "true"); err != nil {
		t.Fatal(err)
	}
	output := testutil.CaptureOutput(t, func() error {
		return cmd.RunE(cmd, nil)
	})

	if strings.TrimSpace(output) != "1.2.3" {
		t.Errorf("quiet output = %q, want bare version", output)
	}
}
