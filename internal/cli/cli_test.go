package cli

import (
	"testing"
)

func TestCLINew(t *testing.T) {
	cli := New()
	if cli == nil {
		t.Error("New() should return a non-nil CLI")
	}
	if cli.rootCmd == nil {
		t.Error("CLI rootCmd should not be nil")
	}
	if cli.ctrlErr != nil {
		t.Errorf("controller init failed: %v", cli.ctrlErr)
	}
}

func TestCLIRootCommand(t *testing.T) {
	cli := New()

	// Root command should have subcommands
	if len(cli.rootCmd.Commands()) == 0 {
		t.Error("Root command should have subcommands")
	}

	// Check for expected subcommands
	expectedCommands := []string{"log", "history", "summary", "profile", "suggest", "activities", "topics", "web"}
	for _, expected := range expectedCommands {
		found := false
		for _, cmd := range cli.rootCmd.Commands() {
			if cmd.Name() == expected {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected subcommand '%s' not found", expected)
		}
	}
}

func TestLogCmdFlags(t *testing.T) {
	cli := New()
	cmd := cli.logCmd()

	for _, flag := range []string{"weight", "height", "date"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("log command should define --%s", flag)
		}
	}
}

func TestWebCmdPortFlag(t *testing.T) {
	cli := New()
	cmd := cli.webCmd()

	flag := cmd.Flags().Lookup("port")
	if flag == nil {
		t.Fatal("web command should define --port")
	}
	if flag.DefValue != "8000" {
		t.Errorf("port default = %s, want 8000", flag.DefValue)
	}
}
