package main

import (
	"io"
	"testing"
)

func TestRootCommand_Tree(t *testing.T) {
	root := newRootCommand()

	for _, path := range [][]string{
		{"admin", "create"},
		{"admin", "list"},
		{"admin", "delete"},
		{"migrate", "up"},
		{"migrate", "version"},
		{"orphans"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd == root {
			t.Errorf("command %v not registered (err = %v)", path, err)
		}
	}
}

func TestAdminCreate_RequiresArgs(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"admin", "create", "only-email@example.com"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err == nil {
		t.Error("Execute() succeeded with one argument, want error")
	}
}

func TestOrphans_DeleteFlag(t *testing.T) {
	cmd := newOrphansCommand()

	flag := cmd.Flags().Lookup("delete")
	if flag == nil {
		t.Fatal("--delete flag not registered")
	}
	if flag.DefValue != "false" {
		t.Errorf("--delete default = %q, want false", flag.DefValue)
	}
}
