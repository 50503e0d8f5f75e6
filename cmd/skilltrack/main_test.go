package main

import "testing"

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()
	if root.Use != "skilltrack" {
		t.Fatalf("unexpected Use: %s", root.Use)
	}

	want := map[string]bool{"login": false, "export": false, "report": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("missing subcommand %q", name)
		}
	}
}

func TestExportCommandDefaultsToJSON(t *testing.T) {
	var path string
	cmd := newExportCmd(&path)
	f := cmd.Flags().Lookup("format")
	if f == nil || f.DefValue != "json" {
		t.Fatalf("format flag missing or wrong default: %+v", f)
	}
}
