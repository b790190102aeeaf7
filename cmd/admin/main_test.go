package main

import (
	"testing"

	"github.com/alecthomas/kong"
)

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"migrate", []string{"migrate", "--dry-run"}, "migrate", false},
		{"set role", []string{"set-role", "--email", "a@b.ph", "--role", "admin"}, "set-role", false},
		{"unknown role", []string{"set-role", "--email", "a@b.ph", "--role", "root"}, "", true},
		{"release seed", []string{"release-seed", "--campaign", "c1", "--as", "ops@b.ph"}, "release-seed", false},
		{"verify approve", []string{"verify-charity", "--id", "ch1", "--approve", "--as", "ops@b.ph"}, "verify-charity", false},
		{"verify both", []string{"verify-charity", "--id", "ch1", "--approve", "--reject", "--as", "ops@b.ph"}, "", true},
		{"verify neither", []string{"verify-charity", "--id", "ch1", "--as", "ops@b.ph"}, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cli CLI
			parser, err := kong.New(&cli, kong.Exit(func(int) {}))
			if err != nil {
				t.Fatalf("kong.New: %v", err)
			}
			ctx, err := parser.Parse(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected parse error for %v", tc.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%v) error = %v", tc.args, err)
			}
			if ctx.Command() != tc.want {
				t.Fatalf("command = %q, want %q", ctx.Command(), tc.want)
			}
		})
	}
}
