package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeGo(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	const ok = "package q\n\nconst QOne = `--sql 0f6c1a52-5b3e-4f7a-9d0e-1c2b3a4d5e6f\nselect 1;\n`\n\nconst Label = \"pick a plan to select\"\n"

	tests := []struct {
		name     string
		files    map[string]string
		wantCode int
		wantMsg  string
	}{
		{"clean", map[string]string{"a.go": ok}, 0, ""},
		{
			"missing marker",
			map[string]string{"a.go": "package q\n\nconst QBad = `\nupdate users set role = $2 where id = $1;\n`\n"},
			1, "missing or invalid",
		},
		{
			"malformed uuid",
			map[string]string{"a.go": "package q\n\nconst QBad = `--sql 1234\ndelete from users;\n`\n"},
			1, "missing or invalid",
		},
		{
			"duplicate across files",
			map[string]string{
				"a.go": ok,
				"b.go": "package q\n\nconst QTwo = `--sql 0f6c1a52-5b3e-4f7a-9d0e-1c2b3a4d5e6f\nselect 2;\n`\n",
			},
			1, "already used by QOne",
		},
		{
			"tests are skipped",
			map[string]string{"a.go": ok, "a_test.go": "package q\n\nconst QFixture = `select 1`\n"},
			0, "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, body := range tc.files {
				writeGo(t, dir, name, body)
			}
			var stderr bytes.Buffer
			if code := run([]string{dir}, &stderr); code != tc.wantCode {
				t.Fatalf("run() = %d, want %d; stderr:\n%s", code, tc.wantCode, stderr.String())
			}
			if tc.wantMsg != "" && !strings.Contains(stderr.String(), tc.wantMsg) {
				t.Fatalf("stderr %q does not mention %q", stderr.String(), tc.wantMsg)
			}
		})
	}
}
