package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/slide-sheets/internal/config"
)

func newJobCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	addJobFlags(c)
	if err := c.ParseFlags(args); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}
	return c
}

func testConfig() *config.Config {
	return &config.Config{Defaults: config.DefaultGroupSettings()}
}

func TestLayoutSettings(t *testing.T) {
	c := newJobCommand(t, "--columns", "3", "--orientation", "portrait", "--no-border", "--fit", "cover")
	got := layoutSettings(c, config.DefaultGroupSettings())

	if got.Columns != 3 || got.Orientation != "portrait" || got.Border || got.Fit != "cover" {
		t.Errorf("flags not applied: %+v", got)
	}
	if got.Rows != 2 || got.PageSize != "A4" || !got.Numbering {
		t.Errorf("unset flags must keep defaults: %+v", got)
	}
}

func TestLoadJob_Inputs(t *testing.T) {
	c := newJobCommand(t, "-i", "week1.pdf", "-i", "week2.pdf", "--title", "Course", "--binder", "--rows", "3")
	j, err := loadJob(c, testConfig(), nil)
	if err != nil {
		t.Fatalf("load job: %v", err)
	}
	if j.Title != "Course" || !j.Options.BinderRotation || len(j.Documents) != 2 {
		t.Errorf("unexpected job %+v", j)
	}
	if j.Groups[0].Settings.Rows != 3 {
		t.Errorf("expected 3 rows, got %d", j.Groups[0].Settings.Rows)
	}
}

func TestLoadJob_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	data := "title: From file\ndocuments: [{id: a, path: a.pdf}]\ngroups:\n  - pages: [a]\n  - pages: [a]\n    layout: {columns: 4}\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	c := newJobCommand(t, "--columns", "1", "--watermark", "COPY")
	j, err := loadJob(c, testConfig(), []string{path})
	if err != nil {
		t.Fatalf("load job: %v", err)
	}
	if j.Title != "From file" || j.Options.Watermark != "COPY" {
		t.Errorf("unexpected job %+v", j)
	}
	if j.Groups[0].Settings.Columns != 1 || j.Groups[1].Settings.Columns != 4 {
		t.Errorf("expected flag default 1 and group override 4, got %d and %d",
			j.Groups[0].Settings.Columns, j.Groups[1].Settings.Columns)
	}
}

func TestLoadJob_Errors(t *testing.T) {
	tests := []struct {
		name string
		flag []string
		args []string
		want string
	}{
		{"nothing", nil, nil, "at least one --input"},
		{"both", []string{"-i", "a.pdf"}, []string{"job.yaml"}, "not both"},
		{"missing file", nil, []string{filepath.Join(os.TempDir(), "does-not-exist.yaml")}, "reading job"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadJob(newJobCommand(t, tt.flag...), testConfig(), tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
