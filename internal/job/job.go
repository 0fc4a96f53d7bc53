// Package job reads render jobs: which documents to decode, how their pages
// are grouped, and the layout of each group.
package job

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/slide-sheets/internal/config"
	"github.com/kozaktomas/slide-sheets/internal/layout"
	"github.com/kozaktomas/slide-sheets/internal/raster"
)

// Job is a parsed job file.
type Job struct {
	Title     string
	Options   Options
	Documents []Document
	Groups    []Group
}

// Options are render-wide switches.
type Options struct {
	Watermark      string `yaml:"watermark" json:"watermark"`
	PageNumbers    bool   `yaml:"page_numbers" json:"page_numbers"`
	BinderRotation bool   `yaml:"binder_rotation" json:"binder_rotation"`
	LabelLength    int    `yaml:"label_length" json:"label_length"`
	// Date fixes the {date} placeholder and PDF timestamps (YYYY-MM-DD).
	Date string `yaml:"date" json:"date"`
}

// Document is one source document.
type Document struct {
	ID   string `yaml:"id" json:"id"`
	Path string `yaml:"path" json:"path"`
	Name string `yaml:"name" json:"name"`
}

// Group is one group of pages with its resolved settings.
type Group struct {
	Name     string
	Pages    []string
	Settings config.GroupSettings
}

type fileJob struct {
	Title     string      `yaml:"title"`
	Options   Options     `yaml:"options"`
	Defaults  yaml.Node   `yaml:"defaults"`
	Documents []Document  `yaml:"documents"`
	Groups    []fileGroup `yaml:"groups"`
}

type fileGroup struct {
	Name   string    `yaml:"name"`
	Pages  []string  `yaml:"pages"`
	Layout yaml.Node `yaml:"layout"`
}

// Parse reads a job in YAML or JSON. Settings a group does not set come from
// the job's defaults section, then from defaults.
func Parse(data []byte, defaults config.GroupSettings) (*Job, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		// JSON indented with tabs is not valid YAML
		var compact bytes.Buffer
		if err := json.Compact(&compact, trimmed); err != nil {
			return nil, fmt.Errorf("parsing job: %w", err)
		}
		data = compact.Bytes()
	}

	var f fileJob
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing job: %w", err)
	}

	base := defaults
	if !f.Defaults.IsZero() {
		if err := f.Defaults.Decode(&base); err != nil {
			return nil, fmt.Errorf("defaults: %w", err)
		}
	}

	j := &Job{Title: f.Title, Options: f.Options, Documents: f.Documents}
	for i, g := range f.Groups {
		settings := base
		if !g.Layout.IsZero() {
			if err := g.Layout.Decode(&settings); err != nil {
				return nil, fmt.Errorf("groups[%d].layout: %w", i, err)
			}
		}
		name := g.Name
		if name == "" {
			name = fmt.Sprintf("Group %d", i+1)
		}
		j.Groups = append(j.Groups, Group{Name: name, Pages: g.Pages, Settings: settings})
	}

	if err := j.validate(); err != nil {
		return nil, err
	}
	return j, nil
}

// Load reads a job file. Relative document paths are resolved against the
// file's directory.
func Load(path string, defaults config.GroupSettings) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job: %w", err)
	}
	j, err := Parse(data, defaults)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	dir := filepath.Dir(path)
	for i, d := range j.Documents {
		if d.Path != "" && !filepath.IsAbs(d.Path) {
			j.Documents[i].Path = filepath.Join(dir, d.Path)
		}
	}
	return j, nil
}

// FromFiles builds a job with a single group holding every page of every
// file, in order. Document ids are derived from the file names.
func FromFiles(title string, paths []string, settings config.GroupSettings) (*Job, error) {
	j := &Job{Title: title}
	used := make(map[string]bool, len(paths))
	pages := make([]string, 0, len(paths))
	for _, p := range paths {
		id := documentID(p, used)
		used[id] = true
		j.Documents = append(j.Documents, Document{ID: id, Path: p})
		pages = append(pages, id+":*")
	}
	j.Groups = []Group{{Name: "Slides", Pages: pages, Settings: settings}}
	if err := j.validate(); err != nil {
		return nil, err
	}
	return j, nil
}

// documentID turns a file name into an id not yet in used.
func documentID(path string, used map[string]bool) string {
	base := filepath.Base(path)
	id := strings.Map(func(r rune) rune {
		if r == ':' || r == ',' {
			return '_'
		}
		return r
	}, strings.TrimSuffix(base, filepath.Ext(base)))
	if id == "" || id == "blank" || id == "lined" {
		id = "doc-" + id
	}
	candidate := id
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
	return candidate
}

func (j *Job) validate() error {
	if len(j.Documents) == 0 {
		return errors.New("documents: at least one document is required")
	}
	seen := make(map[string]bool, len(j.Documents))
	for i, d := range j.Documents {
		switch {
		case d.ID == "":
			return fmt.Errorf("documents[%d].id: required", i)
		case strings.ContainsAny(d.ID, ":,"):
			return fmt.Errorf("documents[%d].id: %q must not contain ':' or ','", i, d.ID)
		case d.ID == "blank" || d.ID == "lined":
			return fmt.Errorf("documents[%d].id: %q is reserved", i, d.ID)
		case seen[d.ID]:
			return fmt.Errorf("documents[%d].id: duplicate id %q", i, d.ID)
		case d.Path == "":
			return fmt.Errorf("documents[%d].path: required", i)
		}
		seen[d.ID] = true
	}
	if len(j.Groups) == 0 {
		return errors.New("groups: at least one group is required")
	}
	if j.Options.Date != "" {
		if _, err := time.Parse(time.DateOnly, j.Options.Date); err != nil {
			return fmt.Errorf("options.date: expected YYYY-MM-DD, got %q", j.Options.Date)
		}
	}
	if j.Options.LabelLength < 0 {
		return fmt.Errorf("options.label_length: must not be negative")
	}
	return nil
}

// Sources returns the documents as decode sources.
func (j *Job) Sources() []raster.Source {
	out := make([]raster.Source, len(j.Documents))
	for i, d := range j.Documents {
		out[i] = raster.Source{ID: d.ID, Path: d.Path, Name: d.Name}
	}
	return out
}

// DocumentIDs returns the document ids in job order.
func (j *Job) DocumentIDs() []string {
	ids := make([]string, len(j.Documents))
	for i, d := range j.Documents {
		ids[i] = d.ID
	}
	return ids
}

// PageCounter reports how many pages a decoded document has.
type PageCounter interface {
	PageCount(documentID string) int
}

// Build resolves every group's page selectors against the decoded documents
// and returns the layout input. labelLength is used when the job sets none.
func (j *Job) Build(pages PageCounter, labelLength int) ([]layout.Group, layout.GlobalOptions, error) {
	known := make(map[string]bool, len(j.Documents))
	for _, d := range j.Documents {
		known[d.ID] = true
	}

	groups := make([]layout.Group, 0, len(j.Groups))
	for gi, g := range j.Groups {
		var entries []layout.PageEntry
		for si, sel := range g.Pages {
			resolved, err := resolveSelector(sel, known, pages)
			if err != nil {
				return nil, layout.GlobalOptions{}, fmt.Errorf("groups[%d].pages[%d]: %w", gi, si, err)
			}
			entries = append(entries, resolved...)
		}
		groups = append(groups, layout.Group{Name: g.Name, Entries: entries, Config: g.Settings.GroupConfig()})
	}
	return groups, j.globalOptions(labelLength), nil
}

func (j *Job) globalOptions(labelLength int) layout.GlobalOptions {
	names := make(map[string]string, len(j.Documents))
	for _, d := range j.Documents {
		names[d.ID] = raster.Source{Path: d.Path, Name: d.Name}.DisplayName()
	}
	opts := layout.GlobalOptions{
		Watermark:      j.Options.Watermark,
		PageNumbers:    j.Options.PageNumbers,
		BinderRotation: j.Options.BinderRotation,
		Title:          j.Title,
		LabelLength:    labelLength,
		DocumentNames:  names,
	}
	if j.Options.LabelLength > 0 {
		opts.LabelLength = j.Options.LabelLength
	}
	if j.Options.Date != "" {
		// validated in Parse
		date, _ := time.Parse(time.DateOnly, j.Options.Date)
		opts.Now = func() time.Time { return date }
	}
	return opts
}
