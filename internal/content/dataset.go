// Package content holds the read-only portfolio dataset. It is built once at
// startup and handed to consumers by pointer; nothing mutates it afterwards.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"math/rand"
	"os"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seed []byte

// document mirrors the YAML layout of seed.yaml and of override files.
type document struct {
	Profile        Profile        `yaml:"profile"`
	Stats          []Stat         `yaml:"stats"`
	Projects       []Project      `yaml:"projects"`
	Skills         []Skill        `yaml:"skills"`
	Videos         []Video        `yaml:"videos"`
	Posts          []Post         `yaml:"posts"`
	Articles       []Article      `yaml:"articles"`
	GitHubActivity GitHubActivity `yaml:"githubActivity"`
}

type Dataset struct {
	profile  Profile
	bioHTML  template.HTML
	stats    []Stat
	projects []Project
	skills   []Skill
	videos   []Video
	posts    []Post
	articles []Article
	activity GitHubActivity
}

type Options struct {
	// File replaces the embedded seed when set.
	File string
	// Now anchors the trailing contribution window. Zero means time.Now.
	Now time.Time
	// Rand drives the synthetic contribution counts. Nil seeds from the clock.
	Rand *rand.Rand
}

func Load(opts Options) (*Dataset, error) {
	raw := seed
	if opts.File != "" {
		b, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, fmt.Errorf("error reading data file %s: %w", opts.File, err)
		}
		raw = b
	}
	return Parse(raw, opts)
}

func Parse(raw []byte, opts Options) (*Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("error unmarshalling dataset: %w", err)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	bio, err := renderMarkdown(doc.Profile.Bio)
	if err != nil {
		return nil, fmt.Errorf("error rendering bio: %w", err)
	}

	for i := range doc.Stats {
		if doc.Stats[i].DisplayValue == "" {
			doc.Stats[i].DisplayValue = humanize.Comma(int64(doc.Stats[i].Value))
		}
	}

	activity := doc.GitHubActivity
	activity.ContributionGraph = GenerateContributions(now, rng)

	return &Dataset{
		profile:  doc.Profile,
		bioHTML:  bio,
		stats:    doc.Stats,
		projects: doc.Projects,
		skills:   doc.Skills,
		videos:   doc.Videos,
		posts:    doc.Posts,
		articles: doc.Articles,
		activity: activity,
	}, nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (d *Dataset) Profile() Profile {
	p := d.profile
	p.Links = slices.Clone(p.Links)
	return p
}

// BioHTML is the profile bio rendered from markdown at load time.
func (d *Dataset) BioHTML() template.HTML { return d.bioHTML }

func (d *Dataset) Stats() []Stat       { return slices.Clone(d.stats) }
func (d *Dataset) Skills() []Skill     { return slices.Clone(d.skills) }
func (d *Dataset) Videos() []Video     { return slices.Clone(d.videos) }
func (d *Dataset) Posts() []Post       { return slices.Clone(d.posts) }
func (d *Dataset) Articles() []Article { return slices.Clone(d.articles) }

func (d *Dataset) Projects() []Project {
	out := slices.Clone(d.projects)
	for i := range out {
		out[i].Tech = slices.Clone(out[i].Tech)
		out[i].Tags = slices.Clone(out[i].Tags)
	}
	return out
}

func (d *Dataset) SkillsByCategory(category string) []Skill {
	out := []Skill{}
	for _, s := range d.skills {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

func (d *Dataset) GitHubActivity() GitHubActivity {
	a := d.activity
	a.ContributionGraph = slices.Clone(a.ContributionGraph)
	return a
}
