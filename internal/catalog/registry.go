// Package catalog holds the reference lists of scriptural moments and the discipleship pathways built from them.
package catalog

import (
	"io"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/models"
	"gopkg.in/yaml.v3"
)

// ErrPathwayNotFound is returned when looking up an unknown pathway or step.
var ErrPathwayNotFound = errors.NewSentinel("pathway not found")

// ErrEntryNotFound is returned when looking up a catalog index that does not exist.
var ErrEntryNotFound = errors.NewSentinel("catalog entry not found")

func defaults(v float64) models.Inputs {
	return models.Inputs{C: v, H: v, F: v}
}

func canonicalEntries() []models.CatalogEntry {
	return []models.CatalogEntry{
		{Book: "Genesis", Verse: "22:9–12", Figure: "Abraham", Situation: "Offer Isaac in obedience",
			Defaults: defaults(0.95), Ref: "Genesis 22:9–12"},
		{Book: "Exodus", Verse: "3:4", Figure: "Moses", Situation: "Respond to God's call at the burning bush",
			Defaults: defaults(0.90), Ref: "Exodus 3:4"},
		{Book: "Matthew", Verse: "5:1–12", Figure: "Jesus", Situation: "Teach the Beatitudes",
			Defaults: defaults(1.00), Ref: "Matthew 5:1–12"},
		{Book: "Luke", Verse: "15:20", Figure: "Father", Situation: "Forgive the prodigal son",
			Defaults: defaults(0.95), Ref: "Luke 15:20"},
		{Book: "John", Verse: "13:5", Figure: "Jesus", Situation: "Wash the disciples’ feet",
			Defaults: defaults(1.00), Ref: "John 13:5"},
		{Book: "Acts", Verse: "2:42–47", Figure: "Early Church", Situation: "Live in unity and generosity",
			Defaults: defaults(0.95), Ref: "Acts 2:42–47"},
	}
}

func canonicalPathways() map[string][]models.PathwayStep {
	return map[string][]models.PathwayStep{
		"Obedience": {
			{Book: "Genesis", Verse: "22:9–12", Figure: "Abraham", Situation: "Offer Isaac in obedience",
				Defaults: defaults(0.95)},
			{Book: "Matthew", Verse: "4:19", Figure: "Jesus", Situation: "Call the disciples to follow",
				Defaults: defaults(0.90)},
		},
		"Love": {
			{Book: "Luke", Verse: "15:20", Figure: "Father", Situation: "Forgive the prodigal son",
				Defaults: defaults(0.95)},
			{Book: "John", Verse: "13:5", Figure: "Jesus", Situation: "Wash the disciples’ feet",
				Defaults: defaults(1.00)},
		},
		"Wisdom": {
			{Book: "Proverbs", Verse: "3:5–6", Figure: "Solomon", Situation: "Trust in the Lord",
				Defaults: defaults(0.90)},
			{Book: "James", Verse: "1:5", Figure: "James", Situation: "Ask God for wisdom",
				Defaults: defaults(0.90)},
		},
	}
}

// CanonicalSize is the number of entries a new Registry is seeded with.
const CanonicalSize = 6

// Registry is the catalog in browsing order plus the static pathways.
//
// Entries are only ever appended. A Registry is not safe for concurrent use.
type Registry struct {
	entries  []models.CatalogEntry
	pathways map[string][]models.PathwayStep
}

// NewRegistry creates a registry seeded with the canonical entries and pathways.
func NewRegistry() *Registry {
	return &Registry{
		entries:  canonicalEntries(),
		pathways: canonicalPathways(),
	}
}

// Clone returns an independent copy, e.g., to layer a visitor's additions over a shared base catalog.
func (r *Registry) Clone() *Registry {
	return &Registry{entries: slices.Clone(r.entries), pathways: r.pathways}
}

// List returns the catalog in insertion order.
func (r *Registry) List() []models.CatalogEntry {
	return slices.Clone(r.entries)
}

// Entry returns the catalog entry at index i.
func (r *Registry) Entry(i int) (models.CatalogEntry, error) {
	if i < 0 || i >= len(r.entries) {
		return models.CatalogEntry{}, errors.Wrap(ErrEntryNotFound, "lookup catalog entry", slog.Int("index", i))
	}
	return r.entries[i], nil
}

// Add appends entry to the catalog. Book and Verse are required; duplicates are allowed.
func (r *Registry) Add(entry models.CatalogEntry) error {
	entry.Book = strings.TrimSpace(entry.Book)
	entry.Verse = strings.TrimSpace(entry.Verse)
	if entry.Book == "" || entry.Verse == "" {
		return errors.Wrap(models.ErrValidation, "book and verse are required")
	}
	for _, v := range []float64{entry.Defaults.C, entry.Defaults.H, entry.Defaults.F} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return errors.Wrap(models.ErrValidation, "default inputs must lie in [0, 1]",
				slog.String("book", entry.Book), slog.String("verse", entry.Verse))
		}
	}
	entry.Figure = strings.TrimSpace(entry.Figure)
	entry.Situation = strings.TrimSpace(entry.Situation)
	if strings.TrimSpace(entry.Ref) == "" {
		entry.Ref = entry.Book + " " + entry.Verse
	}
	r.entries = append(r.entries, entry)
	return nil
}

// Pathways returns the pathways keyed by name.
func (r *Registry) Pathways() map[string][]models.PathwayStep {
	pathways := make(map[string][]models.PathwayStep, len(r.pathways))
	for name, steps := range r.pathways {
		pathways[name] = slices.Clone(steps)
	}
	return pathways
}

// PathwayNames lists the pathway names alphabetically.
func (r *Registry) PathwayNames() []string {
	names := make([]string, 0, len(r.pathways))
	for name := range r.pathways {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Pathway returns the named pathway.
func (r *Registry) Pathway(name string) (models.Pathway, error) {
	steps, ok := r.pathways[name]
	if !ok {
		return models.Pathway{}, errors.Wrap(ErrPathwayNotFound, "lookup pathway", slog.String("pathway", name))
	}
	return models.Pathway{Name: name, Steps: slices.Clone(steps)}, nil
}

// Step returns step i of the named pathway.
func (r *Registry) Step(name string, i int) (models.PathwayStep, error) {
	p, err := r.Pathway(name)
	if err != nil {
		return models.PathwayStep{}, err
	}
	if i < 0 || i >= len(p.Steps) {
		return models.PathwayStep{}, errors.Wrap(ErrPathwayNotFound, "lookup pathway step",
			slog.String("pathway", name), slog.Int("step", i))
	}
	return p.Steps[i], nil
}

// WithAdditions returns a copy of r with additions appended, e.g., the entries a visitor added in an earlier request.
func (r *Registry) WithAdditions(additions []models.CatalogEntry) (*Registry, error) {
	c := r.Clone()
	for i, entry := range additions {
		if err := c.Add(entry); err != nil {
			return nil, errors.Wrap(err, "restore catalog addition", slog.Int("index", i))
		}
	}
	return c, nil
}

type yamlCatalog struct {
	Entries []models.CatalogEntry `yaml:"entries"`
}

// LoadYAML appends the entries of a YAML document to the catalog.
//
// The document has a top-level "entries" list with book, verse, figure, situation, ref and defaults (c, h, f) keys.
// Entries are validated like Add; on error nothing is appended.
func (r *Registry) LoadYAML(reader io.Reader) error {
	var (
		doc yamlCatalog
		err error
	)
	if err = yaml.NewDecoder(reader).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "decode catalog YAML")
	}
	staged := r.Clone()
	for i, entry := range doc.Entries {
		if err = staged.Add(entry); err != nil {
			return errors.Wrap(err, "add catalog entry", slog.Int("index", i))
		}
	}
	r.entries = staged.entries
	return nil
}
