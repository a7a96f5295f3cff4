package models

// CatalogEntry is a scriptural moment available for scoring.
type CatalogEntry struct {
	Book      string `yaml:"book"`
	Verse     string `yaml:"verse"`
	Figure    string `yaml:"figure"`
	Situation string `yaml:"situation"`
	Defaults  Inputs `yaml:"defaults"`
	Ref       string `yaml:"ref"`
}

// PathwayStep is a catalog-like moment within a Pathway.
type PathwayStep struct {
	Book      string
	Verse     string
	Figure    string
	Situation string
	Defaults  Inputs
}

// Pathway is a named curated sequence of moments for guided reflection.
type Pathway struct {
	Name  string
	Steps []PathwayStep
}
