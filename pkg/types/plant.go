// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the POWO agent:
// the extracted plant query, the search and taxon payloads returned by
// the Kew Gardens POWO API, and per-stage configuration.
//
// See docs/ARCHITECTURE.md § Data Structures.
package types

import "fmt"

// PlantQuery is the genus/species pair extracted from a free-text request.
// Built once per run and never mutated afterwards.
type PlantQuery struct {
	// Genus is the plant genus, e.g. "Mangifera".
	Genus string `json:"genus" yaml:"genus"`

	// Species is the plant species epithet, e.g. "indica".
	Species string `json:"species" yaml:"species"`
}

// Validate reports whether the query names both a genus and a species.
func (q PlantQuery) Validate() error {
	if q.Genus == "" {
		return fmt.Errorf("plant query missing genus")
	}
	if q.Species == "" {
		return fmt.Errorf("plant query missing species")
	}
	return nil
}

// String returns the binomial form "Genus species".
func (q PlantQuery) String() string {
	return q.Genus + " " + q.Species
}

// SearchResult is one entry in a POWO search response. Only FqID is
// required; entries without it are dropped during identifier extraction.
type SearchResult struct {
	// FqID is the fully-qualified taxon identifier (e.g. "urn:lsid:ipni.org:names:527948-1").
	FqID string `json:"fqId" yaml:"fq_id"`

	// Rank is the taxonomic rank of the record (e.g. "Species").
	Rank string `json:"rank,omitempty" yaml:"rank,omitempty"`

	// Accepted indicates whether this is an accepted name rather than a synonym.
	Accepted *bool `json:"accepted,omitempty" yaml:"accepted,omitempty"`

	// Author is the naming authority string.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	Kingdom string `json:"kingdom,omitempty" yaml:"kingdom,omitempty"`
	Family  string `json:"family,omitempty" yaml:"family,omitempty"`

	// Name is the scientific name as rendered by POWO.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Snippet is the highlighted match fragment from the search index.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// URL is the relative POWO page path for the taxon.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Images holds whatever image payload the API attaches; shape varies.
	Images any `json:"images,omitempty" yaml:"images,omitempty"`

	// SynonymOf points at the accepted name when this record is a synonym.
	SynonymOf map[string]any `json:"synonymOf,omitempty" yaml:"synonym_of,omitempty"`
}

// SearchResponse is the envelope returned by the POWO search endpoint.
// Results may be empty; an empty result list is a valid "no match"
// outcome, not an error.
type SearchResponse struct {
	TotalResults int            `json:"totalResults" yaml:"total_results"`
	Page         int            `json:"page" yaml:"page"`
	TotalPages   int            `json:"totalPages" yaml:"total_pages"`
	PerPage      int            `json:"perPage" yaml:"per_page"`
	Cursor       string         `json:"cursor,omitempty" yaml:"cursor,omitempty"`
	Message      string         `json:"message,omitempty" yaml:"message,omitempty"`
	Results      []SearchResult `json:"results" yaml:"results"`
}

// Classification is one ancestor rank in a taxon's classification chain.
type Classification struct {
	FqID            string `json:"fqId" yaml:"fq_id"`
	Name            string `json:"name" yaml:"name"`
	Author          string `json:"author,omitempty" yaml:"author,omitempty"`
	Rank            string `json:"rank" yaml:"rank"`
	TaxonomicStatus string `json:"taxonomicStatus" yaml:"taxonomic_status"`
}

// Synonym is one synonymous name attached to a taxon record.
type Synonym struct {
	FqID            string `json:"fqId" yaml:"fq_id"`
	Name            string `json:"name" yaml:"name"`
	Author          string `json:"author,omitempty" yaml:"author,omitempty"`
	Rank            string `json:"rank" yaml:"rank"`
	TaxonomicStatus string `json:"taxonomicStatus" yaml:"taxonomic_status"`
}

// Location is a single TDWG distribution area.
type Location struct {
	// FeatureID is the POWO feature identifier for the area.
	FeatureID int `json:"featureId" yaml:"feature_id"`

	// TDWGCode is the World Geographical Scheme code (e.g. "IND").
	TDWGCode string `json:"tdwgCode" yaml:"tdwg_code"`

	// TDWGLevel is the depth of the code in the TDWG hierarchy.
	TDWGLevel int `json:"tdwgLevel" yaml:"tdwg_level"`

	// Name is the display name of the area.
	Name string `json:"name" yaml:"name"`
}

// Distribution holds the native and introduced ranges of a taxon.
// Present only when the detail fetch requests the distribution field.
type Distribution struct {
	Natives    []Location `json:"natives,omitempty" yaml:"natives,omitempty"`
	Introduced []Location `json:"introduced,omitempty" yaml:"introduced,omitempty"`
}

// TaxonDetail is the full POWO taxon record fetched per identifier.
// Live records are sparse: beyond the identifying trio (FqID, Name,
// Rank) every field is optional.
type TaxonDetail struct {
	FqID string `json:"fqId" yaml:"fq_id"`
	Name string `json:"name" yaml:"name"`
	Rank string `json:"rank" yaml:"rank"`

	Modified              string `json:"modified,omitempty" yaml:"modified,omitempty"`
	BibliographicCitation string `json:"bibliographicCitation,omitempty" yaml:"bibliographic_citation,omitempty"`
	Genus                 string `json:"genus,omitempty" yaml:"genus,omitempty"`
	Species               string `json:"species,omitempty" yaml:"species,omitempty"`
	TaxonomicStatus       string `json:"taxonomicStatus,omitempty" yaml:"taxonomic_status,omitempty"`
	Kingdom               string `json:"kingdom,omitempty" yaml:"kingdom,omitempty"`
	Phylum                string `json:"phylum,omitempty" yaml:"phylum,omitempty"`
	Class                 string `json:"clazz,omitempty" yaml:"class,omitempty"`
	Subclass              string `json:"subclass,omitempty" yaml:"subclass,omitempty"`
	Order                 string `json:"order,omitempty" yaml:"order,omitempty"`
	Family                string `json:"family,omitempty" yaml:"family,omitempty"`
	NomenclaturalCode     string `json:"nomenclaturalCode,omitempty" yaml:"nomenclatural_code,omitempty"`
	NomenclaturalStatus   string `json:"nomenclaturalStatus,omitempty" yaml:"nomenclatural_status,omitempty"`
	Source                string `json:"source,omitempty" yaml:"source,omitempty"`
	NamePublishedInYear   int    `json:"namePublishedInYear,omitempty" yaml:"name_published_in_year,omitempty"`
	TaxonRemarks          string `json:"taxonRemarks,omitempty" yaml:"taxon_remarks,omitempty"`
	Lifeform              string `json:"lifeform,omitempty" yaml:"lifeform,omitempty"`
	Climate               string `json:"climate,omitempty" yaml:"climate,omitempty"`
	Hybrid                bool   `json:"hybrid,omitempty" yaml:"hybrid,omitempty"`
	PaftolID              string `json:"paftolId,omitempty" yaml:"paftol_id,omitempty"`
	Plantae               bool   `json:"plantae,omitempty" yaml:"plantae,omitempty"`
	Fungi                 bool   `json:"fungi,omitempty" yaml:"fungi,omitempty"`
	Synonym               bool   `json:"synonym,omitempty" yaml:"synonym,omitempty"`
	Authors               string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Reference             string `json:"reference,omitempty" yaml:"reference,omitempty"`

	// Locations is the flat list of distribution area names.
	Locations []string `json:"locations,omitempty" yaml:"locations,omitempty"`

	Classification []Classification `json:"classification,omitempty" yaml:"classification,omitempty"`
	Synonyms       []Synonym        `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
	Distribution   *Distribution    `json:"distribution,omitempty" yaml:"distribution,omitempty"`
}

// Validate checks the identifying fields every taxon record must carry.
func (d TaxonDetail) Validate() error {
	if d.FqID == "" {
		return fmt.Errorf("taxon record missing fqId")
	}
	if d.Name == "" {
		return fmt.Errorf("taxon record %s missing name", d.FqID)
	}
	if d.Rank == "" {
		return fmt.Errorf("taxon record %s missing rank", d.FqID)
	}
	return nil
}
