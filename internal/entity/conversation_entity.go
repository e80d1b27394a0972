package entity

import "time"

// Turn is one (user input, assistant output) exchange. Turns are append-only
// and strictly ordered within a persona's history.
type Turn struct {
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	CreatedAt time.Time `json:"created_at"`
}

// SourceCatalog maps a category name to an ordered list of free-text source
// descriptors. Read by persona creation and prompt assembly as informational
// text only.
type SourceCatalog map[string][]string

// DefaultSourceCatalog returns the categories seeded on first load.
func DefaultSourceCatalog() SourceCatalog {
	return SourceCatalog{
		"Books":   {},
		"Experts": {},
		"Styles":  {},
		"Custom":  {},
	}
}
