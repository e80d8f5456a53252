// Package entities contains domain entities used across the application.
package entities

// Category is a top-level grouping of the word catalog, e.g. "高频" or "主题".
type Category struct {
	ID   int64
	Name string
}

// Subcategory belongs to exactly one category.
type Subcategory struct {
	ID         int64
	Name       string
	CategoryID int64
}

// WordEntry is one catalog row. Several entries in different categories or
// subcategories may share the same SurfaceForm.
type WordEntry struct {
	ID            int64
	SurfaceForm   string // Korean spelling, the dedup key
	Gloss         string // Chinese meaning
	PartOfSpeech  string // optional
	ExampleKR     string // optional
	ExampleZH     string // optional
	CategoryID    int64
	SubcategoryID int64
}

// HasExample reports whether the entry carries an example sentence.
func (w WordEntry) HasExample() bool {
	return w.ExampleKR != ""
}
