package model //import "github.com/homeshelf/homeshelf/model"

// Book is one catalog entry. Field names in the persisted JSON match the
// layout the frontend stores, so an existing catalog can be imported as-is.
type Book struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Publisher       string `json:"publisher"`
	PublicationYear string `json:"publicationYear"`
	Language        string `json:"language"`
	Pages           string `json:"pages"`
	Price           string `json:"price"`
	Image           string `json:"image"`
	URL             string `json:"url"`
	ISBN13          string `json:"isbn13,omitempty"`
	// Selected is a transient UI flag. At most one book in the catalog is
	// selected at a time.
	Selected bool `json:"selected"`
}

// BookFields holds everything a caller may set on a book. The id and the
// selected flag are owned by the catalog and never come from the caller.
type BookFields struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Publisher       string `json:"publisher"`
	PublicationYear string `json:"publicationYear"`
	Language        string `json:"language"`
	Pages           string `json:"pages"`
	Price           string `json:"price"`
	Image           string `json:"image"`
	URL             string `json:"url"`
	ISBN13          string `json:"isbn13,omitempty"`
}
