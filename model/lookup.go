package model

// SimilarBook is one candidate returned by the external book-search service.
type SimilarBook struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ISBN13   string `json:"isbn13"`
	Price    string `json:"price"`
	Image    string `json:"image"`
	URL      string `json:"url,omitempty"`
}

// LookupJob asks a worker to fetch similar books for the given catalog entry.
// Generation ties the job to the detail view that requested it; a result whose
// generation is no longer current gets discarded instead of published.
type LookupJob struct {
	Generation uint64
	Book       Book
}
