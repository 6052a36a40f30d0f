package lookup

import (
	"strings"

	"github.com/homeshelf/homeshelf/model"
)

// MaxSimilar caps the suggestion list shown in the detail view.
const MaxSimilar = 6

// Similar filters raw candidates against the source book: drops entries
// without a title, the source itself (matching isbn13 when both are known,
// or a case-insensitive title match) and caps the result at MaxSimilar,
// preserving upstream order.
func Similar(source model.Book, candidates []model.SimilarBook) []model.SimilarBook {
	result := []model.SimilarBook{}
	for _, c := range candidates {
		if c.Title == "" {
			continue
		}
		if source.ISBN13 != "" && c.ISBN13 != "" && c.ISBN13 == source.ISBN13 {
			continue
		}
		if strings.EqualFold(c.Title, source.Title) {
			continue
		}
		result = append(result, c)
		if len(result) == MaxSimilar {
			break
		}
	}
	return result
}
