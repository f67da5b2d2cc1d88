package services

import (
	"context"

	"github.com/archivo-digital/apiserver/internal/store"
	"github.com/archivo-digital/apiserver/types"
)

// SearchService finds files by name across the taxonomy.
type SearchService struct {
	files FileRepository
}

func NewSearchService(files FileRepository) *SearchService {
	return &SearchService{files: files}
}

// Search returns files whose name contains term, ignoring case. An empty term
// matches every file. A nil categoryID searches all categories. No match is
// reported as ErrNotFound rather than an empty slice.
func (s *SearchService) Search(ctx context.Context, term string, categoryID *int) ([]types.File, error) {
	files, err := s.files.Search(ctx, store.SearchFilter{Term: term, CategoryID: categoryID})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, clientError(ErrNotFound, "no files found")
	}
	return files, nil
}
