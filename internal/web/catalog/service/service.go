// Package service is the service layer of the catalog.
package service

import (
	"context"

	glog "github.com/Laisky/go-utils/v6/log"

	"github.com/video-club/video-club-api/internal/library/llm"
	"github.com/video-club/video-club-api/internal/library/tmdb"
	"github.com/video-club/video-club-api/internal/web/catalog/dao"
)

// MetadataSource is the external movie metadata API used by the import
// pipeline.
type MetadataSource interface {
	Search(ctx context.Context, title, year string) (*tmdb.SearchResult, error)
	MovieForImport(ctx context.Context, id int, locales []string) (*tmdb.ImportedMovie, error)
}

// TranscriptExtractor extracts movie mentions from a video.
type TranscriptExtractor interface {
	ExtractMovieMentions(ctx context.Context, videoURL string) ([]llm.MovieMention, error)
}

// Catalog catalog service
type Catalog struct {
	logger    glog.Logger
	dao       *dao.Catalog
	metadata  MetadataSource
	extractor TranscriptExtractor
	// locales are the supported display languages; the first one is the
	// default locale.
	locales []string
}

// New new catalog service
func New(logger glog.Logger,
	dao *dao.Catalog,
	metadata MetadataSource,
	extractor TranscriptExtractor,
	locales []string,
) *Catalog {
	if len(locales) == 0 {
		locales = []string{"en"}
	}

	return &Catalog{
		logger:    logger,
		dao:       dao,
		metadata:  metadata,
		extractor: extractor,
		locales:   locales,
	}
}

// DefaultLocale returns the catalog's default display language.
func (s *Catalog) DefaultLocale() string {
	return s.locales[0]
}

// supportedLocale falls back to the default locale for unknown values.
func (s *Catalog) supportedLocale(locale string) string {
	for _, l := range s.locales {
		if l == locale {
			return l
		}
	}

	return s.DefaultLocale()
}
