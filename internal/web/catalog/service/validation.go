package service

import (
	"strings"
	"unicode/utf8"

	"github.com/Laisky/errors/v2"

	"github.com/video-club/video-club-api/internal/web/catalog/dto"
	"github.com/video-club/video-club-api/internal/web/catalog/model"
)

const (
	// maxPageSize caps the number of items returned in one page.
	maxPageSize = 200
	// maxNameLength caps person and director names.
	maxNameLength = 200
	// maxTitleLength caps movie titles per locale.
	maxTitleLength = 500
	// maxURLLength caps image URLs.
	maxURLLength = 2048
	// maxSearchLength caps the admin search term.
	maxSearchLength = 200
)

// requiredField trims input and enforces presence plus a rune length cap.
// It returns the sanitized value or a validation error naming the field.
func requiredField(input string, maxLen int, field string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", errors.Wrapf(model.ErrValidation, "%s is required", field)
	}
	if utf8.RuneCountInString(trimmed) > maxLen {
		return "", errors.Wrapf(model.ErrValidation, "%s exceeds max length %d", field, maxLen)
	}

	return trimmed, nil
}

// sanitizePagination clamps page and limit to sane bounds. Page is
// 1-based; out-of-range pages are legal and yield empty result sets.
func sanitizePagination(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return page, limit
}

// validatePersonCfg checks the person create/update payload in place.
func validatePersonCfg(cfg *dto.PersonCfg) error {
	var err error
	if cfg.Name, err = requiredField(cfg.Name, maxNameLength, "name"); err != nil {
		return err
	}
	if cfg.ProfileURL, err = requiredField(cfg.ProfileURL, maxURLLength, "profile_url"); err != nil {
		return err
	}
	if cfg.Date, err = requiredField(cfg.Date, maxNameLength, "date"); err != nil {
		return err
	}

	return nil
}

// validateMovieCfg checks the movie create/update payload. At least the
// default locale must carry a non-empty title.
func validateMovieCfg(cfg *dto.MovieCfg, defaultLocale string) error {
	var err error
	if cfg.Director, err = requiredField(cfg.Director, maxNameLength, "director"); err != nil {
		return err
	}
	if cfg.Year, err = requiredField(cfg.Year, 10, "year"); err != nil {
		return err
	}
	if len(cfg.Translations) == 0 {
		return errors.Wrap(model.ErrValidation, "translations are required")
	}
	if strings.TrimSpace(cfg.Translations[defaultLocale].Title) == "" {
		return errors.Wrapf(model.ErrValidation,
			"translations.%s.title is required", defaultLocale)
	}
	for locale, tr := range cfg.Translations {
		if utf8.RuneCountInString(tr.Title) > maxTitleLength {
			return errors.Wrapf(model.ErrValidation,
				"translations.%s.title exceeds max length %d", locale, maxTitleLength)
		}
	}

	return nil
}
