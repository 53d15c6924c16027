// Package tmdb is a thin client for the TMDB v3 API, covering the
// lookups the catalog import pipeline needs.
package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	errors "github.com/Laisky/errors/v2"
	"golang.org/x/sync/errgroup"
)

const defaultAPIBase = "https://api.themoviedb.org/3"

// languageTags maps catalog locales to TMDB language tags.
var languageTags = map[string]string{
	"en": "en-US",
	"fr": "fr-FR",
}

// Client calls the TMDB API with bearer authentication.
type Client struct {
	apiBase    string
	apiKey     string
	httpClient *http.Client
}

// New creates a TMDB client with safe defaults.
func New(apiBase, apiKey string, httpClient *http.Client) *Client {
	trimmedBase := strings.TrimSpace(apiBase)
	if trimmedBase == "" {
		trimmedBase = defaultAPIBase
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		apiBase:    strings.TrimRight(trimmedBase, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// SearchResult is one movie hit of the search endpoint.
type SearchResult struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

// Translation is the localized slice of a movie record.
type Translation struct {
	Title     string
	Overview  string
	PosterURL string
}

// ImportedMovie is a movie record assembled from the details and
// credits endpoints across the requested locales.
type ImportedMovie struct {
	Director     string
	Year         string
	BackdropURL  string
	GenreIDs     []int
	Translations map[string]Translation
}

// Search returns the first search hit for a title, nil when TMDB knows
// nothing matching.
func (c *Client) Search(ctx context.Context, title, year string) (*SearchResult, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("missing title")
	}

	query := url.Values{}
	query.Set("query", title)
	if strings.TrimSpace(year) != "" {
		query.Set("year", year)
	}

	var decoded struct {
		Results []SearchResult `json:"results"`
	}
	if err := c.get(ctx, "/search/movie", query, &decoded); err != nil {
		return nil, errors.Wrapf(err, "search movie %q", title)
	}
	if len(decoded.Results) == 0 {
		return nil, nil
	}

	return &decoded.Results[0], nil
}

type movieDetails struct {
	Title        string `json:"title"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
	ReleaseDate  string `json:"release_date"`
	Genres       []struct {
		ID int `json:"id"`
	} `json:"genres"`
}

// details fetches a movie in one language. A non-2xx status yields
// (nil, nil) so a missing translation degrades instead of failing the
// import.
func (c *Client) details(ctx context.Context, id int, language string) (*movieDetails, error) {
	query := url.Values{}
	query.Set("language", language)

	decoded := new(movieDetails)
	err := c.get(ctx, "/movie/"+strconv.Itoa(id), query, decoded)
	if err != nil {
		if errors.Is(err, errStatus) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "movie %d details", id)
	}

	return decoded, nil
}

// director fetches the credits of a movie and returns its director's
// name, empty when none is credited.
func (c *Client) director(ctx context.Context, id int) (string, error) {
	var decoded struct {
		Crew []struct {
			Name string `json:"name"`
			Job  string `json:"job"`
		} `json:"crew"`
	}
	if err := c.get(ctx, "/movie/"+strconv.Itoa(id)+"/credits", nil, &decoded); err != nil {
		if errors.Is(err, errStatus) {
			return "", nil
		}
		return "", errors.Wrapf(err, "movie %d credits", id)
	}

	for _, member := range decoded.Crew {
		if member.Job == "Director" {
			return member.Name, nil
		}
	}

	return "", nil
}

// MovieForImport assembles a full import record for a movie: per-locale
// details fetched concurrently, plus the director from the credits.
// Returns nil when no locale yields a usable record.
func (c *Client) MovieForImport(ctx context.Context, id int, locales []string) (*ImportedMovie, error) {
	detailsByLocale := make([]*movieDetails, len(locales))
	var director string

	pool, gctx := errgroup.WithContext(ctx)
	for i, locale := range locales {
		pool.Go(func() error {
			d, err := c.details(gctx, id, languageTag(locale))
			if err != nil {
				return err
			}

			detailsByLocale[i] = d
			return nil
		})
	}
	pool.Go(func() error {
		var err error
		director, err = c.director(gctx, id)
		return err
	})
	if err := pool.Wait(); err != nil {
		return nil, err
	}

	movie := &ImportedMovie{
		Director:     director,
		Translations: map[string]Translation{},
	}
	for i, locale := range locales {
		d := detailsByLocale[i]
		if d == nil {
			continue
		}

		movie.Translations[locale] = Translation{
			Title:     d.Title,
			Overview:  d.Overview,
			PosterURL: imageURL(d.PosterPath),
		}
		if movie.Year == "" && len(d.ReleaseDate) >= 4 {
			movie.Year = d.ReleaseDate[:4]
		}
		if movie.BackdropURL == "" {
			movie.BackdropURL = imageURL(d.BackdropPath)
		}
		if len(movie.GenreIDs) == 0 {
			for _, g := range d.Genres {
				movie.GenreIDs = append(movie.GenreIDs, g.ID)
			}
		}
	}
	if len(movie.Translations) == 0 {
		return nil, nil
	}

	return movie, nil
}

// errStatus marks a non-2xx response from the API.
var errStatus = errors.New("tmdb status")

// get performs an authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.apiBase + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "build tmdb request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "call tmdb")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Wrapf(errStatus, "%d on %s", resp.StatusCode, path)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode tmdb response")
	}

	return nil
}

// languageTag converts a catalog locale to the TMDB language tag,
// passing unknown locales through unchanged.
func languageTag(locale string) string {
	if tag, ok := languageTags[locale]; ok {
		return tag
	}

	return locale
}

// imageURL turns a TMDB image path into an absolute CDN URL.
func imageURL(path string) string {
	if path == "" {
		return ""
	}

	return "https://image.tmdb.org/t/p/original" + path
}
