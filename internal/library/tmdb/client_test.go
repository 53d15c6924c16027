package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/movie", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.Equal(t, "The Thing", r.URL.Query().Get("query"))
		require.Equal(t, "1982", r.URL.Query().Get("year"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[` +
			`{"id":1091,"title":"The Thing","release_date":"1982-06-25"},` +
			`{"id":9999,"title":"The Thing","release_date":"2011-10-14"}]}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key", srv.Client())

	hit, err := client.Search(context.Background(), "The Thing", "1982")
	require.NoError(t, err)
	require.NotNil(t, hit)
	require.Equal(t, 1091, hit.ID)
	require.Equal(t, "The Thing", hit.Title)
}

func TestSearchNoResult(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key", srv.Client())

	hit, err := client.Search(context.Background(), "no such movie", "")
	require.NoError(t, err)
	require.Nil(t, hit)
}

func TestMovieForImport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/movie/1091/credits":
			_, _ = w.Write([]byte(`{"crew":[` +
				`{"name":"Bill Lancaster","job":"Screenplay"},` +
				`{"name":"John Carpenter","job":"Director"}]}`))
		case r.URL.Path == "/movie/1091" && r.URL.Query().Get("language") == "en-US":
			_, _ = w.Write([]byte(`{"title":"The Thing","overview":"An alien...",` +
				`"poster_path":"/p-en.jpg","backdrop_path":"/b.jpg",` +
				`"release_date":"1982-06-25","genres":[{"id":27},{"id":878}]}`))
		case r.URL.Path == "/movie/1091" && r.URL.Query().Get("language") == "fr-FR":
			_, _ = w.Write([]byte(`{"title":"The Thing","overview":"Un extraterrestre...",` +
				`"poster_path":"/p-fr.jpg","backdrop_path":"/b.jpg",` +
				`"release_date":"1982-06-25","genres":[{"id":27},{"id":878}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key", srv.Client())

	movie, err := client.MovieForImport(context.Background(), 1091, []string{"en", "fr"})
	require.NoError(t, err)
	require.NotNil(t, movie)
	require.Equal(t, "John Carpenter", movie.Director)
	require.Equal(t, "1982", movie.Year)
	require.Equal(t, "https://image.tmdb.org/t/p/original/b.jpg", movie.BackdropURL)
	require.Equal(t, []int{27, 878}, movie.GenreIDs)
	require.Len(t, movie.Translations, 2)
	require.Equal(t, "An alien...", movie.Translations["en"].Overview)
	require.Equal(t, "https://image.tmdb.org/t/p/original/p-fr.jpg",
		movie.Translations["fr"].PosterURL)
}

func TestMovieForImportMissingLocale(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/movie/7/credits":
			_, _ = w.Write([]byte(`{"crew":[]}`))
		case r.URL.Path == "/movie/7" && r.URL.Query().Get("language") == "en-US":
			_, _ = w.Write([]byte(`{"title":"Obscure","release_date":"2003-01-01"}`))
		default:
			// Other languages are not translated.
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key", srv.Client())

	movie, err := client.MovieForImport(context.Background(), 7, []string{"en", "fr"})
	require.NoError(t, err)
	require.NotNil(t, movie)
	require.Empty(t, movie.Director)
	require.Equal(t, "2003", movie.Year)
	require.Len(t, movie.Translations, 1)
	require.Equal(t, "Obscure", movie.Translations["en"].Title)
}

func TestLanguageTag(t *testing.T) {
	t.Parallel()

	require.Equal(t, "en-US", languageTag("en"))
	require.Equal(t, "fr-FR", languageTag("fr"))
	require.Equal(t, "pt-BR", languageTag("pt-BR"))
}
