package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"omdb/finder/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) CatalogClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOMDbClient(config.OMDbConfig{BaseURL: srv.URL, APIKey: "test-key", Timeout: 5})
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantItems  int
		wantTotal  int
		wantUpMsg  string
		wantUpErr  bool
		wantAnyErr bool
	}{
		{
			name:      "success",
			status:    http.StatusOK,
			body:      `{"Search":[{"Title":"Batman Begins","Year":"2005","imdbID":"tt0372784","Type":"movie","Poster":"https://img/1.jpg"},{"Title":"The Batman","Year":"2022","imdbID":"tt1877830","Type":"movie","Poster":"N/A"}],"totalResults":"250","Response":"True"}`,
			wantItems: 2,
			wantTotal: 250,
		},
		{
			name:      "success without items or count",
			status:    http.StatusOK,
			body:      `{"Response":"True"}`,
			wantItems: 0,
			wantTotal: 0,
		},
		{
			name:      "unparseable count",
			status:    http.StatusOK,
			body:      `{"Search":[],"totalResults":"lots","Response":"True"}`,
			wantTotal: 0,
		},
		{
			name:       "not found",
			status:     http.StatusOK,
			body:       `{"Response":"False","Error":"Movie not found!"}`,
			wantUpErr:  true,
			wantUpMsg:  "Movie not found!",
			wantAnyErr: true,
		},
		{
			name:       "invalid key with 401",
			status:     http.StatusUnauthorized,
			body:       `{"Response":"False","Error":"Invalid API key!"}`,
			wantUpErr:  true,
			wantUpMsg:  "Invalid API key!",
			wantAnyErr: true,
		},
		{
			name:       "html error page",
			status:     http.StatusBadGateway,
			body:       `<html>bad gateway</html>`,
			wantAnyErr: true,
		},
		{
			name:       "malformed body",
			status:     http.StatusOK,
			body:       `{"Response":`,
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if q.Get("apikey") != "test-key" || q.Get("s") != "batman begins" || q.Get("page") != "2" {
					t.Errorf("unexpected query %s", r.URL.RawQuery)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			page, err := c.Search(context.Background(), "batman begins", 2)
			if tt.wantAnyErr {
				if err == nil {
					t.Fatal("expected error")
				}
				msg, ok := UpstreamMessage(err)
				if ok != tt.wantUpErr || msg != tt.wantUpMsg {
					t.Errorf("UpstreamMessage = %q, %v; want %q, %v", msg, ok, tt.wantUpMsg, tt.wantUpErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if page.Items == nil {
				t.Error("items must never be nil on success")
			}
			if len(page.Items) != tt.wantItems || page.TotalResults != tt.wantTotal {
				t.Errorf("got %d items / %d total, want %d / %d", len(page.Items), page.TotalResults, tt.wantItems, tt.wantTotal)
			}
		})
	}
}

func TestGetDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("i") != "tt0133093" || q.Get("plot") != "full" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"Title":"The Matrix","Year":"1999","Rated":"R","Runtime":"136 min","Genre":"Action, Sci-Fi","Director":"Lana Wachowski, Lilly Wachowski","Actors":"Keanu Reeves, Laurence Fishburne","Plot":"When a beautiful stranger leads computer hacker Neo...","Poster":"https://img/matrix.jpg","imdbRating":"8.7","imdbVotes":"2,100,000","imdbID":"tt0133093","Type":"movie","Response":"True"}`))
	})

	details, err := c.GetDetails(context.Background(), "tt0133093")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.ID != "tt0133093" || details.Title != "The Matrix" || details.Director == "" ||
		details.Actors == "" || details.Genre == "" || details.Runtime != "136 min" ||
		details.Plot == "" || details.IMDBRating != "8.7" || details.IMDBVotes != "2,100,000" {
		t.Errorf("details not fully populated: %+v", details)
	}
	if s := details.Summary(); s.Type != "movie" || s.Year != "1999" {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestGetDetailsUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Incorrect IMDb ID."}`))
	})

	_, err := c.GetDetails(context.Background(), "tt0")
	msg, ok := UpstreamMessage(err)
	if !ok || msg != "Incorrect IMDb ID." {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestSearchCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Search(ctx, "batman", 1); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
