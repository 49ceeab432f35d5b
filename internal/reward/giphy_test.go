package reward

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGiphyWithoutKeyIsNone(t *testing.T) {
	p := NewGiphy(Config{})
	_, ok := p.(None)
	assert.True(t, ok)

	asset, err := p.Lookup(context.Background(), Correct)
	assert.NoError(t, err)
	assert.Nil(t, asset)
}

func TestGiphyLookup(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{
					"title": "Nailed It GIF",
					"images": map[string]any{
						"fixed_height": map[string]any{
							"url":    "https://media.giphy.com/media/abc/200.gif",
							"width":  "356",
							"height": "200",
						},
					},
				},
			},
		})
	}))
	defer server.Close()

	p := NewGiphy(Config{APIKey: "k", BaseURL: server.URL})
	asset, err := p.Lookup(context.Background(), Correct)
	require.NoError(t, err)
	require.NotNil(t, asset)
	assert.Equal(t, Asset{
		URL:    "https://media.giphy.com/media/abc/200.gif",
		Title:  "Nailed It GIF",
		Width:  "356",
		Height: "200",
	}, *asset)

	assert.Equal(t, "k", gotQuery["api_key"])
	assert.Equal(t, "25", gotQuery["limit"])
	assert.Equal(t, "pg", gotQuery["rating"])
	assert.True(t, slices.Contains(correctTerms, gotQuery["q"]), "term %q", gotQuery["q"])
}

func TestGiphyLookupWrongUsesEncouragingTerms(t *testing.T) {
	var term string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		term = r.URL.Query().Get("q")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	p := NewGiphy(Config{APIKey: "k", BaseURL: server.URL})
	asset, err := p.Lookup(context.Background(), Wrong)
	require.NoError(t, err)
	assert.Nil(t, asset)
	assert.True(t, slices.Contains(wrongTerms, term), "term %q", term)
}

func TestGiphyLookupHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	p := NewGiphy(Config{APIKey: "bad", BaseURL: server.URL})
	_, err := p.Lookup(context.Background(), Correct)
	assert.Error(t, err)
}
