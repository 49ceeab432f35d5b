package reward

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultGiphyURL = "https://api.giphy.com/v1/gifs/search"

// Search terms per category.
var (
	correctTerms = []string{
		"celebration", "you got this", "proud", "success", "winner",
		"high five", "good job", "nailed it", "smart", "genius",
	}
	wrongTerms = []string{
		"its okay", "try again", "you can do it", "dont give up",
		"keep going", "almost", "next time", "learning",
	}
)

// Config configures the Giphy client.
type Config struct {
	APIKey  string
	Rating  string        // Default: "pg"
	BaseURL string        // Default: the public search endpoint
	Timeout time.Duration // Default: 5s
}

// ConfigFromEnv reads GIPHY_API_KEY and STUDYBUDDY_GIPHY_RATING.
func ConfigFromEnv() Config {
	return Config{
		APIKey: strings.TrimSpace(os.Getenv("GIPHY_API_KEY")),
		Rating: strings.TrimSpace(os.Getenv("STUDYBUDDY_GIPHY_RATING")),
	}
}

// Giphy searches the Giphy API with a random category term and picks a
// random result.
type Giphy struct {
	apiKey  string
	rating  string
	baseURL string
	client  *http.Client
	rng     *rand.Rand
}

// NewGiphy builds a client. Without an API key it returns None so callers
// never need to special-case a missing key.
func NewGiphy(cfg Config) Provider {
	if cfg.APIKey == "" {
		return None{}
	}
	g := &Giphy{
		apiKey:  cfg.APIKey,
		rating:  cfg.Rating,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6769)),
	}
	if g.rating == "" {
		g.rating = "pg"
	}
	if g.baseURL == "" {
		g.baseURL = defaultGiphyURL
	}
	if g.client.Timeout <= 0 {
		g.client.Timeout = 5 * time.Second
	}
	return g
}

type giphySearchResponse struct {
	Data []struct {
		Title  string `json:"title"`
		Images struct {
			FixedHeight struct {
				URL    string `json:"url"`
				Width  string `json:"width"`
				Height string `json:"height"`
			} `json:"fixed_height"`
		} `json:"images"`
	} `json:"data"`
}

func (g *Giphy) Lookup(ctx context.Context, category Category) (*Asset, error) {
	terms := correctTerms
	if category == Wrong {
		terms = wrongTerms
	}
	term := terms[g.rng.IntN(len(terms))]

	q := url.Values{}
	q.Set("api_key", g.apiKey)
	q.Set("q", term)
	q.Set("limit", "25")
	q.Set("rating", g.rating)
	q.Set("lang", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build giphy request: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("giphy search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("giphy search: status %d", resp.StatusCode)
	}

	var body giphySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode giphy response: %w", err)
	}
	if len(body.Data) == 0 {
		return nil, nil
	}

	gif := body.Data[g.rng.IntN(len(body.Data))]
	return &Asset{
		URL:    gif.Images.FixedHeight.URL,
		Title:  gif.Title,
		Width:  gif.Images.FixedHeight.Width,
		Height: gif.Images.FixedHeight.Height,
	}, nil
}
