// Package reward looks up celebratory or encouraging assets (GIFs) shown
// next to answer feedback. Lookups are best effort; callers treat any error
// as "no asset".
package reward

import "context"

// Category selects the mood of the asset.
type Category string

const (
	Correct Category = "correct"
	Wrong   Category = "wrong"
)

// Asset is an external reward reference.
type Asset struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

// Provider returns an asset for a category. A nil asset with a nil error
// means nothing suitable was found.
type Provider interface {
	Lookup(ctx context.Context, category Category) (*Asset, error)
}

// None never returns an asset.
type None struct{}

func (None) Lookup(context.Context, Category) (*Asset, error) { return nil, nil }
