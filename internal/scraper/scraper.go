// Package scraper extracts audio metadata from an audio-hosting site.
// It reads item pages and uploader listing pages with goquery and derives
// the fields the site does not expose directly, such as an item's play count,
// which only appears on the uploader's listing.
package scraper

import (
	"strings"

	"go.uber.org/zap"
)

// Uploader is an account on the site, identified by its case-sensitive name
type Uploader struct {
	Name string
}

// AudioItem holds the metadata of a single post
type AudioItem struct {
	Title       string
	Description string
	Uploader    Uploader
	AudioURL    string // direct media link, empty when not resolved
	PostURL     string // item page URL, identity key within an uploader's catalog

	// PlayCount is nil when unknown. Zero means the item has no plays.
	PlayCount *int
}

// Plays returns the play count and whether it is known
func (a AudioItem) Plays() (int, bool) {
	if a.PlayCount == nil {
		return 0, false
	}
	return *a.PlayCount, true
}

// Client resolves items and listings against one site.
// It keeps no per-call state, so one Client may be shared across goroutines
// as long as the Fetcher allows it.
type Client struct {
	baseURL string
	fetcher Fetcher
	log     *zap.Logger
}

// NewClient creates a client for the site at baseURL
func NewClient(baseURL string, fetcher Fetcher, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
		log:     log,
	}
}

// BaseURL returns the site root the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UploaderURL returns the listing page URL for an uploader
func (c *Client) UploaderURL(u Uploader) string {
	return c.baseURL + "/u/" + u.Name
}

func intPtr(n int) *int {
	return &n
}
