package scraper

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// ResolveItem fetches an item page once and returns its metadata.
// The play count is left nil since the item page does not show it.
func (c *Client) ResolveItem(ctx context.Context, url string) (*AudioItem, error) {
	text, doc, err := c.fetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	title, err := ExtractTitle(doc)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", url, err)
	}
	description, err := ExtractDescription(doc)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", url, err)
	}
	uploader, err := ExtractUploaderName(doc)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", url, err)
	}
	audioURL, err := ExtractAudioURL(text)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", url, err)
	}

	return &AudioItem{
		Title:       title,
		Description: description,
		Uploader:    Uploader{Name: uploader},
		AudioURL:    audioURL,
		PostURL:     url,
	}, nil
}

// FetchTitle fetches an item page and returns its title.
// Use ResolveItem when more than one field is needed.
func (c *Client) FetchTitle(ctx context.Context, url string) (string, error) {
	return c.fetchField(ctx, url, ExtractTitle)
}

// FetchDescription fetches an item page and returns its description
func (c *Client) FetchDescription(ctx context.Context, url string) (string, error) {
	return c.fetchField(ctx, url, ExtractDescription)
}

// FetchUploaderName fetches an item page and returns the uploader's name
func (c *Client) FetchUploaderName(ctx context.Context, url string) (string, error) {
	return c.fetchField(ctx, url, ExtractUploaderName)
}

// FetchAudioURL fetches an item page and returns the direct media link
func (c *Client) FetchAudioURL(ctx context.Context, url string) (string, error) {
	text, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	audioURL, err := ExtractAudioURL(text)
	if err != nil {
		return "", fmt.Errorf("%s: %w", url, err)
	}
	return audioURL, nil
}

func (c *Client) fetchField(ctx context.Context, url string, extract func(*goquery.Document) (string, error)) (string, error) {
	_, doc, err := c.fetchPage(ctx, url)
	if err != nil {
		return "", err
	}
	v, err := extract(doc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", url, err)
	}
	return v, nil
}
