package scraper

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// ListAudios returns the uploader's items in page order.
//
// The sequence is lazy: the listing page is fetched when ranging starts, and
// each new range fetches it again. When withAudioURL is set every entry costs
// one extra request for its item page. The first error ends the sequence.
func (c *Client) ListAudios(ctx context.Context, u Uploader, withAudioURL bool) iter.Seq2[AudioItem, error] {
	return func(yield func(AudioItem, error) bool) {
		nodes, err := c.fetchListing(ctx, u)
		if err != nil {
			yield(AudioItem{}, err)
			return
		}

		for i := range nodes.Length() {
			item, err := c.parseListingEntry(ctx, nodes.Eq(i), u, withAudioURL)
			if err != nil {
				yield(AudioItem{}, fmt.Errorf("listing entry %d of %s: %w", i, u.Name, err))
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// fetchListing fetches an uploader page and selects its entry blocks
func (c *Client) fetchListing(ctx context.Context, u Uploader) (*goquery.Selection, error) {
	url := c.UploaderURL(u)
	c.log.Debug("fetching listing", zap.String("uploader", u.Name), zap.String("url", url))

	text, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := parseHTML(normalizeListing(text))
	if err != nil {
		return nil, fmt.Errorf("parse listing %s: %w", url, err)
	}

	nodes := doc.Find(entrySelector)
	c.log.Debug("listing parsed", zap.String("uploader", u.Name), zap.Int("entries", nodes.Length()))
	return nodes, nil
}

// normalizeListing drops stray </br> tags that listing pages contain
func normalizeListing(text string) string {
	return strings.ReplaceAll(text, "</br>", "")
}

func (c *Client) parseListingEntry(ctx context.Context, node *goquery.Selection, u Uploader, withAudioURL bool) (AudioItem, error) {
	e, err := parseEntryNode(node)
	if err != nil {
		return AudioItem{}, err
	}

	item := AudioItem{
		Title:       e.title,
		Description: e.description,
		Uploader:    u,
		PostURL:     e.postURL,
		PlayCount:   intPtr(e.playCount),
	}

	if withAudioURL {
		item.AudioURL, err = c.FetchAudioURL(ctx, e.postURL)
		if err != nil {
			return AudioItem{}, err
		}
	}

	return item, nil
}
