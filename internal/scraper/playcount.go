package scraper

import (
	"context"

	"go.uber.org/zap"
)

// ResolvePlayCount returns the item's play count, looking it up on the
// uploader's listing when it is unknown or useCache is false. A found value
// is stored in item.PlayCount.
func (c *Client) ResolvePlayCount(ctx context.Context, item *AudioItem, useCache bool) (int, error) {
	if useCache && item.PlayCount != nil {
		c.log.Debug("play count cache hit", zap.String("post", item.PostURL))
		return *item.PlayCount, nil
	}

	n, err := c.lookupPlayCount(ctx, item.Uploader, item.PostURL)
	if err != nil {
		return 0, err
	}
	item.PlayCount = intPtr(n)
	return n, nil
}

// ResolvePlayCountByURL finds the play count of the item at url.
// It fetches the item page for the uploader name and then scans the listing.
func (c *Client) ResolvePlayCountByURL(ctx context.Context, url string) (int, error) {
	name, err := c.FetchUploaderName(ctx, url)
	if err != nil {
		return 0, err
	}
	return c.lookupPlayCount(ctx, Uploader{Name: name}, url)
}

func (c *Client) lookupPlayCount(ctx context.Context, u Uploader, postURL string) (int, error) {
	c.log.Debug("looking up play count", zap.String("uploader", u.Name), zap.String("post", postURL))

	for entry, err := range c.ListAudios(ctx, u, false) {
		if err != nil {
			return 0, err
		}
		if entry.PostURL == postURL {
			return *entry.PlayCount, nil
		}
	}
	return 0, &NotFoundError{What: "listing entry for " + postURL, Where: c.UploaderURL(u)}
}

// TotalUploads counts the entries on the uploader's listing
func (c *Client) TotalUploads(ctx context.Context, u Uploader) (int, error) {
	total := 0
	for _, err := range c.ListAudios(ctx, u, false) {
		if err != nil {
			return 0, err
		}
		total++
	}
	return total, nil
}

// TotalPlays sums the play counts on the uploader's listing
func (c *Client) TotalPlays(ctx context.Context, u Uploader) (int, error) {
	total := 0
	for entry, err := range c.ListAudios(ctx, u, false) {
		if err != nil {
			return 0, err
		}
		n, _ := entry.Plays()
		total += n
	}
	return total, nil
}
