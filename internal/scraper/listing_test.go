package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploaderURL(t *testing.T) {
	c := NewClient("https://sounds.test/", nil, nil)
	assert.Equal(t, "https://sounds.test/u/Alice_99", c.UploaderURL(Uploader{Name: "Alice_99"}))
}

func TestListAudios(t *testing.T) {
	site, c := aliceSite(t)

	items := collect(t, c, Uploader{Name: "alice"}, false)
	require.Len(t, items, 2)

	assert.Equal(t, "First", items[0].Title)
	assert.Equal(t, "first clip", items[0].Description)
	assert.Equal(t, testBaseURL+"/u/alice/1-First", items[0].PostURL)
	assert.Equal(t, "alice", items[0].Uploader.Name)
	assert.Empty(t, items[0].AudioURL)
	assert.Equal(t, "Second", items[1].Title)

	for _, item := range items {
		assert.NotEmpty(t, item.PostURL)
		require.NotNil(t, item.PlayCount)
		assert.GreaterOrEqual(t, *item.PlayCount, 0)
	}
	assert.Equal(t, 42, *items[0].PlayCount)
	assert.Equal(t, 0, *items[1].PlayCount)

	assert.Equal(t, 1, site.total(), "only the listing page should be fetched")
}

func TestListAudiosWithAudioURL(t *testing.T) {
	site, c := aliceSite(t)

	items := collect(t, c, Uploader{Name: "alice"}, true)
	require.Len(t, items, 2)
	assert.Equal(t, "https://media.test/1.m4a", items[0].AudioURL)
	assert.Equal(t, "https://media.test/2.m4a", items[1].AudioURL)
	assert.Equal(t, 3, site.total())
}

func TestListAudiosTwoEntries(t *testing.T) {
	site := newFakeSite()
	site.pages[testBaseURL+"/u/alice"] = listingPage(testEntry{
		href:        "/u/alice/123-My-Clip",
		title:       "My Clip",
		description: "A test clip",
		plays:       "Play Count: 42",
	})
	c := NewClient(testBaseURL, site, nil)

	items := collect(t, c, Uploader{Name: "alice"}, false)
	require.Len(t, items, 1)
	assert.Equal(t, AudioItem{
		Title:       "My Clip",
		Description: "A test clip",
		Uploader:    Uploader{Name: "alice"},
		PostURL:     "/u/alice/123-My-Clip",
		PlayCount:   intPtr(42),
	}, items[0])
}

func TestListAudiosIsLazyAndRestartable(t *testing.T) {
	site, c := aliceSite(t)
	seq := c.ListAudios(context.Background(), Uploader{Name: "alice"}, false)
	assert.Equal(t, 0, site.total(), "nothing is fetched before ranging")

	for range seq {
		break
	}
	for range seq {
	}
	assert.Equal(t, 2, site.calls[testBaseURL+"/u/alice"])
}

func TestListAudiosEarlyStopSkipsAudioFetches(t *testing.T) {
	site, c := aliceSite(t)

	for item, err := range c.ListAudios(context.Background(), Uploader{Name: "alice"}, true) {
		require.NoError(t, err)
		assert.Equal(t, "First", item.Title)
		break
	}
	assert.Equal(t, 0, site.calls[testBaseURL+"/u/alice/2-Second"])
}

func TestListAudiosEmpty(t *testing.T) {
	_, c := aliceSite(t)
	assert.Empty(t, collect(t, c, Uploader{Name: "bob"}, false))
}

func TestListAudiosFailsFast(t *testing.T) {
	site := newFakeSite()
	site.pages[testBaseURL+"/u/carol"] = listingPage(
		testEntry{href: "/u/carol/1", title: "ok", description: "d", plays: "Play Count: 3"},
		testEntry{href: "/u/carol/2", title: "bad", description: "d", plays: "Play Count: N/A"},
		testEntry{href: "/u/carol/3", title: "never", description: "d", plays: "Play Count: 5"},
	)
	c := NewClient(testBaseURL, site, nil)

	var titles []string
	var gotErr error
	for item, err := range c.ListAudios(context.Background(), Uploader{Name: "carol"}, false) {
		if err != nil {
			gotErr = err
			continue
		}
		titles = append(titles, item.Title)
	}

	assert.Equal(t, []string{"ok"}, titles)
	var pe *ParseError
	assert.True(t, errors.As(gotErr, &pe), "expected ParseError, got %v", gotErr)
}

func TestListAudiosNetworkError(t *testing.T) {
	_, c := aliceSite(t)

	n := 0
	for _, err := range c.ListAudios(context.Background(), Uploader{Name: "nobody"}, false) {
		n++
		var ne *NetworkError
		require.True(t, errors.As(err, &ne))
		assert.Equal(t, 404, ne.StatusCode)
	}
	assert.Equal(t, 1, n)
}

func TestListAudiosAudioFetchError(t *testing.T) {
	site, c := aliceSite(t)
	delete(site.pages, testBaseURL+"/u/alice/2-Second")

	var errs []error
	for _, err := range c.ListAudios(context.Background(), Uploader{Name: "alice"}, true) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	require.Len(t, errs, 1)
	var ne *NetworkError
	assert.True(t, errors.As(errs[0], &ne))
}
