package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveItem(t *testing.T) {
	site, c := aliceSite(t)
	url := testBaseURL + "/u/alice/1-First"

	item, err := c.ResolveItem(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, &AudioItem{
		Title:       "First",
		Description: "first clip",
		Uploader:    Uploader{Name: "alice"},
		AudioURL:    "https://media.test/1.m4a",
		PostURL:     url,
	}, item)
	assert.Nil(t, item.PlayCount)
	assert.Equal(t, 1, site.total())
}

func TestResolveItemKeepsRequestedURL(t *testing.T) {
	site, c := aliceSite(t)
	url := testBaseURL + "/u/alice/1-First?ref=share"
	site.pages[url] = site.pages[testBaseURL+"/u/alice/1-First"]

	item, err := c.ResolveItem(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, url, item.PostURL)
}

func TestResolveItemErrors(t *testing.T) {
	site, c := aliceSite(t)
	broken := testBaseURL + "/u/alice/broken"
	site.pages[broken] = `<html><body><div><a href="/u/alice">alice</a></div></body></html>`

	_, err := c.ResolveItem(context.Background(), broken)
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf), "expected NotFoundError, got %v", err)

	_, err = c.ResolveItem(context.Background(), testBaseURL+"/missing")
	var ne *NetworkError
	assert.True(t, errors.As(err, &ne), "expected NetworkError, got %v", err)
}

func TestSingleFieldFetchers(t *testing.T) {
	site, c := aliceSite(t)
	url := testBaseURL + "/u/alice/2-Second"
	ctx := context.Background()

	title, err := c.FetchTitle(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "Second", title)

	desc, err := c.FetchDescription(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "second clip", desc)

	name, err := c.FetchUploaderName(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	audio, err := c.FetchAudioURL(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "https://media.test/2.m4a", audio)

	assert.Equal(t, 4, site.calls[url], "each field fetches the page on its own")
}
