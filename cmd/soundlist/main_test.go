package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/litescript/soundlist/internal/config"
	"github.com/litescript/soundlist/internal/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSite serves one uploader with two items and returns a config file
// pointing at it.
func newTestSite(t *testing.T) (string, string) {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	first := srv.URL + "/u/erin/1-Morning"
	second := srv.URL + "/u/erin/2-Evening"

	mux.HandleFunc("/u/erin", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
<div class="sound-details"><a href="` + first + `">Morning</a></br>
<span class="soundDescription">sunrise</span></br><span class="playCount">Play Count: 10</span></div>
<div class="sound-details"><a href="` + second + `">Evening</a></br>
<span class="soundDescription">sunset</span></br><span class="playCount">Play Count: 5</span></div>
</body></html>`))
	})
	mux.HandleFunc("/u/erin/1-Morning", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
<div><a href="` + srv.URL + `/u/erin">erin</a></div>
<div class="jp-title">Morning</div>
<div class="jp-description"><p>sunrise</p></div>
<script>$(this).jPlayer("setMedia", {m4a: "https://media.test/morning.m4a"});</script>
</body></html>`))
	})

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Site.BaseURL = srv.URL
	cfg.Site.TimeoutSeconds = 5
	cfg.Log.File = filepath.Join(dir, "soundlist.log")
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, config.SaveTo(path, cfg))

	return path, first
}

func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", configPath))
	err := cmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	path, first := newTestSite(t)

	out, err := run(t, path, "list", "erin")
	require.NoError(t, err)
	assert.Contains(t, out, "PLAYS")
	assert.Contains(t, out, "Morning")
	assert.Contains(t, out, first)
	assert.Contains(t, out, "Evening")
	assert.Contains(t, out, "10 | Morning")
	assert.Contains(t, out, " 5 | Evening")
}

func TestListCommandWithAudioFailsOnMissingItem(t *testing.T) {
	path, _ := newTestSite(t)

	_, err := run(t, path, "list", "erin", "--audio")
	var ne *scraper.NetworkError
	assert.True(t, errors.As(err, &ne), "second item page is not served, got %v", err)
}

func TestPlaysCommand(t *testing.T) {
	path, first := newTestSite(t)

	out, err := run(t, path, "plays", first)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestStatsCommand(t *testing.T) {
	path, _ := newTestSite(t)

	out, err := run(t, path, "stats", "erin")
	require.NoError(t, err)
	assert.Contains(t, out, "Uploads:  2")
	assert.Contains(t, out, "Plays:    15")
}

func TestItemCommand(t *testing.T) {
	path, first := newTestSite(t)

	out, err := run(t, path, "item", first, "--plays")
	require.NoError(t, err)
	assert.Contains(t, out, "Title:       Morning")
	assert.Contains(t, out, "Plays:       10")
	assert.Contains(t, out, "Audio:       https://media.test/morning.m4a")

	out, err = run(t, path, "item", first)
	require.NoError(t, err)
	assert.Contains(t, out, "Plays:       -")
}

func TestUnknownUploader(t *testing.T) {
	path, _ := newTestSite(t)

	_, err := run(t, path, "stats", "nobody")
	var ne *scraper.NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, http.StatusNotFound, ne.StatusCode)
}
