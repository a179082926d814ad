package scraper

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://sounds.test"

// fakeSite serves pages from memory and counts requests per URL
type fakeSite struct {
	pages map[string]string
	calls map[string]int
}

func newFakeSite() *fakeSite {
	return &fakeSite{
		pages: make(map[string]string),
		calls: make(map[string]int),
	}
}

func (s *fakeSite) Fetch(ctx context.Context, url string) (string, error) {
	s.calls[url]++
	page, ok := s.pages[url]
	if !ok {
		return "", &NetworkError{URL: url, StatusCode: 404}
	}
	return page, nil
}

func (s *fakeSite) total() int {
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

type testEntry struct {
	href        string
	title       string
	description string
	plays       string
}

func itemPage(title, description, uploader, audioURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%[1]s</title></head>
<body>
<div><a href="%[5]s/u/%[3]s">%[3]s</a></div>
<div class="jp-type-single">
  <div aria-label="title" class="jp-title">%[1]s</div>
  <div class="jp-description">
    <p>%[2]s</p>
  </div>
</div>
<script type="text/javascript">
  $(document).ready(function(){
    var options = {xm4a: "https://decoy.test/wrong.m4a", m4a_url: "https://decoy.test/also-wrong.m4a"};
    $("#jquery_jplayer_1").jPlayer({
      ready: function () {
        $(this).jPlayer("setMedia", {
          m4a: "%[4]s"
        });
      },
      supplied: "m4a"
    });
  });
</script>
</body>
</html>`, title, description, uploader, audioURL, testBaseURL)
}

func listingPage(entries ...testEntry) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><body>\n<div class=\"container\">\n")
	for _, e := range entries {
		fmt.Fprintf(&b, `<div class="sound-details"><a href="%s">%s</a></br>
<span class="soundDescription">%s</span></br>
<span class="playCount">%s</span></div>
`, e.href, e.title, e.description, e.plays)
	}
	b.WriteString("</div>\n</body></html>")
	return b.String()
}

// aliceSite has two items on alice's listing and an empty listing for bob
func aliceSite(t *testing.T) (*fakeSite, *Client) {
	t.Helper()

	site := newFakeSite()
	first := testBaseURL + "/u/alice/1-First"
	second := testBaseURL + "/u/alice/2-Second"

	site.pages[testBaseURL+"/u/alice"] = listingPage(
		testEntry{href: first, title: "First", description: "first clip", plays: "Play Count: 42"},
		testEntry{href: second, title: "Second", description: "second clip", plays: "Play Count: 0"},
	)
	site.pages[testBaseURL+"/u/bob"] = listingPage()
	site.pages[first] = itemPage("First", "first clip", "alice", "https://media.test/1.m4a")
	site.pages[second] = itemPage("Second", "second clip", "alice", "https://media.test/2.m4a")

	return site, NewClient(testBaseURL+"/", site, nil)
}

func collect(t *testing.T, c *Client, u Uploader, withAudioURL bool) []AudioItem {
	t.Helper()

	var items []AudioItem
	for item, err := range c.ListAudios(context.Background(), u, withAudioURL) {
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}
