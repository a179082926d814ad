package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Item page selectors
const (
	titleSelector       = "div.jp-title"
	descriptionSelector = "div.jp-description"
)

// Listing page selectors
const (
	entrySelector            = "div.sound-details"
	entryDescriptionSelector = "span.soundDescription"
	entryPlayCountSelector   = "span.playCount"
)

// audioURLRegex matches the media configuration passed to the embedded player,
// e.g. setMedia({m4a: "https://..."}). Only the exact key m4a is accepted.
var audioURLRegex = regexp.MustCompile(`\bm4a: "([^"]+)"`)

var playCountLabelRegex = regexp.MustCompile(`^Play Count:\s+`)

// ExtractTitle returns the item title from an item page
func ExtractTitle(doc *goquery.Document) (string, error) {
	sel := doc.Find(titleSelector).First()
	if sel.Length() == 0 {
		return "", &NotFoundError{What: "title", Where: titleSelector}
	}
	return strings.TrimSpace(sel.Text()), nil
}

// ExtractDescription returns the first paragraph of the item description
func ExtractDescription(doc *goquery.Document) (string, error) {
	container := doc.Find(descriptionSelector).First()
	if container.Length() == 0 {
		return "", &NotFoundError{What: "description", Where: descriptionSelector}
	}
	p := container.Find("p").First()
	if p.Length() == 0 {
		return "", &NotFoundError{What: "description paragraph", Where: descriptionSelector}
	}
	return strings.TrimSpace(p.Text()), nil
}

// ExtractUploaderName returns the name linked from the page's first div
func ExtractUploaderName(doc *goquery.Document) (string, error) {
	link := doc.Find("div").First().ChildrenFiltered("a").First()
	if link.Length() == 0 {
		return "", &NotFoundError{What: "uploader link", Where: "div > a"}
	}
	return strings.TrimSpace(link.Text()), nil
}

// ExtractAudioURL scans raw page text for the player's m4a source
func ExtractAudioURL(pageText string) (string, error) {
	m := audioURLRegex.FindStringSubmatch(pageText)
	if m == nil {
		return "", &NotFoundError{What: "audio URL", Where: "page script"}
	}
	return m[1], nil
}

// ParsePlayCount reads a "Play Count: N" label
func ParsePlayCount(text string) (int, error) {
	text = strings.TrimSpace(text)
	rest := strings.TrimSpace(playCountLabelRegex.ReplaceAllString(text, ""))

	n, err := strconv.ParseUint(rest, 10, strconv.IntSize-1)
	if err != nil {
		return 0, &ParseError{Field: "play count", Value: text, Err: err}
	}
	return int(n), nil
}

// listingEntry holds the fields read from a single sound-details block
type listingEntry struct {
	postURL     string
	title       string
	description string
	playCount   int
}

func parseEntryNode(node *goquery.Selection) (listingEntry, error) {
	var e listingEntry

	link := node.Find("a").First()
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return e, &NotFoundError{What: "entry link", Where: entrySelector}
	}
	e.postURL = href
	e.title = strings.TrimSpace(link.Text())

	desc := node.Find(entryDescriptionSelector).First()
	if desc.Length() == 0 {
		return e, &NotFoundError{What: "entry description", Where: e.postURL}
	}
	e.description = strings.TrimSpace(desc.Text())

	plays := node.Find(entryPlayCountSelector).First()
	if plays.Length() == 0 {
		return e, &NotFoundError{What: "play count", Where: e.postURL}
	}
	n, err := ParsePlayCount(plays.Text())
	if err != nil {
		return e, err
	}
	e.playCount = n

	return e, nil
}
