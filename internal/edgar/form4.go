package edgar

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// FeedEntry is one filing from the "getcurrent" Form-4 Atom feed.
type FeedEntry struct {
	Title   string
	Summary string // HTML stripped
	Link    string
	Updated time.Time
	Raw     string // the updated element as published
}

// CurrentForm4 polls the latest Form-4 filings feed.
func (c *Client) CurrentForm4(ctx context.Context) ([]FeedEntry, error) {
	raw, err := c.getRaw(ctx, c.cfg.Form4FeedURL, "application/atom+xml")
	if err != nil {
		return nil, fmt.Errorf("sec form 4 feed: %w", err)
	}

	feed, err := c.parser.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse form 4 feed: %w", err)
	}

	entries := make([]FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		e := FeedEntry{
			Title:   strings.TrimSpace(item.Title),
			Summary: cleanHTML(firstNonEmpty(item.Description, item.Content)),
			Link:    item.Link,
			Raw:     item.Updated,
		}
		if item.UpdatedParsed != nil {
			e.Updated = *item.UpdatedParsed
		} else if item.PublishedParsed != nil {
			e.Updated = *item.PublishedParsed
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
