package news

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Item is one scraped headline.
type Item struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Fetcher scrapes headlines from a news page. Every failure is
// swallowed and surfaced as an empty list so the dashboard can render
// a "no news" section instead of breaking.
type Fetcher struct {
	PageURL  string
	Selector string
	Limit    int
	Client   *http.Client
}

// NewFetcher creates a scraper for the given page with optional proxy
// support. The selector defaults to the kitco headline anchors.
func NewFetcher(pageURL string, limit int, proxyURL string) *Fetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Fetcher{
		PageURL:  pageURL,
		Selector: "h3.title a",
		Limit:    limit,
		Client: &http.Client{
			Timeout:   20 * time.Second,
			Transport: transport,
		},
	}
}

// Fetch returns up to Limit headlines, or nil on any failure.
func (f *Fetcher) Fetch() []Item {
	req, err := http.NewRequest("GET", f.PageURL, nil)
	if err != nil {
		log.Printf("[WARN] news request: %v", err)
		return nil
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		log.Printf("[WARN] news fetch: %v", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("[WARN] news fetch: status %d", resp.StatusCode)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Printf("[WARN] news parse: %v", err)
		return nil
	}

	base, err := url.Parse(f.PageURL)
	if err != nil {
		log.Printf("[WARN] news base url: %v", err)
		return nil
	}

	var items []Item
	doc.Find(f.Selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Text())
		href, ok := s.Attr("href")
		if title == "" || !ok {
			return true
		}
		items = append(items, Item{Title: title, URL: f.resolveURL(base, href)})
		return len(items) < f.Limit
	})
	return items
}

func (f *Fetcher) resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// Describe returns a short identity string for logs.
func (f *Fetcher) Describe() string {
	return fmt.Sprintf("%s (limit %d)", f.PageURL, f.Limit)
}
