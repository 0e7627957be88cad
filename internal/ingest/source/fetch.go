package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "gradlens/1.0 (+local)"

// Client wraps an http.Client with per-host rate limiting. One Client is
// shared by every network-backed fetcher in a run.
type Client struct {
	hc  *http.Client
	lim *HostLimiter
}

func NewClient(reqPerSec float64, burst int) *Client {
	return &Client{
		hc:  &http.Client{Timeout: 30 * time.Second},
		lim: NewHostLimiter(reqPerSec, burst),
	}
}

func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	if err := c.lim.WaitURL(ctx, rawURL); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	if res.StatusCode >= 400 {
		res.Body.Close()
		return nil, fmt.Errorf("get %s: status %d", rawURL, res.StatusCode)
	}
	return res, nil
}

// Document fetches a page into a goquery document.
func (c *Client) Document(ctx context.Context, rawURL string) (*goquery.Document, error) {
	res, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", rawURL, err)
	}
	return doc, nil
}

// Bytes fetches a raw body (the portal's CSV download).
func (c *Client) Bytes(ctx context.Context, rawURL string) ([]byte, error) {
	res, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	return io.ReadAll(res.Body)
}

// HTMLTableFetcher pulls the first table under the given selector on a page
// and converts each <tr> into cells, keeping the first anchor href per cell.
type HTMLTableFetcher struct {
	Client   *Client
	URL      string
	Selector string // e.g. "markdown-accessiblity-table table"
}

func (f HTMLTableFetcher) FetchTable(ctx context.Context) (Table, error) {
	doc, err := f.Client.Document(ctx, f.URL)
	if err != nil {
		return Table{}, err
	}

	sel := f.Selector
	if sel == "" {
		sel = "table"
	}
	table := doc.Find(sel).First()
	if table.Length() == 0 {
		return Table{}, fmt.Errorf("no table matches %q at %s", sel, f.URL)
	}
	return TableFromSelection(table), nil
}

// TableFromSelection converts a goquery table node into a Table. The header
// row stays in Rows; community tables skip it by position.
func TableFromSelection(table *goquery.Selection) Table {
	var t Table
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []Cell
		tr.Find("td, th").Each(func(_ int, td *goquery.Selection) {
			cell := Cell{Text: CleanText(td.Text())}
			if a := td.Find("a").First(); a.Length() > 0 {
				if href, ok := a.Attr("href"); ok {
					cell.Href = CleanText(href)
				}
			}
			row = append(row, cell)
		})
		if len(row) > 0 {
			t.Rows = append(t.Rows, row)
		}
	})
	return t
}
