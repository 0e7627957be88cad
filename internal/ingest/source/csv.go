package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TableFromCSV parses delimited bytes into a Table; the first row becomes
// the header. Ragged rows are tolerated, the caller's adapter decides what
// counts as well-formed.
func TableFromCSV(b []byte) (Table, error) {
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return Table{}, fmt.Errorf("csv is empty")
	}

	var t Table
	for _, h := range rows[0] {
		t.Header = append(t.Header, CleanText(h))
	}
	for _, row := range rows[1:] {
		cells := make([]Cell, len(row))
		for i, v := range row {
			cells[i] = Cell{Text: strings.TrimSpace(v)}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

// FileCSVFetcher reads a locally-available spreadsheet export.
type FileCSVFetcher struct {
	Path string
}

func (f FileCSVFetcher) FetchTable(ctx context.Context) (Table, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return Table{}, fmt.Errorf("read spreadsheet: %w", err)
	}
	return TableFromCSV(b)
}

// CatalogCSVFetcher locates the dataset download link on an open-data
// catalog page, then fetches and parses the CSV behind it.
type CatalogCSVFetcher struct {
	Client     *Client
	CatalogURL string
}

func (f CatalogCSVFetcher) FetchTable(ctx context.Context) (Table, error) {
	doc, err := f.Client.Document(ctx, f.CatalogURL)
	if err != nil {
		return Table{}, err
	}

	downloadURL := findDownloadLink(doc)
	if downloadURL == "" {
		return Table{}, fmt.Errorf("no download link on catalog page %s", f.CatalogURL)
	}

	b, err := f.Client.Bytes(ctx, downloadURL)
	if err != nil {
		return Table{}, err
	}
	return TableFromCSV(b)
}

// The catalog marks the resource download with a link ending in "DOWNLOAD".
func findDownloadLink(doc *goquery.Document) string {
	var out string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if strings.HasSuffix(href, "DOWNLOAD") {
			out = href
			return false
		}
		return true
	})
	return out
}
