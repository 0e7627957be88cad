// Package source models raw tabular input and the fetchers that produce it.
// Adapters consume Tables only, so they can be tested with canned data and
// never touch the network or an HTML parser themselves.
package source

import "context"

// Cell is one table cell. Href carries the first anchor target when the
// cell came from HTML; plain tabular sources leave it empty.
type Cell struct {
	Text string
	Href string
}

// Table is a source-shaped raw table: a header row (may be empty for
// headerless HTML tables) plus data rows.
type Table struct {
	Header []string
	Rows   [][]Cell
}

// Col returns the index of a named header column, or -1.
func (t Table) Col(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// TableFetcher is the retrieval capability. Implementations own transport
// concerns; a failure here is fatal to the adapter that uses it.
type TableFetcher interface {
	FetchTable(ctx context.Context) (Table, error)
}

// FetcherFunc adapts a function to TableFetcher; tests hand adapters canned
// tables through this.
type FetcherFunc func(ctx context.Context) (Table, error)

func (f FetcherFunc) FetchTable(ctx context.Context) (Table, error) { return f(ctx) }
