package record

// MetaData carries the listing information an API returns alongside a page
// of records.
type MetaData struct {
	Total     int
	Subtotal  int
	Page      int
	PerPage   int
	Search    string
	SortBy    string
	SortOrder string
}

// Collection is an ordered sequence of raw records. Each record is an
// arbitrarily nested mapping/sequence structure and is never mutated by the
// rendering pipeline.
type Collection struct {
	Records []any
	Meta    MetaData
}

// NewCollection wraps records, defaulting the metadata to a single page
// holding every record.
func NewCollection(records ...any) Collection {
	return Collection{
		Records: records,
		Meta: MetaData{
			Total:    len(records),
			Subtotal: len(records),
			Page:     1,
			PerPage:  len(records),
		},
	}
}

// Len returns the number of records.
func (c Collection) Len() int {
	return len(c.Records)
}

// Empty reports whether the collection has no records.
func (c Collection) Empty() bool {
	return len(c.Records) == 0
}

// Pages returns the number of pages of the given size needed to cover the
// collection. A non-positive size means a single page.
func (c Collection) Pages(size int) int {
	if size <= 0 || len(c.Records) == 0 {
		return 1
	}
	return (len(c.Records) + size - 1) / size
}

// Page returns the 1-based page n of the given size. The records slice is
// shared with the receiver; metadata is rewritten for the page.
func (c Collection) Page(n, size int) Collection {
	if size <= 0 {
		out := c
		out.Meta.Page = 1
		out.Meta.PerPage = len(c.Records)
		return out
	}
	if n < 1 {
		n = 1
	}
	start := (n - 1) * size
	if start > len(c.Records) {
		start = len(c.Records)
	}
	end := start + size
	if end > len(c.Records) {
		end = len(c.Records)
	}

	meta := c.Meta
	meta.Page = n
	meta.PerPage = size
	if meta.Total == 0 {
		meta.Total = len(c.Records)
	}
	if meta.Subtotal == 0 {
		meta.Subtotal = len(c.Records)
	}
	return Collection{
		Records: c.Records[start:end],
		Meta:    meta,
	}
}
