package pagination

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// Params is bound from the pageNumber/pageSize query string of every list endpoint.
type Params struct {
	PageNumber int `query:"pageNumber" json:"pageNumber"`
	PageSize   int `query:"pageSize" json:"pageSize"`
}

// Normalize replaces values below 1 with the defaults.
func (p Params) Normalize() Params {
	if p.PageNumber < 1 {
		p.PageNumber = DefaultPageNumber
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

func (p Params) Offset() int {
	p = p.Normalize()
	return (p.PageNumber - 1) * p.PageSize
}

func (p Params) Limit() int {
	return p.Normalize().PageSize
}

// Page is the response envelope shared by list endpoints.
type Page[T any] struct {
	Records              []T   `json:"records"`
	RecordsOnThisPage    int   `json:"recordsOnThisPage"`
	TotalMatchingRecords int64 `json:"totalMatchingRecords"`
}

// NewPage wraps records already limited by the store.
func NewPage[T any](records []T, total int64) Page[T] {
	if records == nil {
		records = []T{}
	}
	return Page[T]{Records: records, RecordsOnThisPage: len(records), TotalMatchingRecords: total}
}

// Slice pages an in-memory collection.
func Slice[T any](all []T, p Params) Page[T] {
	off := p.Offset()
	if off >= len(all) {
		return NewPage[T](nil, int64(len(all)))
	}
	end := off + p.Limit()
	if end > len(all) {
		end = len(all)
	}
	return NewPage(all[off:end], int64(len(all)))
}

// Map converts page records while keeping the counts.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Records))
	for i, r := range p.Records {
		out[i] = fn(r)
	}
	return Page[U]{Records: out, RecordsOnThisPage: len(out), TotalMatchingRecords: p.TotalMatchingRecords}
}
