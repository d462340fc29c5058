package domain

// Response is a completed HTTP exchange. The concrete type is decided by the
// request's category: SearchResponse for github, PageResponse for the rest.
type Response interface {
	Category() Category
	Request() RequestDescriptor
	isResponse()
}

// SearchResponse carries the decoded body of a repository search
type SearchResponse struct {
	Req        RequestDescriptor
	Items      []RepositoryRecord
	TotalCount int
	Incomplete bool
}

func (r SearchResponse) Category() Category         { return r.Req.Category }
func (r SearchResponse) Request() RequestDescriptor { return r.Req }
func (SearchResponse) isResponse()                  {}

// PageResponse carries a raw, undecoded body
type PageResponse struct {
	Req        RequestDescriptor
	StatusCode int
	Body       []byte
}

func (r PageResponse) Category() Category         { return r.Req.Category }
func (r PageResponse) Request() RequestDescriptor { return r.Req }
func (PageResponse) isResponse()                  {}
