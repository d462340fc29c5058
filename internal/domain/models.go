package domain

// Category tags a request so its response can be routed back to the right consumer
type Category string

const (
	CategoryGitHub Category = "github"
	CategoryGoogle Category = "google"
)

func (c Category) String() string { return string(c) }

// InputChangeEvent is produced whenever the search field's content changes
type InputChangeEvent struct {
	Value string
}

// RequestDescriptor describes one outgoing GET request
type RequestDescriptor struct {
	URL      string
	Category Category
	Seq      uint64 // search requests count up from 1; background requests carry 0
}

// RepositoryRecord is a single search hit
type RepositoryRecord struct {
	Name        string
	HTMLURL     string
	FullName    string
	Description string
	Stars       int
}

// ViewState is the renderable snapshot of search results.
// It is replaced wholesale on every github response and never mutated.
type ViewState struct {
	Items []RepositoryRecord
}

// Len returns the number of records in the view
func (v ViewState) Len() int { return len(v.Items) }
