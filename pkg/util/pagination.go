package util

const DefaultPageLimit = 10

// PaginationArgs carries the offset window a list query should apply.
type PaginationArgs struct {
	Page  int
	Limit int
}

func (p PaginationArgs) Skip() int {
	page := p.Page
	if page <= 0 {
		page = 1
	}
	return (page - 1) * p.NormalizedLimit()
}

func (p PaginationArgs) NormalizedLimit() int {
	if p.Limit <= 0 {
		return DefaultPageLimit
	}
	return p.Limit
}
