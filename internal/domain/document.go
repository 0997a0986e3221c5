package domain

// Document is the unit indexed by the search service
type Document struct {
	ID          string
	Name        string
	Title       string
	Description string
	Content     string
	URI         string
}
