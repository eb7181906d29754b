package domain

// Department represents a high-level organizational unit.
type Department struct {
	ID       int
	Name     string
	IsActive bool
}
