package domain

import (
	"math"
	"strings"
	"time"
)

// Employee models a member of staff.
type Employee struct {
	ID            int
	Name          string
	ContactNo     string
	Email         string
	City          string
	Pincode       string
	AltContactNo  string
	Address       string
	DesignationID int
	CreatedDate   time.Time
	ModifiedDate  *time.Time
	// PasswordHash is a bcrypt digest; the plaintext is never stored.
	PasswordHash string
}

// EmployeeSortField enumerates the columns the search endpoint can order by.
type EmployeeSortField string

const (
	SortByName        EmployeeSortField = "name"
	SortByCity        EmployeeSortField = "city"
	SortByCreatedDate EmployeeSortField = "createddate"
)

// ParseEmployeeSortField maps a raw sortBy value, compared lower-cased; unknown values fall back to name.
func ParseEmployeeSortField(raw string) EmployeeSortField {
	switch EmployeeSortField(strings.ToLower(raw)) {
	case SortByCity:
		return SortByCity
	case SortByCreatedDate:
		return SortByCreatedDate
	default:
		return SortByName
	}
}

// EmployeeSearch is the normalized input of an employee search.
type EmployeeSearch struct {
	Name       string
	City       string
	SortBy     EmployeeSortField
	Descending bool
	Page       int
	PageSize   int
}

// Offset returns the number of rows to skip; negative results clamp to zero.
// ok is false when the offset does not fit in an int, i.e. the page lies past any stored row.
func (s EmployeeSearch) Offset() (offset int, ok bool) {
	if s.Page <= 1 || s.PageSize <= 0 {
		return 0, true
	}
	if s.Page-1 > math.MaxInt/s.PageSize {
		return 0, false
	}
	return (s.Page - 1) * s.PageSize, true
}

// EmployeePage is one page of search results plus the unpaged total.
type EmployeePage struct {
	TotalRecords int
	Page         int
	PageSize     int
	Data         []Employee
}
