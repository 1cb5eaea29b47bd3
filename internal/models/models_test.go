package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageLastPage(t *testing.T) {
	cases := []struct {
		name     string
		total    int64
		perPage  int
		lastPage int
	}{
		{"empty", 0, 15, 1},
		{"exact multiple", 30, 15, 2},
		{"partial last page", 31, 15, 3},
		{"single item", 1, 15, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := NewPage(nil, 1, tc.perPage, tc.total)
			assert.Equal(t, tc.lastPage, page.LastPage)
			assert.Equal(t, tc.total, page.Total)
		})
	}
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Ana Reyes", User{FirstName: "Ana", LastName: "Reyes"}.FullName())
	assert.Equal(t, "Ana B Reyes", User{FirstName: "Ana", MiddleName: "B", LastName: "Reyes"}.FullName())
}

func TestUserRoleValid(t *testing.T) {
	assert.True(t, UserRoleAdmin.Valid())
	assert.True(t, UserRoleStudent.Valid())
	assert.False(t, UserRole("librarian").Valid())
}

func TestBookLoanOpen(t *testing.T) {
	loan := BookLoan{}
	assert.True(t, loan.Open())

	now := loan.LoanDate
	loan.ActualReturnDate = &now
	assert.False(t, loan.Open())
}
