package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name             string
		completed, total int64
		want             int
	}{
		{name: "no lessons", completed: 0, total: 0, want: 0},
		{name: "none done", completed: 0, total: 4, want: 0},
		{name: "quarter", completed: 1, total: 4, want: 25},
		{name: "half", completed: 2, total: 4, want: 50},
		{name: "truncates", completed: 1, total: 3, want: 33},
		{name: "two thirds", completed: 2, total: 3, want: 66},
		{name: "no float drift", completed: 29, total: 100, want: 29},
		{name: "all", completed: 7, total: 7, want: 100},
		{name: "clamped", completed: 5, total: 4, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressPercent(tt.completed, tt.total))
		})
	}
}

func TestUserPassword(t *testing.T) {
	var u User
	assert.NoError(t, u.SetPassword("s3cret"))
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.True(t, u.CheckPassword("s3cret"))
	assert.False(t, u.CheckPassword("wrong"))
}
