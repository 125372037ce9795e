package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a.b", true},
		{"example.com", true},
		{"www.example.co.uk", true},
		{"abc", false},
		{"", false},
		{".", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.in))
		})
	}
}

func TestDirName(t *testing.T) {
	assert.Equal(t, "example_test", DirName("example.test"))
	assert.Equal(t, "www_example_co_uk", DirName("www.example.co.uk"))
	assert.Equal(t, "localhost", DirName("localhost"))
}
