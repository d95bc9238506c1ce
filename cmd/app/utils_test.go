package main

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadFlag(t *testing.T) {
	app, _ := newUnitApplication(t)

	testCases := []struct {
		query string
		want  bool
	}{
		{query: "comments=true", want: true},
		{query: "comments=1", want: false},
		{query: "comments=t", want: false},
		{query: "comments=TRUE", want: false},
		{query: "", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			qs, err := url.ParseQuery(tc.query)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, app.readFlag(qs, "comments"))
		})
	}
}

func TestReadIntOrDefault(t *testing.T) {
	app, _ := newUnitApplication(t)

	qs := url.Values{"limit": {"100"}, "page": {"abc"}}

	assert.Equal(t, 100, app.readIntOrDefault(qs, "limit", 10))
	assert.Equal(t, 1, app.readIntOrDefault(qs, "page", 1))
	assert.Equal(t, 7, app.readIntOrDefault(qs, "missing", 7))
}
