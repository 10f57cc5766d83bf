package conoha_test

import (
	"testing"

	"github.com/keika299/conoha/pkg/conoha"
	"github.com/stretchr/testify/assert"
)

func TestQuery_Encode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    conoha.Query
		expected string
	}{
		{name: "nil", query: nil, expected: ""},
		{name: "empty", query: conoha.Query{}, expected: ""},
		{name: "single", query: conoha.NewQuery("offset", "3"), expected: "?offset=3"},
		{
			name:     "insertion order",
			query:    conoha.NewQuery("offset", "3", "limit", "5", "mode", "max"),
			expected: "?offset=3&limit=5&mode=max",
		},
		{
			name:     "not sorted",
			query:    conoha.NewQuery("z", "1", "a", "2"),
			expected: "?z=1&a=2",
		},
		{
			name:     "no escaping",
			query:    conoha.NewQuery("q", "a b", "r", "x/y"),
			expected: "?q=a b&r=x/y",
		},
		{
			name:     "empty value",
			query:    conoha.NewQuery("service_name", ""),
			expected: "?service_name=",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, testCase.query.Encode())
		})
	}
}

func TestNewQuery_DropsTrailingKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, conoha.Query{{Key: "a", Value: "1"}}, conoha.NewQuery("a", "1", "b"))
}

func TestQuery_Add(t *testing.T) {
	t.Parallel()

	base := conoha.NewQuery("a", "1")
	extended := base.Add("b", "2")

	assert.Equal(t, "?a=1", base.Encode())
	assert.Equal(t, "?a=1&b=2", extended.Encode())
}

func TestListOptions_Query(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     *conoha.ListOptions
		expected string
	}{
		{name: "nil", opts: nil, expected: ""},
		{name: "zero", opts: &conoha.ListOptions{}, expected: ""},
		{name: "offset only", opts: &conoha.ListOptions{Offset: 20}, expected: "?offset=20"},
		{name: "limit only", opts: &conoha.ListOptions{Limit: 10}, expected: "?limit=10"},
		{name: "both", opts: &conoha.ListOptions{Offset: 20, Limit: 10}, expected: "?offset=20&limit=10"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, testCase.opts.Query().Encode())
		})
	}
}

func TestRRDOptions_Query(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     *conoha.RRDOptions
		expected string
	}{
		{name: "nil", opts: nil, expected: ""},
		{name: "zero", opts: &conoha.RRDOptions{}, expected: ""},
		{
			name:     "full",
			opts:     &conoha.RRDOptions{StartDateRaw: 1433084400, EndDateRaw: 1433170800, Mode: conoha.RRDModeMin},
			expected: "?start_date_raw=1433084400&end_date_raw=1433170800&mode=min",
		},
		{
			name:     "mode only",
			opts:     &conoha.RRDOptions{Mode: conoha.RRDModeAverage},
			expected: "?mode=average",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, testCase.opts.Query().Encode())
		})
	}
}
