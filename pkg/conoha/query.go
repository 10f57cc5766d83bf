package conoha

import (
	"strconv"
	"strings"
)

// QueryParam is a single key/value pair of a query string.
type QueryParam struct {
	Key   string
	Value string
}

// Query is an ordered list of query parameters.
//
// Keys and values are written exactly as given: Encode applies no percent-encoding, so
// callers must pass values that are already safe for a URL.
type Query []QueryParam

// NewQuery builds a Query from alternating keys and values. A trailing key without a
// value is dropped.
func NewQuery(pairs ...string) Query {
	query := make(Query, 0, len(pairs)/2)

	for i := 0; i+1 < len(pairs); i += 2 {
		query = append(query, QueryParam{Key: pairs[i], Value: pairs[i+1]})
	}

	return query
}

// Add returns a copy of q with key=value appended.
func (q Query) Add(key, value string) Query {
	out := make(Query, len(q), len(q)+1)
	copy(out, q)

	return append(out, QueryParam{Key: key, Value: value})
}

// Encode renders the query as "?k1=v1&k2=v2". An empty query renders as "".
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}

	var builder strings.Builder

	builder.WriteString("?")

	for _, param := range q {
		builder.WriteString(param.Key)
		builder.WriteString("=")
		builder.WriteString(param.Value)
		builder.WriteString("&")
	}

	return strings.TrimSuffix(builder.String(), "&")
}

// ListOptions selects a window of a list endpoint.
type ListOptions struct {
	// Offset skips the newest Offset entries.
	Offset int
	// Limit caps the number of entries returned.
	Limit int
}

// Query converts the options, omitting zero values.
func (o *ListOptions) Query() Query {
	if o == nil {
		return nil
	}

	var query Query

	if o.Offset > 0 {
		query = query.Add("offset", strconv.Itoa(o.Offset))
	}

	if o.Limit > 0 {
		query = query.Add("limit", strconv.Itoa(o.Limit))
	}

	return query
}

// RRD data modes.
const (
	RRDModeAverage = "average"
	RRDModeMax     = "max"
	RRDModeMin     = "min"
)

// RRDOptions selects the range and aggregation of object storage usage data.
type RRDOptions struct {
	// StartDateRaw is the range start as UNIX time.
	StartDateRaw int64
	// EndDateRaw is the range end as UNIX time.
	EndDateRaw int64
	// Mode is one of RRDModeAverage, RRDModeMax or RRDModeMin.
	Mode string
}

// Query converts the options, omitting zero values.
func (o *RRDOptions) Query() Query {
	if o == nil {
		return nil
	}

	var query Query

	if o.StartDateRaw > 0 {
		query = query.Add("start_date_raw", strconv.FormatInt(o.StartDateRaw, 10))
	}

	if o.EndDateRaw > 0 {
		query = query.Add("end_date_raw", strconv.FormatInt(o.EndDateRaw, 10))
	}

	if o.Mode != "" {
		query = query.Add("mode", o.Mode)
	}

	return query
}
