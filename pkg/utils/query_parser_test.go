package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQuery(t *testing.T) {
	values := url.Values{
		"search":                    {" SN-1 "},
		"sort[nextCalibrationDate]": {"ASC"},
		"sort[name]":                {"sideways"},
		"filter[status]":            {"Active", "Inactive"},
		"limit":                     {"10"},
		"page":                      {"3"},
		"withPagination":            {"true"},
	}

	f := ParseFilterFromQuery(values)

	assert.Equal(t, "SN-1", f.Search)
	assert.Equal(t, map[string]string{"nextCalibrationDate": "asc"}, f.Sort)
	assert.Equal(t, "Active,Inactive", f.Filter["status"])
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 20, f.Offset)
	assert.True(t, f.WithPagination)
}

func TestParseFilterFromQuery_Defaults(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{"limit": {"100000"}, "status": {"Reserve"}, "withPagination": {"false"}})

	assert.Equal(t, MaxLimit, f.Limit)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 0, f.Offset)
	assert.False(t, f.WithPagination)
	assert.Equal(t, "Reserve", f.Filter["status"])
}

func TestParseIDParam(t *testing.T) {
	id, err := ParseIDParam("42")
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		_, err := ParseIDParam(bad)
		assert.Error(t, err, bad)
	}
}
