//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestJob_Validate(t *testing.T) {
	assert.NoError(t, (&Job{ID: "a"}).Validate())
	assert.NoError(t, (&Job{ID: "a", MatchScore: intPtr(0)}).Validate())
	assert.NoError(t, (&Job{ID: "a", MatchScore: intPtr(100)}).Validate())
	assert.Error(t, (&Job{ID: "a", MatchScore: intPtr(101)}).Validate())
	assert.Error(t, (&Job{ID: "a", MatchScore: intPtr(-1)}).Validate())
}

func TestJobFilters_QueryDropsEmptyAndTrims(t *testing.T) {
	f := JobFilters{Keyword: "  golang ", Location: "   ", Company: "Acme"}

	q := f.Query()

	assert.Equal(t, "golang", q.Get("keyword"))
	assert.Equal(t, "Acme", q.Get("company"))
	_, hasLocation := q["location"]
	assert.False(t, hasLocation)
	assert.False(t, f.IsEmpty())
	assert.True(t, JobFilters{Keyword: " "}.IsEmpty())
}

func TestCreateJobInput_Validate(t *testing.T) {
	valid := CreateJobInput{Title: "SRE", Company: "Acme", Description: "Run things", ApplyURL: "https://acme.test/apply"}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.ApplyURL = "not a url"
	assert.Error(t, bad.Validate())
}
