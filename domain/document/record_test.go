package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Without(t *testing.T) {
	r := Record{"_id": "abc", "name": "Coastal", "city": "Haven"}

	got := r.Without(IdentityField)

	assert.NotContains(t, got, IdentityField)
	assert.Equal(t, "Coastal", got["name"])
	assert.Contains(t, r, IdentityField, "original must not be mutated")
}

func TestRecord_Render_SortedAndExcluded(t *testing.T) {
	r := Record{
		"_id":           "abc",
		"university_id": 3,
		"name":          "Coastal University",
		"description":   "marine research",
	}

	got := r.Render("university_id")

	assert.Equal(t, "description: marine research\nname: Coastal University\n", got)
}

func TestRecord_Render_AlwaysSkipsIdentity(t *testing.T) {
	r := Record{"_id": "abc", "x": 1}

	assert.Equal(t, "x: 1\n", r.Render())
}

func TestFilter_Matches(t *testing.T) {
	r := Record{"plan_id": float64(7), "name": "Fall"}

	assert.True(t, Filter{}.Matches(r))
	assert.True(t, Filter{"name": "Fall"}.Matches(r))
	assert.True(t, Filter{"plan_id": 7}.Matches(r), "numeric types compare loosely")
	assert.True(t, Filter{"plan_id": int64(7)}.Matches(r))
	assert.False(t, Filter{"name": "Spring"}.Matches(r))
	assert.False(t, Filter{"missing": 1}.Matches(r))
}
