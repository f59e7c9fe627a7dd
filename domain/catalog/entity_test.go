package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifly-app/unifly/domain/document"
)

func TestEntity_Metadata(t *testing.T) {
	e := NewSearchableEntity("university-programs", "university_programs", "university_programs",
		"program_id", []string{"department_id", "university_id"}, "contact")

	r := document.Record{
		"program_id":    11,
		"department_id": 4,
		"university_id": 2,
		"contact":       "programs@coastal.edu",
		"name":          "Marine Biology BSc",
	}

	meta := e.Metadata(r)

	assert.Equal(t, 11, meta["program_id"])
	assert.Equal(t, 4, meta["department_id"])
	assert.Equal(t, 2, meta["university_id"])
	assert.Equal(t, "programs@coastal.edu", meta[ReferenceField])
	assert.NotContains(t, meta, "name", "only identifying fields belong in metadata")
	assert.NotContains(t, meta, "contact", "contact is stored under the reference key")
}

func TestEntity_Metadata_MissingFieldsOmitted(t *testing.T) {
	e := NewSearchableEntity("scholarships", "scholarships", "scholarships",
		"scholarship_id", []string{"provider_id"}, "contact")

	meta := e.Metadata(document.Record{"scholarship_id": 9})

	assert.Equal(t, document.Metadata{"scholarship_id": 9}, meta)
}

func TestEntity_Text_ExcludesMetadataFields(t *testing.T) {
	e := NewSearchableEntity("universities", "universities", "universities",
		"university_id", nil, "contact")

	r := document.Record{
		"university_id": 1,
		"contact":       "info@coastal.edu",
		"name":          "Coastal University",
		"description":   "marine research",
	}

	got := e.Text(r)

	assert.Equal(t, "description: marine research\nname: Coastal University\n", got)
}

func TestEntity_IDFilter(t *testing.T) {
	e := NewEntity("plans", "plans", "plan_id")

	assert.Equal(t, document.Filter{"plan_id": int64(7)}, e.IDFilter(int64(7)))
}

func TestBuild_Defaults(t *testing.T) {
	c := Build(nil, nil)

	assert.Len(t, c.Entities(), 16)
	assert.Len(t, c.Searchable(), 9)

	users, ok := c.Get("users")
	require.True(t, ok)
	assert.Equal(t, "user_base", users.Collection())
	assert.False(t, users.Searchable())
	assert.Equal(t, "userid", users.IDField())

	programs, ok := c.Get("university-programs")
	require.True(t, ok)
	assert.True(t, programs.Searchable())
	assert.Equal(t, "university_programs", programs.Index())
}

func TestBuild_Overrides(t *testing.T) {
	c := Build(
		map[string]string{"universities": "unis"},
		map[string]string{"universities": "unis_vectors"},
	)

	e, ok := c.Get("universities")
	require.True(t, ok)
	assert.Equal(t, "unis", e.Collection())
	assert.Equal(t, "unis_vectors", e.Index())

	// Entities absent from the override maps keep their defaults.
	plans, ok := c.Get("plans")
	require.True(t, ok)
	assert.Equal(t, "plans", plans.Collection())
}
