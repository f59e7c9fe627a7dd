package catalog

// Default collection names, overridable per environment via the collections
// config file.
const (
	defaultUserBase           = "user_base"
	defaultStudentProfiles    = "student_profiles"
	defaultStudentPreferences = "student_preferences"
	defaultAdvisorProfiles    = "advisor_profiles"
	defaultParentProfiles     = "parent_profiles"
	defaultAdminProfiles      = "admin_profiles"
	defaultUniversities       = "universities"
	defaultFaculties          = "university_faculties"
	defaultDepartments        = "university_departments"
	defaultCampuses           = "university_campuses"
	defaultPrograms           = "university_programs"
	defaultPeople             = "university_people"
	defaultResearch           = "university_research"
	defaultScholarships       = "scholarships"
	defaultProviders          = "scholarship_providers"
	defaultPlans              = "plans"
)

// Catalog is the full set of entities the API serves.
type Catalog struct {
	entities []Entity
	byName   map[string]Entity
}

// Build assembles the catalog. mongo and vector map entity names to
// collection names; entities absent from a map use the default name. An
// empty vector name for a searchable entity falls back to its default
// vector collection.
func Build(mongo, vector map[string]string) Catalog {
	col := func(name, fallback string) string {
		if v, ok := mongo[name]; ok && v != "" {
			return v
		}
		return fallback
	}
	idx := func(name, fallback string) string {
		if v, ok := vector[name]; ok && v != "" {
			return v
		}
		return fallback
	}

	entities := []Entity{
		NewEntity("users", col("users", defaultUserBase), "userid"),
		NewEntity("student-profiles", col("student-profiles", defaultStudentProfiles), "userid"),
		NewEntity("student-preferences", col("student-preferences", defaultStudentPreferences), "userid"),
		NewEntity("advisor-profiles", col("advisor-profiles", defaultAdvisorProfiles), "userid"),
		NewEntity("parent-profiles", col("parent-profiles", defaultParentProfiles), "userid"),
		NewEntity("admin-profiles", col("admin-profiles", defaultAdminProfiles), "userid"),
		NewEntity("plans", col("plans", defaultPlans), "plan_id"),

		NewSearchableEntity("universities",
			col("universities", defaultUniversities),
			idx("universities", defaultUniversities),
			"university_id", nil, "contact"),
		NewSearchableEntity("university-faculties",
			col("university-faculties", defaultFaculties),
			idx("university-faculties", defaultFaculties),
			"faculty_id", []string{"university_id"}, ""),
		NewSearchableEntity("university-departments",
			col("university-departments", defaultDepartments),
			idx("university-departments", defaultDepartments),
			"department_id", []string{"university_id", "faculty_id"}, ""),
		NewSearchableEntity("university-campuses",
			col("university-campuses", defaultCampuses),
			idx("university-campuses", defaultCampuses),
			"campus_id", []string{"university_id"}, "contact"),
		NewSearchableEntity("university-programs",
			col("university-programs", defaultPrograms),
			idx("university-programs", defaultPrograms),
			"program_id", []string{"department_id", "university_id"}, "contact"),
		NewSearchableEntity("university-people",
			col("university-people", defaultPeople),
			idx("university-people", defaultPeople),
			"person_id", []string{"university_id"}, "contact"),
		NewSearchableEntity("university-research",
			col("university-research", defaultResearch),
			idx("university-research", defaultResearch),
			"lab_id", []string{"department_id", "university_id"}, "contact"),
		NewSearchableEntity("scholarships",
			col("scholarships", defaultScholarships),
			idx("scholarships", defaultScholarships),
			"scholarship_id", []string{"provider_id"}, "contact"),
		NewSearchableEntity("scholarship-providers",
			col("scholarship-providers", defaultProviders),
			idx("scholarship-providers", defaultProviders),
			"provider_id", nil, "contact"),
	}

	byName := make(map[string]Entity, len(entities))
	for _, e := range entities {
		byName[e.Name()] = e
	}
	return Catalog{entities: entities, byName: byName}
}

// Entities returns all entities in declaration order.
func (c Catalog) Entities() []Entity {
	out := make([]Entity, len(c.entities))
	copy(out, c.entities)
	return out
}

// Get returns the entity with the given API slug.
func (c Catalog) Get(name string) (Entity, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// Searchable returns the entities mirrored into the vector index.
func (c Catalog) Searchable() []Entity {
	var out []Entity
	for _, e := range c.entities {
		if e.Searchable() {
			out = append(out, e)
		}
	}
	return out
}
