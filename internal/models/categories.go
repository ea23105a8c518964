package models

// Categories returns the closed set of record kinds exposed via CRUD
// endpoints. Order matters only for route registration and cascades, which
// iterate this slice.
func Categories() []Category {
	return []Category{
		TagCategory,
		NoteCategory,
		LinkCategory,
		DateCategory,
		LoginCategory,
		RecipeCategory,
		EmploymentCategory,
		HousingCategory,
	}
}
