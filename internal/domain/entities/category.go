package entities

// Category is the enumerated kind of an event.
type Category string

const (
	CategorySports        Category = "sports"
	CategoryArtsCulture   Category = "arts_culture"
	CategoryEducation     Category = "education"
	CategoryProfessional  Category = "professional"
	CategoryEntertainment Category = "entertainment"
	CategoryWellness      Category = "wellness"
	CategoryFamily        Category = "family"
	CategorySocial        Category = "social"
)

// DefaultCategory is used when the creator leaves the category empty.
const DefaultCategory = CategorySports

func Categories() []Category {
	return []Category{
		CategorySports,
		CategoryArtsCulture,
		CategoryEducation,
		CategoryProfessional,
		CategoryEntertainment,
		CategoryWellness,
		CategoryFamily,
		CategorySocial,
	}
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
