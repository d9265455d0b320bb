// Package catalog defines the authoritative set of classification
// categories. Recovered category names are validated against a Catalog,
// and items that cannot be classified fall back to its default category.
package catalog

// FallbackCategory is the default assignment when the catalog is empty.
const FallbackCategory = "Uncategorized"

// Category is a single classification label with its descriptive metadata.
// Keywords are ordered hints for prompt construction and may be empty.
type Category struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Keywords    []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

// Catalog is an immutable set of valid category names. The default
// category is the first entry, or FallbackCategory for an empty catalog.
type Catalog struct {
	categories  []Category
	valid       map[string]struct{}
	defaultName string
}

// New builds a catalog from an ordered category list. The input slice is
// copied; later mutations of it do not affect the catalog.
func New(categories []Category) *Catalog {
	c := &Catalog{
		categories:  make([]Category, len(categories)),
		valid:       make(map[string]struct{}, len(categories)),
		defaultName: FallbackCategory,
	}
	copy(c.categories, categories)
	for _, cat := range c.categories {
		c.valid[cat.Name] = struct{}{}
	}
	if len(c.categories) > 0 {
		c.defaultName = c.categories[0].Name
	}
	return c
}

// Valid reports whether name is a catalog category.
func (c *Catalog) Valid(name string) bool {
	_, ok := c.valid[name]
	return ok
}

// Default returns the designated fallback category name.
func (c *Catalog) Default() string {
	return c.defaultName
}

// Names returns the category names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Categories returns a copy of the catalog entries in order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.categories)
}
