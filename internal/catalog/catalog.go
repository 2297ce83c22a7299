package catalog

// Group couples a language tag with the two-letter locale used to bias the
// search and an ordered, non-empty list of phrases to query.
type Group struct {
	Language string
	Locale   string
	Keywords []string
}

// Catalog is the static keyword configuration. Order of groups and keywords
// is preserved exactly as declared; the pipeline depends on it.
type Catalog struct {
	groups []Group
}

// New builds a catalog from configured groups, dropping groups without
// keywords. An empty result falls back to the built-in defaults.
func New(groups []Group) *Catalog {
	kept := make([]Group, 0, len(groups))
	for _, g := range groups {
		if len(g.Keywords) == 0 {
			continue
		}
		kept = append(kept, g)
	}
	if len(kept) == 0 {
		kept = Default()
	}
	return &Catalog{groups: kept}
}

// Groups returns language groups in declaration order.
func (c *Catalog) Groups() []Group {
	return c.groups
}

// TotalKeywords counts keywords across all groups.
func (c *Catalog) TotalKeywords() int {
	total := 0
	for _, g := range c.groups {
		total += len(g.Keywords)
	}
	return total
}

// Default returns the built-in trilingual catalog tracking the Royal
// Moroccan Navy.
func Default() []Group {
	return []Group{
		{
			Language: "english",
			Locale:   "en",
			Keywords: []string{
				"Royal Moroccan Navy",
				"Moroccan Navy",
				"Moroccan Navy frigate",
				"Moroccan Navy patrol",
			},
		},
		{
			Language: "french",
			Locale:   "fr",
			Keywords: []string{
				"Marine royale marocaine",
				"Marine marocaine",
				"frégate marocaine",
			},
		},
		{
			Language: "arabic",
			Locale:   "ar",
			Keywords: []string{
				"البحرية الملكية المغربية",
				"البحرية المغربية",
			},
		},
	}
}
