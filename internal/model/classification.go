package model

// Assignment pairs one input label with the category it was assigned.
type Assignment struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

// Mapping maps each distinct input label to its category, or Unclassified.
type Mapping map[string]Category

// Unclassified returns the labels that no category claimed.
func (m Mapping) Unclassified() []string {
	var out []string
	for label, c := range m {
		if !c.IsClassified() {
			out = append(out, label)
		}
	}
	return out
}

// ByCategory inverts the mapping, grouping labels under their category.
func (m Mapping) ByCategory() map[Category][]string {
	out := make(map[Category][]string)
	for label, c := range m {
		out[c] = append(out[c], label)
	}
	return out
}
