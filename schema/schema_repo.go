package schema

// Repository identifies one repository snapshot under assessment.
// Language detection happens outside the core engine; checks only read
// the detected set through the applicability gate.
type Repository struct {
	Name      string   // Short identity used in rankings, e.g. directory base name
	Path      string   // Absolute path to the repository root
	Languages []string // Detected languages, lowercase, e.g. ["go", "python"]
}

// HasLanguage reports whether the repository contains the given language.
func (r Repository) HasLanguage(lang string) bool {
	for _, l := range r.Languages {
		if l == lang {
			return true
		}
	}
	return false
}
