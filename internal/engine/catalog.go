package engine

import (
	"bufio"
	"os"
	"strings"

	"hirescope/internal/errors"
)

// defaultSkillTerms is the built-in skill reference list, used when no catalog
// file is configured. Order matters: matched/missing skill lists are reported
// in catalog order.
var defaultSkillTerms = []string{
	"python", "java", "javascript", "c++", "sql", "html", "css",
	"react", "angular", "vue", "node", "django", "flask", "spring",
	"aws", "azure", "gcp", "docker", "kubernetes", "git",
	"machine learning", "deep learning", "nlp", "computer vision",
	"data analysis", "statistics", "excel", "tableau", "power bi",
	"agile", "scrum", "project management", "leadership",
	"communication", "teamwork", "problem solving",
}

// Catalog is an immutable ordered list of lowercase skill terms used for
// presence testing. Swapping in a new catalog never mutates an existing one,
// so a Catalog can be shared freely across goroutines.
type Catalog struct {
	terms []string
}

// NewCatalog builds a catalog from the given terms. Terms are lowercased and
// trimmed; blanks are dropped and duplicates are removed while preserving
// first-seen order.
func NewCatalog(terms []string) *Catalog {
	seen := make(map[string]struct{}, len(terms))
	cleaned := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		cleaned = append(cleaned, term)
	}
	return &Catalog{terms: cleaned}
}

// DefaultCatalog returns the built-in skill catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultSkillTerms)
}

// LoadCatalogFile reads a catalog from a plain-text file with one skill term
// per line. Blank lines and lines starting with '#' are ignored.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound, "catalog file does not exist", err).
				WithContext("path", path)
		}
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable, "cannot open catalog file", err).
			WithContext("path", path)
	}
	defer f.Close()

	var terms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable, "cannot read catalog file", err).
			WithContext("path", path)
	}

	catalog := NewCatalog(terms)
	if catalog.Len() == 0 {
		return nil, errors.NewValidationError(errors.ErrCodeCatalogEmpty, "catalog file contains no skill terms", nil).
			WithContext("path", path)
	}
	return catalog, nil
}

// Terms returns a copy of the catalog terms in catalog order.
func (c *Catalog) Terms() []string {
	out := make([]string, len(c.terms))
	copy(out, c.terms)
	return out
}

// Len returns the number of terms in the catalog.
func (c *Catalog) Len() int {
	return len(c.terms)
}
