package files

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrFolderNotFound is returned for folders that do not exist
var ErrFolderNotFound = errors.New("folder not found")

// DefaultFolder is the folder shown when the file manager opens
const DefaultFolder = "home"

// Listing is one folder's contents
type Listing struct {
	Path  string   `json:"path"`
	Items []string `json:"items"`
}

// Provider serves the fixed folder tree
type Provider struct {
	folders map[string][]string
}

// NewProvider creates the stock folder tree
func NewProvider() *Provider {
	return NewProviderWith(map[string][]string{
		"home":      {"notes.txt", "todo.txt", "image.png"},
		"documents": {"project.docx", "resume.pdf"},
		"music":     {"demo-track.mp3"},
	})
}

// NewProviderWith creates a provider over the given folders
func NewProviderWith(folders map[string][]string) *Provider {
	copied := make(map[string][]string, len(folders))
	for name, items := range folders {
		copied[name] = append([]string(nil), items...)
	}
	return &Provider{folders: copied}
}

// Folders returns the folder names in display order
func (p *Provider) Folders() []string {
	names := make([]string, 0, len(p.folders))
	for name := range p.folders {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		// home first, then alphabetical
		if names[i] == DefaultFolder || names[j] == DefaultFolder {
			return names[i] == DefaultFolder
		}
		return names[i] < names[j]
	})
	return names
}

// Has reports whether folder exists
func (p *Provider) Has(folder string) bool {
	_, ok := p.folders[folder]
	return ok
}

// List returns a folder's contents
func (p *Provider) List(folder string) (Listing, error) {
	items, ok := p.folders[folder]
	if !ok {
		return Listing{}, fmt.Errorf("%w: %s", ErrFolderNotFound, folder)
	}
	return Listing{Path: folder, Items: append([]string(nil), items...)}, nil
}

// Glob matches pattern against "folder/name" paths, e.g. "**/*.txt"
func (p *Provider) Glob(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %q", pattern)
	}

	var matches []string
	for _, folder := range p.Folders() {
		for _, item := range p.folders[folder] {
			path := folder + "/" + item
			ok, err := doublestar.Match(pattern, path)
			if err != nil {
				return nil, fmt.Errorf("match %q: %w", pattern, err)
			}
			if ok {
				matches = append(matches, path)
			}
		}
	}
	return matches, nil
}
