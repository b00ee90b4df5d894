// Package fs exports recipes as Markdown files with YAML frontmatter.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/recipescrape"
	"gopkg.in/yaml.v3"
)

// Ensure FileStore implements recipescrape.RecipeStore at compile time.
var _ recipescrape.RecipeStore = (*FileStore)(nil)

// FileStore implements recipescrape.RecipeStore with atomic update semantics.
// Recipes are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the recipe under a path derived from its source URL.
func (s *FileStore) Save(ctx context.Context, recipe *recipescrape.Recipe) error {
	relPath, err := URLToPath(recipe.SourceURL)
	if err != nil {
		return recipescrape.Errorf(recipescrape.EINVALID, "invalid source URL %q: %v", recipe.SourceURL, err)
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatRecipe(recipe)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the output directory with everything saved so far.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the last Commit.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// URLToPath converts a recipe URL to a relative file path under its host.
// Example: https://example.com/recipes/stew/ → example.com/recipes/stew.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", fmt.Errorf("missing host")
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return filepath.Join(host, "index.md"), nil
	}
	path = strings.TrimSuffix(path, ".html")
	return filepath.Join(host, filepath.FromSlash(path)+".md"), nil
}

// frontmatter is the YAML header of an exported recipe.
type frontmatter struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Source   string `yaml:"source"`
	Saved    string `yaml:"saved"`
	Image    string `yaml:"image,omitempty"`
	Servings int    `yaml:"servings,omitempty"`
	PrepTime int    `yaml:"prep_minutes,omitempty"`
	CookTime int    `yaml:"cook_minutes,omitempty"`
}

// FormatRecipe formats a recipe as Markdown with YAML frontmatter.
func FormatRecipe(r *recipescrape.Recipe) (string, error) {
	fm := frontmatter{
		ID:     r.ID,
		Title:  r.Title,
		Source: r.SourceURL,
		Saved:  r.CreatedAt.Format("2006-01-02"),
	}
	if r.ImageURL != nil {
		fm.Image = *r.ImageURL
	}
	if r.Servings != nil {
		fm.Servings = *r.Servings
	}
	if r.PrepTime != nil {
		fm.PrepTime = *r.PrepTime
	}
	if r.CookTime != nil {
		fm.CookTime = *r.CookTime
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n# ")
	b.WriteString(r.Title)
	b.WriteString("\n")
	if r.Description != nil {
		b.WriteString("\n")
		b.WriteString(*r.Description)
		b.WriteString("\n")
	}

	b.WriteString("\n## Ingredients\n\n")
	section := ""
	for i, ing := range r.Ingredients {
		if ing.Section != nil && *ing.Section != section {
			section = *ing.Section
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("### ")
			b.WriteString(section)
			b.WriteString("\n\n")
		}
		b.WriteString("- ")
		b.WriteString(ing.String())
		b.WriteString("\n")
	}

	b.WriteString("\n## Instructions\n\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	return b.String(), nil
}
