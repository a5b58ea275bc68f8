// Package links loads the bookmark directory and tracks which view of it
// is showing.
package links

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"tableflip.dev/jos/pkg/jsonobj"
)

// SummaryItems is how many entries per category the summary view shows.
const SummaryItems = 3

// Item is one bookmark.
type Item struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Category is a named, ordered group of bookmarks.
type Category struct {
	Name  string
	Items []Item
}

// Summary returns at most SummaryItems leading items.
func (c Category) Summary() []Item {
	if len(c.Items) <= SummaryItems {
		return c.Items
	}
	return c.Items[:SummaryItems]
}

// Directory is the ordered set of categories. The zero value and nil are
// both empty directories.
type Directory struct {
	categories []Category
}

// NewDirectory builds a directory from categories in display order.
func NewDirectory(categories ...Category) *Directory {
	return &Directory{categories: categories}
}

// Categories returns the categories in document order.
func (d *Directory) Categories() []Category {
	if d == nil {
		return nil
	}
	return d.categories
}

// Names returns the category names in document order.
func (d *Directory) Names() []string {
	names := make([]string, 0, len(d.Categories()))
	for _, c := range d.Categories() {
		names = append(names, c.Name)
	}
	return names
}

// Len reports the number of categories.
func (d *Directory) Len() int {
	return len(d.Categories())
}

// Lookup finds a category by exact name, then by case-insensitive name.
func (d *Directory) Lookup(name string) (Category, bool) {
	for _, c := range d.Categories() {
		if c.Name == name {
			return c, true
		}
	}
	for _, c := range d.Categories() {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// put adds c, or replaces the category of the same name where it stands.
func (d *Directory) put(c Category) {
	for i := range d.categories {
		if d.categories[i].Name == c.Name {
			d.categories[i] = c
			return
		}
	}
	d.categories = append(d.categories, c)
}

// Format selects the directory document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the format from a file name or URL path extension.
func FormatFor(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a directory document, an object mapping category names to
// lists of {name, url}. Category order follows the document; a repeated
// name keeps its first position and its last value.
func Parse(data []byte, format Format) (*Directory, error) {
	if format == FormatYAML {
		return parseYAML(data)
	}
	return parseJSON(data)
}

func parseJSON(data []byte) (*Directory, error) {
	d := &Directory{}
	err := jsonobj.Each(data, func(name string, dec *json.Decoder) error {
		var items []Item
		if err := dec.Decode(&items); err != nil {
			return err
		}
		d.put(Category{Name: name, Items: items})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("links: %w", err)
	}
	return d, nil
}

func parseYAML(data []byte) (*Directory, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("links: %w", err)
	}
	d := &Directory{}
	if len(doc.Content) == 0 {
		return d, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("links: expected a mapping of categories")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		var items []Item
		if err := root.Content[i+1].Decode(&items); err != nil {
			return nil, fmt.Errorf("links: %q: %w", name, err)
		}
		d.put(Category{Name: name, Items: items})
	}
	return d, nil
}

// Load reads the directory from source, a file path or an http(s) URL.
// A nil client uses http.DefaultClient. There is no timeout beyond ctx.
func Load(ctx context.Context, source string, client *http.Client) (*Directory, error) {
	if source == "" {
		return nil, errors.New("links: no source configured")
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetch(ctx, source, client)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("links: %w", err)
	}
	return Parse(data, FormatFor(source))
}

func fetch(ctx context.Context, source string, client *http.Client) (*Directory, error) {
	if client == nil {
		client = http.DefaultClient
	}
	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("links: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("links: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("links: fetch %s: %w", source, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("links: fetch %s: %s", source, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("links: read %s: %w", source, err)
	}
	return Parse(data, FormatFor(u.Path))
}
