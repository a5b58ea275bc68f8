package links

// Browser holds the directory plus which of the two views is showing: the
// summary of every category, or one category expanded.
type Browser struct {
	dir      *Directory
	expanded string
	isOpen   bool
}

// NewBrowser starts on the summary view of dir.
func NewBrowser(dir *Directory) *Browser {
	return &Browser{dir: dir}
}

// SetDirectory swaps in a freshly loaded directory and returns to the
// summary view.
func (b *Browser) SetDirectory(dir *Directory) {
	b.dir = dir
	b.ShowMain()
}

// Directory returns the current directory; it may be empty.
func (b *Browser) Directory() *Directory {
	return b.dir
}

// ShowCategory expands the named category. Unknown names return false and
// leave the view as it was.
func (b *Browser) ShowCategory(name string) bool {
	c, ok := b.dir.Lookup(name)
	if !ok {
		return false
	}
	b.expanded = c.Name
	b.isOpen = true
	return true
}

// ShowMain switches back to the summary view.
func (b *Browser) ShowMain() {
	b.expanded = ""
	b.isOpen = false
}

// Expanded returns the expanded category when one is showing.
func (b *Browser) Expanded() (Category, bool) {
	if !b.isOpen {
		return Category{}, false
	}
	return b.dir.Lookup(b.expanded)
}
