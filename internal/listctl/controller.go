// Package listctl holds the list state behind the carousel screen: the decoded
// images, the selected image's items, the search filter and the paginated
// prefix that is materialized for display.
//
// A Controller is not safe for concurrent use. Callers serialize every call
// from one goroutine; the TUI does this by only touching it inside Update.
package listctl

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/glabrego/carousel-cli/internal/catalog"
)

const PageSize = 20

type RangeError struct {
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("select image %d: no images loaded", e.Index)
	}
	return fmt.Sprintf("select image %d: index out of range [0, %d)", e.Index, e.Len)
}

// State is a point-in-time copy of the controller fields.
type State struct {
	Images         []catalog.Image
	SelectedIndex  int
	SearchText     string
	AllItems       []catalog.Item
	FilteredItems  []catalog.Item
	DisplayedItems []catalog.Item
	Page           int
}

// HasData reports whether a non-empty catalog is loaded.
func (s State) HasData() bool {
	return len(s.Images) > 0
}

type observer struct {
	id int
	fn func(State)
}

type Controller struct {
	images         []catalog.Image
	selectedIndex  int
	allItems       []catalog.Item
	searchText     string
	filteredItems  []catalog.Item
	displayedItems []catalog.Item
	page           int

	observers []observer
	nextID    int
}

// New returns a controller. With nil or empty raw the controller starts
// empty and waits for an external loader to call Decode.
func New(raw []byte) (*Controller, error) {
	c := &Controller{}
	if len(raw) == 0 {
		return c, nil
	}
	if err := c.Decode(raw); err != nil {
		return c, err
	}
	return c, nil
}

// Decode replaces the catalog with the document in raw. A failed decode
// leaves every field untouched.
func (c *Controller) Decode(raw []byte) error {
	doc, err := catalog.Decode(raw)
	if err != nil {
		return err
	}

	c.images = doc.Images
	if len(c.images) == 0 {
		c.selectedIndex = 0
		c.allItems = nil
		c.searchText = ""
		c.filteredItems = nil
		c.displayedItems = nil
		c.page = 0
		c.notify()
		return nil
	}
	c.selectIndex(0)
	c.notify()
	return nil
}

func (c *Controller) SelectImage(index int) error {
	if len(c.images) == 0 || index < 0 || index >= len(c.images) {
		return &RangeError{Index: index, Len: len(c.images)}
	}
	c.selectIndex(index)
	c.notify()
	return nil
}

func (c *Controller) selectIndex(index int) {
	c.selectedIndex = index
	c.allItems = cloneItems(c.images[index].Items)
	c.searchText = ""
	c.filteredItems = c.allItems
	c.resetPage()
}

// SetSearchText filters the selected image's items by a case-insensitive
// substring match on the title and rewinds pagination.
func (c *Controller) SetSearchText(text string) {
	c.searchText = text
	c.filteredItems = filterByTitle(c.allItems, text)
	c.resetPage()
	c.notify()
}

// LoadMore appends the next page to the displayed items. It reports false,
// and changes nothing, once every filtered item is displayed.
func (c *Controller) LoadMore() bool {
	nextStart := (c.page + 1) * PageSize
	if nextStart >= len(c.filteredItems) {
		return false
	}
	end := min(nextStart+PageSize, len(c.filteredItems))
	c.displayedItems = append(c.displayedItems, c.filteredItems[nextStart:end]...)
	c.page++
	c.notify()
	return true
}

func (c *Controller) resetPage() {
	c.page = 0
	end := min(PageSize, len(c.filteredItems))
	c.displayedItems = cloneItems(c.filteredItems[:end])
}

// Subscribe registers fn to run after every state change. Observers run
// synchronously in registration order. The returned func removes fn.
func (c *Controller) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	c.nextID++
	id := c.nextID
	c.observers = append(c.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) notify() {
	if len(c.observers) == 0 {
		return
	}
	snapshot := c.State()
	for _, o := range append([]observer(nil), c.observers...) {
		o.fn(snapshot)
	}
}

func (c *Controller) State() State {
	return State{
		Images:         cloneImages(c.images),
		SelectedIndex:  c.selectedIndex,
		SearchText:     c.searchText,
		AllItems:       cloneItems(c.allItems),
		FilteredItems:  cloneItems(c.filteredItems),
		DisplayedItems: cloneItems(c.displayedItems),
		Page:           c.page,
	}
}

func (c *Controller) Images() []catalog.Image {
	return cloneImages(c.images)
}

func (c *Controller) ImageCount() int {
	return len(c.images)
}

func (c *Controller) SelectedIndex() int {
	return c.selectedIndex
}

// SelectedImage returns the active image; ok is false while the catalog is empty.
func (c *Controller) SelectedImage() (catalog.Image, bool) {
	if len(c.images) == 0 {
		return catalog.Image{}, false
	}
	img := c.images[c.selectedIndex]
	img.Items = cloneItems(img.Items)
	return img, true
}

func (c *Controller) AllItems() []catalog.Item {
	return cloneItems(c.allItems)
}

func (c *Controller) FilteredItems() []catalog.Item {
	return cloneItems(c.filteredItems)
}

func (c *Controller) DisplayedItems() []catalog.Item {
	return cloneItems(c.displayedItems)
}

func (c *Controller) DisplayedCount() int {
	return len(c.displayedItems)
}

func (c *Controller) FilteredCount() int {
	return len(c.filteredItems)
}

func (c *Controller) SearchText() string {
	return c.searchText
}

func (c *Controller) Page() int {
	return c.page
}

// HasMore reports whether LoadMore would append anything.
func (c *Controller) HasMore() bool {
	return len(c.displayedItems) < len(c.filteredItems)
}

func filterByTitle(items []catalog.Item, text string) []catalog.Item {
	if text == "" {
		return items
	}
	lower := cases.Lower(language.Und)
	needle := lower.String(text)
	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(lower.String(it.Title), needle) {
			out = append(out, it)
		}
	}
	return out
}

func cloneItems(items []catalog.Item) []catalog.Item {
	if items == nil {
		return nil
	}
	dup := make([]catalog.Item, len(items))
	copy(dup, items)
	return dup
}

func cloneImages(images []catalog.Image) []catalog.Image {
	if images == nil {
		return nil
	}
	dup := make([]catalog.Image, len(images))
	for i, img := range images {
		img.Items = cloneItems(img.Items)
		dup[i] = img
	}
	return dup
}
