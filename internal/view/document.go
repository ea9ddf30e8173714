// internal/view/document.go
package view

import (
	"errors"
	"sync"
)

var (
	// ErrNotMounted means a surface's target element does not exist yet.
	// The header fragment loads asynchronously, so early renders of the
	// cart badge are expected to hit this.
	ErrNotMounted = errors.New("view: element not mounted")
)

// Element is one mount point a surface renders into: an HTML fragment
// plus a visibility flag.
type Element struct {
	mu      sync.Mutex
	html    string
	visible bool
}

func (e *Element) SetHTML(html string) {
	e.mu.Lock()
	e.html = html
	e.mu.Unlock()
}

func (e *Element) HTML() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.html
}

func (e *Element) Show() { e.setVisible(true) }
func (e *Element) Hide() { e.setVisible(false) }

func (e *Element) Visible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible
}

func (e *Element) setVisible(v bool) {
	e.mu.Lock()
	e.visible = v
	e.mu.Unlock()
}

// Document is the set of mounted elements for one open page, keyed by
// selector. Mount points appear as page fragments land, so lookups can
// legitimately miss early in the page's life.
type Document struct {
	mu       sync.Mutex
	elements map[string]*Element
}

func NewDocument() *Document {
	return &Document{elements: map[string]*Element{}}
}

// Mount creates (or returns) the element for selector.
func (d *Document) Mount(selector string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.elements[selector]; ok {
		return el
	}
	el := &Element{visible: true}
	d.elements[selector] = el
	return el
}

// Query returns the element for selector if it has been mounted.
func (d *Document) Query(selector string) (*Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[selector]
	return el, ok
}
