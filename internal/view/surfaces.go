// internal/view/surfaces.go
package view

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"storefront/internal/application/query"
	"storefront/internal/application/usecase"
	"storefront/internal/domain/catalog"
)

// Selectors shared with the page markup/CSS.
const (
	SelectorProductList   = ".product-list"
	SelectorProductDetail = ".product-detail"
	SelectorCartList      = ".cart-list"
	SelectorCartCounter   = ".cart-counter"
	SelectorCartFooter    = ".cart-footer"
	SelectorCartTotal     = ".cart-total"
	SelectorCheckout      = ".checkout-summary"
	SelectorAlerts        = "#alerts"
	SelectorModal         = "#modal"
	SelectorOrdersTBody   = "#orders-tbody"
	SelectorMainContent   = "#main-content"
)

// Surface is one rendered view of cart state. Surfaces re-read fresh
// state on every Render; they never cache across a mutation boundary.
type Surface interface {
	Name() string
	Render() error
}

type cardData struct {
	Product catalog.Product
	InCart  bool
}

// ----------------------------
// product grid
// ----------------------------

// ProductGrid renders the catalog cards. Add-to-cart buttons reflect live
// cart membership, so the grid is registered with the synchronizer and
// re-renders whenever the cart changes anywhere.
type ProductGrid struct {
	doc   *Document
	carts *usecase.CartUsecase

	mu       sync.Mutex
	products []catalog.Product
}

func NewProductGrid(doc *Document, carts *usecase.CartUsecase) *ProductGrid {
	return &ProductGrid{doc: doc, carts: carts}
}

func (g *ProductGrid) Name() string { return "product-grid" }

// SetProducts installs the sorted fetch result for the active session.
func (g *ProductGrid) SetProducts(products []catalog.Product) {
	g.mu.Lock()
	g.products = append([]catalog.Product(nil), products...)
	g.mu.Unlock()
}

func (g *ProductGrid) Render() error {
	el, ok := g.doc.Query(SelectorProductList)
	if !ok {
		return ErrNotMounted
	}

	g.mu.Lock()
	products := append([]catalog.Product(nil), g.products...)
	g.mu.Unlock()

	c := g.carts.Load()

	var sb strings.Builder
	for _, p := range products {
		frag, err := renderFragment("productCard", cardData{Product: p, InCart: c.Contains(p.ID)})
		if err != nil {
			return fmt.Errorf("product grid: %w", err)
		}
		sb.WriteString(frag)
	}
	el.SetHTML(sb.String())
	return nil
}

// ----------------------------
// quick-view modal
// ----------------------------

// QuickView is the modal overlay. While open it stays registered so its
// add-to-cart button flips to "Added in Cart" when the add goes through.
type QuickView struct {
	doc   *Document
	carts *usecase.CartUsecase

	mu      sync.Mutex
	current *catalog.Product
}

func NewQuickView(doc *Document, carts *usecase.CartUsecase) *QuickView {
	return &QuickView{doc: doc, carts: carts}
}

func (q *QuickView) Name() string { return "quick-view" }

func (q *QuickView) Open(p catalog.Product) error {
	q.mu.Lock()
	q.current = &p
	q.mu.Unlock()
	return q.Render()
}

func (q *QuickView) Close() {
	q.mu.Lock()
	q.current = nil
	q.mu.Unlock()
	if el, ok := q.doc.Query(SelectorModal); ok {
		el.SetHTML("")
		el.Hide()
	}
}

func (q *QuickView) Render() error {
	q.mu.Lock()
	current := q.current
	q.mu.Unlock()

	if current == nil {
		return nil
	}

	el := q.doc.Mount(SelectorModal)
	frag, err := renderFragment("quickViewModal", cardData{
		Product: *current,
		InCart:  q.carts.Contains(current.ID),
	})
	if err != nil {
		return fmt.Errorf("quick view: %w", err)
	}
	el.SetHTML(frag)
	el.Show()
	return nil
}

// ----------------------------
// product detail page
// ----------------------------

// ProductDetail renders the full detail page for one product: large
// image, description, color, and the extra-image carousel. Like the quick
// view it stays registered while open so its add-to-cart button follows
// the cart.
type ProductDetail struct {
	doc   *Document
	carts *usecase.CartUsecase

	mu      sync.Mutex
	current *catalog.Product
}

func NewProductDetail(doc *Document, carts *usecase.CartUsecase) *ProductDetail {
	return &ProductDetail{doc: doc, carts: carts}
}

func (d *ProductDetail) Name() string { return "product-detail" }

func (d *ProductDetail) Open(p catalog.Product) error {
	d.mu.Lock()
	d.current = &p
	d.mu.Unlock()
	return d.Render()
}

func (d *ProductDetail) Render() error {
	d.mu.Lock()
	current := d.current
	d.mu.Unlock()

	if current == nil {
		return nil
	}

	el := d.doc.Mount(SelectorProductDetail)
	frag, err := renderFragment("productDetail", cardData{
		Product: *current,
		InCart:  d.carts.Contains(current.ID),
	})
	if err != nil {
		return fmt.Errorf("product detail: %w", err)
	}
	el.SetHTML(frag)
	el.Show()
	return nil
}

// ----------------------------
// cart page
// ----------------------------

// CartPage renders the cart line items plus the footer total. An empty
// cart shows the placeholder message and hides the footer.
type CartPage struct {
	doc   *Document
	carts *usecase.CartUsecase
}

func NewCartPage(doc *Document, carts *usecase.CartUsecase) *CartPage {
	return &CartPage{doc: doc, carts: carts}
}

func (p *CartPage) Name() string { return "cart-page" }

func (p *CartPage) Render() error {
	list, ok := p.doc.Query(SelectorCartList)
	if !ok {
		return ErrNotMounted
	}

	c := p.carts.Load()

	if len(c) == 0 {
		list.SetHTML("<li>Your cart is empty</li>")
		if footer, ok := p.doc.Query(SelectorCartFooter); ok {
			footer.Hide()
		}
		return nil
	}

	var sb strings.Builder
	for _, it := range c {
		frag, err := renderFragment("cartItem", it)
		if err != nil {
			return fmt.Errorf("cart page: %w", err)
		}
		sb.WriteString(frag)
	}
	list.SetHTML(sb.String())

	if footer, ok := p.doc.Query(SelectorCartFooter); ok {
		footer.Show()
	}
	if total, ok := p.doc.Query(SelectorCartTotal); ok {
		total.SetHTML(fmt.Sprintf("Total: $%.2f", c.Total()))
	}
	return nil
}

// ----------------------------
// header badge
// ----------------------------

// Badge renders the header cart counter: total quantity, hidden at zero.
// The header fragment loads asynchronously, so the badge is the one
// surface whose mount can be legitimately missing right after page load;
// the synchronizer retries it on a bounded schedule.
type Badge struct {
	doc   *Document
	carts *usecase.CartUsecase
}

func NewBadge(doc *Document, carts *usecase.CartUsecase) *Badge {
	return &Badge{doc: doc, carts: carts}
}

func (b *Badge) Name() string { return "cart-badge" }

func (b *Badge) Render() error {
	el, ok := b.doc.Query(SelectorCartCounter)
	if !ok {
		return ErrNotMounted
	}

	n := b.carts.Count()
	el.SetHTML(strconv.Itoa(n))
	if n > 0 {
		el.Show()
	} else {
		el.Hide()
	}
	return nil
}

// ----------------------------
// checkout summary
// ----------------------------

// CheckoutSummary renders the order form's pricing breakdown and keeps it
// in step with cart changes while the form is open.
type CheckoutSummary struct {
	doc      *Document
	checkout *usecase.CheckoutUsecase
}

func NewCheckoutSummary(doc *Document, checkout *usecase.CheckoutUsecase) *CheckoutSummary {
	return &CheckoutSummary{doc: doc, checkout: checkout}
}

func (s *CheckoutSummary) Name() string { return "checkout-summary" }

func (s *CheckoutSummary) Render() error {
	el, ok := s.doc.Query(SelectorCheckout)
	if !ok {
		return ErrNotMounted
	}

	frag, err := renderFragment("checkoutSummary", s.checkout.Summary())
	if err != nil {
		return fmt.Errorf("checkout summary: %w", err)
	}
	el.SetHTML(frag)
	return nil
}

// ----------------------------
// one-shot renders (not cart-driven)
// ----------------------------

// Banner shows dismissible alert messages (network failures and the
// like). Messages prepend so the newest sits on top; the page stays
// interactive underneath.
type Banner struct {
	doc *Document
}

func NewBanner(doc *Document) *Banner {
	return &Banner{doc: doc}
}

func (b *Banner) Alert(msg string) {
	frag, err := renderFragment("alert", msg)
	if err != nil {
		return
	}
	el := b.doc.Mount(SelectorAlerts)
	el.SetHTML(frag + el.HTML())
	el.Show()
}

func (b *Banner) Clear() {
	if el, ok := b.doc.Query(SelectorAlerts); ok {
		el.SetHTML("")
		el.Hide()
	}
}

// OrdersTable renders the order-history rows.
type OrdersTable struct {
	doc *Document
}

func NewOrdersTable(doc *Document) *OrdersTable {
	return &OrdersTable{doc: doc}
}

func (o *OrdersTable) Render(rows []query.OrderRow) error {
	frag, err := renderFragment("ordersTable", rows)
	if err != nil {
		return fmt.Errorf("orders table: %w", err)
	}
	o.doc.Mount(SelectorOrdersTBody).SetHTML(frag)
	return nil
}

// RenderProductNotFound replaces the main content with the not-found
// view; a missing product never leaves a partial render behind.
func RenderProductNotFound(doc *Document) {
	frag, err := renderFragment("productNotFound", nil)
	if err != nil {
		return
	}
	doc.Mount(SelectorMainContent).SetHTML(frag)
}
