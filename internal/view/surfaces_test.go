// internal/view/surfaces_test.go
package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/application/query"
	"storefront/internal/application/usecase"
	"storefront/internal/domain/cart"
	"storefront/internal/domain/catalog"
	"storefront/internal/platform/bus"
	"storefront/internal/storage"
)

func newViewFixture(t *testing.T) (*Document, *usecase.CartUsecase, *bus.Bus) {
	t.Helper()
	store := storage.NewMemoryStore().NewHandle()
	t.Cleanup(func() { _ = store.Close() })
	b := bus.New()
	return NewDocument(), usecase.NewCartUsecase(store, b), b
}

func tentProduct(id, name string, price, srp float64) catalog.Product {
	return catalog.Product{
		ID:                   id,
		Name:                 name,
		NameWithoutBrand:     name,
		Brand:                catalog.Brand{Name: "Marmot"},
		FinalPrice:           price,
		SuggestedRetailPrice: srp,
	}
}

func TestProductGridButtonStateFollowsCart(t *testing.T) {
	doc, carts, b := newViewFixture(t)
	doc.Mount(SelectorProductList)

	grid := NewProductGrid(doc, carts)
	grid.SetProducts([]catalog.Product{tentProduct("p1", "Ajax 3", 199.99, 300)})

	s := NewSync()
	s.Register(grid)
	s.BindBus(b)
	s.RefreshAll()

	el, _ := doc.Query(SelectorProductList)
	assert.Contains(t, el.HTML(), "Add to Cart")
	assert.NotContains(t, el.HTML(), "Added in Cart")
	assert.Contains(t, el.HTML(), "(33% Off)")

	// the add happens elsewhere (quick view, another surface); the grid
	// re-renders off the broadcast
	require.NoError(t, carts.AddOrIncrement(cart.Item{ID: "p1", Name: "Ajax 3", FinalPrice: 199.99}))

	el, _ = doc.Query(SelectorProductList)
	assert.Contains(t, el.HTML(), "Added in Cart")
	assert.Contains(t, el.HTML(), "disabled")
}

func TestQuickViewAddFlipsModalAndGrid(t *testing.T) {
	doc, carts, b := newViewFixture(t)
	doc.Mount(SelectorProductList)

	p := tentProduct("p1", "Ajax 3", 199.99, 300)

	grid := NewProductGrid(doc, carts)
	grid.SetProducts([]catalog.Product{p})
	modal := NewQuickView(doc, carts)

	s := NewSync()
	s.Register(grid)
	s.Register(modal)
	s.BindBus(b)
	s.RefreshAll()

	require.NoError(t, modal.Open(p))
	modalEl, ok := doc.Query(SelectorModal)
	require.True(t, ok)
	assert.Contains(t, modalEl.HTML(), "Add to Cart")

	// add through the modal's action
	require.NoError(t, carts.AddOrIncrement(cart.Item{ID: p.ID, Name: p.Name, FinalPrice: p.FinalPrice}))

	assert.Contains(t, modalEl.HTML(), "Added in Cart")
	gridEl, _ := doc.Query(SelectorProductList)
	assert.Contains(t, gridEl.HTML(), "Added in Cart")

	modal.Close()
	assert.Empty(t, modalEl.HTML())
	assert.False(t, modalEl.Visible())
}

func TestProductDetailRendersDescriptionAndCarousel(t *testing.T) {
	doc, carts, b := newViewFixture(t)

	p := tentProduct("p1", "Ajax 3", 199.99, 300)
	p.Colors = []catalog.Color{{ColorName: "Pepper"}}
	p.DescriptionHTMLSimple = "<p>Sleeps three in any season.</p>"
	p.Images.PrimaryLarge = "/images/ajax-large.jpg"
	p.Images.ExtraImages = []catalog.ExtraImage{{Title: "Side", Src: "/images/ajax-side.jpg"}}

	detail := NewProductDetail(doc, carts)
	s := NewSync()
	s.Register(detail)
	s.BindBus(b)

	require.NoError(t, detail.Open(p))

	el, ok := doc.Query(SelectorProductDetail)
	require.True(t, ok)
	html := el.HTML()
	assert.Contains(t, html, "<p>Sleeps three in any season.</p>", "description markup injected as-is")
	assert.Contains(t, html, "/images/ajax-large.jpg")
	assert.Contains(t, html, "/images/ajax-side.jpg")
	assert.Contains(t, html, "Pepper")
	assert.Contains(t, html, "Add to Cart")

	// the add re-renders the open detail page off the broadcast
	require.NoError(t, carts.AddOrIncrement(cart.Item{ID: p.ID, Name: p.Name, FinalPrice: p.FinalPrice}))
	assert.Contains(t, el.HTML(), "Added in Cart")
}

func TestCartPageEmptyState(t *testing.T) {
	doc, carts, _ := newViewFixture(t)
	doc.Mount(SelectorCartList)
	footer := doc.Mount(SelectorCartFooter)

	page := NewCartPage(doc, carts)
	require.NoError(t, page.Render())

	el, _ := doc.Query(SelectorCartList)
	assert.Equal(t, "<li>Your cart is empty</li>", el.HTML())
	assert.False(t, footer.Visible())
}

func TestCartPageRendersItemsAndTotal(t *testing.T) {
	doc, carts, b := newViewFixture(t)
	doc.Mount(SelectorCartList)
	footer := doc.Mount(SelectorCartFooter)
	total := doc.Mount(SelectorCartTotal)

	s := NewSync()
	s.Register(NewCartPage(doc, carts))
	s.BindBus(b)

	require.NoError(t, carts.AddOrIncrement(cart.Item{ID: "p1", Name: "Tent", FinalPrice: 10, ColorName: "Green"}))
	require.NoError(t, carts.SetQuantity("p1", 2))
	require.NoError(t, carts.AddOrIncrement(cart.Item{ID: "p2", Name: "Pad", FinalPrice: 5}))

	el, _ := doc.Query(SelectorCartList)
	assert.Contains(t, el.HTML(), "Tent")
	assert.Contains(t, el.HTML(), "Pad")
	assert.Contains(t, el.HTML(), `value="2"`)
	assert.True(t, footer.Visible())
	assert.Equal(t, "Total: $25.00", total.HTML())
}

func TestCheckoutSummaryRendersBreakdown(t *testing.T) {
	doc, carts, b := newViewFixture(t)
	doc.Mount(SelectorCheckout)

	checkout := usecase.NewCheckoutUsecase(carts, nil)
	s := NewSync()
	s.Register(NewCheckoutSummary(doc, checkout))
	s.BindBus(b)

	require.NoError(t, carts.AddOrIncrement(cart.Item{ID: "p1", Name: "Tent", FinalPrice: 10}))
	require.NoError(t, carts.SetQuantity("p1", 2))

	el, _ := doc.Query(SelectorCheckout)
	assert.Contains(t, el.HTML(), "$20.00") // subtotal
	assert.Contains(t, el.HTML(), "$12.00") // shipping: 10 + 2
	assert.Contains(t, el.HTML(), "$1.20")  // tax
	assert.Contains(t, el.HTML(), "$33.20") // order total
}

func TestBannerPrependsAndClears(t *testing.T) {
	doc := NewDocument()
	banner := NewBanner(doc)

	banner.Alert("first problem")
	banner.Alert("second problem")

	el, ok := doc.Query(SelectorAlerts)
	require.True(t, ok)
	html := el.HTML()
	assert.Less(t, strings.Index(html, "second problem"), strings.Index(html, "first problem"),
		"newest alert renders on top")

	banner.Clear()
	assert.Empty(t, el.HTML())
}

func TestOrdersTableRendersRows(t *testing.T) {
	doc := NewDocument()
	table := NewOrdersTable(doc)

	require.NoError(t, table.Render([]query.OrderRow{
		{ID: "o1", OrderDate: "3/5/2024", ItemCount: 2, OrderTotal: 42.5},
	}))

	el, ok := doc.Query(SelectorOrdersTBody)
	require.True(t, ok)
	assert.Contains(t, el.HTML(), "<td>o1</td>")
	assert.Contains(t, el.HTML(), "<td>3/5/2024</td>")
	assert.Contains(t, el.HTML(), "<td>2</td>")
	assert.Contains(t, el.HTML(), "$42.50")
}

func TestRenderProductNotFoundReplacesMain(t *testing.T) {
	doc := NewDocument()
	doc.Mount(SelectorMainContent).SetHTML("<p>stale product markup</p>")

	RenderProductNotFound(doc)

	el, _ := doc.Query(SelectorMainContent)
	assert.Contains(t, el.HTML(), "Product Not Found")
	assert.NotContains(t, el.HTML(), "stale product markup")
}
