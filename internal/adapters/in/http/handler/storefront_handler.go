// internal/adapters/in/http/handler/storefront_handler.go
package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	mw "storefront/internal/adapters/in/http/middleware"
	"storefront/internal/adapters/out/storeapi"
	"storefront/internal/application/query"
	"storefront/internal/application/usecase"
	"storefront/internal/domain/cart"
	"storefront/internal/domain/catalog"
	"storefront/internal/domain/session"
	"storefront/internal/view"
)

// Storefront serves the storefront pages and the UI entry-point actions:
// add-to-cart, quantity controls, remove, sort select, login submit,
// checkout submit. Mutations answer with the live cart count; fragments
// come from the view surfaces so the response is exactly what the
// synchronizer rendered.
type Storefront struct {
	Catalog  *usecase.CatalogUsecase
	Carts    *usecase.CartUsecase
	Checkout *usecase.CheckoutUsecase
	Sessions *usecase.SessionUsecase
	Orders   *query.OrderQuery

	Doc     *view.Document
	Sync    *view.Sync
	Grid    *view.ProductGrid
	Modal   *view.QuickView
	Detail  *view.ProductDetail
	Cart    *view.CartPage
	Badge   *view.Badge
	Summary *view.CheckoutSummary
	Banner  *view.Banner
	Table   *view.OrdersTable
}

// Routes builds the storefront router. The checkout and order-history
// pages sit behind the session gate; everything else is public.
func (h *Storefront) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/products", h.handleProductList)
	r.Get("/products/{id}/quick-view", h.handleQuickView)
	r.Get("/product/{id}", h.handleProductDetail)

	r.Get("/cart", h.handleCartPage)
	r.Post("/cart/items", h.handleAddToCart)
	r.Post("/cart/items/{id}/quantity", h.handleSetQuantity)
	r.Post("/cart/items/{id}/increment", h.handleIncrement)
	r.Post("/cart/items/{id}/remove", h.handleRemove)

	r.Get("/fragments/cart-badge", h.handleBadge)

	r.Get("/login", h.handleLoginPage)
	r.Post("/login", h.handleLoginSubmit)

	gate := &mw.SessionGate{Sessions: h.Sessions}
	r.Group(func(pr chi.Router) {
		pr.Use(gate.Handler)
		pr.Get("/checkout", h.handleCheckoutPage)
		pr.Post("/checkout", h.handleCheckoutSubmit)
		pr.Get("/orders", h.handleOrders)
	})

	return r
}

// ----------------------------
// catalog
// ----------------------------

func (h *Storefront) handleProductList(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	requestedSort := r.URL.Query().Get("sort")

	products, key, err := h.Catalog.ListCategory(r.Context(), category, requestedSort)
	if err != nil {
		if errors.Is(err, usecase.ErrCatalogInvalidArgument) {
			badRequest(w, "category is required")
			return
		}
		h.renderAPIError(w, "product fetch failed", err)
		return
	}

	h.Grid.SetProducts(products)
	h.Sync.RefreshAll()

	log.Printf("[storefront_handler] products category=%q sort=%s n=%d", category, key, len(products))
	writeHTML(w, http.StatusOK, h.elementHTML(view.SelectorProductList))
}

func (h *Storefront) handleQuickView(w http.ResponseWriter, r *http.Request) {
	h.renderProductFragment(w, r, func(p catalog.Product) (string, error) {
		if err := h.Modal.Open(p); err != nil {
			return "", err
		}
		return h.elementHTML(view.SelectorModal), nil
	})
}

func (h *Storefront) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	h.renderProductFragment(w, r, func(p catalog.Product) (string, error) {
		if err := h.Detail.Open(p); err != nil {
			return "", err
		}
		return h.elementHTML(view.SelectorProductDetail), nil
	})
}

func (h *Storefront) renderProductFragment(w http.ResponseWriter, r *http.Request, render func(catalog.Product) (string, error)) {
	id := chi.URLParam(r, "id")

	p, err := h.Catalog.FindProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, storeapi.ErrNotFound) {
			// replacement view, never a partial render
			view.RenderProductNotFound(h.Doc)
			writeHTML(w, http.StatusNotFound, h.elementHTML(view.SelectorMainContent))
			return
		}
		h.renderAPIError(w, "product fetch failed", err)
		return
	}

	frag, err := render(p)
	if err != nil {
		internalError(w, err.Error())
		return
	}
	writeHTML(w, http.StatusOK, frag)
}

// ----------------------------
// cart
// ----------------------------

func (h *Storefront) handleCartPage(w http.ResponseWriter, r *http.Request) {
	h.Sync.RefreshAll()
	writeHTML(w, http.StatusOK, h.elementHTML(view.SelectorCartList)+h.elementHTML(view.SelectorCartTotal))
}

func (h *Storefront) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.FormValue("productId"))
	if id == "" {
		badRequest(w, "productId is required")
		return
	}

	p, err := h.Catalog.FindProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, storeapi.ErrNotFound) {
			view.RenderProductNotFound(h.Doc)
			writeHTML(w, http.StatusNotFound, h.elementHTML(view.SelectorMainContent))
			return
		}
		h.renderAPIError(w, "product fetch failed", err)
		return
	}

	if err := h.Carts.AddOrIncrement(itemFromProduct(p)); err != nil {
		internalError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": h.Carts.Count()})
}

func (h *Storefront) handleSetQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	n, err := strconv.Atoi(strings.TrimSpace(r.FormValue("quantity")))
	if err != nil {
		// validation failure: reset the field to the last known-good value
		// by re-rendering; no banner, no mutation
		log.Printf("[storefront_handler] non-numeric quantity for id=%q, resetting field", id)
		h.Sync.RefreshAll()
		writeJSON(w, http.StatusOK, map[string]int{"count": h.Carts.Count()})
		return
	}

	if err := h.Carts.SetQuantity(id, n); err != nil {
		internalError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": h.Carts.Count()})
}

func (h *Storefront) handleIncrement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	delta := 1
	if d, err := strconv.Atoi(strings.TrimSpace(r.FormValue("delta"))); err == nil {
		delta = d
	}

	if err := h.Carts.IncrementQuantity(id, delta); err != nil {
		internalError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": h.Carts.Count()})
}

func (h *Storefront) handleRemove(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Remove(chi.URLParam(r, "id")); err != nil {
		internalError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": h.Carts.Count()})
}

func (h *Storefront) handleBadge(w http.ResponseWriter, r *http.Request) {
	// The header fragment asks for its badge once it has loaded; this is
	// also the moment the badge mount becomes available.
	h.Doc.Mount(view.SelectorCartCounter)
	if err := h.Badge.Render(); err != nil {
		internalError(w, err.Error())
		return
	}
	writeHTML(w, http.StatusOK, h.elementHTML(view.SelectorCartCounter))
}

// ----------------------------
// session
// ----------------------------

func (h *Storefront) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, view.LoginFormHTML(r.URL.Query().Get("redirect")))
}

func (h *Storefront) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	creds := session.Credentials{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}

	target, err := h.Sessions.Login(r.Context(), creds, r.FormValue("redirect"))
	if err != nil {
		if errors.Is(err, usecase.ErrSessionInvalidArgument) {
			badRequest(w, "email and password are required")
			return
		}
		h.renderAPIError(w, "login failed", err)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// ----------------------------
// checkout + orders (session-gated)
// ----------------------------

func (h *Storefront) handleCheckoutPage(w http.ResponseWriter, r *http.Request) {
	h.Doc.Mount(view.SelectorCheckout)
	h.Sync.RefreshAll()
	writeHTML(w, http.StatusOK, h.elementHTML(view.SelectorCheckout))
}

func (h *Storefront) handleCheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	form := usecase.ShippingForm{
		FirstName: strings.TrimSpace(r.FormValue("fname")),
		LastName:  strings.TrimSpace(r.FormValue("lname")),
		Street:    strings.TrimSpace(r.FormValue("street")),
		City:      strings.TrimSpace(r.FormValue("city")),
		State:     strings.TrimSpace(r.FormValue("state")),
		Zip:       strings.TrimSpace(r.FormValue("zip")),
	}

	confirmed, err := h.Checkout.Checkout(r.Context(), form)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyCart) {
			badRequest(w, "cart is empty")
			return
		}
		h.renderAPIError(w, "checkout failed", err)
		return
	}
	writeJSON(w, http.StatusOK, confirmed)
}

func (h *Storefront) handleOrders(w http.ResponseWriter, r *http.Request) {
	token, ok := mw.CurrentToken(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "no session token")
		return
	}

	rows, err := h.Orders.Rows(r.Context(), token)
	if err != nil {
		h.renderAPIError(w, "order fetch failed", err)
		return
	}

	if err := h.Table.Render(rows); err != nil {
		internalError(w, err.Error())
		return
	}
	writeHTML(w, http.StatusOK, h.elementHTML(view.SelectorOrdersTBody))
}

// ----------------------------
// helpers
// ----------------------------

// renderAPIError puts the failure in the alert banner (the page stays
// interactive) and answers with the banner fragment plus the upstream
// status where one exists.
func (h *Storefront) renderAPIError(w http.ResponseWriter, prefix string, err error) {
	status := http.StatusBadGateway
	msg := prefix

	var apiErr *storeapi.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.Status
		msg = apiErr.Message
	}
	log.Printf("[storefront_handler] %s: %v", prefix, err)

	h.Banner.Alert(msg)
	writeHTML(w, status, h.elementHTML(view.SelectorAlerts))
}

func (h *Storefront) elementHTML(selector string) string {
	if el, ok := h.Doc.Query(selector); ok {
		return el.HTML()
	}
	return ""
}

func itemFromProduct(p catalog.Product) cart.Item {
	return cart.Item{
		ID:                   p.ID,
		Name:                 p.Name,
		NameWithoutBrand:     p.NameWithoutBrand,
		Image:                p.Images.PrimaryMedium,
		ColorName:            p.ColorName(),
		FinalPrice:           p.FinalPrice,
		SuggestedRetailPrice: p.SuggestedRetailPrice,
	}
}
