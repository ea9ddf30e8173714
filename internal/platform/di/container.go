// internal/platform/di/container.go
package di

import (
	"net/http"
	"strings"
	"time"

	"storefront/internal/adapters/in/http/handler"
	"storefront/internal/adapters/out/storeapi"
	"storefront/internal/application/query"
	"storefront/internal/application/usecase"
	"storefront/internal/platform/bus"
	"storefront/internal/storage"
	"storefront/internal/view"
)

// Config carries everything the container needs from the environment.
type Config struct {
	// APIBase is the external product/order/auth service.
	APIBase string

	// StoreDir is the persistent store directory. Empty means a
	// process-local in-memory store (no persistence across restarts).
	StoreDir string

	// BadgeRetrySchedule overrides the header-badge retry timing.
	BadgeRetrySchedule []time.Duration
}

// Container wires one storefront instance: store handle, bus, document,
// usecases, view surfaces, synchronizer, HTTP handler. Pure DI: build
// deps only, no routing branching.
//
// One container corresponds to one open "tab": containers sharing a
// store directory stay consistent through storage events.
type Container struct {
	Store storage.Store
	Bus   *bus.Bus
	Doc   *view.Document
	API   *storeapi.Client

	CartUC     *usecase.CartUsecase
	CatalogUC  *usecase.CatalogUsecase
	CheckoutUC *usecase.CheckoutUsecase
	SessionUC  *usecase.SessionUsecase
	OrderQuery *query.OrderQuery

	Sync    *view.Sync
	Badge   *view.Badge
	Handler *handler.Storefront
}

func New(cfg Config) (*Container, error) {
	var store storage.Store
	if dir := strings.TrimSpace(cfg.StoreDir); dir != "" {
		fs, err := storage.NewFileStore(dir)
		if err != nil {
			return nil, err
		}
		store = fs
	} else {
		store = storage.NewMemoryStore().NewHandle()
	}
	return NewWithStore(cfg, store), nil
}

// NewWithStore builds a container over an existing store handle. Tests
// use this to share one in-memory store between simulated tabs.
func NewWithStore(cfg Config, store storage.Store) *Container {
	b := bus.New()
	doc := view.NewDocument()
	api := storeapi.New(cfg.APIBase)

	cartUC := usecase.NewCartUsecase(store, b)
	catalogUC := usecase.NewCatalogUsecase(api, store)
	checkoutUC := usecase.NewCheckoutUsecase(cartUC, api)
	sessionUC := usecase.NewSessionUsecase(store, api)
	orderQuery := query.NewOrderQuery(api)

	// page skeleton mounts; the header (and with it the badge counter)
	// arrives later, which is what the retry schedule is for
	doc.Mount(view.SelectorProductList)
	doc.Mount(view.SelectorCartList)
	doc.Mount(view.SelectorCartFooter)
	doc.Mount(view.SelectorCartTotal)

	grid := view.NewProductGrid(doc, cartUC)
	modal := view.NewQuickView(doc, cartUC)
	detail := view.NewProductDetail(doc, cartUC)
	cartPage := view.NewCartPage(doc, cartUC)
	badge := view.NewBadge(doc, cartUC)
	summary := view.NewCheckoutSummary(doc, checkoutUC)
	banner := view.NewBanner(doc)
	table := view.NewOrdersTable(doc)

	var sync *view.Sync
	if len(cfg.BadgeRetrySchedule) > 0 {
		sync = view.NewSyncWithRetrySchedule(cfg.BadgeRetrySchedule)
	} else {
		sync = view.NewSync()
	}
	sync.Register(grid)
	sync.Register(modal)
	sync.Register(detail)
	sync.Register(cartPage)
	sync.Register(badge)
	sync.Register(summary)

	// same-tab broadcasts and cross-tab storage events both land here
	sync.BindBus(b)
	sync.WatchStore(store)
	sync.EnsureRendered(badge)

	h := &handler.Storefront{
		Catalog:  catalogUC,
		Carts:    cartUC,
		Checkout: checkoutUC,
		Sessions: sessionUC,
		Orders:   orderQuery,
		Doc:      doc,
		Sync:     sync,
		Grid:     grid,
		Modal:    modal,
		Detail:   detail,
		Cart:     cartPage,
		Badge:    badge,
		Summary:  summary,
		Banner:   banner,
		Table:    table,
	}

	return &Container{
		Store:      store,
		Bus:        b,
		Doc:        doc,
		API:        api,
		CartUC:     cartUC,
		CatalogUC:  catalogUC,
		CheckoutUC: checkoutUC,
		SessionUC:  sessionUC,
		OrderQuery: orderQuery,
		Sync:       sync,
		Badge:      badge,
		Handler:    h,
	}
}

func (c *Container) Router() http.Handler { return c.Handler.Routes() }

func (c *Container) Close() error { return c.Store.Close() }
