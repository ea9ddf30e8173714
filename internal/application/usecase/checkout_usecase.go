// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/order"
)

var (
	ErrEmptyCart = errors.New("checkout_usecase: cart is empty")
)

// Checkout pricing. Shipping is $10 for the first unit plus $2 for each
// additional unit; tax is a flat 6% of the subtotal.
const (
	taxRate          = 0.06
	shippingFirst    = 10.0
	shippingPerExtra = 2.0
)

// Summary is the order form's pricing breakdown.
type Summary struct {
	ItemCount  int
	Subtotal   float64
	Shipping   float64
	Tax        float64
	OrderTotal float64
}

// ShippingForm is the checkout form payload.
type ShippingForm struct {
	FirstName string
	LastName  string
	Street    string
	City      string
	State     string
	Zip       string
}

// OrderAPI is the checkout slice of the collaborator service.
type OrderAPI interface {
	SubmitOrder(ctx context.Context, o order.Order) (order.Order, error)
}

// CheckoutUsecase reads the live cart and computes shipping/tax/total for
// the order form, then packages and submits the order.
type CheckoutUsecase struct {
	carts *CartUsecase
	api   OrderAPI
	clock Clock
}

func NewCheckoutUsecase(carts *CartUsecase, api OrderAPI) *CheckoutUsecase {
	return &CheckoutUsecase{carts: carts, api: api, clock: systemClock{}}
}

// NewCheckoutUsecaseWithClock is useful for tests.
func NewCheckoutUsecaseWithClock(carts *CartUsecase, api OrderAPI, clock Clock) *CheckoutUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CheckoutUsecase{carts: carts, api: api, clock: clock}
}

// Summary computes the pricing breakdown from the current cart. An empty
// cart charges no shipping.
func (uc *CheckoutUsecase) Summary() Summary {
	return summarize(uc.carts.Load())
}

// Checkout packages the cart and shipping details into an order, submits
// it, and clears the cart on success. The cart stays intact when the
// submission fails so the user can retry.
func (uc *CheckoutUsecase) Checkout(ctx context.Context, form ShippingForm) (order.Order, error) {
	c := uc.carts.Load()
	if len(c) == 0 {
		return order.Order{}, ErrEmptyCart
	}

	sum := summarize(c)
	o := order.Order{
		ID:         uuid.NewString(),
		OrderDate:  uc.clock.Now().UTC(),
		Items:      packageItems(c),
		OrderTotal: sum.OrderTotal,
		Shipping:   sum.Shipping,
		Tax:        sum.Tax,
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		Street:     form.Street,
		City:       form.City,
		State:      form.State,
		Zip:        form.Zip,
	}

	confirmed, err := uc.api.SubmitOrder(ctx, o)
	if err != nil {
		return order.Order{}, err
	}

	if err := uc.carts.Clear(); err != nil {
		return order.Order{}, err
	}
	return confirmed, nil
}

func summarize(c cart.Cart) Summary {
	count := c.Count()
	subtotal := roundCents(c.Total())

	var shipping float64
	if count > 0 {
		shipping = shippingFirst + shippingPerExtra*float64(count-1)
	}
	tax := roundCents(subtotal * taxRate)

	return Summary{
		ItemCount:  count,
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		OrderTotal: roundCents(subtotal + shipping + tax),
	}
}

// packageItems strips the cart entries down to what the order service
// needs per line.
func packageItems(c cart.Cart) []order.Item {
	items := make([]order.Item, 0, len(c))
	for _, it := range c {
		q := it.Quantity
		if q <= 0 {
			q = 1
		}
		items = append(items, order.Item{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.FinalPrice,
			Quantity: q,
		})
	}
	return items
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
