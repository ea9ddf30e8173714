// internal/application/query/order_query.go
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain/order"
)

var (
	ErrOrderQueryInvalidArgument = errors.New("order_query: invalid argument")
)

// OrdersAPI is the order-history slice of the collaborator service.
type OrdersAPI interface {
	Orders(ctx context.Context, token string) ([]order.Order, error)
}

// OrderRow is one row of the order-history table.
type OrderRow struct {
	ID         string
	OrderDate  string
	ItemCount  int
	OrderTotal float64
}

// OrderQuery is the read model behind the current-orders page.
type OrderQuery struct {
	api OrdersAPI
}

func NewOrderQuery(api OrdersAPI) *OrderQuery {
	return &OrderQuery{api: api}
}

// Rows fetches the user's orders and maps them to table rows. Dates render
// in the en-US short form the page has always shown (m/d/yyyy).
func (q *OrderQuery) Rows(ctx context.Context, token string) ([]OrderRow, error) {
	tok := strings.TrimSpace(token)
	if tok == "" {
		return nil, ErrOrderQueryInvalidArgument
	}

	orders, err := q.api.Orders(ctx, tok)
	if err != nil {
		return nil, err
	}

	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		d := o.OrderDate
		rows = append(rows, OrderRow{
			ID:         o.ID,
			OrderDate:  fmt.Sprintf("%d/%d/%d", int(d.Month()), d.Day(), d.Year()),
			ItemCount:  len(o.Items),
			OrderTotal: o.OrderTotal,
		})
	}
	return rows, nil
}
