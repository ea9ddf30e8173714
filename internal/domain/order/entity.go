// internal/domain/order/entity.go
package order

import "time"

// Item is one order line as the order service expects it.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order is the checkout payload and, with ID filled in, the server's
// record of a placed order.
type Order struct {
	ID         string    `json:"id,omitempty"`
	OrderDate  time.Time `json:"orderDate"`
	Items      []Item    `json:"items"`
	OrderTotal float64   `json:"orderTotal"`
	Shipping   float64   `json:"shipping"`
	Tax        float64   `json:"tax"`

	// Shipping details from the checkout form.
	FirstName string `json:"fname,omitempty"`
	LastName  string `json:"lname,omitempty"`
	Street    string `json:"street,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
}
