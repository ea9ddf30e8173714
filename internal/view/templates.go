// internal/view/templates.go
package view

import (
	"fmt"
	"html/template"
	"strings"
)

// Fragment templates. The markup mirrors the storefront's card/cart/modal
// structure so the existing CSS keeps working against the class names.
var templates = template.Must(template.New("storefront").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	// The product service delivers description markup pre-rendered; it is
	// injected as-is, matching how the page has always shown it.
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
}).Parse(`
{{define "productCard" -}}
<li class="product-card">
  <a href="/product/{{.Product.ID}}" class="product-card__link">
    <img src="{{.Product.Images.PrimaryMedium}}" alt="Image of {{.Product.Name}}" />
    <h3 class="card__brand">{{.Product.Brand.Name}}</h3>
    <h2 class="card__name">{{.Product.NameWithoutBrand}}</h2>
    <div class="product-card__price">
      <p>{{money .Product.FinalPrice}}</p>
      <p class="product-card__discount" id="product-card__original-price">{{money .Product.SuggestedRetailPrice}}</p>
      <p class="product-card__discount">({{.Product.DiscountPercent}}% Off)</p>
    </div>
  </a>
  <div class="product-card__actions">
    <button class="quick-view-btn" data-product-id="{{.Product.ID}}">Quick View</button>
    <button class="add-to-cart-btn{{if .InCart}} added-to-cart{{end}}" data-product-id="{{.Product.ID}}"{{if .InCart}} disabled{{end}}>{{if .InCart}}Added in Cart{{else}}Add to Cart{{end}}</button>
  </div>
</li>
{{- end}}

{{define "quickViewModal" -}}
<div class="modal-content">
  <div class="modal-header">
    <h3>Quick View</h3>
    <button class="modal-close">&times;</button>
  </div>
  <div class="modal-body">
    <img src="{{.Product.Images.PrimaryMedium}}" alt="{{.Product.Name}}" class="modal-image" />
    <div class="modal-info">
      <h4 class="modal-brand">{{.Product.Brand.Name}}</h4>
      <h3 class="modal-name">{{.Product.NameWithoutBrand}}</h3>
      <div class="modal-price">
        <span class="modal-final-price">{{money .Product.FinalPrice}}</span>
        <span class="modal-original-price">{{money .Product.SuggestedRetailPrice}}</span>
        <span class="modal-discount">({{.Product.DiscountPercent}}% Off)</span>
      </div>
    </div>
  </div>
  <div class="modal-footer">
    <a class="modal-view-details" href="/product/{{.Product.ID}}">View Full Details</a>
    <button class="modal-add-to-cart{{if .InCart}} added-to-cart{{end}}" data-product-id="{{.Product.ID}}"{{if .InCart}} disabled{{end}}>{{if .InCart}}Added in Cart{{else}}Add to Cart{{end}}</button>
  </div>
</div>
{{- end}}

{{define "productDetail" -}}
<section class="product-detail">
  <h3>{{.Product.Brand.Name}}</h3>
  <h2 class="divider">{{.Product.NameWithoutBrand}}</h2>
  <img class="divider" src="{{.Product.Images.PrimaryLarge}}" alt="{{.Product.Name}}" />
  <p class="product-card__price">{{money .Product.FinalPrice}} <span class="product-card__discount">({{.Product.DiscountPercent}}% Off)</span></p>
  <p class="product__color">{{.Product.ColorName}}</p>
  <p class="product__description">{{safeHTML .Product.DescriptionHTMLSimple}}</p>
  {{if .Product.Images.ExtraImages -}}
  <ul class="product-detail__carousel">
    {{range .Product.Images.ExtraImages}}<li><img src="{{.Src}}" alt="{{.Title}}" /></li>{{end}}
  </ul>
  {{- end}}
  <div class="product-detail__add">
    <button class="add-to-cart-btn{{if .InCart}} added-to-cart{{end}}" data-product-id="{{.Product.ID}}"{{if .InCart}} disabled{{end}}>{{if .InCart}}Added in Cart{{else}}Add to Cart{{end}}</button>
  </div>
</section>
{{- end}}

{{define "cartItem" -}}
<li class="cart-card divider">
  <a href="#" class="cart-card__image">
    <img src="{{.Image}}" alt="{{.Name}}" />
  </a>
  <a href="#"><h2 class="card__name">{{.Name}}</h2></a>
  <p class="cart-card__color">{{.ColorName}}</p>
  <div class="cart-card__quantity-controls">
    <button class="quantity-decrease" data-product-id="{{.ID}}" aria-label="Decrease quantity">-</button>
    <input type="number" class="quantity-input" data-product-id="{{.ID}}" value="{{.Quantity}}" min="1" aria-label="Quantity" />
    <button class="quantity-increase" data-product-id="{{.ID}}" aria-label="Increase quantity">+</button>
  </div>
  <p class="cart-card__price">{{money .FinalPrice}}</p>
  <button class="remove-item-btn" data-product-id="{{.ID}}">Remove Item</button>
</li>
{{- end}}

{{define "checkoutSummary" -}}
<ul class="checkout-summary__lines">
  <li>Subtotal ({{.ItemCount}} items): <span class="summary-subtotal">{{money .Subtotal}}</span></li>
  <li>Shipping: <span class="summary-shipping">{{money .Shipping}}</span></li>
  <li>Tax: <span class="summary-tax">{{money .Tax}}</span></li>
  <li>Order Total: <span class="summary-total">{{money .OrderTotal}}</span></li>
</ul>
{{- end}}

{{define "ordersTable" -}}
{{range . -}}
<tr><td>{{.ID}}</td><td>{{.OrderDate}}</td><td>{{.ItemCount}}</td><td>{{money .OrderTotal}}</td></tr>
{{end -}}
{{- end}}

{{define "alert" -}}
<p class="alert" role="alert">{{.}}<button class="alert-dismiss" aria-label="Dismiss">&times;</button></p>
{{- end}}

{{define "loginForm" -}}
<form name="login" method="post" action="/login">
  <label for="email">Email</label>
  <input type="email" id="email" name="email" required />
  <label for="password">Password</label>
  <input type="password" id="password" name="password" required />
  <input type="hidden" name="redirect" value="{{.}}" />
  <button id="loginButton" type="submit">Login</button>
</form>
{{- end}}

{{define "productNotFound" -}}
<div class="product-not-found">
  <h2>Product Not Found</h2>
  <p>Sorry, we could not find that product. It may have been removed.</p>
  <a href="/">Back to the store</a>
</div>
{{- end}}
`))

// LoginFormHTML renders the login form with the return target embedded.
func LoginFormHTML(redirect string) string {
	frag, err := renderFragment("loginForm", redirect)
	if err != nil {
		return ""
	}
	return frag
}

func renderFragment(name string, data any) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
