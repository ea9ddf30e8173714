// internal/domain/catalog/product.go
package catalog

import "math"

// Product mirrors the shape the product service returns. Only the fields
// the storefront renders are mapped; unknown fields are ignored on decode.
type Product struct {
	ID                    string  `json:"Id"`
	Name                  string  `json:"Name"`
	NameWithoutBrand      string  `json:"NameWithoutBrand"`
	Brand                 Brand   `json:"Brand"`
	Images                Images  `json:"Images"`
	Colors                []Color `json:"Colors"`
	FinalPrice            float64 `json:"FinalPrice"`
	SuggestedRetailPrice  float64 `json:"SuggestedRetailPrice"`
	DescriptionHTMLSimple string  `json:"DescriptionHtmlSimple"`
}

type Brand struct {
	Name string `json:"Name"`
}

type Images struct {
	PrimaryMedium string       `json:"PrimaryMedium"`
	PrimaryLarge  string       `json:"PrimaryLarge"`
	ExtraImages   []ExtraImage `json:"ExtraImages"`
}

type ExtraImage struct {
	Title string `json:"Title"`
	Src   string `json:"Src"`
}

type Color struct {
	ColorName string `json:"ColorName"`
}

// ColorName returns the display color (the first variant), or "" when the
// service sent none.
func (p Product) ColorName() string {
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[0].ColorName
}

// DiscountPercent derives the advertised discount from the two prices:
// round((FinalPrice/SuggestedRetailPrice - 1) * -100). A missing or zero
// suggested retail price yields 0 rather than a division blowup.
func (p Product) DiscountPercent() int {
	if p.SuggestedRetailPrice == 0 {
		return 0
	}
	return int(math.Round((p.FinalPrice/p.SuggestedRetailPrice - 1) * -100))
}
