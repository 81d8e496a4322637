// Package layout holds the page chrome shared by every storefront page.
package layout

import "net/url"

// Header is static apart from the menu flag, which follows ?menu=open.
// The search box and the counters are decorative.
type Header struct {
	Logo              string
	Brand             string
	SearchPlaceholder string
	WishlistCount     int
	CartCount         int
	MenuOpen          bool
	SignIn            string
}

func NewHeader(q url.Values) Header {
	return Header{
		Logo:              "MM",
		Brand:             "MegaMart",
		SearchPlaceholder: "Search products...",
		MenuOpen:          q.Get("menu") == "open",
		SignIn:            "Sign In",
	}
}

// ShowCartBadge is false while the cart is empty.
func (h Header) ShowCartBadge() bool { return h.CartCount > 0 }

// MenuHref links path with the menu flipped, keeping the rest of q.
func (h Header) MenuHref(path string, q url.Values) string {
	next := url.Values{}
	for k, v := range q {
		next[k] = append([]string(nil), v...)
	}
	if h.MenuOpen {
		next.Del("menu")
	} else {
		next.Set("menu", "open")
	}
	if enc := next.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
