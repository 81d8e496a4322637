package detail

import "github.com/shashiranjanraj/megamart/app/models"

// Terminal copy shown instead of the product.
const (
	NotFoundMessage    = "Product not found"
	UnavailableMessage = "Product unavailable"
)

// Model is the JSON shape of a State shared by the API, the live socket,
// the event stream and the CLI.
type Model struct {
	ID       string        `json:"id"`
	Phase    Phase         `json:"phase"`
	Message  string        `json:"message,omitempty"`
	Product  *ProductModel `json:"product,omitempty"`
	Pricing  *PricingModel `json:"pricing,omitempty"`
	Quantity int           `json:"quantity"`
	Favorite bool          `json:"favorite"`
	Notice   string        `json:"notice,omitempty"`
}

// ProductModel is the product part of a Model, without the price.
type ProductModel struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category,omitempty"`
	Image       string         `json:"image"`
	Rating      *models.Rating `json:"rating,omitempty"`
}

// PricingModel carries amounts as fixed two-decimal strings.
type PricingModel struct {
	Price      string `json:"price"`
	Discount   int    `json:"discount"`
	Discounted string `json:"discounted"`
	Savings    string `json:"savings"`
}

// Message is the terminal copy for s, or "" while loading or found.
func (s State) Message() string {
	switch s.Phase {
	case NotFound:
		return NotFoundMessage
	case Failed:
		return UnavailableMessage
	}
	return ""
}

// Model flattens s for JSON output.
func (s State) Model() Model {
	m := Model{
		ID:       s.ID,
		Phase:    s.Phase,
		Message:  s.Message(),
		Quantity: s.Quantity,
		Favorite: s.Favorite,
		Notice:   s.Notice,
	}
	if p := s.Product; p != nil {
		m.Product = &ProductModel{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Category:    p.Category,
			Image:       p.Image,
			Rating:      p.Rating,
		}
	}
	if pr := s.Pricing; pr != nil {
		m.Pricing = &PricingModel{
			Price:      pr.Price.StringFixed(2),
			Discount:   pr.Discount,
			Discounted: pr.Discounted.StringFixed(2),
			Savings:    pr.Savings.StringFixed(2),
		}
	}
	return m
}
