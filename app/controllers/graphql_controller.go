package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	gql "github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/megamart/app/detail"
	"github.com/shashiranjanraj/megamart/app/listing"
	"github.com/shashiranjanraj/megamart/pkg/graphql"
)

// NewGraphQLHandler serves the product(id) and products queries.
func NewGraphQLHandler(d Deps) (http.HandlerFunc, error) {
	schema, err := graphql.NewSchema(rootQuery(d))
	if err != nil {
		return nil, fmt.Errorf("graphql schema: %w", err)
	}
	return graphql.Handler(schema), nil
}

func rootQuery(d Deps) *gql.Object {
	rating := gql.NewObject(gql.ObjectConfig{
		Name: "Rating",
		Fields: gql.Fields{
			"rate":  key(gql.Float, "rate"),
			"count": key(gql.Int, "count"),
		},
	})

	product := gql.NewObject(gql.ObjectConfig{
		Name: "Product",
		Fields: gql.Fields{
			"id":          key(gql.Int, "id"),
			"title":       key(gql.String, "title"),
			"description": key(gql.String, "description"),
			"category":    key(gql.String, "category"),
			"image":       key(gql.String, "image"),
			"rating":      key(rating, "rating"),
		},
	})

	pricing := gql.NewObject(gql.ObjectConfig{
		Name: "Pricing",
		Fields: gql.Fields{
			"price":      key(gql.String, "price"),
			"discount":   key(gql.Int, "discount"),
			"discounted": key(gql.String, "discounted"),
			"savings":    key(gql.String, "savings"),
		},
	})

	view := gql.NewObject(gql.ObjectConfig{
		Name: "ProductView",
		Fields: gql.Fields{
			"id":       key(gql.String, "id"),
			"phase":    key(gql.String, "phase"),
			"message":  key(gql.String, "message"),
			"product":  key(product, "product"),
			"pricing":  key(pricing, "pricing"),
			"quantity": key(gql.Int, "quantity"),
			"favorite": key(gql.Boolean, "favorite"),
		},
	})

	card := gql.NewObject(gql.ObjectConfig{
		Name: "ProductCard",
		Fields: gql.Fields{
			"id":          key(gql.Int, "id"),
			"title":       key(gql.String, "title"),
			"image":       key(gql.String, "image"),
			"price":       key(gql.String, "price"),
			"cardPrice":   key(gql.String, "card_price"),
			"discount":    key(gql.Int, "discount"),
			"ratingCount": key(gql.Int, "rating_count"),
			"favorite":    key(gql.Boolean, "favorite"),
		},
	})

	return gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"product": &gql.Field{
				Type: view,
				Args: gql.FieldConfigArgument{
					"id":       &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"discount": &gql.ArgumentConfig{Type: gql.Int},
					"quantity": &gql.ArgumentConfig{Type: gql.Int},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					params := detail.Params{}
					if n, ok := p.Args["discount"].(int); ok && n >= detail.MinDiscount && n <= detail.MaxDiscount {
						params.Discount = n
					}
					if n, ok := p.Args["quantity"].(int); ok && n > 1 {
						params.Quantity = n
					}

					st, err := detail.Load(p.Context, d.Products, d.Decor, id, params)
					if err != nil {
						return nil, err
					}
					return toJSONValue(st.Model())
				},
			},
			"products": &gql.Field{
				Type: gql.NewList(card),
				Args: gql.FieldConfigArgument{
					"favorites": &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					list, err := d.Catalog.Products(p.Context)
					if err != nil {
						return nil, errors.New(listing.UnavailableNotice)
					}
					fav, _ := p.Args["favorites"].(string)
					return toJSONValue(listing.Build(list, listing.ParseFavorites(fav), d.Decor).Cards)
				},
			},
		},
	})
}

// key resolves a field from the JSON form of the parent value.
func key(t gql.Output, name string) *gql.Field {
	return &gql.Field{
		Type: t,
		Resolve: func(p gql.ResolveParams) (interface{}, error) {
			if m, ok := p.Source.(map[string]interface{}); ok {
				return m[name], nil
			}
			return nil, nil
		},
	}
}

// toJSONValue turns view models into the maps and slices key resolves from,
// so GraphQL fields follow the same JSON names as the REST API.
func toJSONValue(v any) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
