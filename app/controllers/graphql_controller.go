package controllers

import (
	"net/http"
	"time"

	gql "github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/bhandar/app/services"
	"github.com/shashiranjanraj/bhandar/pkg/graphql"
)

// NewGraphQLHandler builds the read-only /graphql endpoint mirroring the
// REST queries: products(search, category), categories, summary.
func NewGraphQLHandler(inventory *services.InventoryService) (http.HandlerFunc, error) {
	productType := gql.NewObject(gql.ObjectConfig{
		Name: "Product",
		Fields: gql.Fields{
			"id":           &gql.Field{Type: gql.String},
			"name":         &gql.Field{Type: gql.String},
			"sku":          &gql.Field{Type: gql.String},
			"category":     &gql.Field{Type: gql.String},
			"price":        &gql.Field{Type: gql.Float},
			"quantity":     &gql.Field{Type: gql.Int},
			"reorderLevel": &gql.Field{Type: gql.Int},
			"expiryDate":   &gql.Field{Type: gql.DateTime},
			"supplier":     &gql.Field{Type: gql.String},
		},
	})

	summaryType := gql.NewObject(gql.ObjectConfig{
		Name: "Summary",
		Fields: gql.Fields{
			"total":        &gql.Field{Type: gql.Int},
			"lowStock":     &gql.Field{Type: gql.Int},
			"outOfStock":   &gql.Field{Type: gql.Int},
			"expiringSoon": &gql.Field{Type: gql.Int},
		},
	})

	root := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"products": &gql.Field{
				Type: gql.NewList(productType),
				Args: gql.FieldConfigArgument{
					"search":   &gql.ArgumentConfig{Type: gql.String},
					"category": &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					search, _ := p.Args["search"].(string)
					category, _ := p.Args["category"].(string)
					if search == "" && category == "" {
						return inventory.ListAll(p.Context)
					}
					return inventory.Search(p.Context, search, category)
				},
			},
			"lowStock": &gql.Field{
				Type: gql.NewList(productType),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return inventory.ListLowStock(p.Context)
				},
			},
			"expiringSoon": &gql.Field{
				Type: gql.NewList(productType),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return inventory.ListExpiringSoon(p.Context, time.Now())
				},
			},
			"categories": &gql.Field{
				Type: gql.NewList(gql.String),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return inventory.Categories(p.Context)
				},
			},
			"summary": &gql.Field{
				Type: summaryType,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return inventory.Summarize(p.Context)
				},
			},
		},
	})

	schema, err := graphql.NewSchema(root)
	if err != nil {
		return nil, err
	}
	return graphql.Handler(schema), nil
}
