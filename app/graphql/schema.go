// Package graphql exposes the public read side over GraphQL: the menu, the
// banners and the booking calendar. Writes stay on the REST routes where the
// admin password is checked.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/thedosaspot/dosaspot/app/calendar"
	"github.com/thedosaspot/dosaspot/app/services"
	gql "github.com/thedosaspot/dosaspot/pkg/graphql"
)

var itemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MenuItem",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"price":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"description": &graphql.Field{Type: graphql.String},
		"spicy":       &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"image_url":   &graphql.Field{Type: graphql.String},
		"category_id": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MenuCategory",
	Fields: graphql.Fields{
		"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"items": &graphql.Field{Type: graphql.NewList(itemType)},
	},
})

var bannerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Banner",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"message":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"active":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"created_at": &graphql.Field{Type: graphql.DateTime},
	},
})

var bookingType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Booking",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":         &graphql.Field{Type: graphql.String},
		"date":         &graphql.Field{Type: graphql.String},
		"time":         &graphql.Field{Type: graphql.String},
		"guests":       &graphql.Field{Type: graphql.Int},
		"booking_type": &graphql.Field{Type: graphql.String},
		"status":       &graphql.Field{Type: graphql.String},
		"event_type":   &graphql.Field{Type: graphql.String},
	},
})

var dayType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CalendarDay",
	Fields: graphql.Fields{
		"day":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"date":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"bookings": &graphql.Field{Type: graphql.NewList(bookingType)},
	},
})

var monthType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CalendarMonth",
	Fields: graphql.Fields{
		"year":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"month":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"leading_blanks": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"days_in_month":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"days": &graphql.Field{
			Type: graphql.NewList(dayType),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				m, _ := p.Source.(calendar.Month)
				return m.Days(), nil
			},
		},
	},
})

// NewSchema builds the read-only schema over svc.
func NewSchema(svc *services.Services) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"menu": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return svc.Menu.Menu(p.Context)
				},
			},
			"banners": &graphql.Field{
				Type: graphql.NewList(bannerType),
				Args: graphql.FieldConfigArgument{
					"active": &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					active, _ := p.Args["active"].(bool)
					return svc.Banners.List(p.Context, active)
				},
			},
			"calendar": &graphql.Field{
				Type: monthType,
				Args: graphql.FieldConfigArgument{
					"year":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"month": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					year, _ := p.Args["year"].(int)
					month, _ := p.Args["month"].(int)
					return svc.Bookings.Calendar(p.Context, year, month)
				},
			},
		},
	})
	return gql.NewSchema(query)
}
