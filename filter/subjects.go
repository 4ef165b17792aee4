package filter

import (
	"slices"
	"strconv"
	"strings"

	"github.com/s0up4200/petstore/petstore"
)

// PetSubject exposes a pet as ID, Name, Status, Category, Tags and PhotoURLs,
// plus hasTag(name) and inCategory(name).
var PetSubject = Subject[*petstore.Pet]{
	Name:  "pet",
	Label: petLabel,
	Env:   petEnv,
}

// OrderSubject exposes an order as ID, PetID, Quantity, Status, Complete and
// ShipDate, plus shippedBefore(date) and shippedAfter(date).
var OrderSubject = Subject[*petstore.Order]{
	Name:  "order",
	Label: orderLabel,
	Env:   orderEnv,
}

// NewPetCompiler creates a compiler for pet expressions
func NewPetCompiler(opts ...ExprCompilerOption) CachingCompiler[*petstore.Pet] {
	return NewExprCompiler(PetSubject, opts...)
}

// NewOrderCompiler creates a compiler for order expressions
func NewOrderCompiler(opts ...ExprCompilerOption) CachingCompiler[*petstore.Order] {
	return NewExprCompiler(OrderSubject, opts...)
}

func petEnv(pet *petstore.Pet) map[string]any {
	if pet == nil {
		pet = &petstore.Pet{}
	}

	var category string
	if pet.Category != nil {
		category = pet.Category.Name
	}
	tags := make([]string, 0, len(pet.Tags))
	for _, t := range pet.Tags {
		tags = append(tags, t.Name)
	}
	photos := pet.PhotoURLs
	if photos == nil {
		photos = []string{}
	}

	return map[string]any{
		"ID":        deref(pet.ID),
		"Name":      pet.Name,
		"Status":    string(pet.Status),
		"Category":  category,
		"Tags":      tags,
		"PhotoURLs": photos,
		"hasTag": func(name string) bool {
			return slices.ContainsFunc(tags, func(t string) bool { return strings.EqualFold(t, name) })
		},
		"inCategory": func(name string) bool {
			return category != "" && strings.EqualFold(category, name)
		},
	}
}

func orderEnv(order *petstore.Order) map[string]any {
	if order == nil {
		order = &petstore.Order{}
	}

	shipDate := parseDate(order.ShipDate)
	return map[string]any{
		"ID":       deref(order.ID),
		"PetID":    deref(order.PetID),
		"Quantity": int(deref(order.Quantity)),
		"Status":   string(order.Status),
		"Complete": deref(order.Complete),
		"ShipDate": shipDate,
		"shippedBefore": func(date string) bool {
			return !shipDate.IsZero() && shipDate.Before(parseDate(date))
		},
		"shippedAfter": func(date string) bool {
			return !shipDate.IsZero() && shipDate.After(parseDate(date))
		},
	}
}

func petLabel(pet *petstore.Pet) string {
	if pet == nil {
		return "<nil>"
	}
	if pet.ID != nil {
		return strconv.FormatInt(*pet.ID, 10)
	}
	return strconv.Quote(pet.Name)
}

func orderLabel(order *petstore.Order) string {
	if order == nil || order.ID == nil {
		return "<unsaved>"
	}
	return strconv.FormatInt(*order.ID, 10)
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
