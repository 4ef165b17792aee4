package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/s0up4200/petstore/petstore"
)

// Formatter renders pets and orders for the terminal
type Formatter interface {
	FormatPets(pets []*petstore.Pet) (string, error)
	FormatOrders(orders []*petstore.Order) (string, error)
}

// New returns the formatter for an output format name ("table" or "json")
func New(format string) (Formatter, error) {
	switch format {
	case "", "table":
		return NewConsoleFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// ConsoleFormatter renders resources as a tree
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatPets formats a list of pets for console display
func (f *ConsoleFormatter) FormatPets(pets []*petstore.Pet) (string, error) {
	if len(pets) == 0 {
		return "No pets found", nil
	}

	var sb strings.Builder
	writeHeader(&sb, "Pet", len(pets))

	for i, pet := range pets {
		isLast := i == len(pets)-1
		indent := writeBranch(&sb, isLast, fmt.Sprintf("%s (#%s)", displayName(pet.Name), idString(pet.ID)))

		if pet.Status != "" {
			fmt.Fprintf(&sb, "%sStatus: %s\n", indent, pet.Status)
		}
		if pet.Category != nil && pet.Category.Name != "" {
			fmt.Fprintf(&sb, "%sCategory: %s\n", indent, pet.Category.Name)
		}
		if len(pet.Tags) > 0 {
			names := make([]string, 0, len(pet.Tags))
			for _, t := range pet.Tags {
				names = append(names, t.Name)
			}
			fmt.Fprintf(&sb, "%sTags: %s\n", indent, strings.Join(names, ", "))
		}
		for _, url := range pet.PhotoURLs {
			fmt.Fprintf(&sb, "%sPhoto: %s\n", indent, url)
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String(), nil
}

// FormatOrders formats a list of orders for console display
func (f *ConsoleFormatter) FormatOrders(orders []*petstore.Order) (string, error) {
	if len(orders) == 0 {
		return "No orders found", nil
	}

	var sb strings.Builder
	writeHeader(&sb, "Order", len(orders))

	for i, order := range orders {
		isLast := i == len(orders)-1
		indent := writeBranch(&sb, isLast, "Order #"+idString(order.ID))

		var parts []string
		if order.PetID != nil {
			parts = append(parts, "Pet: #"+strconv.FormatInt(*order.PetID, 10))
		}
		if order.Quantity != nil {
			parts = append(parts, fmt.Sprintf("Quantity: %d", *order.Quantity))
		}
		if len(parts) > 0 {
			fmt.Fprintf(&sb, "%s%s\n", indent, strings.Join(parts, " | "))
		}

		if order.Status != "" {
			status := string(order.Status)
			if order.Complete != nil && *order.Complete {
				status += " (complete)"
			}
			fmt.Fprintf(&sb, "%sStatus: %s\n", indent, status)
		}
		if order.ShipDate != "" {
			fmt.Fprintf(&sb, "%sShip date: %s\n", indent, order.ShipDate)
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String(), nil
}

// FormatFailures formats the failed lookups of a batch call
func (f *ConsoleFormatter) FormatFailures(failures []petstore.FetchError) string {
	if len(failures) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nFailed lookups (%d):\n", len(failures))
	for i, fe := range failures {
		prefix := "├"
		if i == len(failures)-1 {
			prefix = "╰"
		}
		fmt.Fprintf(&sb, "%s── #%d: %s\n", prefix, fe.ID, failureReason(fe.Err))
	}
	return sb.String()
}

// JSONFormatter renders resources as indented JSON arrays
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatPets encodes pets using their wire representation
func (f *JSONFormatter) FormatPets(pets []*petstore.Pet) (string, error) {
	return encode(pets)
}

// FormatOrders encodes orders using their wire representation
func (f *JSONFormatter) FormatOrders(orders []*petstore.Order) (string, error) {
	return encode(orders)
}

func encode[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode output: %w", err)
	}
	return string(data), nil
}

func writeHeader(sb *strings.Builder, noun string, count int) {
	sb.WriteString("\n" + noun)
	if count != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(sb, " (%d):\n\n", count)
}

// writeBranch writes a tree entry and returns the indent for its details
func writeBranch(sb *strings.Builder, isLast bool, title string) string {
	prefix := "├"
	indent := "│   "
	if isLast {
		prefix = "╰"
		indent = "    "
	}
	fmt.Fprintf(sb, "%s── %s\n", prefix, title)
	return indent
}

func idString(id *int64) string {
	if id == nil {
		return "?"
	}
	return strconv.FormatInt(*id, 10)
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(unnamed)"
	}
	return name
}

func failureReason(err error) string {
	var perr *petstore.Error
	if errors.As(err, &perr) {
		return perr.Message
	}
	return err.Error()
}
