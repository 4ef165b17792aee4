package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/petstore/petstore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		want    Formatter
		wantErr bool
	}{
		{format: "", want: &ConsoleFormatter{}},
		{format: "table", want: &ConsoleFormatter{}},
		{format: "json", want: &JSONFormatter{}},
		{format: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := New(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
		})
	}
}

func TestConsoleFormatPets(t *testing.T) {
	f := NewConsoleFormatter()

	out, err := f.FormatPets(nil)
	require.NoError(t, err)
	assert.Equal(t, "No pets found", out)

	out, err = f.FormatPets([]*petstore.Pet{
		{
			ID:        petstore.Int64(1),
			Name:      "Rex",
			Category:  &petstore.Category{Name: "Dogs"},
			PhotoURLs: []string{"https://example.com/rex.jpg"},
			Tags:      []petstore.Tag{{Name: "friendly"}, {Name: "large"}},
			Status:    petstore.PetStatusAvailable,
		},
		{Name: "  "},
	})
	require.NoError(t, err)

	expected := "\nPets (2):\n\n" +
		"├── Rex (#1)\n" +
		"│   Status: available\n" +
		"│   Category: Dogs\n" +
		"│   Tags: friendly, large\n" +
		"│   Photo: https://example.com/rex.jpg\n" +
		"│\n" +
		"╰── (unnamed) (#?)\n" +
		"\n"
	assert.Equal(t, expected, out)
}

func TestConsoleFormatOrders(t *testing.T) {
	out, err := NewConsoleFormatter().FormatOrders([]*petstore.Order{
		{
			ID:       petstore.Int64(3),
			PetID:    petstore.Int64(7),
			Quantity: petstore.Int32(2),
			ShipDate: "2024-05-01T10:00:00.000+0000",
			Status:   petstore.OrderStatusDelivered,
			Complete: petstore.Bool(true),
		},
	})
	require.NoError(t, err)

	expected := "\nOrder (1):\n\n" +
		"╰── Order #3\n" +
		"    Pet: #7 | Quantity: 2\n" +
		"    Status: delivered (complete)\n" +
		"    Ship date: 2024-05-01T10:00:00.000+0000\n" +
		"\n"
	assert.Equal(t, expected, out)
}

func TestConsoleFormatFailures(t *testing.T) {
	f := NewConsoleFormatter()
	assert.Empty(t, f.FormatFailures(nil))

	out := f.FormatFailures([]petstore.FetchError{
		{ID: 4, Err: &petstore.Error{Kind: petstore.KindNotFound, StatusCode: 404, Message: "Pet not found"}},
		{ID: 5, Err: errors.New("boom")},
	})
	assert.Equal(t, "\nFailed lookups (2):\n├── #4: Pet not found\n╰── #5: boom\n", out)
}

func TestJSONFormatter(t *testing.T) {
	f := NewJSONFormatter()

	out, err := f.FormatPets(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	out, err = f.FormatPets([]*petstore.Pet{{ID: petstore.Int64(1), Name: "Rex"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"Rex","photoUrls":[],"tags":[]}]`, out)

	out, err = f.FormatOrders([]*petstore.Order{{ID: petstore.Int64(2), PetID: petstore.Int64(1)}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":2,"petId":1}]`, out)
}
