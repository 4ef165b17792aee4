// Package petstore provides a typed client for the Swagger pet-store REST API.
//
// The package covers the pet and order resources: creating, updating,
// fetching and deleting pets, and placing, fetching and deleting orders.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Configuration: base URL, API key and the two timeouts
//   - Client: validates the configuration once and exposes the APIs
//   - PetAPI / StoreAPI: one method per endpoint, with local input checks
//   - Models: Pet, Order, Category, Tag and APIResponse with their wire mapping
//   - Errors: a single Error type classified by ErrorKind
//
// # Usage
//
//	client, err := petstore.Configure(func(c *petstore.Configuration) {
//		c.APIKey = "special-key"
//		c.Timeout = 30 * time.Second
//	}, petstore.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	pet, err := client.Pet().Create(ctx, &petstore.Pet{
//		Name:      "Rex",
//		PhotoURLs: []string{"https://example.com/rex.jpg"},
//		Status:    petstore.PetStatusAvailable,
//	})
//
// # Wire format
//
// Fields are sent under their camelCase wire names (photoUrls, petId,
// shipDate). Unset optional fields are omitted rather than sent as null,
// while photoUrls and tags are always present. Decoding also accepts the
// snake_case spellings photo_urls, pet_id and ship_date.
//
// # Error Handling
//
// Every failure is an *Error. Its Kind tells where the call stopped:
//
//   - KindValidation: a local check failed and no request was sent
//   - KindConnection: no response arrived (refused, reset, timed out)
//   - KindNotFound: HTTP 404
//   - KindInvalidRequest: HTTP 400 or 405
//   - KindAPI: any other non-2xx status
//
// The predicates IsValidation, IsConnection, IsNotFound, IsInvalidRequest and
// IsAPIError work through wrapped errors:
//
//	pet, err := client.Pet().GetByID(ctx, 42)
//	if petstore.IsNotFound(err) {
//		// Handle missing pet
//	}
//
// No call is retried.
package petstore
