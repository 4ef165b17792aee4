package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/petstore/filter"
	"github.com/s0up4200/petstore/petstore"
)

var (
	orderID       int64
	orderPetID    int64
	orderQuantity int32
	orderShipDate string
	orderStatus   string
	orderComplete bool
	orderFilter   string
)

// orderCmd groups the store order subcommands
var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Manage store orders",
}

var orderPlaceCmd = &cobra.Command{
	Use:   "place",
	Short: "Place an order for a pet",
	Long: `Place an order for a pet. Order fields are sent as given; the service
decides whether to accept them.`,
	Example: `  petstore order place --pet-id 1 --quantity 2 --ship-date 2024-05-01T10:00:00.000+0000 --status placed`,
	Args:    cobra.NoArgs,
	RunE:    runOrderPlace,
}

var orderGetCmd = &cobra.Command{
	Use:   "get <id>...",
	Short: "Find purchase orders by ID",
	Long: `Look up one or more orders by ID. Several IDs are fetched concurrently.

The --filter flag takes a named filter from filters.orders in the config file
or an inline expression, for example:

  petstore order get 1 2 3 --filter 'Complete or shippedAfter("2024-01-01")'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOrderGet,
}

var orderDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a purchase order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderDelete,
}

func init() {
	flags := orderPlaceCmd.Flags()
	flags.Int64Var(&orderID, "id", 0, "order ID")
	flags.Int64Var(&orderPetID, "pet-id", 0, "ID of the ordered pet")
	flags.Int32Var(&orderQuantity, "quantity", 0, "quantity")
	flags.StringVar(&orderShipDate, "ship-date", "", "ship date, e.g. 2024-05-01T10:00:00.000+0000")
	flags.StringVar(&orderStatus, "status", "", "status: placed, approved or delivered")
	flags.BoolVar(&orderComplete, "complete", false, "mark the order complete")

	orderGetCmd.Flags().StringVarP(&orderFilter, "filter", "f", "", "named filter or filter expression")

	orderCmd.AddCommand(orderPlaceCmd, orderGetCmd, orderDeleteCmd)
}

// orderFromFlags builds the order described by the place flags. Only flags
// the user set are sent.
func orderFromFlags(cmd *cobra.Command) *petstore.Order {
	flags := cmd.Flags()
	order := &petstore.Order{
		ShipDate: orderShipDate,
		Status:   petstore.OrderStatus(orderStatus),
	}
	if flags.Changed("id") {
		order.ID = petstore.Int64(orderID)
	}
	if flags.Changed("pet-id") {
		order.PetID = petstore.Int64(orderPetID)
	}
	if flags.Changed("quantity") {
		order.Quantity = petstore.Int32(orderQuantity)
	}
	if flags.Changed("complete") {
		order.Complete = petstore.Bool(orderComplete)
	}
	return order
}

func runOrderPlace(cmd *cobra.Command, args []string) error {
	order, err := client.Store().PlaceOrder(cmd.Context(), orderFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("failed to place order: %w", err)
	}
	if order == nil {
		logger.Info().Msg("Placed order, service returned no body")
		return nil
	}
	logger.Info().Int64("id", derefID(order.ID)).Msg("Placed order")
	return printOrders(cmd, []*petstore.Order{order})
}

func runOrderGet(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs("order_id", args)
	if err != nil {
		return err
	}

	var match filter.CompiledFilter[*petstore.Order]
	if orderFilter != "" {
		manager := filter.NewManager[*petstore.Order](filter.NewOrderCompiler(filter.WithCache(len(cfg.Filters.Orders) + 1)))
		if err := manager.RegisterFilters(cfg.Filters.Orders); err != nil {
			return fmt.Errorf("invalid filters.orders: %w", err)
		}
		if match, err = manager.Resolve(orderFilter); err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
	}

	result, err := client.Store().GetMany(cmd.Context(), ids)
	if err != nil {
		return err
	}
	if err := reportFailures(cmd, result.Failed, len(ids)); err != nil {
		return err
	}

	orders := compact(result.Items)
	if match != nil {
		logger.Debug().Str("filter", match.Expression()).Int("candidates", len(orders)).Msg("Applying filter")
		if orders, err = filter.Select(match, orders); err != nil {
			return err
		}
	}
	return printOrders(cmd, orders)
}

func runOrderDelete(cmd *cobra.Command, args []string) error {
	id, err := petstore.ParseID("order_id", args[0])
	if err != nil {
		return err
	}
	if _, err := client.Store().Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}
	logger.Info().Int64("id", id).Msg("Deleted order")
	return nil
}

func printOrders(cmd *cobra.Command, orders []*petstore.Order) error {
	out, err := formatter.FormatOrders(orders)
	if err != nil {
		return err
	}
	printResult(cmd, out)
	return nil
}
