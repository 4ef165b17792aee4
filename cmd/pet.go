package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/petstore/filter"
	"github.com/s0up4200/petstore/format"
	"github.com/s0up4200/petstore/petstore"
)

var (
	petID        int64
	petName      string
	petPhotoURLs []string
	petTags      []string
	petCategory  string
	petStatus    string
	petFilter    string
)

// petCmd groups the pet subcommands
var petCmd = &cobra.Command{
	Use:   "pet",
	Short: "Manage pets",
}

var petCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Add a new pet to the store",
	Example: `  petstore pet create --name Rex --photo-url https://example.com/rex.jpg --tag friendly --status available`,
	Args:    cobra.NoArgs,
	RunE:    runPetCreate,
}

var petUpdateCmd = &cobra.Command{
	Use:     "update",
	Short:   "Replace an existing pet",
	Example: `  petstore pet update --id 1 --name Rex --photo-url https://example.com/rex.jpg --status sold`,
	Args:    cobra.NoArgs,
	RunE:    runPetUpdate,
}

var petGetCmd = &cobra.Command{
	Use:   "get <id>...",
	Short: "Find pets by ID",
	Long: `Look up one or more pets by ID. Several IDs are fetched concurrently.

The --filter flag takes a named filter from filters.pets in the config file
or an inline expression, for example:

  petstore pet get 1 2 3 --filter 'Status == "available" and hasTag("friendly")'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPetGet,
}

var petDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a pet",
	Args:  cobra.ExactArgs(1),
	RunE:  runPetDelete,
}

func init() {
	for _, c := range []*cobra.Command{petCreateCmd, petUpdateCmd} {
		c.Flags().Int64Var(&petID, "id", 0, "pet ID")
		c.Flags().StringVar(&petName, "name", "", "pet name")
		c.Flags().StringSliceVar(&petPhotoURLs, "photo-url", nil, "photo URL (repeatable)")
		c.Flags().StringSliceVar(&petTags, "tag", nil, "tag name (repeatable)")
		c.Flags().StringVar(&petCategory, "category", "", "category name")
		c.Flags().StringVar(&petStatus, "status", "", "status: available, pending or sold")
	}
	_ = petUpdateCmd.MarkFlagRequired("id")

	petGetCmd.Flags().StringVarP(&petFilter, "filter", "f", "", "named filter or filter expression")

	petCmd.AddCommand(petCreateCmd, petUpdateCmd, petGetCmd, petDeleteCmd)
}

// petFromFlags builds the pet described by the create/update flags
func petFromFlags(cmd *cobra.Command) *petstore.Pet {
	pet := &petstore.Pet{
		Name:      petName,
		PhotoURLs: petPhotoURLs,
		Status:    petstore.PetStatus(petStatus),
	}
	if cmd.Flags().Changed("id") {
		pet.ID = petstore.Int64(petID)
	}
	if petCategory != "" {
		pet.Category = &petstore.Category{Name: petCategory}
	}
	for _, name := range petTags {
		pet.Tags = append(pet.Tags, petstore.Tag{Name: name})
	}
	return pet
}

func runPetCreate(cmd *cobra.Command, args []string) error {
	pet, err := client.Pet().Create(cmd.Context(), petFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}
	if pet == nil {
		logger.Info().Msg("Created pet, service returned no body")
		return nil
	}
	logger.Info().Int64("id", derefID(pet.ID)).Str("name", pet.Name).Msg("Created pet")
	return printPets(cmd, []*petstore.Pet{pet})
}

func runPetUpdate(cmd *cobra.Command, args []string) error {
	pet, err := client.Pet().Update(cmd.Context(), petFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("failed to update pet: %w", err)
	}
	if pet == nil {
		logger.Info().Msg("Updated pet, service returned no body")
		return nil
	}
	logger.Info().Int64("id", derefID(pet.ID)).Msg("Updated pet")
	return printPets(cmd, []*petstore.Pet{pet})
}

func runPetGet(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs("pet_id", args)
	if err != nil {
		return err
	}

	var match filter.CompiledFilter[*petstore.Pet]
	if petFilter != "" {
		manager := filter.NewManager[*petstore.Pet](filter.NewPetCompiler(filter.WithCache(len(cfg.Filters.Pets) + 1)))
		if err := manager.RegisterFilters(cfg.Filters.Pets); err != nil {
			return fmt.Errorf("invalid filters.pets: %w", err)
		}
		if match, err = manager.Resolve(petFilter); err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
	}

	result, err := client.Pet().GetMany(cmd.Context(), ids)
	if err != nil {
		return err
	}
	if err := reportFailures(cmd, result.Failed, len(ids)); err != nil {
		return err
	}

	pets := compact(result.Items)
	if match != nil {
		logger.Debug().Str("filter", match.Expression()).Int("candidates", len(pets)).Msg("Applying filter")
		if pets, err = filter.Select(match, pets); err != nil {
			return err
		}
	}
	return printPets(cmd, pets)
}

func runPetDelete(cmd *cobra.Command, args []string) error {
	id, err := petstore.ParseID("pet_id", args[0])
	if err != nil {
		return err
	}
	if _, err := client.Pet().Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete pet %d: %w", id, err)
	}
	logger.Info().Int64("id", id).Msg("Deleted pet")
	return nil
}

func printPets(cmd *cobra.Command, pets []*petstore.Pet) error {
	out, err := formatter.FormatPets(pets)
	if err != nil {
		return err
	}
	printResult(cmd, out)
	return nil
}

// parseIDs parses positional ID arguments
func parseIDs(field string, args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := petstore.ParseID(field, arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// reportFailures prints failed lookups of a batch to stderr. A single failed
// lookup, or a batch where every lookup failed, is returned as an error.
func reportFailures(cmd *cobra.Command, failed []petstore.FetchError, requested int) error {
	if len(failed) == 0 {
		return nil
	}
	if requested == 1 {
		return failed[0].Err
	}
	fmt.Fprint(cmd.ErrOrStderr(), format.NewConsoleFormatter().FormatFailures(failed))
	if len(failed) == requested {
		return fmt.Errorf("all %d lookups failed", requested)
	}
	logger.Warn().Int("failed", len(failed)).Int("requested", requested).Msg("Some lookups failed")
	return nil
}

// compact drops the nil entries a batch leaves for failed or empty lookups
func compact[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
