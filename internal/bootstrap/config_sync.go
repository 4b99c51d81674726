package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
	"github.com/osse101/CoffeePOS_Go/internal/utils"
	"github.com/osse101/CoffeePOS_Go/internal/validation"
)

// SeedIngredient is an ingredient with its opening stock
type SeedIngredient struct {
	Name  domain.IngredientName `json:"name"`
	Stock int                   `json:"stock"`
}

// SeedConfig is the on-disk menu seed
type SeedConfig struct {
	Ingredients []SeedIngredient `json:"ingredients"`
	Recipes     []domain.Recipe  `json:"recipes"`
}

// SeedResult counts what a sync changed
type SeedResult struct {
	IngredientsInserted int
	IngredientsSkipped  int
	RecipesInserted     int
	RecipesSkipped      int
}

func (r SeedResult) changed() bool {
	return r.IngredientsInserted > 0 || r.RecipesInserted > 0
}

// seedCaller performs seed writes with manager rights
func seedCaller() domain.Caller {
	return domain.Caller{Name: SeedCallerName, Role: domain.RoleManager, Authenticated: true}
}

// SyncSeed validates the seed file against its schema and adds whatever is
// missing: new ingredients with their opening stock, then new recipes.
// Entries that already exist are left alone, so running it again is a no-op
// and never overwrites stock counted since.
func SyncSeed(ctx context.Context, app *App, path string) (SeedResult, error) {
	var result SeedResult
	slog.Info(LogMsgSyncingSeed, "path", path)

	if err := validation.NewSchemaValidator().ValidateFile(path, validation.SchemaSeed); err != nil {
		return result, fmt.Errorf("%s: %w", ErrMsgInvalidSeed, err)
	}
	var seed SeedConfig
	if err := utils.LoadJSON(path, &seed); err != nil {
		return result, fmt.Errorf("%s: %w", ErrMsgFailedLoadSeed, err)
	}

	ctx = logger.WithCallerName(ctx, SeedCallerName)
	caller := seedCaller()

	for _, ing := range seed.Ingredients {
		_, err := app.Catalog.Create(ctx, caller, ing.Name, ing.Stock)
		switch {
		case err == nil:
			result.IngredientsInserted++
		case errors.Is(err, domain.ErrConflict):
			result.IngredientsSkipped++
		default:
			return result, fmt.Errorf("%s: ingredient %q: %w", ErrMsgFailedApplySeed, ing.Name, err)
		}
	}

	for _, r := range seed.Recipes {
		if _, err := app.Book.FindByName(r.Name); err == nil {
			result.RecipesSkipped++
			continue
		}
		if _, err := app.Book.Create(ctx, caller, r); err != nil {
			if errors.Is(err, domain.ErrIngredientNotFound) {
				return result, fmt.Errorf("%s: recipe %q: %s: %w", ErrMsgFailedApplySeed, r.Name, ErrMsgSeedUnknownRecipe, err)
			}
			return result, fmt.Errorf("%s: recipe %q: %w", ErrMsgFailedApplySeed, r.Name, err)
		}
		result.RecipesInserted++
	}

	if result.changed() {
		slog.Info(LogMsgSeedSynced,
			"ingredients_inserted", result.IngredientsInserted,
			"ingredients_skipped", result.IngredientsSkipped,
			"recipes_inserted", result.RecipesInserted,
			"recipes_skipped", result.RecipesSkipped)
	} else {
		slog.Info(LogMsgSeedUnchanged)
	}
	return result, nil
}
