// Command debug prints the persisted state of the configured store (stock,
// recipes, orders) and any order events stuck in the dead-letter file.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/osse101/CoffeePOS_Go/internal/bootstrap"
	"github.com/osse101/CoffeePOS_Go/internal/config"
	"github.com/osse101/CoffeePOS_Go/internal/event"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// keep the dump free of bootstrap side effects
	cfg.BootstrapManagerName, cfg.BootstrapManagerPassword = "", ""

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	app, err := bootstrap.Assemble(ctx, cfg, store)
	if err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}

	fmt.Println("--- Inventory ---")
	fmt.Print(app.Ledger.Render())

	fmt.Println("\n--- Recipes ---")
	for _, r := range app.Book.ListAll() {
		fmt.Printf("%s (%d):", r.Name, r.Price)
		for _, name := range r.Requirements.Names() {
			fmt.Printf(" %s x%d", name, r.Requirements[name])
		}
		fmt.Println()
	}

	fmt.Println("\n--- Orders ---")
	orders, err := store.ListOrders(ctx, "")
	if err != nil {
		log.Fatalf("Failed to list orders: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCUSTOMER\tRECIPE\tPRICE\tCOMPLETE\tPICKED UP")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%t\t%t\n", o.ID, o.CustomerName, o.RecipeName, o.Price, o.Complete, o.PickedUp)
	}
	_ = w.Flush()

	letters, err := event.ReadDeadLetters(cfg.EventDeadLetterPath)
	if err != nil {
		log.Fatalf("Failed to read dead letters: %v", err)
	}
	if len(letters) == 0 {
		return
	}
	fmt.Printf("\n--- Undelivered events (%s) ---\n", cfg.EventDeadLetterPath)
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTYPE\tATTEMPTS\tLAST ERROR")
	for _, l := range letters {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", l.Timestamp.Format(time.RFC3339), l.Event.Type, l.Attempts, l.LastError)
	}
	_ = w.Flush()
}
