package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"theatre-box-office/internal/config"
	"theatre-box-office/internal/models"
	"theatre-box-office/internal/storefront"
	"theatre-box-office/internal/ticketing"
)

// addFlags collects repeated -add id:qty[:c] values
type addFlags []ticketing.AddTicketRequest

func (a *addFlags) String() string { return fmt.Sprint(len(*a)) }

func (a *addFlags) Set(value string) error {
	req, err := parseAdd(value)
	if err != nil {
		return err
	}
	*a = append(*a, req)
	return nil
}

func parseAdd(value string) (ticketing.AddTicketRequest, error) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return ticketing.AddTicketRequest{}, errors.New("expected id:qty or id:qty:c")
	}

	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return ticketing.AddTicketRequest{}, fmt.Errorf("bad ticket id %q", parts[0])
	}
	qty, err := strconv.Atoi(parts[1])
	if err != nil {
		return ticketing.AddTicketRequest{}, fmt.Errorf("bad quantity %q", parts[1])
	}

	req := ticketing.AddTicketRequest{ID: id, Qty: qty}
	if len(parts) == 3 {
		if parts[2] != "c" {
			return ticketing.AddTicketRequest{}, fmt.Errorf("unknown option %q", parts[2])
		}
		req.Concessions = true
	}
	return req, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var adds addFlags
	apiURL := flag.String("api", cfg.Storefront.APIBaseURL, "Box office API base URL")
	checkout := flag.Bool("checkout", false, "Create a checkout session for the cart")
	flag.Var(&adds, "add", "Add tickets as id:qty or id:qty:c (with concessions); repeatable")
	flag.Parse()

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	shop := storefront.New(storefront.NewClient(*apiURL, cfg.Storefront.FetchTimeout), logger)

	if err := shop.Load(ctx); err != nil {
		if shop.Status() == models.StatusFailed {
			log.Fatalf("Failed to load catalog: %v", err)
		}
		log.Printf("Catalog partially loaded: %v", err)
	}

	printCatalog(shop.State())

	for _, req := range adds {
		if err := shop.AddToCart(req); err != nil {
			log.Fatalf("Failed to add ticket %d: %v", req.ID, err)
		}
	}

	cart := shop.Cart()
	if len(cart) == 0 {
		return
	}
	printCart(cart)

	if *checkout {
		session, err := shop.Checkout(ctx)
		if err != nil {
			log.Fatalf("Checkout failed: %v", err)
		}
		fmt.Printf("\nCheckout session %s\n", session.ID)
		if session.URL != "" {
			fmt.Printf("Pay at: %s\n", session.URL)
		}
	}
}

func printCatalog(state ticketing.State) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	for _, play := range state.Plays {
		fmt.Fprintf(w, "%s\n", play.Title)
		detail, _ := ticketing.PlayData(state, play.ID)
		for _, t := range detail.Tickets {
			when := "date unknown"
			if !t.Date.IsZero() {
				when = ticketing.DayMonthDate(t.Date) + " " + t.Date.Format("3:04 PM")
			}
			fmt.Fprintf(w, "  #%d\t%s\t%s\t$%s\t(+$%s concessions)\n",
				t.EventID, when, t.AdmissionType, t.TicketPrice.StringFixed(2), t.ConcessionPrice.StringFixed(2))
		}
	}
}

func printCart(cart []models.CartItem) {
	fmt.Println("\nCart:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, item := range cart {
		fmt.Fprintf(w, "  %d x\t%s\t%s\t$%s\n", item.Qty, item.Name, item.Desc, item.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(w, "  \tTotal\t\t$%s\n", ticketing.CartTotal(cart).StringFixed(2))
	w.Flush()
}
