package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"theatre-box-office/internal/config"
	"theatre-box-office/internal/database"
	"theatre-box-office/internal/models"
	"theatre-box-office/internal/repositories"
)

type seedSlot struct {
	daysOut    int
	start      string
	admission  string
	price      string
	concession string
	available  int
}

type seedPlay struct {
	play  models.Play
	slots []seedSlot
}

var catalog = []seedPlay{
	{
		play: models.Play{
			Title:       "Hamlet",
			Description: "The Prince of Denmark returns from university to find his father dead and his uncle on the throne.",
		},
		slots: []seedSlot{
			{daysOut: 7, start: "19:30:00", admission: "General Admission", price: "7.99", concession: "2.00", available: 120},
			{daysOut: 8, start: "14:00:00", admission: "Matinee", price: "5.00", concession: "1.50", available: 80},
		},
	},
	{
		play: models.Play{
			Title:       "Macbeth",
			Description: "A Scottish general, three witches and a prophecy that will not wait.",
		},
		slots: []seedSlot{
			{daysOut: 14, start: "20:00:00", admission: "General Admission", price: "12.50", concession: "2.50", available: 100},
			{daysOut: 14, start: "20:00:00", admission: "Balcony", price: "18.00", concession: "2.50", available: 30},
		},
	},
	{
		play: models.Play{
			Title:       "The Tempest",
			Description: "Prospero conjures a storm, and an island full of noises answers.",
		},
		slots: []seedSlot{
			{daysOut: 21, start: "19:00:00", admission: "Pay What You Can", price: "0.00", concession: "3.00", available: 60},
		},
	},
}

var guests = []repositories.DoorListEntry{
	{CustomerID: 1001, Name: "Ada Lovelace", VIP: true, NumTickets: 2},
	{CustomerID: 1002, Name: "Charles Babbage", DonorBadge: true, NumTickets: 1},
	{CustomerID: 1003, Name: "Grace Hopper", SeatingAccom: true, NumTickets: 3},
}

func main() {
	withDoorList := flag.Bool("doorlist", true, "Also seed door list entries for the first slot")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	ctx := context.Background()
	db, err := database.NewConnection(ctx, database.FromConfig(cfg.Database))
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	catalogRepo := repositories.NewCatalogRepository(db.DB)
	doorListRepo := repositories.NewDoorListRepository(db.DB)

	today := time.Now()
	firstSlot := 0

	for _, entry := range catalog {
		play := entry.play
		if err := catalogRepo.CreatePlay(ctx, &play); err != nil {
			log.Fatalf("Failed to create play %q: %v", play.Title, err)
		}
		fmt.Printf("Created play %d: %s\n", play.ID, play.Title)

		for _, slot := range entry.slots {
			ticket := models.Ticket{
				PlayID:          play.ID,
				EventDate:       today.AddDate(0, 0, slot.daysOut).Format("2006-01-02"),
				StartTime:       slot.start,
				AdmissionType:   slot.admission,
				TicketPrice:     decimal.RequireFromString(slot.price),
				ConcessionPrice: decimal.RequireFromString(slot.concession),
				Available:       slot.available,
			}
			if err := catalogRepo.CreateTicket(ctx, &ticket); err != nil {
				log.Fatalf("Failed to create ticket for %q: %v", play.Title, err)
			}
			if firstSlot == 0 {
				firstSlot = ticket.EventID
			}
			fmt.Printf("  slot %d: %s %s %s @ %s\n",
				ticket.EventID, ticket.EventDate, ticket.StartTime, ticket.AdmissionType, ticket.TicketPrice)
		}
	}

	if *withDoorList && firstSlot != 0 {
		for _, guest := range guests {
			guest.EventID = firstSlot
			if err := doorListRepo.Add(ctx, guest); err != nil {
				log.Fatalf("Failed to seed door list: %v", err)
			}
		}
		fmt.Printf("Added %d parties to the door list for slot %d\n", len(guests), firstSlot)
	}

	fmt.Println("Catalog seeded successfully!")
}
