package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Obiagu00/CampusConnectNG/internal/assistant"
	"github.com/Obiagu00/CampusConnectNG/internal/config"
	"github.com/Obiagu00/CampusConnectNG/internal/seed"
	"github.com/Obiagu00/CampusConnectNG/internal/services"
	"github.com/Obiagu00/CampusConnectNG/internal/store"
)

// app bundles the wired core; an embedding front-end drives it through these
// interfaces.
type app struct {
	users         services.IUserService
	products      services.IProductService
	conversations services.IConversationService
	views         services.IViewService
	assistant     assistant.IAssistant
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The store is the single owner of all application state. It lives for
	// the process lifetime; nothing is persisted across restarts.
	st := store.New()
	seed.Apply(st)

	views := services.NewViewService(st)
	a := &app{
		users:         services.NewUserService(st, views),
		products:      services.NewProductService(st),
		conversations: services.NewConversationService(st, cfg.ReplyDelay),
		views:         views,
		assistant:     assistant.NewGeminiAssistant(cfg),
	}

	ctx := context.Background()
	fmt.Printf("%s core ready: %d products, %d categories, view %q\n",
		cfg.AppName,
		len(a.products.Products(ctx)),
		len(a.products.Categories(ctx))-1, // minus the "All" sentinel
		a.views.State(ctx).Active)

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	fmt.Printf("\nReceived signal: %s. Shutting down gracefully...\n", sig)

	// Cancel any simulated seller replies still waiting to fire.
	a.conversations.Stop()

	fmt.Println("Server gracefully stopped")
}
