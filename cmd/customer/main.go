// The customer app: browse the menu, build a cart, check out, and
// follow the order live until it reaches a terminal status.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/yeremiapane/restaurant-client/cart"
	"github.com/yeremiapane/restaurant-client/client"
	"github.com/yeremiapane/restaurant-client/config"
	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/realtime"
	"github.com/yeremiapane/restaurant-client/utils"
)

const usage = `Usage:
  customer categories                 list categories
  customer menu [--category id]      list menu items
  customer order --item id=qty ...   place an order from the given items
  customer follow <order-id>         follow an order until done
`

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)

	api := client.New(client.Config{
		BaseURL:       cfg.GatewayBaseURL,
		EnableTracing: cfg.EnableTracing,
		Logger:        utils.InfoLogger,
	})

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "categories":
		err = runCategories(ctx, api)
	case "menu":
		err = runMenu(ctx, api, os.Args[2:])
	case "order":
		err = runOrder(ctx, api, cfg, os.Args[2:])
	case "follow":
		if len(os.Args) < 3 {
			fmt.Print(usage)
			os.Exit(2)
		}
		err = followOrder(ctx, api, cfg, os.Args[2])
	default:
		fmt.Print(usage)
		os.Exit(2)
	}
	if err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func runCategories(ctx context.Context, api *client.Client) error {
	categories, err := api.GetCategories(ctx)
	if err != nil {
		return err
	}
	for _, category := range categories {
		fmt.Printf("%s  %s", category.ID, category.Name)
		if category.Description != "" {
			fmt.Printf("  (%s)", category.Description)
		}
		fmt.Println()
	}
	return nil
}

func runMenu(ctx context.Context, api *client.Client, args []string) error {
	flags := pflag.NewFlagSet("menu", pflag.ExitOnError)
	categoryID := flags.String("category", "", "only show items in this category")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var menus []models.Menu
	var err error
	if *categoryID != "" {
		menus, err = api.GetMenusByCategory(ctx, *categoryID)
	} else {
		menus, err = api.GetMenus(ctx)
	}
	if err != nil {
		return err
	}

	for _, menu := range menus {
		availability := ""
		if !menu.Available {
			availability = "  [unavailable]"
		}
		fmt.Printf("%s  %-24s %10s  %s%s\n",
			menu.ID, menu.Name, utils.FormatPrice(menu.Price), menu.Category.Name, availability)
	}
	return nil
}

func runOrder(ctx context.Context, api *client.Client, cfg *config.Config, args []string) error {
	flags := pflag.NewFlagSet("order", pflag.ExitOnError)
	items := flags.StringArray("item", nil, "menu item to order, as id=quantity (repeatable)")
	name := flags.String("name", "", "customer name")
	email := flags.String("email", "", "customer email")
	phone := flags.String("phone", "", "customer phone")
	address := flags.String("address", "", "delivery address")
	notes := flags.String("notes", "", "order notes")
	follow := flags.Bool("follow", false, "follow the order after checkout")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if len(*items) == 0 {
		return fmt.Errorf("at least one --item id=qty is required")
	}

	menus, err := api.GetMenus(ctx)
	if err != nil {
		return err
	}
	byID := make(map[string]models.Menu, len(menus))
	for _, menu := range menus {
		byID[menu.ID] = menu
	}

	basket := cart.New()
	for _, spec := range *items {
		menuID, quantity, err := parseItem(spec)
		if err != nil {
			return err
		}
		menu, ok := byID[menuID]
		if !ok {
			return fmt.Errorf("unknown menu item %q", menuID)
		}
		basket.AddItem(menu, quantity)
	}

	for _, line := range basket.Lines() {
		fmt.Printf("%3d x %-24s %10s\n", line.Quantity, line.Menu.Name,
			utils.FormatPrice(line.Menu.Price*float64(line.Quantity)))
	}
	fmt.Printf("      %-24s %10s\n", "total", utils.FormatPrice(basket.Total()))

	info := models.CustomerInfo{
		Name:    *name,
		Email:   *email,
		Phone:   *phone,
		Address: *address,
		Notes:   *notes,
	}
	order, err := api.CreateOrder(ctx, basket.ToOrderRequest(info))
	if err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}
	basket.Clear()

	fmt.Printf("\norder %s placed, status %s\n", order.ID, order.Status)
	if *follow {
		return followOrder(ctx, api, cfg, order.ID)
	}
	return nil
}

// followOrder subscribes to the event channel filtered to one order and
// prints each status change until the order is terminal. The initial
// REST fetch and the subscription race freely; printing is keyed off
// the latest status seen, whichever side delivers it first.
func followOrder(ctx context.Context, api *client.Client, cfg *config.Config, orderID string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates := make(chan models.Order, 16)
	sub := realtime.NewSubscriber(cfg.GatewayWSURL, realtime.DefaultReconnectPolicy(), utils.InfoLogger)
	forward := func(data json.RawMessage) {
		order, err := realtime.DecodeOrder(data)
		if err != nil {
			utils.ErrorLogger.Printf("bad order event: %v", err)
			return
		}
		if order.ID == orderID {
			select {
			case updates <- order:
			case <-ctx.Done():
			}
		}
	}
	sub.Handle(realtime.EventOrderCreated, forward)
	sub.Handle(realtime.EventOrderUpdated, forward)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sub.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()

		lastStatus := models.OrderStatus("")
		report := func(order models.Order) bool {
			if order.Status == lastStatus {
				return order.Status.IsTerminal()
			}
			lastStatus = order.Status
			fmt.Printf("order %s: %s\n", order.ID, order.Status)
			return order.Status.IsTerminal()
		}

		// Snapshot after subscribing, so nothing between the two is lost.
		if order, err := api.GetOrder(ctx, orderID); err == nil {
			if report(order) {
				return nil
			}
		} else {
			utils.ErrorLogger.Printf("could not fetch order %s: %v", orderID, err)
		}

		for {
			select {
			case order := <-updates:
				if report(order) {
					return nil
				}
			case <-ctx.Done():
				return nil
			}
		}
	})
	return g.Wait()
}

func parseItem(spec string) (string, int, error) {
	parts := strings.SplitN(spec, "=", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("invalid --item %q, expected id=quantity", spec)
	}
	quantity, err := strconv.Atoi(parts[1])
	if err != nil || quantity < 1 {
		return "", 0, fmt.Errorf("invalid quantity in --item %q", spec)
	}
	return parts[0], quantity, nil
}
