// The kitchen/admin dashboard: a live order board fed by the REST
// snapshot and the real-time channel, reconciled into one list.
package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/yeremiapane/restaurant-client/client"
	"github.com/yeremiapane/restaurant-client/config"
	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/realtime"
	"github.com/yeremiapane/restaurant-client/reconciler"
	"github.com/yeremiapane/restaurant-client/utils"
)

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)

	api := client.New(client.Config{
		BaseURL:       cfg.GatewayBaseURL,
		EnableTracing: cfg.EnableTracing,
		Logger:        utils.InfoLogger,
	})

	list := reconciler.New()
	sub := realtime.NewSubscriber(cfg.GatewayWSURL, realtime.DefaultReconnectPolicy(), utils.InfoLogger)

	apply := func(fn func(models.Order)) func(json.RawMessage) {
		return func(data json.RawMessage) {
			order, err := realtime.DecodeOrder(data)
			if err != nil {
				utils.ErrorLogger.Printf("bad order event: %v", err)
				return
			}
			fn(order)
		}
	}
	sub.Handle(realtime.EventOrderCreated, apply(list.ApplyCreated))
	sub.Handle(realtime.EventOrderUpdated, apply(list.ApplyUpdated))
	sub.Handle(realtime.EventOrderDeleted, apply(func(order models.Order) {
		list.ApplyDeleted(order.ID)
	}))

	program := tea.NewProgram(newModel(api), tea.WithAltScreen())

	list.SetOnChange(func(orders []models.Order) {
		program.Send(ordersMsg(orders))
	})
	sub.OnConnect(func() {
		program.Send(connMsg(true))
	})
	sub.OnDisconnect(func(err error) {
		program.Send(connMsg(false))
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sub.Run(ctx)
	})
	g.Go(func() error {
		// One-time snapshot; a failure leaves the live stream as the
		// only feed rather than killing the dashboard.
		orders, err := api.GetOrders(ctx)
		if err != nil {
			program.Send(noteMsg("could not load existing orders: " + err.Error()))
			return nil
		}
		list.MergeSnapshot(orders)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})

	if err := g.Wait(); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
