package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"

	"github.com/yeremiapane/restaurant-client/config"
	"github.com/yeremiapane/restaurant-client/mockgateway"
	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/utils"
)

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)

	port := pflag.String("port", cfg.Port, "port to listen on")
	seed := pflag.Bool("seed", true, "seed a demo menu on startup")
	pflag.Parse()

	gin.SetMode(gin.ReleaseMode)
	gateway := mockgateway.New(utils.InfoLogger)
	if *seed {
		seedCatalog(gateway.Store())
	}

	utils.InfoLogger.Printf("mock gateway listening on :%s", *port)
	if err := gateway.Router().Run(":" + *port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

// seedCatalog loads a small menu so the terminal apps have something to
// browse out of the box.
func seedCatalog(store *mockgateway.Store) {
	appetizers := store.CreateCategory(models.CategoryRequest{Name: "Appetizers"})
	mains := store.CreateCategory(models.CategoryRequest{Name: "Mains"})
	drinks := store.CreateCategory(models.CategoryRequest{Name: "Drinks", Description: "Cold and hot drinks"})

	menus := []models.MenuRequest{
		{Name: "Guacamole", Description: "Fresh avocado dip with totopos", Price: 5.50, CategoryID: appetizers.ID, Available: true, PreparationTime: 5},
		{Name: "Chicken Tacos", Description: "Three tacos with grilled chicken", Price: 10.99, CategoryID: mains.ID, Available: true, PreparationTime: 15, SpicyLevel: 2},
		{Name: "Beef Burrito", Description: "Slow-cooked beef, rice and beans", Price: 12.50, CategoryID: mains.ID, Available: true, PreparationTime: 12, SpicyLevel: 1, Allergens: []string{"gluten"}},
		{Name: "Horchata", Description: "Rice and cinnamon drink", Price: 3.25, CategoryID: drinks.ID, Available: true},
	}
	for _, req := range menus {
		if _, err := store.CreateMenu(req); err != nil {
			utils.ErrorLogger.Printf("seed menu %q: %v", req.Name, err)
		}
	}
}
