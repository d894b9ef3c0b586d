// Package mockgateway is an in-process stand-in for the real
// catalog/order backend: the same REST surface, the same response
// envelope, and a websocket hub pushing order lifecycle events. The
// integration tests run against it, and cmd/mockgateway serves it for
// local development of the terminal apps.
package mockgateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type Gateway struct {
	store    *Store
	hub      *Hub
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func New(log *logrus.Logger) *Gateway {
	if log == nil {
		log = logrus.New()
	}
	return &Gateway{
		store: NewStore(),
		hub:   NewHub(log),
		log:   log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Store exposes the backing state for test seeding.
func (g *Gateway) Store() *Store {
	return g.store
}

// Router builds the gin engine with the full REST surface under /api
// and the event channel at /ws.
func (g *Gateway) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/category", g.getCategories)
		api.POST("/category", g.createCategory)
		api.PUT("/category/:category_id", g.updateCategory)
		api.DELETE("/category/:category_id", g.deleteCategory)

		api.GET("/menu", g.getMenus)
		api.GET("/menu/category/:category_id", g.getMenusByCategory)
		api.POST("/menu", g.createMenu)
		api.PUT("/menu/:menu_id", g.updateMenu)
		api.DELETE("/menu/:menu_id", g.deleteMenu)

		api.GET("/order", g.getOrders)
		api.GET("/order/:order_id", g.getOrder)
		api.POST("/order", g.createOrder)
		api.PATCH("/order/:order_id/status", g.updateOrderStatus)
		api.PATCH("/order/:order_id/cancel", g.cancelOrder)
		api.PATCH("/order/:order_id/items/:item_id/quantity", g.updateItemQuantity)
		api.DELETE("/order/:order_id", g.deleteOrder)
	}

	r.GET("/ws", g.handleWS)

	return r
}

// handleWS upgrades the connection and parks it in the hub. The read
// loop only exists to notice the close and to let the websocket
// library answer pings.
func (g *Gateway) handleWS(c *gin.Context) {
	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.log.Errorf("websocket upgrade failed: %v", err)
		return
	}
	g.hub.Register(conn)
	go func() {
		defer g.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
