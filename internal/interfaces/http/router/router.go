package router

import (
	"github.com/gin-gonic/gin"

	"github.com/growthfolio/next-comic-store/internal/interfaces/http/handler"
	"github.com/growthfolio/next-comic-store/internal/interfaces/http/middleware"
)

type Handlers struct {
	Orders   *handler.OrderHandler
	Payments *handler.PaymentHandler
	Products *handler.ProductHandler
	Auth     *handler.AuthHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	orders := r.Group("/orders")
	{
		orders.POST("", h.Orders.CreateOrder)
		orders.GET("", h.Orders.ListOrders)
		orders.GET("/:id", h.Orders.GetOrder)
		orders.PATCH("/:id/status", h.Orders.UpdateStatus)
	}

	payment := r.Group("/payment")
	{
		payment.POST("/confirm", h.Payments.Confirm)
		payment.POST("/create-session", h.Payments.CreateSession)
	}
	r.POST("/webhooks/payment", h.Payments.Webhook)

	products := r.Group("/products")
	{
		products.GET("", h.Products.List)
		products.GET("/:id", h.Products.Get)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
	}

	r.GET("/metrics", gin.WrapH(middleware.Exporter()))
}
