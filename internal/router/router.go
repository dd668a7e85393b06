package router

import (
	"net/http"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/handlers"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Deps struct {
	Orders   *handlers.OrderHandler
	Checkout *handlers.CheckoutHandler

	// Auth nil: вход администратора выключен, токены выпускает cmd/admintoken.
	Auth   *handlers.AuthHandler
	Tokens middleware.TokenParser

	// Ready проверяет зависимости для /health; nil: всегда ok.
	Ready func() error
}

func Router(d Deps, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		if d.Ready != nil {
			if err := d.Ready(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	admin := middleware.AdminRequired(d.Tokens, log)

	v1 := r.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		orders.POST("", d.Orders.CreateOrder)
		orders.GET("", admin, d.Orders.ListOrders)
		orders.PATCH("/:id", admin, d.Orders.UpdateStatus)
		orders.GET("/track/:tracking_id", d.Orders.TrackOrder)
		orders.GET("/track/:tracking_id/watch", d.Orders.WatchOrder)

		if d.Auth != nil {
			v1.POST("/admin/login", d.Auth.Login)
		}

		v1.GET("/promo-codes/:code/validate", d.Orders.ValidatePromo)
		v1.GET("/reference/districts", d.Orders.Districts)

		co := v1.Group("/checkout")
		co.POST("/quote", d.Orders.Quote)
		co.POST("/sessions", d.Checkout.StartSession)
		co.GET("/sessions/:id", d.Checkout.GetSession)
		co.PUT("/sessions/:id", d.Checkout.UpdateSession)
		co.DELETE("/sessions/:id", d.Checkout.CancelSession)
		co.GET("/sessions/:id/quote", d.Checkout.SessionQuote)
		co.POST("/sessions/:id/steps/:step/validate", d.Checkout.ValidateStep)
		co.POST("/sessions/:id/submit", d.Checkout.Submit)
	}

	return r
}
