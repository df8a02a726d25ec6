// Package httpapi is the JSON HTTP front end of the store.
package httpapi

import (
	"context"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medistore/internal/admin"
	"medistore/internal/auth"
	"medistore/internal/catalog"
	"medistore/internal/models"
	"medistore/internal/order"
)

// Deps are the services the router dispatches to.
type Deps struct {
	DB          *gorm.DB
	Tokens      *auth.Tokens
	Auth        *auth.Service
	Catalog     *catalog.Service
	Orders      *order.Service
	Admin       *admin.Service
	CORSOrigins []string
}

type api struct {
	Deps
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(d Deps) *gin.Engine {
	a := &api{Deps: d}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	r.GET("/", func(c *gin.Context) {
		ok(c, http.StatusOK, "Welcome to MediStore API", gin.H{
			"status":  "Service is up and running",
			"version": "1.0.0",
		})
	})
	r.GET("/health", a.health)

	authn := Authenticate(d.Tokens)

	ag := r.Group("/auth")
	ag.POST("/register", a.register)
	ag.POST("/login", a.login)
	ag.GET("/me", authn, a.me)

	mg := r.Group("/medicines")
	mg.GET("/categories", a.categories)
	mg.GET("", a.medicines)
	mg.GET("/:id", a.medicine)
	mg.POST("/reviews", authn, a.addReview)

	og := r.Group("/orders", authn)
	og.POST("", a.placeOrder)
	og.GET("", a.myOrders)
	og.GET("/:id", a.getOrder)

	sg := r.Group("/seller", authn, RequireRole(models.RoleSeller, models.RoleAdmin))
	sg.POST("/medicines", a.createMedicine)
	sg.GET("/medicines", a.sellerMedicines)
	sg.PUT("/medicines/:id", a.updateMedicine)
	sg.DELETE("/medicines/:id", a.deleteMedicine)

	adm := r.Group("/admin", authn, RequireRole(models.RoleAdmin))
	adm.GET("/stats", a.stats)
	adm.GET("/users", a.users)
	adm.PATCH("/users/:id", a.updateUserStatus)
	adm.POST("/categories", a.createCategory)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func (a *api) health(c *gin.Context) {
	sqlDB, err := a.DB.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		log.Printf("health: %v", err)
		c.JSON(http.StatusServiceUnavailable, envelope{Message: "Database unavailable", Data: gin.H{"ok": false}})
		return
	}
	ok(c, http.StatusOK, "OK", gin.H{"ok": true})
}
