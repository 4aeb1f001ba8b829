package routes

import (
	"net/http"
	"time"

	"github.com/01moynul/artstudio-golang/internal/auth"
	"github.com/01moynul/artstudio-golang/internal/handlers"
	"github.com/01moynul/artstudio-golang/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options carries the router settings that do not belong to the handlers.
type Options struct {
	AllowedOrigins []string
	Tokens         *auth.Tokens
	SessionTTL     time.Duration
	SecureCookies  bool
	UploadDir      string
}

// corsConfig lets the storefront send the session cookie and read the session header.
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AddAllowHeaders("Authorization", "Accept", "Cache-Control", "X-Requested-With")
	cfg.AddExposeHeaders(middleware.SessionHeader)
	cfg.MaxAge = 12 * time.Hour
	return cfg
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	router := gin.Default()

	// --- CORS must run before anything else ---
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	}

	// --- Uploaded media ---
	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}

	v1 := router.Group("/v1")
	{
		// --- Ping Route (no session) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		site := v1.Group("/")
		site.Use(middleware.SessionMiddleware(opts.Tokens, opts.SessionTTL, opts.SecureCookies))
		{
			// --- Gallery ---
			site.GET("/artworks", h.ListArtworks)
			site.GET("/artworks/:id", h.GetArtwork)
			site.GET("/categories", h.GetCategories)

			// --- Cart ---
			site.GET("/cart", h.GetCart)
			site.POST("/cart/items", h.AddToCart)
			site.PUT("/cart/items/:id", h.UpdateCartItem)
			site.DELETE("/cart/items/:id", h.DeleteCartItem)
			site.DELETE("/cart", h.ClearCart)
			site.POST("/checkout", h.Checkout)

			// --- Account ---
			site.POST("/auth/login", h.Login)
			site.POST("/auth/register", h.Register)
			site.POST("/auth/logout", h.Logout)
			site.GET("/account", h.GetAccount)
			site.PATCH("/account", h.UpdateAccount)

			// --- Contact ---
			site.GET("/contact/prefill", h.PrefillContact)
			site.POST("/contact", h.SubmitContact)

			// --- Admin Routes ---
			admin := site.Group("/admin")
			admin.Use(middleware.AdminMiddleware(h.Sessions))
			{
				admin.GET("/dashboard", h.GetDashboardStats)
				admin.GET("/artworks/stats", h.ArtworkStats)
				admin.POST("/artworks", h.CreateArtwork)
				admin.PUT("/artworks/:id", h.UpdateArtwork)
				admin.DELETE("/artworks/:id", h.DeleteArtwork)
				admin.DELETE("/artworks", h.ClearArtworks)
				admin.POST("/artworks/:id/describe", h.DescribeArtwork)
				admin.POST("/uploads", h.UploadMedia)
			}
		}
	}

	return router
}
