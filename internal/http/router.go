package api

import (
	"log"
	stdhttp "net/http"

	"marketplace/internal/auth"
	intconfig "marketplace/internal/config"
	"marketplace/internal/domain/models"
	h "marketplace/internal/http/handlers"
	"marketplace/internal/http/middleware"
	"marketplace/internal/repositories"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.AllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"message": "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	tokens := auth.NewTokenManager([]byte(env.JWTSecret), env.TokenTTL)
	hasher := auth.NewArgon2Hasher()

	users := repositories.UsersRepository{DB: intconfig.DB}
	sellers := repositories.SellersRepository{DB: intconfig.DB}
	products := repositories.ProductsRepository{DB: intconfig.DB}
	categories := repositories.CategoriesRepository{DB: intconfig.DB}
	wishlist := repositories.WishlistRepository{DB: intconfig.DB}
	orders := repositories.OrdersRepository{DB: intconfig.DB}
	messages := repositories.MessagesRepository{DB: intconfig.DB}

	authHandler := h.AuthHandler{Users: users, Hasher: hasher, Tokens: tokens}
	usersHandler := h.UsersHandler{Users: users}
	sellersHandler := h.SellersHandler{Sellers: sellers, Users: users, ProductsRepo: products}
	productsHandler := h.ProductsHandler{Products: products, Categories: categories}
	categoriesHandler := h.CategoriesHandler{Categories: categories, Products: products}
	wishlistHandler := h.WishlistHandler{Wishlist: wishlist, Products: products}
	ordersHandler := h.OrdersHandler{Orders: orders, Products: products}
	messagesHandler := h.MessagesHandler{Messages: messages, Sellers: sellers, Products: products}

	// Guard building blocks. Routes compose them cheapest-first:
	// shape check, then identity, then role, then ownership.
	requireAuth := middleware.RequireAuth(tokens, users)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	sellerOrAdmin := middleware.RequireRoles(models.RoleSeller, models.RoleAdmin)

	all := validation.Options{}
	firstOnly := validation.Options{AbortEarly: true}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		authRoutes := api.Group("/auth")
		authRoutes.POST("/register", middleware.ValidateBody(h.RegisterSchema, all), authHandler.Register)
		authRoutes.POST("/login", middleware.ValidateBody(h.LoginSchema, firstOnly), authHandler.Login)
		authRoutes.GET("/me", requireAuth, authHandler.Me)

		usersRoutes := api.Group("/users", requireAuth, adminOnly)
		usersRoutes.GET("", usersHandler.List)
		usersRoutes.GET("/:id", usersHandler.Get)
		usersRoutes.PUT("/:id/role", middleware.ValidateBody(h.UpdateRoleSchema, firstOnly), usersHandler.UpdateRole)
		usersRoutes.DELETE("/:id", usersHandler.Delete)

		sellersRoutes := api.Group("/sellers")
		sellersRoutes.GET("/:id", sellersHandler.Get)
		sellersRoutes.GET("/:id/products", sellersHandler.Products)
		sellersRoutes.POST("", requireAuth, middleware.ValidateBody(h.SellerSchema, all), sellersHandler.Register)
		sellersRoutes.PUT("/:id",
			requireAuth,
			sellerOrAdmin,
			middleware.RequireSellerOwner("id"),
			middleware.ValidateBody(h.SellerUpdateSchema, all),
			sellersHandler.Update,
		)

		categoriesRoutes := api.Group("/categories")
		categoriesRoutes.GET("", categoriesHandler.List)
		categoriesRoutes.GET("/:id", categoriesHandler.Get)
		categoriesRoutes.POST("", requireAuth, adminOnly, middleware.ValidateBody(h.CategorySchema, firstOnly), categoriesHandler.Create)
		categoriesRoutes.PUT("/:id", requireAuth, adminOnly, middleware.ValidateBody(h.CategorySchema, firstOnly), categoriesHandler.Update)
		categoriesRoutes.DELETE("/:id", requireAuth, adminOnly, categoriesHandler.Delete)

		productsRoutes := api.Group("/products")
		productsRoutes.GET("", middleware.ValidateQuery(h.ProductListQuerySchema, firstOnly), productsHandler.List)
		productsRoutes.GET("/:id", productsHandler.Get)
		productsRoutes.POST("", requireAuth, sellerOrAdmin, middleware.ValidateBody(h.ProductSchema, all), productsHandler.Create)
		productsRoutes.PUT("/:id", requireAuth, sellerOrAdmin, middleware.ValidateBody(h.ProductUpdateSchema, all), productsHandler.Update)
		productsRoutes.DELETE("/:id", requireAuth, sellerOrAdmin, productsHandler.Delete)

		wishlistRoutes := api.Group("/wishlist", requireAuth)
		wishlistRoutes.GET("", wishlistHandler.List)
		wishlistRoutes.POST("", middleware.ValidateBody(h.WishlistAddSchema, firstOnly), wishlistHandler.Add)
		wishlistRoutes.DELETE("/:productId", wishlistHandler.Remove)

		ordersRoutes := api.Group("/orders", requireAuth)
		ordersRoutes.POST("", ordersHandler.Create)
		ordersRoutes.GET("", ordersHandler.List)
		ordersRoutes.GET("/:id", ordersHandler.Get)
		ordersRoutes.PUT("/:id/status", middleware.ValidateBody(h.OrderStatusSchema, firstOnly), ordersHandler.UpdateStatus)
		ordersRoutes.GET("/:id/invoice", ordersHandler.Invoice)

		messagesRoutes := api.Group("/messages", requireAuth)
		messagesRoutes.POST("", middleware.ValidateBody(h.MessageSchema, all), messagesHandler.Create)
		messagesRoutes.GET("", messagesHandler.List)
	}

	h.SetRouter(r)
	return r
}
