package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/food-storefront/internal/access"
	"github.com/BruksfildServices01/food-storefront/internal/audit"
	"github.com/BruksfildServices01/food-storefront/internal/auth"
	"github.com/BruksfildServices01/food-storefront/internal/cache"
	"github.com/BruksfildServices01/food-storefront/internal/config"
	"github.com/BruksfildServices01/food-storefront/internal/db"
	"github.com/BruksfildServices01/food-storefront/internal/handlers"
	infraRepo "github.com/BruksfildServices01/food-storefront/internal/infra/repository"
	"github.com/BruksfildServices01/food-storefront/internal/middleware"
	"github.com/BruksfildServices01/food-storefront/internal/timezone"
	ucCart "github.com/BruksfildServices01/food-storefront/internal/usecase/cart"
	ucCatalog "github.com/BruksfildServices01/food-storefront/internal/usecase/catalog"
	ucDashboard "github.com/BruksfildServices01/food-storefront/internal/usecase/dashboard"
	ucOrder "github.com/BruksfildServices01/food-storefront/internal/usecase/order"
	ucUser "github.com/BruksfildServices01/food-storefront/internal/usecase/user"
)

// Deps are the process singletons the API is built from.
type Deps struct {
	Config  *config.Config
	Gateway *db.Gateway
	Log     *zap.Logger

	// Cache defaults to no caching.
	Cache ucCatalog.Cache
	Audit *audit.Dispatcher

	// Clock defaults to the configured store timezone.
	Clock func() time.Time
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	if d.Clock == nil {
		d.Clock = timezone.Clock(cfg.StoreTimezone)
	}

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	gw := d.Gateway
	userRepo := infraRepo.NewUserGormRepository(gw)
	productRepo := infraRepo.NewCatalogGormRepository(gw)
	cartRepo := infraRepo.NewCartGormRepository(gw)
	orderRepo := infraRepo.NewOrderGormRepository(gw)

	tokens := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// ======================================================
	// USE CASES
	// ======================================================
	listProductsUC := ucCatalog.NewListProducts(productRepo, d.Cache)

	products := handlers.ProductUseCases{
		List:       listProductsUC,
		Categories: ucCatalog.NewListCategories(productRepo, d.Cache),
		ByCategory: ucCatalog.NewProductsByCategory(productRepo, listProductsUC),
		Get:        ucCatalog.NewGetProduct(productRepo),
		Create:     ucCatalog.NewCreateProduct(productRepo, d.Cache, d.Audit),
		Update:     ucCatalog.NewUpdateProduct(productRepo, d.Cache, d.Audit),
		Delete:     ucCatalog.NewDeleteProduct(productRepo, d.Cache, d.Audit),
		Toggle:     ucCatalog.NewToggleStock(productRepo, d.Cache, d.Audit),
	}

	carts := handlers.CartUseCases{
		Add:         ucCart.NewAddItem(gw, cartRepo, productRepo),
		Get:         ucCart.NewGetCart(cartRepo),
		SetQuantity: ucCart.NewSetQuantity(cartRepo),
		Remove:      ucCart.NewRemoveItem(cartRepo),
		Clear:       ucCart.NewClearCart(cartRepo),
	}

	orders := handlers.OrderUseCases{
		Create:       ucOrder.NewCreateOrder(gw, orderRepo, cartRepo, userRepo, d.Audit, d.Clock),
		List:         ucOrder.NewListOrders(orderRepo),
		ListAll:      ucOrder.NewListAllOrders(orderRepo),
		Items:        ucOrder.NewGetOrderItems(orderRepo),
		UpdateStatus: ucOrder.NewUpdateOrderStatus(orderRepo, d.Audit),
		SetStatus:    ucOrder.NewSetOrderStatus(orderRepo, d.Audit),
		Delete:       ucOrder.NewDeleteOrder(orderRepo, d.Audit),
	}

	adminUsers := handlers.AdminUserUseCases{
		Register: ucUser.NewAdminRegisterUser(userRepo, d.Audit),
		Update:   ucUser.NewAdminUpdateUser(userRepo, d.Audit),
		List:     ucUser.NewListUsers(userRepo),
		Delete:   ucUser.NewDeleteUser(gw, userRepo, d.Audit),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(gw, d.Log)

	userHandler := handlers.NewUserHandler(
		ucUser.NewRegister(userRepo, d.Audit),
		ucUser.NewLogin(userRepo, tokens),
		ucUser.NewGetUser(userRepo),
		ucUser.NewUpdateProfile(userRepo),
		ucUser.NewUpdateAddress(userRepo),
		ucUser.NewUpdateUsername(userRepo),
		d.Log,
	)

	productHandler := handlers.NewProductHandler(products, d.Log)
	cartHandler := handlers.NewCartHandler(carts, d.Log)
	orderHandler := handlers.NewOrderHandler(orders, d.Log)
	adminUserHandler := handlers.NewAdminUserHandler(adminUsers, d.Log)

	dashboardHandler := handlers.NewDashboardHandler(
		ucDashboard.NewGetAdminStats(gw),
		ucDashboard.NewGetStaffStats(gw),
		d.Log,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(audit.NewReader(gw), d.Log)

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Check)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/user/login", limiter.Limit(), userHandler.Login)
		api.POST("/user/register", limiter.Limit(), userHandler.Register)

		// ------------------------------
		// CATALOG (PUBLIC)
		// ------------------------------
		api.GET("/products", productHandler.List)
		api.GET("/products/categories", productHandler.Categories)
		api.GET("/products/category/:category", productHandler.ByCategory)
		api.GET("/products/:id", productHandler.Get)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			// ------------------------------
			// PROFILE
			// ------------------------------
			secured.GET("/user/:id", userHandler.Get)
			secured.PUT("/user/:id/profile", userHandler.UpdateProfile)
			secured.PUT("/user/:id/address", userHandler.UpdateAddress)
			secured.PUT("/user/:id/username", userHandler.UpdateUsername)

			// ------------------------------
			// CART
			// ------------------------------
			secured.POST("/cart", cartHandler.Add)
			secured.GET("/cart/:id", cartHandler.Get)
			secured.PUT("/cart/:id", cartHandler.SetQuantity)
			secured.DELETE("/cart/:id", cartHandler.Remove)
			secured.DELETE("/cart/:id/clear", cartHandler.Clear)

			// ------------------------------
			// ORDERS
			// ------------------------------
			secured.POST("/orders", orderHandler.Create)
			secured.GET("/orders/:id", orderHandler.ListMine)
			secured.GET("/orders/:id/items", orderHandler.Items)
			secured.PUT("/orders/:id/status", orderHandler.UpdateStatus)
		}

		// ------------------------------
		// STAFF
		// ------------------------------
		staff := api.Group("/staff")
		staff.Use(
			middleware.AuthMiddleware(tokens),
			middleware.RequireCapability(access.StaffDashboard),
		)
		{
			staff.GET("/dashboard/stats", dashboardHandler.StaffStats)

			staff.GET("/orders", orderHandler.ListAll)
			staff.PUT("/orders/:id", orderHandler.SetStatus)

			staff.GET("/products", productHandler.List)
			staff.PUT("/products/:id", productHandler.Update)
			staff.PUT("/products/:id/toggle-stock", productHandler.ToggleStock)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(
			middleware.AuthMiddleware(tokens),
			middleware.RequireCapability(access.AdminDashboard),
		)
		{
			admin.GET("/dashboard/stats", dashboardHandler.AdminStats)

			admin.GET("/products", productHandler.List)
			admin.POST("/products", productHandler.Create)
			admin.PUT("/products/:id", productHandler.Update)
			admin.DELETE("/products/:id", productHandler.Delete)

			admin.GET("/orders", orderHandler.ListAll)
			admin.PUT("/orders/:id", orderHandler.SetStatus)
			admin.DELETE("/orders/:id", orderHandler.Delete)

			admin.GET("/users", adminUserHandler.List)
			admin.POST("/users", adminUserHandler.Register)
			admin.PUT("/users/:id", adminUserHandler.Update)
			admin.DELETE("/users/:id", adminUserHandler.Delete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
