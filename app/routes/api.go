package routes

import (
	"net/http"

	"github.com/shashiranjanraj/bhandar/app/controllers"
	"github.com/shashiranjanraj/bhandar/app/repositories"
	"github.com/shashiranjanraj/bhandar/app/services"
	"github.com/shashiranjanraj/bhandar/pkg/metrics"
	"github.com/shashiranjanraj/bhandar/pkg/middleware"
	"github.com/shashiranjanraj/bhandar/pkg/rbac"
	"github.com/shashiranjanraj/bhandar/pkg/router"
	"github.com/shashiranjanraj/bhandar/pkg/storage"
	"github.com/shashiranjanraj/bhandar/pkg/workerpool"
	"github.com/shashiranjanraj/bhandar/pkg/ws"
)

// InventoryHub streams stock events to connected dashboards.
var InventoryHub = ws.NewHub()

// Services groups the app services so the server boot and the routes
// share the same instances.
type Services struct {
	Inventory *services.InventoryService
	CSV       *services.CSVService
	Profiles  *services.ProfileService
	Invoices  *services.InvoiceService
	Auth      *services.AuthService
}

// BuildServices wires repositories into services. Call after the
// database connections are up.
func BuildServices(pool *workerpool.Pool) (*Services, error) {
	products := repositories.NewProductRepository()
	users := repositories.NewUserRepository()
	invoiceRepo := repositories.NewInvoiceRepository()

	invoices, err := services.NewInvoiceService(invoiceRepo, products)
	if err != nil {
		return nil, err
	}

	return &Services{
		Inventory: services.NewInventoryService(products),
		CSV:       services.NewCSVService(products, pool),
		Profiles:  services.NewProfileService(users),
		Invoices:  invoices,
		Auth:      services.NewAuthService(users),
	}, nil
}

// RegisterAPI mounts every HTTP surface on r.
func RegisterAPI(r *router.Router, svc *Services) error {
	productCtl := controllers.NewProductController(svc.Inventory, svc.CSV)
	profileCtl := controllers.NewProfileController(svc.Profiles)
	invoiceCtl := controllers.NewInvoiceController(svc.Invoices)
	authCtl := controllers.NewAuthController(svc.Auth)

	gqlHandler, err := controllers.NewGraphQLHandler(svc.Inventory)
	if err != nil {
		return err
	}

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", "auth.register", authCtl.Register)
	auth.Post("/login", "auth.login", authCtl.Login)
	auth.Post("/logout", "auth.logout", authCtl.Logout)

	products := api.Group("/products")
	products.Get("", "products.index", productCtl.Index)
	products.Get("/low-stock", "products.low_stock", productCtl.LowStock)
	products.Get("/expiring-soon", "products.expiring_soon", productCtl.ExpiringSoon)
	products.Get("/categories", "products.categories", productCtl.Categories)
	products.Get("/summary", "products.summary", productCtl.Summary)
	products.Get("/export", "products.export", productCtl.Export)
	products.Post("", "products.create", productCtl.Create, middleware.AuthMiddleware)
	products.Post("/bulk-upload", "products.bulk_upload", productCtl.BulkUpload,
		middleware.AuthMiddleware, rbac.HasRole("admin"))

	users := api.Group("/users", middleware.AuthMiddleware)
	users.Get("/{id}", "users.show", profileCtl.Show)
	users.Patch("/{id}", "users.update", profileCtl.Update)
	users.Post("/{id}", "users.update_post", profileCtl.Update)
	users.Get("/me", "users.me", profileCtl.Show)
	users.Patch("/me", "users.update_me", profileCtl.Update)
	users.Post("/me", "users.update_me_post", profileCtl.Update)

	invoices := api.Group("/invoices", middleware.AuthMiddleware)
	invoices.Post("/generate", "invoices.generate", invoiceCtl.Generate)
	invoices.Get("", "invoices.index", invoiceCtl.Index)

	r.Post("/graphql", "graphql", gqlHandler)
	r.Handle("/storage/*", http.StripPrefix("/storage/", storage.FileServer()))
	r.Get("/healthz", "healthz", controllers.Healthz)
	r.Handle("/metrics", metrics.Handler())
	r.Handle("/ws/inventory", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, InventoryHub)
	}))

	return nil
}
