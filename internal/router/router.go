package router

import (
	"time"

	"salonpos/internal/analytics"
	"salonpos/internal/config"
	"salonpos/internal/handler"
	"salonpos/internal/infra"
	"salonpos/internal/middleware"
	"salonpos/internal/model"
	"salonpos/internal/realtime"
	"salonpos/internal/repository"
	"salonpos/internal/service"
	"salonpos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the process-wide resources the router wires into services.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	// Redis is optional. Without it jobs run inline and change notifications
	// go straight to the in-process hub.
	Redis  *redis.Client
	Mailer *infra.Mailer
}

// App exposes what the composition root needs beyond the HTTP engine: the hub
// to run, and the services the worker pool and seeding call into.
type App struct {
	Engine     *gin.Engine
	Hub        *realtime.Hub
	Dispatcher *worker.Dispatcher // nil without redis
	Inventario service.InventarioService
	Reportes   service.ReporteService
	Seed       service.SeedService
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(d Deps) *App {
	cfg := d.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.Origins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	costos := analytics.NewCostTable(cfg.ReposicionManicura, cfg.ReposicionPedicura)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(d.DB)
	servicioRepo := repository.NewServicioRepository(d.DB)
	gastoRepo := repository.NewGastoRepository(d.DB)
	catalogoRepo := repository.NewCatalogoRepository(d.DB)
	insumoRepo := repository.NewInsumoRepository(d.DB)
	recetaRepo := repository.NewRecetaRepository(d.DB)
	store := repository.NewRecordStore(d.DB)

	// ── Async plumbing ───────────────────────────────────────────────────────
	var (
		jobs       service.JobQueue
		dispatcher *worker.Dispatcher
		mailer     worker.ReporteMailer
	)
	if d.Redis != nil {
		dispatcher = worker.NewDispatcher(d.Redis)
		jobs = dispatcher
	}
	if d.Mailer != nil && d.Mailer.Configured() {
		mailer = d.Mailer
	}

	reporteSvc := service.NewReporteService(service.ReporteDeps{
		Store:            store,
		Costos:           costos,
		PDFStoragePath:   cfg.PDFStoragePath,
		Jobs:             jobs,
		Mailer:           mailer,
		DefaultRecipient: cfg.ReportRecipient,
	})

	hub := realtime.NewHub(reporteSvc)
	var pub service.Publisher = hub
	if d.Redis != nil {
		pub = realtime.NewRedisPublisher(d.Redis)
	}

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	usuarioSvc := service.NewUsuarioService(usuarioRepo, cfg.DefaultCommissionPct, pub)
	inventarioSvc := service.NewInventarioService(insumoRepo, servicioRepo, pub)
	servicioSvc := service.NewServicioService(service.ServicioDeps{
		Servicios:   servicioRepo,
		Usuarios:    usuarioRepo,
		Catalogo:    catalogoRepo,
		Insumos:     insumoRepo,
		Recetas:     recetaRepo,
		Descontador: inventarioSvc,
		Jobs:        jobs,
		Publisher:   pub,
		Costos:      costos,
	})
	gastoSvc := service.NewGastoService(gastoRepo, usuarioRepo, pub)
	catalogoSvc := service.NewCatalogoService(catalogoRepo, pub)
	recetaSvc := service.NewRecetaService(recetaRepo, catalogoRepo, insumoRepo, costos, pub)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	serviciosH := handler.NewServiciosHandler(servicioSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	recetasH := handler.NewRecetasHandler(recetaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	lanH := handler.NewLANHandler(cfg.PublicURL)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	var smtpCB *infra.CircuitBreaker
	if d.Mailer != nil {
		smtpCB = d.Mailer.Breaker()
	}
	r.GET("/health", handler.Health(d.DB, d.Redis, smtpCB, hub.ClientCount))

	auth := r.Group("/v1/auth")
	{
		auth.GET("/perfiles", authH.Perfiles)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	lan := r.Group("/v1/lan")
	{
		lan.GET("", lanH.Info)
		lan.GET("/qr", lanH.QR)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	staff := middleware.RequireRole(model.RolOwner, model.RolStaff)
	owner := middleware.RequireRole(model.RolOwner)

	v1 := r.Group("/v1", jwtMW)
	{
		servicios := v1.Group("/servicios")
		{
			servicios.POST("", staff, serviciosH.Registrar)
			servicios.GET("/mios", staff, serviciosH.ListarPropios)
			servicios.PATCH("/:id", staff, serviciosH.Actualizar)
			servicios.DELETE("/:id", staff, serviciosH.EliminarSoft)
			servicios.DELETE("/:id/definitivo", owner, serviciosH.EliminarDefinitivo)
		}

		// Catalog: everyone reads, owner writes
		catalogo := v1.Group("/catalogo")
		{
			catalogo.GET("/servicios", staff, catalogoH.ListarServicios)
			catalogo.GET("/extras", staff, catalogoH.ListarExtras)
			catalogo.POST("/servicios", owner, catalogoH.CrearServicio)
			catalogo.PUT("/servicios/:id", owner, catalogoH.ActualizarServicio)
			catalogo.POST("/extras", owner, catalogoH.CrearExtra)
			catalogo.PUT("/extras/:id", owner, catalogoH.ActualizarExtra)
		}

		gastos := v1.Group("/gastos", owner)
		{
			gastos.POST("", gastosH.Registrar)
			gastos.GET("", gastosH.Listar)
			gastos.DELETE("/:id", gastosH.EliminarSoft)
			gastos.DELETE("/:id/definitivo", gastosH.EliminarDefinitivo)
		}

		usuarios := v1.Group("/usuarios", owner)
		{
			usuarios.GET("", usuariosH.Listar)
			usuarios.POST("", usuariosH.Crear)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.PATCH("/:id/comision", usuariosH.ActualizarComision)
			usuarios.PATCH("/:id/desactivar", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
			usuarios.DELETE("/:id", usuariosH.Eliminar)
		}

		insumos := v1.Group("/insumos", owner)
		{
			insumos.GET("", inventarioH.Listar)
			insumos.POST("", inventarioH.Crear)
			insumos.GET("/alertas", inventarioH.ObtenerAlertas)
			insumos.GET("/movimientos", inventarioH.ListarMovimientos)
			insumos.PUT("/:id", inventarioH.Actualizar)
			insumos.POST("/:id/stock", inventarioH.AjustarStock)
		}

		recetas := v1.Group("/recetas", owner)
		{
			recetas.GET("", recetasH.Listar)
			recetas.PUT("", recetasH.Guardar)
			recetas.POST("/reconstruir", recetasH.Reconstruir)
			recetas.GET("/:catalogo_id/costo", recetasH.Costo)
		}

		reportes := v1.Group("/reportes", owner)
		{
			reportes.GET("/dashboard", reportesH.Dashboard)
			reportes.GET("/csv/:tipo", reportesH.CSV)
			reportes.GET("/pdf", reportesH.PDF)
			reportes.POST("/email", reportesH.Email)
		}

		// Live dashboard; browsers pass the token as ?token=
		v1.GET("/ws/dashboard", owner, gin.WrapF(hub.ServeWS))
	}

	// Swagger UI: only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return &App{
		Engine:     r,
		Hub:        hub,
		Dispatcher: dispatcher,
		Inventario: inventarioSvc,
		Reportes:   reporteSvc,
		Seed:       service.NewSeedService(d.DB),
	}
}
