package main

import (
	"context"
	"fmt"
	"log"

	_ "amigo-admin/docs" // Import swagger docs
	"amigo-admin/internal/access"
	common_api "amigo-admin/internal/common/api"
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/config"
	"amigo-admin/internal/database"
	"amigo-admin/internal/features/admin"
	"amigo-admin/internal/features/audit"
	"amigo-admin/internal/features/auth"
	"amigo-admin/internal/features/call"
	"amigo-admin/internal/features/chat"
	"amigo-admin/internal/features/dashboard"
	"amigo-admin/internal/features/group"
	"amigo-admin/internal/features/inner_group"
	"amigo-admin/internal/features/notification"
	"amigo-admin/internal/features/system"
	"amigo-admin/internal/features/user"
	"amigo-admin/internal/identity"
	"amigo-admin/internal/logger"
	"amigo-admin/internal/middleware"
	"amigo-admin/internal/realtime"
	"amigo-admin/internal/validator"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if apperr.Status(err) >= fiber.StatusInternalServerError {
				log.Error("unhandled request error", zap.String("path", c.Path()), zap.Error(err))
			}
			return apperr.Respond(c, err)
		},
	})

	app.Use(middleware.CORSMiddleware(cfg))
	app.Use(middleware.RequestLogger(log))

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, log *zap.Logger) {
	log.Info("registering routes", zap.Int("count", len(routes)))
	for _, route := range routes {
		log.Debug("setting up route", zap.String("api", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// @title           Amigo Admin API
// @version         1.0
// @description     Administration API for the Amigo chat app.

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,

			database.NewDatabase,
			database.NewFirebase,
			validator.New,
			identity.NewVerifier,
			access.NewResolver,
			realtime.NewHub,

			// Repositories
			audit.NewAuditRepository,
			admin.NewAdminRepository,
			user.NewUserRepository,
			group.NewGroupRepository,
			inner_group.NewTemplateRepository,
			chat.NewChatRepository,
			notification.NewLogRepository,

			// Services
			audit.NewAuditService,
			admin.NewAccountProvisioner,
			admin.NewAdminService,
			auth.NewAuthService,
			user.NewUserService,
			group.NewGroupService,
			inner_group.NewTemplateService,
			chat.NewChatService,
			notification.NewFCMGateway,
			notification.NewDispatcher,
			notification.NewNotificationService,
			call.NewTokenService,
			dashboard.NewStatsService,
			dashboard.NewScheduler,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(r admin.AdminRepository) access.AdminLookup { return r },
			func(r user.UserRepository) audit.UserFinder { return r },
			func(r user.UserRepository) group.MemberDirectory { return r },
			func(r user.UserRepository) chat.SenderDirectory { return r },
			func(r user.UserRepository) notification.Recipients { return r },
			func(r user.UserRepository) call.CallerDirectory { return r },
			func(s group.GroupService) inner_group.GroupTargets { return s },
			func(h *realtime.Hub) realtime.Publisher { return h },
			func(r user.UserRepository) dashboard.UserCounter { return r },
			func(r admin.AdminRepository) dashboard.AdminCounter { return r },
			func(r group.GroupRepository) dashboard.GroupCounter { return r },
			func(r inner_group.TemplateRepository) dashboard.TemplateCounter { return r },

			// Controllers
			admin.NewAdminController,
			auth.NewAuthController,
			user.NewUserController,
			audit.NewAuditController,
			group.NewGroupController,
			inner_group.NewTemplateController,
			chat.NewChatController,
			notification.NewNotificationController,
			call.NewCallController,
			dashboard.NewDashboardController,
			system.NewWebSocketController,

			// API Routes
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(system.NewWebSocketApi),
			AsRoute(auth.NewAuthApi),
			AsRoute(admin.NewAdminApi),
			AsRoute(user.NewUserApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(group.NewGroupApi),
			AsRoute(inner_group.NewTemplateApi),
			AsRoute(chat.NewChatApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(call.NewCallApi),
			AsRoute(dashboard.NewDashboardApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			RegisterAllRoutesWithAnnotation,
			StartServer,
			dashboard.RegisterScheduler,
		),
	)

	app.Run()
}
