package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "go-casework/internal/common/api"
	"go-casework/internal/config"
	"go-casework/internal/database"
	"go-casework/internal/features/appointment"
	"go-casework/internal/features/audit"
	"go-casework/internal/features/auth"
	"go-casework/internal/features/autoaction"
	"go-casework/internal/features/casefile"
	"go-casework/internal/features/centre"
	"go-casework/internal/features/client"
	"go-casework/internal/features/document"
	"go-casework/internal/features/export"
	"go-casework/internal/features/messaging"
	"go-casework/internal/features/note"
	"go-casework/internal/features/notification"
	"go-casework/internal/features/system"
	"go-casework/internal/features/task"
	"go-casework/internal/features/user"
	"go-casework/internal/logger"
	"go-casework/internal/middleware"
	"go-casework/internal/scheduler"
	"go-casework/pkg/utils"

	_ "go-casework/docs" // swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute tags a constructor so Fx collects it into the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				if err := app.Listen(fmt.Sprintf(":%s", cfg.Port)); err != nil {
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

func NewActionExecutor(cfg *config.Config, handlers map[autoaction.ActionType]autoaction.ActionHandler, logger *zap.Logger) *autoaction.Executor {
	timeout := time.Duration(cfg.ActionTimeoutSeconds) * time.Second
	return autoaction.NewExecutor(handlers, timeout, logger)
}

// @title           Casework API
// @version         1.0
// @description     Multi-tenant case management for debt advice centres.

// @host      localhost:8080
// @BasePath  /
func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,
			database.NewDatabase,

			// repositories
			centre.NewCentreRepository,
			client.NewClientRepository,
			casefile.NewCaseRepository,
			note.NewNoteRepository,
			task.NewTaskRepository,
			appointment.NewAppointmentRepository,
			document.NewDocumentRepository,
			user.NewUserRepository,
			audit.NewAuditRepository,
			notification.NewNotificationRepository,
			messaging.NewMessageRepository,
			autoaction.NewRuleRepository,
			autoaction.NewExecutionRepository,

			// gateways
			messaging.NewSMSGateway,
			messaging.NewSMTPGateway,
			export.NewReportingDB,
			notification.NewHub,

			// services
			audit.NewAuditService,
			auth.NewAuthService,
			client.NewClientService,
			casefile.NewCaseService,
			note.NewNoteService,
			task.NewTaskService,
			appointment.NewAppointmentService,
			document.NewDocumentService,
			user.NewUserService,
			notification.NewNotificationService,
			messaging.NewMessagingService,
			export.NewExportService,

			// engine
			func(clients autoaction.ClientReader,
				msgs messaging.MessagingService,
				notes note.NoteService,
				tasks task.TaskService,
				cases casefile.CaseRepository,
				appts appointment.AppointmentService,
				users user.UserService,
				notify notification.NotificationService,
			) map[autoaction.ActionType]autoaction.ActionHandler {
				return autoaction.NewHandlerRegistry(autoaction.HandlerDeps{
					Clients:      clients,
					Messages:     msgs,
					Notes:        notes,
					Tasks:        tasks,
					Cases:        cases,
					Appointments: appts,
					Users:        users,
					Notify:       notify,
				})
			},
			NewActionExecutor,
			autoaction.NewAutoActionService,

			scheduler.NewReminderScheduler,

			// interface adapters to break dependency cycles
			func(s autoaction.AutoActionService) casefile.AutomationTrigger { return s },
			func(r casefile.CaseRepository) autoaction.CaseReader { return r },
			func(r client.ClientRepository) autoaction.ClientReader { return r },
			func(r casefile.CaseRepository) export.CaseLister { return r },
			func(r user.UserRepository) audit.UserFinder { return r },

			// controllers
			auth.NewAuthController,
			client.NewClientController,
			casefile.NewCaseController,
			note.NewNoteController,
			task.NewTaskController,
			appointment.NewAppointmentController,
			document.NewDocumentController,
			user.NewUserController,
			audit.NewAuditController,
			notification.NewNotificationController,
			messaging.NewMessagingController,
			export.NewExportController,
			autoaction.NewAutoActionController,
			system.NewDebugController,

			// routes
			AsRoute(auth.NewAuthApi),
			AsRoute(client.NewClientApi),
			AsRoute(casefile.NewCaseApi),
			AsRoute(note.NewNoteApi),
			AsRoute(task.NewTaskApi),
			AsRoute(appointment.NewAppointmentApi),
			AsRoute(document.NewDocumentApi),
			AsRoute(user.NewUserApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(messaging.NewMessagingApi),
			AsRoute(export.NewExportApi),
			AsRoute(autoaction.NewAutoActionApi),
			AsRoute(system.NewDebugApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, s *scheduler.ReminderScheduler) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return s.Start()
					},
					OnStop: func(ctx context.Context) error {
						s.Stop()
						return nil
					},
				})
			},
			func(lc fx.Lifecycle, db *export.ReportingDB) {
				lc.Append(fx.Hook{
					OnStop: func(ctx context.Context) error {
						return db.Close()
					},
				})
			},
		),
	)

	app.Run()
}
