package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/config"
	"amigo-admin/internal/database"
	"amigo-admin/internal/features/admin"
	"amigo-admin/internal/features/audit"
	"amigo-admin/internal/features/user"
	"amigo-admin/internal/logger"
	"amigo-admin/internal/validator"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

type options struct {
	email       string
	password    string
	role        string
	permissions []string
}

// CreateAdmin provisions the sign-in account and admin record, then stops the app
func CreateAdmin(lc fx.Lifecycle, opts options, service admin.AdminService, v *validator.Validator, log *zap.Logger, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				code := 0
				defer func() {
					if err := shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
						log.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				req := admin.CreateAdminRequest{
					Email:       opts.email,
					Password:    opts.password,
					Role:        opts.role,
					Permissions: opts.permissions,
				}
				if err := v.Validate(req); err != nil {
					log.Error("Invalid admin", zap.String("reason", apperr.Message(err)))
					code = 2
					return
				}

				created, err := service.CreateAdmin(context.Background(), req, "cli")
				if err != nil {
					log.Error("Failed to create admin", zap.String("reason", apperr.Message(err)), zap.Error(err))
					code = 1
					return
				}
				log.Info("Admin created",
					zap.String("uid", created.UID),
					zap.String("email", created.Email),
					zap.String("role", created.Role),
				)
			}()
			return nil
		},
	})
}

func main() {
	var (
		email       = flag.String("email", "", "Admin email")
		password    = flag.String("password", "", "Initial password (at least 6 characters)")
		role        = flag.String("role", "admin", "Role: admin or subadmin")
		permissions = flag.String("permissions", "dashboard,admin_management,manage_groups,manage_chats,notifications", "Comma separated permissions")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: go run ./cmd/createadmin -email EMAIL -password PASSWORD [-role admin|subadmin] [-permissions a,b]")
		os.Exit(1)
	}

	var perms []string
	for _, p := range strings.Split(*permissions, ",") {
		if p = strings.TrimSpace(p); p != "" {
			perms = append(perms, p)
		}
	}
	opts := options{email: *email, password: *password, role: *role, permissions: perms}

	fx.New(
		fx.Supply(opts),
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			database.NewFirebase,
			validator.New,
			audit.NewAuditRepository,
			audit.NewAuditService,
			admin.NewAdminRepository,
			admin.NewAccountProvisioner,
			admin.NewAdminService,
			user.NewUserRepository,
			func(r user.UserRepository) audit.UserFinder { return r },
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(CreateAdmin),
	).Run()
}
