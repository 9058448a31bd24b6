// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/heartfund/internal/app/resources"
	userstore "github.com/dalemusser/heartfund/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// HeartFund loads the shared templates and promotes the configured
// administrator account.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if appCfg.AdminEmail != "" {
		promoted, err := userstore.New(deps.HeartFundMongoDatabase).SetAdminByEmail(ctx, appCfg.AdminEmail)
		if err != nil {
			logger.Error("admin bootstrap failed", zap.Error(err), zap.String("email", appCfg.AdminEmail))
			return err
		}
		if promoted {
			logger.Info("promoted administrator", zap.String("email", appCfg.AdminEmail))
		} else {
			// The account may not exist yet; promotion happens on a later
			// restart once the user has signed in.
			logger.Info("admin email not found yet; will promote after first sign-in",
				zap.String("email", appCfg.AdminEmail))
		}
	}

	return nil
}
