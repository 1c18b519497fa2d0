// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"

	"github.com/kvnhng/boardhub/internal/app/system/templatesync"
)

// appConfigKeys defines the configuration keys for BoardHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_access_secret, etc.
//   - Environment variables: BOARDHUB_MONGO_URI, BOARDHUB_JWT_ACCESS_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_access_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "boardhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	// Token signing
	{Name: "jwt_access_secret", Default: "dev-only-access-secret-change-me", Desc: "Access token signing secret"},
	{Name: "jwt_refresh_secret", Default: "dev-only-refresh-secret-change-me", Desc: "Refresh token signing secret"},
	{Name: "jwt_access_ttl", Default: "1h", Desc: "Access token lifetime (e.g., 15m, 1h)"},
	{Name: "jwt_refresh_ttl", Default: "336h", Desc: "Refresh token lifetime (e.g., 336h for 14 days)"},

	// Object storage
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket for covers, attachments, and avatars"},
	{Name: "storage_s3_public_url", Default: "", Desc: "Base URL the bucket's objects are served from"},

	// Email/SMTP
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@boardhub.dev", Desc: "From email address"},
	{Name: "site_name", Default: "BoardHub", Desc: "Display name used in emails"},

	// Domain defaults
	{Name: "template_default_cover", Default: templatesync.DefaultCover, Desc: "Cover image for public boards without one"},
	{Name: "drift_sweep_interval", Default: "10m", Desc: "How often to check order lists for drift (0 disables)"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of the admin user (promoted/created on startup)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, BOARDHUB_* for app), and
// command-line flags, merged with precedence flags > env > files >
// defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "BOARDHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTAccessSecret:  appValues.String("jwt_access_secret"),
		JWTRefreshSecret: appValues.String("jwt_refresh_secret"),
		JWTAccessTTL:     appValues.Duration("jwt_access_ttl", time.Hour),
		JWTRefreshTTL:    appValues.Duration("jwt_refresh_ttl", 14*24*time.Hour),

		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3PublicURL: appValues.String("storage_s3_public_url"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		SiteName:     appValues.String("site_name"),

		TemplateDefaultCover: appValues.String("template_default_cover"),
		AdminEmail:           appValues.String("admin_email"),
		DriftSweepInterval:   appValues.Duration("drift_sweep_interval", 10*time.Minute),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// backends are built.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" {
		if appCfg.JWTAccessSecret == "dev-only-access-secret-change-me" ||
			appCfg.JWTRefreshSecret == "dev-only-refresh-secret-change-me" {
			return fmt.Errorf("jwt secrets must be set in production")
		}
		if appCfg.StorageS3Bucket == "" || appCfg.StorageS3PublicURL == "" {
			return fmt.Errorf("storage_s3_bucket and storage_s3_public_url must be set in production")
		}
	}

	if appCfg.JWTAccessTTL >= appCfg.JWTRefreshTTL {
		return fmt.Errorf("jwt_access_ttl must be shorter than jwt_refresh_ttl")
	}

	return nil
}
