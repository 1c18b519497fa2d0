// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS). AppConfig is everything specific to BoardHub:
// backends, token signing, mail, and domain defaults.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token signing configuration. Access and refresh tokens use
	// separate secrets.
	JWTAccessSecret  string
	JWTRefreshSecret string
	JWTAccessTTL     time.Duration
	JWTRefreshTTL    time.Duration

	// Object storage (card covers, attachments, avatars)
	StorageS3Region    string // AWS region
	StorageS3Bucket    string // S3 bucket name
	StorageS3PublicURL string // Base URL the bucket's objects are served from

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty for Mailpit)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address
	SiteName     string // Display name used in email subjects and bodies

	// TemplateDefaultCover is the cover image used when a board goes
	// public without one.
	TemplateDefaultCover string

	// AdminEmail, when set, is promoted to (or created as) an admin
	// account on startup.
	AdminEmail string

	// DriftSweepInterval is how often the background sweep checks order
	// lists against card rows. Zero disables the sweep.
	DriftSweepInterval time.Duration
}
