// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS, body limits). AppConfig is everything specific to
// HeartFund: database connection, session cookies, OAuth credentials,
// the payment processor key, and upload storage.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: heartfund-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Payment processor configuration
	StripeSecretKey string // Stripe secret API key

	// Upload storage configuration
	StorageLocalPath string // Local path for uploaded images (e.g., "./uploads/images")
	StorageLocalURL  string // URL prefix for serving uploaded images (e.g., "/files/images")

	// Base URL for OAuth callbacks (e.g., "https://heartfund.org")
	BaseURL string

	// Admin bootstrap: the user with this email is promoted to
	// administrator on startup.
	AdminEmail string
}
