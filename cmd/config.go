package cmd

// Config carries all runtime settings. Values come from the environment,
// optionally seeded from a .env file; see cmd/app/main.go.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Restaurant position, the origin of every delivery distance.
	OriginLatitude  float64
	OriginLongitude float64

	// Free band-2 delivery until this date; zero means no promotion.
	PromoFreeDeliveryUntil string

	ReminderMaxAlerts       int
	ReminderIntervalSeconds int
	ReminderCooldownSeconds int

	GeocoderBaseURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}
