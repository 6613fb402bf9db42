package email

import "time"

// Provider selects the transport binding.
type Provider string

const (
	ProviderBrevo    Provider = "brevo"
	ProviderPostmark Provider = "postmark"
	ProviderResend   Provider = "resend"
	ProviderSMTP     Provider = "smtp"
	ProviderDev      Provider = "dev"
)

// Config holds the sender identity and the credentials for every provider.
// Only the fields of the selected provider need to be set.
type Config struct {
	Provider     Provider      `env:"EMAIL_PROVIDER" envDefault:"brevo"`
	SenderName   string        `env:"SENDER_NAME" envDefault:"GitHub Timeline"`
	SenderEmail  string        `env:"SENDER_EMAIL,required"`
	SupportEmail string        `env:"SUPPORT_EMAIL"`
	SendTimeout  time.Duration `env:"EMAIL_SEND_TIMEOUT" envDefault:"15s"`

	// TestRecipient, when set, receives a test message at startup.
	TestRecipient string `env:"TEST_RECIPIENT"`

	BrevoAPIKey  string `env:"BREVO_API_KEY"`
	BrevoBaseURL string `env:"BREVO_BASE_URL" envDefault:"https://api.brevo.com/v3"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	ResendAPIKey string `env:"RESEND_API_KEY"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASS"`

	DevDir string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}
