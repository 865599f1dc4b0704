package billing

// Config holds Paddle provider settings.
type Config struct {
	APIKey        string `env:"PADDLE_API_KEY,required"`
	WebhookSecret string `env:"PADDLE_WEBHOOK_SECRET,required"`
	Environment   string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
	CheckoutURL   string `env:"PADDLE_CHECKOUT_SUCCESS_URL"`
}
