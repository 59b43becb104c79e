package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config armazena todas as configurações do GoStore.
// Os campos cobrem infraestrutura (DB, Cache, Segurança) e as regras da vitrine (frete, catálogo, pagamento).
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL) - pedidos
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache (Redis) - catálogo, sessões e rate limit
	RedisAddr       string
	CacheTimeout    time.Duration
	CatalogCacheTTL time.Duration
	SessionTTL      time.Duration

	// Segurança (JWT) - tokens de sessão de convidado
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Catálogo remoto
	CatalogBaseURL     string
	CatalogTimeout     time.Duration
	SecondaryAttribute string
	PageSize           int

	// Pagamento (gateway de cartão)
	StripeSecretKey string
	PaymentCurrency string
	PaymentTimeout  time.Duration
	OrderTimeout    time.Duration

	// Frete: opção de envio -> custo
	ShippingRates map[string]decimal.Decimal
}

// DefaultShippingRates é usado quando SHIPPING_RATES não está definido.
const DefaultShippingRates = "standard:20,express:60,pickup:0"

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	rates, err := ParseShippingRates(getEnv("SHIPPING_RATES", DefaultShippingRates))
	if err != nil {
		log.Printf("⚠️ Aviso: SHIPPING_RATES inválido (%v). Usando padrão (%s).", err, DefaultShippingRates)
		rates, _ = ParseShippingRates(DefaultShippingRates)
	}

	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Banco de Dados (PostgreSQL)
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		// 3. Cache (Redis)
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout:    getDurationEnv("CACHE_TIMEOUT_SEC", 10) * time.Second,
		CatalogCacheTTL: getDurationEnv("CATALOG_CACHE_TTL_SEC", 300) * time.Second,
		SessionTTL:      getDurationEnv("SESSION_TTL_HOURS", 720) * time.Hour, // 30 dias

		// 4. Segurança (JWT)
		JWTSecretKey: mustGetEnv("JWT_SECRET_KEY"),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60*24) * time.Minute,

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,

		// 6. Catálogo
		CatalogBaseURL:     getEnv("CATALOG_BASE_URL", "http://localhost:7000/api"),
		CatalogTimeout:     getDurationEnv("CATALOG_TIMEOUT_SEC", 10) * time.Second,
		SecondaryAttribute: getEnv("SECONDARY_ATTRIBUTE", "Carat Weight"),
		PageSize:           getIntEnv("PAGE_SIZE", 12),

		// 7. Pagamento
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		PaymentCurrency: getEnv("PAYMENT_CURRENCY", "usd"),
		PaymentTimeout:  getDurationEnv("PAYMENT_TIMEOUT_SEC", 20) * time.Second,
		OrderTimeout:    getDurationEnv("ORDER_TIMEOUT_SEC", 10) * time.Second,

		// 8. Frete
		ShippingRates: rates,
	}

	return cfg
}

// ParseShippingRates lê o formato "opcao:custo,opcao:custo".
// Nomes são normalizados para minúsculas; custos negativos são rejeitados.
func ParseShippingRates(raw string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, cost, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("entrada de frete malformada: %q", pair)
		}
		value, err := decimal.NewFromString(strings.TrimSpace(cost))
		if err != nil {
			return nil, fmt.Errorf("custo de frete inválido em %q: %w", pair, err)
		}
		if value.IsNegative() {
			return nil, fmt.Errorf("custo de frete negativo em %q", pair)
		}
		rates[strings.ToLower(strings.TrimSpace(name))] = value
	}
	return rates, nil
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Duration(defaultValue)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return time.Duration(defaultValue)
	}
	return time.Duration(value)
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
