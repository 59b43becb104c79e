package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Infraestrutura e utilitários
	"gostore/config"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/database"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/payment"
	"gostore/internal/pkg/token"
	"gostore/internal/warranty"

	// Camadas para Injeção de Dependências
	"gostore/internal/api/cart"
	"gostore/internal/api/checkout"
	"gostore/internal/api/order"
	"gostore/internal/api/product"
	"gostore/internal/api/router"
	"gostore/internal/api/session"
	"gostore/internal/repository/catalogrepo"
	"gostore/internal/repository/orderrepo"
	"gostore/internal/repository/sessionrepo"
	"gostore/internal/service/cartservice"
	"gostore/internal/service/catalogservice"
	"gostore/internal/service/checkoutservice"
	"gostore/internal/service/orderservice"
	"gostore/internal/service/sessionservice"
)

// @title GoStore API
// @version 1.0
// @description Vitrine, carrinho de convidado e checkout.
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço GoStore...")
	if err := godotenv.Load(); err != nil {
		// As variáveis essenciais podem vir do ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL) - pedidos
	db, err := database.NewPostgresDB(cfg.DatabaseURL, cfg.DBTimeout)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis) - catálogo, sessões e rate limit
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), cfg.CacheTimeout)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn("Redis indisponível no boot; o catálogo seguirá sem cache.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
	} else {
		log.Info("Conexão Redis estabelecida.", nil)
	}
	cancelPing()

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios
	catalogRepo := catalogrepo.NewCatalogRepository(catalogrepo.Options{
		BaseURL:      cfg.CatalogBaseURL,
		HTTPClient:   &http.Client{Timeout: cfg.CatalogTimeout},
		Cache:        cacheClient,
		CacheTTL:     cfg.CatalogCacheTTL,
		CacheTimeout: cfg.CacheTimeout,
	}, log)
	sessionRepo := sessionrepo.NewSessionRepository(cacheClient, cfg.SessionTTL, cfg.CacheTimeout)
	orderRepo := orderrepo.NewOrderRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositórios inicializados.", nil)

	// B. Gateway de pagamento com circuit breaker
	gateway := payment.NewBreakerGateway(payment.NewStripeGateway(cfg.StripeSecretKey, cfg.PaymentCurrency), 5, 30*time.Second, log)
	if cfg.StripeSecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY vazio; pagamentos com cartão serão recusados.", nil)
	}

	// C. Serviço de Tokens (JWT)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	log.Debug("Serviço de Tokens JWT inicializado.", nil)

	// D. Serviços
	catalogSvc := catalogservice.NewService(catalogRepo, cfg.SecondaryAttribute, cfg.PageSize, log)
	cartSvc := cartservice.NewService(sessionRepo, catalogSvc, cfg.ShippingRates, log)
	checkoutSvc := checkoutservice.NewService(
		cartSvc,
		catalogSvc,
		sessionRepo,
		orderRepo,
		gateway,
		warranty.NewIssuer(),
		checkoutservice.Timeouts{Payment: cfg.PaymentTimeout, Order: cfg.OrderTimeout},
		log,
	)
	sessionSvc := sessionservice.NewService(tokenSvc, sessionRepo, token.RoleGuest, log)
	orderSvc := orderservice.NewService(orderRepo, log)
	log.Debug("Serviços inicializados.", nil)

	// E. Handlers
	handlers := router.Handlers{
		Session:  session.NewHandler(sessionSvc, log),
		Product:  product.NewHandler(catalogSvc, log),
		Cart:     cart.NewHandler(cartSvc, log),
		Checkout: checkout.NewHandler(checkoutSvc, log),
		Order:    order.NewHandler(orderSvc, log),
	}

	// 4. Roteador e Servidor
	r := router.NewRouter(handlers, router.Options{
		Tokens:     tokenSvc,
		Cache:      cacheClient,
		RateLimit:  cfg.RateLimitMaxRequests,
		RatePeriod: cfg.RateLimitPeriod,
		Logger:     log,
	})

	// WriteTimeout cobre a autorização do cartão somada à gravação do pedido.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.PaymentTimeout + cfg.OrderTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("🚀 Servidor GoStore ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("🛑 Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("✅ Servidor encerrado com sucesso.", nil)
	if zl, ok := log.(*logger.ZapLogger); ok {
		_ = zl.Sync()
	}
}
