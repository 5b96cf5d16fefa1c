package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/zakariamagdyz/memorize-api/internal/config"
	"github.com/zakariamagdyz/memorize-api/internal/database"
	"github.com/zakariamagdyz/memorize-api/internal/middleware"
	"github.com/zakariamagdyz/memorize-api/internal/modules/auth"
	"github.com/zakariamagdyz/memorize-api/internal/modules/post"
	"github.com/zakariamagdyz/memorize-api/internal/modules/product"
	"github.com/zakariamagdyz/memorize-api/internal/notification"
	"github.com/zakariamagdyz/memorize-api/internal/pkg/token"
	"github.com/zakariamagdyz/memorize-api/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = "memorize.db"
	}
	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	postRepo := repository.NewPostRepository(db)
	productRepo := repository.NewProductRepository(db)

	accessCodec := token.New(cfg.AccessTokenSecret, cfg.AccessTokenTTL)
	refreshCodec := token.New(cfg.RefreshTokenSecret, cfg.RefreshTokenTTL)
	activateCodec := token.New(cfg.ActivateTokenSecret, cfg.ActivateTokenTTL)

	var mailer notification.Mailer
	if cfg.SMTPHost != "" {
		mailer = notification.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	} else {
		log.Println("SMTP_HOST not set, mail goes to the console")
		mailer = notification.NewDevConsoleMailer()
	}

	authService := auth.NewService(
		userRepo, tokenRepo,
		accessCodec, refreshCodec, activateCodec,
		mailer, cfg.ClientURL, cfg.ResetTokenTTL,
	)
	authHandler := auth.NewHandler(authService, cfg.CookieMaxAge(), cfg.IsProduction())

	postHandler := post.NewHandler(post.NewService(postRepo))
	productHandler := product.NewHandler(product.NewService(productRepo))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())

	r.GET("/api/healthcheck", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "success", "message": "Hello from api"})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Protect(accessCodec))
		{
			authHandler.RegisterProtectedRoutes(protected)
			postHandler.RegisterRoutes(protected)
			productHandler.RegisterRoutes(protected)
		}
	}

	log.Printf("listening on :%s env=%s", cfg.Port, cfg.AppEnv)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
