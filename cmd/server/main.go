package main

import (
	"context"
	"log"
	"time"

	"store-service/internal/auth"
	"store-service/internal/config"
	httpapi "store-service/internal/controllers/http"
	mmysql "store-service/internal/infra/mysql"
	"store-service/internal/infra/rabbitmq"
	mysqlrepo "store-service/internal/repository/mysql"
	"store-service/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := mmysql.NewMySQL(cfg)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	store := mysqlrepo.NewStore(db)

	publisher, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		DB:           0,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)

	catalog := services.NewCatalogService(store)
	catalog.SetRedisClient(redisClient)
	accounts := services.NewAccountService(store, issuer)
	checkout := services.NewCheckoutService(store, publisher)
	reviews := services.NewReviewService(store)
	carts := services.NewCartService(store)
	orders := services.NewOrderService(store)
	payments := services.NewPaymentService(store)

	go func() {
		time.Sleep(5 * time.Second)
		ctx := context.Background()
		products, err := catalog.ListProducts(ctx, nil)
		if err != nil {
			log.Printf("cache warmup skipped: %v", err)
			return
		}
		ids := make([]uint64, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		if err := catalog.WarmupProductCache(ctx, ids); err != nil {
			log.Printf("failed to warm up cache: %v", err)
		} else {
			log.Printf("cache warmed up with %d products", len(ids))
		}
	}()

	handler := httpapi.NewHandler(catalog, accounts, checkout, reviews, carts, orders, payments)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	handler.RegisterRoutes(r)

	log.Printf("starting store service on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
