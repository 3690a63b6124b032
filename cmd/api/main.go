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

	"github.com/ariefcatur/go-shop-backend.git/internal/catalog"
	"github.com/ariefcatur/go-shop-backend.git/internal/config"
	"github.com/ariefcatur/go-shop-backend.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-shop-backend.git/internal/kafka"
	"github.com/ariefcatur/go-shop-backend.git/internal/logging"
	"github.com/ariefcatur/go-shop-backend.git/internal/media"
	"github.com/ariefcatur/go-shop-backend.git/internal/orders"
	"github.com/ariefcatur/go-shop-backend.git/internal/postgres"
	"github.com/ariefcatur/go-shop-backend.git/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Development())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Cloudinary
	mediaStore, err := media.NewCloudinary(
		cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret,
		!cfg.Development())
	if err != nil {
		log.Fatalf("media store: %v", err)
	}

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024, logger)
	prod.Start(ctx)

	// Services & handlers
	cachedStore := catalog.NewCachedStore(&catalog.Repo{DB: db}, rdb, logger)
	catalogSvc := &catalog.Service{
		Store: cachedStore,
		Media: mediaStore,
		Log:   logger,
	}
	orderSvc := orders.NewService(&orders.Repo{DB: db}, prod, cachedStore, cfg.ServiceName, logger)

	responder := &httpx.Responder{Dev: cfg.Development(), Log: logger}
	router := httpx.NewRouter()
	(&httpx.ProductsHandler{Svc: catalogSvc, R: responder}).Register(router)
	(&httpx.OrdersHandler{Svc: orderSvc, R: responder}).Register(router)
	(&httpx.ImagesHandler{Media: mediaStore, R: responder}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // stop accepting -> flush & close writer
	cancel()          // stop producer loop
	prod.WaitClosed() // drain
}
