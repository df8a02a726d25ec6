package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"medistore/internal/admin"
	"medistore/internal/auth"
	"medistore/internal/cache"
	"medistore/internal/catalog"
	"medistore/internal/config"
	mydb "medistore/internal/db"
	"medistore/internal/events"
	"medistore/internal/httpapi"
	"medistore/internal/order"
)

// fileExists backs the .env diagnostics below.
func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func main() {
	cfg := config.Load()
	if cfg.DatabaseDSN == "" {
		log.Println("WARN: DB_DSN still empty; CWD check…")
		if wd, err := os.Getwd(); err == nil {
			log.Println("CWD:", wd)
		}
		log.Println("Exists ./.env? ", fileExists(".env"))
		log.Println("Exists ../.env?", fileExists("../.env"))
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db := mydb.MustOpen(cfg.DatabaseDSN)
	defer func() {
		if err := mydb.Close(db); err != nil {
			log.Println("close db:", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var c cache.Cache = cache.Nop{}
	if cfg.RedisAddr != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		rc, err := cache.NewRedis(pingCtx, cfg.RedisAddr)
		cancel()
		if err != nil {
			log.Println("WARN: caching disabled:", err)
		} else {
			defer rc.Close()
			c = rc
		}
	}

	var pub events.Publisher = events.Nop{}
	if cfg.KafkaBroker != "" {
		kp := events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		defer kp.Close()
		pub = kp
		log.Printf("Publishing events to %s on %s", cfg.KafkaTopic, cfg.KafkaBroker)
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	r := httpapi.NewRouter(httpapi.Deps{
		DB:          db,
		Tokens:      tokens,
		Auth:        auth.NewService(db, tokens),
		Catalog:     catalog.NewService(db, c, pub),
		Orders:      order.NewService(db, c, pub),
		Admin:       admin.NewService(db, c),
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Println("Server listening on :" + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("shutdown:", err)
	}
}
