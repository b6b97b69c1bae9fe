package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/luminacoach/lumina/internal/config"
	dbpkg "github.com/luminacoach/lumina/internal/db"
	"github.com/luminacoach/lumina/internal/infra/payments"
	"github.com/luminacoach/lumina/internal/infra/storage"
	"github.com/luminacoach/lumina/internal/routes"
	"github.com/luminacoach/lumina/internal/tokenstore"
)

const auditBuffer = 256

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	defer dbpkg.Close(db)

	tokens, err := tokenstore.New(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to configure token store: %v", err)
	}

	deps := routes.Deps{
		DB:          db,
		Config:      cfg,
		Tokens:      tokens,
		Registry:    prometheus.NewRegistry(),
		AuditBuffer: auditBuffer,
	}
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if cfg.S3Enabled() {
		deps.Avatars = storage.NewS3Store(cfg)
	} else {
		log.Println("S3 not configured, avatar uploads disabled")
	}

	if cfg.MercadoPagoToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			log.Fatalf("failed to configure payments: %v", err)
		}
		deps.Payments = mp
	} else {
		log.Println("MERCADOPAGO_ACCESS_TOKEN not set, checkout disabled")
	}

	if cfg.DevMode {
		log.Println("DEV_MODE on: /api/dev/reset enabled, CORS open")
	}

	r := gin.Default()
	routes.RegisterRoutes(r, deps)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
