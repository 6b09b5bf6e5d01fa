package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"collab-relay/internal/config"
	"collab-relay/internal/dispatch"
	"collab-relay/internal/handlers"
	"collab-relay/internal/middleware"
	"collab-relay/internal/observability"
	"collab-relay/internal/rabbitmq"
	"collab-relay/internal/store"
	"collab-relay/internal/telemetry"
	"collab-relay/internal/ws"
)

const serviceName = "collab-relay"

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.OTLPEndpoint, serviceName, cfg.Environment)
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer publisher.Close()
	observability.SetPublisher(publisher)
	if mode := rabbitmq.PublisherMode(publisher); mode == "noop" {
		log.Printf("event publisher mode=%s reason=%s", mode, rabbitmq.PublisherNoopReason(publisher))
	}

	auditEmitter := telemetry.NewAuditEmitter(publisher, "audit_log.collab", serviceName, cfg.Environment)

	sessions := store.NewSessionStore()
	identities := store.NewIdentityStore()
	social := store.NewSocialStore()
	notifications := store.NewNotificationStore()

	hub := ws.NewHub()
	dispatcher := dispatch.New(sessions, identities, social, notifications, hub)
	collabWS := ws.NewCollabWebSocketHandler(hub, dispatcher, cfg.ReadTimeout)
	sessionHandler := handlers.NewSessionHandler(sessions, hub)

	router := gin.Default()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/health", sessionHandler.Health)
	router.GET("/api/sessions", sessionHandler.ListSessions)
	router.GET("/api/sessions/:projectId", sessionHandler.GetSession)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", collabWS.Handle)

	handlers.RegisterDebugRoutes(router, auditEmitter, cfg.DebugRoutes)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}

	go func() {
		log.Printf("collaboration relay listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	auditEmitter.Emit(ctx, "INFO", "collab relay started", "", nil)

	<-ctx.Done()
	log.Printf("shutting down")

	hub.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
