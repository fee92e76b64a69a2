package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "routeadmin/internal/config"
	router "routeadmin/internal/http"
	h "routeadmin/internal/http/handlers"
	"routeadmin/internal/http/middleware"
	"routeadmin/internal/repositories"
	"routeadmin/internal/routesapi"
	"routeadmin/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	if env.APIURL == "" {
		log.Fatalf("API_URL is required")
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatalf("audit journal: %v", err)
	}
	defer intconfig.CloseDB()

	var audit *repositories.AuditRepository
	if db != nil {
		audit = &repositories.AuditRepository{DB: db, Driver: env.AuditDriver}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := audit.EnsureSchema(ctx)
		cancel()
		if err != nil {
			log.Fatalf("audit journal: %v", err)
		}
	}

	client := routesapi.New(env.APIURL, routesapi.WithTimeout(env.APITimeout))
	store := services.NewSessionStore(env.SessionTTL, func(sessionID string) *services.RouteList {
		l := services.NewRouteList(client)
		l.SessionID = sessionID
		if audit != nil {
			l.Audit = audit
		}
		return l
	})

	key, err := middleware.DeriveSessionKey(env.SessionKey)
	if err != nil {
		log.Fatalf("session key: %v", err)
	}
	if env.SessionKey == "" {
		log.Println("warning: SESSION_SECRET not set, sessions reset on restart")
	}

	console := &h.Console{Sessions: store, FontPath: env.PDFFont}
	if audit != nil {
		console.Audit = audit
	}

	r, err := router.NewRouter(env, router.Deps{Console: console, SessionKey: key})
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go store.RunJanitor(ctx, time.Minute)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      env.APITimeout*2 + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Route console on http://localhost%s (backend %s)", env.AppAddr, client.BaseURL())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}

	log.Println("Server stopped.")
}
