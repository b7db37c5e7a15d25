package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/taskhaven/taskhaven-go/internal/config"
	"github.com/taskhaven/taskhaven-go/internal/handler"
	"github.com/taskhaven/taskhaven-go/internal/middleware"
	"github.com/taskhaven/taskhaven-go/internal/service"
	"github.com/taskhaven/taskhaven-go/internal/store/mysql"
	"github.com/taskhaven/taskhaven-go/static"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := mysql.Open(ctx, cfg.DatabaseDSN)
	cancel()
	if err != nil {
		slog.Error("database setup failed", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	authService := service.NewAuthService(st, cfg.JWTSecret, cfg.JWTExpiry)
	authHandler := handler.NewAuthHandler(authService)

	todoService := service.NewTodoService(st)
	todoHandler := handler.NewTodoHandler(todoService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Handle("/*", http.FileServer(http.FS(static.FS())))

	r.Post("/api/rpc/auth.register", authHandler.HandleRegister)
	r.Post("/api/rpc/auth.login", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(cfg.JWTSecret, st))
		r.Get("/api/rpc/auth.me", authHandler.HandleMe)

		r.Post("/api/rpc/todos.createTodo", todoHandler.HandleCreateTodo)
		r.Get("/api/rpc/todos.getTodoById", todoHandler.HandleGetTodoByID)
		r.Post("/api/rpc/todos.updateTodo", todoHandler.HandleUpdateTodo)
		r.Post("/api/rpc/todos.deleteTodo", todoHandler.HandleDeleteTodo)
		r.Get("/api/rpc/todos.getAllTodos", todoHandler.HandleGetAllTodos)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
