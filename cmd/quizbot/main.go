package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SynapSnap/quizbot/internal/app"
)

func main() {
	configPath := flag.String("config", "configs/values.yaml", "путь к файлу конфигурации")
	flag.Parse()

	if env := os.Getenv("CONFIG_PATH"); env != "" {
		*configPath = env
	}

	application, err := app.NewApp(*configPath)
	if err != nil {
		log.Fatalf("app.NewApp: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("app.ListenAndServe: %v", err)
		}
	case <-ctx.Done():
		log.Println("получен сигнал остановки")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Printf("app.Shutdown: %v", err)
	}
}
