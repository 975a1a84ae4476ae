package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/missoes-dashboard-api/internal/cache"
	"github.com/missoes-dashboard-api/internal/config"
	"github.com/missoes-dashboard-api/internal/services"
	"github.com/missoes-dashboard-api/internal/storage"
)

// Worker responsável por reduzir comprovantes de lançamento de forma assíncrona
func main() {
	log.Println("Iniciando Receipt Processing Worker...")

	// Carregar configuração
	cfg := config.Load()

	// Conectar ao Redis
	redisClient, err := cache.NewClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Erro ao conectar no Redis: %v", err)
	}
	defer redisClient.Close()

	// Inicializar Storage Driver
	storageDriver, err := storage.NewDriver(&storage.Config{
		Driver:             cfg.Storage.Driver,
		UploadsPath:        cfg.Storage.UploadsPath,
		AWSAccessKeyID:     cfg.Storage.AWSAccessKeyID,
		AWSSecretAccessKey: cfg.Storage.AWSSecretAccessKey,
		AWSRegion:          cfg.Storage.AWSRegion,
		AWSBucket:          cfg.Storage.AWSBucket,
		R2AccessKeyID:      cfg.Storage.R2AccessKeyID,
		R2SecretAccessKey:  cfg.Storage.R2SecretAccessKey,
		R2AccountID:        cfg.Storage.R2AccountID,
		R2Bucket:           cfg.Storage.R2Bucket,
		R2PublicURL:        cfg.Storage.R2PublicURL,
	})
	if err != nil {
		log.Fatalf("Erro ao inicializar storage driver: %v", err)
	}

	processor := services.NewReceiptProcessor(storageDriver)

	log.Println("Conexões estabelecidas. Worker pronto para processar comprovantes.")

	// Canal para receber sinais de interrupção
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Context para gerenciar lifecycle
	ctxWorker, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Subscriber para eventos de processamento de comprovantes
	pubsub := redisClient.Client.Subscribe(ctxWorker, services.ReceiptProcessChannel)
	defer pubsub.Close()

	// Goroutine para processar mensagens
	go func() {
		for {
			select {
			case <-ctxWorker.Done():
				return
			default:
				msg, err := pubsub.ReceiveMessage(ctxWorker)
				if err != nil {
					if ctxWorker.Err() != nil {
						return
					}
					log.Printf("Erro ao receber mensagem: %v", err)
					time.Sleep(1 * time.Second)
					continue
				}

				var event services.ReceiptProcessEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("Erro ao fazer parse do evento: %v", err)
					continue
				}

				log.Printf("Processando comprovante: missao=%s, path=%s", event.Slug, event.StoragePath)

				if err := processor.Process(ctxWorker, event); err != nil {
					log.Printf("Erro ao processar comprovante %s: %v", event.StoragePath, err)
				} else {
					log.Printf("Comprovante %s processado com sucesso", event.StoragePath)
				}
			}
		}
	}()

	log.Println("Worker em execução. Aguardando eventos...")

	// Aguardar sinal de interrupção
	<-quit
	log.Println("Encerrando worker...")

	cancel()

	// Wait a bit for cleanup
	time.Sleep(2 * time.Second)

	log.Println("Worker encerrado.")
}
