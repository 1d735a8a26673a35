package internal

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"invest-project/internal/adapters/csvsource"
	"invest-project/internal/adapters/filestorage"
	postgres_adapter "invest-project/internal/adapters/postgres"
	rabbitmq_adapter "invest-project/internal/adapters/rabbitmq"
	"invest-project/internal/adapters/zillowfetcher"
	"invest-project/internal/configs"
	"invest-project/internal/constants"
	"invest-project/internal/core/domain"
	"invest-project/internal/core/port"
	"invest-project/internal/core/proforma"
	"invest-project/internal/core/usecase"
	"invest-project/pkg/postgres"
	"invest-project/pkg/rabbitmq/rabbitmq_common"
	"invest-project/pkg/rabbitmq/rabbitmq_consumer"
	"invest-project/pkg/rabbitmq/rabbitmq_producer"

	"github.com/jackc/pgx/v5/pgxpool"
)

const exchangeName = "invest_exchange"

// App – структура приложения
type App struct {
	config        *configs.AppConfig
	dbPool        *pgxpool.Pool
	eventProducer *rabbitmq_producer.Publisher

	// Use Case, который запускается самим приложением
	enqueuePropertiesUseCase *usecase.EnqueuePropertiesUseCase

	// Входящие порты (слушатели событий)
	analysisEventsListener port.EventListenerPort
	proFormaEventsListener port.EventListenerPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// 1. Инициализация низкоуровневых зависимостей
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL: appConfig.Database.URL,
		MaxConns:    int32(appConfig.Database.MaxConns),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	log.Println("Successfully connected to PostgreSQL pool!")

	producerCfg := rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		ExchangeName:             exchangeName,
		ExchangeType:             "direct",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
	}
	eventProducer, err := rabbitmq_producer.NewPublisher(producerCfg)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	log.Println("RabbitMQ Event Producer initialized.")

	// 2. Индекс аренды: локальная копия выгрузки, при её отсутствии —
	// скачивание через fetcher.
	if _, statErr := os.Stat(appConfig.Data.ZoriCSV); statErr != nil {
		log.Printf("App: Rent index file '%s' not found, downloading...\n", appConfig.Data.ZoriCSV)
		fetcher := zillowfetcher.NewZillowFetcherAdapter(appConfig.Data.ZoriURL)
		if dlErr := fetcher.Download(context.Background(), appConfig.Data.ZoriCSV); dlErr != nil {
			eventProducer.Close()
			dbPool.Close()
			return nil, fmt.Errorf("failed to download rent index: %w", dlErr)
		}
	}

	rentIndexSource, err := csvsource.NewRentIndexCSVAdapter(appConfig.Data.ZoriCSV)
	if err != nil {
		eventProducer.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create rent index adapter: %w", err)
	}
	rentIndex, err := rentIndexSource.LoadRentIndex(context.Background())
	if err != nil {
		eventProducer.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to load rent index: %w", err)
	}

	listingSource, err := csvsource.NewListingCSVAdapter(appConfig.Data.PropertyCSV)
	if err != nil {
		eventProducer.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create listing source adapter: %w", err)
	}

	analysisQueueAdapter, _ := rabbitmq_adapter.NewRabbitMQAnalysisQueueAdapter(eventProducer, constants.RoutingKeyAnalysisTasks)
	proFormaQueueAdapter, _ := rabbitmq_adapter.NewRabbitMQProFormaQueueAdapter(eventProducer, constants.RoutingKeyAnalyzedProFormas)
	pgLastRunRepo, _ := postgres_adapter.NewPostgresLastRunRepository(dbPool)

	postgresStorageAdapter, err := postgres_adapter.NewPostgresProFormaStorageAdapter(dbPool)
	if err != nil {
		eventProducer.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres storage adapter: %w", err)
	}

	// Опционально результаты дублируются в CSV-файл рядом с базой.
	var storage port.ProFormaStoragePort = postgresStorageAdapter
	if appConfig.Data.ResultsCSV != "" {
		fileStorageAdapter, fsErr := filestorage.NewProFormaFileStorageAdapter(appConfig.Data.ResultsCSV)
		if fsErr != nil {
			eventProducer.Close()
			dbPool.Close()
			return nil, fmt.Errorf("failed to create file storage adapter: %w", fsErr)
		}
		storage = &fanoutStorage{targets: []port.ProFormaStoragePort{postgresStorageAdapter, fileStorageAdapter}}
		log.Printf("App: Results will also be written to '%s'\n", appConfig.Data.ResultsCSV)
	}

	log.Println("All outgoing adapters initialized.")

	// 3. ИНИЦИАЛИЗАЦИЯ USE CASES (ядра бизнес-логики)
	engine := proforma.NewEngine(rentIndex, time.Now())
	enqueueUseCase := usecase.NewEnqueuePropertiesUseCase(listingSource, analysisQueueAdapter, pgLastRunRepo, "csv")
	analyzeUseCase := usecase.NewAnalyzePropertyUseCase(engine, proFormaQueueAdapter)
	saveUseCase := usecase.NewSaveProFormaUseCase(storage)
	log.Println("All use cases initialized.")

	// 4. ИНИЦИАЛИЗАЦИЯ ВХОДЯЩИХ АДАПТЕРОВ (те, которые ВЫЗЫВАЮТ наше ядро)
	analysisConsumerCfg := rabbitmq_consumer.ConsumerConfig{
		Config:              rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		QueueName:           constants.QueueAnalysisTasks,
		RoutingKeyForBind:   constants.RoutingKeyAnalysisTasks,
		ExchangeNameForBind: exchangeName,
		PrefetchCount:       5,
		DurableQueue:        true,
		ConsumerTag:         "property-analyzer-adapter",
		DeclareQueue:        true,
	}
	analysisListener, err := rabbitmq_adapter.NewAnalysisConsumerAdapter(analysisConsumerCfg, analyzeUseCase)
	if err != nil {
		eventProducer.Close()
		dbPool.Close()
		return nil, err
	}
	log.Println("Analysis Events Listener initialized.")

	proFormaConsumerCfg := rabbitmq_consumer.ConsumerConfig{
		Config:              rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		QueueName:           constants.QueueAnalyzedProFormas,
		DurableQueue:        true,
		ExchangeNameForBind: exchangeName,
		RoutingKeyForBind:   constants.RoutingKeyAnalyzedProFormas,
		PrefetchCount:       1,
		ConsumerTag:         "proforma-saver-adapter",
		DeclareQueue:        true,
	}
	proFormaListener, err := rabbitmq_adapter.NewProFormaConsumerAdapter(proFormaConsumerCfg, saveUseCase)
	if err != nil {
		analysisListener.Close()
		eventProducer.Close()
		dbPool.Close()
		return nil, err
	}
	log.Println("Pro Forma Events Listener initialized.")

	// 5. Собираем приложение
	application := &App{
		config:                   appConfig,
		dbPool:                   dbPool,
		eventProducer:            eventProducer,
		enqueuePropertiesUseCase: enqueueUseCase,
		analysisEventsListener:   analysisListener,
		proFormaEventsListener:   proFormaListener,
	}

	return application, nil
}

// StartPropertyFeeder запускает процесс чтения листингов и постановки
// их в очередь анализа.
func (a *App) StartPropertyFeeder(ctx context.Context) {
	log.Println("App: Initiating property feed...")

	go func() {
		if err := a.enqueuePropertiesUseCase.Execute(ctx); err != nil {
			log.Printf("App: Property feed finished with error: %v", err)
		} else {
			log.Println("App: Property feed finished successfully.")
		}
	}()
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	// Единый контекст приложения для управления graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		log.Println("App: Shutdown sequence initiated...")

		log.Println("App: Waiting for background processes to finish...")
		wg.Wait()
		log.Println("App: All background processes finished.")

		if a.analysisEventsListener != nil {
			if err := a.analysisEventsListener.Close(); err != nil {
				log.Printf("App: Error closing analysis listener: %v\n", err)
			}
		}
		if a.proFormaEventsListener != nil {
			if err := a.proFormaEventsListener.Close(); err != nil {
				log.Printf("App: Error closing pro forma listener: %v\n", err)
			}
		}
		if a.eventProducer != nil {
			if err := a.eventProducer.Close(); err != nil {
				log.Printf("App: Error closing event producer: %v\n", err)
			}
		}
		if a.dbPool != nil {
			a.dbPool.Close()
			log.Println("App: PostgreSQL pool closed.")
		}
		log.Println("Application shut down gracefully.")
	}()

	log.Println("Application is starting...")

	a.StartPropertyFeeder(appCtx)

	consumerErrors := make(chan error, 2)

	// Функция-хелпер для запуска слушателей
	startListener := func(name string, listener port.EventListenerPort) {
		defer wg.Done()
		log.Printf("App: Starting %s...", name)
		if err := listener.Start(appCtx); err != nil {
			log.Printf("App: %s stopped with an unexpected error: %v", name, err)
			consumerErrors <- fmt.Errorf("%s error: %w", name, err)
		} else {
			log.Printf("App: %s stopped gracefully due to context cancellation.", name)
		}
	}

	wg.Add(2)
	go startListener("Analysis Events Listener", a.analysisEventsListener)
	go startListener("Pro Forma Events Listener", a.proFormaEventsListener)

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("Application running. Waiting for signals or consumer error...")
	select {
	case receivedSignal := <-quit:
		log.Printf("App: Received signal: %s. Shutting down...\n", receivedSignal)
	case err := <-consumerErrors:
		log.Printf("App: A critical component failed: %v. Shutting down...\n", err)
	case <-appCtx.Done():
		log.Println("App: Context was cancelled unexpectedly. Shutting down...")
	}

	cancelApp()

	return nil
}

// fanoutStorage пишет про-форму в несколько хранилищ по очереди.
// Ошибка любого из них считается ошибкой сохранения целиком.
type fanoutStorage struct {
	targets []port.ProFormaStoragePort
}

func (s *fanoutStorage) Save(ctx context.Context, record domain.ProFormaRecord) error {
	for _, t := range s.targets {
		if err := t.Save(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
