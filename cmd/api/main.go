package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/rovema/bi-comercial-api/infrastructure/database/postgres"
	"github.com/rovema/bi-comercial-api/infrastructure/integrator/asto/astoclient"
	"github.com/rovema/bi-comercial-api/infrastructure/integrator/eliq/eliqclient"
	"github.com/rovema/bi-comercial-api/infrastructure/repository"
	"github.com/rovema/bi-comercial-api/internal/api"
	"github.com/rovema/bi-comercial-api/internal/config"
	"github.com/rovema/bi-comercial-api/internal/scheduler"
	"github.com/rovema/bi-comercial-api/internal/usecases/aggregating"
	"github.com/rovema/bi-comercial-api/internal/usecases/authenticating"
	"github.com/rovema/bi-comercial-api/internal/usecases/ingesting"
	"github.com/rovema/bi-comercial-api/internal/usecases/portfolio"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	salesRecordRepo := repository.NewSalesRecordRepository(pgConn)
	portfolioRepo := repository.NewPortfolioRepository(pgConn)
	reassignmentRepo := repository.NewReassignmentRepository(pgConn)
	kpiSnapshotRepo := repository.NewKPISnapshotRepository(pgConn)
	auditLogRepo := repository.NewAuditLogRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, auditLogRepo, cfg)

	portfolioService := portfolio.NewService(
		portfolioRepo,
		salesRecordRepo,
		reassignmentRepo,
		auditLogRepo,
		time.Duration(cfg.Portfolio.CacheTTLMinutes)*time.Minute,
	)

	eliqClient := eliqclient.NewClient(cfg)
	astoClient := astoclient.NewClient(cfg)

	ingestingService := ingesting.NewService(
		cfg,
		portfolioService,
		salesRecordRepo,
		auditLogRepo,
		eliqClient,
		astoClient,
	)

	aggregatingService := aggregating.NewService(salesRecordRepo, kpiSnapshotRepo, auditLogRepo)

	// Inicializa o agendador de recálculo do snapshot de KPIs
	kpiSnapshotSyncService := scheduler.NewKPISnapshotSyncService(aggregatingService, cfg)

	if err := kpiSnapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do snapshot de KPIs")
	} else {
		logrus.Info("Agendador do snapshot de KPIs iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		ingestingService,
		portfolioService,
		aggregatingService,
		auditLogRepo,
		kpiSnapshotSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
