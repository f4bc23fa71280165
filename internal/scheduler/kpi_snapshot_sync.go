package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rovema/bi-comercial-api/internal/config"
	"github.com/rovema/bi-comercial-api/internal/usecases/aggregating"
	"github.com/sirupsen/logrus"
)

const kpiSyncTriggeredBy = "scheduler"

// KPISnapshotSyncConfig representa a configuração do agendador do snapshot de KPIs
type KPISnapshotSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// KPISnapshotSyncService gerencia o recálculo agendado do consolidado do dashboard
type KPISnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              KPISnapshotSyncConfig
	aggregatingService  aggregating.Service
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

// NewKPISnapshotSyncService cria uma nova instância do serviço de recálculo de KPIs
func NewKPISnapshotSyncService(
	aggregatingService aggregating.Service,
	appConfig *config.Config,
) *KPISnapshotSyncService {
	syncConfig := KPISnapshotSyncConfig{
		CronSchedule: appConfig.KPISnapshotSync.CronSchedule,
		SyncEnabled:  appConfig.KPISnapshotSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador do snapshot de KPIs carregada")

	return &KPISnapshotSyncService{
		scheduler:          scheduler,
		config:             syncConfig,
		aggregatingService: aggregatingService,
		syncRunning:        false,
	}
}

// Start inicia o agendador
func (s *KPISnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Recálculo agendado do snapshot de KPIs desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do snapshot de KPIs")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refreshSnapshot()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recálculo do snapshot de KPIs: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do snapshot de KPIs")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshSnapshot recalcula o consolidado, com trava contra execuções sobrepostas
func (s *KPISnapshotSyncService) refreshSnapshot() {
	startTime := time.Now()

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recálculo do snapshot de KPIs já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando recálculo do snapshot de KPIs")

	if _, err := s.aggregatingService.RefreshKPISnapshot(kpiSyncTriggeredBy); err != nil {
		// O último snapshot persistido continua valendo para o dashboard
		s.syncMutex.Lock()
		s.lastSyncError = err.Error()
		s.syncMutex.Unlock()
		logrus.WithError(err).Error("Erro ao recalcular snapshot de KPIs")
		return
	}

	s.syncMutex.Lock()
	s.lastSyncError = ""
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()

	logrus.WithField("duration", time.Since(startTime).String()).Info("Recálculo do snapshot de KPIs concluído")
}

// TriggerManualSync inicia manualmente um recálculo do snapshot de KPIs
func (s *KPISnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recálculo do snapshot de KPIs já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recálculo manual do snapshot de KPIs")
	go s.refreshSnapshot()
}

// GetStatus retorna o status atual do agendador. O status é consultado
// pela API enquanto o recálculo roda em outra goroutine, então a leitura
// dos campos acontece sob a mesma trava das escritas.
func (s *KPISnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
