package scheduler

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rovema/bi-comercial-api/internal/config"
	"github.com/rovema/bi-comercial-api/internal/domain"
	aggregatingmocks "github.com/rovema/bi-comercial-api/internal/usecases/aggregating/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func syncConfig(enabled bool) *config.Config {
	return &config.Config{
		KPISnapshotSync: config.KPISnapshotSync{
			CronSchedule: "0 4 * * *",
			Enabled:      enabled,
		},
	}
}

func TestStartDisabledDoesNotSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregatingService := aggregatingmocks.NewMockService(ctrl)
	service := NewKPISnapshotSyncService(aggregatingService, syncConfig(false))

	err := service.Start(context.Background())
	require.NoError(t, err)

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_enabled"])
	assert.Equal(t, false, status["sync_running"])
}

func TestStartEnabledSchedulesAndStopsOnContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregatingService := aggregatingmocks.NewMockService(ctrl)
	service := NewKPISnapshotSyncService(aggregatingService, syncConfig(true))

	ctx, cancel := context.WithCancel(context.Background())
	err := service.Start(ctx)
	require.NoError(t, err)

	status := service.GetStatus()
	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 4 * * *", status["sync_cron"])

	cancel()
}

func TestStartInvalidCronFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregatingService := aggregatingmocks.NewMockService(ctrl)
	cfg := syncConfig(true)
	cfg.KPISnapshotSync.CronSchedule = "isto não é cron"
	service := NewKPISnapshotSyncService(aggregatingService, cfg)

	err := service.Start(context.Background())
	require.Error(t, err)
}

func TestGetStatusDuranteRecalculo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregatingService := aggregatingmocks.NewMockService(ctrl)
	service := NewKPISnapshotSyncService(aggregatingService, syncConfig(true))

	release := make(chan struct{})
	aggregatingService.EXPECT().
		RefreshKPISnapshot("scheduler").
		DoAndReturn(func(string) (*domain.KPISnapshot, error) {
			<-release
			return &domain.KPISnapshot{}, nil
		})

	service.TriggerManualSync()

	// Consulta o status em paralelo enquanto o recálculo segue em andamento;
	// sob -race isto flagra leitura dos campos fora da trava
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				service.GetStatus()
			}
		}()
	}
	wg.Wait()

	close(release)

	assert.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTriggerManualSync(t *testing.T) {
	t.Run("dispara o recálculo e registra a conclusão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		aggregatingService := aggregatingmocks.NewMockService(ctrl)
		service := NewKPISnapshotSyncService(aggregatingService, syncConfig(true))

		done := make(chan struct{})
		aggregatingService.EXPECT().
			RefreshKPISnapshot("scheduler").
			DoAndReturn(func(string) (*domain.KPISnapshot, error) {
				defer close(done)
				return &domain.KPISnapshot{}, nil
			})

		service.TriggerManualSync()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("recálculo manual não executou")
		}

		// O defer do refreshSnapshot ainda pode estar rodando
		assert.Eventually(t, func() bool {
			status := service.GetStatus()
			return status["sync_running"] == false && status["last_sync_error"] == ""
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("falha no recálculo fica visível no status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		aggregatingService := aggregatingmocks.NewMockService(ctrl)
		service := NewKPISnapshotSyncService(aggregatingService, syncConfig(true))

		aggregatingService.EXPECT().
			RefreshKPISnapshot("scheduler").
			Return(nil, fmt.Errorf("erro ao gravar snapshot de KPIs: disk full"))

		service.TriggerManualSync()

		assert.Eventually(t, func() bool {
			status := service.GetStatus()
			errMsg, _ := status["last_sync_error"].(string)
			return status["sync_running"] == false && errMsg != ""
		}, 2*time.Second, 10*time.Millisecond)
	})
}
