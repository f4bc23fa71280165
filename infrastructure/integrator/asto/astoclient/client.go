package astoclient

import (
	"net/http"
	"time"

	"github.com/rovema/bi-comercial-api/internal/config"
)

type Client interface {
	GetSettlements(params SettlementConsultationParams) (SettlementConsultationResponse, error)
}

type ASTOClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	// A API da ASTO leva minutos para fechar apurações de períodos longos
	timeout := time.Duration(cfg.ASTO.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &ASTOClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}
