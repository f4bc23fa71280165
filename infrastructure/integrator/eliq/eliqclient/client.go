package eliqclient

import (
	"net/http"
	"time"

	"github.com/rovema/bi-comercial-api/internal/config"
)

type Client interface {
	GetRecharges(params RechargeConsultationParams) (RechargeConsultationResponse, error)
}

type ELIQClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.ELIQ.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &ELIQClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}
