package astoclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	astodomain "github.com/rovema/bi-comercial-api/infrastructure/integrator/asto/domain"
)

type SettlementConsultationParams struct {
	StartDate string
	EndDate   string
}

type SettlementConsultationResponse []astodomain.Settlement

func (c *ASTOClient) GetSettlements(params SettlementConsultationParams) (SettlementConsultationResponse, error) {
	var response SettlementConsultationResponse

	timeout := time.Duration(c.config.ASTO.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Construir a URL da requisição.
	endpoint, err := url.Parse(c.config.ASTO.URL)
	if err != nil {
		return response, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/apuracoes")

	// Adicionar parâmetros de consulta.
	query := endpoint.Query()
	query.Set("dataInicio", params.StartDate)
	query.Set("dataFim", params.EndDate)
	endpoint.RawQuery = query.Encode()

	// Criar a requisição HTTP.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return response, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.SetBasicAuth(c.config.ASTO.User, c.config.ASTO.Password)
	req.Header.Set("Accept", "application/json")

	// Executar a requisição.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return response, fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	// Decodificar a resposta JSON.
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return response, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return response, nil
}
