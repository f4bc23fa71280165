package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/rovema/bi-comercial-api/infrastructure/database/postgres"
	"github.com/rovema/bi-comercial-api/internal/domain"
)

const (
	kpiSnapshotsTable = "kpi_snapshots"
)

// KPISnapshotRepository persiste o consolidado do dashboard.
// Cada recálculo insere uma nova linha; a leitura sempre devolve a mais
// recente, então uma falha de recálculo nunca apaga o último dado bom.
type KPISnapshotRepository interface {
	Save(snapshot *domain.KPISnapshot, opportunities []*domain.Opportunity) error
	GetLatest() (*domain.KPISnapshot, []*domain.Opportunity, error)
}

type kpiSnapshotRepository struct {
	conn *postgres.Connection
}

func NewKPISnapshotRepository(conn *postgres.Connection) KPISnapshotRepository {
	return &kpiSnapshotRepository{
		conn: conn,
	}
}

func (r *kpiSnapshotRepository) Save(snapshot *domain.KPISnapshot, opportunities []*domain.Opportunity) error {
	opportunitiesJSON, err := json.Marshal(opportunities)
	if err != nil {
		return fmt.Errorf("erro ao serializar tabela de oportunidades: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert(kpiSnapshotsTable).
		Columns(
			"rovemapay_gmv", "rovemapay_receita", "rovemapay_ticket_medio",
			"rovemapay_clientes_ativos", "bionio_gmv", "bionio_pedidos_total",
			"bionio_orgs_ativas", "clientes_crossover", "tabela_oportunidades",
			"generated_at",
		).
		Values(
			snapshot.RovemaPayGMV,
			snapshot.RovemaPayRevenue,
			snapshot.RovemaPayAvgTicket,
			snapshot.RovemaPayClients,
			snapshot.BionioGMV,
			snapshot.BionioOrders,
			snapshot.BionioOrgs,
			snapshot.CrossoverClients,
			opportunitiesJSON,
			snapshot.GeneratedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao gravar snapshot de KPIs: %w", err)
	}

	return nil
}

func (r *kpiSnapshotRepository) GetLatest() (*domain.KPISnapshot, []*domain.Opportunity, error) {
	query, args, err := squirrel.
		Select(
			"id", "rovemapay_gmv", "rovemapay_receita", "rovemapay_ticket_medio",
			"rovemapay_clientes_ativos", "bionio_gmv", "bionio_pedidos_total",
			"bionio_orgs_ativas", "clientes_crossover", "tabela_oportunidades",
			"generated_at",
		).
		From(kpiSnapshotsTable).
		OrderBy("generated_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	snapshot := &domain.KPISnapshot{}
	var opportunitiesJSON []byte

	err = r.conn.QueryRow(query, args...).Scan(
		&snapshot.ID,
		&snapshot.RovemaPayGMV,
		&snapshot.RovemaPayRevenue,
		&snapshot.RovemaPayAvgTicket,
		&snapshot.RovemaPayClients,
		&snapshot.BionioGMV,
		&snapshot.BionioOrders,
		&snapshot.BionioOrgs,
		&snapshot.CrossoverClients,
		&opportunitiesJSON,
		&snapshot.GeneratedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao buscar snapshot de KPIs: %w", err)
	}

	opportunities := make([]*domain.Opportunity, 0)
	if opportunitiesJSON != nil {
		if err := json.Unmarshal(opportunitiesJSON, &opportunities); err != nil {
			return nil, nil, fmt.Errorf("erro ao deserializar tabela de oportunidades: %w", err)
		}
	}

	return snapshot, opportunities, nil
}
