package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/rovema/bi-comercial-api/infrastructure/database/postgres"
	"github.com/rovema/bi-comercial-api/internal/domain"
)

const (
	portfolioTable = "portfolio_entries"
)

type PortfolioRepository interface {
	GetAll() ([]*domain.PortfolioEntry, error)
	GetByCNPJ(cnpj string) (*domain.PortfolioEntry, error)
	GetByConsultant(consultantUID string) ([]*domain.PortfolioEntry, error)
	Upsert(entry *domain.PortfolioEntry) error
	Delete(cnpj string) error
}

type portfolioRepository struct {
	conn *postgres.Connection
}

func NewPortfolioRepository(conn *postgres.Connection) PortfolioRepository {
	return &portfolioRepository{
		conn: conn,
	}
}

func (r *portfolioRepository) GetAll() ([]*domain.PortfolioEntry, error) {
	query, args, err := squirrel.
		Select("cnpj", "client_name", "consultant_uid", "manager_uid", "created_at", "updated_at").
		From(portfolioTable).
		OrderBy("client_name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryEntries(query, args...)
}

func (r *portfolioRepository) GetByCNPJ(cnpj string) (*domain.PortfolioEntry, error) {
	query, args, err := squirrel.
		Select("cnpj", "client_name", "consultant_uid", "manager_uid", "created_at", "updated_at").
		From(portfolioTable).
		Where(squirrel.Eq{"cnpj": cnpj}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	entry := &domain.PortfolioEntry{}
	err = r.conn.QueryRow(query, args...).Scan(
		&entry.CNPJ,
		&entry.ClientName,
		&entry.ConsultantUID,
		&entry.ManagerUID,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar entrada da carteira: %w", err)
	}

	return entry, nil
}

func (r *portfolioRepository) GetByConsultant(consultantUID string) ([]*domain.PortfolioEntry, error) {
	query, args, err := squirrel.
		Select("cnpj", "client_name", "consultant_uid", "manager_uid", "created_at", "updated_at").
		From(portfolioTable).
		Where(squirrel.Eq{"consultant_uid": consultantUID}).
		OrderBy("client_name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryEntries(query, args...)
}

func (r *portfolioRepository) Upsert(entry *domain.PortfolioEntry) error {
	query, args, err := squirrel.StatementBuilder.
		Insert(portfolioTable).
		Columns("cnpj", "client_name", "consultant_uid", "manager_uid").
		Values(entry.CNPJ, entry.ClientName, entry.ConsultantUID, entry.ManagerUID).
		Suffix(`
			ON CONFLICT (cnpj) DO UPDATE SET
				client_name = EXCLUDED.client_name,
				consultant_uid = EXCLUDED.consultant_uid,
				manager_uid = EXCLUDED.manager_uid,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao gravar entrada da carteira: %w", err)
	}

	return nil
}

func (r *portfolioRepository) Delete(cnpj string) error {
	query, args, err := squirrel.
		Delete(portfolioTable).
		Where(squirrel.Eq{"cnpj": cnpj}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover entrada da carteira: %w", err)
	}

	return nil
}

func (r *portfolioRepository) queryEntries(query string, args ...interface{}) ([]*domain.PortfolioEntry, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.PortfolioEntry, 0)
	for rows.Next() {
		entry := &domain.PortfolioEntry{}
		if err := rows.Scan(
			&entry.CNPJ,
			&entry.ClientName,
			&entry.ConsultantUID,
			&entry.ManagerUID,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear entrada da carteira: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}
