package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/rovema/bi-comercial-api/infrastructure/database/postgres"
	"github.com/rovema/bi-comercial-api/internal/domain"
)

type ReassignmentRepository interface {
	Reassign(ctx context.Context, saleID string, entry *domain.PortfolioEntry) error
}

type reassignmentRepository struct {
	conn postgres.Conn
}

func NewReassignmentRepository(conn postgres.Conn) ReassignmentRepository {
	return &reassignmentRepository{
		conn: conn,
	}
}

// Reassign atribui uma venda órfã a um consultor dentro de uma única
// transação: atualiza a venda e grava a entrada correspondente na carteira.
// Se qualquer um dos dois passos falhar, nenhum é aplicado.
func (r *reassignmentRepository) Reassign(ctx context.Context, saleID string, entry *domain.PortfolioEntry) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		updateSQL, updateArgs, err := squirrel.
			Update(salesRecordsTable).
			Set("consultant_uid", entry.ConsultantUID).
			Set("manager_uid", entry.ManagerUID).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": saleID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query de atualização da venda: %w", err)
		}

		result, err := tx.ExecContext(ctx, updateSQL, updateArgs...)
		if err != nil {
			return fmt.Errorf("erro ao atualizar venda %s: %w", saleID, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("venda %s não encontrada", saleID)
		}

		upsertSQL, upsertArgs, err := squirrel.StatementBuilder.
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
			return fmt.Errorf("erro ao construir a query da carteira: %w", err)
		}

		if _, err := tx.ExecContext(ctx, upsertSQL, upsertArgs...); err != nil {
			return fmt.Errorf("erro ao gravar carteira do CNPJ %s: %w", entry.CNPJ, err)
		}

		return nil
	})
}
