package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/rovema/bi-comercial-api/infrastructure/database/postgres"
	"github.com/rovema/bi-comercial-api/internal/domain"
)

const (
	auditLogsTable = "audit_logs"
)

// AuditLogRepository grava a trilha de auditoria. A tabela é somente
// de inserção, sem atualização nem remoção.
type AuditLogRepository interface {
	Insert(log *domain.AuditLog) error
	List(limit uint64) ([]*domain.AuditLog, error)
}

type auditLogRepository struct {
	conn *postgres.Connection
}

func NewAuditLogRepository(conn *postgres.Connection) AuditLogRepository {
	return &auditLogRepository{
		conn: conn,
	}
}

func (r *auditLogRepository) Insert(log *domain.AuditLog) error {
	query, args, err := squirrel.StatementBuilder.
		Insert(auditLogsTable).
		Columns("id", "timestamp", "user_email", "action", "details").
		Values(log.ID, log.Timestamp, log.UserEmail, log.Action, log.Details).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao gravar log de auditoria: %w", err)
	}

	return nil
}

func (r *auditLogRepository) List(limit uint64) ([]*domain.AuditLog, error) {
	query, args, err := squirrel.
		Select("id", "timestamp", "user_email", "action", "details").
		From(auditLogsTable).
		OrderBy("timestamp DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	logs := make([]*domain.AuditLog, 0)
	for rows.Next() {
		log := &domain.AuditLog{}
		if err := rows.Scan(&log.ID, &log.Timestamp, &log.UserEmail, &log.Action, &log.Details); err != nil {
			return nil, fmt.Errorf("erro ao escanear log de auditoria: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return logs, nil
}
