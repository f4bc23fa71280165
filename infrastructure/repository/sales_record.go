package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/rovema/bi-comercial-api/infrastructure/database/postgres"
	"github.com/rovema/bi-comercial-api/internal/domain"
)

const (
	salesRecordsTable = "sales_records"

	salesRecordColumns = "id, source, raw_id, client_cnpj, client_name, consultant_uid, manager_uid, date, revenue_gross, revenue_net, product_name, product_detail, status, created_at, updated_at"
)

type SalesRecordRepository interface {
	BatchUpsert(records []*domain.SalesRecord) (int64, error)
	GetByDateRange(source domain.SalesSource, startDate, endDate time.Time) ([]*domain.SalesRecord, error)
	GetByConsultant(consultantUID string, startDate, endDate time.Time) ([]*domain.SalesRecord, error)
	ListOrphans(limit uint64) ([]*domain.SalesRecord, error)
	CountBySource() (map[domain.SalesSource]int64, error)
}

type salesRecordRepository struct {
	conn *postgres.Connection
}

func NewSalesRecordRepository(conn *postgres.Connection) SalesRecordRepository {
	return &salesRecordRepository{
		conn: conn,
	}
}

// BatchUpsert grava um lote de vendas em um único INSERT multi-linha.
// O conflito na chave determinística atualiza o registro existente, o que
// torna a reingestão do mesmo arquivo idempotente. O chamador é responsável
// por respeitar o tamanho máximo de lote.
func (r *salesRecordRepository) BatchUpsert(records []*domain.SalesRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	builder := squirrel.StatementBuilder.
		Insert(salesRecordsTable).
		Columns(
			"id", "source", "raw_id", "client_cnpj", "client_name",
			"consultant_uid", "manager_uid", "date", "revenue_gross",
			"revenue_net", "product_name", "product_detail", "status",
		).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				client_cnpj = EXCLUDED.client_cnpj,
				client_name = EXCLUDED.client_name,
				consultant_uid = EXCLUDED.consultant_uid,
				manager_uid = EXCLUDED.manager_uid,
				date = EXCLUDED.date,
				revenue_gross = EXCLUDED.revenue_gross,
				revenue_net = EXCLUDED.revenue_net,
				product_name = EXCLUDED.product_name,
				product_detail = EXCLUDED.product_detail,
				status = EXCLUDED.status,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	for _, rec := range records {
		builder = builder.Values(
			rec.ID,
			rec.Source,
			rec.RawID,
			rec.ClientCNPJ,
			rec.ClientName,
			rec.ConsultantUID,
			rec.ManagerUID,
			rec.Date.Format(time.DateOnly),
			rec.RevenueGross,
			rec.RevenueNet,
			rec.ProductName,
			rec.ProductDetail,
			rec.Status,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *salesRecordRepository) GetByDateRange(source domain.SalesSource, startDate, endDate time.Time) ([]*domain.SalesRecord, error) {
	query, args, err := squirrel.
		Select(salesRecordColumns).
		From(salesRecordsTable).
		Where(squirrel.Eq{"source": source}).
		Where(squirrel.GtOrEq{"date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"date": endDate.Format(time.DateOnly)}).
		OrderBy("date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryRecords(query, args...)
}

func (r *salesRecordRepository) GetByConsultant(consultantUID string, startDate, endDate time.Time) ([]*domain.SalesRecord, error) {
	query, args, err := squirrel.
		Select(salesRecordColumns).
		From(salesRecordsTable).
		Where(squirrel.Eq{"consultant_uid": consultantUID}).
		Where(squirrel.GtOrEq{"date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"date": endDate.Format(time.DateOnly)}).
		OrderBy("date DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryRecords(query, args...)
}

// ListOrphans retorna as vendas sem consultor nem gestor atribuído
func (r *salesRecordRepository) ListOrphans(limit uint64) ([]*domain.SalesRecord, error) {
	query, args, err := squirrel.
		Select(salesRecordColumns).
		From(salesRecordsTable).
		Where("consultant_uid IS NULL AND manager_uid IS NULL").
		OrderBy("date DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryRecords(query, args...)
}

func (r *salesRecordRepository) CountBySource() (map[domain.SalesSource]int64, error) {
	query, args, err := squirrel.
		Select("source", "COUNT(*)").
		From(salesRecordsTable).
		GroupBy("source").
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

	counts := make(map[domain.SalesSource]int64)
	for rows.Next() {
		var source domain.SalesSource
		var count int64
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("erro ao escanear contagem: %w", err)
		}
		counts[source] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return counts, nil
}

func (r *salesRecordRepository) queryRecords(query string, args ...interface{}) ([]*domain.SalesRecord, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.SalesRecord, 0)
	for rows.Next() {
		record, err := scanSalesRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func scanSalesRecord(rows *sql.Rows) (*domain.SalesRecord, error) {
	record := &domain.SalesRecord{}

	err := rows.Scan(
		&record.ID,
		&record.Source,
		&record.RawID,
		&record.ClientCNPJ,
		&record.ClientName,
		&record.ConsultantUID,
		&record.ManagerUID,
		&record.Date,
		&record.RevenueGross,
		&record.RevenueNet,
		&record.ProductName,
		&record.ProductDetail,
		&record.Status,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return record, nil
}
