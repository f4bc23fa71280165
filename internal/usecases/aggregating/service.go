package aggregating

import (
	"fmt"
	"sort"
	"time"

	"github.com/rovema/bi-comercial-api/infrastructure/repository"
	"github.com/rovema/bi-comercial-api/internal/domain"
	"github.com/rovema/bi-comercial-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// KPIReport é o consolidado servido ao dashboard: o último snapshot
// persistido mais a tabela de oportunidades de venda cruzada
type KPIReport struct {
	Snapshot      *domain.KPISnapshot   `json:"snapshot"`
	Opportunities []*domain.Opportunity `json:"opportunities"`
}

// ClientTotal é o total vendido para um cliente em um período
type ClientTotal struct {
	CNPJ       string  `json:"cnpj"`
	ClientName string  `json:"client_name"`
	Gross      float64 `json:"gross"`
	Revenue    float64 `json:"revenue"`
	SalesCount int     `json:"sales_count"`
}

// ConsultantReport resume as vendas da carteira de um consultor
type ConsultantReport struct {
	ConsultantUID string         `json:"consultant_uid"`
	Gross         float64        `json:"gross"`
	Revenue       float64        `json:"revenue"`
	SalesCount    int            `json:"sales_count"`
	Clients       []*ClientTotal `json:"clients"`
}

type Service interface {
	Monthly(source domain.SalesSource, startDate, endDate time.Time) ([]*domain.MonthlyBucket, error)
	RefreshKPISnapshot(triggeredBy string) (*domain.KPISnapshot, error)
	DashboardKPIs() (*KPIReport, error)
	ConsultantSales(consultantUID string, startDate, endDate time.Time) (*ConsultantReport, error)
}

type service struct {
	salesRecordRepo repository.SalesRecordRepository
	kpiSnapshotRepo repository.KPISnapshotRepository
	auditLogRepo    repository.AuditLogRepository
}

func NewService(
	salesRecordRepo repository.SalesRecordRepository,
	kpiSnapshotRepo repository.KPISnapshotRepository,
	auditLogRepo repository.AuditLogRepository,
) Service {
	return &service{
		salesRecordRepo: salesRecordRepo,
		kpiSnapshotRepo: kpiSnapshotRepo,
		auditLogRepo:    auditLogRepo,
	}
}

// Monthly agrega as vendas de uma origem por mês calendário no período
// [início, fim], com as duas pontas inclusas. Vendas RovemaPay são
// adicionalmente quebradas por status, porque pago e antecipado têm
// tratamentos financeiros distintos no fechamento.
func (s *service) Monthly(source domain.SalesSource, startDate, endDate time.Time) ([]*domain.MonthlyBucket, error) {
	records, err := s.salesRecordRepo.GetByDateRange(source, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar vendas %s: %w", source, err)
	}

	type accumulator struct {
		bucket      *domain.MonthlyBucket
		costPctSum  float64
		clientCNPJs map[string]bool
	}

	buckets := make(map[string]*accumulator)

	for _, record := range records {
		// O repositório já filtra por data, mas o corte do período é regra
		// de negócio e não pode depender do formato da query
		if record.Date.Before(startDate) || record.Date.After(endDate) {
			continue
		}

		key := record.Date.Format("2006-01")
		status := ""
		if source == domain.SourceRovemaPay {
			status = record.Status
			key = key + "|" + status
		}

		acc, ok := buckets[key]
		if !ok {
			acc = &accumulator{
				bucket: &domain.MonthlyBucket{
					Month:  record.Date.Format("2006-01"),
					Status: status,
				},
				clientCNPJs: make(map[string]bool),
			}
			buckets[key] = acc
		}

		acc.bucket.Gross += record.RevenueGross
		acc.bucket.Net += record.RevenueNet
		acc.bucket.Revenue += record.Revenue()
		acc.bucket.SalesCount++
		acc.costPctSum += domain.CostPercent(record.RevenueGross, record.RevenueNet)

		if record.ClientCNPJ != nil {
			acc.clientCNPJs[*record.ClientCNPJ] = true
		}
	}

	result := make([]*domain.MonthlyBucket, 0, len(buckets))
	for _, acc := range buckets {
		if acc.bucket.SalesCount > 0 {
			acc.bucket.CostPercent = acc.costPctSum / float64(acc.bucket.SalesCount)
		}
		acc.bucket.ClientsCount = len(acc.clientCNPJs)
		result = append(result, acc.bucket)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Month != result[j].Month {
			return result[i].Month < result[j].Month
		}
		return result[i].Status < result[j].Status
	})

	return result, nil
}

// RefreshKPISnapshot recalcula o consolidado do dashboard a partir de toda
// a base de vendas e persiste um novo snapshot. Em caso de falha o último
// snapshot persistido permanece intacto.
func (s *service) RefreshKPISnapshot(triggeredBy string) (*domain.KPISnapshot, error) {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Now().AddDate(0, 0, 1)

	rovemapayRecords, err := s.salesRecordRepo.GetByDateRange(domain.SourceRovemaPay, start, end)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar vendas RovemaPay: %w", err)
	}

	bionioRecords, err := s.salesRecordRepo.GetByDateRange(domain.SourceBionio, start, end)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pedidos Bionio: %w", err)
	}

	snapshot := &domain.KPISnapshot{GeneratedAt: time.Now()}

	type clientAgg struct {
		name  string
		gmv   float64
		count int
	}
	rovemapayClients := make(map[string]*clientAgg)

	for _, record := range rovemapayRecords {
		snapshot.RovemaPayGMV += record.RevenueGross
		snapshot.RovemaPayRevenue += record.Revenue()

		if record.ClientCNPJ != nil {
			agg, ok := rovemapayClients[*record.ClientCNPJ]
			if !ok {
				agg = &clientAgg{name: record.ClientName}
				rovemapayClients[*record.ClientCNPJ] = agg
			}
			agg.gmv += record.RevenueGross
			agg.count++
		}
	}

	if len(rovemapayRecords) > 0 {
		snapshot.RovemaPayAvgTicket = snapshot.RovemaPayGMV / float64(len(rovemapayRecords))
	}
	snapshot.RovemaPayClients = len(rovemapayClients)

	bionioClients := make(map[string]bool)
	for _, record := range bionioRecords {
		snapshot.BionioGMV += record.RevenueGross
		snapshot.BionioOrders++
		if record.ClientCNPJ != nil {
			bionioClients[*record.ClientCNPJ] = true
		}
	}
	snapshot.BionioOrgs = len(bionioClients)

	// Clientes presentes nas duas operações e oportunidades de venda
	// cruzada (RovemaPay sem nenhum pedido Bionio)
	opportunities := make([]*domain.Opportunity, 0)
	for cnpj, agg := range rovemapayClients {
		if bionioClients[cnpj] {
			snapshot.CrossoverClients++
			continue
		}
		opportunities = append(opportunities, &domain.Opportunity{
			CNPJ:         cnpj,
			ClientName:   agg.name,
			RovemaPayGMV: agg.gmv,
			SalesCount:   agg.count,
		})
	}

	sort.Slice(opportunities, func(i, j int) bool {
		return opportunities[i].RovemaPayGMV > opportunities[j].RovemaPayGMV
	})

	if err := s.kpiSnapshotRepo.Save(snapshot, opportunities); err != nil {
		return nil, fmt.Errorf("erro ao gravar snapshot de KPIs: %w", err)
	}

	s.audit(triggeredBy, snapshot, len(opportunities))

	logrus.Infof(
		"Snapshot de KPIs recalculado: GMV RovemaPay %.2f, GMV Bionio %.2f, %d clientes crossover, %d oportunidades",
		snapshot.RovemaPayGMV, snapshot.BionioGMV, snapshot.CrossoverClients, len(opportunities),
	)

	return snapshot, nil
}

// DashboardKPIs devolve o último snapshot persistido; nil quando nenhum
// recálculo rodou ainda
func (s *service) DashboardKPIs() (*KPIReport, error) {
	snapshot, opportunities, err := s.kpiSnapshotRepo.GetLatest()
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar snapshot de KPIs: %w", err)
	}
	if snapshot == nil {
		return nil, nil
	}

	return &KPIReport{
		Snapshot:      snapshot,
		Opportunities: opportunities,
	}, nil
}

// ConsultantSales resume as vendas atribuídas a um consultor no período,
// com os totais por cliente ordenados por faturamento
func (s *service) ConsultantSales(consultantUID string, startDate, endDate time.Time) (*ConsultantReport, error) {
	records, err := s.salesRecordRepo.GetByConsultant(consultantUID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar vendas do consultor %s: %w", consultantUID, err)
	}

	report := &ConsultantReport{ConsultantUID: consultantUID}
	clients := make(map[string]*ClientTotal)

	for _, record := range records {
		report.Gross += record.RevenueGross
		report.Revenue += record.Revenue()
		report.SalesCount++

		cnpj := ""
		if record.ClientCNPJ != nil {
			cnpj = *record.ClientCNPJ
		}

		client, ok := clients[cnpj]
		if !ok {
			client = &ClientTotal{CNPJ: cnpj, ClientName: record.ClientName}
			clients[cnpj] = client
		}
		client.Gross += record.RevenueGross
		client.Revenue += record.Revenue()
		client.SalesCount++
	}

	report.Clients = make([]*ClientTotal, 0, len(clients))
	for _, client := range clients {
		report.Clients = append(report.Clients, client)
	}

	sort.Slice(report.Clients, func(i, j int) bool {
		return report.Clients[i].Gross > report.Clients[j].Gross
	})

	return report, nil
}

func (s *service) audit(triggeredBy string, snapshot *domain.KPISnapshot, opportunityCount int) {
	id, err := utils.GenerateUID()
	if err != nil {
		logrus.Warnf("Erro ao gerar id do log de auditoria: %v", err)
		return
	}

	entry := &domain.AuditLog{
		ID:        id,
		Timestamp: time.Now(),
		UserEmail: triggeredBy,
		Action:    domain.AuditActionKPIRefresh,
		Details: fmt.Sprintf(
			"crossover=%d oportunidades=%d gmv_rovemapay=%.2f gmv_bionio=%.2f",
			snapshot.CrossoverClients, opportunityCount, snapshot.RovemaPayGMV, snapshot.BionioGMV,
		),
	}

	if err := s.auditLogRepo.Insert(entry); err != nil {
		logrus.Warnf("Erro ao gravar log de auditoria do recálculo de KPIs: %v", err)
	}
}
