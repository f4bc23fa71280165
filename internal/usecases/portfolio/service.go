package portfolio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rovema/bi-comercial-api/infrastructure/repository"
	"github.com/rovema/bi-comercial-api/internal/domain"
	"github.com/rovema/bi-comercial-api/pkg/normalize"
	"github.com/rovema/bi-comercial-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Service resolve a atribuição de vendas pela carteira de clientes.
// O mapa CNPJ -> consultor/gestor é lido inteiro do banco e mantido em
// memória por um TTL curto: a carteira muda poucas vezes por dia e cada
// carga de vendas consulta o mapa milhares de vezes.
type Service interface {
	MapSaleToConsultant(cnpj string) (*domain.PortfolioRef, error)
	List() ([]*domain.PortfolioEntry, error)
	ListByConsultant(consultantUID string) ([]*domain.PortfolioEntry, error)
	Save(entry *domain.PortfolioEntry, userEmail string) error
	Remove(cnpj, userEmail string) error
	ReassignOrphan(ctx context.Context, saleID string, entry *domain.PortfolioEntry, userEmail string) error
	ListOrphans(limit uint64) ([]*domain.SalesRecord, error)
	Invalidate()
}

type service struct {
	portfolioRepo    repository.PortfolioRepository
	salesRecordRepo  repository.SalesRecordRepository
	reassignmentRepo repository.ReassignmentRepository
	auditLogRepo     repository.AuditLogRepository
	cacheTTL         time.Duration

	mu            sync.RWMutex
	cache         map[string]*domain.PortfolioRef
	cacheLoadedAt time.Time
}

func NewService(
	portfolioRepo repository.PortfolioRepository,
	salesRecordRepo repository.SalesRecordRepository,
	reassignmentRepo repository.ReassignmentRepository,
	auditLogRepo repository.AuditLogRepository,
	cacheTTL time.Duration,
) Service {
	return &service{
		portfolioRepo:    portfolioRepo,
		salesRecordRepo:  salesRecordRepo,
		reassignmentRepo: reassignmentRepo,
		auditLogRepo:     auditLogRepo,
		cacheTTL:         cacheTTL,
	}
}

// MapSaleToConsultant resolve o consultor e o gestor responsáveis por um
// CNPJ. Retorna referência com UIDs nulos quando o cliente não está em
// nenhuma carteira: a venda segue como órfã, nunca como erro.
func (s *service) MapSaleToConsultant(cnpj string) (*domain.PortfolioRef, error) {
	normalized, ok := normalize.CleanCNPJ(cnpj)
	if !ok {
		return &domain.PortfolioRef{}, nil
	}

	cache, err := s.loadCache()
	if err != nil {
		return nil, err
	}

	if ref, found := cache[normalized]; found {
		return ref, nil
	}

	return &domain.PortfolioRef{}, nil
}

func (s *service) List() ([]*domain.PortfolioEntry, error) {
	return s.portfolioRepo.GetAll()
}

func (s *service) ListByConsultant(consultantUID string) ([]*domain.PortfolioEntry, error) {
	return s.portfolioRepo.GetByConsultant(consultantUID)
}

func (s *service) Save(entry *domain.PortfolioEntry, userEmail string) error {
	normalized, ok := normalize.CleanCNPJ(entry.CNPJ)
	if !ok {
		return fmt.Errorf("CNPJ inválido: %q", entry.CNPJ)
	}
	entry.CNPJ = normalized

	if err := s.portfolioRepo.Upsert(entry); err != nil {
		return err
	}

	s.Invalidate()
	s.audit(userEmail, domain.AuditActionPortfolioEdit, fmt.Sprintf("cnpj=%s consultor=%s", entry.CNPJ, entry.ConsultantUID))

	return nil
}

func (s *service) Remove(cnpj, userEmail string) error {
	normalized, ok := normalize.CleanCNPJ(cnpj)
	if !ok {
		return fmt.Errorf("CNPJ inválido: %q", cnpj)
	}

	if err := s.portfolioRepo.Delete(normalized); err != nil {
		return err
	}

	s.Invalidate()
	s.audit(userEmail, domain.AuditActionPortfolioEdit, fmt.Sprintf("cnpj=%s removido", normalized))

	return nil
}

// ReassignOrphan atribui uma venda órfã a um consultor. A atualização da
// venda e a gravação da carteira acontecem na mesma transação; depois o
// cache é invalidado para as próximas cargas já enxergarem o novo dono.
func (s *service) ReassignOrphan(ctx context.Context, saleID string, entry *domain.PortfolioEntry, userEmail string) error {
	normalized, ok := normalize.CleanCNPJ(entry.CNPJ)
	if !ok {
		return fmt.Errorf("CNPJ inválido: %q", entry.CNPJ)
	}
	entry.CNPJ = normalized

	if err := s.reassignmentRepo.Reassign(ctx, saleID, entry); err != nil {
		return fmt.Errorf("erro ao reatribuir venda %s: %w", saleID, err)
	}

	s.Invalidate()
	s.audit(userEmail, domain.AuditActionReassignment, fmt.Sprintf("venda=%s cnpj=%s consultor=%s", saleID, entry.CNPJ, entry.ConsultantUID))

	return nil
}

func (s *service) ListOrphans(limit uint64) ([]*domain.SalesRecord, error) {
	return s.salesRecordRepo.ListOrphans(limit)
}

// Invalidate descarta o cache da carteira; a próxima consulta relê do banco
func (s *service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = nil
	s.cacheLoadedAt = time.Time{}
}

func (s *service) loadCache() (map[string]*domain.PortfolioRef, error) {
	s.mu.RLock()
	if s.cache != nil && time.Since(s.cacheLoadedAt) < s.cacheTTL {
		cache := s.cache
		s.mu.RUnlock()
		return cache, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Outra goroutine pode ter recarregado enquanto esperávamos o lock
	if s.cache != nil && time.Since(s.cacheLoadedAt) < s.cacheTTL {
		return s.cache, nil
	}

	entries, err := s.portfolioRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar carteira: %w", err)
	}

	cache := make(map[string]*domain.PortfolioRef, len(entries))
	for _, entry := range entries {
		consultantUID := entry.ConsultantUID
		cache[entry.CNPJ] = &domain.PortfolioRef{
			ConsultantUID: &consultantUID,
			ManagerUID:    entry.ManagerUID,
		}
	}

	s.cache = cache
	s.cacheLoadedAt = time.Now()

	logrus.Debugf("Cache da carteira recarregado com %d clientes", len(cache))

	return cache, nil
}

// audit grava a ação na trilha de auditoria; falha não interrompe o fluxo
func (s *service) audit(userEmail, action, details string) {
	id, err := utils.GenerateUID()
	if err != nil {
		logrus.Warnf("Erro ao gerar id do log de auditoria: %v", err)
		return
	}

	entry := &domain.AuditLog{
		ID:        id,
		Timestamp: time.Now(),
		UserEmail: userEmail,
		Action:    action,
		Details:   details,
	}

	if err := s.auditLogRepo.Insert(entry); err != nil {
		logrus.Warnf("Erro ao gravar log de auditoria: %v", err)
	}
}
