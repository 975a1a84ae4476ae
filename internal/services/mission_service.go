package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/missoes-dashboard-api/internal/cache"
	"github.com/missoes-dashboard-api/internal/models"
	"github.com/missoes-dashboard-api/internal/progress"
)

// MissionStore e o contrato de persistencia consumido pelo resolvedor de
// tenant. Escritas retornam false quando nenhuma linha casou.
type MissionStore interface {
	GetBySlug(ctx context.Context, slug string) (*models.Mission, error)
	List(ctx context.Context) ([]models.Mission, error)
	UpdateMeetingLink(ctx context.Context, slug, meetingLink string) (bool, error)
	UpdateProjectMeetingLink(ctx context.Context, slug, projectID, meetingLink string) (bool, error)
	UpdateProjectBudget(ctx context.Context, slug, projectID string, budget float64) (bool, error)
	AddFinanceEntry(ctx context.Context, slug string, entry *models.FinanceEntry) (bool, error)
	AddFinanceReport(ctx context.Context, slug string, report *models.FinanceReport) (bool, error)
}

// MissionCache e o contrato de cache cache-aside. JSON corrompido conta
// como miss.
type MissionCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	InvalidateMission(ctx context.Context, slug string) error
}

// MissionService orquestra o caminho cache -> banco -> normalizacao ->
// cache dos documentos de missao. Invariante central: so documentos
// normalizados sao escritos no cache; um hit e servido como esta.
type MissionService struct {
	store      MissionStore
	cache      MissionCache
	ttlMission time.Duration
	ttlList    time.Duration
}

func NewMissionService(store MissionStore, missionCache MissionCache, ttlMission, ttlList time.Duration) *MissionService {
	return &MissionService{
		store:      store,
		cache:      missionCache,
		ttlMission: ttlMission,
		ttlList:    ttlList,
	}
}

// GetMission resolve uma missao pelo slug com leitura cache-aside. Miss
// carrega do banco, normaliza e grava no cache com TTL. Falha de cache e
// degradacao, nao erro: a leitura segue para o banco.
func (s *MissionService) GetMission(ctx context.Context, slug string) (*models.Mission, error) {
	var cached models.Mission
	hit, err := s.cache.GetJSON(ctx, cache.MissionKey(slug), &cached)
	if err != nil {
		log.Printf("cache read failed for mission %s: %v", slug, err)
	}
	if hit {
		return &cached, nil
	}

	mission, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load mission %s: %w", slug, err)
	}
	if mission == nil {
		return nil, nil
	}

	normalized := progress.NormalizeMission(*mission)
	if err := s.cache.SetJSON(ctx, cache.MissionKey(slug), normalized, s.ttlMission); err != nil {
		log.Printf("cache write failed for mission %s: %v", slug, err)
	}
	return &normalized, nil
}

// ListMissions carrega todas as missoes normalizadas, ordenadas por nome,
// com cache-aside sobre a chave de listagem.
func (s *MissionService) ListMissions(ctx context.Context) ([]models.Mission, error) {
	var cached []models.Mission
	hit, err := s.cache.GetJSON(ctx, cache.MissionListKey, &cached)
	if err != nil {
		log.Printf("cache read failed for mission list: %v", err)
	}
	if hit {
		return cached, nil
	}

	missions, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}

	normalized := make([]models.Mission, 0, len(missions))
	for _, mission := range missions {
		normalized = append(normalized, progress.NormalizeMission(mission))
	}
	sort.SliceStable(normalized, func(i, j int) bool {
		return strings.ToLower(normalized[i].Name) < strings.ToLower(normalized[j].Name)
	})

	if err := s.cache.SetJSON(ctx, cache.MissionListKey, normalized, s.ttlList); err != nil {
		log.Printf("cache write failed for mission list: %v", err)
	}
	return normalized, nil
}

// Resolve localiza a missao do request: slug explicito vence; sem slug, o
// primeiro rotulo do subdominio do host e usado. Sem slug e sem subdominio
// o retorno e nil e o chamador mostra a listagem.
func (s *MissionService) Resolve(ctx context.Context, slug, host string) (*models.Mission, error) {
	if slug != "" {
		return s.GetMission(ctx, slug)
	}

	subdomain := ExtractSubdomain(host)
	if subdomain == "" {
		return nil, nil
	}
	return s.GetMission(ctx, subdomain)
}

// ExtractSubdomain tira o primeiro rotulo do host do request. Porta e
// descartada; hosts numericos (IPs) e hosts sem ponto nao tem subdominio.
func ExtractSubdomain(host string) string {
	host = strings.Split(host, ":")[0]
	if host == "" || isIPAddress(host) {
		return ""
	}
	if !strings.Contains(host, ".") {
		return ""
	}
	return strings.Split(host, ".")[0]
}

func isIPAddress(host string) bool {
	stripped := strings.ReplaceAll(host, ".", "")
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// UpdateMeetingLink grava o novo link e invalida o cache da missao
func (s *MissionService) UpdateMeetingLink(ctx context.Context, slug, meetingLink string) (bool, error) {
	ok, err := s.store.UpdateMeetingLink(ctx, slug, meetingLink)
	if err != nil {
		return false, err
	}
	if ok {
		s.invalidate(ctx, slug)
	}
	return ok, nil
}

// UpdateProjectMeetingLink grava o link do projeto e invalida o cache
func (s *MissionService) UpdateProjectMeetingLink(ctx context.Context, slug, projectID, meetingLink string) (bool, error) {
	ok, err := s.store.UpdateProjectMeetingLink(ctx, slug, projectID, meetingLink)
	if err != nil {
		return false, err
	}
	if ok {
		s.invalidate(ctx, slug)
	}
	return ok, nil
}

// UpdateProjectBudget grava o orcamento e invalida o cache
func (s *MissionService) UpdateProjectBudget(ctx context.Context, slug, projectID string, budget float64) (bool, error) {
	ok, err := s.store.UpdateProjectBudget(ctx, slug, projectID, budget)
	if err != nil {
		return false, err
	}
	if ok {
		s.invalidate(ctx, slug)
	}
	return ok, nil
}

// AddFinanceEntry insere o lancamento e invalida o cache
func (s *MissionService) AddFinanceEntry(ctx context.Context, slug string, entry *models.FinanceEntry) (bool, error) {
	ok, err := s.store.AddFinanceEntry(ctx, slug, entry)
	if err != nil {
		return false, err
	}
	if ok {
		s.invalidate(ctx, slug)
	}
	return ok, nil
}

// AddFinanceReport grava o retrato financeiro e invalida o cache
func (s *MissionService) AddFinanceReport(ctx context.Context, slug string, report *models.FinanceReport) (bool, error) {
	ok, err := s.store.AddFinanceReport(ctx, slug, report)
	if err != nil {
		return false, err
	}
	if ok {
		s.invalidate(ctx, slug)
	}
	return ok, nil
}

// invalidate derruba as chaves da missao e da listagem depois de qualquer
// escrita bem sucedida. O cache nunca e atualizado no lugar.
func (s *MissionService) invalidate(ctx context.Context, slug string) {
	if err := s.cache.InvalidateMission(ctx, slug); err != nil {
		log.Printf("cache invalidation failed for mission %s: %v", slug, err)
	}
}
