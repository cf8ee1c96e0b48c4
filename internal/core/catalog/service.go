package catalog

import (
	"context"
	"strings"
	"sync"

	"sattvic-kitchen/internal/core/cache"
	"sattvic-kitchen/internal/core/flavor"
	"sattvic-kitchen/internal/core/flavordb"
	"sattvic-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// 快取命名空間
const (
	nsCommonName = "flavordb:common-name"
	nsCompound   = "flavordb:compound"
)

const (
	// DefaultMaxRemoteResults 每次搜尋最多附加的遠端食材數
	DefaultMaxRemoteResults = 5
	// DefaultMaxRemembered 最多記住的遠端食材數，超過時淘汰最早的
	DefaultMaxRemembered = 200
)

// RemoteSource 遠端化合物來源
type RemoteSource interface {
	GetByCommonName(ctx context.Context, name string) ([]flavordb.Compound, error)
	GetCompoundByID(ctx context.Context, id flavordb.ID) (*flavordb.Compound, error)
}

// Service 食材目錄服務，合併內建資料與 FlavorDB 結果
type Service struct {
	local     []flavor.Ingredient
	remote    RemoteSource
	store     cache.Store
	maxRemote int
	maxKeep   int

	mu         sync.RWMutex
	remembered []flavor.Ingredient
	seen       map[string]struct{}
}

// Option 服務選項
type Option func(*Service)

// WithRemote 設定遠端來源；nil 表示只使用內建資料
func WithRemote(remote RemoteSource) Option {
	return func(s *Service) {
		s.remote = remote
	}
}

// WithCache 設定遠端結果的快取
func WithCache(store cache.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithMaxRemoteResults 設定每次搜尋附加的遠端食材上限
func WithMaxRemoteResults(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxRemote = n
		}
	}
}

// WithMaxRemembered 設定記住的遠端食材上限；0 表示不記住
func WithMaxRemembered(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxKeep = n
		}
	}
}

// NewService 創建目錄服務
func NewService(local []flavor.Ingredient, opts ...Option) *Service {
	s := &Service{
		local:     local,
		maxRemote: DefaultMaxRemoteResults,
		maxKeep:   DefaultMaxRemembered,
		seen:      make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingredients 實現 flavor.Provider：內建資料在前，之後是查詢過的遠端食材
func (s *Service) Ingredients() []flavor.Ingredient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]flavor.Ingredient, 0, len(s.local)+len(s.remembered))
	out = append(out, s.local...)
	out = append(out, s.remembered...)
	return out
}

// Search 先比對內建資料，再附加遠端結果；遠端失敗時只回傳內建結果
func (s *Service) Search(ctx context.Context, query string) []flavor.Ingredient {
	results := flavor.NewCatalog(s.local).Search(query)
	query = strings.TrimSpace(query)
	if query == "" || s.remote == nil || s.maxRemote == 0 {
		return results
	}

	compounds, err := s.fetchByCommonName(ctx, query)
	if err != nil {
		common.LogWarn("FlavorDB search failed, using local results",
			zap.String("query", query),
			zap.Error(err),
		)
		return results
	}
	if len(compounds) > s.maxRemote {
		compounds = compounds[:s.maxRemote]
	}

	for _, c := range compounds {
		ing := flavordb.ToIngredient(c)
		s.remember(ing)
		results = append(results, ing)
	}
	return results
}

// Get 依 id 取得食材；api_ 開頭的 id 會查詢遠端，失敗時回傳 nil
func (s *Service) Get(ctx context.Context, id string) *flavor.Ingredient {
	if ing, ok := flavor.NewCatalog(s.local).FindByID(id); ok {
		return &ing
	}

	compoundID, ok := flavordb.CompoundIDFrom(id)
	if !ok || s.remote == nil {
		return nil
	}

	compound, err := s.fetchCompound(ctx, compoundID)
	if err != nil {
		common.LogWarn("FlavorDB lookup failed",
			zap.String("id", id),
			zap.Error(err),
		)
		return nil
	}
	if compound == nil {
		return nil
	}

	ing := flavordb.ToIngredient(*compound)
	s.remember(ing)
	return &ing
}

// Snapshot 目前資料的唯讀查詢
func (s *Service) Snapshot() *flavor.Catalog {
	return flavor.Snapshot(s)
}

// remember 記住遠端食材；同 id 只保留第一次的結果，超過上限時淘汰最早的
func (s *Service) remember(ing flavor.Ingredient) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxKeep == 0 {
		return
	}
	if _, ok := s.seen[ing.ID]; ok {
		return
	}
	s.seen[ing.ID] = struct{}{}
	s.remembered = append(s.remembered, ing)

	if over := len(s.remembered) - s.maxKeep; over > 0 {
		for _, old := range s.remembered[:over] {
			delete(s.seen, old.ID)
		}
		// 複製到新切片，釋放被淘汰的元素
		s.remembered = append([]flavor.Ingredient(nil), s.remembered[over:]...)
	}
}

func (s *Service) fetchByCommonName(ctx context.Context, name string) ([]flavordb.Compound, error) {
	key := strings.ToLower(name)
	var compounds []flavordb.Compound
	if cache.GetJSON(ctx, s.store, nsCommonName, key, &compounds) {
		return compounds, nil
	}

	compounds, err := s.remote.GetByCommonName(ctx, name)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, s.store, nsCommonName, key, compounds)
	return compounds, nil
}

func (s *Service) fetchCompound(ctx context.Context, id flavordb.ID) (*flavordb.Compound, error) {
	var compound flavordb.Compound
	if cache.GetJSON(ctx, s.store, nsCompound, string(id), &compound) {
		return &compound, nil
	}

	found, err := s.remote.GetCompoundByID(ctx, id)
	if err != nil || found == nil {
		return found, err
	}
	cache.SetJSON(ctx, s.store, nsCompound, string(id), found)
	return found, nil
}
