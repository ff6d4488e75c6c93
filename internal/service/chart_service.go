package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"gorm.io/datatypes"

	"golang-lwcharts/config"
	"golang-lwcharts/internal/builder"
	"golang-lwcharts/internal/dto"
	"golang-lwcharts/internal/model"
	"golang-lwcharts/internal/repository"
	"golang-lwcharts/pkg/cache"
	"golang-lwcharts/pkg/common"
	"golang-lwcharts/pkg/logger"
	"golang-lwcharts/pkg/lwc/chart"
	"golang-lwcharts/pkg/lwc/serialize"
	"golang-lwcharts/pkg/lwc/types"
	"golang-lwcharts/pkg/metrics"
	"golang-lwcharts/pkg/ratelimit"
	"golang-lwcharts/pkg/utils"
)

const (
	buildKindDashboard = "dashboard"
	buildKindRefresh   = "refresh"

	defaultListLimit     = 50
	dashboardConcurrency = 4
)

// refreshCronParser accepts standard five field expressions and descriptors such as "@hourly".
var refreshCronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

type ChartService interface {
	Build(ctx context.Context, spec dto.ChartSpec) (map[string]any, error)
	BuildMarket(ctx context.Context, req dto.MarketChartRequest) (map[string]any, error)
	BuildDashboard(ctx context.Context, req dto.DashboardRequest) (map[string]any, error)
	Save(ctx context.Context, req dto.SaveChartRequest) (*dto.SavedChartResponse, error)
	Get(ctx context.Context, id string) (*dto.SavedChartResponse, error)
	List(ctx context.Context, param dto.ListChartsParam) ([]dto.SavedChartResponse, error)
	Delete(ctx context.Context, id string) error
	// Rebuild renders a saved market chart from fresh candles, bypassing the market data cache.
	Rebuild(ctx context.Context, saved *model.SavedChart) (datatypes.JSON, error)
}

type chartService struct {
	cfg           *config.Config
	log           *logger.Logger
	builder       *builder.Builder
	cache         cache.Cache
	chartRepo     repository.ChartRepository
	candleRepo    repository.CandleRepository
	symbolLimiter *ratelimit.LimiterStore
	now           func() time.Time
}

func NewChartService(
	cfg *config.Config,
	log *logger.Logger,
	chartBuilder *builder.Builder,
	inmemoryCache cache.Cache,
	chartRepo repository.ChartRepository,
	candleRepo repository.CandleRepository,
) ChartService {
	symbolRate := rate.Inf
	if cfg.Chart.PerSymbolRPS > 0 {
		symbolRate = rate.Limit(cfg.Chart.PerSymbolRPS)
	}
	return &chartService{
		cfg:           cfg,
		log:           log,
		builder:       chartBuilder,
		cache:         inmemoryCache,
		chartRepo:     chartRepo,
		candleRepo:    candleRepo,
		symbolLimiter: ratelimit.NewLimiterStore(symbolRate, 1),
		now:           time.Now,
	}
}

// Build renders spec into a frontend config. Identical specs are served from the cache.
func (s *chartService) Build(ctx context.Context, spec dto.ChartSpec) (cfg map[string]any, err error) {
	hash, err := specHash(spec)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf(common.KEY_CHART_CONFIG, hash)
	if cached, ok := cache.GetFromCache[map[string]any](s.cache, key); ok {
		metrics.BuildCacheHit(common.CHART_KIND_SPEC)
		return cached, nil
	}

	start := time.Now()
	seriesCount := 0
	defer func() { metrics.ObserveBuild(common.CHART_KIND_SPEC, start, seriesCount, err) }()

	c, err := s.builder.Build(spec)
	if err != nil {
		s.log.DebugContext(ctx, "Rejected chart spec", logger.ErrorField(err))
		return nil, err
	}
	seriesCount = len(c.Series)
	cfg, err = c.ToFrontendConfig()
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, cfg, cache.DefaultExpiration)
	return cfg, nil
}

func (s *chartService) BuildMarket(ctx context.Context, req dto.MarketChartRequest) (cfg map[string]any, err error) {
	start := time.Now()
	seriesCount := 0
	defer func() { metrics.ObserveBuild(common.CHART_KIND_MARKET, start, seriesCount, err) }()

	c, err := s.buildMarketChart(ctx, s.withMarketDefaults(req), "", 0, true)
	if err != nil {
		return nil, err
	}
	seriesCount = len(c.Series)
	return c.ToFrontendConfig()
}

// BuildDashboard fetches every symbol concurrently and renders one chart per symbol.
func (s *chartService) BuildDashboard(ctx context.Context, req dto.DashboardRequest) (cfg map[string]any, err error) {
	start := time.Now()
	seriesCount := 0
	defer func() { metrics.ObserveBuild(buildKindDashboard, start, seriesCount, err) }()

	req.Exchange = strings.ToUpper(req.Exchange)
	if err := types.Validate(req); err != nil {
		return nil, err
	}

	charts := make([]*chart.Chart, len(req.Symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(dashboardConcurrency)
	for i, symbol := range req.Symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			marketReq := s.withMarketDefaults(dto.MarketChartRequest{
				Symbol:    symbol,
				Exchange:  req.Exchange,
				Range:     req.Range,
				Interval:  req.Interval,
				SMA:       req.SMA,
				Bollinger: req.Bollinger,
			})
			c, err := s.buildMarketChart(gctx, marketReq, strings.ToLower(symbol), 0, true)
			if err != nil {
				return fmt.Errorf("symbol %s: %w", symbol, err)
			}
			charts[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.ErrorContext(ctx, "Failed to build dashboard", logger.ErrorField(err))
		return nil, err
	}

	manager := chart.NewManager()
	for _, c := range charts {
		if err := manager.Add(c, ""); err != nil {
			return nil, err
		}
		seriesCount += len(c.Series)
	}
	manager.SyncCharts(req.Sync && len(charts) > 1)
	return manager.ToFrontendConfig()
}

func (s *chartService) Save(ctx context.Context, req dto.SaveChartRequest) (*dto.SavedChartResponse, error) {
	if err := types.Validate(req); err != nil {
		return nil, err
	}

	saved := &model.SavedChart{
		ID:          uuid.NewString(),
		Name:        req.Name,
		RefreshCron: strings.TrimSpace(req.RefreshCron),
	}

	var (
		request any
		cfg     map[string]any
		err     error
	)
	if req.Spec != nil {
		saved.Kind = common.CHART_KIND_SPEC
		request = req.Spec
		cfg, err = s.Build(ctx, *req.Spec)
	} else {
		saved.Kind = common.CHART_KIND_MARKET
		market := s.withMarketDefaults(*req.Market)
		request = market
		if saved.RefreshCron != "" {
			schedule, perr := refreshCronParser.Parse(saved.RefreshCron)
			if perr != nil {
				return nil, types.NewValidationError("refresh_cron", saved.RefreshCron, perr.Error())
			}
			saved.NextRefreshAt = utils.ToPointer(schedule.Next(s.now()))
		}
		cfg, err = s.BuildMarket(ctx, market)
	}
	if err != nil {
		return nil, err
	}

	if saved.Request, err = json.Marshal(request); err != nil {
		return nil, fmt.Errorf("failed to encode chart request: %w", err)
	}
	if saved.Config, err = serialize.ToJSON(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode chart config: %w", err)
	}
	if saved.Kind == common.CHART_KIND_MARKET {
		now := s.now()
		saved.LastRefreshedAt = &now
	}

	if err := s.chartRepo.Create(ctx, saved); err != nil {
		s.log.ErrorContext(ctx, "Failed to save chart", logger.ErrorField(err), logger.StringField("name", req.Name))
		return nil, fmt.Errorf("failed to save chart: %w", err)
	}
	s.log.InfoContext(ctx, "Chart saved",
		logger.StringField("chart_id", saved.ID),
		logger.StringField("kind", saved.Kind),
		logger.StringField("refresh_cron", saved.RefreshCron))
	return toSavedChartResponse(saved)
}

func (s *chartService) Get(ctx context.Context, id string) (*dto.SavedChartResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("chart %s: %w", id, types.ErrNotFound)
	}
	saved, err := s.chartRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSavedChartResponse(saved)
}

func (s *chartService) List(ctx context.Context, param dto.ListChartsParam) ([]dto.SavedChartResponse, error) {
	if err := types.Validate(param); err != nil {
		return nil, err
	}
	limit := param.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	charts, err := s.chartRepo.Get(ctx, model.GetChartsParam{Kind: param.Kind, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list charts: %w", err)
	}
	out := make([]dto.SavedChartResponse, 0, len(charts))
	for i := range charts {
		resp, err := toSavedChartResponse(&charts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *chartService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("chart %s: %w", id, types.ErrNotFound)
	}
	return s.chartRepo.Delete(ctx, id)
}

func (s *chartService) Rebuild(ctx context.Context, saved *model.SavedChart) (out datatypes.JSON, err error) {
	start := time.Now()
	seriesCount := 0
	defer func() { metrics.ObserveBuild(buildKindRefresh, start, seriesCount, err) }()

	if saved.Kind != common.CHART_KIND_MARKET {
		return nil, types.NewValidationError("kind", saved.Kind, "only market charts can be refreshed")
	}
	var req dto.MarketChartRequest
	if err := json.Unmarshal(saved.Request, &req); err != nil {
		return nil, fmt.Errorf("failed to decode saved market request: %w", err)
	}
	c, err := s.buildMarketChart(ctx, s.withMarketDefaults(req), "", 0, false)
	if err != nil {
		return nil, err
	}
	seriesCount = len(c.Series)
	return c.ToJSON()
}

func (s *chartService) withMarketDefaults(req dto.MarketChartRequest) dto.MarketChartRequest {
	if req.Range == "" {
		req.Range = s.cfg.Chart.DefaultRange
	}
	if req.Interval == "" {
		req.Interval = s.cfg.Chart.DefaultInterval
	}
	req.Exchange = strings.ToUpper(req.Exchange)
	if req.Exchange == "" {
		req.Exchange = common.EXCHANGE_YAHOO
	}
	return req
}

func (s *chartService) buildMarketChart(ctx context.Context, req dto.MarketChartRequest, id string, groupID int, useCache bool) (*chart.Chart, error) {
	if err := types.Validate(req); err != nil {
		return nil, err
	}
	if _, err := utils.ParseInterval(req.Interval); err != nil {
		return nil, types.NewValidationError("interval", req.Interval, err.Error())
	}
	md, err := s.fetchMarket(ctx, req, useCache)
	if err != nil {
		return nil, err
	}
	return s.builder.BuildMarket(req, md, id, groupID)
}

func (s *chartService) fetchMarket(ctx context.Context, req dto.MarketChartRequest, useCache bool) (*dto.MarketData, error) {
	key := fmt.Sprintf(common.KEY_MARKET_DATA, req.Exchange, strings.ToUpper(req.Symbol), req.Range, req.Interval)
	if useCache {
		if md, ok := cache.GetFromCache[*dto.MarketData](s.cache, key); ok {
			return md, nil
		}
	}

	if err := s.symbolLimiter.Wait(ctx, key); err != nil {
		return nil, err
	}
	md, err := s.candleRepo.Get(ctx, dto.GetMarketDataParam{
		Symbol:   req.Symbol,
		Exchange: req.Exchange,
		Range:    req.Range,
		Interval: req.Interval,
		Limit:    s.cfg.Chart.MaxBars,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch market data",
			logger.ErrorField(err),
			logger.StringField("symbol", req.Symbol),
			logger.StringField("exchange", req.Exchange))
		return nil, fmt.Errorf("failed to fetch market data: %w", err)
	}
	s.cache.Set(key, md, cache.DefaultExpiration)
	return md, nil
}

func specHash(spec dto.ChartSpec) (string, error) {
	raw, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("failed to hash chart spec: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

func toSavedChartResponse(saved *model.SavedChart) (*dto.SavedChartResponse, error) {
	resp := &dto.SavedChartResponse{
		ID:              saved.ID,
		Name:            saved.Name,
		Kind:            saved.Kind,
		RefreshCron:     saved.RefreshCron,
		LastRefreshedAt: saved.LastRefreshedAt,
		CreatedAt:       saved.CreatedAt,
		UpdatedAt:       saved.UpdatedAt,
	}
	if len(saved.Config) > 0 {
		if err := json.Unmarshal(saved.Config, &resp.Config); err != nil {
			return nil, fmt.Errorf("failed to decode chart config: %w", err)
		}
	}
	return resp, nil
}
