package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/tiUlisses/securityvision-presence-backend/internal/cache"
	"github.com/tiUlisses/securityvision-presence-backend/internal/metrics"
	"github.com/tiUlisses/securityvision-presence-backend/internal/models"
	"github.com/tiUlisses/securityvision-presence-backend/internal/report"
	"github.com/tiUlisses/securityvision-presence-backend/internal/repository"
	"github.com/tiUlisses/securityvision-presence-backend/internal/scope"
)

// Default result sizes per report type.
const (
	DefaultTopN      = 10
	DefaultMaxEvents = 50
)

// ReportService computes presence reports. Each request is a pure,
// stateless computation over data fetched once from the store: validate,
// resolve the scope, fetch, fold, assemble. No state is shared across
// requests.
type ReportService struct {
	sessions *repository.SessionRepository
	alerts   *repository.AlertRepository
	dir      *repository.DirectoryRepository
	engine   *report.Engine
	cache    *cache.ReportCache
}

// NewReportService creates a new report service. The cache may be nil
// to disable report caching.
func NewReportService(
	sessions *repository.SessionRepository,
	alerts *repository.AlertRepository,
	dir *repository.DirectoryRepository,
	engine *report.Engine,
	reportCache *cache.ReportCache,
) *ReportService {
	return &ReportService{
		sessions: sessions,
		alerts:   alerts,
		dir:      dir,
		engine:   engine,
		cache:    reportCache,
	}
}

// validate rejects malformed report parameters before any fetch.
func validate(f models.ReportFilter) error {
	w := f.Window()
	if w.ToTime <= w.FromTime {
		return fmt.Errorf("%w: to (%d) must be after from (%d)", models.ErrInvalidWindow, w.ToTime, w.FromTime)
	}
	if w.MinDurationSeconds < 0 {
		return fmt.Errorf("%w: minDuration must not be negative", models.ErrInvalidParameter)
	}
	if f.Granularity != "" && !models.ValidGranularity(f.Granularity) {
		return fmt.Errorf("%w: unsupported granularity %q", models.ErrInvalidParameter, f.Granularity)
	}
	if f.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", models.ErrInvalidParameter)
	}
	if f.MaxEvents < 0 {
		return fmt.Errorf("%w: maxEvents must not be negative", models.ErrInvalidParameter)
	}
	return nil
}

// filterKey serializes every output-affecting request parameter into
// the cache key. The bucketing timezone is part of the key: deployments
// sharing one Redis but configured for different timezones produce
// different calendar buckets for the same request.
func (s *ReportService) filterKey(f models.ReportFilter) string {
	return fmt.Sprintf("%d:%d:%d:%s:%d:%d:%s",
		f.FromTime, f.ToTime, f.MinDuration, f.Granularity, f.Limit, f.MaxEvents,
		s.engine.Location())
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultTopN
	}
	return limit
}

func maxEventsOrDefault(maxEvents int) int {
	if maxEvents <= 0 {
		return DefaultMaxEvents
	}
	return maxEvents
}

func observe(reportType string, start time.Time) {
	metrics.ReportsComputed.WithLabelValues(reportType).Inc()
	metrics.ReportDuration.WithLabelValues(reportType).Observe(time.Since(start).Seconds())
}

// fromCache tries to serve a report from the cache, counting hits and
// misses.
func (s *ReportService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Printf("[ReportService] Cache read failed: %v", err)
		return false
	}
	if hit {
		metrics.CacheHits.Inc()
		return true
	}
	metrics.CacheMisses.Inc()
	return false
}

func (s *ReportService) toCache(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Printf("[ReportService] Cache write failed: %v", err)
	}
}

// GetOverview computes the site-wide presence overview: window-level
// summary across all gateways, unique people, alert volume and the
// top gateways by dwell. The session and alert fetches have no data
// dependency and run as parallel tasks.
func (s *ReportService) GetOverview(ctx context.Context, f models.ReportFilter) (*models.OverviewReport, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	defer observe("overview", time.Now())

	key := cache.Key("overview", s.filterKey(f))
	var cached models.OverviewReport
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	resolver, err := s.loadResolver(ctx)
	if err != nil {
		return nil, err
	}

	w := f.Window()

	var (
		wg        sync.WaitGroup
		intervals []models.Interval
		events    []models.AlertEvent
		ivErr     error
		evErr     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		intervals, ivErr = s.sessions.GetSessions(ctx, w, repository.ScopeFilter{})
	}()
	go func() {
		defer wg.Done()
		events, evErr = s.alerts.GetAlerts(ctx, w, repository.ScopeFilter{})
	}()
	wg.Wait()
	if ivErr != nil {
		return nil, ivErr
	}
	if evErr != nil {
		return nil, evErr
	}

	normalized := s.engine.NormalizeAll(intervals, w)

	rep := &models.OverviewReport{
		Window:       w,
		Summary:      s.engine.Summary(normalized),
		UniquePeople: countUniquePeople(normalized, resolver),
		TotalAlerts:  int64(len(events)),
		TopGateways: s.nameDevices(resolver, report.TopN(
			report.GroupBy(normalized, byDevice),
			report.RankByDwell,
			limitOrDefault(f.Limit),
		)),
	}

	s.toCache(ctx, key, rep)
	return rep, nil
}

// GetPersonSummary computes one person's presence summary with a
// group-by-device rollup.
func (s *ReportService) GetPersonSummary(ctx context.Context, personID string, f models.ReportFilter) (*models.PersonSummaryReport, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	defer observe("person_summary", time.Now())

	resolver, err := s.loadResolver(ctx)
	if err != nil {
		return nil, err
	}
	person, err := resolver.Person(personID)
	if err != nil {
		return nil, err
	}
	tags, err := resolver.PersonTags(personID)
	if err != nil {
		return nil, err
	}

	w := f.Window()
	normalized, err := s.fetchScopedNormalized(ctx, w, repository.ScopeFilter{EntityIDs: tags})
	if err != nil {
		return nil, err
	}

	byDeviceRollup := report.GroupBy(normalized, byDevice)
	return &models.PersonSummaryReport{
		Person:  person,
		Window:  w,
		Summary: s.engine.Summary(normalized),
		DwellByDevice: s.nameDevices(resolver, report.TopN(
			byDeviceRollup, report.RankByDwell, len(byDeviceRollup))),
	}, nil
}

// GetGroupSummary computes a group's presence summary with a
// group-by-person rollup and the window-level unique people count.
func (s *ReportService) GetGroupSummary(ctx context.Context, groupID string, f models.ReportFilter) (*models.GroupSummaryReport, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	defer observe("group_summary", time.Now())

	resolver, err := s.loadResolver(ctx)
	if err != nil {
		return nil, err
	}
	group, err := resolver.Group(groupID)
	if err != nil {
		return nil, err
	}
	tags, err := resolver.GroupTags(groupID)
	if err != nil {
		return nil, err
	}

	w := f.Window()
	normalized, err := s.fetchScopedNormalized(ctx, w, repository.ScopeFilter{EntityIDs: tags})
	if err != nil {
		return nil, err
	}

	byPerson := report.GroupBy(normalized, func(iv models.Interval) string {
		return resolver.OwnerOf(iv.EntityID)
	})
	return &models.GroupSummaryReport{
		Group:        group,
		Window:       w,
		Summary:      s.engine.Summary(normalized),
		UniquePeople: countUniquePeople(normalized, resolver),
		DwellByPerson: s.namePeople(resolver, report.TopN(
			byPerson, report.RankByDwell, len(byPerson))),
	}, nil
}

// GetSubjectDistribution computes a bucketized time distribution for a
// person or group scope under the requested granularity.
func (s *ReportService) GetSubjectDistribution(ctx context.Context, scopeType, id string, f models.ReportFilter) (*models.TimeDistributionReport, error) {
	if f.Granularity == "" {
		f.Granularity = models.GranularityDay
	}
	if err := validate(f); err != nil {
		return nil, err
	}
	defer observe(scopeType+"_distribution", time.Now())

	key := cache.Key(scopeType+"_distribution", id, s.filterKey(f))
	var cached models.TimeDistributionReport
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	resolver, err := s.loadResolver(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := subjectTags(resolver, scopeType, id)
	if err != nil {
		return nil, err
	}

	w := f.Window()
	normalized, err := s.fetchScopedNormalized(ctx, w, repository.ScopeFilter{EntityIDs: tags})
	if err != nil {
		return nil, err
	}

	acc := s.engine.Fold(normalized, w, f.Granularity)
	rep := &models.TimeDistributionReport{
		Scope:       scopeType,
		ScopeID:     id,
		Window:      w,
		Granularity: f.Granularity,
		Summary:     acc.Summary(),
		Buckets:     acc.Buckets(),
	}

	s.toCache(ctx, key, rep)
	return rep, nil
}

// GetHourByGateway computes per-gateway hour-of-day rollups for a
// person or group scope.
func (s *ReportService) GetHourByGateway(ctx context.Context, scopeType, id string, f models.ReportFilter) (*models.HourByGatewayReport, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	defer observe(scopeType+"_hour_by_gateway", time.Now())

	key := cache.Key(scopeType+"_hour_by_gateway", id, s.filterKey(f))
	var cached models.HourByGatewayReport
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	resolver, err := s.loadResolver(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := subjectTags(resolver, scopeType, id)
	if err != nil {
		return nil, err
	}

	w := f.Window()
	normalized, err := s.fetchScopedNormalized(ctx, w, repository.ScopeFilter{EntityIDs: tags})
	if err != nil {
		return nil, err
	}

	perDevice := make(map[string][]models.Interval)
	for _, iv := range normalized {
		perDevice[iv.DeviceID] = append(perDevice[iv.DeviceID], iv)
	}

	gateways := make([]models.GatewayHourDistribution, 0, len(perDevice))
	for deviceID, ivs := range perDevice {
		acc := s.engine.Fold(ivs, w, models.GranularityHourOfDay)
		summary := acc.Summary()
		gateways = append(gateways, models.GatewayHourDistribution{
			DeviceID:     deviceID,
			DeviceName:   resolver.DeviceName(deviceID),
			DwellSeconds: summary.TotalDwellSeconds,
			Sessions:     summary.TotalSessions,
			Buckets:      acc.Buckets(),
		})
	}
	sort.Slice(gateways, func(i, j int) bool {
		if gateways[i].DwellSeconds != gateways[j].DwellSeconds {
			return gateways[i].DwellSeconds > gateways[j].DwellSeconds
		}
		return gateways[i].DeviceID < gateways[j].DeviceID
	})

	rep := &models.HourByGatewayReport{
		Scope:    scopeType,
		ScopeID:  id,
		Window:   w,
		Summary:  s.engine.Summary(normalized),
		Gateways: gateways,
	}

	s.toCache(ctx, key, rep)
	return rep, nil
}

// GetSubjectAlerts computes the alert rollup for a person or group
// scope, including the per-device breakdown.
func (s *ReportService) GetSubjectAlerts(ctx context.Context, scopeType, id string, f models.ReportFilter) (*models.AlertsReport, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	defer observe(scopeType+"_alerts", time.Now())

	resolver, err := s.loadResolver(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := subjectTags(resolver, scopeType, id)
	if err != nil {
		return nil, err
	}

	events, err := s.fetchScopedAlerts(ctx, f.Window(), repository.ScopeFilter{EntityIDs: tags})
	if err != nil {
		return nil, err
	}

	return assembleAlerts(scopeType, id, f, events, true), nil
}

// GetGatewaySummary computes usage of one gateway: window summary plus
// duration percentiles.
func (s *ReportService) GetGatewaySummary(ctx context.Context, deviceID string, f models.ReportFilter) (*models.GatewaySummaryReport, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	defer observe("gateway_summary", time.Now())

	resolver, err := s.loadResolver(ctx)
	if err != nil {
		return nil, err
	}
	device, err := resolver.Device(deviceID)
	if err != nil {
		return nil, err
	}

	w := f.Window()
	normalized, err := s.fetchNormalized(ctx, w, repository.ScopeFilter{DeviceIDs: []string{deviceID}})
	if err != nil {
		return nil, err
	}

	return &models.GatewaySummaryReport{
		Device:  device,
		Window:  w,
		Summary: s.engine.Summary(normalized),
		Stats:   s.engine.Stats(normalized),
	}, nil
}

// GetGatewayTimeOfDay computes the hour-of-day distribution for one
// gateway.
func (s *ReportService) GetGatewayTimeOfDay(ctx context.Context, deviceID string, f models.ReportFilter) (*models.TimeDistributionReport, error) {
	f.Granularity = models.GranularityHourOfDay
	if err := validate(f); err != nil {
		return nil, err
	}
	defer observe("gateway_time_of_day", time.Now())

	key := cache.Key("gateway_time_of_day", deviceID, s.filterKey(f))
	var cached models.TimeDistributionReport
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	resolver, err := s.loadResolver(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := resolver.Device(deviceID); err != nil {
		return nil, err
	}

	w := f.Window()
	normalized, err := s.fetchNormalized(ctx, w, repository.ScopeFilter{DeviceIDs: []string{deviceID}})
	if err != nil {
		return nil, err
	}

	acc := s.engine.Fold(normalized, w, models.GranularityHourOfDay)
	rep := &models.TimeDistributionReport{
		Scope:       models.ScopeGateway,
		ScopeID:     deviceID,
		Window:      w,
		Granularity: models.GranularityHourOfDay,
		Summary:     acc.Summary(),
		Buckets:     acc.Buckets(),
	}

	s.toCache(ctx, key, rep)
	return rep, nil
}

// GetGatewayOccupancy computes fixed-width hour-bucket occupancy for
// one gateway, with the peak bucket and duration percentiles.
func (s *ReportService) GetGatewayOccupancy(ctx context.Context, deviceID string, f models.ReportFilter) (*models.OccupancyReport, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	defer observe("gateway_occupancy", time.Now())

	key := cache.Key("gateway_occupancy", deviceID, s.filterKey(f))
	var cached models.OccupancyReport
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	resolver, err := s.loadResolver(ctx)
	if err != nil {
		return nil, err
	}
	device, err := resolver.Device(deviceID)
	if err != nil {
		return nil, err
	}

	w := f.Window()
	normalized, err := s.fetchNormalized(ctx, w, repository.ScopeFilter{DeviceIDs: []string{deviceID}})
	if err != nil {
		return nil, err
	}

	acc := s.engine.Fold(normalized, w, models.GranularityHour)
	rep := &models.OccupancyReport{
		Device:  device,
		Window:  w,
		Summary: acc.Summary(),
		Stats:   acc.Stats(),
		Buckets: acc.Buckets(),
		Peak:    acc.Peak(),
	}

	s.toCache(ctx, key, rep)
	return rep, nil
}

// GetGatewayAlerts computes the alert rollup for one gateway.
func (s *ReportService) GetGatewayAlerts(ctx context.Context, deviceID string, f models.ReportFilter) (*models.AlertsReport, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	defer observe("gateway_alerts", time.Now())

	resolver, err := s.loadResolver(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := resolver.Device(deviceID); err != nil {
		return nil, err
	}

	events, err := s.alerts.GetAlerts(ctx, f.Window(), repository.ScopeFilter{DeviceIDs: []string{deviceID}})
	if err != nil {
		return nil, err
	}

	return assembleAlerts(models.ScopeGateway, deviceID, f, events, false), nil
}

// GetBuildingSummary computes building-wide presence with two
// top-gateway rankings local to the building.
func (s *ReportService) GetBuildingSummary(ctx context.Context, buildingID string, f models.ReportFilter) (*models.BuildingSummaryReport, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	defer observe("building_summary", time.Now())

	key := cache.Key("building_summary", buildingID, s.filterKey(f))
	var cached models.BuildingSummaryReport
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	resolver, err := s.loadResolver(ctx)
	if err != nil {
		return nil, err
	}
	building, err := resolver.Building(buildingID)
	if err != nil {
		return nil, err
	}
	devices, err := resolver.BuildingDevices(buildingID)
	if err != nil {
		return nil, err
	}

	w := f.Window()
	normalized, err := s.fetchScopedNormalized(ctx, w, repository.ScopeFilter{DeviceIDs: devices})
	if err != nil {
		return nil, err
	}

	ranks := report.GroupBy(normalized, byDevice)
	limit := limitOrDefault(f.Limit)
	rep := &models.BuildingSummaryReport{
		Building:              building,
		Window:                w,
		Summary:               s.engine.Summary(normalized),
		TopGatewaysBySessions: s.nameDevices(resolver, report.TopN(ranks, report.RankBySessions, limit)),
		TopGatewaysByDwell:    s.nameDevices(resolver, report.TopN(ranks, report.RankByDwell, limit)),
	}

	s.toCache(ctx, key, rep)
	return rep, nil
}

// GetBuildingDistribution computes a bucketized time distribution for a
// building scope under the requested granularity.
func (s *ReportService) GetBuildingDistribution(ctx context.Context, buildingID string, f models.ReportFilter) (*models.TimeDistributionReport, error) {
	if f.Granularity == "" {
		f.Granularity = models.GranularityDay
	}
	if err := validate(f); err != nil {
		return nil, err
	}
	defer observe("building_distribution", time.Now())

	key := cache.Key("building_distribution", buildingID, s.filterKey(f))
	var cached models.TimeDistributionReport
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	resolver, err := s.loadResolver(ctx)
	if err != nil {
		return nil, err
	}
	devices, err := resolver.BuildingDevices(buildingID)
	if err != nil {
		return nil, err
	}

	w := f.Window()
	normalized, err := s.fetchScopedNormalized(ctx, w, repository.ScopeFilter{DeviceIDs: devices})
	if err != nil {
		return nil, err
	}

	acc := s.engine.Fold(normalized, w, f.Granularity)
	rep := &models.TimeDistributionReport{
		Scope:       models.ScopeBuilding,
		ScopeID:     buildingID,
		Window:      w,
		Granularity: f.Granularity,
		Summary:     acc.Summary(),
		Buckets:     acc.Buckets(),
	}

	s.toCache(ctx, key, rep)
	return rep, nil
}

// GetBuildingAlerts computes the alert rollup across every gateway of a
// building.
func (s *ReportService) GetBuildingAlerts(ctx context.Context, buildingID string, f models.ReportFilter) (*models.AlertsReport, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	defer observe("building_alerts", time.Now())

	resolver, err := s.loadResolver(ctx)
	if err != nil {
		return nil, err
	}
	devices, err := resolver.BuildingDevices(buildingID)
	if err != nil {
		return nil, err
	}

	events, err := s.fetchScopedAlerts(ctx, f.Window(), repository.ScopeFilter{DeviceIDs: devices})
	if err != nil {
		return nil, err
	}

	return assembleAlerts(models.ScopeBuilding, buildingID, f, events, false), nil
}

// loadResolver loads the hierarchy tables for one request.
func (s *ReportService) loadResolver(ctx context.Context) (*scope.Resolver, error) {
	dir, err := s.dir.LoadDirectory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}
	return scope.NewResolver(dir), nil
}

// fetchNormalized fetches sessions for a scope and clips them to the
// window, the single filtering point for all downstream folds.
func (s *ReportService) fetchNormalized(ctx context.Context, w models.Window, f repository.ScopeFilter) ([]models.Interval, error) {
	intervals, err := s.sessions.GetSessions(ctx, w, f)
	if err != nil {
		return nil, err
	}
	return s.engine.NormalizeAll(intervals, w), nil
}

// fetchScopedNormalized fetches sessions for a resolved id-set. An empty
// set means the scope owns no sessions: the fetch is skipped so the
// repository's empty-filter convention (no restriction) never widens a
// resolved scope to the whole site.
func (s *ReportService) fetchScopedNormalized(ctx context.Context, w models.Window, f repository.ScopeFilter) ([]models.Interval, error) {
	if len(f.EntityIDs) == 0 && len(f.DeviceIDs) == 0 {
		return nil, nil
	}
	return s.fetchNormalized(ctx, w, f)
}

// fetchScopedAlerts fetches alert events for a resolved id-set, skipping
// the fetch when the set is empty.
func (s *ReportService) fetchScopedAlerts(ctx context.Context, w models.Window, f repository.ScopeFilter) ([]models.AlertEvent, error) {
	if len(f.EntityIDs) == 0 && len(f.DeviceIDs) == 0 {
		return nil, nil
	}
	return s.alerts.GetAlerts(ctx, w, f)
}

func subjectTags(resolver *scope.Resolver, scopeType, id string) ([]string, error) {
	switch scopeType {
	case models.ScopePerson:
		return resolver.PersonTags(id)
	case models.ScopeGroup:
		return resolver.GroupTags(id)
	}
	return nil, fmt.Errorf("%w: unsupported scope %q", models.ErrInvalidParameter, scopeType)
}

func assembleAlerts(scopeType, id string, f models.ReportFilter, events []models.AlertEvent, byDevice bool) *models.AlertsReport {
	rollup := report.RollupAlerts(events, maxEventsOrDefault(f.MaxEvents), byDevice)
	return &models.AlertsReport{
		Scope:          scopeType,
		ScopeID:        id,
		Window:         f.Window(),
		TotalAlerts:    rollup.Total,
		CountsByType:   rollup.CountsByType,
		CountsByDevice: rollup.CountsByDevice,
		FirstAlertAt:   rollup.FirstAlertAt,
		LastAlertAt:    rollup.LastAlertAt,
		Events:         rollup.Events,
	}
}

func byDevice(iv models.Interval) string {
	return iv.DeviceID
}

func countUniquePeople(normalized []models.Interval, resolver *scope.Resolver) int {
	people := make(map[string]struct{})
	for _, iv := range normalized {
		if owner := resolver.OwnerOf(iv.EntityID); owner != "" {
			people[owner] = struct{}{}
		}
	}
	return len(people)
}

func (s *ReportService) nameDevices(resolver *scope.Resolver, ranks []models.EntityRank) []models.EntityRank {
	for i := range ranks {
		ranks[i].Name = resolver.DeviceName(ranks[i].ID)
	}
	return ranks
}

func (s *ReportService) namePeople(resolver *scope.Resolver, ranks []models.EntityRank) []models.EntityRank {
	for i := range ranks {
		ranks[i].Name = resolver.PersonName(ranks[i].ID)
	}
	return ranks
}
