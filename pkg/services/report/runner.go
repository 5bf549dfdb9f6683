package report

import (
	"context"
	"time"

	"github.com/de-tools/test-atlas/pkg/models/domain"
	"github.com/de-tools/test-atlas/pkg/services/discovery"
	"github.com/de-tools/test-atlas/pkg/services/flatten"
	"github.com/de-tools/test-atlas/pkg/services/overview"
	"github.com/de-tools/test-atlas/pkg/services/pipeline"
	"github.com/de-tools/test-atlas/pkg/services/sessions"
	"github.com/de-tools/test-atlas/pkg/store/client"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Runner executes one full report run: discovery, fetching, flattening,
// filtering, sorting, projection and the overview. The two sources have
// no data dependency on each other and run concurrently; within a source
// every call is strictly ordered because later calls need identifiers
// returned by earlier ones.
type Runner struct {
	cfg       *domain.ReportConfig
	testops   *client.TestOps
	devicelab *client.DeviceLab
	now       func() time.Time
}

func NewRunner(cfg *domain.ReportConfig, creds client.Credentials) *Runner {
	return &Runner{
		cfg:       cfg,
		testops:   client.NewTestOps(cfg.Endpoints.TestOpsBaseURL, creds),
		devicelab: client.NewDeviceLab(cfg.Endpoints.DeviceLabBaseURL, creds),
		now:       time.Now,
	}
}

// Run produces the final report. Row collections pass through the
// pipeline stages immutably: filter, sort, overview, then projection.
func (r *Runner) Run(ctx context.Context) (*domain.Report, error) {
	engine := discovery.NewEngine(r.cfg, r.testops, r.devicelab)

	var (
		buildRows   []*domain.Row
		testRows    []*domain.Row
		sessionRows []*domain.Row
		appRows     []*domain.Row
	)

	eg, egCtx := errgroup.WithContext(ctx)

	if r.cfg.Sources.TestOps.Enabled {
		eg.Go(func() error {
			var err error
			buildRows, testRows, err = r.runTestOps(egCtx, engine)
			return err
		})
	}
	if r.cfg.Sources.DeviceLab.Enabled {
		eg.Go(func() error {
			var err error
			sessionRows, appRows, err = r.runDeviceLab(egCtx, engine)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	now := r.now()
	buildRows = r.refine(buildRows, domain.SectionBuilds, now)
	testRows = r.refine(testRows, domain.SectionTests, now)
	sessionRows = r.refine(sessionRows, domain.SectionSessions, now)
	appRows = r.refine(appRows, domain.SectionApps, now)

	// The overview counts identity and status fields, so it reads the
	// rows before any column projection strips them.
	overviewRows := overview.Build(buildRows, testRows, sessionRows)
	overviewRows = pipeline.Project(overviewRows, r.cfg.Columns[domain.SectionOverview])

	rep := domain.NewReport()
	rep.SetSection(domain.SectionOverview, overviewRows)
	rep.SetSection(domain.SectionBuilds, pipeline.Project(buildRows, r.cfg.Columns[domain.SectionBuilds]))
	rep.SetSection(domain.SectionTests, pipeline.Project(testRows, r.cfg.Columns[domain.SectionTests]))
	rep.SetSection(domain.SectionSessions, pipeline.Project(sessionRows, r.cfg.Columns[domain.SectionSessions]))
	rep.SetSection(domain.SectionApps, pipeline.Project(appRows, r.cfg.Columns[domain.SectionApps]))
	return rep, nil
}

func (r *Runner) refine(rows []*domain.Row, section string, now time.Time) []*domain.Row {
	profile := pipeline.Profiles[section]
	rows = pipeline.Filter(rows, r.cfg.Filters, profile, now)
	pipeline.SortNewestFirst(rows, profile.TimeFields)
	return rows
}

func (r *Runner) runTestOps(ctx context.Context, engine *discovery.Engine) ([]*domain.Row, []*domain.Row, error) {
	ids, err := engine.TestOpsBuildIDs(ctx)
	if err != nil {
		return nil, nil, err
	}

	var buildRows, testRows []*domain.Row
	for _, id := range ids {
		detail, err := r.testops.BuildDetails(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		buildRows = append(buildRows, flatten.BuildRow(detail))

		pages, err := r.testops.TestRuns(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		var roots []client.Payload
		for _, page := range pages {
			roots = append(roots, page.Slice("runs")...)
		}
		testRows = append(testRows,
			flatten.TestRows(roots, id, detail.Str("name"), r.cfg.Sources.TestOps.IncludeHooks)...)
	}

	zerolog.Ctx(ctx).Info().
		Int("builds", len(buildRows)).
		Int("tests", len(testRows)).
		Msg("testops source complete")
	return buildRows, testRows, nil
}

func (r *Runner) runDeviceLab(ctx context.Context, engine *discovery.Engine) ([]*domain.Row, []*domain.Row, error) {
	ids, err := engine.DeviceLabBuildIDs(ctx)
	if err != nil {
		return nil, nil, err
	}

	enricher := sessions.NewEnricher(r.devicelab,
		r.cfg.Sources.DeviceLab.FetchSessionDetails,
		r.cfg.Sources.DeviceLab.SessionPageSize)

	var sessionRows []*domain.Row
	for _, id := range ids {
		rows, err := enricher.SessionRows(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		sessionRows = append(sessionRows, rows...)
	}

	appRows, err := enricher.AppRows(ctx,
		r.cfg.Inputs.CustomAppIDs,
		r.cfg.Inputs.Discovery.MaxBuildsPerSource)
	if err != nil {
		return nil, nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int("sessions", len(sessionRows)).
		Int("apps", len(appRows)).
		Msg("devicelab source complete")
	return sessionRows, appRows, nil
}
