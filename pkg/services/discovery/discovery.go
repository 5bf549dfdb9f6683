package discovery

import (
	"context"
	"time"

	"github.com/de-tools/test-atlas/pkg/models/domain"
	"github.com/de-tools/test-atlas/pkg/services/pipeline"
	"github.com/de-tools/test-atlas/pkg/store/client"
	"github.com/rs/zerolog"
)

// deviceLabListLimit bounds the single discovery listing call against the
// device-automation source.
const deviceLabListLimit = 50

// deviceLabTimeFields are the candidate timestamp fields of a listed
// device-automation build, in preference order.
var deviceLabTimeFields = []string{"finished_at", "started_at", "created_at", "updated_at"}

// Engine locates build IDs when none were supplied explicitly. Discovery
// is best-effort: a failed fetch ends a traversal quietly, and only a
// final empty result is fatal.
type Engine struct {
	testops   *client.TestOps
	devicelab *client.DeviceLab
	cfg       *domain.ReportConfig
	now       func() time.Time
}

func NewEngine(cfg *domain.ReportConfig, testops *client.TestOps, devicelab *client.DeviceLab) *Engine {
	return &Engine{
		testops:   testops,
		devicelab: devicelab,
		cfg:       cfg,
		now:       time.Now,
	}
}

// TestOpsBuildIDs returns the explicit build IDs if configured, otherwise
// discovers recent builds across the configured or discovered projects.
func (e *Engine) TestOpsBuildIDs(ctx context.Context) ([]string, error) {
	if ids := e.cfg.Inputs.TestOpsBuildIDs; len(ids) > 0 {
		return ids, nil
	}
	if !e.cfg.Inputs.Discovery.Enabled {
		return nil, &domain.DiscoveryExhaustedError{Source: "testops"}
	}

	projectIDs := e.cfg.Inputs.Discovery.ProjectIDs
	if len(projectIDs) == 0 {
		var err error
		projectIDs, err = e.discoverProjects(ctx)
		if err != nil {
			return nil, err
		}
	}

	budget := e.cfg.Inputs.Discovery.MaxBuildsPerSource
	to := e.now()
	from := to.Add(-time.Duration(e.cfg.Inputs.Discovery.Days) * 24 * time.Hour)

	var ids []string
	seen := make(map[string]struct{})
	for _, pid := range projectIDs {
		if len(ids) >= budget {
			break
		}
		// Stop fetching pages once this project has yielded enough
		// builds to fill the remaining budget.
		remaining := budget - len(ids)
		collected := 0
		pages, err := e.testops.ListBuilds(ctx, pid, from, to, func(page client.Payload) bool {
			collected += len(page.Slice("builds"))
			return collected >= remaining
		})
		if err != nil {
			return nil, err
		}
		for _, page := range pages {
			for _, build := range page.Slice("builds") {
				id := build.Str("id")
				if id == "" {
					continue
				}
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				ids = append(ids, id)
				if len(ids) >= budget {
					break
				}
			}
			if len(ids) >= budget {
				break
			}
		}
	}

	if len(ids) == 0 {
		return nil, &domain.DiscoveryExhaustedError{Source: "testops"}
	}
	zerolog.Ctx(ctx).Info().Int("count", len(ids)).Msg("discovered testops builds")
	return ids, nil
}

func (e *Engine) discoverProjects(ctx context.Context) ([]string, error) {
	pages, err := e.testops.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	seen := make(map[string]struct{})
	for _, page := range pages {
		for _, project := range page.Slice("projects") {
			id := project.Str("id")
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// DeviceLabBuildIDs returns the explicit build IDs if configured,
// otherwise performs one bounded listing call and keeps builds whose best
// timestamp falls inside the discovery window. Builds with no timestamp
// at all are kept: absence of evidence is not evidence of staleness.
func (e *Engine) DeviceLabBuildIDs(ctx context.Context) ([]string, error) {
	if ids := e.cfg.Inputs.DeviceLabBuildIDs; len(ids) > 0 {
		return ids, nil
	}
	if !e.cfg.Inputs.Discovery.Enabled {
		return nil, &domain.DiscoveryExhaustedError{Source: "devicelab"}
	}

	builds, err := e.devicelab.ListBuilds(ctx, deviceLabListLimit)
	if err != nil {
		if client.IsTransport(err) {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("devicelab discovery listing failed")
			builds = nil
		} else {
			return nil, err
		}
	}

	budget := e.cfg.Inputs.Discovery.MaxBuildsPerSource
	cutoff := e.now().Add(-time.Duration(e.cfg.Inputs.Discovery.Days) * 24 * time.Hour)

	var ids []string
	for _, build := range builds {
		if len(ids) >= budget {
			break
		}
		id := build.Str("id")
		if id == "" {
			continue
		}
		if ts, ok := bestPayloadTime(build); ok && ts.Before(cutoff) {
			continue
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, &domain.DiscoveryExhaustedError{Source: "devicelab"}
	}
	zerolog.Ctx(ctx).Info().Int("count", len(ids)).Msg("discovered devicelab builds")
	return ids, nil
}

func bestPayloadTime(p client.Payload) (time.Time, bool) {
	var best time.Time
	found := false
	for _, f := range deviceLabTimeFields {
		if !p.Has(f) {
			continue
		}
		ts, ok := pipeline.ParseTimestamp(p[f])
		if !ok {
			continue
		}
		if !found || ts.After(best) {
			best = ts
			found = true
		}
	}
	return best, found
}
