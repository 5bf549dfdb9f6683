package sessions

import (
	"context"

	"github.com/de-tools/test-atlas/pkg/models/domain"
	"github.com/de-tools/test-atlas/pkg/store/client"
	"github.com/rs/zerolog"
)

// Enricher turns device-automation sessions and app uploads into flat
// rows. When detail enrichment is on, each listed session gets one extra
// fetch and the detail record's values overlay the summary's.
type Enricher struct {
	devicelab    *client.DeviceLab
	fetchDetails bool
	pageSize     int
}

// defaultPageSize backs a non-positive page size. The offset/limit loop
// cannot advance with a limit of zero or less.
const defaultPageSize = 25

func NewEnricher(devicelab *client.DeviceLab, fetchDetails bool, pageSize int) *Enricher {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Enricher{
		devicelab:    devicelab,
		fetchDetails: fetchDetails,
		pageSize:     pageSize,
	}
}

// SessionRows lists one build's sessions and builds one row per session.
func (e *Enricher) SessionRows(ctx context.Context, buildID string) ([]*domain.Row, error) {
	listed, err := e.devicelab.Sessions(ctx, buildID, e.pageSize)
	if err != nil {
		return nil, err
	}

	rows := make([]*domain.Row, 0, len(listed))
	for _, summary := range listed {
		row := sessionRow(summary, buildID)

		if e.fetchDetails && summary.Str("id") != "" {
			detail, err := e.devicelab.SessionDetails(ctx, summary.Str("id"))
			if err != nil {
				return nil, err
			}
			overlayDetail(row, detail)
		}
		rows = append(rows, row)
	}

	zerolog.Ctx(ctx).Debug().
		Str("build_id", buildID).
		Int("sessions", len(rows)).
		Msg("collected device sessions")
	return rows, nil
}

func sessionRow(s client.Payload, buildID string) *domain.Row {
	return domain.NewRow().
		Set("session_id", s.Str("id")).
		Set("name", s.Str("name")).
		Set("status", s.Str("status")).
		Set("created_at", s.Str("created_at")).
		Set("started_at", s.Str("started_at")).
		Set("finished_at", s.Str("finished_at")).
		Set("duration_ms", s.Num("duration")).
		Set("device", s.Str("device")).
		Set("os", s.Str("os")).
		Set("os_version", s.Str("os_version")).
		Set("build_id", buildID).
		Set("build_name", s.Str("build_name")).
		Set("project_name", s.Str("project_name")).
		Set("user_name", s.Str("user_name")).
		Set("video_url", s.Str("video_url")).
		Set("logs_url", s.Str("logs_url")).
		Set("public_url", s.Str("public_url")).
		Set("app_url", "").
		Set("app_name", "").
		Set("app_version", "").
		Set("app_custom_id", "").
		Set("app_uploaded_at", "")
}

// overlayDetail merges a session detail record into the summary row.
// Detail timestamps win only when non-empty; the summary value survives
// otherwise. App metadata comes from the detail record alone.
func overlayDetail(row *domain.Row, detail client.Payload) {
	for _, field := range []string{"created_at", "started_at", "finished_at"} {
		if v := detail.Str(field); v != "" {
			row.Set(field, v)
		}
	}

	app := detail.Map("app_details")
	if app == nil {
		app = detail.Map("app")
	}
	if app != nil {
		row.Set("app_url", app.Str("app_url")).
			Set("app_name", app.Str("app_name")).
			Set("app_version", app.Str("app_version")).
			Set("app_custom_id", app.Str("custom_id")).
			Set("app_uploaded_at", app.Str("uploaded_at"))
	}
}

// AppRows builds the app-inventory rows. With explicit custom IDs, one
// listing call per ID, each capped to limit; otherwise one call for the
// globally most recent uploads.
func (e *Enricher) AppRows(ctx context.Context, customIDs []string, limit int) ([]*domain.Row, error) {
	var listed []client.Payload
	if len(customIDs) > 0 {
		for _, id := range customIDs {
			apps, err := e.devicelab.Apps(ctx, id, limit)
			if err != nil {
				return nil, err
			}
			listed = append(listed, apps...)
		}
	} else {
		var err error
		listed, err = e.devicelab.Apps(ctx, "", limit)
		if err != nil {
			return nil, err
		}
	}

	rows := make([]*domain.Row, 0, len(listed))
	for _, app := range listed {
		rows = append(rows, appRow(app))
	}
	return rows, nil
}

func appRow(a client.Payload) *domain.Row {
	return domain.NewRow().
		Set("app_id", a.Str("app_id")).
		Set("name", a.Str("app_name")).
		Set("version", a.Str("app_version")).
		Set("url", a.Str("app_url")).
		Set("custom_id", a.Str("custom_id")).
		Set("shareable_id", a.Str("shareable_id")).
		Set("uploaded_at", a.Str("uploaded_at")).
		Set("uploaded_by", a.Str("uploaded_by"))
}
