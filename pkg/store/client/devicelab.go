package client

import (
	"context"
	"net/url"
	"strconv"
)

// DeviceLab is the client for the device-automation source. Its listing
// endpoints paginate by offset/limit; a page shorter than the requested
// limit ends the listing.
type DeviceLab struct {
	api *API
}

func NewDeviceLab(baseURL string, creds Credentials) *DeviceLab {
	return &DeviceLab{api: NewAPI(baseURL, creds)}
}

// ListBuilds performs a single bounded listing call. No deep pagination:
// recent builds come first and discovery only needs the head of the list.
func (d *DeviceLab) ListBuilds(ctx context.Context, limit int) ([]Payload, error) {
	page, err := d.api.GetJSON(ctx, "/api/v1/builds", url.Values{
		"limit": {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}
	return page.Slice("builds"), nil
}

// Sessions lists every session of a build, walking offset/limit pages
// until a page returns fewer rows than requested.
func (d *DeviceLab) Sessions(ctx context.Context, buildID string, limit int) ([]Payload, error) {
	var sessions []Payload
	for offset := 0; ; offset += limit {
		page, err := d.api.GetJSON(ctx,
			"/api/v1/builds/"+url.PathEscape(buildID)+"/sessions",
			url.Values{
				"limit":  {strconv.Itoa(limit)},
				"offset": {strconv.Itoa(offset)},
			})
		if err != nil {
			return nil, err
		}
		rows := page.Slice("sessions")
		sessions = append(sessions, rows...)
		if len(rows) < limit {
			return sessions, nil
		}
	}
}

// SessionDetails fetches one session's detail record. Some deployments
// nest the record under a "session" key; both shapes are accepted.
func (d *DeviceLab) SessionDetails(ctx context.Context, sessionID string) (Payload, error) {
	page, err := d.api.GetJSON(ctx, "/api/v1/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, err
	}
	if nested := page.Map("session"); nested != nil {
		return nested, nil
	}
	return page, nil
}

// Apps lists uploaded application artifacts, most recent first. A
// non-empty customID restricts the listing to uploads registered under
// that custom identifier.
func (d *DeviceLab) Apps(ctx context.Context, customID string, limit int) ([]Payload, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if customID != "" {
		query.Set("custom_id", customID)
	}
	page, err := d.api.GetJSON(ctx, "/api/v1/apps", query)
	if err != nil {
		return nil, err
	}
	return page.Slice("apps"), nil
}
