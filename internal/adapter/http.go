package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/securenotes/go-secure-vault/internal/config"
	"github.com/securenotes/go-secure-vault/internal/logger"
	"github.com/securenotes/go-secure-vault/models"
)

type httpRemoteStore struct {
	client   *resty.Client
	database string

	// pollWindow is the server-side long-poll duration for the changes
	// feed. It must stay below the client request timeout so the poll
	// returns before resty cancels it.
	pollWindow time.Duration

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs an HTTP/REST implementation of [RemoteStore].
// It normalises and validates the base URL from cfg.Address, configures the
// underlying HTTP client with the resolved base URL, request timeout, and
// basic-auth credentials taken from cfg (which sources them from the
// environment only).
//
// Returns an error if cfg.Address is empty or cannot be parsed as a valid
// URL.
func NewHTTPRemoteStore(cfg config.Remote, log *logger.Logger) (RemoteStore, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid remote store address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	if cfg.Username != "" {
		client.SetBasicAuth(cfg.Username, cfg.Password)
	}

	return &httpRemoteStore{
		client:     client,
		database:   cfg.Database,
		pollWindow: cfg.RequestTimeout * 2 / 3,
		logger:     log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// remoteDocument mirrors the wire shape of a vault record on the remote
// document store. Deletion is flagged through the dedicated _deleted field
// rather than the local column so tombstones keep their owner marker.
type remoteDocument struct {
	ID            string            `json:"_id"`
	Revision      string            `json:"_rev,omitempty"`
	Deleted       bool              `json:"_deleted,omitempty"`
	OwnerID       string            `json:"owner_id"`
	Kind          models.RecordKind `json:"kind"`
	Title         string            `json:"title"`
	SealedPayload string            `json:"sealed_payload"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func fromRecord(record models.VaultRecord) remoteDocument {
	return remoteDocument{
		ID:            record.ID,
		Revision:      record.Revision,
		Deleted:       record.Deleted,
		OwnerID:       record.OwnerID,
		Kind:          record.Kind,
		Title:         record.Title,
		SealedPayload: record.SealedPayload,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func (d remoteDocument) toRecord() models.VaultRecord {
	return models.VaultRecord{
		ID:            d.ID,
		Revision:      d.Revision,
		Deleted:       d.Deleted,
		OwnerID:       d.OwnerID,
		Kind:          d.Kind,
		Title:         d.Title,
		SealedPayload: d.SealedPayload,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type putResponse struct {
	OK       bool   `json:"ok"`
	ID       string `json:"id"`
	Revision string `json:"rev"`
}

type changesResponse struct {
	Results []changeRow `json:"results"`
	LastSeq string      `json:"last_seq"`
}

type changeRow struct {
	ID      string          `json:"id"`
	Deleted bool            `json:"deleted"`
	Doc     *remoteDocument `json:"doc"`
}

type changesFilter struct {
	Selector ownerSelector `json:"selector"`
}

type ownerSelector struct {
	OwnerID string `json:"owner_id"`
}

// Ping implements [RemoteStore]. It GETs the database root and maps the
// response status, so bad credentials surface as [ErrUnauthorized] before
// any replication traffic is attempted.
func (h *httpRemoteStore) Ping(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(h.databasePath())
	if err != nil {
		return fmt.Errorf("%w: ping: %v", ErrRemoteUnavailable, err)
	}

	return mapHTTPError(resp)
}

// Get implements [RemoteStore]. It GETs /{db}/{id} and decodes the document
// into a [models.VaultRecord].
func (h *httpRemoteStore) Get(ctx context.Context, id string) (models.VaultRecord, error) {
	var doc remoteDocument

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&doc).
		Get(h.documentPath(id))
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: get %s: %v", ErrRemoteUnavailable, id, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultRecord{}, err
	}

	return doc.toRecord(), nil
}

// Put implements [RemoteStore]. It PUTs the document to /{db}/{id} with the
// base revision both in the body and the rev query parameter, and returns
// the revision the remote assigned. Tombstoned records are written with the
// _deleted flag set so the deletion replicates through the changes feed.
func (h *httpRemoteStore) Put(ctx context.Context, record models.VaultRecord) (string, error) {
	var result putResponse

	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(fromRecord(record)).
		SetResult(&result)
	if record.Revision != "" {
		req.SetQueryParam("rev", record.Revision)
	}

	resp, err := req.Put(h.documentPath(record.ID))
	if err != nil {
		return "", fmt.Errorf("%w: put %s: %v", ErrRemoteUnavailable, record.ID, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return result.Revision, nil
}

// Changes implements [RemoteStore]. It POSTs to /{db}/_changes with a
// longpoll feed, include_docs, and a selector filter narrowing the feed to
// ownerID. The server-side filter is treated as advisory: any document that
// arrives with a different owner is dropped here as well, since the owner
// predicate is the only tenant boundary.
func (h *httpRemoteStore) Changes(ctx context.Context, ownerID string, since string) (ChangesPage, error) {
	if since == "" {
		since = "0"
	}

	var feed changesResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParams(map[string]string{
			"feed":         "longpoll",
			"include_docs": "true",
			"filter":       "_selector",
			"since":        since,
			"timeout":      strconv.FormatInt(h.pollWindow.Milliseconds(), 10),
		}).
		SetBody(changesFilter{Selector: ownerSelector{OwnerID: ownerID}}).
		SetResult(&feed).
		Post(h.databasePath() + "/_changes")
	if err != nil {
		return ChangesPage{}, fmt.Errorf("%w: changes since %s: %v", ErrRemoteUnavailable, since, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return ChangesPage{}, err
	}

	page := ChangesPage{Since: feed.LastSeq}
	for _, row := range feed.Results {
		if row.Doc == nil {
			continue
		}
		if row.Doc.OwnerID != ownerID {
			h.logger.Warn().
				Str("func", "Changes").
				Str("record_id", row.ID).
				Msg("dropping change for foreign owner")
			continue
		}
		page.Records = append(page.Records, row.Doc.toRecord())
	}

	return page, nil
}

func (h *httpRemoteStore) databasePath() string {
	return "/" + url.PathEscape(h.database)
}

func (h *httpRemoteStore) documentPath(id string) string {
	return h.databasePath() + "/" + url.PathEscape(id)
}
