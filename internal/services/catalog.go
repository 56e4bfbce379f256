package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ccomp-uerj/progress-backend/internal/clients/catalog"
	rediscli "github.com/ccomp-uerj/progress-backend/internal/clients/redis"
	"github.com/ccomp-uerj/progress-backend/internal/curriculum"
	apperrors "github.com/ccomp-uerj/progress-backend/internal/pkg/errors"
	"github.com/ccomp-uerj/progress-backend/internal/pkg/logger"
)

// CatalogService turns the raw upstream catalog into the normalized
// curriculum graph. The graph is rebuilt from scratch on every fetch; only
// the raw record list is cached.
type CatalogService interface {
	// Graph returns the current curriculum graph. On upstream failure it
	// returns an empty graph together with the error; an empty graph means
	// "catalog unavailable", never "empty curriculum".
	Graph(ctx context.Context) (curriculum.Graph, error)
	// Refresh bypasses the cache and refetches the catalog.
	Refresh(ctx context.Context) (curriculum.Graph, error)
	DisciplineDetail(ctx context.Context, disciplineID string) (json.RawMessage, error)
	ClassDetail(ctx context.Context, disciplineID string, classNumber int) (json.RawMessage, error)
}

type catalogService struct {
	log    *logger.Logger
	client catalog.Client
	cache  rediscli.CatalogCache
	layout []curriculum.Slot
}

// NewCatalogService builds the service. cache may be nil, in which case every
// Graph call goes upstream.
func NewCatalogService(baseLog *logger.Logger, client catalog.Client, cache rediscli.CatalogCache, layout []curriculum.Slot) CatalogService {
	return &catalogService{
		log:    baseLog.With("service", "CatalogService"),
		client: client,
		cache:  cache,
		layout: layout,
	}
}

func (cs *catalogService) Graph(ctx context.Context) (curriculum.Graph, error) {
	if cs.cache != nil {
		if records, ok := cs.cache.Get(ctx); ok {
			return curriculum.BuildGraph(records, cs.layout), nil
		}
	}
	return cs.fetchAndBuild(ctx)
}

func (cs *catalogService) Refresh(ctx context.Context) (curriculum.Graph, error) {
	if cs.cache != nil {
		cs.cache.Invalidate(ctx)
	}
	return cs.fetchAndBuild(ctx)
}

func (cs *catalogService) fetchAndBuild(ctx context.Context) (curriculum.Graph, error) {
	records, err := cs.client.ListDisciplines(ctx)
	if err != nil {
		cs.log.Error("Catalog fetch failed", "error", err)
		return curriculum.Graph{}, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	if cs.cache != nil {
		cs.cache.Set(ctx, records)
	}
	return curriculum.BuildGraph(records, cs.layout), nil
}

func (cs *catalogService) DisciplineDetail(ctx context.Context, disciplineID string) (json.RawMessage, error) {
	raw, err := cs.client.GetDiscipline(ctx, disciplineID)
	if err != nil {
		return nil, fmt.Errorf("discipline detail: %w", err)
	}
	return raw, nil
}

func (cs *catalogService) ClassDetail(ctx context.Context, disciplineID string, classNumber int) (json.RawMessage, error) {
	raw, err := cs.client.GetClass(ctx, disciplineID, classNumber)
	if err != nil {
		return nil, fmt.Errorf("class detail: %w", err)
	}
	return raw, nil
}
