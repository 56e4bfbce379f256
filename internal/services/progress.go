package services

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ccomp-uerj/progress-backend/internal/curriculum"
	"github.com/ccomp-uerj/progress-backend/internal/pkg/logger"
	"github.com/ccomp-uerj/progress-backend/internal/types"
)

// ProgressSnapshot is everything a presentation layer needs to render the
// flowchart for one student: the graph, the per-node statuses, and the
// locked set. It is computed in full on every call, never patched.
type ProgressSnapshot struct {
	Graph        curriculum.Graph     `json:"graph"`
	Student      *types.Student       `json:"student"`
	Statuses     curriculum.StatusMap `json:"statuses"`
	Locked       []string             `json:"locked"`
	TotalCredits int                  `json:"totalCredits"`
}

// ProgressService joins the two inputs of the resolver: the catalog graph
// and the student record. Both fetches run concurrently; the pure resolution
// only starts once both have landed.
type ProgressService interface {
	Snapshot(ctx context.Context, registration string) (*ProgressSnapshot, error)
}

type progressService struct {
	log      *logger.Logger
	catalog  CatalogService
	students StudentService
}

func NewProgressService(baseLog *logger.Logger, catalog CatalogService, students StudentService) ProgressService {
	return &progressService{
		log:      baseLog.With("service", "ProgressService"),
		catalog:  catalog,
		students: students,
	}
}

func (ps *progressService) Snapshot(ctx context.Context, registration string) (*ProgressSnapshot, error) {
	var (
		graph   curriculum.Graph
		student *types.Student
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Upstream failure already degrades to an empty graph; the snapshot
		// reports "no data" instead of failing the whole request.
		built, err := ps.catalog.Graph(gctx)
		if err != nil {
			ps.log.Warn("Snapshot built without catalog data", "error", err)
		}
		graph = built
		return nil
	})
	g.Go(func() error {
		loaded, _, err := ps.students.GetOrCreate(gctx, registration)
		if err != nil {
			return err
		}
		student = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	statuses := curriculum.ResolveStatuses(graph, student)
	totalCredits := student.TotalCredits()
	lockedSet := curriculum.ComputeLocked(graph, statuses, totalCredits)

	locked := make([]string, 0, len(lockedSet))
	for id := range lockedSet {
		locked = append(locked, id)
	}
	sort.Strings(locked)

	return &ProgressSnapshot{
		Graph:        graph,
		Student:      student,
		Statuses:     statuses,
		Locked:       locked,
		TotalCredits: totalCredits,
	}, nil
}
