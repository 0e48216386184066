package geocoding

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Vietanh2703/BASMS-BE-sub001/internal/address"
)

// Coordinates is a resolved point.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Resolver runs three strategies in fixed order against the provider,
// returning on the first strategy that yields at least one candidate.
// Exhausting all three is not an error: the caller records a warning and
// continues without coordinates.
type Resolver struct {
	searcher Searcher
	pause    time.Duration
	logger   *zap.Logger
}

// providerPause is the mandatory wait after every provider call. Public
// Nominatim instances enforce one request per second.
const providerPause = time.Second

func NewResolver(searcher Searcher, logger ...*zap.Logger) *Resolver {
	l := zap.L().Named("geocoding.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("geocoding.resolver")
	}
	return &Resolver{
		searcher: searcher,
		pause:    providerPause,
		logger:   l,
	}
}

// Resolve attempts Structured, then Bounded, then Simple. Returns (nil, nil)
// when every strategy comes up empty.
func (r *Resolver) Resolve(ctx context.Context, comp address.Components) (*Coordinates, error) {
	hasHouseNumber := comp.HouseNumber != ""

	type strategy struct {
		name string
		run  func(context.Context) ([]Candidate, error)
		skip bool
	}

	box, hasBox := boundsFor(comp.District)
	strategies := []strategy{
		{
			name: "structured",
			skip: comp.Street == "",
			run: func(ctx context.Context) ([]Candidate, error) {
				street := strings.TrimSpace(comp.HouseNumber + " " + comp.Street)
				return r.searcher.StructuredSearch(ctx, street, comp.City, comp.District)
			},
		},
		{
			name: "bounded",
			skip: !hasBox,
			run: func(ctx context.Context) ([]Candidate, error) {
				return r.searcher.BoundedSearch(ctx, freeTextQuery(comp), box)
			},
		},
		{
			name: "simple",
			run: func(ctx context.Context) ([]Candidate, error) {
				return r.searcher.Search(ctx, freeTextQuery(comp)+", Việt Nam")
			},
		},
	}

	for _, s := range strategies {
		if s.skip {
			r.logger.Debug("geocode strategy skipped", zap.String("strategy", s.name))
			continue
		}

		candidates, err := s.run(ctx)
		if waitErr := r.waitAfterCall(ctx); waitErr != nil {
			return nil, waitErr
		}
		if err != nil {
			r.logger.Warn("geocode strategy failed",
				zap.String("strategy", s.name),
				zap.Error(err),
			)
			continue
		}
		if len(candidates) == 0 {
			r.logger.Debug("geocode strategy returned no candidates",
				zap.String("strategy", s.name),
			)
			continue
		}

		best := bestCandidate(candidates, hasHouseNumber)
		r.logger.Info("geocode resolved",
			zap.String("strategy", s.name),
			zap.Int("candidates", len(candidates)),
			zap.Float64("lat", best.Lat),
			zap.Float64("lon", best.Lon),
		)
		return &Coordinates{Latitude: best.Lat, Longitude: best.Lon}, nil
	}

	return nil, nil
}

// waitAfterCall blocks for the mandatory provider pause, honoring ctx.
func (r *Resolver) waitAfterCall(ctx context.Context) error {
	if r.pause <= 0 {
		return nil
	}
	timer := time.NewTimer(r.pause)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func freeTextQuery(comp address.Components) string {
	parts := make([]string, 0, 3)
	street := strings.TrimSpace(comp.HouseNumber + " " + comp.Street)
	if street != "" {
		parts = append(parts, street)
	}
	if comp.District != "" {
		parts = append(parts, comp.District)
	}
	if comp.City != "" {
		parts = append(parts, comp.City)
	}
	return strings.Join(parts, ", ")
}
