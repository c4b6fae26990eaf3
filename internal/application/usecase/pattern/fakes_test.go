package pattern

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
)

// fakePatternRepo is an in-memory PatternRepository with the same uniqueness
// and atomicity semantics as the SQL implementation.
type fakePatternRepo struct {
	mu       sync.Mutex
	patterns map[uuid.UUID]*entity.Pattern
	owners   map[uuid.UUID]uuid.UUID // categoryID -> ownerID
}

func newFakePatternRepo() *fakePatternRepo {
	return &fakePatternRepo{
		patterns: make(map[uuid.UUID]*entity.Pattern),
		owners:   make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *fakePatternRepo) registerCategory(categoryID, ownerID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners[categoryID] = ownerID
}

func (r *fakePatternRepo) Create(_ context.Context, p *entity.Pattern) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner := r.owners[p.CategoryID]
	for _, existing := range r.patterns {
		if existing.Value == p.Value && existing.Kind == p.Kind && r.owners[existing.CategoryID] == owner {
			return domainerror.ErrPatternExists
		}
	}
	cp := *p
	r.patterns[p.ID] = &cp
	return nil
}

func (r *fakePatternRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Pattern, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patterns[id]
	if !ok {
		return nil, domainerror.ErrPatternNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePatternRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Pattern, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Pattern
	for _, p := range r.patterns {
		if r.owners[p.CategoryID] == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sortPatterns(out)
	return out, nil
}

func (r *fakePatternRepo) FindConfidentByOwner(_ context.Context, ownerID uuid.UUID, minConfidence float64) ([]*entity.Pattern, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Pattern
	for _, p := range r.patterns {
		if r.owners[p.CategoryID] != ownerID {
			continue
		}
		if p.MatchCount == 0 || p.Confidence() < minConfidence {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sortPatterns(out)
	return out, nil
}

func (r *fakePatternRepo) FindByCategory(_ context.Context, categoryID uuid.UUID) ([]*entity.Pattern, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Pattern
	for _, p := range r.patterns {
		if p.CategoryID == categoryID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sortPatterns(out)
	return out, nil
}

func (r *fakePatternRepo) FindByOwnerAndKind(_ context.Context, ownerID uuid.UUID, kind entity.PatternKind) ([]*entity.Pattern, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Pattern
	for _, p := range r.patterns {
		if r.owners[p.CategoryID] == ownerID && p.Kind == kind {
			cp := *p
			out = append(out, &cp)
		}
	}
	sortPatterns(out)
	return out, nil
}

func (r *fakePatternRepo) IncrementCounters(_ context.Context, matched []uuid.UUID, correct []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range matched {
		if p, ok := r.patterns[id]; ok {
			p.MatchCount++
		}
	}
	for _, id := range correct {
		if p, ok := r.patterns[id]; ok {
			p.CorrectCount++
		}
	}
	return nil
}

func (r *fakePatternRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patterns[id]; !ok {
		return domainerror.ErrPatternNotFound
	}
	delete(r.patterns, id)
	return nil
}

func (r *fakePatternRepo) get(id uuid.UUID) *entity.Pattern {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.patterns[id]; ok {
		cp := *p
		return &cp
	}
	return nil
}

func (r *fakePatternRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.patterns)
}

func sortPatterns(patterns []*entity.Pattern) {
	sort.Slice(patterns, func(i, j int) bool {
		return patterns[i].ID.String() < patterns[j].ID.String()
	})
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeEnvelopeRepo struct {
	envelopes map[uuid.UUID]*entity.Envelope
}

func newFakeEnvelopeRepo(envelopes ...*entity.Envelope) *fakeEnvelopeRepo {
	r := &fakeEnvelopeRepo{envelopes: make(map[uuid.UUID]*entity.Envelope)}
	for _, e := range envelopes {
		r.envelopes[e.ID] = e
	}
	return r
}

func (r *fakeEnvelopeRepo) Create(_ context.Context, envelope *entity.Envelope) error {
	r.envelopes[envelope.ID] = envelope
	return nil
}

func (r *fakeEnvelopeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Envelope, error) {
	e, ok := r.envelopes[id]
	if !ok {
		return nil, domainerror.ErrEnvelopeNotFound
	}
	return e, nil
}

func (r *fakeEnvelopeRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Envelope, error) {
	var out []*entity.Envelope
	for _, e := range r.envelopes {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}
