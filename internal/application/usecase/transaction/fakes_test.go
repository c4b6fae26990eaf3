package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/envelofy/backend/internal/domain/entity"
	domainerror "github.com/envelofy/backend/internal/domain/error"
)

type memTransactionRepo struct {
	created []*entity.Transaction
}

func (r *memTransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.created = append(r.created, tx)
	return nil
}

func (r *memTransactionRepo) CreateBatch(_ context.Context, txs []*entity.Transaction) error {
	r.created = append(r.created, txs...)
	return nil
}

func (r *memTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, tx := range r.created {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (r *memTransactionRepo) FindByAccountSince(_ context.Context, accountID uuid.UUID, since time.Time) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range r.created {
		if tx.AccountID == accountID && !tx.Date.Before(since) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *memTransactionRepo) UpdateEnvelope(_ context.Context, transactionID uuid.UUID, envelopeID uuid.UUID) error {
	for _, tx := range r.created {
		if tx.ID == transactionID {
			tx.EnvelopeID = &envelopeID
			return nil
		}
	}
	return domainerror.ErrTransactionNotFound
}

type memAccountRepo struct {
	accounts []*entity.Account
}

func (r *memAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.accounts = append(r.accounts, account)
	return nil
}

func (r *memAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domainerror.ErrAccountNotFound
}

func (r *memAccountRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range r.accounts {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memEnvelopeRepo struct {
	envelopes []*entity.Envelope
}

func (r *memEnvelopeRepo) Create(_ context.Context, envelope *entity.Envelope) error {
	r.envelopes = append(r.envelopes, envelope)
	return nil
}

func (r *memEnvelopeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Envelope, error) {
	for _, e := range r.envelopes {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domainerror.ErrEnvelopeNotFound
}

func (r *memEnvelopeRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Envelope, error) {
	var out []*entity.Envelope
	for _, e := range r.envelopes {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memCategoryRepo struct {
	categories []*entity.Category
}

func (r *memCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.categories = append(r.categories, category)
	return nil
}

func (r *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r *memCategoryRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, id := range ids {
		if c, err := r.FindByID(context.Background(), id); err == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

type memPatternRepo struct {
	patterns map[uuid.UUID]*entity.Pattern
	owners   map[uuid.UUID]uuid.UUID // categoryID -> ownerID
}

func newMemPatternRepo() *memPatternRepo {
	return &memPatternRepo{
		patterns: make(map[uuid.UUID]*entity.Pattern),
		owners:   make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *memPatternRepo) Create(_ context.Context, p *entity.Pattern) error {
	owner := r.owners[p.CategoryID]
	for _, existing := range r.patterns {
		if existing.Value == p.Value && existing.Kind == p.Kind && r.owners[existing.CategoryID] == owner {
			return domainerror.ErrPatternExists
		}
	}
	r.patterns[p.ID] = p
	return nil
}

func (r *memPatternRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Pattern, error) {
	p, ok := r.patterns[id]
	if !ok {
		return nil, domainerror.ErrPatternNotFound
	}
	return p, nil
}

func (r *memPatternRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Pattern, error) {
	var out []*entity.Pattern
	for _, p := range r.patterns {
		if r.owners[p.CategoryID] == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPatternRepo) FindConfidentByOwner(_ context.Context, ownerID uuid.UUID, minConfidence float64) ([]*entity.Pattern, error) {
	var out []*entity.Pattern
	for _, p := range r.patterns {
		if r.owners[p.CategoryID] == ownerID && p.MatchCount > 0 && p.Confidence() >= minConfidence {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPatternRepo) FindByCategory(_ context.Context, categoryID uuid.UUID) ([]*entity.Pattern, error) {
	var out []*entity.Pattern
	for _, p := range r.patterns {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPatternRepo) FindByOwnerAndKind(_ context.Context, ownerID uuid.UUID, kind entity.PatternKind) ([]*entity.Pattern, error) {
	var out []*entity.Pattern
	for _, p := range r.patterns {
		if r.owners[p.CategoryID] == ownerID && p.Kind == kind {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPatternRepo) IncrementCounters(_ context.Context, matched []uuid.UUID, correct []uuid.UUID) error {
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

func (r *memPatternRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.patterns, id)
	return nil
}

type memCache struct {
	invalidations int
}

func (c *memCache) Get(context.Context, uuid.UUID) ([]*entity.AccountAnalysis, bool, error) {
	return nil, false, nil
}

func (c *memCache) Set(context.Context, uuid.UUID, []*entity.AccountAnalysis, time.Duration) error {
	return nil
}

func (c *memCache) Invalidate(_ context.Context, _ uuid.UUID) error {
	c.invalidations++
	return nil
}
