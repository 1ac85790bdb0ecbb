package memory

import (
	"context"
	"sync"
	"time"

	domainarticle "festiloc/internal/domain/article"
	domainclient "festiloc/internal/domain/client"
	domainreservation "festiloc/internal/domain/reservation"
)

// ReservationRepository is an in-memory implementation used by the default
// storage mode and by tests.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[domainreservation.ReservationID]*domainreservation.Reservation
	order []domainreservation.ReservationID
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		items: make(map[domainreservation.ReservationID]*domainreservation.Reservation),
	}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[id]
	if !ok {
		return nil, domainreservation.ErrReservationNotFound
	}
	return res, nil
}

func (r *ReservationRepository) ListAll(ctx context.Context) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainreservation.Reservation, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

// ListByMonth returns reservations whose span touches any day of the month.
func (r *ReservationRepository) ListByMonth(ctx context.Context, year int, month time.Month) ([]*domainreservation.Reservation, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainreservation.Reservation
	for _, id := range r.order {
		res := r.items[id]
		if res.Span.Start.After(last) || res.Span.End.Before(first) {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *ReservationRepository) ListByClient(ctx context.Context, clientID domainclient.ClientID) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainreservation.Reservation
	for _, id := range r.order {
		if r.items[id].ClientID == clientID {
			out = append(out, r.items[id])
		}
	}
	return out, nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[res.ID]; !ok {
		r.order = append(r.order, res.ID)
	}
	r.items[res.ID] = res
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id domainreservation.ReservationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainreservation.ErrReservationNotFound
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// ArticleRepository keeps the article catalog in memory.
type ArticleRepository struct {
	mu    sync.RWMutex
	items map[domainarticle.ArticleID]*domainarticle.Article
	order []domainarticle.ArticleID
}

func NewArticleRepository() *ArticleRepository {
	return &ArticleRepository{items: make(map[domainarticle.ArticleID]*domainarticle.Article)}
}

func (r *ArticleRepository) ListAll(ctx context.Context) ([]*domainarticle.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainarticle.Article, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *ArticleRepository) ByID(ctx context.Context, id domainarticle.ArticleID) (*domainarticle.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return nil, domainarticle.ErrArticleNotFound
	}
	return a, nil
}

func (r *ArticleRepository) Save(ctx context.Context, a *domainarticle.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID]; !ok {
		r.order = append(r.order, a.ID)
	}
	r.items[a.ID] = a
	return nil
}

// ClientRepository keeps client records in memory.
type ClientRepository struct {
	mu    sync.RWMutex
	items map[domainclient.ClientID]*domainclient.Client
	order []domainclient.ClientID
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{items: make(map[domainclient.ClientID]*domainclient.Client)}
}

func (r *ClientRepository) ByID(ctx context.Context, id domainclient.ClientID) (*domainclient.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, domainclient.ErrClientNotFound
	}
	return c, nil
}

func (r *ClientRepository) ListAll(ctx context.Context) ([]*domainclient.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainclient.Client, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *ClientRepository) Save(ctx context.Context, c *domainclient.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		r.order = append(r.order, c.ID)
	}
	r.items[c.ID] = c
	return nil
}
