package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"sweet-shop-api/internal/domain"
	"sweet-shop-api/pkg/utils"
)

// 和真实驱动的唯一约束报错同形，isDupKey 能识别
var errDup = errors.New("duplicate key value violates unique constraint")

func mustDecimal(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// 内存版仓储。fakePurchaseRepo 在锁内做条件扣减 + 插入，
// 语义与 gorm 实现的单事务一致。

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*domain.Account{}}
}

func (r *fakeAccountRepo) Create(_ context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.accounts {
		if ex.Email == a.Email {
			return errDup
		}
	}
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
	creates  int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*domain.Profile{}}
}

func (r *fakeProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.ID]; ok {
		return errDup
	}
	cp := *p
	r.profiles[p.ID] = &cp
	r.creates++
	return nil
}

func (r *fakeProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) UpdateRole(_ context.Context, id, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Role = role
	return nil
}

func (r *fakeProfileRepo) List(_ context.Context, q string, offset, limit int) ([]domain.Profile, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Profile
	needle := strings.ToLower(q)
	for _, p := range r.profiles {
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Email), needle) ||
			strings.Contains(strings.ToLower(p.FullName), needle) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

type fakeSweetRepo struct {
	mu     sync.Mutex
	sweets map[string]*domain.Sweet
}

func newFakeSweetRepo() *fakeSweetRepo {
	return &fakeSweetRepo{sweets: map[string]*domain.Sweet{}}
}

func (r *fakeSweetRepo) Create(_ context.Context, s *domain.Sweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sweets[s.ID] = &cp
	return nil
}

func (r *fakeSweetRepo) FindByID(_ context.Context, id string) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSweetRepo) Update(_ context.Context, s *domain.Sweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sweets[s.ID] = &cp
	return nil
}

func (r *fakeSweetRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sweets[id]; !ok {
		return domain.ErrSweetNotFound
	}
	delete(r.sweets, id)
	return nil
}

func (r *fakeSweetRepo) Search(_ context.Context, q, category string) ([]domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(strings.TrimSpace(q))
	var out []domain.Sweet
	for _, s := range r.sweets {
		if needle != "" &&
			!strings.Contains(strings.ToLower(s.Name), needle) &&
			!strings.Contains(strings.ToLower(s.Description), needle) {
			continue
		}
		if category != "" && category != "all" && s.Category != category {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakePurchaseRepo struct {
	mu        sync.Mutex
	sweets    map[string]*domain.Sweet
	profiles  map[string]*domain.Profile
	purchases []domain.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{
		sweets:   map[string]*domain.Sweet{},
		profiles: map[string]*domain.Profile{},
	}
}

func (r *fakePurchaseRepo) addSweet(s *domain.Sweet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sweets[s.ID] = &cp
}

func (r *fakePurchaseRepo) addProfile(p *domain.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.profiles[p.ID] = &cp
}

func (r *fakePurchaseRepo) stockOf(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sweets[id]; ok {
		return s.Stock
	}
	return -1
}

func (r *fakePurchaseRepo) setPrice(id string, price string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sweets[id]; ok {
		s.Price = mustDecimal(price)
	}
}

func (r *fakePurchaseRepo) Record(_ context.Context, userID, sweetID string, quantity int) (*domain.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[sweetID]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	if s.Stock < quantity {
		return nil, domain.ErrInsufficientStock
	}
	s.Stock -= quantity
	p := domain.Purchase{
		ID:           utils.NewID(),
		UserID:       userID,
		SweetID:      sweetID,
		Quantity:     quantity,
		UnitPrice:    s.Price,
		TotalPrice:   s.TotalFor(quantity),
		SweetName:    s.Name,
		PurchaseDate: time.Now(),
	}
	r.purchases = append(r.purchases, p)
	cp := p
	return &cp, nil
}

func (r *fakePurchaseRepo) ListByUser(_ context.Context, userID string) ([]domain.PurchaseDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PurchaseDetail
	for i := len(r.purchases) - 1; i >= 0; i-- {
		p := r.purchases[i]
		if p.UserID != userID {
			continue
		}
		out = append(out, r.detail(p))
	}
	return out, nil
}

func (r *fakePurchaseRepo) ListAll(_ context.Context) ([]domain.PurchaseDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PurchaseDetail
	for i := len(r.purchases) - 1; i >= 0; i-- {
		out = append(out, r.detail(r.purchases[i]))
	}
	return out, nil
}

func (r *fakePurchaseRepo) detail(p domain.Purchase) domain.PurchaseDetail {
	d := domain.PurchaseDetail{Purchase: p}
	if s, ok := r.sweets[p.SweetID]; ok {
		cp := *s
		d.Sweet = &cp
	}
	if pr, ok := r.profiles[p.UserID]; ok {
		cp := *pr
		d.Profile = &cp
	}
	return d
}
