package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jonylazarte/ecommerce-page/internal/common"
	"github.com/jonylazarte/ecommerce-page/internal/model"
)

// In-memory fakes standing in for the Postgres repositories.

type fakeUserRepo struct {
	byID map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) (*model.User, error) {
	u := *user
	r.byID[u.ID] = &u
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id string, role model.Role) (*model.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	u.Role = role
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

type fakeSessionRepo struct {
	byToken map[string]*model.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byToken: map[string]*model.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *model.Session) error {
	s := *session
	r.byToken[s.Token] = &s
	return nil
}

func (r *fakeSessionRepo) Get(_ context.Context, token string) (*model.Session, error) {
	s, ok := r.byToken[token]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, token string) error {
	delete(r.byToken, token)
	return nil
}

type fakeProductRepo struct {
	byID       map[string]*model.Product
	decrements map[string]int
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	r := &fakeProductRepo{byID: map[string]*model.Product{}, decrements: map[string]int{}}
	for _, p := range products {
		copied := *p
		r.byID[copied.ID] = &copied
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, product *model.Product) (*model.Product, error) {
	p := *product
	r.byID[p.ID] = &p
	return &p, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProductRepo) List(_ context.Context, category string) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range r.byID {
		if category == "" || p.Category == category {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *model.Product) (*model.Product, error) {
	if _, ok := r.byID[product.ID]; !ok {
		return nil, common.ErrNotFound
	}
	p := *product
	r.byID[p.ID] = &p
	return &p, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id string, quantity int) error {
	p, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	p.Stock -= quantity
	p.InStock = p.Stock > 0
	r.decrements[id] += quantity
	return nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

type fakeOrderRepo struct {
	byID  map[string]*model.Order
	items map[string][]model.OrderItem
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{byID: map[string]*model.Order{}, items: map[string][]model.OrderItem{}}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *model.Order) (*model.Order, error) {
	o := *order
	r.byID[o.ID] = &o
	copied := o
	return &copied, nil
}

func (r *fakeOrderRepo) AddItem(_ context.Context, item *model.OrderItem) error {
	r.items[item.OrderID] = append(r.items[item.OrderID], *item)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*model.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *o
	copied.Items = append([]model.OrderItem(nil), r.items[id]...)
	return &copied, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range r.byID {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListAll(_ context.Context) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range r.byID {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdatePaymentStatus(_ context.Context, id string, status model.PaymentStatus, intentID string) error {
	o, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	o.PaymentStatus = status
	if intentID != "" {
		o.PaymentIntentID = intentID
	}
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status model.OrderStatus) error {
	o, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakeOrderRepo) CompletedRevenue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range r.byID {
		if o.PaymentStatus == model.PaymentCompleted {
			total = total.Add(o.Total)
		}
	}
	return total, nil
}

func (r *fakeOrderRepo) Recent(_ context.Context, limit int) ([]model.Order, error) {
	all, _ := r.ListAll(context.Background())
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
