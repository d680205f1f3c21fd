package v1

import (
	"context"
	"encoding/json"

	"github.com/stripe/stripe-go/v78"

	"github.com/jonylazarte/ecommerce-page/internal/common"
	"github.com/jonylazarte/ecommerce-page/internal/model"
	"github.com/jonylazarte/ecommerce-page/internal/payment"
	"github.com/jonylazarte/ecommerce-page/internal/service"
)

// Service and gateway fakes for handler tests.

type fakeAuth struct {
	sessions map[string]*model.SessionPayload
}

func (f *fakeAuth) Register(context.Context, string, string, string) (*model.User, string, error) {
	return nil, "", nil
}

func (f *fakeAuth) Login(context.Context, string, string) (*model.User, string, error) {
	return nil, "", nil
}

func (f *fakeAuth) Logout(context.Context, string) error { return nil }

func (f *fakeAuth) ValidateSession(_ context.Context, token string) (*model.SessionPayload, error) {
	payload, ok := f.sessions[token]
	if !ok {
		return nil, common.ErrInvalidSession
	}
	return payload, nil
}

type fakeOrders struct {
	byID      map[string]*model.Order
	createErr error
}

func newFakeOrders(orders ...*model.Order) *fakeOrders {
	f := &fakeOrders{byID: map[string]*model.Order{}}
	for _, o := range orders {
		f.byID[o.ID] = o
	}
	return f
}

func (f *fakeOrders) Create(_ context.Context, userID string, input service.CreateOrderInput) (*model.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	order := &model.Order{
		ID:              "order-new",
		UserID:          userID,
		Status:          model.OrderPending,
		PaymentStatus:   model.PaymentPending,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
	}
	f.byID[order.ID] = order
	return order, nil
}

func (f *fakeOrders) ListByUser(_ context.Context, userID string) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range f.byID {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrders) ListAll(_ context.Context) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range f.byID {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrders) Get(_ context.Context, id string) (*model.Order, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrders) MarkPaymentStatus(_ context.Context, orderID string, status model.PaymentStatus, intentID string) (bool, error) {
	o, ok := f.byID[orderID]
	if !ok {
		return false, common.ErrNotFound
	}
	if o.PaymentStatus == model.PaymentCompleted {
		return false, nil
	}
	o.PaymentStatus = status
	o.PaymentIntentID = intentID
	return true, nil
}

func (f *fakeOrders) AdminUpdate(_ context.Context, orderID string, status *model.OrderStatus, paymentStatus *model.PaymentStatus) (*model.Order, error) {
	o, ok := f.byID[orderID]
	if !ok {
		return nil, common.ErrNotFound
	}
	if status != nil {
		o.Status = *status
	}
	if paymentStatus != nil {
		o.PaymentStatus = *paymentStatus
	}
	copied := *o
	return &copied, nil
}

type fakeUsers struct {
	byID map[string]*model.User
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]*model.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) List(_ context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) Get(_ context.Context, id string) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) UpdateRole(_ context.Context, id string, role model.Role) (*model.User, error) {
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, common.ErrInvalidRole
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	u.Role = role
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) Delete(_ context.Context, actorID, id string) error {
	if actorID == id {
		return common.ErrSelfDelete
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type sentEmail struct {
	To      string
	OrderID string
}

type fakeEmail struct {
	orderConfirmations   []sentEmail
	paymentConfirmations []sentEmail
}

func (f *fakeEmail) SendOrderConfirmation(to, _ string, order *model.Order) error {
	f.orderConfirmations = append(f.orderConfirmations, sentEmail{To: to, OrderID: order.ID})
	return nil
}

func (f *fakeEmail) SendPaymentConfirmation(to, _ string, order *model.Order) error {
	f.paymentConfirmations = append(f.paymentConfirmations, sentEmail{To: to, OrderID: order.ID})
	return nil
}

type fakeStripe struct {
	event     stripe.Event
	verifyErr error
}

func (f *fakeStripe) CreateIntent(_ context.Context, order *model.Order) (string, string, error) {
	return "cs_test_" + order.ID, "pi_" + order.ID, nil
}

func (f *fakeStripe) VerifyWebhook(context.Context, []byte, string) (stripe.Event, error) {
	if f.verifyErr != nil {
		return stripe.Event{}, f.verifyErr
	}
	return f.event, nil
}

func stripeIntentEvent(eventType, intentID, orderID string) stripe.Event {
	raw, _ := json.Marshal(map[string]any{
		"id":       intentID,
		"metadata": map[string]string{"orderId": orderID},
	})
	return stripe.Event{
		ID:   "evt_1",
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

type fakePayPal struct {
	order *payment.PayPalOrder
	err   error
}

func (f *fakePayPal) GetOrder(context.Context, string) (*payment.PayPalOrder, error) {
	return f.order, f.err
}

type fakeMercadoPago struct {
	pref *payment.Preference
	pay  *payment.Payment
}

func (f *fakeMercadoPago) CreatePreference(context.Context, *model.Order) (*payment.Preference, error) {
	return f.pref, nil
}

func (f *fakeMercadoPago) GetPayment(context.Context, string) (*payment.Payment, error) {
	return f.pay, nil
}
