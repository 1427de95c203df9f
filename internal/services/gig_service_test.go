package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigboard-dev/gigboard/internal/models"
	"github.com/gigboard-dev/gigboard/internal/payments"
)

type fakeUserStore struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*models.User), nextID: 1}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("%w: email already registered", ErrConflict)
		}
	}

	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id uint) (*models.User, error) {
	user, exists := s.users[id]
	if !exists {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return user, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
}

type fakeGigStore struct {
	gigs   map[uint]*models.Gig
	nextID uint
}

func newFakeGigStore() *fakeGigStore {
	return &fakeGigStore{gigs: make(map[uint]*models.Gig), nextID: 1}
}

func (s *fakeGigStore) Create(_ context.Context, gig *models.Gig) error {
	gig.ID = s.nextID
	s.nextID++
	copied := *gig
	s.gigs[gig.ID] = &copied
	return nil
}

func (s *fakeGigStore) FindByID(_ context.Context, id uint) (*models.Gig, error) {
	gig, exists := s.gigs[id]
	if !exists {
		return nil, fmt.Errorf("%w: gig %d", ErrNotFound, id)
	}
	copied := *gig
	return &copied, nil
}

func (s *fakeGigStore) ListAll(_ context.Context) ([]models.Gig, error) {
	result := make([]models.Gig, 0, len(s.gigs))
	for _, gig := range s.gigs {
		result = append(result, *gig)
	}
	return result, nil
}

func (s *fakeGigStore) ListByOwner(_ context.Context, ownerID uint) ([]models.Gig, error) {
	var result []models.Gig
	for _, gig := range s.gigs {
		if gig.UserID == ownerID {
			result = append(result, *gig)
		}
	}
	return result, nil
}

func (s *fakeGigStore) ListByAssignee(_ context.Context, workerID uint) ([]models.Gig, error) {
	var result []models.Gig
	for _, gig := range s.gigs {
		if gig.AssignedTo != nil && *gig.AssignedTo == workerID {
			result = append(result, *gig)
		}
	}
	return result, nil
}

func (s *fakeGigStore) CompletePayment(_ context.Context, gigID uint, paymentRef string) (bool, error) {
	gig, exists := s.gigs[gigID]
	if !exists || gig.PaymentStatus != models.PaymentStatusPending {
		return false, nil
	}

	gig.PaymentStatus = models.PaymentStatusCompleted
	gig.PaymentRef = paymentRef
	return true, nil
}

func (s *fakeGigStore) Assign(_ context.Context, gigID, workerID uint, at time.Time) (bool, error) {
	gig, exists := s.gigs[gigID]
	if !exists || gig.Status != models.GigStatusOpen || gig.PaymentStatus != models.PaymentStatusCompleted {
		return false, nil
	}

	gig.Status = models.GigStatusAssigned
	gig.AssignedTo = &workerID
	gig.AssignedAt = &at
	return true, nil
}

type applicationKey struct {
	userID uint
	gigID  uint
}

type fakeApplicationStore struct {
	applications map[applicationKey]*models.Application
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{applications: make(map[applicationKey]*models.Application)}
}

func (s *fakeApplicationStore) Create(_ context.Context, app *models.Application) error {
	key := applicationKey{userID: app.UserID, gigID: app.GigID}

	if _, exists := s.applications[key]; exists {
		return fmt.Errorf("%w: duplicate application", ErrConflict)
	}

	s.applications[key] = app
	return nil
}

func (s *fakeApplicationStore) Exists(_ context.Context, userID, gigID uint) (bool, error) {
	_, exists := s.applications[applicationKey{userID: userID, gigID: gigID}]
	return exists, nil
}

type fakeNotificationStore struct {
	notifications []models.Notification
}

func (s *fakeNotificationStore) Create(_ context.Context, n *models.Notification) error {
	s.notifications = append(s.notifications, *n)
	return nil
}

func (s *fakeNotificationStore) ListByUser(_ context.Context, userID uint) ([]models.Notification, error) {
	var result []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

type fakeGateway struct {
	createErr error
	verifyErr error
	succeeded bool
	intents   int
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64, gigID uint) (*payments.Intent, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}

	g.intents++
	return &payments.Intent{
		ID:           fmt.Sprintf("pi_test_%d", gigID),
		ClientSecret: fmt.Sprintf("pi_test_%d_secret", gigID),
	}, nil
}

func (g *fakeGateway) VerifyIntent(_ context.Context, _ string) (bool, error) {
	if g.verifyErr != nil {
		return false, g.verifyErr
	}
	return g.succeeded, nil
}

type fakeNotifier struct {
	pushed []models.Notification
}

func (n *fakeNotifier) Push(_ uint, notification models.Notification) {
	n.pushed = append(n.pushed, notification)
}

type fixture struct {
	service       *GigService
	users         *fakeUserStore
	gigs          *fakeGigStore
	applications  *fakeApplicationStore
	notifications *fakeNotificationStore
	gateway       *fakeGateway
	notifier      *fakeNotifier
}

func newFixture(t *testing.T, bypass bool) *fixture {
	t.Helper()

	f := &fixture{
		users:         newFakeUserStore(),
		gigs:          newFakeGigStore(),
		applications:  newFakeApplicationStore(),
		notifications: &fakeNotificationStore{},
		gateway:       &fakeGateway{succeeded: true},
		notifier:      &fakeNotifier{},
	}

	f.service = NewGigService(f.gigs, f.users, f.applications, f.notifications, f.gateway, f.notifier, bypass)
	return f
}

func (f *fixture) addUser(t *testing.T, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func TestCreateGigBypass(t *testing.T) {
	f := newFixture(t, true)
	owner := f.addUser(t, "owner@example.com")

	gig, intent, err := f.service.CreateGig(context.Background(), owner.ID, "Mow lawn", "Front yard only", 5000)

	require.NoError(t, err)
	assert.Nil(t, intent)
	assert.Equal(t, models.GigStatusOpen, gig.Status)
	assert.Equal(t, models.PaymentStatusCompleted, gig.PaymentStatus)
	assert.True(t, strings.HasPrefix(gig.PaymentRef, "test-payment-"))
	assert.Equal(t, 0, f.gateway.intents)
}

func TestCreateGigWithGateway(t *testing.T) {
	f := newFixture(t, false)
	owner := f.addUser(t, "owner@example.com")

	gig, intent, err := f.service.CreateGig(context.Background(), owner.ID, "Paint fence", "", 2500)

	require.NoError(t, err)
	require.NotNil(t, intent)
	assert.NotEmpty(t, intent.ClientSecret)
	assert.Equal(t, models.PaymentStatusPending, gig.PaymentStatus)
	assert.Equal(t, models.GigStatusOpen, gig.Status)
}

func TestCreateGigValidation(t *testing.T) {
	f := newFixture(t, true)
	owner := f.addUser(t, "owner@example.com")

	_, _, err := f.service.CreateGig(context.Background(), owner.ID, "  ", "", 5000)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = f.service.CreateGig(context.Background(), owner.ID, "Mow lawn", "", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = f.service.CreateGig(context.Background(), owner.ID, "Mow lawn", "", -100)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateGigGatewayTimeout(t *testing.T) {
	f := newFixture(t, false)
	owner := f.addUser(t, "owner@example.com")
	f.gateway.createErr = context.DeadlineExceeded

	_, _, err := f.service.CreateGig(context.Background(), owner.ID, "Mow lawn", "", 5000)

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestConfirmPayment(t *testing.T) {
	f := newFixture(t, false)
	owner := f.addUser(t, "owner@example.com")
	stranger := f.addUser(t, "stranger@example.com")

	gig, intent, err := f.service.CreateGig(context.Background(), owner.ID, "Mow lawn", "", 5000)
	require.NoError(t, err)

	err = f.service.ConfirmPayment(context.Background(), gig.ID, owner.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// A non-owner cannot learn the gig exists.
	err = f.service.ConfirmPayment(context.Background(), gig.ID, stranger.ID, intent.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.service.ConfirmPayment(context.Background(), gig.ID, owner.ID, intent.ID))

	stored, err := f.gigs.FindByID(context.Background(), gig.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, stored.PaymentStatus)
	assert.Equal(t, intent.ID, stored.PaymentRef)

	// Re-confirming a completed gig is a no-op.
	require.NoError(t, f.service.ConfirmPayment(context.Background(), gig.ID, owner.ID, intent.ID))
}

func TestConfirmPaymentNotSucceeded(t *testing.T) {
	f := newFixture(t, false)
	owner := f.addUser(t, "owner@example.com")
	f.gateway.succeeded = false

	gig, intent, err := f.service.CreateGig(context.Background(), owner.ID, "Mow lawn", "", 5000)
	require.NoError(t, err)

	err = f.service.ConfirmPayment(context.Background(), gig.ID, owner.ID, intent.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	stored, err := f.gigs.FindByID(context.Background(), gig.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
}

func TestConfirmPaymentGatewayTimeout(t *testing.T) {
	f := newFixture(t, false)
	owner := f.addUser(t, "owner@example.com")

	gig, intent, err := f.service.CreateGig(context.Background(), owner.ID, "Mow lawn", "", 5000)
	require.NoError(t, err)

	f.gateway.verifyErr = context.DeadlineExceeded

	err = f.service.ConfirmPayment(context.Background(), gig.ID, owner.ID, intent.ID)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestApplyToGig(t *testing.T) {
	f := newFixture(t, true)
	owner := f.addUser(t, "owner@example.com")
	worker := f.addUser(t, "worker@example.com")

	gig, _, err := f.service.CreateGig(context.Background(), owner.ID, "Mow lawn", "", 5000)
	require.NoError(t, err)

	err = f.service.ApplyToGig(context.Background(), worker.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.service.ApplyToGig(context.Background(), worker.ID, gig.ID))

	// Second application for the same gig is rejected.
	err = f.service.ApplyToGig(context.Background(), worker.ID, gig.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAssignGigLifecycle(t *testing.T) {
	f := newFixture(t, true)
	owner := f.addUser(t, "owner@example.com")
	worker := f.addUser(t, "worker@example.com")
	stranger := f.addUser(t, "stranger@example.com")

	gig, _, err := f.service.CreateGig(context.Background(), owner.ID, "Mow lawn", "", 5000)
	require.NoError(t, err)
	require.NoError(t, f.service.ApplyToGig(context.Background(), worker.ID, gig.ID))

	// Only the owner may assign.
	err = f.service.AssignGig(context.Background(), stranger.ID, gig.ID, worker.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// The worker must exist.
	err = f.service.AssignGig(context.Background(), owner.ID, gig.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.service.AssignGig(context.Background(), owner.ID, gig.ID, worker.ID))

	stored, err := f.gigs.FindByID(context.Background(), gig.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusAssigned, stored.Status)
	require.NotNil(t, stored.AssignedTo)
	assert.Equal(t, worker.ID, *stored.AssignedTo)
	assert.NotNil(t, stored.AssignedAt)

	notifications, err := f.service.ListNotifications(context.Background(), worker.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "You've been assigned to gig: Mow lawn", notifications[0].Message)

	require.Len(t, f.notifier.pushed, 1)
	assert.Equal(t, worker.ID, f.notifier.pushed[0].UserID)

	// Assignment happens exactly once.
	err = f.service.AssignGig(context.Background(), owner.ID, gig.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAssignGigUnpaid(t *testing.T) {
	f := newFixture(t, false)
	owner := f.addUser(t, "owner@example.com")
	worker := f.addUser(t, "worker@example.com")

	gig, _, err := f.service.CreateGig(context.Background(), owner.ID, "Mow lawn", "", 5000)
	require.NoError(t, err)

	err = f.service.AssignGig(context.Background(), owner.ID, gig.ID, worker.ID)
	assert.ErrorIs(t, err, ErrConflict)

	stored, err := f.gigs.FindByID(context.Background(), gig.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusOpen, stored.Status)
	assert.Nil(t, stored.AssignedTo)
}

func TestListWorkerGigs(t *testing.T) {
	f := newFixture(t, true)
	owner := f.addUser(t, "owner@example.com")
	worker := f.addUser(t, "worker@example.com")

	gig, _, err := f.service.CreateGig(context.Background(), owner.ID, "Mow lawn", "", 5000)
	require.NoError(t, err)
	require.NoError(t, f.service.AssignGig(context.Background(), owner.ID, gig.ID, worker.ID))

	gigs, err := f.service.ListWorkerGigs(context.Background(), worker.ID)
	require.NoError(t, err)
	require.Len(t, gigs, 1)
	assert.Equal(t, "Mow lawn", gigs[0].Title)
	assert.Equal(t, int64(5000), gigs[0].Amount)
	assert.Equal(t, "50.00", gigs[0].DisplayAmount)
	assert.NotNil(t, gigs[0].AssignedAt)
}

func TestListGigs(t *testing.T) {
	f := newFixture(t, true)
	owner := f.addUser(t, "owner@example.com")

	_, _, err := f.service.CreateGig(context.Background(), owner.ID, "Mow lawn", "Front yard", 5000)
	require.NoError(t, err)
	_, _, err = f.service.CreateGig(context.Background(), owner.ID, "Paint fence", "", 2500)
	require.NoError(t, err)

	gigs, err := f.service.ListGigs(context.Background())
	require.NoError(t, err)
	assert.Len(t, gigs, 2)
}

func TestFormatDisplayAmount(t *testing.T) {
	assert.Equal(t, "50.00", FormatDisplayAmount(5000))
	assert.Equal(t, "0.01", FormatDisplayAmount(1))
	assert.Equal(t, "12.34", FormatDisplayAmount(1234))
	assert.Equal(t, "1000.00", FormatDisplayAmount(100000))
}

func TestMapDependencyErr(t *testing.T) {
	assert.ErrorIs(t, mapDependencyErr(context.DeadlineExceeded), ErrUnavailable)
	assert.ErrorIs(t, mapDependencyErr(context.Canceled), ErrUnavailable)

	plain := errors.New("boom")
	assert.False(t, errors.Is(mapDependencyErr(plain), ErrUnavailable))
}
