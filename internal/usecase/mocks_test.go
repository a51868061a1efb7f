package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tutorhub/booking-service/internal/entity"
)

type MockFamilyRepository struct {
	mock.Mock
}

func (m *MockFamilyRepository) Create(ctx context.Context, f *entity.Family) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFamilyRepository) FindByEmail(ctx context.Context, email string) (*entity.Family, error) {
	args := m.Called(ctx, email)
	if f, ok := args.Get(0).(*entity.Family); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFamilyRepository) FindByDisplayName(ctx context.Context, displayName string) (*entity.Family, error) {
	args := m.Called(ctx, displayName)
	if f, ok := args.Get(0).(*entity.Family); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFamilyRepository) UpdateCalendlyFields(ctx context.Context, familyID, calendlyURI string, lastBookingAt time.Time) error {
	args := m.Called(ctx, familyID, calendlyURI, lastBookingAt)
	return args.Error(0)
}

func (m *MockFamilyRepository) PromoteToLead(ctx context.Context, familyID, leadType, calendlyURI string, lastBookingAt time.Time) error {
	args := m.Called(ctx, familyID, leadType, calendlyURI, lastBookingAt)
	return args.Error(0)
}

func (m *MockFamilyRepository) SetSecondaryEmailIfEmpty(ctx context.Context, familyID, email string) error {
	args := m.Called(ctx, familyID, email)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Upsert(ctx context.Context, b *entity.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) MarkCanceled(ctx context.Context, inviteeURI, reason string, canceledAt time.Time) (bool, error) {
	args := m.Called(ctx, inviteeURI, reason, canceledAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) FindByInviteeURI(ctx context.Context, inviteeURI string) (*entity.Booking, error) {
	args := m.Called(ctx, inviteeURI)
	if b, ok := args.Get(0).(*entity.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLeadActivityRepository struct {
	mock.Mock
}

func (m *MockLeadActivityRepository) Create(ctx context.Context, a *entity.LeadActivity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type MockMergeLogRepository struct {
	mock.Mock
}

func (m *MockMergeLogRepository) Create(ctx context.Context, l *entity.FamilyMergeLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) HasActive(ctx context.Context, familyID string) (bool, error) {
	args := m.Called(ctx, familyID)
	return args.Bool(0), args.Error(1)
}

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, s *entity.Student) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStudentRepository) FindByFamilyAndName(ctx context.Context, familyID, name string) (*entity.Student, error) {
	args := m.Called(ctx, familyID, name)
	if s, ok := args.Get(0).(*entity.Student); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, s *entity.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByPublicID(ctx context.Context, publicID string) (*entity.Invoice, error) {
	args := m.Called(ctx, publicID)
	if inv, ok := args.Get(0).(*entity.Invoice); ok {
		return inv, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInvoiceRepository) AttachCheckoutSession(ctx context.Context, invoiceID, sessionID string) error {
	args := m.Called(ctx, invoiceID, sessionID)
	return args.Error(0)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) UpdateStatus(ctx context.Context, messageSID, status, errorCode, errorMessage string) (bool, error) {
	args := m.Called(ctx, messageSID, status, errorCode, errorMessage)
	return args.Bool(0), args.Error(1)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, input CheckoutSessionInput) (*CheckoutSession, error) {
	args := m.Called(ctx, input)
	if s, ok := args.Get(0).(*CheckoutSession); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockNotificationProducer struct {
	mock.Mock
}

func (m *MockNotificationProducer) PublishLeadNotification(ctx context.Context, payload LeadNotification) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
