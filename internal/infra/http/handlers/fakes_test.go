package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tutorhub/booking-service/internal/entity"
	"github.com/tutorhub/booking-service/internal/usecase"
)

// In-memory fakes so handler tests can drive the real use cases
// end-to-end without a database.

type fakeFamilyRepo struct {
	families []*entity.Family
	failWith error
}

func (r *fakeFamilyRepo) Create(ctx context.Context, f *entity.Family) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.families = append(r.families, f)
	return nil
}

func (r *fakeFamilyRepo) FindByEmail(ctx context.Context, email string) (*entity.Family, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, f := range r.families {
		if strings.EqualFold(f.PrimaryEmail, email) || strings.EqualFold(f.SecondaryEmail, email) {
			return f, nil
		}
	}
	return nil, entity.ErrFamilyNotFound
}

func (r *fakeFamilyRepo) FindByDisplayName(ctx context.Context, displayName string) (*entity.Family, error) {
	for _, f := range r.families {
		if strings.EqualFold(f.DisplayName, displayName) && (f.Status == entity.FamilyStatusActive || f.Status == entity.FamilyStatusLead) {
			return f, nil
		}
	}
	return nil, entity.ErrFamilyNotFound
}

func (r *fakeFamilyRepo) UpdateCalendlyFields(ctx context.Context, familyID, calendlyURI string, lastBookingAt time.Time) error {
	return nil
}

func (r *fakeFamilyRepo) PromoteToLead(ctx context.Context, familyID, leadType, calendlyURI string, lastBookingAt time.Time) error {
	return nil
}

func (r *fakeFamilyRepo) SetSecondaryEmailIfEmpty(ctx context.Context, familyID, email string) error {
	return nil
}

type fakeBookingRepo struct {
	bookings map[string]*entity.Booking
	failWith error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*entity.Booking)}
}

func (r *fakeBookingRepo) Upsert(ctx context.Context, b *entity.Booking) error {
	if r.failWith != nil && b.Status != entity.BookingStatusError {
		return r.failWith
	}
	// Conflicting invitee URIs keep the original row id, mirroring the
	// ON CONFLICT ... RETURNING id query.
	if existing, ok := r.bookings[b.InviteeURI]; ok {
		b.ID = existing.ID
	}
	r.bookings[b.InviteeURI] = b
	return nil
}

func (r *fakeBookingRepo) MarkCanceled(ctx context.Context, inviteeURI, reason string, canceledAt time.Time) (bool, error) {
	b, ok := r.bookings[inviteeURI]
	if !ok {
		return false, nil
	}
	b.Status = entity.BookingStatusCanceled
	b.CanceledAt = &canceledAt
	b.CancelReason = reason
	return true, nil
}

func (r *fakeBookingRepo) FindByInviteeURI(ctx context.Context, inviteeURI string) (*entity.Booking, error) {
	if b, ok := r.bookings[inviteeURI]; ok {
		return b, nil
	}
	return nil, entity.ErrBookingNotFound
}

// diagnostics returns the forensic rows written via Upsert.
func (r *fakeBookingRepo) diagnostics() []*entity.Booking {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.Status == entity.BookingStatusError {
			out = append(out, b)
		}
	}
	return out
}

type fakeLeadActivityRepo struct {
	activities []*entity.LeadActivity
}

func (r *fakeLeadActivityRepo) Create(ctx context.Context, a *entity.LeadActivity) error {
	r.activities = append(r.activities, a)
	return nil
}

type fakeMergeLogRepo struct {
	logs []*entity.FamilyMergeLog
}

func (r *fakeMergeLogRepo) Create(ctx context.Context, m *entity.FamilyMergeLog) error {
	r.logs = append(r.logs, m)
	return nil
}

type fakeEnrollmentRepo struct {
	activeFamilies map[string]bool
}

func (r *fakeEnrollmentRepo) HasActive(ctx context.Context, familyID string) (bool, error) {
	return r.activeFamilies[familyID], nil
}

type fakeStudentRepo struct {
	students []*entity.Student
}

func (r *fakeStudentRepo) Create(ctx context.Context, s *entity.Student) error {
	r.students = append(r.students, s)
	return nil
}

func (r *fakeStudentRepo) FindByFamilyAndName(ctx context.Context, familyID, name string) (*entity.Student, error) {
	for _, s := range r.students {
		if s.FamilyID == familyID && strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	sessions []*entity.Session
}

func (r *fakeSessionRepo) Create(ctx context.Context, s *entity.Session) error {
	r.sessions = append(r.sessions, s)
	return nil
}

type fakeMessageRepo struct {
	updates  map[string]string
	failWith error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{updates: make(map[string]string)}
}

func (r *fakeMessageRepo) UpdateStatus(ctx context.Context, messageSID, status, errorCode, errorMessage string) (bool, error) {
	if r.failWith != nil {
		return false, r.failWith
	}
	r.updates[messageSID] = status
	return true, nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	sessions map[string]string
}

func newFakeInvoiceRepo(invoices ...*entity.Invoice) *fakeInvoiceRepo {
	r := &fakeInvoiceRepo{invoices: make(map[string]*entity.Invoice), sessions: make(map[string]string)}
	for _, inv := range invoices {
		r.invoices[inv.PublicID] = inv
	}
	return r
}

func (r *fakeInvoiceRepo) FindByPublicID(ctx context.Context, publicID string) (*entity.Invoice, error) {
	if inv, ok := r.invoices[publicID]; ok {
		return inv, nil
	}
	return nil, entity.ErrInvoiceNotFound
}

func (r *fakeInvoiceRepo) AttachCheckoutSession(ctx context.Context, invoiceID, sessionID string) error {
	r.sessions[invoiceID] = sessionID
	return nil
}

type fakeGateway struct {
	session  *usecase.CheckoutSession
	failWith error
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, input usecase.CheckoutSessionInput) (*usecase.CheckoutSession, error) {
	if g.failWith != nil {
		return nil, g.failWith
	}
	return g.session, nil
}

var errStoreDown = errors.New("store unavailable")
