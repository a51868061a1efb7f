package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/tutorhub/booking-service/internal/entity"
	"github.com/tutorhub/booking-service/internal/webhook"
)

// Webhook event types we dispatch on. Anything else is ignored.
const (
	EventInviteeCreated  = "invitee.created"
	EventInviteeCanceled = "invitee.canceled"
)

const sourceCalendly = "calendly"

type IngestBookingInput struct {
	Normalized webhook.Normalized
	RawPayload []byte
}

type IngestBookingOutput struct {
	Action    string `json:"action"` // created | canceled | ignored
	EventType string `json:"eventType,omitempty"`
	FamilyID  string `json:"familyId,omitempty"`
	BookingID string `json:"bookingId,omitempty"`
}

// IngestBookingUseCase is the state machine behind the scheduling
// webhook. One invocation per delivery, strictly sequential store
// calls, no retries: redelivery is the sender's job and idempotency is
// the store's (unique index on invitee_uri).
type IngestBookingUseCase struct {
	Resolver         *ContactResolver
	FamilyRepo       entity.FamilyRepositoryInterface
	BookingRepo      entity.BookingRepositoryInterface
	LeadActivityRepo entity.LeadActivityRepositoryInterface
	StudentRepo      entity.StudentRepositoryInterface
	SessionRepo      entity.SessionRepositoryInterface
	Producer         NotificationProducer
}

func NewIngestBookingUseCase(
	resolver *ContactResolver,
	familyRepo entity.FamilyRepositoryInterface,
	bookingRepo entity.BookingRepositoryInterface,
	leadActivityRepo entity.LeadActivityRepositoryInterface,
	studentRepo entity.StudentRepositoryInterface,
	sessionRepo entity.SessionRepositoryInterface,
	producer NotificationProducer,
) *IngestBookingUseCase {
	return &IngestBookingUseCase{
		Resolver:         resolver,
		FamilyRepo:       familyRepo,
		BookingRepo:      bookingRepo,
		LeadActivityRepo: leadActivityRepo,
		StudentRepo:      studentRepo,
		SessionRepo:      sessionRepo,
		Producer:         producer,
	}
}

func (uc *IngestBookingUseCase) Execute(ctx context.Context, input IngestBookingInput) (*IngestBookingOutput, error) {
	n := input.Normalized

	switch n.Event {
	case EventInviteeCanceled:
		return uc.cancel(ctx, n)
	case EventInviteeCreated:
		return uc.create(ctx, input)
	default:
		log.Printf("[ingest] ignoring unhandled event %q", n.Event)
		return &IngestBookingOutput{Action: "ignored"}, nil
	}
}

// cancel flips the booking matched by invitee URI. A miss is a silent
// no-op: the scheduling tool redelivers cancellations.
func (uc *IngestBookingUseCase) cancel(ctx context.Context, n webhook.Normalized) (*IngestBookingOutput, error) {
	matched, err := uc.BookingRepo.MarkCanceled(ctx, n.InviteeURI, n.CancelReason, time.Now())
	if err != nil {
		return nil, &TechnicalError{Code: "STORE_ERROR", Message: "cancel booking: " + err.Error()}
	}
	if !matched {
		log.Printf("[ingest] cancellation for unknown invitee %s, nothing to do", n.InviteeURI)
	}
	return &IngestBookingOutput{Action: "canceled", EventType: n.EventType}, nil
}

func (uc *IngestBookingUseCase) create(ctx context.Context, input IngestBookingInput) (*IngestBookingOutput, error) {
	n := input.Normalized

	if n.InviteeEmail == "" {
		// Loggable input error: persist the forensic row, then tell
		// the handler to answer 400.
		uc.WriteDiagnostic(ctx, input.RawPayload, "missing invitee email")
		return nil, &DomainError{Code: "MISSING_EMAIL", Message: "Missing invitee email"}
	}

	resolved, err := uc.Resolver.Resolve(ctx, n.InviteeEmail, n.InviteeName, sourceCalendly, n.InviteeURI)
	if err != nil {
		return nil, &TechnicalError{Code: "STORE_ERROR", Message: "resolve contact: " + err.Error()}
	}

	var familyID string
	switch n.EventType {
	case entity.EventTypeHubDropoff:
		familyID, err = uc.provisionDropoff(ctx, n, resolved)
	case entity.EventTypeCall:
		familyID, err = uc.applyLeadRules(ctx, n, resolved)
	default:
		// Unrecognized event types get a booking row and nothing else.
		if resolved != nil {
			familyID = resolved.Family.ID
		}
	}
	if err != nil {
		return nil, err
	}

	booking, err := uc.writeBooking(ctx, input, familyID)
	if err != nil {
		return nil, err
	}

	return &IngestBookingOutput{
		Action:    "created",
		EventType: n.EventType,
		FamilyID:  familyID,
		BookingID: booking.ID,
	}, nil
}

// applyLeadRules runs the 15min-call branch of the state machine:
//   - unknown contact: insert a fresh lead family
//   - known active lead: touch calendly fields only, append an activity
//   - known cold contact: re-engage, resetting pipeline fields
//   - active enrollment: leave the family and its pipeline alone
func (uc *IngestBookingUseCase) applyLeadRules(ctx context.Context, n webhook.Normalized, resolved *ResolvedContact) (string, error) {
	now := time.Now()

	if resolved == nil {
		family := entity.NewLeadFamily(entity.FormatDisplayName(n.InviteeName), n.InviteeEmail, n.InviteePhone, entity.LeadTypeCalendlyCall)
		family.CalendlyURI = n.InviteeURI
		family.LastBookingAt = &now
		if err := uc.FamilyRepo.Create(ctx, family); err != nil {
			return "", &TechnicalError{Code: "STORE_ERROR", Message: "create family: " + err.Error()}
		}
		uc.notify(ctx, LeadNotification{
			Kind:      NotificationNewLead,
			FamilyID:  family.ID,
			Name:      n.InviteeName,
			Email:     n.InviteeEmail,
			EventType: n.EventType,
		})
		return family.ID, nil
	}

	family := resolved.Family

	if resolved.HasActiveEnrollment {
		// Customer booking a call is not a lead event. Booking row
		// still gets written by the caller.
		log.Printf("[ingest] family %s has an active enrollment, skipping lead mutation", family.ID)
		return family.ID, nil
	}

	if resolved.IsExistingActiveLead {
		if err := uc.FamilyRepo.UpdateCalendlyFields(ctx, family.ID, n.InviteeURI, now); err != nil {
			return "", &TechnicalError{Code: "STORE_ERROR", Message: "update calendly fields: " + err.Error()}
		}
		activity := entity.NewLeadActivity(
			family.ID,
			"calendly_rebook",
			fmt.Sprintf("Booked %q while already in pipeline (lead_status=%s)", n.EventTypeName, family.LeadStatus),
			sourceCalendly,
			n.InviteeURI,
		)
		if err := uc.LeadActivityRepo.Create(ctx, activity); err != nil {
			return "", &TechnicalError{Code: "STORE_ERROR", Message: "append lead activity: " + err.Error()}
		}
		uc.notify(ctx, LeadNotification{
			Kind:      NotificationRepeatLead,
			FamilyID:  family.ID,
			Name:      n.InviteeName,
			Email:     n.InviteeEmail,
			EventType: n.EventType,
		})
		return family.ID, nil
	}

	// Cold contact re-engaging: overwrite pipeline fields.
	if err := uc.FamilyRepo.PromoteToLead(ctx, family.ID, entity.LeadTypeCalendlyCall, n.InviteeURI, now); err != nil {
		return "", &TechnicalError{Code: "STORE_ERROR", Message: "promote to lead: " + err.Error()}
	}
	uc.notify(ctx, LeadNotification{
		Kind:      NotificationNewLead,
		FamilyID:  family.ID,
		Name:      n.InviteeName,
		Email:     n.InviteeEmail,
		EventType: n.EventType,
	})
	return family.ID, nil
}

// provisionDropoff auto-creates family/student/session rows for hub
// drop-off bookings. Same idempotency posture as the call branch: the
// booking upsert on invitee URI is what absorbs redelivery.
func (uc *IngestBookingUseCase) provisionDropoff(ctx context.Context, n webhook.Normalized, resolved *ResolvedContact) (string, error) {
	var family *entity.Family
	if resolved != nil {
		family = resolved.Family
	} else {
		family = entity.NewLeadFamily(entity.FormatDisplayName(n.InviteeName), n.InviteeEmail, n.InviteePhone, "hub_dropoff")
		family.CalendlyURI = n.InviteeURI
		if err := uc.FamilyRepo.Create(ctx, family); err != nil {
			return "", &TechnicalError{Code: "STORE_ERROR", Message: "create family: " + err.Error()}
		}
	}

	var studentID string
	if n.StudentName != "" {
		student, err := uc.StudentRepo.FindByFamilyAndName(ctx, family.ID, n.StudentName)
		if err != nil {
			return "", &TechnicalError{Code: "STORE_ERROR", Message: "find student: " + err.Error()}
		}
		if student == nil {
			student = entity.NewStudent(family.ID, n.StudentName, n.AgeGroup)
			if err := uc.StudentRepo.Create(ctx, student); err != nil {
				return "", &TechnicalError{Code: "STORE_ERROR", Message: "create student: " + err.Error()}
			}
		}
		studentID = student.ID
	}

	if n.StartTime != nil {
		session := entity.NewSession(family.ID, studentID, *n.StartTime, sourceCalendly, n.InviteeURI)
		if err := uc.SessionRepo.Create(ctx, session); err != nil {
			return "", &TechnicalError{Code: "STORE_ERROR", Message: "create session: " + err.Error()}
		}
	}

	return family.ID, nil
}

func (uc *IngestBookingUseCase) writeBooking(ctx context.Context, input IngestBookingInput, familyID string) (*entity.Booking, error) {
	n := input.Normalized

	booking := entity.NewBooking(n.InviteeURI, n.EventURI, n.EventType)
	booking.FamilyID = familyID
	booking.ContactName = n.InviteeName
	booking.ContactEmail = n.InviteeEmail
	booking.ContactPhone = n.InviteePhone
	booking.StudentName = n.StudentName
	booking.AgeGroup = n.AgeGroup
	booking.ScheduledAt = n.StartTime
	booking.RawPayload = input.RawPayload

	if err := uc.BookingRepo.Upsert(ctx, booking); err != nil {
		return nil, &TechnicalError{Code: "STORE_ERROR", Message: "upsert booking: " + err.Error()}
	}
	return booking, nil
}

// WriteDiagnostic persists the forensic booking row for payloads that
// could not be processed. It must never fail the caller: this is the
// side-channel audit sink, not the response path.
func (uc *IngestBookingUseCase) WriteDiagnostic(ctx context.Context, rawPayload []byte, reason string) {
	diag := entity.NewDiagnosticBooking(rawPayload, reason)
	if err := uc.BookingRepo.Upsert(ctx, diag); err != nil {
		log.Printf("[ingest] CRITICAL: diagnostic booking write failed: %v (original problem: %s)", err, reason)
	}
}

// notify publishes a lead notification for the ops worker. Failures are
// logged and swallowed: the webhook response never depends on the queue.
func (uc *IngestBookingUseCase) notify(ctx context.Context, payload LeadNotification) {
	if uc.Producer == nil {
		return
	}
	if err := uc.Producer.PublishLeadNotification(ctx, payload); err != nil {
		log.Printf("[ingest] lead notification publish failed: %v", err)
	}
}
