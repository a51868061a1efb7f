package webhook

import (
	"strings"
	"time"
)

// Normalized is the flat record extracted from a scheduling webhook
// body. Downstream code reads these fields and never re-probes the raw
// payload. Empty string means "not present" everywhere.
type Normalized struct {
	Event         string
	InviteeName   string
	InviteeEmail  string
	InviteeURI    string
	InviteePhone  string
	EventURI      string
	EventTypeName string
	EventType     string // 15min_call | hub_dropoff | other
	StartTime     *time.Time
	CancelReason  string

	// Semantic fields parsed out of free-text question/answer pairs.
	StudentName   string
	AgeGroup      string
	PaymentMethod string
}

// Normalize extracts what we need from the decoded webhook body. The
// payload shape is not contractually fixed (two variants exist in the
// wild: invitee fields nested under payload.invitee, or flattened onto
// payload itself), so every field is probed in multiple locations and
// the first non-empty hit wins. Malformed or wrong-typed input yields
// empty fields, never a panic.
func Normalize(body map[string]interface{}) Normalized {
	n := Normalized{
		Event: getString(body, "event"),
	}

	payload := getMap(body, "payload")
	if payload == nil {
		return n
	}
	invitee := getMap(payload, "invitee")
	event := getMap(payload, "scheduled_event")
	if event == nil {
		event = getMap(payload, "event")
	}

	n.InviteeName = firstNonEmpty(
		getString(invitee, "name"),
		getString(payload, "name"),
	)
	n.InviteeEmail = strings.ToLower(strings.TrimSpace(firstNonEmpty(
		getString(invitee, "email"),
		getString(payload, "email"),
	)))
	n.InviteeURI = firstNonEmpty(
		getString(invitee, "uri"),
		getString(payload, "uri"),
	)
	n.EventURI = firstNonEmpty(
		getString(event, "uri"),
		getString(payload, "event_uri"),
	)
	n.EventTypeName = firstNonEmpty(
		getString(event, "name"),
		getString(getMap(payload, "event_type"), "name"),
	)
	n.EventType = ClassifyEventType(n.EventTypeName)
	n.CancelReason = firstNonEmpty(
		getString(getMap(invitee, "cancellation"), "reason"),
		getString(getMap(payload, "cancellation"), "reason"),
	)

	if raw := firstNonEmpty(getString(event, "start_time"), getString(payload, "start_time")); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			n.StartTime = &t
		}
	}

	qa := parseQuestions(firstNonNil(
		getSlice(payload, "questions_and_answers"),
		getSlice(invitee, "questions_and_answers"),
	))
	n.StudentName = qa.student
	n.AgeGroup = qa.ageGroup
	n.PaymentMethod = qa.payment

	// Phone priority: explicit call-location number, then the SMS
	// reminder number, then whatever a free-text form answer gave us.
	n.InviteePhone = firstNonEmpty(
		locationPhone(event),
		getString(invitee, "text_reminder_number"),
		getString(payload, "text_reminder_number"),
		qa.phone,
	)

	return n
}

// ClassifyEventType buckets a booking by the human-readable event-type
// name. Known fragility: renaming the event type in the scheduling tool
// silently breaks classification.
func ClassifyEventType(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "drop") || strings.Contains(lower, "hub"):
		return "hub_dropoff"
	case strings.Contains(lower, "15") || strings.Contains(lower, "call"):
		return "15min_call"
	default:
		return "other"
	}
}

// locationPhone pulls the dial-out number when the meeting location is
// a phone call. Only outbound/custom phone locations carry one.
func locationPhone(event map[string]interface{}) string {
	loc := getMap(event, "location")
	if loc == nil {
		return ""
	}
	typ := strings.ToLower(getString(loc, "type"))
	if !strings.Contains(typ, "phone") && !strings.Contains(typ, "call") {
		return ""
	}
	return getString(loc, "location")
}

type answers struct {
	student  string
	ageGroup string
	payment  string
	phone    string
}

// parseQuestions maps free-text Q&A pairs onto semantic fields by
// case-insensitive substring match on the question text.
func parseQuestions(items []interface{}) answers {
	var out answers
	for _, item := range items {
		qa, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		question := strings.ToLower(getString(qa, "question"))
		answer := strings.TrimSpace(getString(qa, "answer"))
		if answer == "" {
			continue
		}
		switch {
		case strings.Contains(question, "student") || strings.Contains(question, "child"):
			if out.student == "" {
				out.student = answer
			}
		case strings.Contains(question, "age") || strings.Contains(question, "grade"):
			if out.ageGroup == "" {
				out.ageGroup = answer
			}
		case strings.Contains(question, "payment"):
			if out.payment == "" {
				out.payment = answer
			}
		case strings.Contains(question, "phone") || strings.Contains(question, "number"):
			if out.phone == "" {
				out.phone = answer
			}
		}
	}
	return out
}

func getMap(m map[string]interface{}, key string) map[string]interface{} {
	if m == nil {
		return nil
	}
	v, _ := m[key].(map[string]interface{})
	return v
}

func getSlice(m map[string]interface{}, key string) []interface{} {
	if m == nil {
		return nil
	}
	v, _ := m[key].([]interface{})
	return v
}

func getString(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	v, _ := m[key].(string)
	return strings.TrimSpace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonNil(slices ...[]interface{}) []interface{} {
	for _, s := range slices {
		if s != nil {
			return s
		}
	}
	return nil
}
