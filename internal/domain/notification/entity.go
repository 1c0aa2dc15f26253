package notification

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidChannel    = errors.New("invalid notification channel")
	ErrInvalidKind       = errors.New("invalid notification kind")
	ErrInvalidTransition = errors.New("notification status transition not allowed")
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsValid() bool {
	return c == ChannelEmail || c == ChannelSMS
}

type Kind string

const (
	KindReservationConfirmed Kind = "reservation_confirmed"
	KindReservationCancelled Kind = "reservation_cancelled"
	KindCheckInReminder      Kind = "check_in_reminder"
	KindBillIssued           Kind = "bill_issued"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindReservationConfirmed, KindReservationCancelled, KindCheckInReminder, KindBillIssued:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusQueued Status = "queued"
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

const MaxAttempts = 3

// Job is an outbox row. It is written in the same transaction as the state
// change that triggered it and later picked up by the dispatcher worker.
type Job struct {
	id          uuid.UUID
	kind        Kind
	channel     Channel
	recipient   string
	payload     []byte
	status      Status
	attempts    int
	lastError   *string
	scheduledAt time.Time
	sentAt      *time.Time
	createdAt   time.Time
}

func NewJob(kind Kind, channel Channel, recipient string, payload []byte, now time.Time) (*Job, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if !channel.IsValid() {
		return nil, ErrInvalidChannel
	}

	return &Job{
		id:          uuid.New(),
		kind:        kind,
		channel:     channel,
		recipient:   recipient,
		payload:     payload,
		status:      StatusQueued,
		scheduledAt: now,
		createdAt:   now,
	}, nil
}

func ReconstructJob(
	id uuid.UUID,
	kind Kind,
	channel Channel,
	recipient string,
	payload []byte,
	status Status,
	attempts int,
	lastError *string,
	scheduledAt time.Time,
	sentAt *time.Time,
	createdAt time.Time,
) *Job {
	return &Job{
		id:          id,
		kind:        kind,
		channel:     channel,
		recipient:   recipient,
		payload:     payload,
		status:      status,
		attempts:    attempts,
		lastError:   lastError,
		scheduledAt: scheduledAt,
		sentAt:      sentAt,
		createdAt:   createdAt,
	}
}

func (j *Job) MarkSent(now time.Time) error {
	if j.status != StatusQueued {
		return ErrInvalidTransition
	}
	j.status = StatusSent
	j.attempts++
	t := now
	j.sentAt = &t
	return nil
}

// MarkFailed records a delivery failure. The job stays queued with a backoff
// until MaxAttempts is exhausted, then moves to failed permanently.
func (j *Job) MarkFailed(cause string, now time.Time) error {
	if j.status != StatusQueued {
		return ErrInvalidTransition
	}
	j.attempts++
	j.lastError = &cause
	if j.attempts >= MaxAttempts {
		j.status = StatusFailed
		return nil
	}
	backoff := time.Duration(j.attempts) * time.Minute
	j.scheduledAt = now.Add(backoff)
	return nil
}

func (j *Job) ID() uuid.UUID          { return j.id }
func (j *Job) Kind() Kind             { return j.kind }
func (j *Job) Channel() Channel       { return j.channel }
func (j *Job) Recipient() string      { return j.recipient }
func (j *Job) Payload() []byte        { return j.payload }
func (j *Job) Status() Status         { return j.status }
func (j *Job) Attempts() int          { return j.attempts }
func (j *Job) LastError() *string     { return j.lastError }
func (j *Job) ScheduledAt() time.Time { return j.scheduledAt }
func (j *Job) SentAt() *time.Time     { return j.sentAt }
func (j *Job) CreatedAt() time.Time   { return j.createdAt }
