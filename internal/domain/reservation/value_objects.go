package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidStay = errors.New("check-out date must be after check-in date")
)

// StayPeriod is a half-open [checkIn, checkOut) date interval. Bounds are
// normalized to midnight UTC so that equality comparisons ignore clock time.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	in := truncateToDate(checkIn)
	out := truncateToDate(checkOut)
	if !out.After(in) {
		return StayPeriod{}, ErrInvalidStay
	}
	return StayPeriod{checkIn: in, checkOut: out}, nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (p StayPeriod) CheckIn() time.Time  { return p.checkIn }
func (p StayPeriod) CheckOut() time.Time { return p.checkOut }

func (p StayPeriod) Nights() int {
	return int(p.checkOut.Sub(p.checkIn).Hours() / 24)
}

// Overlaps applies the half-open interval rule: a stay ending on day D does
// not conflict with a stay starting on day D (back-to-back bookings).
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && p.checkOut.After(other.checkIn)
}

func (p StayPeriod) String() string {
	return fmt.Sprintf("[%s,%s)", p.checkIn.Format("2006-01-02"), p.checkOut.Format("2006-01-02"))
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}
