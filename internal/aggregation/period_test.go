package aggregation

import (
	"testing"
	"time"
)

func TestMonthlyBucketing(t *testing.T) {
	// Any day of the month buckets to the same key and canonical instant
	first := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2024, time.August, 14, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC)

	keyFirst, startFirst := bucket(ModeMonthly, first)
	keyMid, startMid := bucket(ModeMonthly, mid)
	keyLast, _ := bucket(ModeMonthly, last)

	if keyFirst != keyMid || keyMid != keyLast {
		t.Errorf("days of the same month bucket to different keys: %v %v %v", keyFirst, keyMid, keyLast)
	}
	if !startFirst.Equal(startMid) {
		t.Errorf("canonical instants differ: %v vs %v", startFirst, startMid)
	}
	if !startMid.Equal(time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected first of month at midnight, got %v", startMid)
	}
}

func TestMonthlyBucketingPreservesCalendar(t *testing.T) {
	// Bucketing must not introduce a timezone conversion: the stored civil
	// date is authoritative even when it is not UTC.
	loc := time.FixedZone("UTC-3", -3*60*60)
	stored := time.Date(2024, time.January, 1, 0, 0, 0, 0, loc)

	key, start := bucket(ModeMonthly, stored)
	if key.Year != 2024 || key.Month != time.January {
		t.Errorf("expected 2024-01 key, got %v", key)
	}
	if start.Location() != loc {
		t.Errorf("canonical instant changed location: %v", start.Location())
	}
}

func TestDateRangeBucketing(t *testing.T) {
	a := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)

	keyA, startA := bucket(ModeDateRange, a)
	keyB, _ := bucket(ModeDateRange, b)

	if keyA == keyB {
		t.Error("distinct days bucketed to the same key")
	}
	if !startA.Equal(a) {
		t.Errorf("expected canonical instant %v, got %v", a, startA)
	}
}

func TestModeKeysDoNotCollide(t *testing.T) {
	// A month bucket and the bucket of its first day are distinct keys
	d := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	monthKey, _ := bucket(ModeMonthly, d)
	dayKey, _ := bucket(ModeDateRange, d)

	if monthKey == dayKey {
		t.Error("monthly and date-range keys collide for the first of the month")
	}
}

func TestPeriodKeyOrdering(t *testing.T) {
	earlier := PeriodKey{Year: 2023, Month: time.December}
	later := PeriodKey{Year: 2024, Month: time.January}

	if !earlier.before(later) {
		t.Error("2023-12 should order before 2024-01")
	}
	if later.before(earlier) {
		t.Error("2024-01 should not order before 2023-12")
	}

	dayA := PeriodKey{Year: 2024, Month: time.March, Day: 1}
	dayB := PeriodKey{Year: 2024, Month: time.March, Day: 2}
	if !dayA.before(dayB) {
		t.Error("2024-03-01 should order before 2024-03-02")
	}
}
