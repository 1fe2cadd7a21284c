package domain

import (
	"math"
	"testing"
)

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name   string
		grades []Grade
		want   float64
		ok     bool
	}{
		{"empty", nil, 0, false},
		{"unweighted", []Grade{{Score: 8}, {Score: 6}}, 7, true},
		{"weighted", []Grade{{Score: 10, Weight: 3}, {Score: 6, Weight: 1}}, 9, true},
		{"non-positive weight counts once", []Grade{{Score: 4, Weight: -2}, {Score: 8}}, 6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AverageScore(tt.grades)
			if ok != tt.ok || math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AverageScore() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFormatAverage(t *testing.T) {
	avg := 7.26
	if got := FormatAverage(&avg); got != "7.3" {
		t.Errorf("FormatAverage(7.26) = %q, want 7.3", got)
	}
	if got := FormatAverage(nil); got != "--" {
		t.Errorf("FormatAverage(nil) = %q, want --", got)
	}
}

func TestSummarizeAttendance(t *testing.T) {
	s := SummarizeAttendance([]AttendanceRecord{
		{Status: AttendancePresent},
		{Status: AttendancePresent},
		{Status: AttendanceLate},
		{Status: AttendanceAbsent},
		{Status: AttendanceExcused},
		{Status: "unknown"},
	})
	want := AttendanceSummary{Total: 6, Present: 2, Absent: 1, Late: 1, Excused: 1, Rate: 0.5}
	if s != want {
		t.Errorf("SummarizeAttendance() = %+v, want %+v", s, want)
	}
	if empty := SummarizeAttendance(nil); empty.Rate != 0 || empty.Total != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}

func TestPageTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 25, 4},
		{5, 0, 1},
	}
	for _, tt := range tests {
		p := Page[Payment]{TotalCount: tt.total, PageSize: tt.size}
		if got := p.TotalPages(); got != tt.want {
			t.Errorf("TotalPages(total=%d, size=%d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestPaymentHelpers(t *testing.T) {
	payments := []Payment{
		{StudentID: 1, Amount: 100, Status: PaymentPaid},
		{StudentID: 2, Amount: 40, Status: PaymentPending},
		{StudentID: 1, Amount: 60, Status: PaymentPaid},
		{StudentID: 1, Amount: 10, Status: PaymentCancelled},
	}
	if got := SumPayments(payments, PaymentPaid); got != 160 {
		t.Errorf("SumPayments(paid) = %v, want 160", got)
	}
	by := GroupPaymentsByStudent(payments)
	if len(by[1]) != 3 || by[1][1].Amount != 60 {
		t.Errorf("student 1 payments = %+v", by[1])
	}
	if len(by[2]) != 1 {
		t.Errorf("student 2 payments = %+v", by[2])
	}
}

func TestGroupCoursesByGrade(t *testing.T) {
	by := GroupCoursesByGrade([]Course{
		{ID: 1, Grade: "5"}, {ID: 2, Grade: "6"}, {ID: 3, Grade: "5"},
	})
	if len(by["5"]) != 2 || by["5"][1].ID != 3 {
		t.Errorf(`grade "5" = %+v`, by["5"])
	}
}
