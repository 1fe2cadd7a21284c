package domain

import "time"

// AttendanceStatus values used by the backend.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// AttendanceRecord is one student's attendance for one course session.
type AttendanceRecord struct {
	ID          int64            `json:"id,omitempty"`
	CourseID    int64            `json:"courseId"`
	StudentID   int64            `json:"studentId"`
	StudentName string           `json:"studentName,omitempty"`
	Date        time.Time        `json:"date"`
	Status      AttendanceStatus `json:"status"`
	Note        string           `json:"note,omitempty"`
}

// AttendanceSummary counts records per status.
type AttendanceSummary struct {
	Total   int     `json:"total"`
	Present int     `json:"present"`
	Absent  int     `json:"absent"`
	Late    int     `json:"late"`
	Excused int     `json:"excused"`
	Rate    float64 `json:"rate"` // (present+late)/total, 0 when empty
}

// SummarizeAttendance tallies records. Unknown statuses count toward Total only.
func SummarizeAttendance(records []AttendanceRecord) AttendanceSummary {
	var s AttendanceSummary
	for _, r := range records {
		s.Total++
		switch r.Status {
		case AttendancePresent:
			s.Present++
		case AttendanceAbsent:
			s.Absent++
		case AttendanceLate:
			s.Late++
		case AttendanceExcused:
			s.Excused++
		}
	}
	if s.Total > 0 {
		s.Rate = float64(s.Present+s.Late) / float64(s.Total)
	}
	return s
}
