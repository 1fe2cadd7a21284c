package domain

import "time"

// Course is a subject taught to a group, with its weekly schedule encoded as
// a schedule string (see ParseSchedule).
type Course struct {
	ID          int64     `json:"id"`
	SchoolID    int64     `json:"schoolId"`
	Name        string    `json:"name"`
	Code        string    `json:"code,omitempty"`
	Grade       string    `json:"grade"`
	Section     string    `json:"section,omitempty"`
	TeacherID   int64     `json:"teacherId,omitempty"`
	TeacherName string    `json:"teacherName,omitempty"`
	ClassroomID int64     `json:"classroomId,omitempty"`
	Schedule    string    `json:"schedule,omitempty"`
	Year        int       `json:"year,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Classroom is a physical room.
type Classroom struct {
	ID       int64  `json:"id"`
	SchoolID int64  `json:"schoolId"`
	Name     string `json:"name"`
	Building string `json:"building,omitempty"`
	Capacity int    `json:"capacity"`
	Active   bool   `json:"active"`
}

// GroupCoursesByGrade groups courses by grade level, keeping input order
// within each group.
func GroupCoursesByGrade(courses []Course) map[string][]Course {
	out := make(map[string][]Course)
	for _, c := range courses {
		out[c.Grade] = append(out[c.Grade], c)
	}
	return out
}
