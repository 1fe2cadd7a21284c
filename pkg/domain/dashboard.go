package domain

// DashboardStats is the school overview combined from several list calls.
type DashboardStats struct {
	Users           int     `json:"users"`
	Teachers        int     `json:"teachers"`
	Students        int     `json:"students"`
	Courses         int     `json:"courses"`
	Classrooms      int     `json:"classrooms"`
	PendingPayments int     `json:"pendingPayments"`
	Revenue         float64 `json:"revenue"` // paid amounts in the current month
}

// SearchResults groups global search hits by entity.
type SearchResults struct {
	Users      []User      `json:"users"`
	Courses    []Course    `json:"courses"`
	Classrooms []Classroom `json:"classrooms"`
}

// Empty reports whether nothing matched.
func (r SearchResults) Empty() bool {
	return len(r.Users) == 0 && len(r.Courses) == 0 && len(r.Classrooms) == 0
}

// StudentReport zips a student's grades with the server-side average.
type StudentReport struct {
	StudentID int64    `json:"studentId"`
	CourseID  int64    `json:"courseId"`
	Grades    []Grade  `json:"grades"`
	Average   *float64 `json:"average,omitempty"`
}
