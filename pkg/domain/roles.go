package domain

import "slices"

// Well-known backend role IDs.
const (
	RoleAdmin       int64 = 1
	RoleTeacher     int64 = 2
	RoleStudent     int64 = 3
	RoleParent      int64 = 4
	RoleCoordinator int64 = 5
)

// RoleSet lists which role IDs count as teachers and as students.
type RoleSet struct {
	Teacher []int64 `json:"teacher" mapstructure:"teacher"`
	Student []int64 `json:"student" mapstructure:"student"`
}

// DefaultRoles treats coordinators as teachers.
var DefaultRoles = RoleSet{
	Teacher: []int64{RoleTeacher, RoleCoordinator},
	Student: []int64{RoleStudent},
}

// FilterByRole returns the users whose RoleID is in roleIDs, in input order.
func FilterByRole(users []User, roleIDs []int64) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if slices.Contains(roleIDs, u.RoleID) {
			out = append(out, u)
		}
	}
	return out
}

// Teachers filters users down to the teacher roles of rs.
func (rs RoleSet) Teachers(users []User) []User {
	return FilterByRole(users, rs.Teacher)
}

// Students filters users down to the student roles of rs.
func (rs RoleSet) Students(users []User) []User {
	return FilterByRole(users, rs.Student)
}
