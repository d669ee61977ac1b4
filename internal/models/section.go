package models

// Section is a student cohort that attends lectures together.
type Section struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	StudentCount int    `db:"student_count" json:"studentCount"`
}
