package models

import (
	"fmt"
	"time"
)

// SavedJob is a user's bookmark of one listing. The same struct is written to
// Firestore and to Postgres, hence the three tag sets.
type SavedJob struct {
	// Deterministic "<uid>_<jobId>" so a second save of the same listing collides.
	DocID string `gorm:"primaryKey;size:200" firestore:"-" json:"docId"`

	UserID string `gorm:"not null;uniqueIndex:idx_saved_jobs_user_job,priority:1" firestore:"userId" json:"userId"`
	JobID  int64  `gorm:"not null;uniqueIndex:idx_saved_jobs_user_job,priority:2" firestore:"jobId" json:"jobId"`

	EmployerID     int64    `firestore:"employerId" json:"employerId"`
	EmployerName   string   `firestore:"employerName" json:"employerName"`
	JobTitle       string   `firestore:"jobTitle" json:"jobTitle"`
	LocationName   string   `firestore:"locationName" json:"locationName"`
	MinimumSalary  *float64 `firestore:"minimumSalary,omitempty" json:"minimumSalary,omitempty"`
	MaximumSalary  *float64 `firestore:"maximumSalary,omitempty" json:"maximumSalary,omitempty"`
	Currency       *string  `firestore:"currency,omitempty" json:"currency,omitempty"`
	ExpirationDate string   `firestore:"expirationDate" json:"expirationDate"`
	Date           string   `firestore:"date" json:"date"`
	JobDescription string   `gorm:"type:text" firestore:"jobDescription" json:"jobDescription"`
	JobURL         string   `firestore:"jobUrl" json:"jobUrl"`

	SavedAt time.Time `gorm:"autoCreateTime;index" firestore:"savedAt,serverTimestamp" json:"savedAt"`
}

func (SavedJob) TableName() string {
	return "saved_jobs"
}

// SavedJobID builds the storage key for a (user, listing) pair.
func SavedJobID(userID string, jobID int64) string {
	return fmt.Sprintf("%s_%d", userID, jobID)
}

// UserAccount mirrors the identity provider's user record. Nothing stores it locally.
type UserAccount struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	PhotoURL      string `json:"photoURL"`
	EmailVerified bool   `json:"emailVerified"`
	PhoneNumber   string `json:"phoneNumber"`
	CreatedAt     string `json:"createdAt"`
	LastLoginAt   string `json:"lastLoginAt"`
}
