package models

import "time"

const (
	JobTypeFullTime = "full-time"
	JobTypePartTime = "part-time"
	JobTypeContract = "contract"
	JobTypeIntern   = "internship"
)

type Job struct {
	ID           string      `json:"_id"`
	Title        string      `json:"title"`
	Studio       StudioRef   `json:"studioId"`
	Location     string      `json:"location,omitempty"`
	Type         string      `json:"type"`
	Salary       string      `json:"salary,omitempty"`
	Requirements FlexStrings `json:"requirements,omitempty"`
	Description  string      `json:"description"`
	CreatedAt    time.Time   `json:"createdAt"`
}

type JobDraft struct {
	Title        string   `json:"title"`
	StudioID     string   `json:"studioId"`
	Location     string   `json:"location,omitempty"`
	Type         string   `json:"type"`
	Salary       string   `json:"salary,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	Description  string   `json:"description"`
}

// JobApplication is a one-way submission, the client tracks no further state.
type JobApplication struct {
	JobID       string `json:"jobId"`
	CoverLetter string `json:"coverLetter"`
	Portfolio   string `json:"portfolio,omitempty"`
	ResumeURL   string `json:"resumeUrl,omitempty"`
}
