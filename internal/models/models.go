package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterviewStatus is the call/screening lifecycle of an interview.
// Transitions only move forward: created -> calling -> completed, and
// independently calling/completed -> notified once all answers resolve.
type InterviewStatus string

const (
	StatusCreated   InterviewStatus = "created"
	StatusCalling   InterviewStatus = "calling"
	StatusCompleted InterviewStatus = "completed"
	StatusNotified  InterviewStatus = "notified"
)

// Candidate is the person being screened.
type Candidate struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	PhoneE164 string    `gorm:"not null;index" json:"phone"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Interview is one scripted phone session with a candidate.
type Interview struct {
	ID             string          `gorm:"primaryKey" json:"id"`
	CandidateID    string          `gorm:"not null;index" json:"candidate_id"`
	Status         InterviewStatus `gorm:"not null;default:created" json:"status"`
	JDText         string          `gorm:"type:text" json:"-"`
	StartedAt      *time.Time      `json:"started_at,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	OverallScore   *float64        `json:"overall_score,omitempty"`
	Recommendation string          `json:"recommendation,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// Question is one scripted question. Indices for an interview form a
// contiguous run 1..N.
type Question struct {
	ID          string `gorm:"primaryKey" json:"id"`
	InterviewID string `gorm:"not null;uniqueIndex:uidx_questions_interview_idx" json:"interview_id"`
	Idx         int    `gorm:"not null;uniqueIndex:uidx_questions_interview_idx" json:"index"`
	Text        string `gorm:"type:text;not null" json:"text"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// Answer is the canonical recording/transcript/score record for one
// (interview, question index) pair. Pending stays true until the processing
// pipeline resolves it; a fresh recording notification re-opens it.
type Answer struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	InterviewID  string    `gorm:"not null;uniqueIndex:uidx_answers_interview_idx" json:"interview_id"`
	QuestionID   string    `gorm:"not null" json:"question_id"`
	Idx          int       `gorm:"not null;uniqueIndex:uidx_answers_interview_idx" json:"index"`
	Pending      bool      `gorm:"not null;default:true;index" json:"pending"`
	RecordingURL string    `json:"recording_url,omitempty"`
	Transcript   *string   `gorm:"type:text" json:"transcript,omitempty"`
	Score        *float64  `json:"score,omitempty"`
	Attempts     int       `gorm:"not null;default:0" json:"attempts"`
	LastError    string    `json:"last_error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
