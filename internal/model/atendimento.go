package model

import (
	"time"

	"github.com/google/uuid"
)

// ChecklistItem is a single required document on a case's checklist.
// Checked means the client already delivered it.
type ChecklistItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Atendimento is one saved case: the client, the benefit they are
// applying for, and the document checklist for it.
type Atendimento struct {
	ID             string          `json:"id"`
	ClientName     string          `json:"clientName"`
	ClientCPF      string          `json:"clientCPF"`
	BenefitID      string          `json:"benefitId"`
	BenefitName    string          `json:"benefitName"`
	ChecklistItems []ChecklistItem `json:"checklistItems"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// NewCaseID returns a fresh case id. Random, not time-based, so rapid
// successive creates can never collide.
func NewCaseID() string {
	return "atendimento-" + uuid.NewString()
}

// NewItemID returns a fresh checklist item id. Unique within a case is
// all that is required; these are unique globally anyway.
func NewItemID() string {
	return "item-" + uuid.NewString()
}

// Stats counts delivered and pending items.
func Stats(items []ChecklistItem) (delivered, pending int) {
	for _, it := range items {
		if it.Checked {
			delivered++
		} else {
			pending++
		}
	}
	return
}
