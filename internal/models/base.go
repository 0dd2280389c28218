package models

import (
	"time"

	"rentdesk/internal/utils"
)

// IRecord is implemented by every stored entity. The store uses it to assign
// identifiers and maintain the created/updated timestamp pair.
type IRecord interface {
	GetID() utils.SixID
	GenIDIfEmpty()
	GenID()
	SetID(id utils.SixID)
	StampNew(now time.Time)
	Touch(now time.Time)
}

// Base carries the identifier and timestamp pair shared by all entities.
type Base struct {
	ID        utils.SixID `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (m *Base) GetID() utils.SixID {
	return m.ID
}

func (m *Base) GenIDIfEmpty() {
	if m.ID == (utils.SixID{}) {
		m.GenID()
	}
}

func (m *Base) GenID() {
	m.ID = utils.NewSixID()
}

func (m *Base) SetID(id utils.SixID) {
	m.ID = id
}

// StampNew sets both timestamps to the creation instant. CreatedAt equals
// UpdatedAt on a freshly created record.
func (m *Base) StampNew(now time.Time) {
	m.CreatedAt = now
	m.UpdatedAt = now
}

// Touch refreshes UpdatedAt only.
func (m *Base) Touch(now time.Time) {
	m.UpdatedAt = now
}

func NewBase() Base {
	return Base{
		ID: utils.NewSixID(),
	}
}
