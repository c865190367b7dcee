package entity

import (
	"fmt"
	"time"

	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
)

// Slot - вакансия проекта (PessoaProjeto). PersonID пуст только у открытой вакансии.
type Slot struct {
	ID              int64
	ProjectID       int64
	PersonID        *int64
	Role            valueobject.Role
	AgreementTypeID *int64
	Paid            bool
	Title           string
	Description     string
	Status          valueobject.SlotStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Skills []Skill
	Areas  []Area
}

// NewSlot создаёт вакансию. С заранее выбранным кандидатом вакансия сразу ждёт его ответа.
func NewSlot(projectID int64, role valueobject.Role, title, description string, paid bool, agreementTypeID, personID *int64, now time.Time) (*Slot, error) {
	if title == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "название вакансии обязательно")
	}
	if !role.IsValid() {
		return nil, apperror.New(apperror.ErrCodeValidation, "некорректная роль")
	}

	status := valueobject.SlotStatusPendingIdealizer
	if personID != nil {
		status = valueobject.SlotStatusPendingCollaborator
	}

	return &Slot{
		ProjectID:       projectID,
		PersonID:        personID,
		Role:            role,
		AgreementTypeID: agreementTypeID,
		Paid:            paid,
		Title:           title,
		Description:     description,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (s *Slot) IsOpen() bool {
	return s.PersonID == nil
}

func (s *Slot) IsAssignedTo(personID int64) bool {
	return s.PersonID != nil && *s.PersonID == personID
}

func (s *Slot) Tags() []string {
	return TagList(s.Skills, s.Areas)
}

// AssignCandidate допустим из любого состояния, включая FINALIZADO.
func (s *Slot) AssignCandidate(personID int64, now time.Time) {
	s.PersonID = &personID
	s.Status = valueobject.SlotStatusPendingIdealizer
	s.UpdatedAt = now
}

func (s *Slot) Invite(now time.Time) error {
	if !s.Status.CanTransitionTo(valueobject.SlotStatusPendingCollaborator) {
		return s.invalidTransition("приглашение")
	}
	if s.PersonID == nil {
		return apperror.New(apperror.ErrCodeInvalidTransition, "у вакансии нет выбранного кандидата")
	}
	s.Status = valueobject.SlotStatusPendingCollaborator
	s.UpdatedAt = now
	return nil
}

func (s *Slot) Accept(now time.Time) error {
	if !s.Status.CanTransitionTo(valueobject.SlotStatusAccepted) {
		return s.invalidTransition("принятие")
	}
	s.Status = valueobject.SlotStatusAccepted
	s.UpdatedAt = now
	return nil
}

// Refuse фиксирует отказ и сразу открывает вакансию заново. Возвращает ID отказавшегося.
func (s *Slot) Refuse(now time.Time) (int64, error) {
	if !s.Status.CanTransitionTo(valueobject.SlotStatusRefused) {
		return 0, s.invalidTransition("отказ")
	}
	refusedBy := *s.PersonID
	s.Status = valueobject.SlotStatusRefused
	s.reopen(now)
	return refusedBy, nil
}

func (s *Slot) Finalize(now time.Time) error {
	if !s.Status.CanTransitionTo(valueobject.SlotStatusFinalized) {
		return s.invalidTransition("завершение")
	}
	s.Status = valueobject.SlotStatusFinalized
	s.UpdatedAt = now
	return nil
}

// ElapsedDays считает полные прошедшие сутки с последнего обновления.
func (s *Slot) ElapsedDays(now time.Time) int {
	if now.Before(s.UpdatedAt) {
		return 0
	}
	return int(now.Sub(s.UpdatedAt) / (24 * time.Hour))
}

// Expire открывает вакансию, если кандидат молчит дольше afterDays суток.
// Возвращает false, если срок ещё не истёк.
func (s *Slot) Expire(now time.Time, afterDays int) (bool, error) {
	if s.Status != valueobject.SlotStatusPendingCollaborator {
		return false, s.invalidTransition("истечение срока")
	}
	if s.ElapsedDays(now) <= afterDays {
		return false, nil
	}
	s.reopen(now)
	return true, nil
}

func (s *Slot) reopen(now time.Time) {
	s.PersonID = nil
	s.Status = valueobject.SlotStatusPendingIdealizer
	s.UpdatedAt = now
}

func (s *Slot) invalidTransition(action string) error {
	return apperror.New(apperror.ErrCodeInvalidTransition,
		fmt.Sprintf("переход «%s» недопустим для вакансии в статусе %s", action, s.Status))
}
