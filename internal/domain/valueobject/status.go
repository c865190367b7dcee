package valueobject

import "github.com/ignatzorin/conectar-backend/internal/pkg/apperror"

// SlotStatus - состояние жизненного цикла вакансии (situacao).
type SlotStatus string

const (
	SlotStatusPendingIdealizer    SlotStatus = "PENDENTE_IDEALIZADOR"
	SlotStatusPendingCollaborator SlotStatus = "PENDENTE_COLABORADOR"
	SlotStatusAccepted            SlotStatus = "ACEITO"
	SlotStatusRefused             SlotStatus = "RECUSADO"
	SlotStatusFinalized           SlotStatus = "FINALIZADO"
)

func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusPendingIdealizer, SlotStatusPendingCollaborator, SlotStatusAccepted, SlotStatusRefused, SlotStatusFinalized:
		return true
	}
	return false
}

// CanTransitionTo описывает переходы по явным командам.
// Назначение кандидата допустимо из любого состояния и здесь не учитывается.
func (s SlotStatus) CanTransitionTo(newStatus SlotStatus) bool {
	transitions := map[SlotStatus][]SlotStatus{
		SlotStatusPendingIdealizer:    {SlotStatusPendingCollaborator},
		SlotStatusPendingCollaborator: {SlotStatusAccepted, SlotStatusRefused, SlotStatusPendingIdealizer},
		SlotStatusAccepted:            {SlotStatusFinalized},
		SlotStatusRefused:             {SlotStatusPendingIdealizer},
		SlotStatusFinalized:           {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

func (s SlotStatus) IsTerminal() bool {
	return s == SlotStatusFinalized
}

func NewSlotStatus(status string) (SlotStatus, error) {
	s := SlotStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус вакансии")
	}
	return s, nil
}

// Role - роль, требуемая вакансией (papel).
type Role string

const (
	RoleAlly         Role = "ALIADO"
	RoleCollaborator Role = "COLABORADOR"
	RoleIdealizer    Role = "IDEALIZADOR"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAlly, RoleCollaborator, RoleIdealizer:
		return true
	}
	return false
}

func NewRole(role string) (Role, error) {
	r := Role(role)
	if !r.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректная роль")
	}
	return r, nil
}

// Roles - набор возможностей человека в виде битовых флагов.
type Roles uint8

const (
	CapabilityAlly Roles = 1 << iota
	CapabilityCollaborator
	CapabilityIdealizer
)

func NewRoles(ally, collaborator, idealizer bool) Roles {
	var r Roles
	if ally {
		r |= CapabilityAlly
	}
	if collaborator {
		r |= CapabilityCollaborator
	}
	if idealizer {
		r |= CapabilityIdealizer
	}
	return r
}

func (r Roles) Has(role Role) bool {
	return r&role.Capability() != 0
}

func (r Roles) IsAlly() bool         { return r&CapabilityAlly != 0 }
func (r Roles) IsCollaborator() bool { return r&CapabilityCollaborator != 0 }
func (r Roles) IsIdealizer() bool    { return r&CapabilityIdealizer != 0 }

// Capability возвращает флаг, соответствующий роли вакансии.
func (r Role) Capability() Roles {
	switch r {
	case RoleAlly:
		return CapabilityAlly
	case RoleCollaborator:
		return CapabilityCollaborator
	case RoleIdealizer:
		return CapabilityIdealizer
	}
	return 0
}

type ReactionKind string

const (
	ReactionFavorite ReactionKind = "FAVORITO"
	ReactionInterest ReactionKind = "INTERESSE"
)

func (k ReactionKind) IsValid() bool {
	return k == ReactionFavorite || k == ReactionInterest
}

func NewReactionKind(kind string) (ReactionKind, error) {
	k := ReactionKind(kind)
	if !k.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный тип реакции")
	}
	return k, nil
}
