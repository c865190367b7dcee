package entity

import "time"

type Project struct {
	ID          int64
	Name        string
	Description string
	Objective   string
	Visible     bool
	OwnerID     int64
	CoverImage  *string
	Skills      []Skill
	Areas       []Area
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Project) IsOwnedBy(personID int64) bool {
	return p.OwnerID == personID
}

func (p *Project) HasRequirements() bool {
	return len(p.Skills) > 0 || len(p.Areas) > 0
}

// AgreementType - тип соглашения (tipo_acordo), попадает в текст контракта.
type AgreementType struct {
	ID          int64
	Description string
}
