package entity

import (
	"sort"
	"time"

	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
)

type Skill struct {
	ID   int64
	Name string
}

// Area образует дерево через ParentID.
type Area struct {
	ID          int64
	Description string
	ParentID    *int64
}

type Person struct {
	ID           int64
	Name         string
	Email        string
	ProfilePhoto *string
	Roles        valueobject.Roles
	Skills       []Skill
	Areas        []Area
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TagList собирает метки для сравнения: отсортированные навыки, затем отсортированные области.
func TagList(skills []Skill, areas []Area) []string {
	skillNames := make([]string, 0, len(skills))
	for _, s := range skills {
		skillNames = append(skillNames, s.Name)
	}
	sort.Strings(skillNames)

	areaNames := make([]string, 0, len(areas))
	for _, a := range areas {
		areaNames = append(areaNames, a.Description)
	}
	sort.Strings(areaNames)

	return append(skillNames, areaNames...)
}

func (p *Person) Tags() []string {
	return TagList(p.Skills, p.Areas)
}

func (p *Person) CanFill(role valueobject.Role) bool {
	return p.Roles.Has(role)
}
