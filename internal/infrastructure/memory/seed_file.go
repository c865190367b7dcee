package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/logger"
)

// SeedFile описывает начальные данные для STORAGE_DRIVER=memory.
// Навыки и области в людях и проектах указываются по названию.
type SeedFile struct {
	Skills         []string      `json:"skills"`
	Areas          []SeedArea    `json:"areas"`
	AgreementTypes []string      `json:"agreement_types"`
	People         []SeedPerson  `json:"people"`
	Projects       []SeedProject `json:"projects"`
}

type SeedArea struct {
	Description string `json:"description"`
	Parent      string `json:"parent,omitempty"`
}

type SeedPerson struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	Skills []string `json:"skills"`
	Areas  []string `json:"areas"`
}

type SeedProject struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	OwnerID     int64    `json:"owner_id"`
	Skills      []string `json:"skills"`
	Areas       []string `json:"areas"`
}

// LoadSeedFile наполняет хранилище из JSON файла.
func (s *Store) LoadSeedFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("memory: не удалось открыть seed: %w", err)
	}
	defer f.Close()
	return s.LoadSeed(f)
}

// LoadSeed читает SeedFile и добавляет его содержимое в хранилище.
func (s *Store) LoadSeed(r io.Reader) error {
	var seed SeedFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return fmt.Errorf("memory: некорректный seed: %w", err)
	}

	skills := make(map[string]entity.Skill, len(seed.Skills))
	for _, name := range seed.Skills {
		if _, dup := skills[name]; dup {
			return fmt.Errorf("memory: навык %q повторяется", name)
		}
		skills[name] = s.AddSkill(name)
	}

	areas := make(map[string]entity.Area, len(seed.Areas))
	for _, a := range seed.Areas {
		var parentID *int64
		if a.Parent != "" {
			parent, ok := areas[a.Parent]
			if !ok {
				return fmt.Errorf("memory: область %q ссылается на неизвестную %q", a.Description, a.Parent)
			}
			parentID = &parent.ID
		}
		areas[a.Description] = s.AddArea(a.Description, parentID)
	}

	for _, desc := range seed.AgreementTypes {
		s.AddAgreementType(desc)
	}

	people := make(map[int64]bool, len(seed.People))
	for _, p := range seed.People {
		roles, err := parseRoles(p.Roles)
		if err != nil {
			return fmt.Errorf("memory: человек %q: %w", p.Name, err)
		}
		personSkills, personAreas, err := lookupTags(skills, areas, p.Skills, p.Areas)
		if err != nil {
			return fmt.Errorf("memory: человек %q: %w", p.Name, err)
		}
		added := s.AddPerson(&entity.Person{
			ID:     p.ID,
			Name:   p.Name,
			Email:  p.Email,
			Roles:  roles,
			Skills: personSkills,
			Areas:  personAreas,
		})
		people[added.ID] = true
	}

	for _, p := range seed.Projects {
		if !people[p.OwnerID] {
			return fmt.Errorf("memory: проект %q: владелец %d не найден", p.Name, p.OwnerID)
		}
		projectSkills, projectAreas, err := lookupTags(skills, areas, p.Skills, p.Areas)
		if err != nil {
			return fmt.Errorf("memory: проект %q: %w", p.Name, err)
		}
		s.AddProject(&entity.Project{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Visible:     true,
			OwnerID:     p.OwnerID,
			Skills:      projectSkills,
			Areas:       projectAreas,
		})
	}

	logger.Log.WithField("people", len(seed.People)).WithField("projects", len(seed.Projects)).
		Info("memory: начальные данные загружены")
	return nil
}

func parseRoles(names []string) (valueobject.Roles, error) {
	var ally, collaborator, idealizer bool
	for _, name := range names {
		role, err := valueobject.NewRole(name)
		if err != nil {
			return 0, fmt.Errorf("роль %q: %w", name, err)
		}
		switch role {
		case valueobject.RoleAlly:
			ally = true
		case valueobject.RoleCollaborator:
			collaborator = true
		case valueobject.RoleIdealizer:
			idealizer = true
		}
	}
	return valueobject.NewRoles(ally, collaborator, idealizer), nil
}

func lookupTags(skills map[string]entity.Skill, areas map[string]entity.Area, skillNames, areaNames []string) ([]entity.Skill, []entity.Area, error) {
	outSkills := make([]entity.Skill, 0, len(skillNames))
	for _, name := range skillNames {
		skill, ok := skills[name]
		if !ok {
			return nil, nil, fmt.Errorf("неизвестный навык %q", name)
		}
		outSkills = append(outSkills, skill)
	}
	outAreas := make([]entity.Area, 0, len(areaNames))
	for _, name := range areaNames {
		area, ok := areas[name]
		if !ok {
			return nil, nil, fmt.Errorf("неизвестная область %q", name)
		}
		outAreas = append(outAreas, area)
	}
	return outSkills, outAreas, nil
}
