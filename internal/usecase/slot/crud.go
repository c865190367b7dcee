package slot

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
	"github.com/ignatzorin/conectar-backend/internal/domain/valueobject"
	"github.com/ignatzorin/conectar-backend/internal/logger"
	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
	"github.com/ignatzorin/conectar-backend/internal/usecase/ignorelist"
	"github.com/ignatzorin/conectar-backend/internal/usecase/notification"
	"github.com/ignatzorin/conectar-backend/internal/validation"
)

// DefaultMaxSlotsPerProject ограничивает число вакансий одного проекта.
const DefaultMaxSlotsPerProject = 5

type CreateInput struct {
	ActorID         int64
	ProjectID       int64
	PersonID        *int64
	Role            string
	AgreementTypeID *int64
	Paid            bool
	Title           string
	Description     string
	SkillIDs        []int64
	AreaIDs         []int64
}

type CreateUseCase struct {
	uow       repository.UnitOfWork
	lifecycle *Lifecycle
	publisher notification.Publisher
	maxSlots  int
}

func NewCreateUseCase(uow repository.UnitOfWork, lifecycle *Lifecycle, publisher notification.Publisher, maxSlots int) *CreateUseCase {
	if maxSlots <= 0 {
		maxSlots = DefaultMaxSlotsPerProject
	}
	return &CreateUseCase{uow: uow, lifecycle: lifecycle, publisher: publisher, maxSlots: maxSlots}
}

func (uc *CreateUseCase) Execute(ctx context.Context, input CreateInput) (*entity.Slot, error) {
	role, err := valueobject.NewRole(input.Role)
	if err != nil {
		return nil, err
	}
	if err := validateText(input.Title, input.Description); err != nil {
		return nil, err
	}
	if err := validation.ValidateTagIDs("skill_ids", input.SkillIDs); err != nil {
		return nil, err
	}
	if err := validation.ValidateTagIDs("area_ids", input.AreaIDs); err != nil {
		return nil, err
	}

	outbox := &notification.Outbox{}
	var result *entity.Slot
	err = uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		project, err := repos.Projects.FindByID(ctx, input.ProjectID)
		if err != nil {
			return err
		}
		if !project.IsOwnedBy(input.ActorID) {
			return apperror.ErrForbidden
		}

		count, err := repos.Slots.CountByProject(ctx, project.ID)
		if err != nil {
			return err
		}
		if count >= uc.maxSlots {
			return apperror.New(apperror.ErrCodeValidation,
				fmt.Sprintf("у проекта не может быть больше %d вакансий", uc.maxSlots))
		}

		if input.AgreementTypeID != nil {
			if _, err := repos.AgreementTypes.FindByID(ctx, *input.AgreementTypeID); err != nil {
				return err
			}
		}

		var candidate *entity.Person
		if input.PersonID != nil {
			candidate, err = repos.People.FindByID(ctx, *input.PersonID)
			if err != nil {
				return err
			}
			if err := checkCandidate(candidate, role, project); err != nil {
				return err
			}
		}

		skills, areas, err := resolveTags(ctx, repos.Tags, input.SkillIDs, input.AreaIDs)
		if err != nil {
			return err
		}

		s, err := entity.NewSlot(project.ID, role, input.Title, input.Description, input.Paid,
			input.AgreementTypeID, input.PersonID, uc.lifecycle.trigger.Now())
		if err != nil {
			return err
		}
		if err := repos.Slots.Create(ctx, s); err != nil {
			return err
		}
		skillIDs, areaIDs := tagIDs(skills, areas)
		if err := repos.Slots.ReplaceTags(ctx, s.ID, skillIDs, areaIDs); err != nil {
			return err
		}
		s.Skills, s.Areas = skills, areas

		tracker := ignorelist.NewTracker(repos.Ignored)
		if _, err := tracker.Add(ctx, project.OwnerID, s.ID); err != nil {
			return err
		}

		if candidate != nil {
			if _, err := tracker.Add(ctx, candidate.ID, s.ID); err != nil {
				return err
			}
			if err := uc.notifyInvited(ctx, repos, s, project, outbox); err != nil {
				return err
			}
		}

		result = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	outbox.Flush(uc.publisher)
	logger.WithSlot(result.ID, result.ProjectID).Info("slot: вакансия создана")
	return result, nil
}

func (uc *CreateUseCase) notifyInvited(ctx context.Context, repos repository.Repositories, s *entity.Slot, project *entity.Project, outbox *notification.Outbox) error {
	idealizer, err := repos.People.FindByID(ctx, project.OwnerID)
	if err != nil {
		return err
	}
	n, err := uc.lifecycle.trigger.Emit(ctx, repos.Notifications, &entity.Notification{
		SenderID:    idealizer.ID,
		RecipientID: *s.PersonID,
		ProjectID:   &s.ProjectID,
		SlotID:      &s.ID,
		Message:     notification.InvitedMessage(idealizer.Name, project.Name),
		Photo:       project.CoverImage,
	})
	if err != nil {
		return err
	}
	outbox.Add(n)
	return nil
}

type GetUseCase struct {
	uow repository.UnitOfWork
}

func NewGetUseCase(uow repository.UnitOfWork) *GetUseCase {
	return &GetUseCase{uow: uow}
}

func (uc *GetUseCase) Execute(ctx context.Context, slotID int64) (*entity.Slot, error) {
	var result *entity.Slot
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		result, err = repos.Slots.FindByID(ctx, slotID)
		return err
	})
	return result, err
}

type ListByProjectUseCase struct {
	uow repository.UnitOfWork
}

func NewListByProjectUseCase(uow repository.UnitOfWork) *ListByProjectUseCase {
	return &ListByProjectUseCase{uow: uow}
}

func (uc *ListByProjectUseCase) Execute(ctx context.Context, projectID int64) ([]*entity.Slot, error) {
	var result []*entity.Slot
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, err := repos.Projects.FindByID(ctx, projectID); err != nil {
			return err
		}
		var err error
		result, err = repos.Slots.FindByProject(ctx, projectID)
		return err
	})
	return result, err
}

// ListInvitationsUseCase - приглашения, ожидающие ответа человека.
type ListInvitationsUseCase struct {
	uow repository.UnitOfWork
}

func NewListInvitationsUseCase(uow repository.UnitOfWork) *ListInvitationsUseCase {
	return &ListInvitationsUseCase{uow: uow}
}

func (uc *ListInvitationsUseCase) Execute(ctx context.Context, personID int64, limit int) ([]*entity.Slot, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var result []*entity.Slot
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		result, err = repos.Slots.FindByPersonAndStatus(ctx, personID, valueobject.SlotStatusPendingCollaborator, limit)
		return err
	})
	return result, err
}

func validateText(title, description string) error {
	if err := validation.ValidateSlotTitle(title); err != nil {
		return err
	}
	return validation.ValidateSlotDescription(description)
}

// EditCommand - изменяемые поля вакансии. nil означает «не менять».
// Состояние и кандидат меняются только командами жизненного цикла.
type EditCommand struct {
	Title           *string
	Description     *string
	Paid            *bool
	Role            *string
	AgreementTypeID *int64
	SkillIDs        *[]int64
	AreaIDs         *[]int64
}

func (c EditCommand) Validate() error {
	if c.Title != nil {
		if err := validation.ValidateSlotTitle(*c.Title); err != nil {
			return err
		}
	}
	if c.Description != nil {
		if err := validation.ValidateSlotDescription(*c.Description); err != nil {
			return err
		}
	}
	if c.SkillIDs != nil {
		if err := validation.ValidateTagIDs("skill_ids", *c.SkillIDs); err != nil {
			return err
		}
	}
	if c.AreaIDs != nil {
		if err := validation.ValidateTagIDs("area_ids", *c.AreaIDs); err != nil {
			return err
		}
	}
	if c.Role != nil {
		if _, err := valueobject.NewRole(*c.Role); err != nil {
			return err
		}
	}
	return nil
}

func (c EditCommand) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.Paid == nil && c.Role == nil &&
		c.AgreementTypeID == nil && c.SkillIDs == nil && c.AreaIDs == nil
}

type EditUseCase struct {
	uow       repository.UnitOfWork
	lifecycle *Lifecycle
}

func NewEditUseCase(uow repository.UnitOfWork, lifecycle *Lifecycle) *EditUseCase {
	return &EditUseCase{uow: uow, lifecycle: lifecycle}
}

func (uc *EditUseCase) Execute(ctx context.Context, slotID, actorID int64, cmd EditCommand) (*entity.Slot, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if cmd.IsEmpty() {
		return nil, apperror.New(apperror.ErrCodeValidation, "нет полей для изменения")
	}

	var result *entity.Slot
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		s, project, err := lockForOwner(ctx, repos, slotID, actorID)
		if err != nil {
			return err
		}

		if cmd.Role != nil && !s.IsOpen() {
			assignee, err := repos.People.FindByID(ctx, *s.PersonID)
			if err != nil {
				return err
			}
			if err := checkCandidate(assignee, valueobject.Role(*cmd.Role), project); err != nil {
				return err
			}
		}

		if cmd.Title != nil {
			s.Title = strings.TrimSpace(*cmd.Title)
		}
		if cmd.Description != nil {
			s.Description = *cmd.Description
		}
		if cmd.Paid != nil {
			s.Paid = *cmd.Paid
		}
		if cmd.Role != nil {
			s.Role = valueobject.Role(*cmd.Role)
		}
		if cmd.AgreementTypeID != nil {
			if _, err := repos.AgreementTypes.FindByID(ctx, *cmd.AgreementTypeID); err != nil {
				return err
			}
			s.AgreementTypeID = cmd.AgreementTypeID
		}

		if cmd.SkillIDs != nil || cmd.AreaIDs != nil {
			skillIDs, areaIDs := tagIDs(s.Skills, s.Areas)
			if cmd.SkillIDs != nil {
				skillIDs = *cmd.SkillIDs
			}
			if cmd.AreaIDs != nil {
				areaIDs = *cmd.AreaIDs
			}
			skills, areas, err := resolveTags(ctx, repos.Tags, skillIDs, areaIDs)
			if err != nil {
				return err
			}
			s.Skills, s.Areas = skills, areas
			skillIDs, areaIDs = tagIDs(skills, areas)
			if err := repos.Slots.ReplaceTags(ctx, s.ID, skillIDs, areaIDs); err != nil {
				return err
			}
		}

		s.UpdatedAt = uc.lifecycle.trigger.Now()
		if err := repos.Slots.Update(ctx, s); err != nil {
			return err
		}
		result = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type DeleteUseCase struct {
	uow     repository.UnitOfWork
	storage repository.AttachmentStorage
}

func NewDeleteUseCase(uow repository.UnitOfWork, storage repository.AttachmentStorage) *DeleteUseCase {
	return &DeleteUseCase{uow: uow, storage: storage}
}

// Execute удаляет вакансию, а после коммита и файлы контрактов из её уведомлений.
func (uc *DeleteUseCase) Execute(ctx context.Context, slotID, actorID int64) error {
	var attachments []string
	err := uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, _, err := lockForOwner(ctx, repos, slotID, actorID); err != nil {
			return err
		}
		var err error
		attachments, err = repos.Notifications.AttachmentsBySlot(ctx, slotID)
		if err != nil {
			return err
		}
		return repos.Slots.Delete(ctx, slotID)
	})
	if err != nil {
		return err
	}

	if uc.storage == nil {
		return nil
	}
	for _, ref := range attachments {
		if err := uc.storage.Delete(ctx, ref); err != nil {
			logger.Log.WithError(err).WithField("attachment", ref).Warn("slot: не удалось удалить вложение")
		}
	}
	return nil
}

// resolveTags находит навыки и области по ID. Неизвестный ID - ошибка валидации.
func resolveTags(ctx context.Context, tags repository.TagRepository, skillIDs, areaIDs []int64) ([]entity.Skill, []entity.Area, error) {
	skillIDs, areaIDs = unique(skillIDs), unique(areaIDs)

	skills := []entity.Skill{}
	if len(skillIDs) > 0 {
		found, err := tags.FindSkillsByIDs(ctx, skillIDs)
		if err != nil {
			return nil, nil, err
		}
		if missing := missingIDs(skillIDs, tagIDsOfSkills(found)); len(missing) > 0 {
			return nil, nil, apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("навыки не найдены: %v", missing))
		}
		skills = found
	}

	areas := []entity.Area{}
	if len(areaIDs) > 0 {
		found, err := tags.FindAreasByIDs(ctx, areaIDs)
		if err != nil {
			return nil, nil, err
		}
		if missing := missingIDs(areaIDs, tagIDsOfAreas(found)); len(missing) > 0 {
			return nil, nil, apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("области не найдены: %v", missing))
		}
		areas = found
	}

	return skills, areas, nil
}

func tagIDs(skills []entity.Skill, areas []entity.Area) ([]int64, []int64) {
	return tagIDsOfSkills(skills), tagIDsOfAreas(areas)
}

func tagIDsOfSkills(skills []entity.Skill) []int64 {
	ids := make([]int64, 0, len(skills))
	for _, s := range skills {
		ids = append(ids, s.ID)
	}
	return ids
}

func tagIDsOfAreas(areas []entity.Area) []int64 {
	ids := make([]int64, 0, len(areas))
	for _, a := range areas {
		ids = append(ids, a.ID)
	}
	return ids
}

func unique(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func missingIDs(want, got []int64) []int64 {
	have := make(map[int64]struct{}, len(got))
	for _, id := range got {
		have[id] = struct{}{}
	}
	var missing []int64
	for _, id := range want {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
