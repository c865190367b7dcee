package repository

import (
	"context"
	"time"

	"github.com/ignatzorin/conectar-backend/internal/domain/entity"
)

// ContractData - всё, что попадает в текст соглашения по вакансии.
type ContractData struct {
	Slot          *entity.Slot
	Project       *entity.Project
	Idealizer     *entity.Person
	Collaborator  *entity.Person
	AgreementType *entity.AgreementType
	SignedAt      time.Time
}

// ContractGenerator формирует документ соглашения и возвращает ссылку на вложение.
type ContractGenerator interface {
	Generate(ctx context.Context, data ContractData) (string, error)
}

// AttachmentStorage хранит вложения уведомлений.
type AttachmentStorage interface {
	Save(ctx context.Context, content []byte) (string, error)
	Delete(ctx context.Context, ref string) error
}
