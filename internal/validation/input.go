package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ignatzorin/conectar-backend/internal/pkg/apperror"
)

// Ограничения полей вакансии
const (
	MinSlotTitleLength       = 1
	MaxSlotTitleLength       = 200
	MaxSlotDescriptionLength = 5000
	MaxTagsPerSlot           = 50
)

// ValidateLength проверяет длину строки в символах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("%s должно быть не менее %d символов", fieldName, min))
	}
	if max > 0 && length > max {
		return apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("%s должно быть не более %d символов", fieldName, max))
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.New(apperror.ErrCodeValidation, fieldName+" не может быть пустым")
	}
	return nil
}

// ValidateSlotTitle проверяет название вакансии.
func ValidateSlotTitle(title string) error {
	if err := ValidateNonEmpty("название вакансии", title); err != nil {
		return err
	}
	if err := ValidateLength("название вакансии", strings.TrimSpace(title), MinSlotTitleLength, MaxSlotTitleLength); err != nil {
		return err
	}
	if hasControlChars(title) {
		return apperror.New(apperror.ErrCodeValidation, "название вакансии содержит недопустимые символы")
	}
	return nil
}

// ValidateSlotDescription проверяет описание вакансии. Пустое описание допустимо.
func ValidateSlotDescription(description string) error {
	return ValidateLength("описание вакансии", description, 0, MaxSlotDescriptionLength)
}

// ValidateTagIDs проверяет список ID навыков или областей.
func ValidateTagIDs(fieldName string, ids []int64) error {
	if len(ids) > MaxTagsPerSlot {
		return apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("%s: не более %d элементов", fieldName, MaxTagsPerSlot))
	}
	for _, id := range ids {
		if id <= 0 {
			return apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("%s: некорректный ID %d", fieldName, id))
		}
	}
	return nil
}

// SanitizeText обрезает пробелы по краям и убирает управляющие символы, кроме переводов строк.
func SanitizeText(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func hasControlChars(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
