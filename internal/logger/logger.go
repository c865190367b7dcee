package logger

import (
	"github.com/sirupsen/logrus"
)

// Log доступен сразу, Init лишь перенастраивает его.
var Log = logrus.New()

// Init инициализирует структурированный логгер.
func Init(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// Используем JSON формат для production, text для development
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// WithSlot добавляет к записи поля вакансии.
func WithSlot(slotID, projectID int64) *logrus.Entry {
	return Log.WithFields(logrus.Fields{
		"slot_id":    slotID,
		"project_id": projectID,
	})
}
