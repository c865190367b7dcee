package notification

import "fmt"

// Тексты уведомлений показываются пользователю как есть и участвуют в дедупликации.

func MatchAssignedMessage(projectName string) string {
	return fmt.Sprintf("<strong>Existem pessoas a serem avaliadas para o projeto %s</strong>. Dê uma olhada!", projectName)
}

func InvitedMessage(idealizerName, projectName string) string {
	return fmt.Sprintf("<strong>%s te fez um convite</strong> para o projeto %s. Confira!", idealizerName, projectName)
}

func AcceptedMessage(collaboratorName, projectName string) string {
	return fmt.Sprintf("<strong>%s aceitou seu convite</strong> para o projeto %s. Finalize o acordo e preencha essa vaga!", collaboratorName, projectName)
}

func RefusedMessage(collaboratorName, projectName string) string {
	return fmt.Sprintf("<strong>%s recusou seu convite</strong> para o projeto %s. Realize uma nova busca.", collaboratorName, projectName)
}

const FinalizedMessage = "<strong>Seu acordo foi finalizado!</strong> Clique aqui e veja seu PDF top!"

func ReminderMessage(daysLeft int, idealizerName, projectName string) string {
	return fmt.Sprintf("<strong>Se liga:</strong> você tem %d dias para responder ao convite de %s para o projeto %s.", daysLeft, idealizerName, projectName)
}

func ExpiredMessage(candidateName string) string {
	return fmt.Sprintf("<strong>O prazo de resposta de %s expirou!</strong> Realize uma nova busca e complete seu time!", candidateName)
}

func CompleteProjectMessage(projectName string) string {
	return fmt.Sprintf("<strong>Finalize o cadastro do projeto %s</strong> e encontre o time ideal!", projectName)
}

func CompleteSlotsMessage(projectName string) string {
	return fmt.Sprintf("<strong>Finalize o cadastro das vagas do projeto %s</strong> e encontre o time ideal!", projectName)
}

func FavoriteMessage(personName, projectName string) string {
	return fmt.Sprintf("<strong>%s favoritou</strong> o projeto %s!", personName, projectName)
}

func InterestMessage(personName, projectName string) string {
	return fmt.Sprintf("<strong>%s demonstrou interesse</strong> no projeto %s!", personName, projectName)
}
