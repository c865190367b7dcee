package entity

import "time"

type Notification struct {
	ID          int64
	SenderID    int64
	RecipientID int64
	ProjectID   *int64
	SlotID      *int64
	Message     string
	Photo       *string
	Attachment  *string
	Read        bool
	CreatedAt   time.Time
}

func (n *Notification) IsAddressedTo(personID int64) bool {
	return n.RecipientID == personID
}

func (n *Notification) MarkRead() {
	n.Read = true
}
