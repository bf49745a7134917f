package dto

type ContactPayload struct {
	Id             string `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	ConversationId string `json:"conversationId"`
}

type ListContactsResponse struct {
	Contacts []ContactPayload `json:"contacts"`
}
