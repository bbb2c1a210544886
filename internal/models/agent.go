package models

// Agent categories understood by the directory.
const (
	AgentTypeOther = "other"
)

// AgentDescriptor identifies this service in the agent directory.
type AgentDescriptor struct {
	Identifier string   `json:"identifier" validate:"required"`
	Purpose    []string `json:"purpose" validate:"required,min=1,dive,required"`
	AgentType  string   `json:"agent_type" validate:"required"`
}

// CoTRequest is a question delivered over the message bus.
// Action carries the question text.
type CoTRequest struct {
	Action           string `json:"action" validate:"required"`
	UserIdentifier   string `json:"user_identifier" validate:"required"`
	PromptIdentifier string `json:"prompt_identifier" validate:"required"`
}

// CoTResponse is the reply published for a CoTRequest.
type CoTResponse struct {
	Action           string `json:"action"`
	UserIdentifier   string `json:"user_identifier"`
	PromptIdentifier string `json:"prompt_identifier"`
	ActionSuccessful bool   `json:"action_successful"`
	ActionResponse   string `json:"action_response"`
}
