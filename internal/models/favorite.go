package models

// Action тип взаимодействия пользователя с объявлением
type Action string

const (
	ActionView     Action = "view"
	ActionClick    Action = "click"
	ActionFavorite Action = "favorite"
	ActionCompare  Action = "compare"
	ActionContact  Action = "contact"
)

// Valid сообщает, известен ли тип взаимодействия
func (a Action) Valid() bool {
	switch a {
	case ActionView, ActionClick, ActionFavorite, ActionCompare, ActionContact:
		return true
	}
	return false
}

// FeedbackRequest событие взаимодействия, отправляемое в /feedback
type FeedbackRequest struct {
	VehicleID string         `json:"vehicle_id"`
	Action    Action         `json:"action"`
	Context   map[string]any `json:"context,omitempty"`
}
