package dto

type CreateProjectSessionRequest struct {
	UserName     string `json:"user_name" validate:"required"`
	UserPronoun  string `json:"user_pronoun" validate:"required"`
	ProjectsData string `json:"projects_data,omitempty"`
	TasksData    string `json:"tasks_data,omitempty"`
	Timestamp    string `json:"timestamp,omitempty"`
}

type CreateProjectSessionResponse struct {
	SessionId string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

type ProjectQueryRequest struct {
	Message string `json:"message" validate:"required"`
}

type ProjectQueryResponse struct {
	Response string `json:"response"`
}
