package packets

type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Email string  `json:"email" binding:"required,email"`
	Name  *string `json:"name"`
}

type CreateShowRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateShowRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateShowDateRequest carries Adelaide-local wall-clock values; the
// handler combines them into instants. An end time at or before the
// start is taken as the next day.
type CreateShowDateRequest struct {
	Date      string `json:"date" binding:"required"`       // "YYYY-MM-DD"
	StartTime string `json:"start_time" binding:"required"` // "HH:MM"
	EndTime   string `json:"end_time" binding:"required"`
}

type CreateShowIntervalRequest struct {
	StartMinutes    int `json:"start_minutes" binding:"min=0"`
	DurationMinutes int `json:"duration_minutes" binding:"required,min=1"`
}

type CreateShiftRequest struct {
	Role   string `json:"role" binding:"required"`
	Arrive string `json:"arrive" binding:"required"` // Adelaide "HH:MM"
	Depart string `json:"depart" binding:"required"`
}

type UpdateShiftRequest struct {
	Role   *string `json:"role"`
	Arrive *string `json:"arrive"`
	Depart *string `json:"depart"`
}

// BulkShiftTimesRequest retimes every shift of the same show that
// currently shares the reference shift's arrive/depart wall times.
type BulkShiftTimesRequest struct {
	Arrive string `json:"arrive" binding:"required"`
	Depart string `json:"depart" binding:"required"`
}

type CreateParticipantRequest struct {
	Name  string  `json:"name" binding:"required"`
	Email string  `json:"email" binding:"required,email"`
	Phone *string `json:"phone"`
}

type AssignShiftRequest struct {
	ParticipantID int `json:"participant_id" binding:"required"`
}

type EmailOutstandingRequest struct {
	Limit int `json:"limit"`
}
