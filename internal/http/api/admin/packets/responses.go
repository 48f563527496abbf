package packets

type ShowResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ShowDateResponse presents Adelaide wall-clock values; NextDayEnd marks
// a performance running past local midnight.
type ShowDateResponse struct {
	ID         int    `json:"id"`
	ShowID     int    `json:"show_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	NextDayEnd bool   `json:"next_day_end"`
}

type ShowIntervalResponse struct {
	ID              int `json:"id"`
	ShowID          int `json:"show_id"`
	StartMinutes    int `json:"start_minutes"`
	DurationMinutes int `json:"duration_minutes"`
}

type ShiftResponse struct {
	ID         int    `json:"id"`
	ShowDateID int    `json:"show_date_id"`
	Role       string `json:"role"`
	Arrive     string `json:"arrive"`
	Depart     string `json:"depart"`
	NextDay    bool   `json:"next_day"`
}

type ParticipantResponse struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Approved bool    `json:"approved"`
}
