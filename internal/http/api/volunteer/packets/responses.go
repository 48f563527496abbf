package packets

type RedeemResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// MyShiftResponse is a volunteer's own upcoming shift in Adelaide
// wall-clock terms.
type MyShiftResponse struct {
	ShiftID  int    `json:"shift_id"`
	ShowName string `json:"show_name"`
	Date     string `json:"date"`
	Role     string `json:"role"`
	Arrive   string `json:"arrive"`
	Depart   string `json:"depart"`
	NextDay  bool   `json:"next_day"`
}

// OpenShiftResponse is an unfilled shift the volunteer could take
// without clashing with anything they already hold.
type OpenShiftResponse struct {
	ShiftID  int    `json:"shift_id"`
	ShowName string `json:"show_name"`
	Date     string `json:"date"`
	Role     string `json:"role"`
	Arrive   string `json:"arrive"`
	Depart   string `json:"depart"`
}
