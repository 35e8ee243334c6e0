package domain

// Worker is the staff record behind a login user with the worker role.
type Worker struct {
	ID           int32  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address,omitempty"`
	WorkStart    string `json:"work_start"`
	WorkEnd      string `json:"work_end"`
	WorkingDays  string `json:"working_days,omitempty"`
	JobTitle     string `json:"job_title"`
	RentalInfoID int32  `json:"rental_info_id"`
}

func (w *Worker) DisplayName() string {
	if w.FirstName == "" {
		return w.LastName
	}
	if w.LastName == "" {
		return w.FirstName
	}
	return w.FirstName + " " + w.LastName
}

// RentalInfo is the rental location reference record: open hours, address,
// contact details. There is normally a single row.
type RentalInfo struct {
	ID        int32  `json:"id"`
	OpenHour  string `json:"open_hour"`
	CloseHour string `json:"close_hour"`
	Address   string `json:"address"`
	Phone     string `json:"phone,omitempty"`
	OpenDays  string `json:"open_days,omitempty"`
	Email     string `json:"email,omitempty"`
}
