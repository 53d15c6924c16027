package dto

// PersonCfg is the create/update payload for a person.
type PersonCfg struct {
	Name       string `json:"name"`
	ProfileURL string `json:"profile_url"`
	Date       string `json:"date"`
	Video      string `json:"video,omitempty"`
	Show       *bool  `json:"show,omitempty"`
}

// LinkCfg is the link/unlink payload.
type LinkCfg struct {
	MovieID string `json:"movieId"`
}

// LoginCfg is the admin login payload.
type LoginCfg struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
