package model

type DetectRequestBody struct {
	Notes      []int  `json:"notes"`
	Velocities []int  `json:"velocities,omitempty"`
	Key        string `json:"key,omitempty"`
	Max        int    `json:"max,omitempty"`
	Detailed   bool   `json:"detailed,omitempty"`
	NoSlash    bool   `json:"no_slash,omitempty"`
}

type DetectResponse struct {
	Mask       string      `json:"mask"`
	Best       *Candidate  `json:"best"`
	Candidates []Candidate `json:"candidates"`
}

type SessionResponse struct {
	Id string `json:"id"`
}

type NoteRequestBody struct {
	Note     int  `json:"note"`
	Velocity int  `json:"velocity"`
	On       bool `json:"on"`
}

type KeyRequestBody struct {
	Key string `json:"key"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
