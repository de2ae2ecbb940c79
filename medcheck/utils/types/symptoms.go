package types

type CheckRequest struct {
	Symptoms string `json:"symptoms"`
}

type CheckResponse struct {
	Response string `json:"response"`
}
