package api

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status        string `json:"status"`
	TummySize     int    `json:"tummy_size"`
	TummyCapacity int    `json:"tummy_capacity"`
}

// CrunchResponse is the payload for POST /api/v1/crunch.
type CrunchResponse struct {
	Verdict string `json:"verdict"`
	Kind    string `json:"kind"`
	Number  int    `json:"number"`
}

type errorResponse struct {
	Error string `json:"error"`
}
