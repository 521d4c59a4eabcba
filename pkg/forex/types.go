package forex

// LatestResponse is the body returned by the /latest endpoint, e.g.
// {"amount":1.0,"base":"USD","date":"2026-08-29","rates":{"EUR":0.9134}}.
type LatestResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}
