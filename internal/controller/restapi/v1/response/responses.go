package response

type Error struct {
	Error string `json:"error"`
}

type RSVPSubmitted struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}
