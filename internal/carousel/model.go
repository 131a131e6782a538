package carousel

type Item struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

type Image struct {
	Data        []byte
	ContentType string
}
