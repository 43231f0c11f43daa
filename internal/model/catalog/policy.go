package catalog

// Policy is a store policy document (warranty, returns, shipping, payment).
type Policy struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// FAQ is a frequently-asked question with its canned answer.
type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
