package judge0

// Submission is the payload for POST /submissions. SourceCode and Stdin must
// already be base64 encoded when the request asks for base64_encoded=true.
type Submission struct {
	LanguageID int    `json:"language_id"`
	SourceCode string `json:"source_code"`
	Stdin      string `json:"stdin"`
}

// Status is the verdict Judge0 attaches to a finished submission.
type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Result is a finished submission with its text fields already decoded.
type Result struct {
	Token         string
	Stdout        string
	Stderr        string
	CompileOutput string
	Message       string
	Status        Status
	Time          string
	Memory        int
}

// Language is one entry of the remote GET /languages list.
type Language struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// wireResult mirrors the JSON body returned with base64_encoded=true.
type wireResult struct {
	Token         string `json:"token"`
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output"`
	Message       string `json:"message"`
	Status        Status `json:"status"`
	Time          string `json:"time"`
	Memory        int    `json:"memory"`
}
