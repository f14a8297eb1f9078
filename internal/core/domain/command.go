package domain

// CommandType names a user action dispatched to a workspace
type CommandType string

const (
	CommandStageFile   CommandType = "stage_file"
	CommandClearStaged CommandType = "clear_staged"
	CommandUpload      CommandType = "upload"
	CommandUploadURL   CommandType = "upload_url"
	CommandReloadFiles CommandType = "reload_files"
	CommandSelectFile  CommandType = "select_file"
	CommandQuery       CommandType = "query"
	CommandNavigate    CommandType = "navigate"
	CommandPopState    CommandType = "pop_state"
	CommandBack        CommandType = "back"
	CommandForward     CommandType = "forward"
)

// Command is a user action. Only the fields its type needs are read.
type Command struct {
	Type     CommandType `json:"type"`
	File     *StagedFile `json:"-"`
	URL      string      `json:"url,omitempty"`
	Filename string      `json:"filename,omitempty"`
	Query    string      `json:"query,omitempty"`
	Page     Page        `json:"page,omitempty"`
	Path     string      `json:"path,omitempty"`
}

// UploadURLRequest asks the backend to fetch a document itself
type UploadURLRequest struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}
