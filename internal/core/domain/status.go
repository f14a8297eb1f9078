package domain

// Tone classifies the severity of a status message
type Tone string

const (
	ToneIdle  Tone = "idle"  // Initial state, also used while an operation is in flight
	ToneOK    Tone = "ok"    // Success
	ToneWarn  Tone = "warn"  // Recoverable caution: nothing was called or nothing usable came back
	ToneError Tone = "error" // Collaborator failure
)

// IsValid reports whether the tone is one of the four known tones
func (t Tone) IsValid() bool {
	switch t {
	case ToneIdle, ToneOK, ToneWarn, ToneError:
		return true
	}
	return false
}

// IsTerminal reports whether the tone ends an operation's lifecycle
func (t Tone) IsTerminal() bool {
	return t == ToneOK || t == ToneWarn || t == ToneError
}

// Status is the message shown for one stage of the workflow
type Status struct {
	Message string `json:"message" example:"Indexed successfully."`
	Tone    Tone   `json:"tone" example:"ok"`
}

// Channel names an independent status holder
type Channel string

const (
	ChannelUpload  Channel = "upload"
	ChannelQuery   Channel = "query"
	ChannelSummary Channel = "summary"
)

// Channels lists every status channel in display order
func Channels() []Channel {
	return []Channel{ChannelUpload, ChannelQuery, ChannelSummary}
}

// InitialStatus returns the status a channel starts with
func InitialStatus(ch Channel) Status {
	switch ch {
	case ChannelUpload:
		return Status{Message: MsgNoFileStaged, Tone: ToneIdle}
	case ChannelQuery:
		return Status{Message: MsgWaitingForQuery, Tone: ToneIdle}
	case ChannelSummary:
		return Status{Message: MsgNoSummary, Tone: ToneIdle}
	}
	return Status{Tone: ToneIdle}
}

// Status messages
const (
	MsgNoFileStaged     = "No file selected."
	MsgReadyToUpload    = "Ready to upload."
	MsgSelectPDFFirst   = "Select a PDF first."
	MsgUploading        = "Uploading PDF..."
	MsgEnterURLFirst    = "Enter a document URL first."
	MsgUploadingURL     = "Fetching document..."
	MsgUploadComplete   = "Upload complete. Indexing..."
	MsgIndexed          = "Indexed successfully."
	MsgUploadFailed     = "Upload failed"
	MsgWaitingForQuery  = "Waiting for a query."
	MsgTypeQuestion     = "Type a question first."
	MsgSelectFileFirst  = "Select a file first."
	MsgSearching        = "Searching..."
	MsgNoMatches        = "No matches for this file in the top results."
	MsgQueryFailed      = "Query failed"
	MsgNoSummary        = "No summary yet."
	MsgNothingToSummary = "No text to summarize."
	MsgSummarizing      = "Summarizing top results..."
	MsgSummaryReady     = "Summary ready."
	MsgSummaryFailed    = "Summary failed"
)

// Idle builds an idle status
func Idle(msg string) Status { return Status{Message: msg, Tone: ToneIdle} }

// OK builds a success status
func OK(msg string) Status { return Status{Message: msg, Tone: ToneOK} }

// Warn builds a caution status
func Warn(msg string) Status { return Status{Message: msg, Tone: ToneWarn} }

// Failed builds an error status from err, using fallback when err has no text
func Failed(err error, fallback string) Status {
	return Status{Message: FailureMessage(err, fallback), Tone: ToneError}
}
