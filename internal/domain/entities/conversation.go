package entities

// Step is the current state of an edit conversation.
type Step string

const (
	StepIdle                   Step = ""
	StepCollectingTitleAndName Step = "collecting_title_and_name"
	StepCollectingTitle        Step = "collecting_title"
	StepCollectingEventText    Step = "collecting_event_text"
	StepCollectingAsiaTime     Step = "collecting_asia_time"
	StepCollectingEuropeTime   Step = "collecting_europe_time"
	StepCollectingAmericaTime  Step = "collecting_america_time"
	StepCollectingPhoto        Step = "collecting_photo"
)

// ConversationKey identifies one operator in one chat.
type ConversationKey struct {
	ChatID string
	UserID string
}

func (k ConversationKey) String() string {
	return k.ChatID + ":" + k.UserID
}

// ConversationState holds the fields collected so far by an edit in progress.
// Region times are kept exactly as typed; they are normalized on commit.
type ConversationState struct {
	Step       Step    `json:"step"`
	Locale     string  `json:"locale"`
	Section    Section `json:"section"`
	Title      string  `json:"title"`
	Name       string  `json:"name"`
	RawAsia    string  `json:"raw_asia"`
	RawEurope  string  `json:"raw_europe"`
	RawAmerica string  `json:"raw_america"`
}
