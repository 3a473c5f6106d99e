// Package models: models/categories.go
// One declarative registry drives every category page: its route, its
// submission type, its form fields, and how a submitted form becomes a
// Submission draft. Adding a category means adding an entry here, not
// writing a new page.
package models

import "strings"

// FieldKind enumerates the input widgets a category form may use.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldDate     FieldKind = "date"
)

// SubmitField describes one input in a category's submission form.
type SubmitField struct {
	Key         string
	Label       string
	Placeholder string
	Required    bool
	Kind        FieldKind
	Rows        int // textarea only; 0 means default
}

// ItemDraft is the category-independent result of assembling a form:
// the values staged for insertion as a Submission.
type ItemDraft struct {
	Title         string
	Description   string
	PresenterName string
	Links         []string
}

// Category declares one board: path, labels, submission type, form layout,
// and the function that assembles a draft from submitted field values.
type Category struct {
	Path      string
	NavLabel  string
	Title     string
	Subtitle  string
	FormTitle string
	Type      string
	Fields    []SubmitField
	BuildItem func(values map[string]string) ItemDraft
}

func trimmed(values map[string]string, key string) string {
	return strings.TrimSpace(values[key])
}

// joinParts builds a " · "-separated description from optional labelled parts.
func joinParts(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " · ")
}

func labelled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

// presenterDraft covers the common demo-style form: title, presenter,
// description, optional link.
func presenterDraft(values map[string]string) ItemDraft {
	d := ItemDraft{
		Title:         trimmed(values, "title"),
		Description:   trimmed(values, "description"),
		PresenterName: trimmed(values, "presenter"),
	}
	if url := trimmed(values, "url"); url != "" {
		d.Links = []string{url}
	}
	return d
}

var presenterFields = []SubmitField{
	{Key: "title", Label: "Title", Required: true, Kind: FieldText},
	{Key: "presenter", Label: "Presenter", Required: true, Kind: FieldText, Placeholder: "Your name"},
	{Key: "description", Label: "Description", Kind: FieldTextarea, Rows: 3},
	{Key: "url", Label: "Link (optional)", Kind: FieldText, Placeholder: "https://..."},
}

// Categories lists every board in navigation order.
var Categories = []Category{
	{
		Path:      "demos",
		NavLabel:  "demos",
		Title:     "Demos",
		Subtitle:  "Live demos people want to see on stage.",
		FormTitle: "Submit a demo",
		Type:      "demo",
		Fields:    presenterFields,
		BuildItem: presenterDraft,
	},
	{
		Path:      "topics",
		NavLabel:  "topics",
		Title:     "Topics",
		Subtitle:  "Talk topics and discussions worth an hour.",
		FormTitle: "Suggest a topic",
		Type:      "topic",
		Fields:    presenterFields,
		BuildItem: presenterDraft,
	},
	{
		Path:      "jobs",
		NavLabel:  "jobs",
		Title:     "Jobs",
		Subtitle:  "Open roles from companies around the conference.",
		FormTitle: "Submit a job",
		Type:      "job",
		Fields: []SubmitField{
			{Key: "company", Label: "Company", Required: true, Kind: FieldText, Placeholder: "Acme Co"},
			{Key: "title", Label: "Role title", Required: true, Kind: FieldText, Placeholder: "Founding Engineer"},
			{Key: "location", Label: "Location (optional)", Kind: FieldText, Placeholder: "SF / Remote"},
			{Key: "comp", Label: "Compensation (optional)", Kind: FieldText, Placeholder: "$200k + equity"},
			{Key: "url", Label: "Job URL", Required: true, Kind: FieldText, Placeholder: "https://..."},
			{Key: "notes", Label: "Notes (optional)", Kind: FieldText, Placeholder: "Visa / stack / interview loop"},
		},
		BuildItem: func(values map[string]string) ItemDraft {
			d := ItemDraft{
				Title:         trimmed(values, "title"),
				PresenterName: trimmed(values, "company"),
				Description: joinParts(
					labelled("Location", trimmed(values, "location")),
					labelled("Comp", trimmed(values, "comp")),
					labelled("Notes", trimmed(values, "notes")),
				),
			}
			if url := trimmed(values, "url"); url != "" {
				d.Links = []string{url}
			}
			return d
		},
	},
	{
		Path:      "papers",
		NavLabel:  "papers",
		Title:     "Papers",
		Subtitle:  "Research worth presenting or arguing about.",
		FormTitle: "Submit a paper",
		Type:      "paper",
		Fields: []SubmitField{
			{Key: "title", Label: "Paper title", Required: true, Kind: FieldText},
			{Key: "presenter", Label: "Presenter", Required: true, Kind: FieldText},
			{Key: "abstract", Label: "Abstract", Kind: FieldTextarea, Rows: 4},
			{Key: "url", Label: "Paper URL", Required: true, Kind: FieldText, Placeholder: "https://..."},
		},
		BuildItem: func(values map[string]string) ItemDraft {
			d := ItemDraft{
				Title:         trimmed(values, "title"),
				PresenterName: trimmed(values, "presenter"),
				Description:   trimmed(values, "abstract"),
			}
			if url := trimmed(values, "url"); url != "" {
				d.Links = []string{url}
			}
			return d
		},
	},
	{
		Path:      "sponsors",
		NavLabel:  "sponsors",
		Title:     "Sponsors",
		Subtitle:  "Companies offering to sponsor the event.",
		FormTitle: "Offer sponsorship",
		Type:      "sponsor",
		Fields: []SubmitField{
			{Key: "company", Label: "Company", Required: true, Kind: FieldText},
			{Key: "contact", Label: "Contact name", Required: true, Kind: FieldText},
			{Key: "pitch", Label: "What are you offering?", Kind: FieldTextarea, Rows: 3},
			{Key: "url", Label: "Company URL", Kind: FieldText, Placeholder: "https://..."},
		},
		BuildItem: func(values map[string]string) ItemDraft {
			d := ItemDraft{
				Title:         trimmed(values, "company"),
				PresenterName: trimmed(values, "contact"),
				Description:   trimmed(values, "pitch"),
			}
			if url := trimmed(values, "url"); url != "" {
				d.Links = []string{url}
			}
			return d
		},
	},
	{
		Path:      "awards",
		NavLabel:  "awards",
		Title:     "Awards",
		Subtitle:  "Award categories and nominees.",
		FormTitle: "Nominate",
		Type:      "award",
		Fields: []SubmitField{
			{Key: "title", Label: "Award", Required: true, Kind: FieldText, Placeholder: "Best live demo"},
			{Key: "nominee", Label: "Nominee", Required: true, Kind: FieldText},
			{Key: "reason", Label: "Why?", Kind: FieldTextarea, Rows: 3},
		},
		BuildItem: func(values map[string]string) ItemDraft {
			return ItemDraft{
				Title:         trimmed(values, "title"),
				PresenterName: trimmed(values, "nominee"),
				Description:   trimmed(values, "reason"),
			}
		},
	},
	{
		Path:      "chats",
		NavLabel:  "join the chat",
		Title:     "Chats",
		Subtitle:  "Group chats and channels around the event.",
		FormTitle: "Share a chat",
		Type:      "chat",
		Fields: []SubmitField{
			{Key: "title", Label: "Chat name", Required: true, Kind: FieldText},
			{Key: "presenter", Label: "Host", Required: true, Kind: FieldText},
			{Key: "url", Label: "Invite URL", Required: true, Kind: FieldText, Placeholder: "https://..."},
		},
		BuildItem: presenterDraft,
	},
	{
		Path:      "livestream",
		NavLabel:  "livestream",
		Title:     "Livestreams",
		Subtitle:  "Streams covering the conference.",
		FormTitle: "Add a stream",
		Type:      "livestream",
		Fields: []SubmitField{
			{Key: "title", Label: "Stream title", Required: true, Kind: FieldText},
			{Key: "presenter", Label: "Streamer", Required: true, Kind: FieldText},
			{Key: "date", Label: "Stream date", Kind: FieldDate},
			{Key: "url", Label: "Stream URL", Required: true, Kind: FieldText, Placeholder: "https://..."},
		},
		BuildItem: func(values map[string]string) ItemDraft {
			d := ItemDraft{
				Title:         trimmed(values, "title"),
				PresenterName: trimmed(values, "presenter"),
				Description:   labelled("When", trimmed(values, "date")),
			}
			if url := trimmed(values, "url"); url != "" {
				d.Links = []string{url}
			}
			return d
		},
	},
	{
		Path:      "memes",
		NavLabel:  "memes",
		Title:     "Memes",
		Subtitle:  "The conference meme board.",
		FormTitle: "Post a meme",
		Type:      "meme",
		Fields: []SubmitField{
			{Key: "title", Label: "Caption", Required: true, Kind: FieldText},
			{Key: "presenter", Label: "Posted by", Required: true, Kind: FieldText},
			{Key: "url", Label: "Image URL", Required: true, Kind: FieldText, Placeholder: "https://..."},
		},
		BuildItem: presenterDraft,
	},
	{
		Path:      "skills",
		NavLabel:  "skills",
		Title:     "Skills",
		Subtitle:  "Workshops and skills people can teach.",
		FormTitle: "Offer a skill",
		Type:      "skill",
		Fields:    presenterFields,
		BuildItem: presenterDraft,
	},
	{
		Path:      "robots",
		NavLabel:  "robots",
		Title:     "Robots",
		Subtitle:  "Robots attendees want to show off.",
		FormTitle: "Bring a robot",
		Type:      "robot",
		Fields:    presenterFields,
		BuildItem: presenterDraft,
	},
}

// CategoryByPath returns the category registered for the given path.
func CategoryByPath(path string) (Category, bool) {
	for _, c := range Categories {
		if c.Path == path {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryByType returns the category registered for the given submission type.
func CategoryByType(submissionType string) (Category, bool) {
	for _, c := range Categories {
		if c.Type == submissionType {
			return c, true
		}
	}
	return Category{}, false
}

// ValidSubmissionType reports whether the given type belongs to a category.
func ValidSubmissionType(submissionType string) bool {
	_, ok := CategoryByType(submissionType)
	return ok
}
