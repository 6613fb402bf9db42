package timeline

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"

	"github.com/ghtimeline/timeline/pkg/sanitizer"
)

// DisplayLayout renders timestamps like "Jan 2, 03:04 PM".
const DisplayLayout = "Jan 2, 03:04 PM"

const maxFieldLen = 128

type Actor struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

type Repo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Event is one public activity item prepared for display.
type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Actor     Actor  `json:"actor"`
	Repo      Repo   `json:"repo"`
	CreatedAt string `json:"created_at"`
	Action    string `json:"action"`
}

// rawPayload holds the payload fields the action phrases need.
type rawPayload struct {
	Action  string `json:"action"`
	RefType string `json:"ref_type"`
	Commits []struct {
		SHA string `json:"sha"`
	} `json:"commits"`
}

func normalize(e *github.Event, loc *time.Location) Event {
	var p rawPayload
	if e.RawPayload != nil {
		// An unreadable payload only loses the detail in the action phrase.
		_ = json.Unmarshal(*e.RawPayload, &p)
	}
	repo := e.GetRepo().GetName()

	return Event{
		ID:   e.GetID(),
		Type: e.GetType(),
		Actor: Actor{
			Login:     clean(e.GetActor().GetLogin()),
			AvatarURL: e.GetActor().GetAvatarURL(),
		},
		Repo: Repo{
			Name: clean(repo),
			URL:  "https://github.com/" + repo,
		},
		CreatedAt: FormatTime(e.GetCreatedAt().Time, loc),
		Action:    describe(e.GetType(), p),
	}
}

// FormatTime renders t in loc using DisplayLayout.
func FormatTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DisplayLayout)
}

func describe(eventType string, p rawPayload) string {
	action := clean(p.Action)
	refType := clean(p.RefType)

	switch eventType {
	case "PushEvent":
		n := len(p.Commits)
		if n == 1 {
			return "pushed 1 commit"
		}
		return fmt.Sprintf("pushed %d commits", n)
	case "CreateEvent":
		return "created " + refType
	case "WatchEvent":
		return "starred the repository"
	case "ForkEvent":
		return "forked the repository"
	case "IssuesEvent":
		return action + " an issue"
	case "PullRequestEvent":
		return action + " a pull request"
	case "DeleteEvent":
		return "deleted " + refType
	case "PublicEvent":
		return "made the repository public"
	case "MemberEvent":
		return action + " a collaborator"
	case "ReleaseEvent":
		return action + " a release"
	default:
		return strings.ToLower(strings.Replace(eventType, "Event", "", 1))
	}
}

func clean(s string) string {
	return sanitizer.UserText(s, maxFieldLen)
}
