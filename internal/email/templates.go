package email

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"sort"
	"strings"
	texttemplate "text/template"

	"gopkg.in/yaml.v3"
)

// Brand constants shared by every email
const (
	AppName    = "RoleReady"
	BrandColor = "#4F46E5"
)

// Event names a lifecycle email
type Event string

const (
	EventWelcome                    Event = "welcome"
	EventSkillValidationRequested   Event = "skill_validation_requested"
	EventSkillValidated             Event = "skill_validated"
	EventSkillRejected              Event = "skill_rejected"
	EventMentorAssigned             Event = "mentor_assigned"
	EventMentorApplicationSubmitted Event = "mentor_application_submitted"
	EventMentorApplicationApproved  Event = "mentor_application_approved"
	EventMentorApplicationRejected  Event = "mentor_application_rejected"
	EventTicketCreated              Event = "ticket_created"
	EventTicketReply                Event = "ticket_reply"
	EventTicketStatusChanged        Event = "ticket_status_changed"
	EventReadinessUpdate            Event = "readiness_update"
	EventAccountDeactivated         Event = "account_deactivated"
	EventAnnouncement               Event = "announcement"
)

var ErrUnknownEvent = errors.New("unknown email event")

//go:embed templates.yaml
var catalogYAML []byte

// Message is a rendered email
type Message struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type catalog struct {
	Layout string                  `yaml:"layout"`
	Events map[string]templateSpec `yaml:"events"`
}

type templateSpec struct {
	Subject string      `yaml:"subject"`
	Body    string      `yaml:"body"`
	Action  *actionSpec `yaml:"action"`
}

type actionSpec struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
}

type compiled struct {
	subject     *texttemplate.Template
	body        *template.Template
	actionLabel string
	actionPath  *texttemplate.Template
}

type templateData struct {
	AppName    string
	BrandColor template.CSS
	AppURL     string
	UserName   string
	Meta       map[string]string
	Action     *renderedAction
}

type renderedAction struct {
	Label string
	URL   string
}

// Factory renders lifecycle emails from the embedded catalog
type Factory struct {
	appURL    string
	templates map[Event]*compiled
}

// NewFactory parses the embedded catalog. appURL prefixes every link.
func NewFactory(appURL string) (*Factory, error) {
	return newFactory(appURL, catalogYAML)
}

func newFactory(appURL string, raw []byte) (*Factory, error) {
	var c catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse email catalog: %w", err)
	}

	funcs := template.FuncMap{
		"paragraphs": paragraphs,
		"pathEscape": url.PathEscape,
	}
	layout, err := template.New("layout").Funcs(funcs).Option("missingkey=zero").Parse(c.Layout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email layout: %w", err)
	}

	f := &Factory{
		appURL:    strings.TrimRight(appURL, "/"),
		templates: make(map[Event]*compiled, len(c.Events)),
	}

	for name, spec := range c.Events {
		ct := &compiled{}

		ct.subject, err = texttemplate.New(name + ":subject").Option("missingkey=zero").Parse(spec.Subject)
		if err != nil {
			return nil, fmt.Errorf("email %s: subject: %w", name, err)
		}

		body, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("email %s: %w", name, err)
		}
		if _, err := body.New("content").Parse(spec.Body); err != nil {
			return nil, fmt.Errorf("email %s: body: %w", name, err)
		}
		ct.body = body

		if spec.Action != nil {
			ct.actionLabel = spec.Action.Label
			ct.actionPath, err = texttemplate.New(name + ":action").
				Funcs(texttemplate.FuncMap{"pathEscape": url.PathEscape}).
				Option("missingkey=zero").
				Parse(spec.Action.Path)
			if err != nil {
				return nil, fmt.Errorf("email %s: action: %w", name, err)
			}
		}

		f.templates[Event(name)] = ct
	}

	return f, nil
}

// Render builds the subject and HTML for event. Every interpolated value
// is escaped by html/template.
func (f *Factory) Render(event Event, userName string, metadata map[string]string) (*Message, error) {
	ct, ok := f.templates[event]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}

	if metadata == nil {
		metadata = map[string]string{}
	}
	if strings.TrimSpace(userName) == "" {
		userName = "there"
	}

	data := templateData{
		AppName:    AppName,
		BrandColor: template.CSS(BrandColor),
		AppURL:     f.appURL,
		UserName:   userName,
		Meta:       metadata,
	}

	var subject bytes.Buffer
	if err := ct.subject.Execute(&subject, data); err != nil {
		return nil, fmt.Errorf("email %s: subject: %w", event, err)
	}

	if ct.actionPath != nil {
		var path bytes.Buffer
		if err := ct.actionPath.Execute(&path, data); err != nil {
			return nil, fmt.Errorf("email %s: action: %w", event, err)
		}
		data.Action = &renderedAction{Label: ct.actionLabel, URL: f.appURL + path.String()}
	}

	var body bytes.Buffer
	if err := ct.body.ExecuteTemplate(&body, "layout", data); err != nil {
		return nil, fmt.Errorf("email %s: body: %w", event, err)
	}

	return &Message{
		Subject: strings.Join(strings.Fields(subject.String()), " "),
		HTML:    body.String(),
	}, nil
}

// Events lists the catalog in name order
func (f *Factory) Events() []Event {
	out := make([]Event, 0, len(f.templates))
	for e := range f.templates {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// paragraphs splits free text on blank lines
func paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
