// Package notification builds WhatsApp outreach messages. Delivery happens
// through wa.me deep links opened on the field staff's phone, so the package
// only renders templates and constructs links; it never talks to a gateway.
package notification

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Template is a named message with {{key}} placeholders.
type Template struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Body string `json:"body"`
}

// TemplateEngine manages message templates and renders them with data.
type TemplateEngine struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewTemplateEngine creates a TemplateEngine with the built-in templates
// pre-registered.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{
		templates: make(map[string]*Template),
	}
	e.registerBuiltIn()
	return e
}

// CampConfirmationTemplateID is the message sent to a doctor when a camp is
// created at their clinic.
const CampConfirmationTemplateID = "camp-confirmation"

func (e *TemplateEngine) registerBuiltIn() {
	builtIn := []Template{
		{
			ID:   CampConfirmationTemplateID,
			Name: "Camp Confirmation",
			Body: "Dear Dr. {{doctor_name}},\n\n" +
				"Thank you for your consent to conduct Vitamin D Risk Assessment Camp at your clinic on {{camp_date}}.\n\n" +
				"We will initiate screening patients for their risk of Vitamin D deficiency shortly.\n" +
				"Once the camp concludes, we'll share a brief summary report highlighting the number of patients screened and key findings.\n\n" +
				"Thank you for partnering with Pulse Pharmaceuticals in this mission to make India Vitamin D deficiency-free.\n\n" +
				"Team Pulse Pharmaceuticals\n" +
				"Your Partner in Vitamin D Management",
		},
	}
	for i := range builtIn {
		t := builtIn[i]
		e.templates[t.ID] = &t
	}
}

// RegisterTemplate adds or replaces a template in the engine.
func (e *TemplateEngine) RegisterTemplate(t Template) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[t.ID] = &t
}

// Render looks up a template by ID and performs {{key}} replacement using the
// supplied data map. Keys present in the template but absent from data are
// left as-is.
func (e *TemplateEngine) Render(templateID string, data map[string]string) (string, error) {
	e.mu.RLock()
	t, ok := e.templates[templateID]
	e.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("template %q not found", templateID)
	}

	body := t.Body
	for k, v := range data {
		body = strings.ReplaceAll(body, "{{"+k+"}}", v)
	}
	return body, nil
}

// NormalizePhone prefixes numbers that carry no country code with
// defaultCountryCode. Numbers already starting with "+" pass through
// untouched.
func NormalizePhone(phone, defaultCountryCode string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return defaultCountryCode + phone
}

// BuildWhatsAppLink returns a wa.me deep link that opens a chat with phone
// pre-filled with message. Returns "" when phone is empty.
func BuildWhatsAppLink(phone, message string) string {
	if phone == "" {
		return ""
	}
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}
