package notification

import (
	"net/url"
	"strings"
	"testing"
)

func TestTemplateEngine_RegisterAndRender(t *testing.T) {
	eng := NewTemplateEngine()
	eng.RegisterTemplate(Template{
		ID:   "test-tpl",
		Name: "Test Template",
		Body: "Dear {{name}}, your code is {{code}}.",
	})

	body, err := eng.Render("test-tpl", map[string]string{
		"name": "Alice",
		"code": "1234",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "Dear Alice, your code is 1234." {
		t.Errorf("body = %q", body)
	}
}

func TestTemplateEngine_RenderMissing(t *testing.T) {
	eng := NewTemplateEngine()
	_, err := eng.Render("nonexistent", nil)
	if err == nil {
		t.Fatal("expected error for missing template, got nil")
	}
}

func TestTemplateEngine_UnresolvedPlaceholdersKept(t *testing.T) {
	eng := NewTemplateEngine()
	eng.RegisterTemplate(Template{ID: "partial", Body: "Hi {{name}}, see {{link}}"})

	body, err := eng.Render("partial", map[string]string{"name": "Bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "Hi Bob, see {{link}}" {
		t.Errorf("body = %q", body)
	}
}

func TestTemplateEngine_CampConfirmation(t *testing.T) {
	eng := NewTemplateEngine()
	body, err := eng.Render(CampConfirmationTemplateID, map[string]string{
		"doctor_name": "Sharma",
		"camp_date":   "12/09/2026",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"Dear Dr. Sharma,",
		"Vitamin D Risk Assessment Camp at your clinic on 12/09/2026",
		"Team Pulse Pharmaceuticals",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "{{") {
		t.Errorf("body has unresolved placeholders:\n%s", body)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "+919876543210"},
		{"+919876543210", "+919876543210"},
		{"+447911123456", "+447911123456"},
		{" 9876543210 ", "+919876543210"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizePhone(tc.in, "+91"); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildWhatsAppLink(t *testing.T) {
	link := BuildWhatsAppLink("+919876543210", "Hello Dr. Rao & team")
	if !strings.HasPrefix(link, "https://wa.me/+919876543210?text=") {
		t.Fatalf("link = %q", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if got := u.Query().Get("text"); got != "Hello Dr. Rao & team" {
		t.Errorf("decoded text = %q", got)
	}
}

func TestBuildWhatsAppLink_EmptyPhone(t *testing.T) {
	if link := BuildWhatsAppLink("", "msg"); link != "" {
		t.Errorf("expected empty link, got %q", link)
	}
}
