package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	htmpl "html/template"
	"io"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData defines standard fields for email templates.
type EmailData struct {
	// Basic info
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`

	// Company info
	CompanyName    string `json:"CompanyName"`
	CompanyAddress string `json:"CompanyAddress"`
	AppName        string `json:"AppName"`

	// URLs
	LogoURL    string `json:"LogoURL"`
	SupportURL string `json:"SupportURL"`
	PrivacyURL string `json:"PrivacyURL"`

	// Verification
	VerifyURL     string    `json:"VerifyURL"`
	Code          string    `json:"Code"`
	ExpiresAt     time.Time `json:"ExpiresAt"`
	ExpiresAtText string    `json:"ExpiresAtText"`
	ExpiresInText string    `json:"ExpiresInText"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() || rv.IsZero() {
			return fallback
		}
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{
		"now":     func() time.Time { return time.Now().UTC() },
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

const (
	VerifyOTP   = "verify_otp"
	VerifyEmail = "verify_email"
)

var ErrUnknownTemplate = errors.New("unknown email template")

// set is one template's three parts, parsed once from the embedded FS
type set struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmpl.Template
}

var (
	loadOnce sync.Once
	sets     map[string]set
	loadErr  error
)

func load() {
	sets = map[string]set{}
	for _, name := range []string{VerifyOTP, VerifyEmail} {
		var ts set
		subj, text, html := name+".subject.tmpl", name+".text.tmpl", name+".html.tmpl"
		if ts.subject, loadErr = texttpl.New(subj).Funcs(textFuncMap).ParseFS(FS, subj); loadErr != nil {
			return
		}
		if ts.text, loadErr = texttpl.New(text).Funcs(textFuncMap).ParseFS(FS, text); loadErr != nil {
			return
		}
		if ts.html, loadErr = htmpl.New(html).Funcs(htmlFuncMap).ParseFS(FS, html); loadErr != nil {
			return
		}
		sets[name] = ts
	}
}

type executor interface {
	Execute(w io.Writer, data any) error
}

func execute(t executor, part string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %s: %w", part, err)
	}
	return buf.String(), nil
}

// Render renders the subject, text and html parts of a named template
// (<name>.subject.tmpl, <name>.text.tmpl, <name>.html.tmpl)
func Render(name string, data any) (subject string, text string, html string, err error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return "", "", "", fmt.Errorf("parse templates: %w", loadErr)
	}
	ts, ok := sets[name]
	if !ok {
		return "", "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	if subject, err = execute(ts.subject, name+".subject", data); err != nil {
		return "", "", "", err
	}
	if text, err = execute(ts.text, name+".text", data); err != nil {
		return "", "", "", err
	}
	if html, err = execute(ts.html, name+".html", data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
