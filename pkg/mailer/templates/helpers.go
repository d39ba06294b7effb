package templates

import (
	"encoding/json"
	"time"
)

// EmailData defines the fields shared by the account notification templates.
type EmailData struct {
	AppName   string `json:"AppName"`
	Name      string `json:"Name"`
	Email     string `json:"Email"`
	AccountID string `json:"AccountID"`
	Time      string `json:"Time"`
	IP        string `json:"IP"`
	UserAgent string `json:"UserAgent"`
}

// Option pattern
type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = ip } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04 MST") }
}

// NewAccountData builds template data for a notification addressed to one account.
func NewAccountData(appName, name, email, accountID string, opts ...Option) map[string]any {
	d := EmailData{AppName: appName, Name: name, Email: email, AccountID: accountID}
	for _, o := range opts {
		o(&d)
	}
	return ToMap(d)
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}
